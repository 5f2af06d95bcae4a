//go:build !windows

package capture

// EnableDPIAwareness is a no-op outside Windows.
func EnableDPIAwareness() error { return nil }
