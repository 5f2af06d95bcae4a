//go:build windows

package capture

import "golang.org/x/sys/windows"

// EnableDPIAwareness opts the process out of DPI virtualization so that
// screen grabs and Tk pointer coordinates share one pixel space.
func EnableDPIAwareness() error {
	user32 := windows.NewLazySystemDLL("user32.dll")
	proc := user32.NewProc("SetProcessDPIAware")
	if err := proc.Find(); err != nil {
		return err
	}
	r1, _, err := proc.Call()
	if r1 == 0 {
		return err
	}
	return nil
}
