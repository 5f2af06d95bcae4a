package assets

import (
	_ "embed"
	"strings"
)

// helpText is the key binding summary shown under the surface.
//
//go:embed help.txt
var helpText string

// Help returns the help text with the configured lock and unlock keys
// substituted for the defaults.
func Help(lockKey, unlockKey string) string {
	out := strings.TrimSpace(helpText)
	if lockKey != "" {
		out = strings.Replace(out, "L: lock", strings.ToUpper(lockKey)+": lock", 1)
	}
	if unlockKey != "" {
		out = strings.Replace(out, "Esc: unlock", unlockKey+": unlock", 1)
	}
	return out
}
