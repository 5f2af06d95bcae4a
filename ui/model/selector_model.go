package model

import (
	"sync/atomic"
)

// SelectorModel mirrors whether the selector accepts input. The zero value is
// disabled and usable. Concurrency-safe via atomic Bool because Tk callbacks
// and presenter ticks may race.
type SelectorModel struct{ enabled atomic.Bool }

// Enabled reports whether the selector is currently enabled.
func (m *SelectorModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled.Load()
}

// SetEnabled stores the enabled flag.
func (m *SelectorModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	m.enabled.Store(b)
}
