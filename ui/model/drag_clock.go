package model

import (
	"time"
)

// DragClock tracks how long the current capture has been running and the
// accumulated capture time. Presenters poll Values() and update views.
// The zero value is ready to use.
type DragClock struct {
	active       bool
	captureStart time.Time
	lastDrag     time.Duration
	accumulated  time.Duration
}

// NewDragClock returns a pointer to a ready-to-use DragClock.
func NewDragClock() *DragClock { return &DragClock{} }

// OnTick updates the clock using the current capture state and timestamp.
func (m *DragClock) OnTick(capturing bool, now time.Time) {
	if m == nil {
		return
	}
	if capturing {
		if !m.active { // off -> on
			m.active = true
			m.captureStart = now
			m.lastDrag = 0
		}
		m.lastDrag = now.Sub(m.captureStart)
	} else if m.active { // on -> off
		m.lastDrag = now.Sub(m.captureStart)
		m.accumulated += m.lastDrag
		m.active = false
	}
}

// Values returns the current (or last) capture duration and the total.
// The total includes the ongoing capture when active.
func (m *DragClock) Values() (drag, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	drag = m.lastDrag
	total = m.accumulated
	if m.active {
		total += drag
	}
	return
}
