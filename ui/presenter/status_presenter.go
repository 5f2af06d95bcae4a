package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/area-selector-go/domain/selection"
)

// StatusView sets the status labels in the view.
type StatusView interface {
	SetStateLabel(string)
	SetLockLabel(locked bool)
}

// StatusPresenter receives selector state changes and updates the view.
type StatusPresenter struct {
	view    StatusView
	latest  selection.State // last reflected state
	shown   bool
	pending []selection.State
}

func NewStatusPresenter(view StatusView) *StatusPresenter {
	return &StatusPresenter{view: view}
}

// OnState queues a state snapshot from the selector listener.
//
// The latest queued state will be reflected on the next Tick.
func (p *StatusPresenter) OnState(s selection.State) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, s)
}

// Tick reflects the most recent queued state and clears the queue.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	if len(p.pending) == 0 {
		return
	}
	last := p.pending[len(p.pending)-1]
	p.pending = p.pending[:0]
	if p.shown && last == p.latest {
		return
	}
	if !p.shown || last.Locked != p.latest.Locked {
		p.view.SetLockLabel(last.Locked)
	}
	p.shown = true
	p.latest = last
	p.view.SetStateLabel(StatusText(last))
}

// StatusText renders a state for the status label.
func StatusText(s selection.State) string {
	activity := "idle"
	switch {
	case !s.Enabled:
		activity = "disabled"
	case s.Capturing:
		activity = "selecting"
	}
	return fmt.Sprintf("Mode: %s (%s) | %s", s.Mode, s.Modifier, activity)
}
