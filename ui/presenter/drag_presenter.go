package presenter

import (
	"time"

	"github.com/soocke/area-selector-go/ui/model"
)

// DragView displays the current and accumulated capture durations.
type DragView interface {
	SetDrag(drag, total time.Duration)
}

// DragPresenter advances the drag clock from the selector state and pushes
// the durations to the view.
type DragPresenter struct {
	clock *model.DragClock
	state StateSource
	view  DragView
}

// NewDragPresenter returns a new DragPresenter.
func NewDragPresenter(clock *model.DragClock, state StateSource, view DragView) *DragPresenter {
	return &DragPresenter{clock: clock, state: state, view: view}
}

// Tick advances the clock and updates the view.
func (p *DragPresenter) Tick(now time.Time) {
	if p == nil || p.clock == nil || p.state == nil || p.view == nil {
		return
	}
	p.clock.OnTick(p.state.State().Capturing, now)
	d, t := p.clock.Values()
	p.view.SetDrag(d, t)
}
