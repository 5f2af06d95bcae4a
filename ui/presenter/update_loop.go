package presenter

import "time"

// Loop aggregates feature presenters and drives one frame per tick.
//
// Order matters: queued visual writes are flushed first so that the surface
// render sees a consistent scene. The zero value is usable (methods are
// nil-safe).
type Loop struct {
	Queue     *FrameQueue
	Surface   *SurfacePresenter
	Status    *StatusPresenter
	Selection *SelectionPresenter
	Selector  *SelectorPresenter
	Drag      *DragPresenter
	Schedule  func()
}

func NewLoop(queue *FrameQueue, surface *SurfacePresenter, status *StatusPresenter, sel *SelectionPresenter, selector *SelectorPresenter, drag *DragPresenter, schedule func()) *Loop {
	return &Loop{Queue: queue, Surface: surface, Status: status, Selection: sel, Selector: selector, Drag: drag, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	l.Queue.Flush()
	l.Surface.Tick()
	l.Selector.Sync()
	l.Status.Tick(now)
	l.Selection.Tick(now)
	l.Drag.Tick(now)
	if l.Schedule != nil {
		l.Schedule()
	}
}
