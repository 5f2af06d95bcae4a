package selection

import (
	"log/slog"

	"github.com/soocke/area-selector-go/domain/geometry"
)

// DefaultTemplateSize is the central-point template used when none is given.
var DefaultTemplateSize = geometry.NewRect(20, 20)

// AreaSelector turns pointer and keyboard input into rectangular selections.
//
// Session state (mode, modifier, capture, lock, enable) is owned by the
// selector. Every element write is posted to the Scheduler so that bursts of
// input are applied together before the next frame is drawn. All methods must
// be called from the host's event thread.
type AreaSelector struct {
	surface   Surface
	sched     Scheduler
	cb        Callbacks
	el        Elements
	logger    *slog.Logger
	bounds    geometry.Rect
	template  geometry.Rect
	mode      Mode
	modifier  Modifier
	capturing bool
	locked    bool
	enabled   bool
	captureID int
	listeners []StateListener
	last      State
	release   func()
}

// Option configures an AreaSelector at construction.
type Option func(*AreaSelector)

// WithLogger sets the logger used for transition tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *AreaSelector) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithInitialMode starts the selector in the given mode instead of ModeRect.
func WithInitialMode(m Mode, opts ...ModeOption) Option {
	return func(s *AreaSelector) { s.applyMode(m, opts...) }
}

// ModeOption customizes SetSelectionMode.
type ModeOption func(*modeOptions)

type modeOptions struct {
	template *geometry.Rect
}

// WithTemplate overrides the central-point template size.
func WithTemplate(r geometry.Rect) ModeOption {
	return func(o *modeOptions) { o.template = &r }
}

// New builds a selector over surface and subscribes it to the surface input.
// The elements must already exist; they are hidden and sized here.
func New(surface Surface, sched Scheduler, cb Callbacks, el Elements, opts ...Option) *AreaSelector {
	if sched == nil {
		sched = ImmediateScheduler{}
	}
	w, h := surface.Size()
	s := &AreaSelector{
		surface:  surface,
		sched:    sched,
		cb:       cb,
		el:       el,
		logger:   slog.New(slog.DiscardHandler),
		bounds:   geometry.NewRect(w, h),
		template: DefaultTemplateSize,
		enabled:  true,
	}
	s.sched.Post(func() {
		s.el.Template.Resize(s.template.Width, s.template.Height)
		hideAll(s.el.CrossA, s.el.CrossB, s.el.Template, s.el.Mask, s.el.Box)
	})
	for _, opt := range opts {
		opt(s)
	}
	s.last = s.State()
	s.release = surface.Subscribe(s)
	return s
}

// AddListener registers l for state change notifications.
func (s *AreaSelector) AddListener(l StateListener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// State returns the current session snapshot.
func (s *AreaSelector) State() State {
	return State{Mode: s.mode, Modifier: s.modifier, Capturing: s.capturing, Locked: s.locked, Enabled: s.enabled}
}

// Bounds returns the current surface bounds.
func (s *AreaSelector) Bounds() geometry.Rect { return s.bounds }

// TemplateSize returns the central-point template extent.
func (s *AreaSelector) TemplateSize() geometry.Rect { return s.template }

// Selection returns the region spanned by the two crosses.
func (s *AreaSelector) Selection() geometry.Region {
	return geometry.RegionFromCorners(s.el.CrossA.Position(), s.el.CrossB.Position())
}

// Close releases the surface subscription.
func (s *AreaSelector) Close() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
}

// Resize re-reads the surface size and propagates it to the elements.
func (s *AreaSelector) Resize() {
	w, h := s.surface.Size()
	s.resize(w, h)
}

// ResizeTo sets explicit bounds, resizing the surface when it supports it.
// Bounds are not validated.
func (s *AreaSelector) ResizeTo(width, height float64) {
	if sized, ok := s.surface.(SizedSurface); ok {
		sized.SetSize(width, height)
	}
	s.resize(width, height)
}

func (s *AreaSelector) resize(width, height float64) {
	s.bounds.Resize(width, height)
	s.sched.Post(func() {
		resizeAll(s.bounds, s.el.Mask, s.el.CrossA, s.el.CrossB)
	})
	s.logger.Debug("selector resized", "width", width, "height", height)
}

// Enable makes the selector interactive again.
func (s *AreaSelector) Enable() {
	if !s.enabled {
		s.enabled = true
		s.sched.Post(s.el.Layer.Show)
	}
	s.notify()
}

// Disable hides the overlay and ignores input until Enable or Lock. It is a
// no-op while locked.
func (s *AreaSelector) Disable() {
	if s.locked || !s.enabled {
		return
	}
	s.enabled = false
	if s.capturing {
		s.capturing = false
		s.surface.ReleasePointerCapture(s.captureID)
	}
	s.sched.Post(func() {
		hideAll(s.el.CrossA, s.el.CrossB, s.el.Mask, s.el.Template, s.el.Box)
		s.el.Layer.Hide()
	})
	s.notify()
}

// Lock keeps the selector enabled until Unlock.
func (s *AreaSelector) Lock() {
	s.locked = true
	s.Enable()
	if s.cb.OnLocked != nil {
		s.cb.OnLocked()
	}
	s.notify()
}

// Unlock clears the lock. The enabled state is left as is.
func (s *AreaSelector) Unlock() {
	s.locked = false
	if s.cb.OnUnlocked != nil {
		s.cb.OnUnlocked()
	}
	s.notify()
}

// ToggleLock flips the lock state.
func (s *AreaSelector) ToggleLock() {
	if s.locked {
		s.Unlock()
		return
	}
	s.Lock()
}

// SetSelectionMode switches the active mode. Entering ModeCentralPoint
// installs the template (DefaultTemplateSize unless overridden) and ends any
// capture; other modes hide the template. Lock and enable are untouched.
func (s *AreaSelector) SetSelectionMode(m Mode, opts ...ModeOption) {
	s.applyMode(m, opts...)
	s.notify()
}

func (s *AreaSelector) applyMode(m Mode, opts ...ModeOption) {
	s.mode = m
	if m != ModeCentralPoint {
		s.sched.Post(s.el.Template.Hide)
		return
	}
	var o modeOptions
	for _, opt := range opts {
		opt(&o)
	}
	s.template = DefaultTemplateSize
	if o.template != nil {
		s.template = *o.template
	}
	if s.capturing {
		s.capturing = false
		s.surface.ReleasePointerCapture(s.captureID)
	}
	tmpl := s.template
	s.sched.Post(func() {
		s.el.Template.Resize(tmpl.Width, tmpl.Height)
		hideAll(s.el.Mask, s.el.Box, s.el.CrossB)
	})
}

// Pointer handlers re-check enabled inside the posted task: a Disable between
// the event and the next flush drops the pending work.

// PointerEnter shows the tracking cross (and the template in central mode).
func (s *AreaSelector) PointerEnter(e PointerEvent) {
	if !s.enabled {
		return
	}
	s.sched.Post(func() {
		if !s.enabled {
			return
		}
		s.el.CrossA.Show()
		if s.mode == ModeCentralPoint {
			s.el.Template.Show()
		}
	})
}

// PointerLeave hides idle visuals or, while a two-point capture is running,
// pins the secondary corner to the exit point.
func (s *AreaSelector) PointerLeave(e PointerEvent) {
	if !s.enabled {
		return
	}
	p := e.Point()
	s.sched.Post(func() {
		if !s.enabled {
			return
		}
		switch {
		case s.mode == ModeRect && !s.capturing:
			hideAll(s.el.CrossA, s.el.CrossB, s.el.Box)
		case s.mode == ModeTwoPoints && s.capturing:
			s.moveCross(s.el.CrossB, p, false)
			s.updateBox()
		case s.mode == ModeCentralPoint:
			hideAll(s.el.Template, s.el.CrossA, s.el.CrossB)
		}
	})
}

// PointerDown starts a drag in rect mode or places the template in central mode.
func (s *AreaSelector) PointerDown(e PointerEvent) {
	if !s.enabled {
		return
	}
	p := e.Point()
	s.sched.Post(func() {
		if !s.enabled {
			return
		}
		switch s.mode {
		case ModeRect:
			s.capturing = true
			s.captureID = e.PointerID
			s.surface.SetPointerCapture(e.PointerID)
			s.moveCross(s.el.CrossA, p, false)
			s.moveCross(s.el.CrossB, s.el.CrossA.Position(), false)
			s.updateBox()
			showAll(s.el.Mask, s.el.CrossB, s.el.Box)
			s.fireBegin()
		case ModeCentralPoint:
			s.el.Template.Show()
			s.moveTemplate()
			s.fireBegin()
		}
		s.notify()
	})
}

// PointerUp finishes a rect drag, toggles the two-point capture, or emits the
// template region in central mode.
func (s *AreaSelector) PointerUp(e PointerEvent) {
	if !s.enabled {
		return
	}
	p := e.Point()
	s.sched.Post(func() {
		if !s.enabled {
			return
		}
		switch s.mode {
		case ModeRect:
			if !s.capturing {
				return
			}
			s.capturing = false
			s.surface.ReleasePointerCapture(e.PointerID)
			hideAll(s.el.CrossB, s.el.Mask)
			s.fireEnd(s.el.CrossA.Position(), s.el.CrossB.Position())
		case ModeTwoPoints:
			if s.capturing {
				s.capturing = false
				s.moveCross(s.el.CrossB, p, s.modifier == ModifierSquare)
				s.updateBox()
				hideAll(s.el.CrossB, s.el.Mask)
				s.fireEnd(s.el.CrossA.Position(), s.el.CrossB.Position())
				s.moveCross(s.el.CrossA, p, false)
				s.moveCross(s.el.CrossB, p, false)
			} else {
				s.capturing = true
				s.moveCross(s.el.CrossA, p, false)
				s.moveCross(s.el.CrossB, p, false)
				s.updateBox()
				showAll(s.el.CrossA, s.el.CrossB, s.el.Box, s.el.Mask)
				s.fireBegin()
			}
		case ModeCentralPoint:
			a := s.el.CrossA.Position()
			hw, hh := s.template.Width/2, s.template.Height/2
			p1 := a.Add(-hw, -hh).ClampToRect(s.bounds)
			p2 := a.Add(hw, hh).ClampToRect(s.bounds)
			s.fireEnd(p1, p2)
		}
		s.notify()
	})
}

// PointerMove tracks the pointer with the crosses, template or box.
func (s *AreaSelector) PointerMove(e PointerEvent) {
	if !s.enabled {
		return
	}
	p := e.Point()
	s.sched.Post(func() {
		if !s.enabled {
			return
		}
		s.el.CrossA.Show()
		square := s.modifier == ModifierSquare
		switch s.mode {
		case ModeRect:
			if s.capturing {
				s.moveCross(s.el.CrossB, p, square)
				s.updateBox()
			} else {
				s.moveCross(s.el.CrossA, p, false)
			}
		case ModeTwoPoints:
			if s.capturing {
				s.moveCross(s.el.CrossB, p, square)
				s.updateBox()
			} else {
				s.moveCross(s.el.CrossA, p, false)
				s.moveCross(s.el.CrossB, p, false)
			}
		case ModeCentralPoint:
			s.el.Template.Show()
			s.moveCross(s.el.CrossA, p, false)
			s.moveTemplate()
		}
	})
}

// KeyDown enables the square modifier and, outside a capture, the two-point mode.
func (s *AreaSelector) KeyDown(e KeyEvent) {
	if !s.enabled {
		return
	}
	if e.Shift {
		s.modifier = ModifierSquare
	}
	if (s.mode == ModeRect || s.mode == ModeTwoPoints) && e.Ctrl && !s.capturing {
		s.mode = ModeTwoPoints
	}
	s.notify()
}

// KeyUp reverts the modifier and two-point mode when their keys are released
// and handles the lock and escape keys. Lock and escape are honoured even
// while disabled.
func (s *AreaSelector) KeyUp(e KeyEvent) {
	if s.enabled {
		if !e.Shift {
			s.modifier = ModifierRect
		}
		if s.mode == ModeTwoPoints && !e.Ctrl {
			s.mode = ModeRect
			s.capturing = false
			s.sched.Post(func() {
				s.moveCross(s.el.CrossA, s.el.CrossB.Position(), false)
				hideAll(s.el.CrossB, s.el.Box, s.el.Mask)
			})
		}
	}
	switch e.Key {
	case KeyLock:
		s.ToggleLock()
	case KeyEscape:
		s.Unlock()
	}
	s.notify()
}

func (s *AreaSelector) moveCross(c CrossElement, p geometry.Point2D, square bool) {
	c.Move(p, s.bounds, square, s.el.CrossA.Position())
}

func (s *AreaSelector) updateBox() {
	r := geometry.RegionFromCorners(s.el.CrossA.Position(), s.el.CrossB.Position())
	size := r.Size()
	s.el.Box.MoveTo(r.Min)
	s.el.Box.Resize(size.Width, size.Height)
}

func (s *AreaSelector) moveTemplate() {
	a := s.el.CrossA.Position()
	size := s.el.Template.Size()
	s.el.Template.MoveTo(a.Add(-size.Width/2, -size.Height/2))
}

func (s *AreaSelector) fireBegin() {
	s.logger.Debug("selection begin", "mode", s.mode.String())
	if s.cb.OnSelectionBegin != nil {
		s.cb.OnSelectionBegin()
	}
}

func (s *AreaSelector) fireEnd(a, b geometry.Point2D) {
	s.logger.Debug("selection end", "mode", s.mode.String(), "x1", a.X, "y1", a.Y, "x2", b.X, "y2", b.Y)
	if s.cb.OnSelectionEnd != nil {
		s.cb.OnSelectionEnd(a.X, a.Y, b.X, b.Y)
	}
}

func (s *AreaSelector) notify() {
	st := s.State()
	if st == s.last {
		return
	}
	prev := s.last
	s.last = st
	s.logger.Debug("selector state transition", "from", prev.String(), "to", st.String())
	for _, l := range s.listeners {
		l(st)
	}
}

func showAll(elems ...Hideable) {
	for _, e := range elems {
		e.Show()
	}
}

func hideAll(elems ...Hideable) {
	for _, e := range elems {
		e.Hide()
	}
}

func resizeAll(bounds geometry.Rect, elems ...Resizable) {
	for _, e := range elems {
		e.Resize(bounds.Width, bounds.Height)
	}
}
