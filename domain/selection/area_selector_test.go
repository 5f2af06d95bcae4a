package selection_test

import (
	"testing"

	"github.com/soocke/area-selector-go/domain/geometry"
	"github.com/soocke/area-selector-go/domain/selection"
	"github.com/soocke/area-selector-go/ui/overlay"
)

// frameQueue collects posted tasks until flush, like a display refresh.
type frameQueue struct{ tasks []func() }

func (q *frameQueue) Post(task func()) { q.tasks = append(q.tasks, task) }

func (q *frameQueue) flush() {
	tasks := q.tasks
	q.tasks = nil
	for _, t := range tasks {
		t()
	}
}

type mockSurface struct {
	w, h       float64
	captured   []int
	released   []int
	subscribed selection.InputHandler
	unsubbed   int
}

func (m *mockSurface) Size() (float64, float64)     { return m.w, m.h }
func (m *mockSurface) SetPointerCapture(id int)     { m.captured = append(m.captured, id) }
func (m *mockSurface) ReleasePointerCapture(id int) { m.released = append(m.released, id) }
func (m *mockSurface) SetSize(w, h float64)         { m.w, m.h = w, h }
func (m *mockSurface) Subscribe(h selection.InputHandler) func() {
	m.subscribed = h
	return func() { m.unsubbed++; m.subscribed = nil }
}

type corners struct{ x1, y1, x2, y2 float64 }

type recorder struct {
	begins   int
	ends     []corners
	locked   int
	unlocked int
	states   []selection.State
}

func (r *recorder) callbacks() selection.Callbacks {
	return selection.Callbacks{
		OnSelectionBegin: func() { r.begins++ },
		OnSelectionEnd:   func(x1, y1, x2, y2 float64) { r.ends = append(r.ends, corners{x1, y1, x2, y2}) },
		OnLocked:         func() { r.locked++ },
		OnUnlocked:       func() { r.unlocked++ },
	}
}

type harness struct {
	sel     *selection.AreaSelector
	q       *frameQueue
	surface *mockSurface
	scene   *overlay.Scene
	rec     *recorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{q: &frameQueue{}, surface: &mockSurface{w: 200, h: 100}, rec: &recorder{}}
	h.scene = overlay.NewScene(200, 100, overlay.DefaultStyle())
	h.sel = selection.New(h.surface, h.q, h.rec.callbacks(), h.scene.Elements())
	h.sel.AddListener(func(s selection.State) { h.rec.states = append(h.rec.states, s) })
	h.q.flush()
	return h
}

func pe(x, y float64) selection.PointerEvent { return selection.PointerEvent{X: x, Y: y, PointerID: 1} }

func normalize(c corners) geometry.Region {
	return geometry.RegionFromCorners(geometry.Pt(c.x1, c.y1), geometry.Pt(c.x2, c.y2))
}

func TestAreaSelector_SubscribesAndReleases(t *testing.T) {
	h := newHarness(t)
	if h.surface.subscribed == nil {
		t.Fatalf("selector did not subscribe to the surface")
	}
	h.sel.Close()
	h.sel.Close()
	if h.surface.unsubbed != 1 {
		t.Fatalf("expected a single release, got %d", h.surface.unsubbed)
	}
}

func TestAreaSelector_RectScenario(t *testing.T) {
	h := newHarness(t)
	h.sel.PointerEnter(pe(10, 10))
	h.sel.PointerDown(pe(10, 10))
	h.q.flush()
	if !h.sel.State().Capturing || h.rec.begins != 1 {
		t.Fatalf("expected capture with one begin, state=%v begins=%d", h.sel.State(), h.rec.begins)
	}
	if !h.scene.Mask().Visible() || !h.scene.CrossB().Visible() || !h.scene.Box().Visible() {
		t.Fatalf("mask, secondary cross and box must be visible while capturing")
	}
	if len(h.surface.captured) != 1 {
		t.Fatalf("pointer capture not requested")
	}
	h.sel.PointerMove(pe(60, 40))
	h.q.flush()
	if got := h.scene.Box().Region(); got != geometry.RegionFromCorners(geometry.Pt(10, 10), geometry.Pt(60, 40)) {
		t.Fatalf("box not following drag: %v", got)
	}
	h.sel.PointerUp(pe(60, 40))
	h.q.flush()

	if len(h.rec.ends) != 1 {
		t.Fatalf("expected exactly one selection end, got %d", len(h.rec.ends))
	}
	want := geometry.RegionFromCorners(geometry.Pt(10, 10), geometry.Pt(60, 40))
	if got := normalize(h.rec.ends[0]); got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if h.sel.State().Capturing {
		t.Fatalf("capture should be released")
	}
	if h.scene.CrossB().Visible() || h.scene.Mask().Visible() {
		t.Fatalf("secondary cross and mask should hide on release")
	}
	if len(h.surface.released) != 1 {
		t.Fatalf("pointer capture not released")
	}
}

func TestAreaSelector_RectEndKeepsAnchorFirst(t *testing.T) {
	h := newHarness(t)
	h.sel.PointerDown(pe(80, 70))
	h.sel.PointerMove(pe(20, 30))
	h.sel.PointerUp(pe(20, 30))
	h.q.flush()
	if len(h.rec.ends) != 1 || h.rec.ends[0] != (corners{80, 70, 20, 30}) {
		t.Fatalf("corners must be raw anchor-first, got %+v", h.rec.ends)
	}
}

func TestAreaSelector_RectSquareModifier(t *testing.T) {
	h := newHarness(t)
	h.sel.PointerDown(pe(0, 0))
	h.sel.KeyDown(selection.KeyEvent{Key: selection.KeyModifier, Shift: true})
	h.sel.PointerMove(pe(30, 10))
	h.q.flush()
	if got := h.scene.CrossB().Position(); got != geometry.Pt(10, 10) {
		t.Fatalf("expected square-constrained (10,10), got %v", got)
	}
	h.sel.KeyUp(selection.KeyEvent{Key: selection.KeyModifier})
	if h.sel.State().Modifier != selection.ModifierRect {
		t.Fatalf("modifier should reset on release")
	}
	h.sel.PointerMove(pe(30, 10))
	h.q.flush()
	if got := h.scene.CrossB().Position(); got != geometry.Pt(30, 10) {
		t.Fatalf("expected free (30,10), got %v", got)
	}
}

func TestAreaSelector_TwoPointsScenario(t *testing.T) {
	h := newHarness(t)
	h.sel.KeyDown(selection.KeyEvent{Key: selection.KeySecondaryMode, Ctrl: true})
	if h.sel.State().Mode != selection.ModeTwoPoints {
		t.Fatalf("expected two-point mode, got %v", h.sel.State().Mode)
	}
	h.sel.PointerUp(pe(5, 5))
	h.q.flush()
	if !h.sel.State().Capturing || h.rec.begins != 1 {
		t.Fatalf("first corner should begin capture, state=%v begins=%d", h.sel.State(), h.rec.begins)
	}
	h.sel.PointerUp(pe(25, 45))
	h.q.flush()
	if h.rec.begins != 1 || len(h.rec.ends) != 1 {
		t.Fatalf("expected one begin and one end, got %d/%d", h.rec.begins, len(h.rec.ends))
	}
	if h.rec.ends[0] != (corners{5, 5, 25, 45}) {
		t.Fatalf("unexpected corners %+v", h.rec.ends[0])
	}
	if h.sel.State().Capturing {
		t.Fatalf("second corner should end capture")
	}
	// both crosses re-snap to the release point for the next pair
	if h.scene.CrossA().Position() != geometry.Pt(25, 45) || h.scene.CrossB().Position() != geometry.Pt(25, 45) {
		t.Fatalf("crosses not re-snapped: %v %v", h.scene.CrossA().Position(), h.scene.CrossB().Position())
	}
}

func TestAreaSelector_TwoPointsIdleMoveTracksBothCrosses(t *testing.T) {
	h := newHarness(t)
	h.sel.KeyDown(selection.KeyEvent{Key: selection.KeySecondaryMode, Ctrl: true})
	h.sel.PointerMove(pe(33, 44))
	h.q.flush()
	if h.scene.CrossA().Position() != geometry.Pt(33, 44) || h.scene.CrossB().Position() != geometry.Pt(33, 44) {
		t.Fatalf("both crosses should track the pointer before the first click")
	}
}

func TestAreaSelector_TwoPointsLeaveMovesSecondaryCross(t *testing.T) {
	h := newHarness(t)
	h.sel.KeyDown(selection.KeyEvent{Key: selection.KeySecondaryMode, Ctrl: true})
	h.sel.PointerUp(pe(10, 10))
	h.sel.PointerLeave(pe(250, 50))
	h.q.flush()
	if got := h.scene.CrossB().Position(); got != geometry.Pt(200, 50) {
		t.Fatalf("secondary cross should clamp to exit point, got %v", got)
	}
	if got := h.scene.Box().Region(); got != geometry.RegionFromCorners(geometry.Pt(10, 10), geometry.Pt(200, 50)) {
		t.Fatalf("box not recomputed on leave: %v", got)
	}
}

func TestAreaSelector_ReleasingCtrlReturnsToRect(t *testing.T) {
	h := newHarness(t)
	h.sel.KeyDown(selection.KeyEvent{Key: selection.KeySecondaryMode, Ctrl: true})
	h.sel.PointerUp(pe(10, 10))
	h.sel.PointerMove(pe(40, 30))
	h.q.flush()
	h.sel.KeyUp(selection.KeyEvent{Key: selection.KeySecondaryMode})
	st := h.sel.State()
	if st.Mode != selection.ModeRect || st.Capturing {
		t.Fatalf("expected idle rect mode, got %v", st)
	}
	h.q.flush()
	if h.scene.CrossA().Position() != geometry.Pt(40, 30) {
		t.Fatalf("primary cross should re-sync to the secondary, got %v", h.scene.CrossA().Position())
	}
	if h.scene.CrossB().Visible() || h.scene.Box().Visible() || h.scene.Mask().Visible() {
		t.Fatalf("secondary visuals should be hidden")
	}
	if len(h.rec.ends) != 0 {
		t.Fatalf("aborting must not emit a selection")
	}
}

func TestAreaSelector_ModeKeyIgnoredMidCapture(t *testing.T) {
	h := newHarness(t)
	h.sel.PointerDown(pe(10, 10))
	h.q.flush()
	h.sel.KeyDown(selection.KeyEvent{Key: selection.KeySecondaryMode, Ctrl: true})
	if st := h.sel.State(); st.Mode != selection.ModeRect || !st.Capturing {
		t.Fatalf("mode must not switch during a rect capture, got %v", st)
	}
	h.sel.PointerUp(pe(20, 20))
	h.q.flush()
	if h.sel.State().Capturing {
		t.Fatalf("capture should end on release")
	}
	h.sel.KeyDown(selection.KeyEvent{Key: selection.KeySecondaryMode, Ctrl: true})
	if st := h.sel.State(); st.Mode != selection.ModeTwoPoints || st.Capturing {
		t.Fatalf("expected idle two-point mode, got %v", st)
	}
	// the next click starts a fresh pair instead of finishing a stale capture
	h.sel.PointerUp(pe(50, 50))
	h.q.flush()
	if len(h.rec.ends) != 1 || h.rec.begins != 2 {
		t.Fatalf("expected a new begin only, got begins=%d ends=%d", h.rec.begins, len(h.rec.ends))
	}
}

func TestAreaSelector_CentralPointScenario(t *testing.T) {
	h := newHarness(t)
	h.sel.SetSelectionMode(selection.ModeCentralPoint)
	if h.sel.TemplateSize() != selection.DefaultTemplateSize {
		t.Fatalf("expected default template, got %v", h.sel.TemplateSize())
	}
	h.sel.PointerMove(pe(50, 50))
	h.q.flush()
	if !h.scene.Template().Visible() || h.scene.Template().Origin() != geometry.Pt(40, 40) {
		t.Fatalf("template should be centred on the pointer, got %v", h.scene.Template().Origin())
	}
	h.sel.PointerDown(pe(50, 50))
	h.sel.PointerUp(pe(50, 50))
	h.q.flush()
	if h.rec.begins != 1 || len(h.rec.ends) != 1 {
		t.Fatalf("expected one begin and one end, got %d/%d", h.rec.begins, len(h.rec.ends))
	}
	if h.rec.ends[0] != (corners{40, 40, 60, 60}) {
		t.Fatalf("unexpected template region %+v", h.rec.ends[0])
	}
	if h.sel.State().Capturing {
		t.Fatalf("central point mode never captures")
	}
}

func TestAreaSelector_CentralPointClampsToBounds(t *testing.T) {
	h := newHarness(t)
	h.sel.SetSelectionMode(selection.ModeCentralPoint, selection.WithTemplate(geometry.NewRect(40, 30)))
	h.sel.PointerMove(pe(5, 95))
	h.sel.PointerUp(pe(5, 95))
	h.q.flush()
	if len(h.rec.ends) != 1 || h.rec.ends[0] != (corners{0, 80, 25, 100}) {
		t.Fatalf("expected clamped template region, got %+v", h.rec.ends)
	}
	if h.scene.Template().Size() != geometry.NewRect(40, 30) {
		t.Fatalf("template element not resized: %v", h.scene.Template().Size())
	}
}

func TestAreaSelector_SetModeHidesModeVisuals(t *testing.T) {
	h := newHarness(t)
	h.sel.PointerDown(pe(10, 10))
	h.q.flush()
	h.sel.SetSelectionMode(selection.ModeCentralPoint)
	h.q.flush()
	if h.sel.State().Capturing {
		t.Fatalf("central point mode must not carry a capture")
	}
	if h.scene.Mask().Visible() || h.scene.Box().Visible() || h.scene.CrossB().Visible() {
		t.Fatalf("mask, box and secondary cross should hide")
	}
	h.sel.PointerEnter(pe(1, 1))
	h.q.flush()
	if !h.scene.Template().Visible() {
		t.Fatalf("template should show on enter in central mode")
	}
	h.sel.SetSelectionMode(selection.ModeRect)
	h.q.flush()
	if h.scene.Template().Visible() {
		t.Fatalf("template should hide outside central mode")
	}
}

func TestAreaSelector_LeaveInRectHidesCrosses(t *testing.T) {
	h := newHarness(t)
	h.sel.PointerEnter(pe(1, 1))
	h.sel.PointerMove(pe(5, 5))
	h.q.flush()
	if !h.scene.CrossA().Visible() {
		t.Fatalf("primary cross should show on enter")
	}
	h.sel.PointerLeave(pe(0, 0))
	h.q.flush()
	if h.scene.CrossA().Visible() || h.scene.Box().Visible() {
		t.Fatalf("idle leave should hide crosses and box")
	}
}

func TestAreaSelector_LockForcesEnable(t *testing.T) {
	h := newHarness(t)
	h.sel.Disable()
	if h.sel.State().Enabled {
		t.Fatalf("disable failed")
	}
	h.sel.Lock()
	if st := h.sel.State(); !st.Enabled || !st.Locked {
		t.Fatalf("lock must force enable, got %v", st)
	}
	if h.rec.locked != 1 {
		t.Fatalf("onLocked not called")
	}
}

func TestAreaSelector_DisableBlockedWhileLocked(t *testing.T) {
	h := newHarness(t)
	h.sel.Lock()
	h.sel.Disable()
	if !h.sel.State().Enabled {
		t.Fatalf("locked selector must stay enabled")
	}
	h.sel.Unlock()
	if h.rec.unlocked != 1 || h.sel.State().Locked {
		t.Fatalf("unlock failed")
	}
	if !h.sel.State().Enabled {
		t.Fatalf("unlock must not change enabled")
	}
	h.sel.Disable()
	h.q.flush()
	if h.sel.State().Enabled || h.scene.LayerVisible() {
		t.Fatalf("disable should hide the layer once unlocked")
	}
}

func TestAreaSelector_DisabledIgnoresInput(t *testing.T) {
	h := newHarness(t)
	h.sel.Disable()
	h.q.flush()
	h.sel.PointerEnter(pe(1, 1))
	h.sel.PointerDown(pe(10, 10))
	h.sel.PointerUp(pe(20, 20))
	h.sel.KeyDown(selection.KeyEvent{Key: selection.KeySecondaryMode, Ctrl: true, Shift: true})
	h.q.flush()
	if h.rec.begins != 0 || len(h.rec.ends) != 0 {
		t.Fatalf("disabled selector emitted selections")
	}
	if st := h.sel.State(); st.Mode != selection.ModeRect || st.Modifier != selection.ModifierRect {
		t.Fatalf("disabled selector changed state: %v", st)
	}
	if h.scene.CrossA().Visible() {
		t.Fatalf("disabled selector showed the cross")
	}
}

func TestAreaSelector_DisableDropsPendingPointerWork(t *testing.T) {
	h := newHarness(t)
	h.sel.PointerEnter(pe(10, 10))
	h.sel.PointerDown(pe(10, 10))
	h.sel.PointerMove(pe(40, 30))
	h.sel.Disable()
	h.q.flush()

	st := h.sel.State()
	if st.Enabled || st.Capturing {
		t.Fatalf("expected disabled and idle, got %v", st)
	}
	if h.rec.begins != 0 || len(h.surface.captured) != 0 {
		t.Fatalf("queued press must not start a capture: begins=%d captured=%v", h.rec.begins, h.surface.captured)
	}
	if h.scene.CrossA().Visible() || h.scene.Mask().Visible() || h.scene.Box().Visible() {
		t.Fatalf("overlay must stay hidden after disable")
	}

	h.sel.Enable()
	h.q.flush()
	if h.sel.State().Capturing {
		t.Fatalf("no capture may carry over into the re-enabled session")
	}
}

func TestAreaSelector_CentralModeReleasesPointerCapture(t *testing.T) {
	h := newHarness(t)
	h.sel.PointerDown(pe(10, 10))
	h.q.flush()
	if len(h.surface.captured) != 1 {
		t.Fatalf("expected a pointer capture, got %v", h.surface.captured)
	}
	h.sel.SetSelectionMode(selection.ModeCentralPoint)
	h.q.flush()
	if h.sel.State().Capturing {
		t.Fatalf("central mode must end the capture")
	}
	if len(h.surface.released) != 1 || h.surface.released[0] != 1 {
		t.Fatalf("pointer capture not released: %v", h.surface.released)
	}

	h.sel.SetSelectionMode(selection.ModeCentralPoint)
	if len(h.surface.released) != 1 {
		t.Fatalf("idle mode switch must not release again: %v", h.surface.released)
	}
}

func TestAreaSelector_LockKeysWorkWhileDisabled(t *testing.T) {
	h := newHarness(t)
	h.sel.Disable()
	h.sel.KeyUp(selection.KeyEvent{Key: selection.KeyLock})
	if st := h.sel.State(); !st.Locked || !st.Enabled {
		t.Fatalf("lock key should lock and enable, got %v", st)
	}
	h.q.flush()
	if !h.scene.LayerVisible() {
		t.Fatalf("enable should show the layer")
	}
	h.sel.KeyUp(selection.KeyEvent{Key: selection.KeyLock})
	if h.sel.State().Locked {
		t.Fatalf("second lock key press should unlock")
	}
	h.sel.Lock()
	h.sel.KeyUp(selection.KeyEvent{Key: selection.KeyEscape})
	if h.sel.State().Locked {
		t.Fatalf("escape should unlock")
	}
}

func TestAreaSelector_VisualWritesDeferredAndCoalesced(t *testing.T) {
	h := newHarness(t)
	h.scene.ClearDirty()
	h.sel.PointerEnter(pe(0, 0))
	for i := 1; i <= 10; i++ {
		h.sel.PointerMove(pe(float64(i*10), float64(i*5)))
	}
	if h.scene.Dirty() || h.scene.CrossA().Visible() {
		t.Fatalf("no element may change before the frame boundary")
	}
	h.q.flush()
	if got := h.scene.CrossA().Position(); got != geometry.Pt(100, 50) {
		t.Fatalf("expected latest position after flush, got %v", got)
	}
	if h.scene.CrossA().Transitions() != 1 {
		t.Fatalf("repeated shows should produce one transition, got %d", h.scene.CrossA().Transitions())
	}
}

func TestAreaSelector_ResizeDeferredToElements(t *testing.T) {
	h := newHarness(t)
	h.sel.ResizeTo(300, 150)
	if h.sel.Bounds() != geometry.NewRect(300, 150) {
		t.Fatalf("bounds not updated: %v", h.sel.Bounds())
	}
	if w, hh := h.surface.Size(); w != 300 || hh != 150 {
		t.Fatalf("surface not resized: %vx%v", w, hh)
	}
	if h.scene.Mask().Bounds() != geometry.NewRect(200, 100) {
		t.Fatalf("element resize should wait for the frame")
	}
	h.q.flush()
	if h.scene.Mask().Bounds() != geometry.NewRect(300, 150) || h.scene.CrossA().Span() != geometry.NewRect(300, 150) {
		t.Fatalf("mask/cross not resized: %v %v", h.scene.Mask().Bounds(), h.scene.CrossA().Span())
	}
	h.surface.w, h.surface.h = 120, 80
	h.sel.Resize()
	h.q.flush()
	if h.scene.CrossB().Span() != geometry.NewRect(120, 80) {
		t.Fatalf("resize from surface not applied: %v", h.scene.CrossB().Span())
	}
}

func TestAreaSelector_ListenersSeeTransitions(t *testing.T) {
	h := newHarness(t)
	h.sel.PointerDown(pe(1, 1))
	h.q.flush()
	h.sel.PointerUp(pe(9, 9))
	h.q.flush()
	if len(h.rec.states) != 2 || !h.rec.states[0].Capturing || h.rec.states[1].Capturing {
		t.Fatalf("unexpected state sequence %v", h.rec.states)
	}
}

func TestAreaSelector_NilCallbacksSkipped(t *testing.T) {
	q := &frameQueue{}
	surface := &mockSurface{w: 50, h: 50}
	scene := overlay.NewScene(50, 50, overlay.DefaultStyle())
	sel := selection.New(surface, q, selection.Callbacks{}, scene.Elements())
	sel.PointerDown(pe(1, 1))
	sel.PointerUp(pe(2, 2))
	sel.Lock()
	sel.Unlock()
	q.flush()
	if sel.Selection() != geometry.RegionFromCorners(geometry.Pt(1, 1), geometry.Pt(1, 1)) {
		t.Fatalf("unexpected selection %v", sel.Selection())
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []selection.Mode{selection.ModeRect, selection.ModeTwoPoints, selection.ModeCentralPoint} {
		got, err := selection.ParseMode(m.String())
		if err != nil || got != m {
			t.Fatalf("round trip %v: got %v err %v", m, got, err)
		}
	}
	if _, err := selection.ParseMode("lasso"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
