package presenter

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/soocke/area-selector-go/domain/geometry"
	"github.com/soocke/area-selector-go/domain/selection"
	"github.com/soocke/area-selector-go/ui/model"
	"github.com/soocke/area-selector-go/ui/overlay"
)

type mockEngine struct {
	st              selection.State
	enables         int
	disables        int
	lockToggles     int
	lastMode        selection.Mode
	lastModeOptions int
}

func (e *mockEngine) Enable() { e.enables++; e.st.Enabled = true }
func (e *mockEngine) Disable() {
	e.disables++
	if !e.st.Locked {
		e.st.Enabled = false
	}
}
func (e *mockEngine) ToggleLock() {
	e.lockToggles++
	e.st.Locked = !e.st.Locked
	if e.st.Locked {
		e.st.Enabled = true
	}
}
func (e *mockEngine) SetSelectionMode(m selection.Mode, opts ...selection.ModeOption) {
	e.lastMode = m
	e.st.Mode = m
	e.lastModeOptions = len(opts)
}
func (e *mockEngine) State() selection.State { return e.st }

type mockSelectorView struct {
	reset, editableCalls int
	lastEditable         bool
}

func (v *mockSelectorView) PreviewReset()         { v.reset++ }
func (v *mockSelectorView) ConfigEditable(b bool) { v.editableCalls++; v.lastEditable = b }

func TestSelectorPresenter_EnableDisable_Idempotent(t *testing.T) {
	m := &model.SelectorModel{}
	eng := &mockEngine{}
	view := &mockSelectorView{}
	p := NewSelectorPresenter(m, eng, view, nil)

	p.Enable()
	if !m.Enabled() || eng.enables != 1 || view.lastEditable || view.editableCalls != 1 {
		t.Fatalf("enable failed: enabled=%v enables=%d editableCalls=%d lastEditable=%v", m.Enabled(), eng.enables, view.editableCalls, view.lastEditable)
	}
	p.Enable()
	if eng.enables != 1 {
		t.Fatalf("enable not idempotent: enables=%d", eng.enables)
	}

	p.Disable()
	if m.Enabled() || eng.disables != 1 || view.reset != 1 || !view.lastEditable || view.editableCalls != 2 {
		t.Fatalf("disable failed: enabled=%v disables=%d reset=%d editableCalls=%d lastEditable=%v", m.Enabled(), eng.disables, view.reset, view.editableCalls, view.lastEditable)
	}
	p.Disable()
	if eng.disables != 1 || view.reset != 1 {
		t.Fatalf("disable not idempotent: disables=%d reset=%d", eng.disables, view.reset)
	}
}

func TestSelectorPresenter_Toggle(t *testing.T) {
	m := &model.SelectorModel{}
	eng := &mockEngine{}
	view := &mockSelectorView{}
	p := NewSelectorPresenter(m, eng, view, nil)
	p.Toggle() // enable path
	if !m.Enabled() || eng.enables != 1 {
		t.Fatalf("toggle enable failed")
	}
	p.Toggle() // disable path
	if m.Enabled() || eng.disables != 1 || view.reset != 1 {
		t.Fatalf("toggle disable failed")
	}
}

func TestSelectorPresenter_DisableRefusedWhileLocked(t *testing.T) {
	m := &model.SelectorModel{}
	eng := &mockEngine{st: selection.State{Enabled: true}}
	view := &mockSelectorView{}
	p := NewSelectorPresenter(m, eng, view, nil)
	if !m.Enabled() {
		t.Fatalf("model should start from the engine state")
	}
	p.ToggleLock()
	p.Disable()
	if !m.Enabled() || view.reset != 0 {
		t.Fatalf("locked selector must stay enabled: enabled=%v reset=%d", m.Enabled(), view.reset)
	}
}

func TestSelectorPresenter_LockEnables(t *testing.T) {
	m := &model.SelectorModel{}
	eng := &mockEngine{}
	view := &mockSelectorView{}
	p := NewSelectorPresenter(m, eng, view, nil)
	p.ToggleLock()
	if !m.Enabled() || view.lastEditable {
		t.Fatalf("lock should enable and freeze config")
	}
}

func TestSelectorPresenter_SyncFollowsKeyboardLock(t *testing.T) {
	m := &model.SelectorModel{}
	eng := &mockEngine{}
	view := &mockSelectorView{}
	p := NewSelectorPresenter(m, eng, view, nil)
	eng.st.Enabled = true // lock key pressed while disabled
	p.Sync()
	if !m.Enabled() || view.editableCalls != 1 || view.lastEditable {
		t.Fatalf("sync did not mirror engine: enabled=%v calls=%d", m.Enabled(), view.editableCalls)
	}
	p.Sync()
	if view.editableCalls != 1 {
		t.Fatalf("sync without change touched the view")
	}
}

func TestSelectorPresenter_SetMode(t *testing.T) {
	eng := &mockEngine{}
	p := NewSelectorPresenter(&model.SelectorModel{}, eng, &mockSelectorView{}, func() geometry.Rect { return geometry.NewRect(30, 30) })
	if err := p.SetMode("centralpoint"); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if eng.lastMode != selection.ModeCentralPoint || eng.lastModeOptions != 1 {
		t.Fatalf("template option not passed: mode=%v opts=%d", eng.lastMode, eng.lastModeOptions)
	}
	if err := p.SetMode("twopoints"); err != nil || eng.lastModeOptions != 0 {
		t.Fatalf("unexpected template option outside central mode")
	}
	if err := p.SetMode("lasso"); err == nil || eng.lastMode != selection.ModeTwoPoints {
		t.Fatalf("unknown mode should fail and keep the mode")
	}
}

type mockStatusView struct {
	labels []string
	locks  []bool
}

func (v *mockStatusView) SetStateLabel(s string) { v.labels = append(v.labels, s) }
func (v *mockStatusView) SetLockLabel(b bool)    { v.locks = append(v.locks, b) }

func TestStatusPresenter_ReflectsLatestOnly(t *testing.T) {
	view := &mockStatusView{}
	p := NewStatusPresenter(view)
	p.Tick(time.Now())
	if len(view.labels) != 0 {
		t.Fatalf("no state queued, view should be untouched")
	}
	p.OnState(selection.State{Enabled: true, Capturing: true})
	p.OnState(selection.State{Enabled: true, Mode: selection.ModeTwoPoints})
	p.Tick(time.Now())
	if len(view.labels) != 1 || !strings.Contains(view.labels[0], "twopoints") || !strings.Contains(view.labels[0], "idle") {
		t.Fatalf("unexpected labels %v", view.labels)
	}
	if len(view.locks) != 1 || view.locks[0] {
		t.Fatalf("first tick should set the lock label once, got %v", view.locks)
	}
	p.OnState(selection.State{Enabled: true, Mode: selection.ModeTwoPoints})
	p.Tick(time.Now())
	if len(view.labels) != 1 {
		t.Fatalf("unchanged state should not update the view")
	}
	p.OnState(selection.State{Enabled: true, Locked: true, Mode: selection.ModeTwoPoints})
	p.Tick(time.Now())
	if len(view.locks) != 2 || !view.locks[1] {
		t.Fatalf("lock change not reflected: %v", view.locks)
	}
}

func TestStatusText(t *testing.T) {
	got := StatusText(selection.State{Mode: selection.ModeRect, Modifier: selection.ModifierSquare})
	if got != "Mode: rect (square) | disabled" {
		t.Fatalf("unexpected status %q", got)
	}
}

type mockSelectionView struct {
	labels   []string
	previews []image.Image
}

func (v *mockSelectionView) SetSelectionLabel(s string)    { v.labels = append(v.labels, s) }
func (v *mockSelectionView) UpdatePreview(img image.Image) { v.previews = append(v.previews, img) }

type staticBackground struct{ img image.Image }

func (b staticBackground) Background() image.Image { return b.img }

func TestSelectionPresenter_WritesJSONLines(t *testing.T) {
	var out bytes.Buffer
	m := model.NewSelectionModel()
	st := selection.State{Mode: selection.ModeTwoPoints}
	bg := staticBackground{img: image.NewRGBA(image.Rect(0, 0, 100, 100))}
	view := &mockSelectionView{}
	p := NewSelectionPresenter(m, StateFunc(func() selection.State { return st }), bg, view, &out, nil)
	cb := p.Callbacks(nil, nil)
	cb.OnSelectionBegin()
	cb.OnSelectionEnd(5, 5, 25, 45)
	cb.OnSelectionEnd(60, 40, 10, 10)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one line per selection, got %d", len(lines))
	}
	var rec model.SelectionRecord
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if rec.Mode != "twopoints" || rec.X2 != 25 || rec.Y2 != 45 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.Region.Max != geometry.Pt(25, 45) {
		t.Fatalf("region not normalized: %v", rec.Region)
	}

	p.Tick(time.Now())
	if len(view.labels) != 1 || !strings.Contains(view.labels[0], "50x30 at (10,10)") {
		t.Fatalf("unexpected labels %v", view.labels)
	}
	if len(view.previews) != 1 {
		t.Fatalf("preview not updated")
	}
	p.Tick(time.Now())
	if len(view.labels) != 1 {
		t.Fatalf("same selection shown twice")
	}
}

type mockSurfaceView struct{ frames [][]byte }

func (v *mockSurfaceView) UpdateSurface(png []byte) { v.frames = append(v.frames, png) }

func TestSurfacePresenter_RendersDirtyScene(t *testing.T) {
	scene := overlay.NewScene(40, 30, overlay.DefaultStyle())
	bg := image.NewRGBA(image.Rect(0, 0, 40, 30))
	bg.SetRGBA(0, 0, color.RGBA{R: 1, A: 0xff})
	view := &mockSurfaceView{}
	p := NewSurfacePresenter(scene, staticBackground{img: bg}, view, nil)
	defer p.Close()

	p.Tick()
	if scene.Dirty() {
		t.Fatalf("tick should consume the dirty flag")
	}
	deadline := time.Now().Add(2 * time.Second)
	for len(view.frames) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
		p.Tick()
	}
	if len(view.frames) != 1 {
		t.Fatalf("expected one frame, got %d", len(view.frames))
	}
	if rendered, _ := p.Stats(); rendered != 1 {
		t.Fatalf("stats not updated: %d", rendered)
	}
	// clean scene, nothing new to draw
	time.Sleep(20 * time.Millisecond)
	p.Tick()
	if len(view.frames) != 1 {
		t.Fatalf("clean scene should not re-render")
	}
}

func TestLoop_FlushesBeforeRendering(t *testing.T) {
	q := NewFrameQueue()
	scene := overlay.NewScene(10, 10, overlay.DefaultStyle())
	scene.ClearDirty()
	q.Post(func() { scene.CrossA().Show() })
	scheduled := 0
	l := NewLoop(q, nil, nil, nil, nil, nil, func() { scheduled++ })
	l.Tick()
	if !scene.CrossA().Visible() || !scene.Dirty() || scheduled != 1 {
		t.Fatalf("loop did not flush and reschedule")
	}
	var nilLoop *Loop
	nilLoop.Tick()
}
