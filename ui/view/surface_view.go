package view

import (
	"image"
	"log/slog"

	"github.com/soocke/area-selector-go/config"
	"github.com/soocke/area-selector-go/domain/selection"
	"github.com/soocke/area-selector-go/ui/images"
	"github.com/soocke/area-selector-go/ui/input"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// mousePointer is the only pointer Tk reports.
const mousePointer = 1

// SurfaceView is the selectable area: a label showing the composited
// overlay. It implements selection.Surface and forwards Tk events to the
// subscribed selector.
type SurfaceView struct {
	label  *LabelWidget
	photo  *Img
	width  float64
	height float64
	hub    *input.Hub
	keys   *input.KeyTranslator
	logger *slog.Logger
}

var _ selection.SizedSurface = (*SurfaceView)(nil)

// NewSurfaceView creates the surface label (unplaced) sized width x height.
func NewSurfaceView(width, height int, km config.Keymap, logger *slog.Logger) *SurfaceView {
	v := &SurfaceView{
		width:  float64(width),
		height: float64(height),
		hub:    input.NewHub(),
		keys:   input.NewKeyTranslator(km),
		logger: logger,
	}
	v.photo = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1))))))
	v.label = Label(Image(v.photo), Borderwidth(0), Cursor("crosshair"))
	return v
}

// Widget returns the label for layout.
func (v *SurfaceView) Widget() *LabelWidget { return v.label }

// Bind installs pointer bindings on the label and key bindings on the root
// window. Key routing is decided by the hub; see input.Forward.
func (v *SurfaceView) Bind() {
	if v == nil || v.label == nil {
		return
	}
	pointer := func(e *Event) selection.PointerEvent {
		return selection.PointerEvent{X: float64(e.X), Y: float64(e.Y), PointerID: mousePointer}
	}
	Bind(v.label, "<Enter>", Command(func(e *Event) { v.hub.Enter(pointer(e)) }))
	Bind(v.label, "<Leave>", Command(func(e *Event) { v.hub.Leave(pointer(e)) }))
	Bind(v.label, "<ButtonPress-1>", Command(func(e *Event) { v.hub.Down(pointer(e)) }))
	Bind(v.label, "<ButtonRelease-1>", Command(func(e *Event) { v.hub.Up(pointer(e)) }))
	Bind(v.label, "<Motion>", Command(func(e *Event) { v.hub.Move(pointer(e)) }))
	Bind(App, "<KeyPress>", Command(func(e *Event) { v.hub.KeyDown(v.keys.Press(e.Keysym)) }))
	Bind(App, "<KeyRelease>", Command(func(e *Event) { v.hub.KeyUp(v.keys.Release(e.Keysym)) }))
	Bind(App, "<FocusOut>", Command(func() { v.keys.Reset() }))
}

// SetEditing is called by text fields gaining or losing keyboard focus.
func (v *SurfaceView) SetEditing(editing bool) {
	if v != nil {
		v.hub.SetEditing(editing)
	}
}

// SetKeymap rebinds the selector keys.
func (v *SurfaceView) SetKeymap(km config.Keymap) {
	if v != nil {
		v.keys.SetKeymap(km)
	}
}

func (v *SurfaceView) Size() (float64, float64) { return v.width, v.height }

// SetSize records the new logical size. The label follows the next frame.
func (v *SurfaceView) SetSize(width, height float64) {
	v.width, v.height = width, height
}

// SetPointerCapture notes the capture. Tk grabs the pointer implicitly while
// a button is held, so drags already keep reporting outside the label.
func (v *SurfaceView) SetPointerCapture(id int) {
	if v.logger != nil {
		v.logger.Debug("pointer capture", "pointer", id)
	}
}

func (v *SurfaceView) ReleasePointerCapture(id int) {
	if v.logger != nil {
		v.logger.Debug("pointer release", "pointer", id)
	}
}

func (v *SurfaceView) Subscribe(h selection.InputHandler) (release func()) {
	return v.hub.Subscribe(h)
}

// UpdateSurface shows an encoded frame, disposing the previous photo.
func (v *SurfaceView) UpdateSurface(png []byte) {
	if v == nil || v.label == nil || len(png) == 0 {
		return
	}
	photo := NewPhoto(Data(png))
	v.label.Configure(Image(photo))
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = photo
}
