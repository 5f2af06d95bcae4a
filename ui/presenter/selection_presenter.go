package presenter

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/soocke/area-selector-go/domain/selection"
	"github.com/soocke/area-selector-go/ui/images"
	"github.com/soocke/area-selector-go/ui/model"
)

// PreviewSize bounds the selection preview thumbnail.
const PreviewSize = 160

// StateSource reports the selector state at callback time.
type StateSource interface {
	State() selection.State
}

// StateFunc adapts a function to StateSource, for wiring before the
// selector exists.
type StateFunc func() selection.State

func (f StateFunc) State() selection.State { return f() }

// BackgroundSource supplies the image under the overlay.
type BackgroundSource interface {
	Background() image.Image
}

// SelectionView shows the last finished selection.
type SelectionView interface {
	SetSelectionLabel(string)
	UpdatePreview(img image.Image)
}

// SelectionPresenter records selector callbacks, emits one JSON line per
// finished selection and refreshes the preview on tick.
type SelectionPresenter struct {
	model  *model.SelectionModel
	state  StateSource
	bg     BackgroundSource
	view   SelectionView
	enc    *json.Encoder
	logger *slog.Logger
	now    func() time.Time

	shownSeq uint64
}

// NewSelectionPresenter constructs the presenter. out receives the JSON lines
// and may be nil.
func NewSelectionPresenter(m *model.SelectionModel, state StateSource, bg BackgroundSource, view SelectionView, out io.Writer, logger *slog.Logger) *SelectionPresenter {
	p := &SelectionPresenter{model: m, state: state, bg: bg, view: view, logger: logger, now: time.Now}
	if out != nil {
		p.enc = json.NewEncoder(out)
	}
	return p
}

// Callbacks returns the selector callbacks bound to this presenter. onLocked
// and onUnlocked are passed through.
func (p *SelectionPresenter) Callbacks(onLocked, onUnlocked func()) selection.Callbacks {
	return selection.Callbacks{
		OnSelectionBegin: p.OnBegin,
		OnSelectionEnd:   p.OnEnd,
		OnLocked:         onLocked,
		OnUnlocked:       onUnlocked,
	}
}

// OnBegin counts a started selection.
func (p *SelectionPresenter) OnBegin() {
	if p == nil {
		return
	}
	p.model.Begin()
}

// OnEnd stores the selection and writes it out.
func (p *SelectionPresenter) OnEnd(x1, y1, x2, y2 float64) {
	if p == nil || p.model == nil {
		return
	}
	mode := selection.ModeRect
	if p.state != nil {
		mode = p.state.State().Mode
	}
	rec := p.model.Finish(mode.String(), x1, y1, x2, y2, p.now())
	if p.logger != nil {
		p.logger.Info("selection", "id", rec.ID.String(), "mode", rec.Mode, "region", rec.Region.ImageRect().String())
	}
	if p.enc == nil {
		return
	}
	if err := p.enc.Encode(rec); err != nil && p.logger != nil {
		p.logger.Error("selection output", "error", err)
	}
}

// Tick pushes the newest selection to the view once.
func (p *SelectionPresenter) Tick(now time.Time) {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	seq := p.model.Seq()
	if seq == p.shownSeq {
		return
	}
	p.shownSeq = seq
	rec, ok := p.model.Last()
	if !ok {
		return
	}
	begun, finished := p.model.Counts()
	r := rec.Region.ImageRect()
	p.view.SetSelectionLabel(fmt.Sprintf("Selection #%d/%d: %dx%d at (%d,%d)", finished, begun, r.Dx(), r.Dy(), r.Min.X, r.Min.Y))
	if p.bg == nil {
		return
	}
	bg := p.bg.Background()
	if bg == nil {
		return
	}
	crop, _, err := images.CropRegion(bg, r)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("selection preview", "error", err)
		}
		return
	}
	p.view.UpdatePreview(images.Thumbnail(crop, PreviewSize, PreviewSize))
}
