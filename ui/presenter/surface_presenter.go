package presenter

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/area-selector-go/ui/images"
	"github.com/soocke/area-selector-go/ui/overlay"
)

// SceneSource is the overlay scene being drawn.
type SceneSource interface {
	Dirty() bool
	ClearDirty()
	Snapshot() overlay.Frame
}

// SurfaceView receives encoded frames for the selectable surface.
type SurfaceView interface {
	UpdateSurface(png []byte)
}

type renderTask struct {
	sequence uint64
	frame    overlay.Frame
	bg       image.Image
}

type renderResult struct {
	sequence uint64
	png      []byte
	err      error
	duration time.Duration
}

// SurfacePresenter composites the overlay over the background off the Tk
// thread. At most one render is queued; newer snapshots replace older ones
// and only the latest result reaches the view.
type SurfacePresenter struct {
	Scene      SceneSource
	Background BackgroundSource
	View       SurfaceView
	logger     *slog.Logger

	workerOnce sync.Once
	closeOnce  sync.Once
	workCh     chan renderTask
	resultCh   chan renderResult

	seq      uint64
	shownSeq uint64
	lastTook time.Duration
	rendered uint64
}

// NewSurfacePresenter constructs a surface presenter.
func NewSurfacePresenter(scene SceneSource, bg BackgroundSource, view SurfaceView, logger *slog.Logger) *SurfacePresenter {
	return &SurfacePresenter{
		Scene:      scene,
		Background: bg,
		View:       view,
		logger:     logger,
		workCh:     make(chan renderTask, 1),
		resultCh:   make(chan renderResult, 1),
	}
}

// Invalidate forces a render on the next tick, e.g. after the background changed.
func (p *SurfacePresenter) Invalidate() {
	if p == nil {
		return
	}
	p.seq++
	p.dispatch()
}

// Tick applies finished renders and schedules a new one when the scene changed.
func (p *SurfacePresenter) Tick() {
	if p == nil || p.Scene == nil || p.View == nil {
		return
	}
	p.ensureWorker()

	for {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			goto drained
		}
	}

drained:
	if !p.Scene.Dirty() {
		return
	}
	p.seq++
	p.dispatch()
}

// Stats returns how many frames reached the view and the last render time.
func (p *SurfacePresenter) Stats() (rendered uint64, last time.Duration) {
	if p == nil {
		return 0, 0
	}
	return p.rendered, p.lastTook
}

// Close stops the worker. Later ticks are ignored.
func (p *SurfacePresenter) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.workerOnce.Do(func() {}) // never start after close
		close(p.workCh)
		p.View = nil
	})
}

func (p *SurfacePresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *SurfacePresenter) dispatch() {
	if p.Scene == nil || p.View == nil {
		return
	}
	frame := p.Scene.Snapshot()
	p.Scene.ClearDirty()
	var bg image.Image
	if p.Background != nil {
		bg = p.Background.Background()
	}
	task := renderTask{sequence: p.seq, frame: frame, bg: bg}
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *SurfacePresenter) runWorker() {
	for task := range p.workCh {
		res := p.render(task)
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *SurfacePresenter) render(task renderTask) (res renderResult) {
	res.sequence = task.sequence
	defer func() {
		if r := recover(); r != nil {
			res.err = fmt.Errorf("render panic: %v", r)
		}
	}()
	start := time.Now()
	img := task.frame.RenderImage(task.bg)
	res.png = images.EncodePNG(img)
	overlay.RecycleFrame(img)
	res.duration = time.Since(start)
	return res
}

func (p *SurfacePresenter) handleResult(res renderResult) {
	if res.err != nil {
		if p.logger != nil {
			p.logger.Error("surface render", "error", res.err)
		}
		return
	}
	// a slower older render may land after a newer one
	if res.sequence <= p.shownSeq || len(res.png) == 0 {
		return
	}
	p.shownSeq = res.sequence
	p.lastTook = res.duration
	p.rendered++
	p.View.UpdateSurface(res.png)
}
