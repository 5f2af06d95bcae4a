package app

import (
	"errors"
	"image/color"
	"io"
	"log/slog"

	"github.com/soocke/area-selector-go/capture"
	"github.com/soocke/area-selector-go/config"
	"github.com/soocke/area-selector-go/domain/geometry"
	"github.com/soocke/area-selector-go/domain/selection"
	"github.com/soocke/area-selector-go/ui/model"
	"github.com/soocke/area-selector-go/ui/overlay"
	"github.com/soocke/area-selector-go/ui/presenter"
	"github.com/soocke/area-selector-go/ui/theme"
	"github.com/soocke/area-selector-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	CfgPath  string
	Logger   *slog.Logger
	Selector *model.SelectorModel
	Records  *model.SelectionModel
	Clock    *model.DragClock
	Source   *capture.Source
	Scene    *overlay.Scene
	Queue    *presenter.FrameQueue
	RootView *view.RootView
	Engine   *selection.AreaSelector // set once the surface exists

	// Presenters
	StatusPresenter    *presenter.StatusPresenter
	SelectionPresenter *presenter.SelectionPresenter
	SelectorPresenter  *presenter.SelectorPresenter
	DragPresenter      *presenter.DragPresenter
	SurfacePresenter   *presenter.SurfacePresenter
	Loop               *presenter.Loop
}

// BuildContainer constructs everything that does not need a Tk widget.
// Side-effects limited to background acquisition. Selections are written
// as JSON lines to out.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, out io.Writer) *AppContainer {
	c := &AppContainer{Config: cfg, CfgPath: cfgPath, Logger: logger}
	c.Selector = &model.SelectorModel{}
	c.Records = model.NewSelectionModel()
	c.Clock = model.NewDragClock()
	c.Source = capture.NewSource(nil, logger)
	if err := c.Source.Load(c.backgroundOptions()); err != nil {
		if !errors.Is(err, capture.ErrNoSource) {
			logger.Error("background", "error", err)
		}
		c.Source.Set(capture.Blank(cfg.SurfaceWidth, cfg.SurfaceHeight, color.RGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xff}))
	}
	w, h := c.Source.Size()
	c.Scene = overlay.NewScene(w, h, theme.Overlay(cfg.MaskAlpha()))
	c.Queue = presenter.NewFrameQueue()
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.StatusPresenter = presenter.NewStatusPresenter(c.RootView)
	c.SelectionPresenter = presenter.NewSelectionPresenter(c.Records, presenter.StateFunc(c.engineState), c.Source, c.RootView, out, logger)
	// Surface-bound presenters are wired by the app once the widgets exist.
	return c
}

func (c *AppContainer) backgroundOptions() capture.Options {
	return capture.Options{
		Path:      c.Config.BackgroundPath,
		Screen:    c.Config.GrabScreen,
		MaxWidth:  c.Config.SurfaceWidth,
		MaxHeight: c.Config.SurfaceHeight,
	}
}

func (c *AppContainer) engineState() selection.State {
	if c.Engine == nil {
		return selection.State{}
	}
	return c.Engine.State()
}

// Template returns the configured central-point template.
func (c *AppContainer) Template() geometry.Rect {
	return geometry.NewRect(float64(c.Config.TemplateWidth), float64(c.Config.TemplateHeight))
}

// ReloadBackground re-acquires the background and resizes the surface to it.
func (c *AppContainer) ReloadBackground() error {
	if err := c.Source.Load(c.backgroundOptions()); err != nil {
		return err
	}
	w, h := c.Source.Size()
	if c.Engine != nil {
		if b := c.Engine.Bounds(); int(b.Width) != w || int(b.Height) != h {
			c.Engine.ResizeTo(float64(w), float64(h))
		}
	}
	if c.SurfacePresenter != nil {
		c.SurfacePresenter.Invalidate()
	}
	return nil
}
