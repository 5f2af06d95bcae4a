package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/area-selector-go/assets"
	"github.com/soocke/area-selector-go/config"
	"github.com/soocke/area-selector-go/debug"
	"github.com/soocke/area-selector-go/domain/selection"
	"github.com/soocke/area-selector-go/ui/presenter"
	"github.com/soocke/area-selector-go/ui/theme"
	"github.com/soocke/area-selector-go/ui/view"
)

const debugInterval = 10 * time.Second

type app struct {
	c       *AppContainer
	surface *view.SurfaceView
	afterID string
	cancel  context.CancelFunc
	closed  bool
}

// NewApp prepares the window and the component container. Selections are
// written to out as JSON lines.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger, out io.Writer) *app {
	a := &app{c: BuildContainer(cfg, cfgPath, logger, out)}
	App.WmTitle(title)
	w, h := a.c.Source.Size()
	// surface plus controls, help and preview rows
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", w+40, h+360))
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	return a
}

// Start builds the UI, wires the selector and runs the Tk event loop.
func (a *app) Start() {
	c := a.c
	cfg := c.Config
	theme.InitStyles()

	w, h := c.Source.Size()
	a.surface = view.NewSurfaceView(w, h, cfg.Keymap, c.Logger)

	mode, err := selection.ParseMode(cfg.DefaultMode)
	if err != nil {
		c.Logger.Warn("unknown default mode", "mode", cfg.DefaultMode, "error", err)
		mode = selection.ModeRect
	}
	cb := c.SelectionPresenter.Callbacks(
		func() { c.Logger.Info("selector locked") },
		func() { c.Logger.Info("selector unlocked") },
	)
	c.Engine = selection.New(a.surface, c.Queue, cb, c.Scene.Elements(),
		selection.WithLogger(c.Logger),
		selection.WithInitialMode(mode, selection.WithTemplate(c.Template())),
	)
	c.Engine.AddListener(c.StatusPresenter.OnState)

	c.SelectorPresenter = presenter.NewSelectorPresenter(c.Selector, c.Engine, c.RootView, c.Template)
	c.DragPresenter = presenter.NewDragPresenter(c.Clock, c.Engine, c.RootView)
	c.SurfacePresenter = presenter.NewSurfacePresenter(c.Scene, c.Source, a.surface, c.Logger)

	c.RootView.Build(a.surface, assets.Help(cfg.Keymap.Lock, cfg.Keymap.Unlock), view.Handlers{
		OnToggleEnable: c.SelectorPresenter.Toggle,
		OnToggleLock:   c.SelectorPresenter.ToggleLock,
		OnModeChanged: func(name string) {
			if err := c.SelectorPresenter.SetMode(name); err != nil {
				c.Logger.Warn("mode change", "mode", name, "error", err)
			}
		},
		OnReloadBackground: func() {
			if err := c.ReloadBackground(); err != nil {
				c.Logger.Error("reload background", "error", err)
			}
		},
		OnExit:          a.exitHandler,
		OnConfigApplied: a.applyConfig,
	})
	a.surface.Bind()
	c.RootView.SetConfigEditable(!c.Engine.State().Enabled)
	c.StatusPresenter.OnState(c.Engine.State())

	c.Loop = presenter.NewLoop(c.Queue, c.SurfacePresenter, c.StatusPresenter, c.SelectionPresenter,
		c.SelectorPresenter, c.DragPresenter, a.scheduleUpdate)

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	if cfg.Debug {
		debug.StartGoroutineLogger(ctx, debugInterval, c.Logger)
		debug.StartMemLogger(ctx, debugInterval, c.Logger)
	}

	c.Logger.Info("selector ready", "width", w, "height", h, "mode", mode.String())
	a.scheduleUpdate()
	App.Wait()
}

// applyConfig pushes edited settings into the running selector.
func (a *app) applyConfig(cfg *config.Config) {
	c := a.c
	c.Config = cfg
	c.Scene.SetStyle(theme.Overlay(cfg.MaskAlpha()))
	a.surface.SetKeymap(cfg.Keymap)
	if st := c.Engine.State(); st.Mode == selection.ModeCentralPoint {
		c.Engine.SetSelectionMode(selection.ModeCentralPoint, selection.WithTemplate(c.Template()))
	}
	if c.RootView.HelpLabel != nil {
		c.RootView.HelpLabel.Configure(Txt(assets.Help(cfg.Keymap.Lock, cfg.Keymap.Unlock)))
	}
	c.SurfacePresenter.Invalidate()
	c.Logger.Info("config applied", "mode", cfg.DefaultMode, "template_w", cfg.TemplateWidth, "template_h", cfg.TemplateHeight)
}

func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	// TclAfter keeps the loop on Tk's event thread.
	a.afterID = TclAfter(a.c.Config.FrameInterval(), func() { a.c.Loop.Tick() })
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.c.Engine != nil {
		a.c.Engine.Close()
	}
	if a.c.SurfacePresenter != nil {
		a.c.SurfacePresenter.Close()
	}
	if a.cancel != nil {
		a.cancel()
	}
	Destroy(App)
}
