package view

import (
	"image"
	"log/slog"
	"strconv"
	"time"

	"github.com/soocke/area-selector-go/config"
	"github.com/soocke/area-selector-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Modes lists the combobox entries in display order.
var Modes = []string{"rect", "twopoints", "centralpoint"}

// Handlers are invoked on user actions.
type Handlers struct {
	OnToggleEnable     func()
	OnToggleLock       func()
	OnModeChanged      func(mode string)
	OnReloadBackground func()
	OnExit             func()
	OnConfigApplied    func(*config.Config)
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Surface     *SurfaceView
	Drag        DragStats
	ConfigPanel ConfigPanel
	Preview     SelectionPreview

	// Widgets
	StateLabel *LabelWidget
	LockLabel  *LabelWidget
	ModeSelect *TComboboxWidget
	HelpLabel  *LabelWidget
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout around surface. help is shown under the surface.
func (rv *RootView) Build(surface *SurfaceView, help string, h Handlers) {
	if rv == nil {
		return
	}
	rv.Surface = surface

	// Row 0: status, drag stats, controls
	top := Frame()
	Grid(top, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.StateLabel = Label(Txt("Mode: <none>"), Borderwidth(1), Relief("ridge"))
	Grid(rv.StateLabel, In(top), Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.LockLabel = Label(Txt("unlocked"), Width(9), Borderwidth(1), Relief("ridge"))
	Grid(rv.LockLabel, In(top), Row(0), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.Drag = NewDragStats(top, 0, 2)

	rv.ModeSelect = TCombobox(Values(Modes), Width(14))
	Grid(rv.ModeSelect, In(top), Row(0), Column(4), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.ModeSelect.Current(modeIndex(rv.cfg))
	Bind(rv.ModeSelect, "<<ComboboxSelected>>", Command(func() {
		if rv.ModeSelect == nil || h.OnModeChanged == nil {
			return
		}
		idxStr := rv.ModeSelect.Current(nil)
		idx, err := strconv.Atoi(idxStr)
		if err == nil && idx >= 0 && idx < len(Modes) {
			h.OnModeChanged(Modes[idx])
		} else if rv.logger != nil {
			rv.logger.Error("mode selection parse error", "error", err)
		}
	}))
	btnFrame := Frame()
	Grid(btnFrame, In(top), Row(0), Column(5), Sticky("ne"), Padx("0.3m"))
	buttons := []struct {
		text string
		fn   func()
	}{
		{"Enable/Disable", h.OnToggleEnable},
		{"Lock [L]", h.OnToggleLock},
		{"Reload Background", h.OnReloadBackground},
		{"Exit", h.OnExit},
	}
	for i, b := range buttons {
		fn := b.fn
		if fn == nil {
			fn = func() {}
		}
		btn := Button(Txt(b.text), Command(fn))
		Grid(btn, In(btnFrame), Row(0), Column(i), Sticky("we"), Padx("0.2m"))
	}

	// Row 1: the selectable surface
	if surface != nil {
		Grid(surface.Widget(), Row(1), Column(0), Columnspan(2), Padx("0.4m"), Pady("0.4m"))
	}

	// Row 2: key help
	rv.HelpLabel = Label(Txt(help), Anchor("w"), Justify("left"), Foreground(theme.CurrentPalette().TextMuted))
	Grid(rv.HelpLabel, Row(2), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))

	// Row 3: config panel and selection preview
	cfgFrame := Frame()
	Grid(cfgFrame, Row(3), Column(0), Sticky("nw"), Padx("0.3m"), Pady("0.3m"))
	var onEditing func(bool)
	if surface != nil {
		onEditing = surface.SetEditing
	}
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.OnConfigApplied, onEditing)
	rv.ConfigPanel.Build(cfgFrame, 0)
	prevFrame := Frame()
	Grid(prevFrame, Row(3), Column(1), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.Preview = NewSelectionPreview(prevFrame, 0, 0)
}

func modeIndex(cfg *config.Config) int {
	if cfg == nil {
		return 0
	}
	for i, m := range Modes {
		if m == cfg.DefaultMode {
			return i
		}
	}
	return 0
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// SetLockLabel shows whether the selector is locked.
func (rv *RootView) SetLockLabel(locked bool) {
	if rv == nil || rv.LockLabel == nil {
		return
	}
	p := theme.CurrentPalette()
	if locked {
		rv.LockLabel.Configure(Txt("LOCKED"), Background(p.Danger), Foreground("white"))
		return
	}
	rv.LockLabel.Configure(Txt("unlocked"), Background(p.Surface), Foreground(p.Text))
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// SetSelectionLabel updates the selection caption.
func (rv *RootView) SetSelectionLabel(text string) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.SetCaption(text)
	}
}

// UpdatePreview shows the crop of the last selection.
func (rv *RootView) UpdatePreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdatePreview(img)
	}
}

// SetDrag updates both drag durations.
func (rv *RootView) SetDrag(drag, total time.Duration) {
	if rv == nil || rv.Drag == nil {
		return
	}
	rv.Drag.SetDrag(drag)
	rv.Drag.SetTotal(total)
}

// --- SelectorPresenter view contract methods ---
// PreviewReset clears the selection preview.
func (rv *RootView) PreviewReset() {
	if rv != nil && rv.Preview != nil {
		rv.Preview.Reset()
	}
}

// ConfigEditable redirects to SetConfigEditable to satisfy SelectorView.
func (rv *RootView) ConfigEditable(b bool) { rv.SetConfigEditable(b) }
