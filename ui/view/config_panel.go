package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/area-selector-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() error // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg       *config.Config
	cfgPath   string
	logger    *slog.Logger
	onApplied func(*config.Config)
	onEditing func(bool)
	applyBtn  *ButtonWidget
	status    *LabelWidget
	widgets   map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg. onApplied runs after a
// successful apply with the updated config. onEditing, if set, follows the
// keyboard focus of the text fields.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApplied func(*config.Config), onEditing func(bool)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApplied: onApplied, onEditing: onEditing, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(parent *FrameWidget, startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		if v.onEditing != nil {
			Bind(w, "<FocusIn>", Command(func() { v.onEditing(true) }))
			Bind(w, "<FocusOut>", Command(func() { v.onEditing(false) }))
		}
		v.widgets[id] = w
		row++
	}
	makeRow("template", "Template (WxH)", fmt.Sprintf("%dx%d", c.TemplateWidth, c.TemplateHeight))
	makeRow("maskOpacity", "Mask Opacity (0-1)", fmt.Sprintf("%.2f", c.MaskOpacity))
	makeRow("frameIntervalMs", "Frame Interval ms", fmt.Sprintf("%d", c.FrameIntervalMs))
	makeRow("lockKey", "Lock Key (keysym)", c.Keymap.Lock)
	makeRow("unlockKey", "Unlock Key (keysym)", c.Keymap.Unlock)
	makeRow("backgroundPath", "Background Image", c.BackgroundPath)
	makeRow("grabScreen", "Grab Screen (true/false)", fmt.Sprintf("%t", c.GrabScreen))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { _ = v.ApplyChanges() }))
	Grid(v.applyBtn, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	v.status = Label(Txt(""), Anchor("w"))
	Grid(v.status, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *configPanel) ApplyChanges() error {
	if v.cfg == nil {
		return nil
	}
	cfg := *v.cfg // copy
	var problems []string
	if s, ok := v.text("template"); ok {
		if w, h, err := config.ParseSize(s); err == nil {
			cfg.TemplateWidth, cfg.TemplateHeight = w, h
		} else {
			problems = append(problems, "template")
		}
	}
	if s, ok := v.text("maskOpacity"); ok {
		if f, ok := parseFloatField(s); ok {
			cfg.MaskOpacity = f
		} else {
			problems = append(problems, "mask opacity")
		}
	}
	if s, ok := v.text("frameIntervalMs"); ok {
		if i, ok := parseIntField(s); ok {
			cfg.FrameIntervalMs = i
		} else {
			problems = append(problems, "frame interval")
		}
	}
	if s, ok := v.text("lockKey"); ok && s != "" {
		cfg.Keymap.Lock = s
	}
	if s, ok := v.text("unlockKey"); ok && s != "" {
		cfg.Keymap.Unlock = s
	}
	if s, ok := v.text("backgroundPath"); ok {
		cfg.BackgroundPath = s
	}
	if s, ok := v.text("grabScreen"); ok {
		if b, ok := parseBoolLoose(s); ok {
			cfg.GrabScreen = b
		} else {
			problems = append(problems, "grab screen")
		}
	}
	if len(problems) > 0 {
		err := fmt.Errorf("invalid %s", strings.Join(problems, ", "))
		v.setStatus(err.Error())
		return err
	}
	if err := cfg.Validate(); err != nil {
		v.setStatus(err.Error())
		return err
	}
	*v.cfg = cfg
	if v.onApplied != nil {
		v.onApplied(v.cfg)
	}
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		v.setStatus("applied, not saved")
		return err
	}
	if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	v.setStatus("saved")
	return nil
}

func (v *configPanel) setStatus(s string) {
	if v.status != nil {
		v.status.Configure(Txt(s))
	}
}

// parsing helpers (unexported)
func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}
func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
