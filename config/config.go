package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Keymap names the Tk keysyms bound to the selector keys. Matching is case
// insensitive; left and right variants of modifiers are folded by the view.
type Keymap struct {
	Modifier      string `json:"modifier"`
	SecondaryMode string `json:"secondary_mode"`
	Lock          string `json:"lock"`
	Unlock        string `json:"unlock"`
}

// Config holds runtime configuration for the selector window.
// Fields may be loaded from a JSON file, overridden by the environment and
// then by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Surface used when no background image is loaded.
	SurfaceWidth  int `json:"surface_width"`
	SurfaceHeight int `json:"surface_height"`

	// Selection behaviour
	DefaultMode    string  `json:"default_mode"`
	TemplateWidth  int     `json:"template_width"`
	TemplateHeight int     `json:"template_height"`
	MaskOpacity    float64 `json:"mask_opacity"`
	Keymap         Keymap  `json:"keymap"`

	// Rendering
	FrameIntervalMs int `json:"frame_interval_ms"`

	// Background source
	BackgroundPath string `json:"background_path"`
	GrabScreen     bool   `json:"grab_screen"`
}

// DefaultKeymap binds Shift, Control, L and Escape.
func DefaultKeymap() Keymap {
	return Keymap{Modifier: "Shift", SecondaryMode: "Control", Lock: "l", Unlock: "Escape"}
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:           false,
		SurfaceWidth:    800,
		SurfaceHeight:   500,
		DefaultMode:     "rect",
		TemplateWidth:   20,
		TemplateHeight:  20,
		MaskOpacity:     0.5,
		Keymap:          DefaultKeymap(),
		FrameIntervalMs: 16,
	}
}

// Validate clamps/normalizes values to safe ranges. It only fails on values
// that cannot be repaired.
func (c *Config) Validate() error {
	if c.SurfaceWidth <= 0 {
		c.SurfaceWidth = 800
	}
	if c.SurfaceHeight <= 0 {
		c.SurfaceHeight = 500
	}
	if c.TemplateWidth <= 0 {
		c.TemplateWidth = 20
	}
	if c.TemplateHeight <= 0 {
		c.TemplateHeight = 20
	}
	if c.MaskOpacity < 0 || c.MaskOpacity > 1 {
		c.MaskOpacity = 0.5
	}
	if c.FrameIntervalMs < 1 {
		c.FrameIntervalMs = 16
	}
	if c.FrameIntervalMs > 1000 {
		c.FrameIntervalMs = 1000
	}
	def := DefaultKeymap()
	if strings.TrimSpace(c.Keymap.Modifier) == "" {
		c.Keymap.Modifier = def.Modifier
	}
	if strings.TrimSpace(c.Keymap.SecondaryMode) == "" {
		c.Keymap.SecondaryMode = def.SecondaryMode
	}
	if strings.TrimSpace(c.Keymap.Lock) == "" {
		c.Keymap.Lock = def.Lock
	}
	if strings.TrimSpace(c.Keymap.Unlock) == "" {
		c.Keymap.Unlock = def.Unlock
	}
	switch strings.ToLower(strings.TrimSpace(c.DefaultMode)) {
	case "", "rect":
		c.DefaultMode = "rect"
	case "twopoints", "centralpoint":
		c.DefaultMode = strings.ToLower(strings.TrimSpace(c.DefaultMode))
	default:
		return fmt.Errorf("unknown default_mode %q", c.DefaultMode)
	}
	return nil
}

// FrameInterval is the tick period of the render loop.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// MaskAlpha converts MaskOpacity to an 8-bit alpha.
func (c *Config) MaskAlpha() uint8 {
	o := c.MaskOpacity
	if o < 0 {
		o = 0
	}
	if o > 1 {
		o = 1
	}
	return uint8(o*255 + 0.5)
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// sizeRe matches "WIDTHxHEIGHT", optionally followed by a Tk style "+X+Y"
// offset which is ignored.
var sizeRe = regexp.MustCompile(`^(\d+)\s*[xX]\s*(\d+)(?:\+-?\d+\+-?\d+)?$`)

// ParseSize parses "WxH" (e.g. "32x24") into positive dimensions.
func ParseSize(s string) (w, h int, err error) {
	m := sizeRe.FindStringSubmatch(strings.TrimSpace(s))
	if len(m) != 3 {
		return 0, 0, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	w, _ = strconv.Atoi(m[1])
	h, _ = strconv.Atoi(m[2])
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q, dimensions must be positive", s)
	}
	return w, h, nil
}
