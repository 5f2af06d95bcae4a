package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvDebug         = "AREASEL_DEBUG"
	EnvMode          = "AREASEL_MODE"
	EnvTemplate      = "AREASEL_TEMPLATE"
	EnvFrameInterval = "AREASEL_FRAME_INTERVAL_MS"
	EnvMaskOpacity   = "AREASEL_MASK_OPACITY"
	EnvBackground    = "AREASEL_BACKGROUND"
	EnvGrabScreen    = "AREASEL_GRAB_SCREEN"
	EnvLockKey       = "AREASEL_LOCK_KEY"
)

// ApplyEnv loads envPath (if it exists) into the process environment without
// overriding variables that are already set, then applies AREASEL_* values
// to cfg. Malformed values are reported together; valid ones still apply.
func ApplyEnv(cfg *Config, envPath string) error {
	if cfg == nil {
		return nil
	}
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
	}
	var problems []string
	if v, ok := lookup(EnvDebug); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		} else {
			problems = append(problems, EnvDebug)
		}
	}
	if v, ok := lookup(EnvMode); ok {
		cfg.DefaultMode = strings.ToLower(v)
	}
	if v, ok := lookup(EnvTemplate); ok {
		if w, h, err := ParseSize(v); err == nil {
			cfg.TemplateWidth, cfg.TemplateHeight = w, h
		} else {
			problems = append(problems, EnvTemplate)
		}
	}
	if v, ok := lookup(EnvFrameInterval); ok {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.FrameIntervalMs = ms
		} else {
			problems = append(problems, EnvFrameInterval)
		}
	}
	if v, ok := lookup(EnvMaskOpacity); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.MaskOpacity = f
		} else {
			problems = append(problems, EnvMaskOpacity)
		}
	}
	if v, ok := lookup(EnvBackground); ok {
		cfg.BackgroundPath = v
	}
	if v, ok := lookup(EnvGrabScreen); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.GrabScreen = b
		} else {
			problems = append(problems, EnvGrabScreen)
		}
	}
	if v, ok := lookup(EnvLockKey); ok {
		cfg.Keymap.Lock = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(problems) > 0 {
		return fmt.Errorf("ignored malformed environment values: %s", strings.Join(problems, ", "))
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
