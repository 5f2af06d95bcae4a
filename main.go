package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/soocke/area-selector-go/app"
	"github.com/soocke/area-selector-go/capture"
	"github.com/soocke/area-selector-go/config"
)

func main() {
	cfgPath := flag.String("config", "config.json", "path to the JSON config file")
	envPath := flag.String("env", ".env", "optional dotenv file with AREASEL_* overrides")
	imagePath := flag.String("image", "", "background image to select on")
	screen := flag.Bool("screen", false, "grab the screen as background")
	mode := flag.String("mode", "", "initial mode: rect, twopoints or centralpoint")
	template := flag.String("template", "", "central-point template size, e.g. 32x24")
	debugFlag := flag.Bool("debug", false, "verbose logging and runtime stats")
	flag.Parse()

	// Base config from file, then env, then flags
	cfg, cfgErr := config.Load(*cfgPath)
	envErr := config.ApplyEnv(cfg, *envPath)
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["image"] {
		cfg.BackgroundPath = *imagePath
	}
	if set["screen"] {
		cfg.GrabScreen = *screen
	}
	if set["mode"] {
		cfg.DefaultMode = *mode
	}
	if set["debug"] {
		cfg.Debug = *debugFlag
	}
	var sizeErr error
	if set["template"] {
		if w, h, err := config.ParseSize(*template); err == nil {
			cfg.TemplateWidth, cfg.TemplateHeight = w, h
		} else {
			sizeErr = err
		}
	}
	valErr := cfg.Validate()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	for name, err := range map[string]error{"config": cfgErr, "env": envErr, "template": sizeErr, "validate": valErr} {
		if err != nil {
			logger.Warn("startup settings", "source", name, "error", err)
		}
	}

	if err := capture.EnableDPIAwareness(); err != nil {
		logger.Warn("dpi awareness", "error", err)
	}

	application := app.NewApp("Area Selector", cfg, *cfgPath, logger, os.Stdout)
	application.Start()
}
