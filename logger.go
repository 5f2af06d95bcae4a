package main

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger returns a structured slog.Logger writing to stderr. Interactive
// terminals get the text handler; anything else gets JSON. Stdout is
// reserved for selection records.
func NewLogger(level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
