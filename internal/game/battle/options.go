package battle

import (
	"time"

	"github.com/cory-johannsen/quackbattle/internal/config"
)

// Options tunes layout, pacing and scoring for an encounter.
type Options struct {
	Width, Height int

	// Background selects the battle backdrop for a renderer.
	Background int

	// Segment is the map segment the encounter takes place in.
	Segment int

	TurnMessage   time.Duration
	ActionMessage time.Duration
	WinMultiplier float64
	LossFraction  float64
	XPJitter      float64
	MaxDrop       int
}

// DefaultOptions returns the stock rules.
func DefaultOptions() Options {
	return Options{
		Width:         1280,
		Height:        720,
		TurnMessage:   10 * time.Second,
		ActionMessage: 3 * time.Second,
		WinMultiplier: 3.5,
		LossFraction:  0.25,
		XPJitter:      0.1,
		MaxDrop:       6,
	}
}

// OptionsFromConfig maps the battle configuration section onto Options.
func OptionsFromConfig(cfg config.BattleConfig) Options {
	return Options{
		Width:         cfg.ScreenWidth,
		Height:        cfg.ScreenHeight,
		TurnMessage:   cfg.TurnMessage,
		ActionMessage: cfg.ActionMessage,
		WinMultiplier: cfg.WinMultiplier,
		LossFraction:  cfg.LossFraction,
		XPJitter:      cfg.XPJitter,
		MaxDrop:       cfg.MaxDrop,
	}
}
