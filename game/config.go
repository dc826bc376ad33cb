package game

import "time"

// Config holds window and host settings. Simulation tuning lives in sim.Config.
type Config struct {
	// ScreenWidth is the window width in pixels
	ScreenWidth int

	// ScreenHeight is the window height in pixels
	ScreenHeight int

	// Title is the window title
	Title string

	// ShowDebug starts with the debug overlay visible
	ShowDebug bool

	// ProfileDir is where TPS-drop profiles are written. Empty disables
	// profiling.
	ProfileDir string

	// MinTPS is the tick rate below which a profile is captured
	MinTPS float64

	// Warmup is how long after launch TPS drops are ignored
	Warmup time.Duration
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1024,
		ScreenHeight: 768,
		Title:        "wirestrike",
		ShowDebug:    false,
		ProfileDir:   "",
		MinTPS:       55,
		Warmup:       3 * time.Second,
	}
}

// ProjectionScale returns the smaller screen dimension, the projection
// distance that keeps the view square
func (c Config) ProjectionScale() float64 {
	return float64(min(c.ScreenWidth, c.ScreenHeight))
}
