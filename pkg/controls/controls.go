package controls

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// State is the per-frame snapshot of the fixed control set
type State struct {
	Quit       bool
	ZoomIn     bool
	ZoomOut    bool
	OrbitUp    bool
	OrbitDown  bool
	OrbitLeft  bool
	OrbitRight bool
}

// Any reports whether any camera control is active
func (s State) Any() bool {
	return s.ZoomIn || s.ZoomOut || s.OrbitUp || s.OrbitDown || s.OrbitLeft || s.OrbitRight
}

// Config contains per-frame camera speeds
type Config struct {
	RotationSpeed float64 // Radians per frame
	ZoomSpeed     float64 // World units per frame
}

// DefaultConfig returns the interactive viewer's speeds
func DefaultConfig() Config {
	return Config{
		RotationSpeed: math.Pi / 50,
		ZoomSpeed:     0.5,
	}
}

// Apply mutates the camera for every pressed control and reports whether to quit.
// Quit short-circuits: the camera is left untouched.
func Apply(cam *renderer.Camera, state State, cfg Config) bool {
	if state.Quit {
		return true
	}

	if state.ZoomIn {
		cam.Zoom(cfg.ZoomSpeed)
	}
	if state.ZoomOut {
		cam.Zoom(-cfg.ZoomSpeed)
	}

	if state.OrbitLeft {
		cam.Orbit(cfg.RotationSpeed, 0)
	}
	if state.OrbitRight {
		cam.Orbit(-cfg.RotationSpeed, 0)
	}
	if state.OrbitUp {
		cam.Orbit(0, -cfg.RotationSpeed)
	}
	if state.OrbitDown {
		cam.Orbit(0, cfg.RotationSpeed)
	}

	return false
}
