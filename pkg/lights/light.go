package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Light is a point light
type Light struct {
	Position  core.Vec3
	Color     core.Color
	Intensity float64
}

// NewLight creates a point light
func NewLight(position core.Vec3, color core.Color, intensity float64) Light {
	return Light{
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}
