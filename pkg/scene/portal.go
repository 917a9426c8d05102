package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// NewPortalScene creates a stepped rock pyramid on a grass base with lava pools at the
// corners and an obsidian portal standing on the top step, lit by an orange light.
func NewPortalScene() *Scene {
	s := &Scene{
		Name:       "portal",
		Light:      lights.NewLight(core.NewVec3(2.8, 1.0, -3.0), core.NewColor(255, 165, 0), 1.5),
		Background: DefaultSky,
		Camera: CameraConfig{
			Eye:    core.NewVec3(0, 0, 6.5),
			Target: core.NewVec3(0, 0, 0),
			Up:     core.NewVec3(0, 1, 0),
		},
		Width:  800,
		Height: 600,
	}

	// Grass base
	s.Shapes = append(s.Shapes, newBox(-3.0, -0.5, -3.0, 3.0, -0.2, 3.0, Grass))

	// Lava pools at the four corners
	s.Shapes = append(s.Shapes,
		newBox(-3.2, -0.5, -3.2, -2.8, 0.0, -2.8, Lava),
		newBox(2.8, -0.5, -3.2, 3.2, 0.0, -2.8, Lava),
		newBox(-3.2, -0.5, 2.8, -2.8, 0.0, 3.2, Lava),
		newBox(2.8, -0.5, 2.8, 3.2, 0.0, 3.2, Lava),
	)

	s.Shapes = append(s.Shapes, portal(1.5, 1.0)...)
	s.Shapes = append(s.Shapes, steps()...)

	return s
}

// portal builds the obsidian frame and purple interior, raised by dy and pushed back by dz
func portal(dy, dz float64) []geometry.Shape {
	return []geometry.Shape{
		// Left and right pillars
		newBox(-1.0, 0.2+dy, -1.5+dz, -0.5, 2.5+dy, -0.5+dz, Obsidian),
		newBox(0.5, 0.2+dy, -1.5+dz, 1.0, 2.5+dy, -0.5+dz, Obsidian),
		// Lintel and sill
		newBox(-1.0, 2.5+dy, -1.5+dz, 1.0, 3.0+dy, -0.5+dz, Obsidian),
		newBox(-1.0, -0.2+dy, -1.5+dz, 1.0, 0.2+dy, -0.5+dz, Obsidian),
		// Interior
		newBox(-0.5, 0.2+dy, -1.5+dz, 0.5, 2.5+dy, -0.5+dz, Purple),
	}
}

// steps builds the rock pyramid, each step narrower and shallower than the one below
func steps() []geometry.Shape {
	return []geometry.Shape{
		newBox(-2.4, -0.3, -2.4, 2.4, -0.1, 3.1, Rock),
		newBox(-2.3, -0.1, -2.3, 2.3, 0.1, 2.9, Rock),
		newBox(-2.2, 0.1, -2.2, 2.2, 0.3, 2.7, Rock),
		newBox(-2.1, 0.3, -2.1, 2.1, 0.5, 2.5, Rock),
		newBox(-2.0, 0.5, -2.0, 2.0, 0.7, 2.3, Rock),
		newBox(-1.9, 0.7, -1.9, 1.9, 0.9, 2.1, Rock),
		newBox(-1.8, 0.9, -1.8, 1.8, 1.1, 2.0, Rock),
		newBox(-1.7, 1.1, -1.7, 1.7, 1.3, 1.8, Rock),
	}
}
