package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var greenBox = material.NewMaterial(core.NewColor(0, 255, 0), 10, [4]float64{1.0, 0.0, 0.0, 0.0}, 1.0)

// NewGreenBoxScene creates a single diffuse green box seen from straight above,
// with a white light overhead. The image center looks straight at the lit top face.
func NewGreenBoxScene() *Scene {
	return &Scene{
		Name:       "green-box",
		Shapes:     []geometry.Shape{newBox(-1, -0.5, -1, 1, 0, 1, greenBox)},
		Light:      lights.NewLight(core.NewVec3(0, 10, 0), core.NewColor(255, 255, 255), 1.0),
		Background: DefaultSky,
		Camera: CameraConfig{
			Eye:    core.NewVec3(0, 5, 0),
			Target: core.NewVec3(0, 0, 0),
			Up:     core.NewVec3(0, 0, -1),
		},
		Width:  400,
		Height: 300,
	}
}

// NewMirrorCorridorScene creates two facing lossless mirrors. Every ray either escapes
// or bounces until the depth bound, so the whole image is the sky.
func NewMirrorCorridorScene() *Scene {
	return &Scene{
		Name: "mirror-corridor",
		Shapes: []geometry.Shape{
			newBox(-2.0, -3.0, -20.0, -1.5, 3.0, 20.0, Mirror),
			newBox(1.5, -3.0, -20.0, 2.0, 3.0, 20.0, Mirror),
		},
		Light:      lights.NewLight(core.NewVec3(0, 10, 0), core.NewColor(255, 255, 255), 1.0),
		Background: DefaultSky,
		Camera: CameraConfig{
			Eye:    core.NewVec3(0, 0, 8),
			Target: core.NewVec3(0, 0, 0),
			Up:     core.NewVec3(0, 1, 0),
		},
		Width:  400,
		Height: 300,
	}
}

// NewGlassSlabScene creates a glass slab floating over a checkerboard floor,
// with an emissive ember cube behind it
func NewGlassSlabScene() *Scene {
	checker := material.NewCheckerboardTexture(64, 64, 8,
		core.NewColor(230, 230, 230),
		core.NewColor(50, 50, 200),
	)
	floor := material.NewTexturedMaterial(checker, 10, [4]float64{1.0, 0.0, 0.0, 0.0}, 1.0)

	return &Scene{
		Name: "glass-slab",
		Shapes: []geometry.Shape{
			newBox(-4, -1.2, -4, 4, -1, 4, floor),
			newBox(-1.5, -0.2, -0.25, 1.5, 1.2, 0.25, Glass),
			newBox(-0.5, -1.0, -2.5, 0.5, 0.0, -1.5, Ember),
		},
		Light:      lights.NewLight(core.NewVec3(3, 6, 4), core.NewColor(255, 255, 255), 1.2),
		Background: DefaultSky,
		Camera: CameraConfig{
			Eye:    core.NewVec3(0, 1.5, 6),
			Target: core.NewVec3(0, 0, 0),
			Up:     core.NewVec3(0, 1, 0),
		},
		Width:  800,
		Height: 600,
	}
}
