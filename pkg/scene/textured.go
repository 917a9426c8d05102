package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTexturedScene creates textured crates on a grass base.
// texturePath selects an image file; an empty path uses a procedural UV debug texture.
// A texture that cannot be loaded is an error: the scene is never built without it.
func NewTexturedScene(texturePath string) (*Scene, error) {
	texture := material.NewUVDebugTexture(64, 64)
	if texturePath != "" {
		loaded, err := loaders.LoadTexture(texturePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load texture for textured scene: %w", err)
		}
		texture = loaded
	}

	crate := material.NewTexturedMaterial(texture, 10, [4]float64{1.0, 0.0, 0.0, 0.0}, 1.0)
	polished := material.NewTexturedMaterial(texture, 10, [4]float64{1.0, 0.0, 0.3, 0.0}, 1.0)

	return &Scene{
		Name: "textured",
		Shapes: []geometry.Shape{
			newBox(-3.0, -0.5, -3.0, 3.0, -0.2, 3.0, Grass),
			newBox(-1.8, -0.2, -0.6, -0.6, 1.0, 0.6, crate),
			newBox(0.6, -0.2, -0.6, 1.8, 1.0, 0.6, polished),
			newBox(-0.4, -0.2, -2.0, 0.4, 0.6, -1.2, crate),
		},
		Light:      lights.NewLight(core.NewVec3(2, 5, 4), core.NewColor(255, 255, 255), 1.0),
		Background: DefaultSky,
		Camera: CameraConfig{
			Eye:    core.NewVec3(0, 2, 6),
			Target: core.NewVec3(0, 0.3, 0),
			Up:     core.NewVec3(0, 1, 0),
		},
		Width:  800,
		Height: 600,
	}, nil
}
