package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shared palette. Materials are immutable and shared by pointer between boxes and scenes.
var (
	Grass = material.NewMaterial(core.NewColor(0, 255, 0), 50, [4]float64{0.8, 0.2, 0.0, 0.0}, 1.0)

	Obsidian = material.NewMaterial(core.NewColor(0, 0, 0), 100, [4]float64{0.1, 0.9, 0.1, 0.0}, 1.0)

	// Portal interior
	Purple = material.NewMaterial(core.NewColor(128, 0, 128), 100, [4]float64{0.6, 0.9, 0.6, 0.0}, 2.0)

	Rock = material.NewMaterial(core.NewColor(169, 169, 169), 50, [4]float64{0.6, 0.6, 0.6, 0.0}, 0.0)

	Lava = material.NewMaterial(core.NewColor(255, 69, 0), 100, [4]float64{0.9, 0.3, 0.0, 0.5}, 0.0)

	Glass = material.NewMaterial(core.NewColor(255, 255, 255), 125, [4]float64{0.0, 0.5, 0.1, 0.8}, 1.5)

	// Lossless mirror with no local lighting
	Mirror = material.NewMaterial(core.NewColor(255, 255, 255), 0, [4]float64{0.0, 0.0, 1.0, 0.0}, 1.0)

	Ember = material.NewMaterial(core.NewColor(255, 90, 20), 10, [4]float64{0.6, 0.1, 0.0, 0.0}, 1.0).
		WithEmission(core.NewColor(120, 40, 0))
)
