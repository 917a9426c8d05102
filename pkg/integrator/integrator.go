package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Environment is the read-only world a single frame is traced against.
// It is built once per frame before the parallel pass and shared by all workers.
type Environment struct {
	Shapes     []geometry.Shape // Scanned linearly for every ray
	Light      lights.Light     // Light state for this frame
	Background core.Color       // Returned for misses and when the depth bound is exceeded
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace returns the color seen along a ray. direction must be normalized.
	Trace(origin, direction core.Vec3, env *Environment, depth int) core.Color
}

// HitTracer is implemented by integrators that can also report whether the ray hit a shape
type HitTracer interface {
	TraceHit(origin, direction core.Vec3, env *Environment, depth int) (core.Color, bool)
}

// UVMapper is implemented by shapes that can map surface points to texture coordinates
type UVMapper interface {
	FaceUV(point, normal core.Vec3) (u, v float64)
}
