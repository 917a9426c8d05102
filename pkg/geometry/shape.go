package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    core.Vec3          // Point of intersection
	Normal   core.Vec3          // Outward surface normal of the face struck
	T        float64            // Parameter t along the ray
	Material *material.Material // Material of the object hit
	Shape    Shape              // Object hit
}

// Shape interface for objects that can be hit by rays.
// Hit returns the nearest intersection at a strictly positive t.
type Shape interface {
	Hit(ray core.Ray) (HitRecord, bool)
}
