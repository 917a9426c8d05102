package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// parallelEpsilon is the direction component below which a ray is treated as parallel to a slab
const parallelEpsilon = 1e-8

// Box represents an axis-aligned box
type Box struct {
	Min      core.Vec3          // Minimum corner
	Max      core.Vec3          // Maximum corner
	Material *material.Material // Shared material for all faces
}

// NewBox creates a new box from two opposite corners in any order
func NewBox(a, b core.Vec3, mat *material.Material) *Box {
	return &Box{
		Min:      core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)),
		Max:      core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)),
		Material: mat,
	}
}

// NewBoxFromCenter creates a box from its center and half-extents
func NewBoxFromCenter(center, halfSize core.Vec3, mat *material.Material) *Box {
	return NewBox(center.Subtract(halfSize), center.Add(halfSize), mat)
}

// Center returns the center point of the box
func (b *Box) Center() core.Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the extent of the box along each axis
func (b *Box) Size() core.Vec3 {
	return b.Max.Subtract(b.Min)
}

// Contains reports whether point lies inside or on the box
func (b *Box) Contains(point core.Vec3) bool {
	return point.X >= b.Min.X && point.X <= b.Max.X &&
		point.Y >= b.Min.Y && point.Y <= b.Max.Y &&
		point.Z >= b.Min.Z && point.Z <= b.Max.Z
}

// Hit tests the ray against the box using the slab method.
// The ray direction is expected to be normalized. A ray starting inside
// the box reports its exit point; hits at t <= 0 are misses.
func (b *Box) Hit(ray core.Ray) (HitRecord, bool) {
	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	// Axis and side (-1 = min plane, +1 = max plane) that produced each bound
	minAxis, minSide := -1, 0
	maxAxis, maxSide := -1, 0

	for axis := 0; axis < 3; axis++ {
		lo := b.Min.Axis(axis)
		hi := b.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Ray parallel to this slab
		if math.Abs(direction) < parallelEpsilon {
			if origin < lo || origin > hi {
				return HitRecord{}, false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (lo - origin) * invDirection
		t2 := (hi - origin) * invDirection
		side1, side2 := -1, 1

		if t1 > t2 {
			t1, t2 = t2, t1
			side1, side2 = side2, side1
		}

		if t1 > tMin {
			tMin, minAxis, minSide = t1, axis, side1
		}
		if t2 < tMax {
			tMax, maxAxis, maxSide = t2, axis, side2
		}

		if tMin > tMax {
			return HitRecord{}, false
		}
	}

	var t float64
	var axis, side int
	switch {
	case tMin > 0:
		t, axis, side = tMin, minAxis, minSide
	case tMax > 0:
		// Origin inside the box
		t, axis, side = tMax, maxAxis, maxSide
	default:
		return HitRecord{}, false
	}

	// Only possible when the ray is parallel on all three axes
	if axis < 0 {
		return HitRecord{}, false
	}

	return HitRecord{
		Point:    ray.At(t),
		Normal:   axisNormal(axis, float64(side)),
		T:        t,
		Material: b.Material,
		Shape:    b,
	}, true
}

// FaceUV maps a surface point to texture coordinates on the face selected by normal.
// Top/bottom faces use (X, Z), left/right faces use (Z, Y), front/back faces use (X, Y).
// Each coordinate is the point's fractional position across the box on that axis.
func (b *Box) FaceUV(point, normal core.Vec3) (u, v float64) {
	switch {
	case math.Abs(normal.Y) > 0.99:
		return b.fraction(point, 0), b.fraction(point, 2)
	case math.Abs(normal.X) > 0.99:
		return b.fraction(point, 2), b.fraction(point, 1)
	case math.Abs(normal.Z) > 0.99:
		return b.fraction(point, 0), b.fraction(point, 1)
	default:
		return 0, 0
	}
}

// fraction returns the position of point between Min and Max on axis, in [0, 1] for points on the box
func (b *Box) fraction(point core.Vec3, axis int) float64 {
	extent := b.Max.Axis(axis) - b.Min.Axis(axis)
	if extent <= 0 {
		return 0
	}
	return (point.Axis(axis) - b.Min.Axis(axis)) / extent
}

func axisNormal(axis int, sign float64) core.Vec3 {
	switch axis {
	case 0:
		return core.NewVec3(sign, 0, 0)
	case 1:
		return core.NewVec3(0, sign, 0)
	default:
		return core.NewVec3(0, 0, sign)
	}
}
