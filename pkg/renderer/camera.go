package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Zoom limits, as distance from the eye to the target
const (
	DefaultMinDistance = 1.0
	DefaultMaxDistance = 10.0
)

// maxPitch keeps the eye away from the poles, where forward would become parallel to up
const maxPitch = math.Pi/2 - 0.1

// Camera is a look-at camera orbiting a target point
type Camera struct {
	Eye    core.Vec3
	Target core.Vec3
	Up     core.Vec3 // World-up used to derive the basis

	MinDistance float64
	MaxDistance float64
}

// Basis is an orthonormal camera frame in world space
type Basis struct {
	Forward core.Vec3
	Right   core.Vec3
	Up      core.Vec3
}

// NewCamera creates a camera at eye looking at target.
// Returns an error if eye and target coincide or up is parallel to the view direction.
func NewCamera(eye, target, up core.Vec3) (*Camera, error) {
	forward := target.Subtract(eye)
	if forward.Length() < 1e-9 {
		return nil, fmt.Errorf("camera eye %v coincides with target", eye)
	}
	if forward.Normalize().Cross(up.Normalize()).Length() < 1e-9 {
		return nil, fmt.Errorf("camera up %v is parallel to view direction %v", up, forward.Normalize())
	}

	return &Camera{
		Eye:         eye,
		Target:      target,
		Up:          up,
		MinDistance: DefaultMinDistance,
		MaxDistance: DefaultMaxDistance,
	}, nil
}

// Basis derives the orthonormal frame from the current eye, target and up
func (c *Camera) Basis() Basis {
	forward := c.Target.Subtract(c.Eye).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()
	return Basis{Forward: forward, Right: right, Up: up}
}

// ToWorld maps a camera-space direction (forward = -Z) into world space
func (b Basis) ToWorld(dir core.Vec3) core.Vec3 {
	return b.Right.Multiply(dir.X).
		Add(b.Up.Multiply(dir.Y)).
		Subtract(b.Forward.Multiply(dir.Z)).
		Normalize()
}

// BasisChange maps a camera-space direction into world space
func (c *Camera) BasisChange(dir core.Vec3) core.Vec3 {
	return c.Basis().ToWorld(dir)
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 { return c.Basis().Forward }

// Right returns the unit right vector
func (c *Camera) Right() core.Vec3 { return c.Basis().Right }

// TrueUp returns the unit up vector orthogonal to forward and right
func (c *Camera) TrueUp() core.Vec3 { return c.Basis().Up }

// Distance returns the distance from the eye to the target
func (c *Camera) Distance() float64 {
	return c.Eye.Subtract(c.Target).Length()
}

// Orbit rotates the eye around the target by the given yaw and pitch deltas in radians.
// Yaw turns about the camera's up axis and pitch tilts toward or away from it.
// Distance to the target is preserved; pitch is clamped short of the up axis.
func (c *Camera) Orbit(yawDelta, pitchDelta float64) {
	pole, axisA, axisB := c.orbitFrame()

	offset := c.Eye.Subtract(c.Target)
	radius := offset.Length()

	x, z := offset.Dot(axisA), offset.Dot(axisB)
	yaw := math.Atan2(z, x)
	pitch := math.Atan2(-offset.Dot(pole), math.Hypot(x, z))

	yaw = math.Mod(yaw+yawDelta, 2*math.Pi)
	pitch = clampPitch(pitch, pitchDelta)

	around := axisA.Multiply(math.Cos(yaw)).Add(axisB.Multiply(math.Sin(yaw)))
	c.Eye = c.Target.Add(around.Multiply(radius * math.Cos(pitch)).
		Subtract(pole.Multiply(radius * math.Sin(pitch))))
}

// orbitFrame returns the normalized up axis and a fixed orthonormal pair spanning
// the plane perpendicular to it. For a +Y up the pair is +X and +Z.
func (c *Camera) orbitFrame() (pole, axisA, axisB core.Vec3) {
	pole = c.Up.Normalize()

	axisA = core.NewVec3(1, 0, 0)
	axisA = axisA.Subtract(pole.Multiply(axisA.Dot(pole)))
	if axisA.Length() < 1e-6 {
		axisA = core.NewVec3(0, 0, 1)
		axisA = axisA.Subtract(pole.Multiply(axisA.Dot(pole)))
	}
	axisA = axisA.Normalize()
	axisB = axisA.Cross(pole).Normalize()
	return pole, axisA, axisB
}

// clampPitch applies delta and keeps the result within ±maxPitch. A pitch already
// beyond the limit is left where it is unless delta moves it back toward the range.
func clampPitch(pitch, delta float64) float64 {
	next := pitch + delta
	switch {
	case next > maxPitch:
		return max(maxPitch, min(pitch, next))
	case next < -maxPitch:
		return min(-maxPitch, max(pitch, next))
	}
	return next
}

// Zoom moves the eye along the view direction. Positive delta moves closer.
// The resulting distance is clamped to [MinDistance, MaxDistance].
func (c *Camera) Zoom(delta float64) {
	forward := c.Forward()
	distance := max(c.MinDistance, min(c.MaxDistance, c.Distance()-delta))
	c.Eye = c.Target.Subtract(forward.Multiply(distance))
}

// PrimaryRayDirection returns the world-space direction through pixel (x, y).
// Row 0 is the top of the image.
func (c *Camera) PrimaryRayDirection(x, y, width, height int, fov float64) core.Vec3 {
	return newProjection(width, height, fov).direction(c.Basis(), x, y)
}

// projection holds the per-frame constants that map pixels to camera space
type projection struct {
	width, height float64
	aspect        float64
	scale         float64 // tan(fov/2)
}

func newProjection(width, height int, fov float64) projection {
	return projection{
		width:  float64(width),
		height: float64(height),
		aspect: float64(width) / float64(height),
		scale:  math.Tan(fov * 0.5),
	}
}

func (p projection) direction(basis Basis, x, y int) core.Vec3 {
	screenX := 2.0*float64(x)/p.width - 1.0
	screenY := -2.0*float64(y)/p.height + 1.0

	screenX *= p.aspect * p.scale
	screenY *= p.scale

	return basis.ToWorld(core.NewVec3(screenX, screenY, -1.0).Normalize())
}
