package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

const (
	// DefaultMaxDepth bounds reflection/refraction recursion
	DefaultMaxDepth = 3
	// DefaultOriginBias offsets secondary ray origins off the surface
	DefaultOriginBias = 1e-4
)

// Whitted implements recursive Whitted-style ray tracing:
// Phong local lighting with a soft shadow estimate plus mirror reflection
// and Snell refraction, bounded by MaxDepth.
type Whitted struct {
	MaxDepth int
	Bias     float64
}

// NewWhitted creates a tracer with the default depth bound and bias
func NewWhitted() *Whitted {
	return &Whitted{
		MaxDepth: DefaultMaxDepth,
		Bias:     DefaultOriginBias,
	}
}

// Trace returns the color seen from origin along direction
func (w *Whitted) Trace(origin, direction core.Vec3, env *Environment, depth int) core.Color {
	color, _ := w.TraceHit(origin, direction, env, depth)
	return color
}

// TraceHit is Trace that also reports whether the ray hit a shape.
// Rays past the depth bound report a miss.
func (w *Whitted) TraceHit(origin, direction core.Vec3, env *Environment, depth int) (core.Color, bool) {
	if depth > w.MaxDepth {
		return env.Background, false
	}

	hit, isHit := NearestHit(core.NewRay(origin, direction), env.Shapes)
	if !isHit {
		return env.Background, false
	}

	mat := hit.Material
	reflectivity := mat.Reflectivity()
	transparency := mat.Transparency()

	reflectColor := core.Black()
	if reflectivity > 0 {
		reflectDir := core.Reflect(direction, hit.Normal).Normalize()
		reflectOrigin := OffsetOrigin(hit, reflectDir, w.Bias)
		reflectColor = w.Trace(reflectOrigin, reflectDir, env, depth+1)
	}

	refractColor := core.Black()
	if transparency > 0 {
		refractDir := Refract(direction, hit.Normal, mat.RefractiveIndex).Normalize()
		refractOrigin := OffsetOrigin(hit, refractDir, w.Bias)
		refractColor = w.Trace(refractOrigin, refractDir, env, depth+1)
	}

	secondary := reflectColor.Multiply(reflectivity).Add(refractColor.Multiply(transparency))

	// Textured surfaces are not lit analytically: the texel plus emission is
	// weighted by whatever reflection and refraction leave over.
	if mat.IsTextured() {
		base := sampleTexture(hit).Add(mat.Emission)
		return base.Multiply(1 - reflectivity - transparency).Add(secondary), true
	}

	local := w.localColor(origin, hit, env)
	return local.Add(mat.Emission).Add(secondary), true
}

// localColor computes diffuse plus specular Phong terms attenuated by the shadow estimate
func (w *Whitted) localColor(origin core.Vec3, hit geometry.HitRecord, env *Environment) core.Color {
	mat := hit.Material
	light := env.Light

	lightDir := light.Position.Subtract(hit.Point).Normalize()
	viewDir := origin.Subtract(hit.Point).Normalize()
	reflectDir := core.Reflect(lightDir.Negate(), hit.Normal).Normalize()

	shadow := ShadowIntensity(hit, light.Position, env.Shapes, w.Bias)
	intensity := light.Intensity * (1 - shadow)

	diffuseIntensity := max(0, min(1, hit.Normal.Dot(lightDir)))
	diffuse := mat.Color.Multiply(mat.Diffuse() * diffuseIntensity * intensity)

	specularIntensity := math.Pow(max(0, viewDir.Dot(reflectDir)), mat.Shininess)
	specular := light.Color.Multiply(mat.Specular() * specularIntensity * intensity)

	return diffuse.Add(specular)
}

// NearestHit scans every shape and returns the intersection with the smallest positive t
func NearestHit(ray core.Ray, shapes []geometry.Shape) (geometry.HitRecord, bool) {
	var closest geometry.HitRecord
	closestT := math.Inf(1)
	found := false

	for _, shape := range shapes {
		if hit, isHit := shape.Hit(ray); isHit && hit.T < closestT {
			closestT = hit.T
			closest = hit
			found = true
		}
	}

	return closest, found
}

// ShadowIntensity estimates how strongly the hit point is shadowed from a light at lightPos.
// The first shape found between the point and the light decides the result:
// 1 - min(1, (occluderDistance/lightDistance)^2). Occluders near the surface cast
// near-full shadow, occluders near the light a weak one. Returns 0 when unoccluded.
func ShadowIntensity(hit geometry.HitRecord, lightPos core.Vec3, shapes []geometry.Shape, bias float64) float64 {
	toLight := lightPos.Subtract(hit.Point)
	lightDistance := toLight.Length()
	lightDir := toLight.Normalize()

	shadowRay := core.NewRay(OffsetOrigin(hit, lightDir, bias), lightDir)

	for _, shape := range shapes {
		occluder, isHit := shape.Hit(shadowRay)
		if isHit && occluder.T < lightDistance {
			ratio := occluder.T / lightDistance
			return 1 - min(1, ratio*ratio)
		}
	}

	return 0
}

// OffsetOrigin nudges the hit point along the normal to the side the new ray travels into
func OffsetOrigin(hit geometry.HitRecord, direction core.Vec3, bias float64) core.Vec3 {
	offset := hit.Normal.Multiply(bias)
	if direction.Dot(hit.Normal) < 0 {
		return hit.Point.Subtract(offset)
	}
	return hit.Point.Add(offset)
}

// Refract bends incident through a surface with the given outward normal using Snell's law.
// Rays arriving against the normal enter the medium (eta = 1/ior); rays leaving it use the
// flipped normal and eta = ior. Total internal reflection falls back to a mirror reflection.
// The result is not normalized.
func Refract(incident, normal core.Vec3, refractiveIndex float64) core.Vec3 {
	cosI := max(-1, min(1, incident.Dot(normal)))

	var eta float64
	n := normal
	if cosI < 0 {
		// Entering
		cosI = -cosI
		eta = 1.0 / refractiveIndex
	} else {
		// Exiting
		n = normal.Negate()
		eta = refractiveIndex
	}

	k := 1 - eta*eta*(1-cosI*cosI)
	if k < 0 {
		return core.Reflect(incident, n)
	}

	return incident.Multiply(eta).Add(n.Multiply(eta*cosI - math.Sqrt(k)))
}

// Inspect returns the primary hit for a ray, for debugging tools
func Inspect(origin, direction core.Vec3, env *Environment) (geometry.HitRecord, bool) {
	return NearestHit(core.NewRay(origin, direction), env.Shapes)
}

func sampleTexture(hit geometry.HitRecord) core.Color {
	mat := hit.Material
	mapper, ok := hit.Shape.(UVMapper)
	if !ok {
		return mat.Color
	}
	u, v := mapper.FaceUV(hit.Point, hit.Normal)
	return mat.Texture.Sample(u, v).MultiplyColor(mat.Color)
}
