package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// DefaultSky is the daytime background color
var DefaultSky = core.NewColor(68, 142, 228)

// Scene contains all the elements needed for rendering.
// Scenes are built once and are read-only while frames are rendered.
type Scene struct {
	Name       string
	Shapes     []geometry.Shape // Objects in the scene, scanned linearly
	Light      lights.Light     // Static light, used when DayNight is nil
	DayNight   *lights.DayNight // Optional animated light and sky
	Background core.Color       // Static sky, used when DayNight is nil
	Camera     CameraConfig     // Initial camera placement
	Width      int              // Suggested image width
	Height     int              // Suggested image height
}

// CameraConfig places the initial camera
type CameraConfig struct {
	Eye    core.Vec3
	Target core.Vec3
	Up     core.Vec3
}

// GetShapes returns the scene's shapes
func (s *Scene) GetShapes() []geometry.Shape {
	return s.Shapes
}

// LightAt returns the light at simTime
func (s *Scene) LightAt(simTime float64) lights.Light {
	if s.DayNight != nil {
		return s.DayNight.LightAt(simTime)
	}
	return s.Light
}

// SkyAt returns the background color for the given light
func (s *Scene) SkyAt(light lights.Light) core.Color {
	if s.DayNight != nil {
		return s.DayNight.SkyAt(light)
	}
	return s.Background
}

// NewCamera creates a camera at the scene's initial placement
func (s *Scene) NewCamera() (*renderer.Camera, error) {
	return renderer.NewCamera(s.Camera.Eye, s.Camera.Target, s.Camera.Up)
}

// RenderConfig returns default render settings sized for this scene
func (s *Scene) RenderConfig() renderer.RenderConfig {
	config := renderer.DefaultRenderConfig()
	if s.Width > 0 && s.Height > 0 {
		config.Width = s.Width
		config.Height = s.Height
	}
	return config
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// EnableDayNight replaces the static light and sky with the default day/night cycle
func (s *Scene) EnableDayNight() {
	s.DayNight = lights.DefaultDayNight()
}

// newBox is shorthand for scene construction
func newBox(minX, minY, minZ, maxX, maxY, maxZ float64, mat *material.Material) geometry.Shape {
	return geometry.NewBox(core.NewVec3(minX, minY, minZ), core.NewVec3(maxX, maxY, maxZ), mat)
}
