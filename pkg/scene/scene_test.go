package scene

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/framebuffer"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

const skyHex = 0x448EE4

type testLogger struct{}

func (testLogger) Printf(format string, args ...interface{}) {}

func renderScene(t *testing.T, s *Scene, width, height int) *framebuffer.Buffer {
	t.Helper()

	config := s.RenderConfig()
	config.Width, config.Height = width, height
	config.TileSize = 16
	config.NumWorkers = 2

	rt := renderer.NewRaytracer(config, testLogger{})
	defer rt.Close()

	cam, err := s.NewCamera()
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	fb := framebuffer.New(width, height)
	if _, err := rt.Render(fb, s, cam, 0); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return fb
}

func TestPortalScene_Layout(t *testing.T) {
	s := NewPortalScene()

	// Base, four lava pools, five portal boxes, eight steps
	if got := s.GetPrimitiveCount(); got != 18 {
		t.Fatalf("Expected 18 boxes, got %d", got)
	}

	if s.Light.Position != core.NewVec3(2.8, 1.0, -3.0) {
		t.Errorf("Unexpected light position %v", s.Light.Position)
	}
	if s.Camera.Eye != core.NewVec3(0, 0, 6.5) {
		t.Errorf("Unexpected camera eye %v", s.Camera.Eye)
	}
	if s.Width != 800 || s.Height != 600 {
		t.Errorf("Expected 800x600, got %dx%d", s.Width, s.Height)
	}

	for i, shape := range s.Shapes {
		box, ok := shape.(*geometry.Box)
		if !ok {
			t.Fatalf("Shape %d is not a box", i)
		}
		if box.Min.X > box.Max.X || box.Min.Y > box.Max.Y || box.Min.Z > box.Max.Z {
			t.Errorf("Box %d has inverted corners %v %v", i, box.Min, box.Max)
		}
	}
}

func TestPortalScene_SharesPalette(t *testing.T) {
	s := NewPortalScene()

	counts := make(map[*material.Material]int)
	for _, shape := range s.Shapes {
		counts[shape.(*geometry.Box).Material]++
	}

	if counts[Rock] != 8 {
		t.Errorf("Expected 8 boxes sharing the rock material, got %d", counts[Rock])
	}
	if counts[Obsidian] != 4 {
		t.Errorf("Expected 4 boxes sharing the obsidian material, got %d", counts[Obsidian])
	}
	if counts[Lava] != 4 {
		t.Errorf("Expected 4 boxes sharing the lava material, got %d", counts[Lava])
	}
}

func TestGreenBoxScene_Render(t *testing.T) {
	fb := renderScene(t, NewGreenBoxScene(), 64, 48)

	if got := fb.At(32, 24); got != 0x00FF00 {
		t.Errorf("Expected pure green at the center, got %#06x", got)
	}
	if got := fb.At(0, 0); got != skyHex {
		t.Errorf("Expected sky at the corner, got %#06x", got)
	}
}

func TestMirrorCorridorScene_RendersSky(t *testing.T) {
	fb := renderScene(t, NewMirrorCorridorScene(), 40, 30)

	for i, pixel := range fb.Pixels() {
		if pixel != skyHex {
			t.Fatalf("Pixel %d: expected sky, got %#06x", i, pixel)
		}
	}
}

func TestScene_LightAndSky(t *testing.T) {
	s := NewGreenBoxScene()

	if got := s.LightAt(42); got != s.Light {
		t.Errorf("Expected the static light, got %+v", got)
	}
	if got := s.SkyAt(s.Light); got != DefaultSky {
		t.Errorf("Expected the static sky, got %v", got)
	}

	s.EnableDayNight()
	period := s.DayNight.Period

	noon := s.LightAt(period / 4)
	midnight := s.LightAt(3 * period / 4)
	if noon.Position.Y <= midnight.Position.Y {
		t.Errorf("Expected the light higher at noon (%v) than midnight (%v)", noon.Position, midnight.Position)
	}

	daySky := s.SkyAt(noon)
	nightSky := s.SkyAt(midnight)
	if math.Abs(daySky.B-s.DayNight.DaySky.B) > 1e-9 || math.Abs(nightSky.B-s.DayNight.NightSky.B) > 1e-9 {
		t.Errorf("Expected day sky %v and night sky %v, got %v and %v",
			s.DayNight.DaySky, s.DayNight.NightSky, daySky, nightSky)
	}
}

func TestScene_RenderConfig(t *testing.T) {
	config := NewGreenBoxScene().RenderConfig()
	if config.Width != 400 || config.Height != 300 {
		t.Errorf("Expected 400x300, got %dx%d", config.Width, config.Height)
	}

	unsized := &Scene{}
	defaults := renderer.DefaultRenderConfig()
	if got := unsized.RenderConfig(); got.Width != defaults.Width || got.Height != defaults.Height {
		t.Errorf("Expected default size, got %dx%d", got.Width, got.Height)
	}
}

func TestTexturedScene(t *testing.T) {
	t.Run("procedural", func(t *testing.T) {
		s, err := NewTexturedScene("")
		if err != nil {
			t.Fatalf("NewTexturedScene failed: %v", err)
		}
		if s.GetPrimitiveCount() != 4 {
			t.Errorf("Expected 4 boxes, got %d", s.GetPrimitiveCount())
		}
	})

	t.Run("image file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "crate.png")
		img := image.NewRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
			}
		}
		file, err := os.Create(path)
		if err != nil {
			t.Fatalf("Failed to create texture: %v", err)
		}
		if err := png.Encode(file, img); err != nil {
			t.Fatalf("Failed to encode texture: %v", err)
		}
		file.Close()

		s, err := NewTexturedScene(path)
		if err != nil {
			t.Fatalf("NewTexturedScene failed: %v", err)
		}
		crate := s.Shapes[1].(*geometry.Box).Material
		if crate.Texture == nil {
			t.Fatal("Expected the crate to be textured")
		}
		if got := crate.Texture.Sample(0.5, 0.5); got != core.NewColor(200, 120, 40) {
			t.Errorf("Expected the loaded texel, got %v", got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := NewTexturedScene(filepath.Join(t.TempDir(), "missing.png")); err == nil {
			t.Error("Expected an error for a missing texture")
		}
	})
}
