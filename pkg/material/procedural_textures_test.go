package material

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCheckerboardTexture(t *testing.T) {
	light := core.NewColor(230, 230, 230)
	dark := core.NewColor(50, 50, 200)
	texture := NewCheckerboardTexture(8, 8, 4, light, dark)

	tests := []struct {
		name     string
		x, y     int
		expected core.Color
	}{
		{"top-left", 0, 0, light},
		{"top-right", 7, 0, dark},
		{"bottom-left", 0, 7, dark},
		{"bottom-right", 7, 7, light},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Pixels[tt.y*8+tt.x]; got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestUVDebugTexture(t *testing.T) {
	texture := NewUVDebugTexture(16, 16)

	// Sampling at (u, v) returns roughly (u, v) in red and green
	c := texture.Sample(0.99, 0.99)
	if c.R < 230 || c.G < 230 || c.B != 0 {
		t.Errorf("Expected bright red+green near (1,1), got %v", c)
	}
	c = texture.Sample(0.01, 0.01)
	if c.R > 25 || c.G > 25 {
		t.Errorf("Expected black near (0,0), got %v", c)
	}
}

func TestGradientTexture(t *testing.T) {
	top := core.NewColor(255, 0, 0)
	bottom := core.NewColor(0, 0, 255)
	texture := NewGradientTexture(2, 3, top, bottom)

	if texture.Pixels[0] != top {
		t.Errorf("Expected top row %v, got %v", top, texture.Pixels[0])
	}
	if texture.Pixels[5] != bottom {
		t.Errorf("Expected bottom row %v, got %v", bottom, texture.Pixels[5])
	}
	middle := texture.Pixels[2]
	if middle.R != 127.5 || middle.B != 127.5 {
		t.Errorf("Expected halfway blend, got %v", middle)
	}

	// Single-row textures don't divide by zero
	if single := NewGradientTexture(1, 1, top, bottom); single.Pixels[0] != top {
		t.Errorf("Expected top color for a single row, got %v", single.Pixels[0])
	}
}
