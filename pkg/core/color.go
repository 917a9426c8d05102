package core

import (
	"image/color"
	"math"
)

// Color is an RGB color in the 0..255 domain.
// Arithmetic is unclamped; values are clamped only when packed for output.
type Color struct {
	R, G, B float64
}

// NewColor creates a color from 8-bit channels
func NewColor(r, g, b uint8) Color {
	return Color{R: float64(r), G: float64(g), B: float64(b)}
}

// ColorFromHex unpacks a 0xRRGGBB value
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float64((hex >> 16) & 0xFF),
		G: float64((hex >> 8) & 0xFF),
		B: float64(hex & 0xFF),
	}
}

// Black returns the zero color
func Black() Color {
	return Color{}
}

// Add returns the component-wise sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply scales every channel by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the component-wise product normalised by 255,
// so that white is the identity.
func (c Color) MultiplyColor(other Color) Color {
	return Color{
		R: c.R * other.R / 255.0,
		G: c.G * other.G / 255.0,
		B: c.B * other.B / 255.0,
	}
}

// Lerp linearly interpolates from c (t=0) to other (t=1)
func (c Color) Lerp(other Color, t float64) Color {
	return c.Multiply(1 - t).Add(other.Multiply(t))
}

// IsBlack reports whether all channels are zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Distance returns the euclidean distance between two colors
func (c Color) Distance(other Color) float64 {
	dr, dg, db := c.R-other.R, c.G-other.G, c.B-other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// ToHex clamps to [0,255] and packs the color as 0xRRGGBB
func (c Color) ToHex() uint32 {
	return uint32(clampChannel(c.R))<<16 | uint32(clampChannel(c.G))<<8 | uint32(clampChannel(c.B))
}

// ToRGBA clamps to [0,255] and converts to an opaque color.RGBA
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{R: clampChannel(c.R), G: clampChannel(c.G), B: clampChannel(c.B), A: 255}
}

func clampChannel(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
