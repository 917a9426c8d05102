package core

import (
	"image/color"
	"testing"
)

func TestColor_ToHex(t *testing.T) {
	tests := []struct {
		name     string
		color    Color
		expected uint32
	}{
		{"Black", Color{}, 0x000000},
		{"White", NewColor(255, 255, 255), 0xFFFFFF},
		{"Sky", NewColor(68, 142, 228), 0x448EE4},
		{"Overflow clamps", Color{R: 400, G: 128, B: -20}, 0xFF8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.ToHex(); got != tt.expected {
				t.Errorf("Expected %06X, got %06X", tt.expected, got)
			}
		})
	}
}

func TestColor_ArithmeticIsUnclamped(t *testing.T) {
	c := NewColor(200, 200, 200).Add(NewColor(200, 0, 0))
	if c.R != 400 {
		t.Errorf("Expected unclamped red channel 400, got %f", c.R)
	}

	// Scaling back down recovers an in-range value
	half := c.Multiply(0.5)
	if half.ToHex() != 0xC86464 {
		t.Errorf("Expected C86464, got %06X", half.ToHex())
	}
}

func TestColor_MultiplyColor(t *testing.T) {
	white := NewColor(255, 255, 255)
	orange := NewColor(255, 165, 0)

	if got := orange.MultiplyColor(white); got != orange {
		t.Errorf("White should be the identity, got %v", got)
	}

	if got := orange.MultiplyColor(Black()); !got.IsBlack() {
		t.Errorf("Black should annihilate, got %v", got)
	}
}

func TestColor_FromHexRoundTrip(t *testing.T) {
	c := ColorFromHex(0x12ABEF)
	if c != NewColor(0x12, 0xAB, 0xEF) {
		t.Errorf("Unexpected unpacked color %v", c)
	}
	if c.ToHex() != 0x12ABEF {
		t.Errorf("Expected 12ABEF, got %06X", c.ToHex())
	}
}

func TestColor_LerpAndRGBA(t *testing.T) {
	day := NewColor(68, 142, 228)
	night := NewColor(10, 10, 40)

	if got := night.Lerp(day, 0); got != night {
		t.Errorf("t=0 should return start color, got %v", got)
	}
	if got := night.Lerp(day, 1); got.Distance(day) > 1e-9 {
		t.Errorf("t=1 should return end color, got %v", got)
	}

	rgba := day.ToRGBA()
	expected := color.RGBA{R: 68, G: 142, B: 228, A: 255}
	if rgba != expected {
		t.Errorf("Expected %v, got %v", expected, rgba)
	}
}
