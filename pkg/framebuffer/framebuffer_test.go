package framebuffer

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestBuffer_SetColorThenPoint(t *testing.T) {
	fb := New(4, 3)

	fb.SetCurrentColor(0x112233)
	fb.Point(1, 2)
	fb.SetCurrentColor(0xFF0000)
	fb.Point(3, 0)

	if got := fb.At(1, 2); got != 0x112233 {
		t.Errorf("Expected 0x112233 at (1,2), got %#06x", got)
	}
	if got := fb.At(3, 0); got != 0xFF0000 {
		t.Errorf("Expected 0xFF0000 at (3,0), got %#06x", got)
	}
	if got := fb.At(0, 0); got != 0 {
		t.Errorf("Expected untouched pixel to stay black, got %#06x", got)
	}
}

func TestBuffer_OutOfRangeIgnored(t *testing.T) {
	fb := New(2, 2)
	fb.SetCurrentColor(0xFFFFFF)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {100, 100}} {
		fb.Point(p[0], p[1])
	}

	for _, pixel := range fb.Pixels() {
		if pixel != 0 {
			t.Fatalf("Expected out-of-range writes to be ignored, got %#06x", pixel)
		}
	}
	if fb.At(5, 5) != 0 {
		t.Error("Expected At outside the buffer to return 0")
	}
}

func TestBuffer_ClearAndToRGBA(t *testing.T) {
	fb := New(3, 2)
	fb.Clear(0x448EE4)
	fb.SetCurrentColor(0x00FF00)
	fb.Point(2, 1)

	img := fb.ToRGBA()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("Unexpected image bounds %v", img.Bounds())
	}

	sky := color.RGBA{R: 68, G: 142, B: 228, A: 255}
	if got := img.RGBAAt(0, 0); got != sky {
		t.Errorf("Expected sky %v at (0,0), got %v", sky, got)
	}
	if got := img.RGBAAt(2, 1); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("Expected green at (2,1), got %v", got)
	}
}

func TestBuffer_Scaled(t *testing.T) {
	fb := New(2, 1)
	fb.SetCurrentColor(0xFF0000)
	fb.Point(0, 0)
	fb.SetCurrentColor(0x0000FF)
	fb.Point(1, 0)

	img := fb.Scaled(3)
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 3 {
		t.Fatalf("Expected 6x3 image, got %v", img.Bounds())
	}

	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			want := red
			if x >= 3 {
				want = blue
			}
			if got := img.RGBAAt(x, y); got != want {
				t.Errorf("(%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestBuffer_SavePNG(t *testing.T) {
	fb := New(2, 2)
	fb.Clear(0x102030)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path, 2); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open saved PNG: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode saved PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 4 {
		t.Errorf("Expected 4x4 image, got %v", img.Bounds())
	}
	r, g, b, _ := img.At(3, 3).RGBA()
	if r>>8 != 0x10 || g>>8 != 0x20 || b>>8 != 0x30 {
		t.Errorf("Unexpected pixel color %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestColor(t *testing.T) {
	if got := Color(0xABCDEF); got != (color.RGBA{R: 0xAB, G: 0xCD, B: 0xEF, A: 0xFF}) {
		t.Errorf("Unexpected unpacked color %v", got)
	}
}

func TestScale_FactorOneIsIdentity(t *testing.T) {
	fb := New(3, 3)
	img := fb.ToRGBA()
	if got := Scale(img, 1); got != img {
		t.Error("Expected factor 1 to return the same image")
	}
	if got := Scale(img, 0); got != img {
		t.Error("Expected factor 0 to return the same image")
	}
}
