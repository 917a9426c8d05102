package framebuffer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Buffer is a width x height grid of packed 0xRRGGBB pixels.
// Pixels are written by setting the current color and then plotting a point.
type Buffer struct {
	width   int
	height  int
	pixels  []uint32 // Row-major
	current uint32
}

// New creates a black framebuffer
func New(width, height int) *Buffer {
	width = max(width, 0)
	height = max(height, 0)
	return &Buffer{
		width:  width,
		height: height,
		pixels: make([]uint32, width*height),
	}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// SetCurrentColor sets the color used by subsequent Point calls
func (b *Buffer) SetCurrentColor(packed uint32) {
	b.current = packed & 0xFFFFFF
}

// Point writes the current color at (x, y). Out-of-range coordinates are ignored.
func (b *Buffer) Point(x, y int) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.pixels[y*b.width+x] = b.current
}

// At returns the packed color at (x, y), or 0 outside the buffer
func (b *Buffer) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0
	}
	return b.pixels[y*b.width+x]
}

// Pixels returns the underlying row-major pixel slice
func (b *Buffer) Pixels() []uint32 {
	return b.pixels
}

// Clear fills the whole buffer with one packed color
func (b *Buffer) Clear(packed uint32) {
	packed &= 0xFFFFFF
	for i := range b.pixels {
		b.pixels[i] = packed
	}
}

// RGBABytes returns the pixels as non-premultiplied RGBA bytes, 4 per pixel
func (b *Buffer) RGBABytes() []byte {
	out := make([]byte, len(b.pixels)*4)
	for i, p := range b.pixels {
		out[i*4] = byte(p >> 16)
		out[i*4+1] = byte(p >> 8)
		out[i*4+2] = byte(p)
		out[i*4+3] = 0xFF
	}
	return out
}

// ToRGBA converts the buffer to an opaque image
func (b *Buffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.RGBABytes())
	return img
}

// Scaled returns the buffer enlarged by an integer factor with nearest-neighbor filtering
func (b *Buffer) Scaled(factor int) *image.RGBA {
	return Scale(b.ToRGBA(), factor)
}

// Scale enlarges img by an integer factor with nearest-neighbor filtering.
// A factor of 1 or less returns img unchanged.
func Scale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}

	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*factor, bounds.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// SavePNG writes the buffer, enlarged by factor, to a PNG file
func (b *Buffer) SavePNG(path string, factor int) error {
	return SavePNG(path, b.Scaled(factor))
}

// SavePNG encodes img to a PNG file at path
func SavePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// Color unpacks a 0xRRGGBB value into an opaque color
func Color(packed uint32) color.RGBA {
	return color.RGBA{R: uint8(packed >> 16), G: uint8(packed >> 8), B: uint8(packed), A: 0xFF}
}
