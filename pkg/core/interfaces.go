package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Framebuffer is the pixel sink a render pass writes into.
// Writes follow a set-color-then-plot protocol, so callers must not
// interleave SetCurrentColor/Point pairs from multiple goroutines.
type Framebuffer interface {
	Width() int
	Height() int
	SetCurrentColor(packed uint32)
	Point(x, y int)
}
