package renderer

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/framebuffer"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// ErrClosed is returned when rendering with a raytracer whose worker pool has been stopped
var ErrClosed = errors.New("raytracer is closed")

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// RenderConfig contains configuration for rendering frames
type RenderConfig struct {
	Width      int     // Image width in pixels
	Height     int     // Image height in pixels
	FOV        float64 // Vertical field of view in radians
	TileSize   int     // Size of each tile
	NumWorkers int     // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:      800,
		Height:     600,
		FOV:        math.Pi / 3,
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// FrameSource supplies the world for a frame. Light and sky may vary with simulation time.
type FrameSource interface {
	GetShapes() []geometry.Shape
	LightAt(simTime float64) lights.Light
	SkyAt(light lights.Light) core.Color
}

// Raytracer renders frames by splitting the image into tiles traced on a persistent worker pool
type Raytracer struct {
	config     RenderConfig
	tiles      []*Tile
	workerPool *WorkerPool
	logger     core.Logger

	mu     sync.Mutex // Serializes frames; the pool's result queue is shared
	closed bool
}

// NewRaytracer creates a raytracer using the Whitted integrator
func NewRaytracer(config RenderConfig, logger core.Logger) *Raytracer {
	return NewRaytracerWithIntegrator(config, integrator.NewWhitted(), logger)
}

// NewRaytracerWithIntegrator creates a raytracer tracing with the given integrator
func NewRaytracerWithIntegrator(config RenderConfig, integratorInst integrator.Integrator, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if config.FOV <= 0 {
		config.FOV = DefaultRenderConfig().FOV
	}

	tiles := NewTileGrid(config.Width, config.Height, config.TileSize)

	return &Raytracer{
		config:     config,
		tiles:      tiles,
		workerPool: NewWorkerPool(integratorInst, len(tiles), config.NumWorkers),
		logger:     logger,
	}
}

// Config returns the raytracer's configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// NumWorkers returns the number of workers tracing tiles
func (rt *Raytracer) NumWorkers() int {
	return rt.workerPool.GetNumWorkers()
}

// Render traces one frame into fb.
// The light and sky are resolved once from simTime before any pixel is traced,
// tiles are traced in parallel into an intermediate buffer, and the buffer is then
// copied into fb serially with SetCurrentColor followed by Point for every pixel.
func (rt *Raytracer) Render(fb core.Framebuffer, sc FrameSource, cam *Camera, simTime float64) (RenderStats, error) {
	if fb.Width() != rt.config.Width || fb.Height() != rt.config.Height {
		return RenderStats{}, fmt.Errorf("framebuffer is %dx%d, raytracer configured for %dx%d",
			fb.Width(), fb.Height(), rt.config.Width, rt.config.Height)
	}
	if cam == nil {
		return RenderStats{}, fmt.Errorf("render requires a camera")
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.closed {
		return RenderStats{}, ErrClosed
	}

	startTime := time.Now()
	rt.workerPool.Start()

	// Serial: resolve the frame's light and sky
	light := sc.LightAt(simTime)
	f := &frame{
		env: &integrator.Environment{
			Shapes:     sc.GetShapes(),
			Light:      light,
			Background: sc.SkyAt(light),
		},
		eye:        cam.Eye,
		basis:      cam.Basis(),
		projection: newProjection(rt.config.Width, rt.config.Height, rt.config.FOV),
		width:      rt.config.Width,
		pixels:     make([]uint32, rt.config.Width*rt.config.Height),
	}

	// Parallel: every tile writes only its own slots
	for i, tile := range rt.tiles {
		rt.workerPool.SubmitTask(TileTask{Tile: tile, TaskID: i, frame: f})
	}

	stats := RenderStats{
		Tiles:   len(rt.tiles),
		Workers: rt.workerPool.GetNumWorkers(),
	}
	var firstErr error
	for i := 0; i < len(rt.tiles); i++ {
		result, ok := rt.workerPool.GetResult()
		if !ok {
			return RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		stats.merge(result.Stats)
	}
	if firstErr != nil {
		return RenderStats{}, firstErr
	}

	// Serial: copy into the sink
	for index, packed := range f.pixels {
		fb.SetCurrentColor(packed)
		fb.Point(index%rt.config.Width, index/rt.config.Width)
	}

	stats.Elapsed = time.Since(startTime)
	return stats, nil
}

// RenderImage renders one frame into a fresh framebuffer and returns it as an image
func (rt *Raytracer) RenderImage(sc FrameSource, cam *Camera, simTime float64) (*image.RGBA, RenderStats, error) {
	fb := framebuffer.New(rt.config.Width, rt.config.Height)
	stats, err := rt.Render(fb, sc, cam, simTime)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return fb.ToRGBA(), stats, nil
}

// Close stops the worker pool. Rendering afterwards returns ErrClosed.
func (rt *Raytracer) Close() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.closed {
		return
	}
	rt.closed = true
	rt.workerPool.Stop()
}
