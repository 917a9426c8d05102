package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// frame is the read-only state shared by every tile of one render
type frame struct {
	env        *integrator.Environment
	eye        core.Vec3
	basis      Basis
	projection projection
	width      int
	pixels     []uint32 // Row-major packed colors; each tile writes only its own slots
}

// TileRenderer traces the pixels of a tile using an integrator
type TileRenderer struct {
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given integrator
func NewTileRenderer(integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{integrator: integratorInst}
}

// RenderTileBounds traces every pixel within bounds and stores the packed color in f.pixels.
// Tiles have non-overlapping bounds, so concurrent calls never write the same slot.
// Integrators implementing integrator.HitTracer report hits directly; for others a pixel
// counts as a hit when its color differs from the background.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, f *frame) tileStats {
	stats := tileStats{Pixels: bounds.Dx() * bounds.Dy()}
	hitTracer, reportsHits := tr.integrator.(integrator.HitTracer)
	background := f.env.Background.ToHex()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			direction := f.projection.direction(f.basis, x, y)

			var color uint32
			var isHit bool
			if reportsHits {
				c, hit := hitTracer.TraceHit(f.eye, direction, f.env, 0)
				color, isHit = c.ToHex(), hit
			} else {
				color = tr.integrator.Trace(f.eye, direction, f.env, 0).ToHex()
				isHit = color != background
			}

			if isHit {
				stats.HitPixels++
			}
			f.pixels[y*f.width+x] = color
		}
	}

	return stats
}
