package renderer

import (
	"context"
	"fmt"
	"image"
)

// FrameResult contains one rendered frame of a sequence
type FrameResult struct {
	Index   int     // 0-based frame number
	SimTime float64 // Simulation time the frame was rendered at
	Image   *image.RGBA
	Stats   RenderStats
	IsLast  bool
}

// RenderSequence renders frames at simulation times start, start+dt, ... on a background goroutine.
// Returns channels for frames and errors; both are closed when rendering ends.
// Cancellation is checked between frames, never while a frame is being traced.
// The camera must not be mutated while the sequence is running.
func (rt *Raytracer) RenderSequence(ctx context.Context, sc FrameSource, cam *Camera, start, dt float64, frames int) (<-chan FrameResult, <-chan error) {
	frameChan := make(chan FrameResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(frameChan)
		defer close(errChan)

		if frames <= 0 {
			errChan <- fmt.Errorf("frame count must be positive, got %d", frames)
			return
		}

		rt.logger.Printf("Starting sequence of %d frames (t=%.2f, dt=%.3f)...\n", frames, start, dt)

		for i := 0; i < frames; i++ {
			// Check if the consumer went away before starting this frame
			select {
			case <-ctx.Done():
				rt.logger.Printf("Sequence cancelled before frame %d\n", i)
				errChan <- ctx.Err()
				return
			default:
			}

			simTime := start + float64(i)*dt
			img, stats, err := rt.RenderImage(sc, cam, simTime)
			if err != nil {
				errChan <- fmt.Errorf("frame %d: %w", i, err)
				return
			}

			rt.logger.Printf("Frame %d (t=%.2f) rendered in %v (%d/%d pixels hit)\n",
				i, simTime, stats.Elapsed, stats.HitPixels, stats.TotalPixels)

			result := FrameResult{
				Index:   i,
				SimTime: simTime,
				Image:   img,
				Stats:   stats,
				IsLast:  i == frames-1,
			}

			select {
			case frameChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return frameChan, errChan
}
