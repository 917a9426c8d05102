package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/framebuffer"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config holds the command line settings for an offline render
type Config struct {
	SceneType   string
	Width       int // 0 uses the scene's size
	Height      int
	Time        float64 // Simulation time of the first frame
	Frames      int
	Dt          float64 // Simulation seconds between frames
	Workers     int     // 0 uses one worker per logical CPU
	Scale       int     // Integer upscale factor for saved PNGs
	TexturePath string
	OutputDir   string
	DayNight    bool
}

// maxConcurrentWrites bounds how many frames are encoded at once
const maxConcurrentWrites = 4

func main() {
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "portal", "Scene to render (see -help for the list)")
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&config.Height, "height", 0, "Image height in pixels (0 = scene default)")
	flag.Float64Var(&config.Time, "time", 0, "Simulation time of the first frame in seconds")
	flag.IntVar(&config.Frames, "frames", 1, "Number of frames to render")
	flag.Float64Var(&config.Dt, "dt", 1.0/60.0, "Simulation seconds between frames")
	flag.IntVar(&config.Workers, "workers", 0, "Number of render workers (0 = one per CPU)")
	flag.IntVar(&config.Scale, "scale", 1, "Integer upscale factor for saved images")
	flag.StringVar(&config.TexturePath, "texture", "", "Texture image for the textured scene")
	flag.StringVar(&config.OutputDir, "output", "output", "Output directory")
	flag.BoolVar(&config.DayNight, "daynight", false, "Animate the light with the day/night cycle")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	logger := renderer.NewDefaultLogger()
	if err := run(context.Background(), config, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-16s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Frames are saved to <output>/<scene>/frame_<n>.png")
}

// createScene builds the named scene with the command line options applied
func createScene(config Config) (*scene.Scene, error) {
	if config.SceneType == "" {
		return nil, fmt.Errorf("no scene specified")
	}
	return scene.Create(config.SceneType, scene.Options{
		TexturePath: config.TexturePath,
		DayNight:    config.DayNight,
	})
}

// renderConfig merges the command line settings over the scene's defaults
func renderConfig(s *scene.Scene, config Config) (renderer.RenderConfig, error) {
	rc := s.RenderConfig()
	if config.Width < 0 || config.Height < 0 {
		return rc, fmt.Errorf("invalid image size %dx%d", config.Width, config.Height)
	}
	if config.Width > 0 {
		rc.Width = config.Width
	}
	if config.Height > 0 {
		rc.Height = config.Height
	}
	rc.NumWorkers = config.Workers
	return rc, nil
}

// run renders the requested frames and writes them as PNG files
func run(ctx context.Context, config Config, logger core.Logger) error {
	if config.Frames <= 0 {
		return fmt.Errorf("frame count must be positive, got %d", config.Frames)
	}

	selectedScene, err := createScene(config)
	if err != nil {
		return err
	}

	rc, err := renderConfig(selectedScene, config)
	if err != nil {
		return err
	}

	cam, err := selectedScene.NewCamera()
	if err != nil {
		return fmt.Errorf("invalid camera for scene %s: %w", selectedScene.Name, err)
	}

	outputDir := filepath.Join(config.OutputDir, selectedScene.Name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	logSystemInfo(logger)
	logger.Printf("Rendering %s (%d boxes) at %dx%d\n",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), rc.Width, rc.Height)

	raytracer := renderer.NewRaytracer(rc, logger)
	defer raytracer.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWrites)

	startTime := time.Now()
	frameChan, errChan := raytracer.RenderSequence(ctx, selectedScene, cam, config.Time, config.Dt, config.Frames)

	for frame := range frameChan {
		filename := filepath.Join(outputDir, fmt.Sprintf("frame_%04d.png", frame.Index))
		logger.Printf("Frame %d: coverage %.1f%%, average luminance %.3f\n",
			frame.Index, frame.Stats.Coverage()*100, renderer.CalculateAverageLuminance(frame.Image))

		frame := frame
		g.Go(func() error {
			if err := framebuffer.SavePNG(filename, framebuffer.Scale(frame.Image, config.Scale)); err != nil {
				return err
			}
			logger.Printf("Saved %s\n", filename)
			return nil
		})
	}

	renderErr := <-errChan
	if err := g.Wait(); err != nil {
		return err
	}
	if renderErr != nil {
		return renderErr
	}

	logger.Printf("Rendered %d frames in %v\n", config.Frames, time.Since(startTime))
	return nil
}

// logSystemInfo reports the host's CPU and memory; failures are logged, not fatal
func logSystemInfo(logger core.Logger) {
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		logger.Printf("CPU: %s\n", infos[0].ModelName)
	}
	logger.Printf("Logical CPUs: %d\n", renderer.DefaultWorkerCount())

	if vm, err := mem.VirtualMemory(); err == nil {
		logger.Printf("Memory: %.1f GiB total, %.1f GiB available\n",
			float64(vm.Total)/(1<<30), float64(vm.Available)/(1<<30))
	} else {
		logger.Printf("Memory: unavailable (%v)\n", err)
	}
}
