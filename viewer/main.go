package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "portal", "Scene to display")
	width := flag.Int("width", 0, "Frame width in pixels (0 = scene default)")
	height := flag.Int("height", 0, "Frame height in pixels (0 = scene default)")
	scale := flag.Int("scale", 1, "Window scale factor")
	workers := flag.Int("workers", 0, "Number of render workers (0 = one per CPU)")
	texture := flag.String("texture", "", "Texture image for the textured scene")
	dayNight := flag.Bool("daynight", false, "Start with the day/night cycle enabled")
	dt := flag.Float64("dt", 1.0/60.0, "Simulation seconds per frame")
	flag.Parse()

	if err := run(*sceneType, *width, *height, *scale, *workers, *texture, *dayNight, *dt); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run(sceneType string, width, height, scale, workers int, texture string, dayNight bool, dt float64) error {
	sc, err := scene.Create(sceneType, scene.Options{TexturePath: texture, DayNight: dayNight})
	if err != nil {
		return err
	}

	config := sc.RenderConfig()
	if width > 0 {
		config.Width = width
	}
	if height > 0 {
		config.Height = height
	}
	config.NumWorkers = workers

	rt := renderer.NewRaytracer(config, renderer.NewDefaultLogger())
	defer rt.Close()

	game, err := NewGame(sc, rt, dt)
	if err != nil {
		return err
	}

	scale = max(scale, 1)
	ebiten.SetWindowSize(config.Width*scale, config.Height*scale)
	ebiten.SetWindowTitle(fmt.Sprintf("Whitted Raytracer - %s", sc.Name))
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
