package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-whitted-raytracer/pkg/controls"
	"github.com/df07/go-whitted-raytracer/pkg/framebuffer"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// keyBindings maps held keys to camera controls
var keyBindings = []struct {
	key ebiten.Key
	set func(*controls.State)
}{
	{ebiten.KeyEscape, func(s *controls.State) { s.Quit = true }},
	{ebiten.KeyW, func(s *controls.State) { s.ZoomIn = true }},
	{ebiten.KeyS, func(s *controls.State) { s.ZoomOut = true }},
	{ebiten.KeyUp, func(s *controls.State) { s.OrbitUp = true }},
	{ebiten.KeyDown, func(s *controls.State) { s.OrbitDown = true }},
	{ebiten.KeyLeft, func(s *controls.State) { s.OrbitLeft = true }},
	{ebiten.KeyRight, func(s *controls.State) { s.OrbitRight = true }},
}

// pollControls reads the held keys into a control state
func pollControls(pressed func(ebiten.Key) bool) controls.State {
	var state controls.State
	for _, binding := range keyBindings {
		if pressed(binding.key) {
			binding.set(&state)
		}
	}
	return state
}

// toggles are one-shot key presses handled once per tick
type toggles struct {
	Pause    bool
	HUD      bool
	DayNight bool
}

func pollToggles() toggles {
	return toggles{
		Pause:    inpututil.IsKeyJustPressed(ebiten.KeySpace),
		HUD:      inpututil.IsKeyJustPressed(ebiten.KeyH),
		DayNight: inpututil.IsKeyJustPressed(ebiten.KeyN),
	}
}

// Game renders one frame per tick and applies keyboard controls to the camera
type Game struct {
	scene     *scene.Scene
	camera    *renderer.Camera
	raytracer *renderer.Raytracer
	fb        *framebuffer.Buffer
	controls  controls.Config

	simTime  float64
	dt       float64 // Simulation seconds per tick
	paused   bool
	showHUD  bool
	dayNight *lights.DayNight // Cycle restored when toggled back on

	lastStats renderer.RenderStats
}

// NewGame creates a game rendering sc at the raytracer's configured size
func NewGame(sc *scene.Scene, rt *renderer.Raytracer, dt float64) (*Game, error) {
	cam, err := sc.NewCamera()
	if err != nil {
		return nil, fmt.Errorf("invalid camera for scene %s: %w", sc.Name, err)
	}

	config := rt.Config()
	return &Game{
		scene:     sc,
		camera:    cam,
		raytracer: rt,
		fb:        framebuffer.New(config.Width, config.Height),
		controls:  controls.DefaultConfig(),
		dt:        dt,
		showHUD:   true,
		dayNight:  sc.DayNight,
	}, nil
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	return g.step(pollControls(ebiten.IsKeyPressed), pollToggles())
}

// step advances one tick: apply input, advance time, render the frame
func (g *Game) step(state controls.State, t toggles) error {
	if quit := controls.Apply(g.camera, state, g.controls); quit {
		return ebiten.Termination
	}

	if t.Pause {
		g.paused = !g.paused
	}
	if t.HUD {
		g.showHUD = !g.showHUD
	}
	if t.DayNight {
		g.toggleDayNight()
	}

	if !g.paused {
		g.simTime += g.dt
	}

	stats, err := g.raytracer.Render(g.fb, g.scene, g.camera, g.simTime)
	if err != nil {
		if errors.Is(err, renderer.ErrClosed) {
			return ebiten.Termination
		}
		return fmt.Errorf("render failed: %w", err)
	}
	g.lastStats = stats
	return nil
}

func (g *Game) toggleDayNight() {
	if g.scene.DayNight != nil {
		g.scene.DayNight = nil
		return
	}
	if g.dayNight == nil {
		g.dayNight = lights.DefaultDayNight()
	}
	g.scene.DayNight = g.dayNight
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.fb.RGBABytes())

	if g.showHUD {
		ebitenutil.DebugPrint(screen, g.hudText())
	}
}

func (g *Game) hudText() string {
	mode := "static light"
	if g.scene.DayNight != nil {
		mode = "day/night"
	}
	text := fmt.Sprintf("%s  t=%.2fs  %s\nframe %v  %.0f%% hit  %d workers  %.0f TPS\n",
		g.scene.Name, g.simTime, mode,
		g.lastStats.Elapsed.Round(100*time.Microsecond), g.lastStats.Coverage()*100, g.lastStats.Workers, ebiten.ActualTPS())
	text += "arrows orbit  W/S zoom  N day/night  space pause  H hud  esc quit"
	if g.paused {
		text += "\nPAUSED"
	}
	return text
}

// Layout implements ebiten.Game; the window scales the fixed-size frame
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width(), g.fb.Height()
}
