package server

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port int
	echo *echo.Echo
}

// NewServer creates a new web server with all routes registered
func NewServer(port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} ${method} ${uri} ${status} ${latency_human}\n",
	}))

	s := &Server{port: port, echo: e}

	// Serve static files
	e.Static("/", "static")

	// API endpoints
	api := e.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/scenes", s.handleScenes)
	api.GET("/render", s.handleRender)
	api.GET("/animate", s.handleAnimate)
	api.GET("/inspect", s.handleInspect)

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.echo.Logger.Printf("Starting web server on http://localhost%s", addr)
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight renders to finish
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string  `json:"scene"`    // Scene ID (e.g., "portal")
	Width    int     `json:"width"`    // Image width, 0 = scene default
	Height   int     `json:"height"`   // Image height, 0 = scene default
	Time     float64 `json:"time"`     // Simulation time of the first frame
	Frames   int     `json:"frames"`   // Number of frames for animations
	Dt       float64 `json:"dt"`       // Simulation seconds between frames
	Yaw      float64 `json:"yaw"`      // Camera orbit applied before rendering
	Pitch    float64 `json:"pitch"`    // Camera orbit applied before rendering
	Zoom     float64 `json:"zoom"`     // Camera zoom applied before rendering
	DayNight bool    `json:"dayNight"` // Animate the light
	Texture  string  `json:"texture"`  // Texture image for the textured scene
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int     `json:"totalPixels"`
	HitPixels   int     `json:"hitPixels"`
	Coverage    float64 `json:"coverage"`
	Luminance   float64 `json:"luminance"`
	Tiles       int     `json:"tiles"`
	Workers     int     `json:"workers"`
	RenderMs    int64   `json:"renderMs"`
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the available scenes grouped by category
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.ListAllScenes())
}

// parseRenderRequest parses and validates request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "portal" // Default scene
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 16, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 16, 2000); err != nil {
		return nil, err
	}
	if req.Frames, err = parseIntParam(values, "frames", 60, 1, 600); err != nil {
		return nil, err
	}
	if req.Time, err = parseFloatParam(values, "time", 0, -1e6, 1e6); err != nil {
		return nil, err
	}
	if req.Dt, err = parseFloatParam(values, "dt", 1.0/60.0, 0, 60); err != nil {
		return nil, err
	}
	if req.Yaw, err = parseFloatParam(values, "yaw", 0, -2*math.Pi, 2*math.Pi); err != nil {
		return nil, err
	}
	if req.Pitch, err = parseFloatParam(values, "pitch", 0, -math.Pi, math.Pi); err != nil {
		return nil, err
	}
	if req.Zoom, err = parseFloatParam(values, "zoom", 0, -10, 10); err != nil {
		return nil, err
	}
	if value := values.Get("dayNight"); value != "" {
		if req.DayNight, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid dayNight: %s", value)
		}
	}

	// Only paths under the working directory may be read
	if req.Texture = values.Get("texture"); req.Texture != "" && !filepath.IsLocal(req.Texture) {
		return nil, fmt.Errorf("texture must be a relative path: %s", req.Texture)
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(parsed) {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// RenderingPipeline contains the configured scene, camera and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Config    renderer.RenderConfig
	Camera    *renderer.Camera
	Raytracer *renderer.Raytracer // nil for inspection-only pipelines
}

// setupScene builds the scene and camera for a request
func setupScene(req *RenderRequest) (*RenderingPipeline, error) {
	sceneObj, err := scene.Create(req.Scene, scene.Options{
		TexturePath: req.Texture,
		DayNight:    req.DayNight,
	})
	if err != nil {
		return nil, err
	}

	config := sceneObj.RenderConfig()
	if req.Width > 0 {
		config.Width = req.Width
	}
	if req.Height > 0 {
		config.Height = req.Height
	}

	cam, err := sceneObj.NewCamera()
	if err != nil {
		return nil, fmt.Errorf("invalid camera for scene %s: %w", req.Scene, err)
	}
	if req.Yaw != 0 || req.Pitch != 0 {
		cam.Orbit(req.Yaw, req.Pitch)
	}
	if req.Zoom != 0 {
		cam.Zoom(req.Zoom)
	}

	return &RenderingPipeline{Scene: sceneObj, Config: config, Camera: cam}, nil
}

// setupRenderingPipeline builds the scene and a raytracer sized for the request.
// The caller must close the raytracer.
func setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	pipeline, err := setupScene(req)
	if err != nil {
		return nil, err
	}
	pipeline.Raytracer = renderer.NewRaytracer(pipeline.Config, logger)
	return pipeline, nil
}

// toStats converts renderer statistics for the client
func toStats(stats renderer.RenderStats, luminance float64) Stats {
	return Stats{
		TotalPixels: stats.TotalPixels,
		HitPixels:   stats.HitPixels,
		Coverage:    stats.Coverage(),
		Luminance:   luminance,
		Tiles:       stats.Tiles,
		Workers:     stats.Workers,
		RenderMs:    stats.Elapsed.Milliseconds(),
	}
}
