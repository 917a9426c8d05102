package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func doGet(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doGet(t, NewServer(0), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	rec := doGet(t, NewServer(0), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body scene.ScenesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	count := 0
	for _, group := range body.Groups {
		count += len(group.Scenes)
	}
	if count != len(scene.ListScenes()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.ListScenes()), count)
	}
}

func TestHandleRender_GreenBox(t *testing.T) {
	rec := doGet(t, NewServer(0), "/api/render?scene=green-box&width=64&height=48")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
		t.Fatalf("Expected 64x48, got %v", img.Bounds())
	}

	r, g, b, _ := img.At(32, 24).RGBA()
	if r != 0 || g>>8 != 255 || b != 0 {
		t.Errorf("Expected pure green at the center, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
	if rec.Header().Get("X-Hit-Pixels") == "" {
		t.Error("Expected hit pixel header")
	}
}

func TestHandleRender_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"unknown scene", "scene=nonexistent"},
		{"width too small", "scene=green-box&width=2"},
		{"invalid height", "scene=green-box&height=abc"},
		{"missing texture", "scene=textured&width=32&height=32&texture=missing.png"},
		{"absolute texture path", "scene=textured&texture=/etc/passwd"},
		{"parent texture path", "scene=textured&texture=../secret.png"},
		{"invalid day/night flag", "scene=portal&dayNight=maybe"},
	}

	s := NewServer(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, s, "/api/render?"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	s := NewServer(0)

	t.Run("center hits the box top", func(t *testing.T) {
		rec := doGet(t, s, "/api/inspect?scene=green-box&width=64&height=48&x=32&y=24")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body InspectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if !body.Hit {
			t.Fatal("Expected a hit")
		}
		if body.Color != "#00ff00" {
			t.Errorf("Expected #00ff00, got %s", body.Color)
		}
		if body.Normal != [3]float64{0, 1, 0} {
			t.Errorf("Expected an upward normal, got %v", body.Normal)
		}
		if body.Distance != 5 {
			t.Errorf("Expected distance 5, got %f", body.Distance)
		}
		if body.Material == nil || body.Material.Diffuse != 1 {
			t.Errorf("Expected the diffuse green material, got %+v", body.Material)
		}
		if body.Box == nil || body.Box.Max != [3]float64{1, 0, 1} {
			t.Errorf("Expected the green box bounds, got %+v", body.Box)
		}
	})

	t.Run("corner misses", func(t *testing.T) {
		rec := doGet(t, s, "/api/inspect?scene=green-box&width=64&height=48&x=0&y=0")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}

		var body InspectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if body.Hit {
			t.Error("Expected a miss")
		}
		if body.Color != "#448ee4" {
			t.Errorf("Expected the sky color, got %s", body.Color)
		}
	})

	for _, query := range []string{
		"scene=green-box&width=64&height=48&x=64&y=0",
		"scene=green-box&width=64&height=48&x=0&y=-1",
		"scene=green-box&y=0",
		"scene=nonexistent&x=0&y=0",
	} {
		rec := doGet(t, s, "/api/inspect?"+query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}

// parseSSE splits an SSE body into (event, data) pairs
func parseSSE(body string) [][2]string {
	var events [][2]string
	for _, block := range strings.Split(body, "\n\n") {
		var event, data string
		for _, line := range strings.Split(block, "\n") {
			if v, ok := strings.CutPrefix(line, "event: "); ok {
				event = v
			} else if v, ok := strings.CutPrefix(line, "data: "); ok {
				data = v
			}
		}
		if event != "" {
			events = append(events, [2]string{event, data})
		}
	}
	return events
}

func TestHandleAnimate_StreamsFrames(t *testing.T) {
	rec := doGet(t, NewServer(0), "/api/animate?scene=green-box&width=32&height=24&frames=3&dt=0.5")
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected text/event-stream, got %q", ct)
	}

	var frames []FrameUpdate
	var completed bool
	for _, ev := range parseSSE(rec.Body.String()) {
		switch ev[0] {
		case "frame":
			var update FrameUpdate
			if err := json.Unmarshal([]byte(ev[1]), &update); err != nil {
				t.Fatalf("Invalid frame JSON: %v", err)
			}
			frames = append(frames, update)
		case "complete":
			completed = true
		case "error":
			t.Fatalf("Unexpected error event: %s", ev[1])
		}
	}

	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}
	for i, frame := range frames {
		if frame.Index != i {
			t.Errorf("Frame %d arrived out of order (index %d)", i, frame.Index)
		}
		if frame.SimTime != float64(i)*0.5 {
			t.Errorf("Frame %d: expected time %f, got %f", i, float64(i)*0.5, frame.SimTime)
		}
		if frame.ImageData == "" {
			t.Errorf("Frame %d has no image", i)
		}
		if frame.Stats.TotalPixels != 32*24 {
			t.Errorf("Frame %d: expected %d pixels, got %d", i, 32*24, frame.Stats.TotalPixels)
		}
	}
	if !frames[2].IsComplete || frames[0].IsComplete {
		t.Error("Expected only the last frame to be marked complete")
	}
	if !completed {
		t.Error("Expected a completion event")
	}
}

func TestHandleAnimate_InvalidRequest(t *testing.T) {
	rec := doGet(t, NewServer(0), "/api/animate?scene=green-box&frames=0")

	events := parseSSE(rec.Body.String())
	if len(events) == 0 || events[0][0] != "error" {
		t.Fatalf("Expected an error event, got %v", events)
	}
}

func TestParseRenderRequest(t *testing.T) {
	req, err := parseRenderRequest(url.Values{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Scene != "portal" || req.Width != 0 || req.Frames != 60 {
		t.Errorf("Unexpected defaults %+v", req)
	}

	req, err = parseRenderRequest(url.Values{
		"scene":    {"glass-slab"},
		"width":    {"320"},
		"height":   {"240"},
		"time":     {"12.5"},
		"yaw":      {"0.3"},
		"zoom":     {"-1"},
		"dayNight": {"true"},
		"texture":  {"textures/crate.png"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Scene != "glass-slab" || req.Width != 320 || req.Height != 240 || req.Time != 12.5 ||
		req.Yaw != 0.3 || req.Zoom != -1 || !req.DayNight || req.Texture != "textures/crate.png" {
		t.Errorf("Unexpected parsed request %+v", req)
	}

	if _, err := parseRenderRequest(url.Values{"dt": {"NaN"}}); err == nil {
		t.Error("Expected an error for NaN")
	}
}
