package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

type testLogger struct{}

func (testLogger) Printf(format string, args ...interface{}) {}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{"portal scene", Config{SceneType: "portal"}, false},
		{"green-box scene", Config{SceneType: "green-box"}, false},
		{"mirror-corridor scene", Config{SceneType: "mirror-corridor"}, false},
		{"glass-slab scene", Config{SceneType: "glass-slab"}, false},
		{"textured scene", Config{SceneType: "textured"}, false},
		{"day/night portal", Config{SceneType: "portal", DayNight: true}, false},

		// Invalid scenes
		{"unknown scene", Config{SceneType: "nonexistent"}, true},
		{"empty scene name", Config{SceneType: ""}, true},
		{"missing texture", Config{SceneType: "textured", TexturePath: "nonexistent.png"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.config)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.config.SceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.config.SceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.config.SceneType, err)
			}
			if s.Width <= 0 || s.Height <= 0 {
				t.Errorf("Scene size should be positive, got %dx%d", s.Width, s.Height)
			}
			if (s.DayNight != nil) != tt.config.DayNight {
				t.Errorf("Expected day/night %v, got %v", tt.config.DayNight, s.DayNight != nil)
			}
		})
	}
}

func TestRenderConfig(t *testing.T) {
	s, err := createScene(Config{SceneType: "green-box"})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}

	rc, err := renderConfig(s, Config{})
	if err != nil {
		t.Fatalf("renderConfig failed: %v", err)
	}
	if rc.Width != s.Width || rc.Height != s.Height {
		t.Errorf("Expected scene size %dx%d, got %dx%d", s.Width, s.Height, rc.Width, rc.Height)
	}

	rc, err = renderConfig(s, Config{Width: 64, Height: 32, Workers: 3})
	if err != nil {
		t.Fatalf("renderConfig failed: %v", err)
	}
	if rc.Width != 64 || rc.Height != 32 || rc.NumWorkers != 3 {
		t.Errorf("Expected overrides to apply, got %+v", rc)
	}

	if _, err := renderConfig(s, Config{Width: -1}); err == nil {
		t.Error("Expected an error for a negative width")
	}
}

func TestRun_WritesFrames(t *testing.T) {
	outputDir := t.TempDir()
	config := Config{
		SceneType: "green-box",
		Width:     32,
		Height:    24,
		Frames:    3,
		Dt:        0.5,
		Workers:   2,
		Scale:     2,
		OutputDir: outputDir,
	}

	if err := run(context.Background(), config, testLogger{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for _, name := range []string{"frame_0000.png", "frame_0001.png", "frame_0002.png"} {
		path := filepath.Join(outputDir, "green-box", name)
		file, err := os.Open(path)
		if err != nil {
			t.Fatalf("Expected %s to exist: %v", path, err)
		}
		img, err := png.Decode(file)
		file.Close()
		if err != nil {
			t.Fatalf("Failed to decode %s: %v", path, err)
		}
		if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 48 {
			t.Errorf("%s: expected 64x48 after scaling, got %v", name, img.Bounds())
		}
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"no frames", Config{SceneType: "green-box", Frames: 0}},
		{"unknown scene", Config{SceneType: "nonexistent", Frames: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.OutputDir = t.TempDir()
			if err := run(context.Background(), tt.config, testLogger{}); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
