package renderer

import "testing"

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name                    string
		width, height, tileSize int
		expectedTiles           int
	}{
		{"uneven edges", 400, 225, 64, 28},
		{"exact fit", 64, 64, 32, 4},
		{"tile larger than image", 10, 10, 32, 1},
		{"zero tile size is one tile", 30, 20, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Errorf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Tiles cover the entire image without gaps or overlaps
			covered := make([][]bool, tt.height)
			for y := range covered {
				covered[y] = make([]bool, tt.width)
			}

			for _, tile := range tiles {
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						if x >= tt.width || y >= tt.height {
							t.Fatalf("Tile %d extends beyond image bounds at (%d,%d)", tile.ID, x, y)
						}
						if covered[y][x] {
							t.Errorf("Pixel (%d,%d) is covered by multiple tiles", x, y)
						}
						covered[y][x] = true
					}
				}
			}

			for y := 0; y < tt.height; y++ {
				for x := 0; x < tt.width; x++ {
					if !covered[y][x] {
						t.Errorf("Pixel (%d,%d) is not covered by any tile", x, y)
					}
				}
			}
		})
	}
}
