package renderer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

func TestProgressiveSampleCalculation(t *testing.T) {
	// Test the sample calculation logic without creating a full raytracer
	config := DefaultProgressiveConfig()
	config.InitialSamples = 1
	config.MaxSamplesPerPixel = 50
	config.MaxPasses = 7

	// Create a minimal progressive raytracer for testing
	pr := &ProgressiveRaytracer{
		config: config,
	}

	// Test sample progression with linear distribution
	// Pass 1: 1 sample
	// Pass 2-6: (50-1)/6 = 8.16 -> 8 samples per pass -> 1 + 8*1 = 9, 1 + 8*2 = 17, etc.
	// Pass 7: 50 (final pass gets all remaining)
	expectedTotalSamples := []int{1, 9, 17, 25, 33, 41, 50}

	for pass := 1; pass <= 7; pass++ {
		totalSamples := pr.getSamplesForPass(pass)

		if totalSamples != expectedTotalSamples[pass-1] {
			t.Errorf("Pass %d: expected %d total samples, got %d",
				pass, expectedTotalSamples[pass-1], totalSamples)
		}
	}
}

func TestProgressiveConfig(t *testing.T) {
	config := DefaultProgressiveConfig()

	if config.TileSize != 32 {
		t.Errorf("Expected default tile size 32, got %d", config.TileSize)
	}
	if config.InitialSamples != 1 {
		t.Errorf("Expected default initial samples 1, got %d", config.InitialSamples)
	}
	if config.MaxSamplesPerPixel != 64 {
		t.Errorf("Expected default max samples 64, got %d", config.MaxSamplesPerPixel)
	}
	if config.MaxPasses != 7 {
		t.Errorf("Expected default max passes 7, got %d", config.MaxPasses)
	}
	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestProgressiveConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ProgressiveConfig)
	}{
		{"zero tile size", func(c *ProgressiveConfig) { c.TileSize = 0 }},
		{"zero passes", func(c *ProgressiveConfig) { c.MaxPasses = 0 }},
		{"zero initial samples", func(c *ProgressiveConfig) { c.InitialSamples = 0 }},
		{"max below initial", func(c *ProgressiveConfig) { c.InitialSamples = 8; c.MaxSamplesPerPixel = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultProgressiveConfig()
			tt.modify(&config)
			if err := config.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestRenderProgressive(t *testing.T) {
	s := createTestScene()
	config := ProgressiveConfig{
		TileSize:           4,
		InitialSamples:     1,
		MaxSamplesPerPixel: 4,
		MaxPasses:          2,
		NumWorkers:         2,
	}

	pr, err := NewProgressiveRaytracer(s, config)
	if err != nil {
		t.Fatalf("NewProgressiveRaytracer failed: %v", err)
	}

	passChan, tileChan, errChan := pr.RenderProgressive(context.Background(), RenderOptions{TileUpdates: true})

	tiles := 0
	done := make(chan struct{})
	go func() {
		for range tileChan {
			tiles++
		}
		close(done)
	}()

	var passes []PassResult
	for result := range passChan {
		passes = append(passes, result)
	}
	<-done
	if err, ok := <-errChan; ok && err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(passes) != 2 {
		t.Fatalf("Expected 2 passes, got %d", len(passes))
	}
	if !passes[1].IsLast {
		t.Error("Expected final pass to be marked last")
	}

	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
	if b := passes[1].Image.Bounds(); b.Dx() != width || b.Dy() != height {
		t.Errorf("Expected %dx%d image, got %dx%d", width, height, b.Dx(), b.Dy())
	}
	if passes[1].Stats.TotalSamples < passes[0].Stats.TotalSamples {
		t.Error("Expected samples to accumulate across passes")
	}

	// 8x8 image in 4x4 tiles, two passes
	if tiles != 8 {
		t.Errorf("Expected 8 tile events, got %d", tiles)
	}
}

func TestRenderProgressiveCancelled(t *testing.T) {
	pr, err := NewProgressiveRaytracer(createTestScene(), DefaultProgressiveConfig())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, _, errChan := pr.RenderProgressive(ctx, RenderOptions{})
	for range passChan {
		t.Error("Expected no passes after cancellation")
	}
	if err := <-errChan; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestNewProgressiveRaytracerInvalidScene(t *testing.T) {
	s := createTestScene()
	s.VolumeConfig.MaxSteps = 0
	if _, err := NewProgressiveRaytracer(s, DefaultProgressiveConfig()); err == nil {
		t.Error("Expected error for invalid volume config")
	}
}

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		input    core.Vec3
		expected color.RGBA
	}{
		{core.NewVec3(0, 0, 0), color.RGBA{0, 0, 0, 255}},
		{core.NewVec3(1, 1, 1), color.RGBA{255, 255, 255, 255}},
		{core.NewVec3(0.25, 4, -1), color.RGBA{127, 255, 0, 255}},
	}

	for _, tt := range tests {
		if got := vec3ToColor(tt.input); got != tt.expected {
			t.Errorf("vec3ToColor(%v) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestNewTileGrid(t *testing.T) {
	// Test tile grid generation for a 400x225 image with 64x64 tiles
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize)

	// Calculate expected number of tiles
	expectedTilesX := (width + tileSize - 1) / tileSize   // 7 tiles
	expectedTilesY := (height + tileSize - 1) / tileSize  // 4 tiles
	expectedTotalTiles := expectedTilesX * expectedTilesY // 28 tiles

	if len(tiles) != expectedTotalTiles {
		t.Errorf("Expected %d tiles, got %d", expectedTotalTiles, len(tiles))
	}

	// Test that tiles cover the entire image without gaps or overlaps
	covered := make([][]bool, height)
	for y := range covered {
		covered[y] = make([]bool, width)
	}

	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if x >= width || y >= height {
					t.Errorf("Tile %d extends beyond image bounds at (%d,%d)", tile.ID, x, y)
				}
				if covered[y][x] {
					t.Errorf("Pixel (%d,%d) is covered by multiple tiles", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	// Verify all pixels are covered
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !covered[y][x] {
				t.Errorf("Pixel (%d,%d) is not covered by any tile", x, y)
			}
		}
	}
}

func TestTileDeterministicRandom(t *testing.T) {
	// Create two tiles with the same ID
	bounds := image.Rect(0, 0, 64, 64)
	tile1 := NewTile(42, bounds)
	tile2 := NewTile(42, bounds)

	// They should have the same random seed and produce the same sequence
	val1 := tile1.Sampler.Get1D()
	val2 := tile2.Sampler.Get1D()

	if val1 != val2 {
		t.Errorf("Tiles with same ID should produce same random values: %f != %f", val1, val2)
	}

	// Different tile IDs should produce different sequences
	tile3 := NewTile(43, bounds)
	val3 := tile3.Sampler.Get1D()

	if val1 == val3 {
		t.Error("Tiles with different IDs should produce different random values")
	}
}
