package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

func TestCalculateAverageLuminance(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		pixels   []color.RGBA
		expected float64
	}{
		{
			name:     "primaries and black",
			width:    2,
			pixels:   []color.RGBA{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}, {0, 0, 0, 255}},
			expected: 0.25,
		},
		{
			name:     "white",
			width:    1,
			pixels:   []color.RGBA{{255, 255, 255, 255}},
			expected: 1.0,
		},
		{
			name:     "empty",
			width:    0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			height := 0
			if tt.width > 0 {
				height = len(tt.pixels) / tt.width
			}
			img := image.NewRGBA(image.Rect(0, 0, tt.width, height))
			for i, c := range tt.pixels {
				img.Set(i%tt.width, i/tt.width, c)
			}

			if got := CalculateAverageLuminance(img); math.Abs(got-tt.expected) > 1e-4 {
				t.Errorf("Expected average luminance %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestPixelStatsConverged(t *testing.T) {
	tests := []struct {
		name       string
		samples    []core.Vec3
		minSamples int
		expected   bool
	}{
		{"no samples", nil, 0, false},
		{"below minimum", []core.Vec3{core.Splat(0.5), core.Splat(0.5)}, 4, false},
		{"constant radiance", []core.Vec3{core.Splat(0.5), core.Splat(0.5), core.Splat(0.5)}, 2, true},
		{"black", []core.Vec3{{}, {}}, 1, true},
		{"fireflies", []core.Vec3{{}, {}, {}, core.Splat(10)}, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ps PixelStats
			for _, s := range tt.samples {
				ps.AddSample(s)
			}
			if got := ps.Converged(tt.minSamples, 0.05); got != tt.expected {
				t.Errorf("Expected converged=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPixelStatsGetColor(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != (core.Vec3{}) {
		t.Error("Expected black for a pixel without samples")
	}

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 0, 1))
	if got := ps.GetColor(); got != core.NewVec3(0.5, 0, 0.5) {
		t.Errorf("Expected mean (0.5, 0, 0.5), got %v", got)
	}
}

func TestRenderStatsFinalize(t *testing.T) {
	stats := newRenderStats(3, 8)
	stats.addPixel(2)
	stats.addPixel(8)
	stats.addPixel(5)
	stats.finalize()

	if stats.MinSamples != 2 || stats.MaxSamplesUsed != 8 || stats.TotalSamples != 15 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.AverageSamples != 5 {
		t.Errorf("Expected average 5, got %f", stats.AverageSamples)
	}

	empty := newRenderStats(0, 8)
	empty.finalize()
	if empty.MinSamples != 0 || empty.AverageSamples != 0 {
		t.Errorf("Expected zeroed stats for an empty region, got %+v", empty)
	}
}
