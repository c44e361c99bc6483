package renderer

import (
	"image"
	"math"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// RenderStats summarizes the samples taken over a region of the image
type RenderStats struct {
	TotalPixels    int     // Pixels in the region
	TotalSamples   int     // Samples taken
	AverageSamples float64 // Samples per pixel
	MaxSamples     int     // Per-pixel sample target
	MinSamples     int     // Fewest samples any pixel has
	MaxSamplesUsed int     // Most samples any pixel has
}

func newRenderStats(pixels, targetSamples int) RenderStats {
	return RenderStats{
		TotalPixels: pixels,
		MaxSamples:  targetSamples,
		MinSamples:  math.MaxInt,
	}
}

// addPixel records the sample count of one pixel
func (s *RenderStats) addPixel(samples int) {
	s.TotalSamples += samples
	s.MinSamples = min(s.MinSamples, samples)
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, samples)
}

func (s *RenderStats) finalize() {
	if s.MinSamples == math.MaxInt {
		s.MinSamples = 0
	}
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}

// PixelStats accumulates the radiance estimates of one pixel. Volume paths
// are noisy, so the luminance moments drive adaptive sampling.
type PixelStats struct {
	ColorAccum       core.Vec3
	LuminanceAccum   float64
	LuminanceSqAccum float64
	SampleCount      int
}

// AddSample adds one path's radiance
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the mean radiance
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Converged reports whether the pixel has at least minSamples and its
// luminance standard deviation relative to the mean is below threshold.
// Black pixels converge once their variance is negligible.
func (ps *PixelStats) Converged(minSamples int, threshold float64) bool {
	if ps.SampleCount < max(1, minSamples) {
		return false
	}

	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	variance := math.Max(0, ps.LuminanceSqAccum/n-mean*mean)
	if mean <= 1e-8 {
		return variance < 1e-6
	}
	return math.Sqrt(variance)/mean < threshold
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image
// in [0, 1], computed on the stored (gamma encoded) values
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
		}
	}
	return total / float64(pixels)
}
