package lights

import (
	"fmt"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// WeightedLightSampler implements light sampling with user-specified weights.
// Weights must match the order of lights in the scene.
type WeightedLightSampler struct {
	lights  []Light
	weights []float64
}

// NewWeightedLightSampler creates a light sampler with specified weights.
// weights will be automatically normalized to sum to 1.0.
func NewWeightedLightSampler(lights []Light, weights []float64) (*WeightedLightSampler, error) {
	if len(lights) != len(weights) {
		return nil, fmt.Errorf("lights length (%d) must match weights length (%d)", len(lights), len(weights))
	}

	totalWeight := 0.0
	for _, weight := range weights {
		if weight < 0 {
			return nil, fmt.Errorf("weights must be non-negative, got %g", weight)
		}
		totalWeight += weight
	}

	normalizedWeights := make([]float64, len(weights))
	for i, weight := range weights {
		if totalWeight == 0 {
			// All weights are zero, use uniform distribution
			normalizedWeights[i] = 1.0 / float64(len(weights))
		} else {
			normalizedWeights[i] = weight / totalWeight
		}
	}

	return &WeightedLightSampler{lights: lights, weights: normalizedWeights}, nil
}

// NewUniformLightSampler creates a light sampler with equal weights for all lights
func NewUniformLightSampler(lights []Light) *WeightedLightSampler {
	weights := make([]float64, len(lights))
	for i := range weights {
		weights[i] = 1.0 / float64(len(lights))
	}
	return &WeightedLightSampler{lights: lights, weights: weights}
}

// SampleLight selects a light using the fixed weights.
// Returns the selected light, its selection probability, and its index.
func (s *WeightedLightSampler) SampleLight(u float64) (Light, float64, int) {
	if len(s.lights) == 0 {
		return nil, 0.0, -1
	}

	var cumulativeProbability float64
	for i := 0; i < len(s.lights); i++ {
		cumulativeProbability += s.weights[i]
		if u < cumulativeProbability {
			return s.lights[i], s.weights[i], i
		}
	}

	// Fallback to last light for rounding at u close to 1
	lastIdx := len(s.lights) - 1
	return s.lights[lastIdx], s.weights[lastIdx], lastIdx
}

// Sample picks a light with u and a point on it with uv, folding the
// selection probability into the sample's pdf
func (s *WeightedLightSampler) Sample(point core.Vec3, u float64, uv core.Vec2) (LightSample, bool) {
	light, probability, _ := s.SampleLight(u)
	if light == nil || probability == 0 {
		return LightSample{}, false
	}

	sample := light.Sample(point, uv)
	if !(sample.PDF > 0) {
		return LightSample{}, false
	}
	sample.PDF *= probability
	return sample, true
}

// SampleLightPosition implements volume.LightSampler
func (s *WeightedLightSampler) SampleLightPosition(u float64, uv core.Vec2, p core.Vec3) (core.Vec3, float64) {
	sample, ok := s.Sample(p, u, uv)
	if !ok {
		return core.Vec3{}, 0
	}
	return sample.Point, sample.PDF
}

// LightCount implements volume.LightSampler
func (s *WeightedLightSampler) LightCount() int {
	return len(s.lights)
}

// LightProbability returns the selection probability of the light at index
func (s *WeightedLightSampler) LightProbability(index int) float64 {
	if index < 0 || index >= len(s.weights) {
		return 0
	}
	return s.weights[index]
}
