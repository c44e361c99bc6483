package core

import (
	"math"
	"math/rand"
)

// Sampler supplies the 1D and 2D sample values consumed along a path.
// Volume integration draws in a fixed order, so a scripted Sampler can
// replay an exact sequence in tests.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler draws independent uniform values from a math/rand source
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a deterministic sampler
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a value in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// IsotropicPhase is the phase function value of an isotropic medium, which
// is also the solid-angle pdf of SampleIsotropic
const IsotropicPhase = 1.0 / (4.0 * math.Pi)

// SampleIsotropic maps u to a uniformly distributed unit direction
func SampleIsotropic(u Vec2) Vec3 {
	cosTheta := 1 - 2*u.X
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	sinPhi, cosPhi := math.Sincos(2 * math.Pi * u.Y)
	return NewVec3(sinTheta*cosPhi, sinTheta*sinPhi, cosTheta)
}

// SampleUnitDisk maps u to a point in the unit disk with Shirley's
// concentric mapping, preserving stratification
func SampleUnitDisk(u Vec2) Vec2 {
	a, b := 2*u.X-1, 2*u.Y-1
	if a == 0 && b == 0 {
		return Vec2{}
	}

	if math.Abs(a) > math.Abs(b) {
		sin, cos := math.Sincos(math.Pi / 4 * (b / a))
		return NewVec2(a*cos, a*sin)
	}
	sin, cos := math.Sincos(math.Pi/2 - math.Pi/4*(a/b))
	return NewVec2(b*cos, b*sin)
}
