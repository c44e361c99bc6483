package media

import (
	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/volume"
)

// Medium is a participating medium whose coefficients are scaled by a density field
type Medium struct {
	Name     string
	SigmaA   core.Vec3 // absorption at unit density
	SigmaS   core.Vec3 // scattering at unit density
	Emission core.Vec3 // emission at unit density
	Density  Density
}

// NewHomogeneous creates a medium with constant coefficients
func NewHomogeneous(name string, sigmaA, sigmaS, emission core.Vec3) *Medium {
	return &Medium{
		Name:     name,
		SigmaA:   sigmaA,
		SigmaS:   sigmaS,
		Emission: emission,
		Density:  ConstantDensity{Value: 1},
	}
}

// NewHeightFog creates fog that thins out exponentially with height
func NewHeightFog(name string, sigmaA, sigmaS core.Vec3, baseY, falloff float64) *Medium {
	return &Medium{
		Name:    name,
		SigmaA:  sigmaA,
		SigmaS:  sigmaS,
		Density: HeightFalloff{Scale: 1, BaseY: baseY, Falloff: falloff},
	}
}

// NewCloud creates a noisy medium filling a sphere
func NewCloud(name string, sigmaA, sigmaS core.Vec3, density CloudDensity) *Medium {
	return &Medium{
		Name:    name,
		SigmaA:  sigmaA,
		SigmaS:  sigmaS,
		Density: density,
	}
}

// NewGrid creates a medium from voxel densities
func NewGrid(name string, sigmaA, sigmaS, emission core.Vec3, grid *GridDensity) *Medium {
	return &Medium{
		Name:     name,
		SigmaA:   sigmaA,
		SigmaS:   sigmaS,
		Emission: emission,
		Density:  grid,
	}
}

// Heterogeneous reports whether the coefficients vary with position
func (m *Medium) Heterogeneous() bool {
	return !m.Density.Uniform()
}

// Closures appends the medium's closures at p to dst. Emission is left out
// for shadow evaluation.
func (m *Medium) Closures(p core.Vec3, mode volume.EvalMode, dst []volume.Closure) []volume.Closure {
	d := m.Density.At(p)
	if d <= 0 {
		return dst
	}

	if !m.SigmaA.IsZero() {
		dst = append(dst, volume.Closure{Type: volume.ClosureAbsorption, Weight: m.SigmaA.Multiply(d)})
	}
	if !m.SigmaS.IsZero() {
		dst = append(dst, volume.Closure{Type: volume.ClosureScattering, Weight: m.SigmaS.Multiply(d)})
	}
	if mode == volume.EvalVolume && !m.Emission.IsZero() {
		dst = append(dst, volume.Closure{Type: volume.ClosureEmission, Weight: m.Emission.Multiply(d)})
	}
	return dst
}
