package volume

import "github.com/df07/go-volumetric-raytracer/pkg/core"

// ClosureType tags a volume closure returned by shader evaluation
type ClosureType int

const (
	ClosureAbsorption ClosureType = iota
	ClosureScattering
	ClosureEmission
)

// Closure is one term of a volume shader's output at a point
type Closure struct {
	Type   ClosureType
	Weight core.Vec3
}

// Flags classify which kinds of interaction a medium has at a point
type Flags uint8

const (
	FlagAbsorption Flags = 1 << iota
	FlagScatter
	FlagEmission
)

// Has reports whether all bits in f2 are set
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Any reports whether at least one bit in f2 is set
func (f Flags) Any(f2 Flags) bool {
	return f&f2 != 0
}

// EvalMode tells the shader what the evaluation is for
type EvalMode int

const (
	// EvalVolume requests absorption, scattering and emission
	EvalVolume EvalMode = iota
	// EvalShadow only needs extinction; emission may be skipped
	EvalShadow
)

// VolumeShader evaluates the media of a volume stack at a point
type VolumeShader interface {
	// EvaluateVolume returns the closures of every medium on the stack at p
	EvaluateVolume(p core.Vec3, stack *Stack, mode EvalMode) []Closure

	// HeterogeneousShader reports whether the shader varies with position
	HeterogeneousShader(id ShaderID) bool
}

// Coefficients are the medium properties at a point.
// Extinction is SigmaA + SigmaS.
type Coefficients struct {
	SigmaA   core.Vec3
	SigmaS   core.Vec3
	Emission core.Vec3
}

// SigmaT returns the extinction coefficient
func (c Coefficients) SigmaT() core.Vec3 {
	return c.SigmaA.Add(c.SigmaS)
}

// foldClosures accumulates closures by category and derives flags from the
// categories with non-zero weight
func foldClosures(closures []Closure) (Coefficients, Flags) {
	var coeff Coefficients
	var flags Flags

	for _, c := range closures {
		if c.Weight.IsZero() {
			continue
		}
		switch c.Type {
		case ClosureAbsorption:
			coeff.SigmaA = coeff.SigmaA.Add(c.Weight)
			flags |= FlagAbsorption
		case ClosureScattering:
			coeff.SigmaS = coeff.SigmaS.Add(c.Weight)
			flags |= FlagScatter
		case ClosureEmission:
			coeff.Emission = coeff.Emission.Add(c.Weight)
			flags |= FlagEmission
		}
	}

	return coeff, flags
}
