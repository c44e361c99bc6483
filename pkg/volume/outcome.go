package volume

import "github.com/df07/go-volumetric-raytracer/pkg/core"

// Outcome is the result of integrating one ray segment
type Outcome int

const (
	// Scattered means an interaction was sampled inside the segment and the
	// path continues from Result.Point in a new direction
	Scattered Outcome = iota
	// Attenuated means the whole segment was traversed without scattering
	Attenuated
	// Missed means the medium contributed nothing, or a required light
	// position could not be drawn
	Missed
)

func (o Outcome) String() string {
	switch o {
	case Scattered:
		return "scattered"
	case Attenuated:
		return "attenuated"
	case Missed:
		return "missed"
	default:
		return "unknown"
	}
}

// Result describes what happened along a segment
type Result struct {
	Outcome Outcome

	// T and Point locate the scatter event; only valid for Scattered
	T     float64
	Point core.Vec3

	// ClosureSample is the leftover fraction of the channel-selection draw,
	// available for picking among scattering closures at Point
	ClosureSample float64
}
