package volume

import (
	"math"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// Shadow multiplies throughput by the transmittance of the media along the
// segment. Both absorption and scattering block light; nothing is emitted
// or scattered, and the segment is assumed free of blocking surfaces.
func (in *Integrator) Shadow(ray core.Ray, state *PathState, throughput *core.Vec3) {
	if state.Stack.IsHeterogeneous(in.shader) {
		in.shadowHeterogeneous(ray, state, throughput)
	} else {
		in.shadowHomogeneous(ray, state, throughput)
	}
}

// shadowHomogeneous assumes the extinction at the segment start holds for
// the whole segment
func (in *Integrator) shadowHomogeneous(ray core.Ray, state *PathState, throughput *core.Vec3) {
	if sigmaT, ok := in.sampleExtinction(ray.Origin, state); ok {
		*throughput = throughput.MultiplyVec(Transmittance(sigmaT, ray.T))
	}
}

// shadowHeterogeneous marches through the segment until it reaches the end,
// the light is fully blocked, or the step budget runs out
func (in *Integrator) shadowHeterogeneous(ray core.Ray, state *PathState, throughput *core.Vec3) {
	tp := *throughput

	maxSteps := in.config.MaxSteps
	stepSize := in.config.StepSize
	jitter := state.Jitter.Step() * stepSize

	t := 0.0
	for i := 0; i < maxSteps; i++ {
		newT := math.Min(ray.T, float64(i+1)*stepSize)
		dt := newT - t

		// last step gets its own offset, scaled to its shorter length
		if newT == ray.T {
			jitter = state.Jitter.Step() * dt
		}

		p := ray.At(t + jitter)
		if sigmaT, ok := in.sampleExtinction(p, state); ok {
			tp = tp.MultiplyVec(Transmittance(sigmaT, dt))

			if tp.AllBelow(throughputEpsilon) {
				break
			}
		}

		t = newT
		if t == ray.T {
			break
		}
	}

	*throughput = tp
}
