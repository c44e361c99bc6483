package volume

import (
	"math"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// integrateHeterogeneous ray-marches through the segment until it reaches
// the end, gets fully absorbed, scatters, or runs out of steps.
//
// Coefficients are taken as constant within each step. Scatter distances
// are sampled by comparing a single exponential target against the optical
// depth accumulated since the first step that could scatter, so one random
// number decides for the whole segment.
func (in *Integrator) integrateHeterogeneous(ray core.Ray, state *PathState, sampler core.Sampler, L Radiance, throughput *core.Vec3) Result {
	tp := *throughput

	maxSteps := in.config.MaxSteps
	stepSize := in.config.StepSize
	jitter := state.Jitter.Step() * stepSize

	// optical depth and transmittance since scattering was first possible
	accumTransmittance := core.Splat(1)
	var accumSigmaT core.Vec3

	// set up lazily on the first step that can scatter
	var target, closureSample float64
	channel := -1
	hasScatter := false

	t := 0.0
	for i := 0; i < maxSteps; i++ {
		newT := math.Min(ray.T, float64(i+1)*stepSize)
		dt := newT - t

		// last step gets its own offset, scaled to its shorter length
		if newT == ray.T {
			jitter = state.Jitter.Step() * dt
		}

		p := ray.At(t + jitter)
		coeff, flags, ok := in.sampleCoefficients(p, state)
		if ok {
			var newTp, transmittance core.Vec3
			scatter := false

			if flags.Has(FlagScatter) || (hasScatter && flags.Has(FlagAbsorption)) {
				hasScatter = true
				sigmaT := coeff.SigmaT()

				if channel == -1 {
					target = -math.Log(1 - sampler.Get1D())
					channel, closureSample = selectChannel(sampler.Get1D())
				}

				depthBefore := accumSigmaT.Channel(channel)
				depthAfter := depthBefore + dt*sigmaT.Channel(channel)

				if target < depthAfter {
					// solve for where the optical depth reaches the target
					dt = (target - depthBefore) / sigmaT.Channel(channel)
					newT = t + dt

					transmittance = Transmittance(sigmaT, dt)
					accumTransmittance = accumTransmittance.MultiplyVec(transmittance)

					// one-sample MIS over the channels' free-flight densities
					pdf := sigmaT.Dot(accumTransmittance) / 3
					newTp = balance(tp.MultiplyVec(coeff.SigmaS).MultiplyVec(transmittance), pdf)
					scatter = true
				} else {
					transmittance = Transmittance(sigmaT, dt)
					accumTransmittance = accumTransmittance.MultiplyVec(transmittance)
					accumSigmaT = accumSigmaT.Add(sigmaT.Multiply(dt))
					newTp = tp.MultiplyVec(transmittance)
				}
			} else if flags.Has(FlagAbsorption) {
				// absorption only, no sampling needed
				transmittance = Transmittance(coeff.SigmaA, dt)
				newTp = tp.MultiplyVec(transmittance)
			}

			// emission is attenuated from the start of the step
			if flags.Has(FlagEmission) {
				emission := EmissionIntegral(coeff, flags, transmittance, dt)
				L.AccumEmission(tp, emission, state.Bounce)
			}

			if flags.Any(FlagAbsorption | FlagScatter) {
				tp = newTp

				if tp.AllBelow(throughputEpsilon) {
					tp = core.Vec3{}
					break
				}

				if scatter {
					*throughput = tp
					return Result{
						Outcome:       Scattered,
						T:             newT,
						Point:         ray.At(newT),
						ClosureSample: closureSample,
					}
				}
			}
		}

		t = newT
		if t == ray.T {
			break
		}
	}

	// no scatter event: divide by the channel-averaged probability of that
	if hasScatter {
		if pdf := accumTransmittance.Sum(); pdf > 0 {
			tp = tp.Multiply(3 / pdf)
		}
	}

	*throughput = tp
	return Result{Outcome: Attenuated}
}
