package volume

import (
	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// integrateHomogeneous assumes the coefficients at the segment start hold
// for the whole segment, so attenuation, emission and distance sampling all
// have closed forms.
func (in *Integrator) integrateHomogeneous(ray core.Ray, state *PathState, sampler core.Sampler, L Radiance, throughput *core.Vec3, branched bool) Result {
	coeff, flags, ok := in.sampleCoefficients(ray.Origin, state)
	if !ok {
		return Result{Outcome: Missed}
	}

	t := ray.T
	result := Result{Outcome: Attenuated}
	var newTp, transmittance core.Vec3

	switch {
	case flags.Has(FlagScatter):
		sigmaT := coeff.SigmaT()

		// pick a colour channel to sample with; the Veach one-sample model
		// with the balance heuristic combines the channels
		channel, closureSample := selectChannel(sampler.Get1D())
		result.ClosureSample = closureSample

		xi := sampler.Get1D()

		if branched {
			// always scatter inside the segment
			sampleT, tr, pdf, ok := in.sampleScatterDistance(ray, sampler, sigmaT, channel, xi)
			if !ok {
				return Result{Outcome: Missed}
			}
			transmittance = tr
			newTp = balance(throughput.MultiplyVec(coeff.SigmaS).MultiplyVec(transmittance), pdf.Average())
			t = sampleT
			break
		}

		// scatter with probability one minus the selected channel's
		// transmittance over the whole segment
		sampleTransmittance := channelTransmittance(sigmaT.Channel(channel), t)

		if xi >= sampleTransmittance {
			// rescale the random number so it can be reused
			xi = (xi - sampleTransmittance) / (1 - sampleTransmittance)

			sampleT, tr, pdf, ok := in.sampleScatterDistance(ray, sampler, sigmaT, channel, xi)
			if !ok {
				return Result{Outcome: Missed}
			}
			transmittance = tr

			// account for the hit/miss decision
			pdf = pdf.MultiplyVec(core.Splat(1).Subtract(Transmittance(sigmaT, t)))

			newTp = balance(throughput.MultiplyVec(coeff.SigmaS).MultiplyVec(transmittance), pdf.Average())
			t = sampleT
		} else {
			transmittance = Transmittance(sigmaT, t)
			newTp = balance(throughput.MultiplyVec(transmittance), transmittance.Average())
		}

	case flags.Has(FlagAbsorption):
		transmittance = Transmittance(coeff.SigmaA, t)
		newTp = throughput.MultiplyVec(transmittance)
	}

	if flags.Has(FlagEmission) {
		emission := EmissionIntegral(coeff, flags, transmittance, t)
		L.AccumEmission(*throughput, emission, state.Bounce)
	}

	if flags.Any(FlagAbsorption | FlagScatter) {
		*throughput = newTp

		if t < ray.T {
			result.Outcome = Scattered
			result.T = t
			result.Point = ray.At(t)
		}
	}

	return result
}

// sampleScatterDistance picks a scatter distance with the configured
// strategy. It fails only when equiangular sampling cannot draw a usable
// light position.
func (in *Integrator) sampleScatterDistance(ray core.Ray, sampler core.Sampler, sigmaT core.Vec3, channel int, xi float64) (float64, core.Vec3, core.Vec3, bool) {
	if !in.useEquiangular() {
		sampleT, transmittance, pdf := DistanceSample(ray.T, sigmaT, channel, xi)
		return sampleT, transmittance, pdf, true
	}

	lightP, ok := in.lightPosition(ray, sampler)
	if !ok {
		return 0, core.Vec3{}, core.Vec3{}, false
	}

	sampleT, pdf := EquiangularSample(ray, lightP, xi)
	if !(pdf > 0) {
		// light on the ray line
		return 0, core.Vec3{}, core.Vec3{}, false
	}

	return sampleT, Transmittance(sigmaT, sampleT), core.Splat(pdf), true
}

// balance divides a weight by the channel-averaged pdf, dropping samples
// no channel could have produced
func balance(weight core.Vec3, pdf float64) core.Vec3 {
	if !(pdf > 0) {
		return core.Vec3{}
	}
	return weight.Multiply(1 / pdf)
}
