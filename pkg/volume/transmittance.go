package volume

import (
	"math"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// Transmittance is the Beer-Lambert attenuation exp(-sigma*t) per channel.
// A channel with zero extinction transmits everything, even over an
// unbounded distance.
func Transmittance(sigma core.Vec3, t float64) core.Vec3 {
	return core.NewVec3(
		channelTransmittance(sigma.X, t),
		channelTransmittance(sigma.Y, t),
		channelTransmittance(sigma.Z, t),
	)
}

func channelTransmittance(sigma, t float64) float64 {
	if sigma == 0 {
		return 1
	}
	return math.Exp(-sigma * t)
}

// EmissionIntegral integrates emission attenuated by extinction over [0, t]:
// E*(1-exp(-sigma_t*t))/sigma_t, which tends to E*t as sigma_t goes to zero.
// transmittance must be Transmittance(sigma_t, t).
func EmissionIntegral(coeff Coefficients, flags Flags, transmittance core.Vec3, t float64) core.Vec3 {
	emission := coeff.Emission

	if !flags.Any(FlagAbsorption | FlagScatter) {
		return emission.Multiply(t)
	}

	sigmaT := coeff.SigmaT()
	return core.NewVec3(
		emission.X*emissionFactor(sigmaT.X, transmittance.X, t),
		emission.Y*emissionFactor(sigmaT.Y, transmittance.Y, t),
		emission.Z*emissionFactor(sigmaT.Z, transmittance.Z, t),
	)
}

func emissionFactor(sigmaT, transmittance, t float64) float64 {
	if sigmaT > 0 {
		return (1 - transmittance) / sigmaT
	}
	return t
}
