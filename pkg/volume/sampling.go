package volume

import (
	"math"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// DistanceSample picks a distance in [0, maxT] from the exponential
// distribution of one colour channel, truncated to the segment. It returns
// the distance, the transmittance up to it, and the per-channel pdf of
// having picked it.
//
// xi must lie in [0, 1). A channel with zero extinction degenerates to
// uniform sampling of the segment.
func DistanceSample(maxT float64, sigmaT core.Vec3, channel int, xi float64) (float64, core.Vec3, core.Vec3) {
	sampleSigmaT := sigmaT.Channel(channel)
	fullTransmittance := Transmittance(sigmaT, maxT)
	sampleTransmittance := fullTransmittance.Channel(channel)

	var sampleT float64
	if sampleSigmaT > 0 {
		sampleT = math.Min(maxT, -math.Log(1-xi*(1-sampleTransmittance))/sampleSigmaT)
	} else if !math.IsInf(maxT, 1) {
		sampleT = xi * maxT
	} else {
		sampleT = maxT
	}

	transmittance := Transmittance(sigmaT, sampleT)
	pdf := distancePDF(maxT, sigmaT, transmittance, fullTransmittance)
	return sampleT, transmittance, pdf
}

// DistancePDF returns the per-channel density of DistanceSample producing sampleT
func DistancePDF(maxT float64, sigmaT core.Vec3, sampleT float64) core.Vec3 {
	return distancePDF(maxT, sigmaT, Transmittance(sigmaT, sampleT), Transmittance(sigmaT, maxT))
}

func distancePDF(maxT float64, sigmaT, transmittance, fullTransmittance core.Vec3) core.Vec3 {
	return core.NewVec3(
		channelDistancePDF(maxT, sigmaT.X, transmittance.X, fullTransmittance.X),
		channelDistancePDF(maxT, sigmaT.Y, transmittance.Y, fullTransmittance.Y),
		channelDistancePDF(maxT, sigmaT.Z, transmittance.Z, fullTransmittance.Z),
	)
}

func channelDistancePDF(maxT, sigmaT, transmittance, fullTransmittance float64) float64 {
	if sigmaT > 0 {
		return sigmaT * transmittance / (1 - fullTransmittance)
	}
	return 1 / maxT
}

// equiangularFrame returns the distance along the ray to the point closest
// to the light (delta), the light's distance from the ray line (D), and the
// angles subtended by the segment ends.
func equiangularFrame(ray core.Ray, lightP core.Vec3) (delta, d, thetaA, thetaB float64) {
	toLight := lightP.Subtract(ray.Origin)
	delta = toLight.Dot(ray.Direction)
	d = math.Sqrt(math.Max(0, toLight.LengthSquared()-delta*delta))
	thetaA = -math.Atan2(delta, d)
	thetaB = math.Atan2(ray.T-delta, d)
	return delta, d, thetaA, thetaB
}

// EquiangularSample picks a distance along the segment proportionally to the
// angle it subtends at lightP, as in "Importance Sampling Techniques for Path
// Tracing in Participating Media". xi = 0 maps to the segment start and
// xi = 1 to its end. Returns the distance and its pdf.
func EquiangularSample(ray core.Ray, lightP core.Vec3, xi float64) (float64, float64) {
	delta, d, thetaA, thetaB := equiangularFrame(ray, lightP)

	tOffset := d * math.Tan(xi*thetaB+(1-xi)*thetaA)
	pdf := d / ((thetaB - thetaA) * (d*d + tOffset*tOffset))

	// min and max only guard against rounding at the ends
	return math.Max(0, math.Min(ray.T, delta+tOffset)), pdf
}

// EquiangularPDF returns the density of EquiangularSample producing sampleT
func EquiangularPDF(ray core.Ray, lightP core.Vec3, sampleT float64) float64 {
	delta, d, thetaA, thetaB := equiangularFrame(ray, lightP)
	tOffset := sampleT - delta
	return d / ((thetaB - thetaA) * (d*d + tOffset*tOffset))
}
