package lights

import (
	"math"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/geometry"
	"github.com/df07/go-volumetric-raytracer/pkg/volume"
)

// SphereLight represents a spherical area light
type SphereLight struct {
	*geometry.Sphere // Embed sphere for hit testing
	Emission         core.Vec3
}

// NewSphereLight creates a new spherical light. The sphere carries no medium.
func NewSphereLight(center core.Vec3, radius float64, emission core.Vec3) *SphereLight {
	return &SphereLight{
		Sphere:   geometry.NewSphere(center, radius, geometry.VolumeRef{Shader: volume.ShaderNone, Object: volume.ObjectNone}),
		Emission: emission,
	}
}

func (sl *SphereLight) Type() LightType {
	return LightTypeArea
}

// Sample implements the Light interface - samples a point on the sphere for direct lighting
func (sl *SphereLight) Sample(point core.Vec3, sample core.Vec2) LightSample {
	distanceToCenter := sl.Center.Subtract(point).Length()

	// If point is inside the sphere, sample uniformly on the sphere
	if distanceToCenter <= sl.Radius {
		return sl.sampleUniform(point, sample)
	}

	// Sample the sphere as seen from the shading point (visible cone)
	return sl.sampleVisible(point, sample)
}

// sampleUniform samples uniformly on the entire sphere surface and converts
// the area density to solid angle
func (sl *SphereLight) sampleUniform(point core.Vec3, sample core.Vec2) LightSample {
	normal := core.SampleIsotropic(sample)
	samplePoint := sl.Center.Add(normal.Multiply(sl.Radius))

	direction := samplePoint.Subtract(point)
	distance := direction.Length()
	if distance == 0 {
		return LightSample{Point: samplePoint}
	}
	direction = direction.Multiply(1 / distance)

	cosLight := math.Abs(normal.Dot(direction))
	if cosLight < 1e-8 {
		return LightSample{Point: samplePoint}
	}

	areaPDF := 1.0 / (4.0 * math.Pi * sl.Radius * sl.Radius)
	return LightSample{
		Point:     samplePoint,
		Direction: direction,
		Distance:  distance,
		Emission:  sl.Emission,
		PDF:       areaPDF * distance * distance / cosLight,
	}
}

// sampleVisible samples directions inside the cone subtended by the sphere
func (sl *SphereLight) sampleVisible(point core.Vec3, sample core.Vec2) LightSample {
	toCenter := sl.Center.Subtract(point)
	distanceToCenter := toCenter.Length()

	// Create coordinate system with z-axis pointing toward sphere center
	w := toCenter.Multiply(1 / distanceToCenter)
	var u core.Vec3
	if math.Abs(w.X) > 0.1 {
		u = core.NewVec3(0, 1, 0)
	} else {
		u = core.NewVec3(1, 0, 0)
	}
	u = u.Cross(w).Normalize()
	v := w.Cross(u)

	// Half-angle of the cone subtended by the sphere
	sinThetaMax := sl.Radius / distanceToCenter
	cosThetaMax := math.Sqrt(math.Max(0, 1.0-sinThetaMax*sinThetaMax))

	cosTheta := 1.0 - sample.X*(1.0-cosThetaMax)
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	phi := 2.0 * math.Pi * sample.Y

	direction := u.Multiply(sinTheta * math.Cos(phi)).
		Add(v.Multiply(sinTheta * math.Sin(phi))).
		Add(w.Multiply(cosTheta))

	// Distance to the near side along the sampled direction; grazing
	// directions at the cone edge fall back to the tangent point
	b := toCenter.Dot(direction)
	c := distanceToCenter*distanceToCenter - sl.Radius*sl.Radius
	distance := b - math.Sqrt(math.Max(0, b*b-c))

	return LightSample{
		Point:     point.Add(direction.Multiply(distance)),
		Direction: direction,
		Distance:  distance,
		Emission:  sl.Emission,
		PDF:       UniformConePDF(cosThetaMax),
	}
}

// Hit implements Light, returning the sphere's radiance when the ray reaches it
func (sl *SphereLight) Hit(ray core.Ray, tMin, tMax float64) (float64, core.Vec3, bool) {
	hit, ok := sl.Sphere.Hit(ray, tMin, tMax)
	if !ok {
		return 0, core.Vec3{}, false
	}
	return hit.T, sl.Emission, true
}

// UniformConePDF calculates the PDF for uniform sampling within a cone
func UniformConePDF(cosTotalWidth float64) float64 {
	return 1.0 / (2.0 * math.Pi * (1.0 - cosTotalWidth))
}
