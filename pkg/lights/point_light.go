package lights

import "github.com/df07/go-volumetric-raytracer/pkg/core"

// PointLight emits uniformly in all directions from a single point
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3 // radiant intensity
}

// NewPointLight creates a point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Sample returns the only point on the light; intensity falls off with the
// squared distance
func (pl *PointLight) Sample(point core.Vec3, sample core.Vec2) LightSample {
	toLight := pl.Position.Subtract(point)
	distanceSquared := toLight.LengthSquared()
	if distanceSquared == 0 {
		return LightSample{Point: pl.Position, PDF: 0, IsDelta: true}
	}

	distance := toLight.Length()
	return LightSample{
		Point:     pl.Position,
		Direction: toLight.Multiply(1 / distance),
		Distance:  distance,
		Emission:  pl.Intensity.Multiply(1 / distanceSquared),
		PDF:       1,
		IsDelta:   true,
	}
}

// Hit implements Light; a point cannot be hit
func (pl *PointLight) Hit(ray core.Ray, tMin, tMax float64) (float64, core.Vec3, bool) {
	return 0, core.Vec3{}, false
}
