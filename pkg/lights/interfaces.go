package lights

import "github.com/df07/go-volumetric-raytracer/pkg/core"

type LightType string

const (
	LightTypeArea  LightType = "area"
	LightTypePoint LightType = "point"
)

// Light interface for sources that can be sampled for direct lighting
type Light interface {
	Type() LightType

	// Sample samples light toward a specific point for direct lighting.
	// Returns LightSample with direction FROM the point TO the light.
	Sample(point core.Vec3, sample core.Vec2) LightSample

	// Hit reports whether the ray sees the light before tMax and the
	// radiance it sees. Delta lights are never hit.
	Hit(ray core.Ray, tMin, tMax float64) (float64, core.Vec3, bool)
}

// LightSample contains information about a sampled point on a light
type LightSample struct {
	Point     core.Vec3 // Point on the light source
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
	Emission  core.Vec3 // Radiance arriving at the shading point, before attenuation
	PDF       float64   // Solid-angle density, 1 for delta lights
	IsDelta   bool      // Point lights cannot be hit by rays
}
