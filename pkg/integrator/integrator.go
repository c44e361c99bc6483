package integrator

import (
	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/volume"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving along a camera ray.
	// state must be initialized for the path and is advanced in place.
	RayColor(ray core.Ray, sampler core.Sampler, state *volume.PathState) core.Vec3
}
