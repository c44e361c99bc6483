package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/scene"
	"github.com/df07/go-volumetric-raytracer/pkg/volume"
)

const (
	// rayEpsilon offsets new rays from the boundary they start on
	rayEpsilon = 1e-4

	// farScale sizes the sphere that bounds the world volume
	farScale = 4.0
)

// VolumePathIntegrator traces paths through nested participating media.
// Boundaries only change which media enclose the path; light is scattered
// inside media and gathered by next-event estimation at every scatter vertex.
type VolumePathIntegrator struct {
	scene  *scene.Scene
	config scene.SamplingConfig
	volume *volume.Integrator

	farCenter core.Vec3
	farRadius float64
}

// NewVolumePathIntegrator creates a path tracer for a preprocessed scene
func NewVolumePathIntegrator(s *scene.Scene) (*VolumePathIntegrator, error) {
	if s.LightSampler == nil {
		return nil, fmt.Errorf("scene %s has not been preprocessed", s.Name)
	}

	in, err := volume.NewIntegrator(s.VolumeConfig, s.Media, s.LightSampler)
	if err != nil {
		return nil, fmt.Errorf("failed to create volume integrator: %w", err)
	}

	center, radius := s.World.BoundingSphere()
	return &VolumePathIntegrator{
		scene:     s,
		config:    s.SamplingConfig,
		volume:    in,
		farCenter: center,
		farRadius: farScale*radius + 1,
	}, nil
}

// RayColor computes the color for a single camera ray
func (pt *VolumePathIntegrator) RayColor(ray core.Ray, sampler core.Sampler, state *volume.PathState) core.Vec3 {
	var L volume.PathRadiance
	throughput := core.Splat(1)
	crossings := 0

	for {
		hit, isHit := pt.scene.World.Hit(ray, rayEpsilon, math.Inf(1))
		tMax := pt.escapeDistance(ray)
		if isHit {
			tMax = hit.T
		}

		lightT, lightEmission, lightHit := pt.hitLights(ray, tMax)
		if lightHit {
			tMax = lightT
		}

		if state.Stack.Len() > 0 && tMax > 0 {
			result := pt.integrateSegment(ray.WithT(tMax), sampler, state, &L, &throughput)

			if result.Outcome == volume.Scattered {
				if state.Bounce >= pt.config.MaxDepth {
					break
				}

				pt.directLight(result.Point, sampler, state, &L, throughput)

				// isotropic phase sampled exactly: weight phase/pdf is one
				direction := core.SampleIsotropic(sampler.Get2D())
				state.Bounce++
				state.VolumeBounce++

				if pt.applyRussianRoulette(state.Bounce, &throughput, sampler) {
					break
				}

				ray = core.NewRay(result.Point, direction)
				continue
			}
		}

		if !throughputUsable(throughput) {
			break
		}

		if lightHit {
			// lights seen from a scatter vertex were already counted by
			// next-event estimation
			if state.Bounce == 0 {
				L.AccumEmission(throughput, lightEmission, state.Bounce)
			}
			break
		}

		if !isHit {
			L.AccumEmission(throughput, pt.scene.Background(ray.Direction), state.Bounce)
			break
		}

		crossings++
		if crossings > pt.config.MaxTransparentBounces {
			break
		}
		state.Stack.EnterExit(hit.Crossing())
		ray = core.NewRay(hit.Point, ray.Direction)
	}

	return L.Sum()
}

// integrateSegment runs the volume integrator in the configured mode
func (pt *VolumePathIntegrator) integrateSegment(segment core.Ray, sampler core.Sampler, state *volume.PathState, L *volume.PathRadiance, throughput *core.Vec3) volume.Result {
	if pt.config.Branched {
		return pt.volume.IntegrateBranched(segment, state, sampler, L, throughput)
	}
	return pt.volume.Integrate(segment, state, sampler, L, throughput)
}

// directLight samples one light from a scatter vertex and adds its
// contribution, attenuated by the media between the vertex and the light
func (pt *VolumePathIntegrator) directLight(point core.Vec3, sampler core.Sampler, state *volume.PathState, L *volume.PathRadiance, throughput core.Vec3) {
	lightSample, ok := pt.scene.LightSampler.Sample(point, sampler.Get1D(), sampler.Get2D())
	if !ok || lightSample.PDF <= 0 {
		return
	}

	contribution := lightSample.Emission.Multiply(core.IsotropicPhase / lightSample.PDF)
	pt.shadowTransmittance(point, lightSample.Direction, lightSample.Distance, state, &contribution)
	if contribution.IsZero() {
		return
	}

	L.AccumLight(throughput, contribution, state.Bounce)
}

// shadowTransmittance attenuates tp by every medium between origin and the
// point at distance along direction. The path's stack is copied so boundary
// crossings on the shadow ray leave the path untouched. The jitter stream is
// shared: the path resumes where the shadow ray's marching left it.
func (pt *VolumePathIntegrator) shadowTransmittance(origin, direction core.Vec3, distance float64, state *volume.PathState, tp *core.Vec3) {
	stack := *state.Stack
	shadowState := volume.PathState{
		Bounce:       state.Bounce,
		VolumeBounce: state.VolumeBounce,
		Jitter:       state.Jitter,
		Stack:        &stack,
	}
	defer func() { state.Jitter = shadowState.Jitter }()

	ray := core.NewRay(origin, direction)
	remaining := distance
	for crossings := 0; ; crossings++ {
		hit, isHit := pt.scene.World.Hit(ray, rayEpsilon, remaining)
		segmentT := remaining
		if isHit {
			segmentT = hit.T
		}

		if stack.Len() > 0 {
			pt.volume.Shadow(ray.WithT(segmentT), &shadowState, tp)
		}
		if !isHit || tp.IsZero() {
			return
		}

		if crossings >= pt.config.MaxTransparentBounces {
			*tp = core.Vec3{}
			return
		}
		stack.EnterExit(hit.Crossing())
		ray = core.NewRay(hit.Point, direction)
		remaining -= hit.T
	}
}

// hitLights finds the closest light surface along the ray before tMax
func (pt *VolumePathIntegrator) hitLights(ray core.Ray, tMax float64) (float64, core.Vec3, bool) {
	closest := tMax
	var emission core.Vec3
	found := false

	for _, light := range pt.scene.Lights {
		if t, e, ok := light.Hit(ray, rayEpsilon, closest); ok {
			closest = t
			emission = e
			found = true
		}
	}
	return closest, emission, found
}

// escapeDistance is how far an escaping ray travels through the world
// volume: to the far side of a sphere around the scene
func (pt *VolumePathIntegrator) escapeDistance(ray core.Ray) float64 {
	if pt.scene.WorldVolume == volume.ShaderNone {
		return math.Inf(1)
	}

	oc := ray.Origin.Subtract(pt.farCenter)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - pt.farRadius*pt.farRadius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0
	}
	return math.Max(0, (-halfB+math.Sqrt(discriminant))/a)
}

// applyRussianRoulette terminates paths with low throughput after the
// minimum bounce count, compensating survivors
func (pt *VolumePathIntegrator) applyRussianRoulette(bounce int, throughput *core.Vec3, sampler core.Sampler) bool {
	if bounce < pt.config.RussianRouletteMinBounces {
		return false
	}

	// Conservative bounds: survivalProb between 0.5 and 0.95
	survivalProb := math.Min(0.95, math.Max(0.5, throughput.Luminance()))
	if sampler.Get1D() > survivalProb {
		return true
	}

	*throughput = throughput.Multiply(1 / survivalProb)
	return false
}

// throughputUsable reports whether the path can still carry light
func throughputUsable(tp core.Vec3) bool {
	if tp.IsZero() {
		return false
	}
	return !math.IsNaN(tp.X) && !math.IsNaN(tp.Y) && !math.IsNaN(tp.Z)
}
