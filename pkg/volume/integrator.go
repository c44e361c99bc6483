// Package volume integrates light transport through participating media
// along a single ray segment: attenuation, emission and sampling of
// scattering events.
//
// Every call is a pure function of its arguments plus the path's own state
// and sampler, so one Integrator can be shared by any number of goroutines
// as long as each path owns its PathState and Stack.
package volume

import (
	"fmt"
	"math"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// throughputEpsilon is the level below which light is considered fully blocked
const throughputEpsilon = 1e-10

// Integrator evaluates volume segments for a scene
type Integrator struct {
	config Config
	shader VolumeShader
	lights LightSampler
}

// NewIntegrator creates an integrator. lights may be nil when the scene has
// no lights; equiangular sampling then falls back to distance sampling.
func NewIntegrator(config Config, shader VolumeShader, lights LightSampler) (*Integrator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if shader == nil {
		return nil, fmt.Errorf("%w: volume shader is required", ErrInvalidConfig)
	}
	return &Integrator{config: config, shader: shader, lights: lights}, nil
}

// Config returns the integrator's configuration
func (in *Integrator) Config() Config {
	return in.config
}

// Integrate computes attenuation and emission along the segment and decides
// probabilistically whether the path scatters inside it. throughput is
// updated in place and emission is written to L.
func (in *Integrator) Integrate(ray core.Ray, state *PathState, sampler core.Sampler, L Radiance, throughput *core.Vec3) Result {
	if state.Stack.IsHeterogeneous(in.shader) {
		return in.integrateHeterogeneous(ray, state, sampler, L, throughput)
	}
	return in.integrateHomogeneous(ray, state, sampler, L, throughput, false)
}

// IntegrateBranched is Integrate for branched path tracing: in homogeneous
// media a scatter event is always sampled inside the segment and weighted
// accordingly. Heterogeneous media are handled as in Integrate.
func (in *Integrator) IntegrateBranched(ray core.Ray, state *PathState, sampler core.Sampler, L Radiance, throughput *core.Vec3) Result {
	if state.Stack.IsHeterogeneous(in.shader) {
		return in.integrateHeterogeneous(ray, state, sampler, L, throughput)
	}
	return in.integrateHomogeneous(ray, state, sampler, L, throughput, true)
}

// useEquiangular reports whether homogeneous segments sample towards lights
func (in *Integrator) useEquiangular() bool {
	return in.config.HomogeneousSampling == EquiangularSampling &&
		in.lights != nil && in.lights.LightCount() > 0
}

// sampleCoefficients evaluates absorption, scattering and emission at p.
// Once the path has used up its volume bounces, scattering is treated as
// absorption so no further volume bounce can be sampled.
func (in *Integrator) sampleCoefficients(p core.Vec3, state *PathState) (Coefficients, Flags, bool) {
	coeff, flags := foldClosures(in.shader.EvaluateVolume(p, state.Stack, EvalVolume))
	if flags == 0 {
		return Coefficients{}, 0, false
	}

	if flags.Has(FlagScatter) && state.VolumeBounce >= in.config.MaxVolumeBounce {
		coeff.SigmaA = coeff.SigmaA.Add(coeff.SigmaS)
		coeff.SigmaS = core.Vec3{}
		flags = flags&^FlagScatter | FlagAbsorption
	}

	return coeff, flags, true
}

// sampleExtinction evaluates only the extinction coefficient at p
func (in *Integrator) sampleExtinction(p core.Vec3, state *PathState) (core.Vec3, bool) {
	var sigmaT core.Vec3
	found := false

	for _, c := range in.shader.EvaluateVolume(p, state.Stack, EvalShadow) {
		if c.Type == ClosureEmission || c.Weight.IsZero() {
			continue
		}
		sigmaT = sigmaT.Add(c.Weight)
		found = true
	}

	return sigmaT, found
}

// lightPosition draws a light position for equiangular sampling
func (in *Integrator) lightPosition(ray core.Ray, sampler core.Sampler) (core.Vec3, bool) {
	u := sampler.Get1D()
	uv := sampler.Get2D()

	p, pdf := in.lights.SampleLightPosition(u, uv, ray.Origin)
	if !(pdf > 0) {
		return core.Vec3{}, false
	}
	return p, true
}

// DecoupledEquiangularPDF returns the density with which equiangular
// sampling would pick sampleT, using a fresh light position draw.
// Returns 0 when no light position can be drawn.
func (in *Integrator) DecoupledEquiangularPDF(ray core.Ray, sampler core.Sampler, sampleT float64) float64 {
	if in.lights == nil || in.lights.LightCount() == 0 {
		return 0
	}

	lightP, ok := in.lightPosition(ray, sampler)
	if !ok {
		return 0
	}

	pdf := EquiangularPDF(ray, lightP, sampleT)
	if math.IsNaN(pdf) {
		return 0
	}
	return pdf
}

// selectChannel splits one random number into a colour channel and the
// remaining fraction
func selectChannel(rphase float64) (int, float64) {
	channel := min(int(rphase*3), 2)
	return channel, rphase*3 - float64(channel)
}
