package volume

import (
	"errors"
	"fmt"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// ErrInvalidConfig is returned for integrator settings that cannot work
var ErrInvalidConfig = errors.New("invalid volume config")

// SamplingMethod selects how scatter distances are picked in homogeneous media
type SamplingMethod int

const (
	// DistanceSampling samples proportionally to transmittance
	DistanceSampling SamplingMethod = iota
	// EquiangularSampling samples proportionally to the angle subtended by a light
	EquiangularSampling
)

func (m SamplingMethod) String() string {
	switch m {
	case DistanceSampling:
		return "distance"
	case EquiangularSampling:
		return "equiangular"
	default:
		return fmt.Sprintf("SamplingMethod(%d)", int(m))
	}
}

// ParseSamplingMethod parses "distance" or "equiangular"
func ParseSamplingMethod(s string) (SamplingMethod, error) {
	switch s {
	case "distance", "":
		return DistanceSampling, nil
	case "equiangular":
		return EquiangularSampling, nil
	default:
		return DistanceSampling, fmt.Errorf("%w: unknown sampling method %q", ErrInvalidConfig, s)
	}
}

// Config holds the scene-wide volume integration settings
type Config struct {
	MaxVolumeBounce     int            // scattering beyond this many volume bounces becomes absorption
	MaxSteps            int            // ray-marching step budget per segment
	StepSize            float64        // ray-marching step length
	HomogeneousSampling SamplingMethod // distance picking strategy for homogeneous media
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxVolumeBounce:     16,
		MaxSteps:            1024,
		StepSize:            0.1,
		HomogeneousSampling: DistanceSampling,
	}
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if c.MaxVolumeBounce < 0 {
		return fmt.Errorf("%w: max volume bounce %d is negative", ErrInvalidConfig, c.MaxVolumeBounce)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("%w: max steps must be positive, got %d", ErrInvalidConfig, c.MaxSteps)
	}
	if !(c.StepSize > 0) {
		return fmt.Errorf("%w: step size must be positive, got %g", ErrInvalidConfig, c.StepSize)
	}
	if c.HomogeneousSampling != DistanceSampling && c.HomogeneousSampling != EquiangularSampling {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.HomogeneousSampling)
	}
	return nil
}

// LightSampler picks a position on a scene light
type LightSampler interface {
	// SampleLightPosition picks a light with u and a point on it with uv,
	// as seen from p. A zero pdf means the draw failed.
	SampleLightPosition(u float64, uv core.Vec2, p core.Vec3) (core.Vec3, float64)

	// LightCount returns the number of lights that can be sampled
	LightCount() int
}
