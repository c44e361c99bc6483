package scene

import (
	"fmt"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/geometry"
	"github.com/df07/go-volumetric-raytracer/pkg/lights"
	"github.com/df07/go-volumetric-raytracer/pkg/media"
	"github.com/df07/go-volumetric-raytracer/pkg/volume"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name             string
	Camera           *geometry.Camera
	CameraConfig     geometry.CameraConfig
	World            *geometry.World              // Volume boundaries
	Lights           []lights.Light               // Lights in the scene
	LightSampler     *lights.WeightedLightSampler // Built by Preprocess unless set
	Media            *media.Library               // Volume shaders by id
	WorldVolume      volume.ShaderID              // Medium filling all space, or ShaderNone
	BackgroundTop    core.Vec3                    // Sky colour straight up
	BackgroundBottom core.Vec3                    // Sky colour straight down
	SamplingConfig   SamplingConfig
	VolumeConfig     volume.Config

	nextObject volume.ObjectID
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width                     int  // Image width
	Height                    int  // Image height
	SamplesPerPixel           int  // Number of rays per pixel
	MaxDepth                  int  // Maximum scattering bounces per path
	MaxTransparentBounces     int  // Maximum boundary crossings per path
	RussianRouletteMinBounces int  // Minimum bounces before Russian Roulette can activate
	Branched                  bool // Always sample a scatter event in homogeneous media

	AdaptiveMinSamples float64 // Fraction of the pass target taken before adaptive stopping
	AdaptiveThreshold  float64 // Relative luminance error at which a pixel stops sampling
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:                     400,
		Height:                    225,
		SamplesPerPixel:           64,
		MaxDepth:                  32,
		MaxTransparentBounces:     64,
		RussianRouletteMinBounces: 8,
		AdaptiveMinSamples:        0.15,
		AdaptiveThreshold:         0.01,
	}
}

// NewScene creates an empty scene with a camera. The first override, if any,
// replaces the non-zero camera fields.
func NewScene(name string, cameraConfig geometry.CameraConfig, cameraOverrides ...geometry.CameraConfig) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	camera := geometry.NewCamera(cameraConfig)
	width, height := camera.ImageSize()

	sampling := DefaultSamplingConfig()
	sampling.Width = width
	sampling.Height = height

	return &Scene{
		Name:           name,
		Camera:         camera,
		CameraConfig:   cameraConfig,
		World:          geometry.NewWorld(),
		Media:          media.NewLibrary(),
		WorldVolume:    volume.ShaderNone,
		SamplingConfig: sampling,
		VolumeConfig:   volume.DefaultConfig(),
	}
}

// newObjectID hands out unique object ids for volume boundaries
func (s *Scene) newObjectID() volume.ObjectID {
	id := s.nextObject
	s.nextObject++
	return id
}

// AddMediumSphere adds a sphere filled with a medium
func (s *Scene) AddMediumSphere(center core.Vec3, radius float64, m *media.Medium) *geometry.Sphere {
	ref := geometry.VolumeRef{Shader: s.Media.Add(m), Object: s.newObjectID()}
	sphere := geometry.NewSphere(center, radius, ref)
	s.World.Add(sphere)
	return sphere
}

// AddMediumBox adds an axis-aligned box filled with a medium
func (s *Scene) AddMediumBox(center, size core.Vec3, m *media.Medium) *geometry.Box {
	ref := geometry.VolumeRef{Shader: s.Media.Add(m), Object: s.newObjectID()}
	box := geometry.NewBox(center, size, ref)
	s.World.Add(box)
	return box
}

// SetWorldVolume fills all space outside other volumes with a medium
func (s *Scene) SetWorldVolume(m *media.Medium) {
	s.WorldVolume = s.Media.Add(m)
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(position, intensity core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}

// AddSphereLight adds a spherical light to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) {
	s.Lights = append(s.Lights, lights.NewSphereLight(center, radius, emission))
}

// Background returns the sky radiance seen along a direction
func (s *Scene) Background(direction core.Vec3) core.Vec3 {
	unitDirection := direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)
	return s.BackgroundBottom.Multiply(1.0 - t).Add(s.BackgroundTop.Multiply(t))
}

// Preprocess prepares the scene for rendering
func (s *Scene) Preprocess() error {
	if err := s.VolumeConfig.Validate(); err != nil {
		return fmt.Errorf("scene %s: %w", s.Name, err)
	}

	// Use uniform light sampling
	if s.LightSampler == nil {
		s.LightSampler = lights.NewUniformLightSampler(s.Lights)
	}

	return nil
}

// VolumeCount returns the number of volume boundaries in the scene
func (s *Scene) VolumeCount() int {
	return s.World.Len()
}
