package scene

import (
	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/geometry"
	"github.com/df07/go-volumetric-raytracer/pkg/media"
	"github.com/df07/go-volumetric-raytracer/pkg/volume"
)

// NewFogScene creates a sphere of thin fog lit by a point light inside it.
// Equiangular sampling keeps the light's glow from being noisy.
func NewFogScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.5, 6),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	s := NewScene("fog", cameraConfig, cameraOverrides...)
	s.BackgroundTop = core.NewVec3(0.02, 0.02, 0.04)
	s.BackgroundBottom = core.NewVec3(0.01, 0.01, 0.01)
	s.VolumeConfig.HomogeneousSampling = volume.EquiangularSampling

	fog := media.NewHomogeneous("fog",
		core.NewVec3(0.02, 0.02, 0.02),
		core.NewVec3(0.25, 0.25, 0.3),
		core.Vec3{})
	s.AddMediumSphere(core.NewVec3(0, 0, 0), 2.0, fog)

	s.AddPointLight(core.NewVec3(0.3, 0.2, 0.5), core.NewVec3(6, 5, 4))

	return s
}
