package scene

import (
	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/geometry"
	"github.com/df07/go-volumetric-raytracer/pkg/media"
)

// NewGlowScene creates an emissive gas ball inside a scattering shell.
// There are no lights: everything is lit by the medium itself.
func NewGlowScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}

	s := NewScene("glow", cameraConfig, cameraOverrides...)

	shell := media.NewHomogeneous("shell",
		core.NewVec3(0.02, 0.02, 0.02),
		core.NewVec3(0.4, 0.4, 0.4),
		core.Vec3{})
	s.AddMediumSphere(core.NewVec3(0, 0, 0), 1.6, shell)

	plasma := media.NewHomogeneous("plasma",
		core.NewVec3(0.3, 0.3, 0.3),
		core.Vec3{},
		core.NewVec3(4.0, 1.5, 0.5))
	s.AddMediumSphere(core.NewVec3(0, 0, 0), 0.6, plasma)

	return s
}
