package scene

import (
	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/geometry"
	"github.com/df07/go-volumetric-raytracer/pkg/media"
)

// NewSmokeScene creates a noisy cloud lit from above by a spherical light
func NewSmokeScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 1, 7),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        35.0,
	}

	s := NewScene("smoke", cameraConfig, cameraOverrides...)
	s.BackgroundTop = core.NewVec3(0.5, 0.7, 1.0)
	s.BackgroundBottom = core.NewVec3(0.9, 0.9, 0.9)
	s.VolumeConfig.StepSize = 0.05

	center := core.NewVec3(0, 0.5, 0)
	cloud := media.NewCloud("smoke",
		core.NewVec3(0.1, 0.1, 0.1),
		core.NewVec3(2.0, 2.0, 2.0),
		media.CloudDensity{
			Center:    center,
			Radius:    1.5,
			Scale:     1.8,
			Coverage:  0.35,
			Intensity: 3.0,
			Octaves:   5,
			Seed:      7,
		})
	s.AddMediumSphere(center, 1.5, cloud)

	s.AddSphereLight(core.NewVec3(2, 5, 2), 1.0, core.NewVec3(15, 14, 12))

	return s
}
