package scene

import (
	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/geometry"
	"github.com/df07/go-volumetric-raytracer/pkg/media"
)

// NewNestedScene creates a dense coloured sphere inside a box of height fog,
// with the whole scene sitting in a faint haze
func NewNestedScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(-3, 2, 7),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	s := NewScene("nested", cameraConfig, cameraOverrides...)
	s.BackgroundTop = core.NewVec3(0.3, 0.4, 0.6)
	s.BackgroundBottom = core.NewVec3(0.1, 0.1, 0.1)

	s.SetWorldVolume(media.NewHomogeneous("haze",
		core.Vec3{},
		core.NewVec3(0.01, 0.01, 0.01),
		core.Vec3{}))

	fog := media.NewHeightFog("ground fog",
		core.NewVec3(0.05, 0.05, 0.05),
		core.NewVec3(0.6, 0.6, 0.6),
		-1.0, 1.5)
	s.AddMediumBox(core.NewVec3(0, 0, 0), core.NewVec3(2.5, 1.0, 2.5), fog)

	jelly := media.NewHomogeneous("jelly",
		core.NewVec3(0.8, 0.1, 0.05),
		core.NewVec3(0.5, 2.0, 2.5),
		core.Vec3{})
	s.AddMediumSphere(core.NewVec3(0, 0.3, 0), 0.7, jelly)

	s.AddPointLight(core.NewVec3(-2, 3, 2), core.NewVec3(20, 20, 20))
	s.AddSphereLight(core.NewVec3(3, 2, -2), 0.4, core.NewVec3(8, 6, 4))

	return s
}
