package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-volumetric-raytracer/pkg/geometry"
)

// ErrUnknownScene is returned for scene names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

type builtinScene struct {
	name        string
	displayName string
	description string
	create      func(cameraOverrides ...geometry.CameraConfig) *Scene
}

var builtinScenes = []builtinScene{
	{"fog", "Fog", "Homogeneous fog sphere around a point light, equiangular sampling", NewFogScene},
	{"smoke", "Smoke", "Fractal noise cloud lit by a sphere light", NewSmokeScene},
	{"nested", "Nested Media", "Dense sphere inside height fog inside a world haze", NewNestedScene},
	{"glow", "Glow", "Emissive plasma inside a scattering shell", NewGlowScene},
	{"grid", "Density Grid", "Voxel torus lit by a sphere light", func(cameraOverrides ...geometry.CameraConfig) *Scene {
		return NewGridScene(nil, cameraOverrides...)
	}},
}

// Names returns the built-in scene names in display order
func Names() []string {
	names := make([]string, len(builtinScenes))
	for i, b := range builtinScenes {
		names[i] = b.name
	}
	return names
}

// New creates a scene by name. Names of the form "grid:<path>" load a
// density grid file.
func New(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if path, ok := strings.CutPrefix(name, gridScenePrefix); ok {
		return NewGridSceneFromFile(path, cameraOverrides...)
	}

	for _, b := range builtinScenes {
		if b.name == name {
			return b.create(cameraOverrides...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}
