package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/geometry"
	"github.com/df07/go-volumetric-raytracer/pkg/volume"
)

func TestBuiltinScenes(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := New(name)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", name, err)
			}
			if err := s.Preprocess(); err != nil {
				t.Fatalf("Preprocess failed: %v", err)
			}
			if s.Name != name {
				t.Errorf("Expected name %q, got %q", name, s.Name)
			}
			if s.VolumeCount() == 0 {
				t.Error("Expected at least one volume boundary")
			}
			if s.LightSampler == nil {
				t.Error("Expected light sampler after Preprocess")
			}
			if s.LightSampler.LightCount() != len(s.Lights) {
				t.Errorf("Light sampler has %d lights, scene has %d", s.LightSampler.LightCount(), len(s.Lights))
			}
			if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
				t.Errorf("Invalid image size %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
			}
		})
	}
}

func TestNew_UnknownScene(t *testing.T) {
	_, err := New("cornell")
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestNew_CameraOverride(t *testing.T) {
	s, err := New("fog", geometry.CameraConfig{Width: 100, AspectRatio: 2})
	if err != nil {
		t.Fatal(err)
	}
	if s.SamplingConfig.Width != 100 || s.SamplingConfig.Height != 50 {
		t.Errorf("Expected 100x50, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
	// Unset fields keep the scene's camera
	if s.CameraConfig.VFov != 40 {
		t.Errorf("Expected VFov 40, got %v", s.CameraConfig.VFov)
	}
}

func TestNew_GridFile(t *testing.T) {
	path := writeGridFile(t, t.TempDir(), "ring.grid")

	s, err := New(gridScenePrefix + path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.Name != "ring" {
		t.Errorf("Expected name ring, got %q", s.Name)
	}
	// 4 voxels across a 2-unit box
	if math.Abs(s.VolumeConfig.StepSize-0.5) > 1e-12 {
		t.Errorf("Expected step size 0.5, got %v", s.VolumeConfig.StepSize)
	}
}

func TestNew_MissingGridFile(t *testing.T) {
	_, err := New(gridScenePrefix + filepath.Join(t.TempDir(), "missing.grid"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

func TestPreprocess_InvalidVolumeConfig(t *testing.T) {
	s := NewFogScene()
	s.VolumeConfig.StepSize = 0
	if err := s.Preprocess(); !errors.Is(err, volume.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestAddVolumes_UniqueObjects(t *testing.T) {
	s := NewNestedScene()
	seen := make(map[volume.ObjectID]bool)

	// Walk a ray through the scene and record every boundary's object id
	ray := core.NewRay(core.NewVec3(-10, 0.3, 0), core.NewVec3(1, 0, 0))
	tMin := 0.0
	for {
		hit, ok := s.World.Hit(ray, tMin, math.Inf(1))
		if !ok {
			break
		}
		seen[hit.Volume.Object] = true
		tMin = hit.T + 1e-6
	}

	if len(seen) != 2 {
		t.Errorf("Expected 2 distinct objects, got %d", len(seen))
	}
	if s.WorldVolume == volume.ShaderNone {
		t.Error("Expected nested scene to have a world volume")
	}
}

func TestBackground(t *testing.T) {
	s := NewFogScene()
	up := s.Background(core.NewVec3(0, 1, 0))
	down := s.Background(core.NewVec3(0, -1, 0))

	if up != s.BackgroundTop {
		t.Errorf("Expected top colour %v, got %v", s.BackgroundTop, up)
	}
	if down != s.BackgroundBottom {
		t.Errorf("Expected bottom colour %v, got %v", s.BackgroundBottom, down)
	}
}

func TestTorusGrid(t *testing.T) {
	size := 32
	grid := TorusGrid(size)
	if len(grid.Values) != size*size*size {
		t.Fatalf("Expected %d voxels, got %d", size*size*size, len(grid.Values))
	}

	// Cube centre is the torus hole
	if v := grid.Values[grid.Index(16, 16, 16)]; v != 0 {
		t.Errorf("Expected empty hole, got %v", v)
	}
	// A voxel on the ring (x = 0.6 in [-1, 1]), centred at x = 0.59375
	ring := int((0.6 + 1) / 2 * float64(size))
	if v := grid.Values[grid.Index(ring, 16, 16)]; v <= 0.5 {
		t.Errorf("Expected dense ring voxel, got %v", v)
	}
}
