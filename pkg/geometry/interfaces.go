package geometry

import (
	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/volume"
)

// Boundary is a closed surface that can enclose a volume
type Boundary interface {
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox() core.AABB
}

// VolumeRef ties a boundary to the medium it encloses.
// A ShaderNone shader makes the boundary a plain transparent surface.
type VolumeRef struct {
	Shader volume.ShaderID
	Object volume.ObjectID
}

// HitRecord contains information about a ray-boundary intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, facing the ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Volume    VolumeRef // Medium enclosed by the boundary
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Crossing describes the hit as a volume stack update
func (h *HitRecord) Crossing() volume.Crossing {
	return volume.Crossing{
		Shader:     h.Volume.Shader,
		Object:     h.Volume.Object,
		HasVolume:  h.Volume.Shader != volume.ShaderNone,
		Backfacing: !h.FrontFace,
	}
}
