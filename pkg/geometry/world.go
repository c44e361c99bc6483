package geometry

import "github.com/df07/go-volumetric-raytracer/pkg/core"

// World is the list of boundaries in a scene
type World struct {
	boundaries []Boundary
	bounds     core.AABB
}

// NewWorld creates a world from boundaries
func NewWorld(boundaries ...Boundary) *World {
	w := &World{}
	for _, b := range boundaries {
		w.Add(b)
	}
	return w
}

// Add appends a boundary
func (w *World) Add(b Boundary) {
	if len(w.boundaries) == 0 {
		w.bounds = b.BoundingBox()
	} else {
		w.bounds = w.bounds.Union(b.BoundingBox())
	}
	w.boundaries = append(w.boundaries, b)
}

// Len returns the number of boundaries
func (w *World) Len() int {
	return len(w.boundaries)
}

// Hit returns the closest boundary crossing in [tMin, tMax]
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closest *HitRecord
	closestT := tMax

	for _, b := range w.boundaries {
		if hit, ok := b.Hit(ray, tMin, closestT); ok {
			closest = hit
			closestT = hit.T
		}
	}

	return closest, closest != nil
}

// Bounds returns the box enclosing every boundary
func (w *World) Bounds() core.AABB {
	return w.bounds
}

// BoundingSphere returns the center and radius of a sphere enclosing the world
func (w *World) BoundingSphere() (core.Vec3, float64) {
	if len(w.boundaries) == 0 {
		return core.Vec3{}, 0
	}
	return w.bounds.BoundingSphere()
}
