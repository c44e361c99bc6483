package core

import (
	"math"
	"testing"
)

func TestAABBIntersect(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		tMax     float64
		wantHit  bool
		wantNear float64
		wantFar  float64
	}{
		{"through center", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), math.Inf(1), true, 4, 6},
		{"from inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0)), math.Inf(1), true, 0, 1},
		{"miss", NewRay(NewVec3(0, 3, -5), NewVec3(0, 0, 1)), math.Inf(1), false, 0, 0},
		{"parallel outside", NewRay(NewVec3(2, 0, 0), NewVec3(0, 1, 0)), math.Inf(1), false, 0, 0},
		{"segment too short", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 3, false, 0, 0},
		{"segment ends inside", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 5, true, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			near, far, ok := box.Intersect(tt.ray, 0, tt.tMax)
			if ok != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v", tt.wantHit, ok)
			}
			if ok && (math.Abs(near-tt.wantNear) > 1e-9 || math.Abs(far-tt.wantFar) > 1e-9) {
				t.Errorf("Expected [%f, %f], got [%f, %f]", tt.wantNear, tt.wantFar, near, far)
			}
		})
	}
}

func TestAABBLocalAndContains(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(2, 4, 8))

	if got := box.Local(NewVec3(1, 1, 2)); got != NewVec3(0.5, 0.25, 0.25) {
		t.Errorf("Expected (0.5, 0.25, 0.25), got %v", got)
	}
	if !box.Contains(NewVec3(2, 4, 8)) || box.Contains(NewVec3(-0.1, 1, 1)) {
		t.Error("Contains disagrees with the box extent")
	}

	center, radius := box.BoundingSphere()
	if center != NewVec3(1, 2, 4) || math.Abs(radius-math.Sqrt(21)) > 1e-12 {
		t.Errorf("Unexpected bounding sphere %v r=%f", center, radius)
	}

	union := box.Union(NewAABB(NewVec3(-1, 1, 1), NewVec3(1, 5, 1)))
	if union.Min != NewVec3(-1, 0, 0) || union.Max != NewVec3(2, 5, 8) {
		t.Errorf("Unexpected union %+v", union)
	}
}
