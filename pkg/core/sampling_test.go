package core

import (
	"math"
	"testing"
)

func TestRandomSampler(t *testing.T) {
	a, b := NewSeededSampler(42), NewSeededSampler(42)

	for i := 0; i < 1000; i++ {
		u := a.Get1D()
		if u < 0 || u >= 1 {
			t.Fatalf("Get1D out of range: %f", u)
		}
		if u != b.Get1D() {
			t.Fatal("Expected equal seeds to produce equal sequences")
		}
		uv := a.Get2D()
		if uv.X < 0 || uv.X >= 1 || uv.Y < 0 || uv.Y >= 1 {
			t.Fatalf("Get2D out of range: %v", uv)
		}
		b.Get2D()
	}
}

func TestSampleIsotropic(t *testing.T) {
	sampler := NewSeededSampler(7)
	var mean Vec3
	upper := 0
	const n = 20000

	for i := 0; i < n; i++ {
		d := SampleIsotropic(sampler.Get2D())
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", d.Length())
		}
		mean = mean.Add(d)
		if d.Y > 0.5 {
			upper++
		}
	}

	// Uniform directions average to the origin, and the cap y > 0.5 holds
	// a quarter of the sphere's area
	if mean.Multiply(1.0/n).Length() > 0.03 {
		t.Errorf("Expected mean direction near zero, got %v", mean.Multiply(1.0/n))
	}
	if frac := float64(upper) / n; math.Abs(frac-0.25) > 0.015 {
		t.Errorf("Expected 25%% of directions in the cap, got %.3f", frac)
	}

	if math.Abs(IsotropicPhase*4*math.Pi-1) > 1e-12 {
		t.Errorf("Expected isotropic phase to integrate to 1, got %f", IsotropicPhase*4*math.Pi)
	}
}

func TestSampleUnitDisk(t *testing.T) {
	tests := []struct {
		name     string
		sample   Vec2
		expected Vec2
	}{
		{"center", NewVec2(0.5, 0.5), NewVec2(0, 0)},
		{"right edge", NewVec2(1, 0.5), NewVec2(1, 0)},
		{"top edge", NewVec2(0.5, 1), NewVec2(0, 1)},
		{"left edge", NewVec2(0, 0.5), NewVec2(-1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SampleUnitDisk(tt.sample)
			if p.Sub(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, p)
			}
		})
	}

	sampler := NewSeededSampler(3)
	for i := 0; i < 1000; i++ {
		if p := SampleUnitDisk(sampler.Get2D()); p.Length() > 1+1e-9 {
			t.Fatalf("Point outside unit disk: %v", p)
		}
	}
}
