package core

import (
	"math"
	"testing"
)

func TestVec3_Channel(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for i, expected := range []float64{1, 2, 3} {
		if got := v.Channel(i); got != expected {
			t.Errorf("Channel(%d): expected %f, got %f", i, expected, got)
		}
	}
}

func TestVec3_AverageAndSum(t *testing.T) {
	v := NewVec3(0.5, 1.5, 4)
	if v.Sum() != 6 {
		t.Errorf("Expected sum 6, got %f", v.Sum())
	}
	if math.Abs(v.Average()-2) > 1e-12 {
		t.Errorf("Expected average 2, got %f", v.Average())
	}
}

func TestVec3_AllBelow(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec3
		expected bool
	}{
		{"all tiny", NewVec3(1e-12, 0, 5e-11), true},
		{"one large", NewVec3(1e-12, 0.5, 0), false},
		{"equal to eps", NewVec3(1e-10, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.AllBelow(1e-10); got != tt.expected {
				t.Errorf("AllBelow: expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestVec3_CrossAndNormalize(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	z := x.Cross(y)
	if z != NewVec3(0, 0, 1) {
		t.Errorf("Expected (0,0,1), got %v", z)
	}

	n := NewVec3(3, 4, 0).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}

	if NewVec3(0, 0, 0).Normalize() != (Vec3{}) {
		t.Error("Expected zero vector to normalize to zero")
	}
}

func TestRay_SegmentAndAt(t *testing.T) {
	r := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1))
	if !math.IsInf(r.T, 1) {
		t.Errorf("Expected unbounded ray, got T=%f", r.T)
	}

	s := r.WithT(2.5)
	if s.T != 2.5 || !math.IsInf(r.T, 1) {
		t.Error("WithT should return a modified copy")
	}

	p := s.At(2)
	if p != NewVec3(0, 0, 2) {
		t.Errorf("Expected (0,0,2), got %v", p)
	}
}
