package volume

import (
	"testing"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// MockShader returns the same closures everywhere and counts evaluations
type MockShader struct {
	closures      []Closure
	heterogeneous bool
	calls         int
}

func (m *MockShader) EvaluateVolume(p core.Vec3, stack *Stack, mode EvalMode) []Closure {
	m.calls++
	if mode == EvalShadow {
		var out []Closure
		for _, c := range m.closures {
			if c.Type != ClosureEmission {
				out = append(out, c)
			}
		}
		return out
	}
	return m.closures
}

func (m *MockShader) HeterogeneousShader(id ShaderID) bool {
	return m.heterogeneous
}

// MockLights always returns the same position with a fixed pdf
type MockLights struct {
	position core.Vec3
	pdf      float64
	count    int
}

func (m *MockLights) SampleLightPosition(u float64, uv core.Vec2, p core.Vec3) (core.Vec3, float64) {
	return m.position, m.pdf
}

func (m *MockLights) LightCount() int {
	return m.count
}

// NoDrawSampler fails the test if any random number is requested
type NoDrawSampler struct {
	t *testing.T
}

func (s NoDrawSampler) Get1D() float64 {
	s.t.Fatal("unexpected Get1D draw")
	return 0
}

func (s NoDrawSampler) Get2D() core.Vec2 {
	s.t.Fatal("unexpected Get2D draw")
	return core.Vec2{}
}

// ScriptedSampler returns preset 1D values in order, then 0.5
type ScriptedSampler struct {
	values []float64
}

func (s *ScriptedSampler) Get1D() float64 {
	if len(s.values) == 0 {
		return 0.5
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

func (s *ScriptedSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Get1D(), s.Get1D())
}

func medium(sigmaA, sigmaS, emission core.Vec3) []Closure {
	return []Closure{
		{Type: ClosureAbsorption, Weight: sigmaA},
		{Type: ClosureScattering, Weight: sigmaS},
		{Type: ClosureEmission, Weight: emission},
	}
}

func newTestIntegrator(t *testing.T, shader VolumeShader, lights LightSampler, config Config) *Integrator {
	t.Helper()
	in, err := NewIntegrator(config, shader, lights)
	if err != nil {
		t.Fatalf("NewIntegrator: %v", err)
	}
	return in
}

func newTestState(seed uint32) *PathState {
	return &PathState{
		Jitter: core.NewLCG(seed),
		Stack:  NewStack(0),
	}
}

func newTestSampler(seed int64) core.Sampler {
	return core.NewSeededSampler(seed)
}
