// Package media provides participating media and the shader library that
// evaluates every volume on a stack at once.
package media

import (
	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/volume"
)

// Library maps shader ids to media. It is built once per scene and is
// read-only while rendering.
type Library struct {
	media []*Medium
}

// NewLibrary creates an empty library
func NewLibrary() *Library {
	return &Library{}
}

// Add registers a medium and returns its shader id
func (l *Library) Add(m *Medium) volume.ShaderID {
	l.media = append(l.media, m)
	return volume.ShaderID(len(l.media) - 1)
}

// Medium returns the medium for a shader id, or nil
func (l *Library) Medium(id volume.ShaderID) *Medium {
	if id < 0 || int(id) >= len(l.media) {
		return nil
	}
	return l.media[id]
}

// Len returns the number of registered media
func (l *Library) Len() int {
	return len(l.media)
}

// EvaluateVolume implements volume.VolumeShader. Overlapping volumes add up.
func (l *Library) EvaluateVolume(p core.Vec3, stack *volume.Stack, mode volume.EvalMode) []volume.Closure {
	var closures []volume.Closure
	for i := 0; i < stack.Len(); i++ {
		if m := l.Medium(stack.Entry(i).Shader); m != nil {
			closures = m.Closures(p, mode, closures)
		}
	}
	return closures
}

// HeterogeneousShader implements volume.VolumeShader
func (l *Library) HeterogeneousShader(id volume.ShaderID) bool {
	m := l.Medium(id)
	return m != nil && m.Heterogeneous()
}
