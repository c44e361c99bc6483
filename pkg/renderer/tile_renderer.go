package renderer

import (
	"image"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
	"github.com/df07/go-volumetric-raytracer/pkg/integrator"
	"github.com/df07/go-volumetric-raytracer/pkg/scene"
	"github.com/df07/go-volumetric-raytracer/pkg/volume"
)

// TileRenderer renders pixels of a tile with an integrator. It owns the
// volume stack reused by its paths, so each worker needs its own.
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	stack      *volume.Stack
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
		stack:      volume.NewStack(s.WorldVolume),
	}
}

// RenderTileBounds samples every pixel of bounds up to targetSamples,
// stopping early on pixels that have converged
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	stats := newRenderStats(bounds.Dx()*bounds.Dy(), targetSamples)
	config := tr.scene.SamplingConfig
	minSamples := int(float64(targetSamples) * config.AdaptiveMinSamples)

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			before := ps.SampleCount
			for ps.SampleCount < targetSamples && !ps.Converged(minSamples, config.AdaptiveThreshold) {
				ray := tr.scene.Camera.GetRay(i, j, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, sampler, tr.newPathState(i, j, ps.SampleCount)))
			}
			stats.addPixel(ps.SampleCount - before)
		}
	}

	stats.finalize()
	return stats
}

// newPathState starts a camera path: outside every object, inside the
// world volume, with a jitter stream decorrelated per pixel and sample
func (tr *TileRenderer) newPathState(i, j, sample int) *volume.PathState {
	tr.stack.Init(tr.scene.WorldVolume)
	return &volume.PathState{
		Jitter: core.NewLCGForSample(i, j, sample),
		Stack:  tr.stack,
	}
}
