package renderer

import (
	"context"
	"runtime"
	"sync"

	"github.com/df07/go-volumetric-raytracer/pkg/integrator"
	"github.com/df07/go-volumetric-raytracer/pkg/scene"
)

// TileTask asks a worker to bring one tile up to TargetSamples
type TileTask struct {
	Tile          *Tile
	PassNumber    int
	TargetSamples int
	TaskID        int            // Index into the tile list
	PixelStats    [][]PixelStats // Shared image statistics; tiles never overlap
}

// TileResult reports a finished or abandoned tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error // Set when the render was cancelled before the tile ran
}

// WorkerPool renders tiles in parallel. Each worker owns a TileRenderer and
// with it the volume stack its paths use, so paths never share mutable state.
type WorkerPool struct {
	tasks    chan TileTask
	results  chan TileResult
	renders  []*TileRenderer
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewWorkerPool creates numWorkers workers (CPU count when <= 0). maxTiles
// bounds the queues so a whole pass can be submitted without blocking.
func NewWorkerPool(s *scene.Scene, integratorInst integrator.Integrator, maxTiles, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		tasks:   make(chan TileTask, maxTiles),
		results: make(chan TileResult, maxTiles),
	}
	for range numWorkers {
		wp.renders = append(wp.renders, NewTileRenderer(s, integratorInst))
	}
	return wp
}

// Start launches the workers. Tasks dequeued after ctx is done are answered
// with ctx.Err() instead of being rendered.
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, tr := range wp.renders {
		wp.wg.Add(1)
		go wp.work(ctx, tr)
	}
}

// Stop closes the task queue and waits for the workers. It is safe to call
// more than once.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.tasks)
		wp.wg.Wait()
		close(wp.results)
	})
}

// Submit queues a tile
func (wp *WorkerPool) Submit(task TileTask) {
	wp.tasks <- task
}

// Result waits for the next tile result; ok is false once the pool stopped
func (wp *WorkerPool) Result() (TileResult, bool) {
	result, ok := <-wp.results
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return len(wp.renders)
}

func (wp *WorkerPool) work(ctx context.Context, tr *TileRenderer) {
	defer wp.wg.Done()

	for task := range wp.tasks {
		if err := ctx.Err(); err != nil {
			wp.results <- TileResult{TaskID: task.TaskID, Error: err}
			continue
		}
		wp.results <- TileResult{
			TaskID: task.TaskID,
			Stats:  tr.RenderTileBounds(task.Tile.Bounds, task.PixelStats, task.Tile.Sampler, task.TargetSamples),
		}
	}
}
