package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileResult contains the result from rendering a tile
type TileResult struct {
	Tile    *Tile
	Samples int // Primary rays traced for the tile
}

// WorkerPool renders tiles on a fixed number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool; numWorkers <= 0 uses the CPU count
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run renders every tile with render and hands each result to collect. collect
// runs on the calling goroutine, one result at a time. The first error, or
// cancellation of ctx, stops the remaining work.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, render func(context.Context, *Tile) (TileResult, error), collect func(TileResult)) error {
	g, ctx := errgroup.WithContext(ctx)
	taskQueue := make(chan *Tile)
	resultQueue := make(chan TileResult, len(tiles)) // Workers never block on results

	g.Go(func() error {
		defer close(taskQueue)
		for _, tile := range tiles {
			select {
			case taskQueue <- tile:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		g.Go(func() error {
			for tile := range taskQueue {
				result, err := render(ctx, tile)
				if err != nil {
					return err
				}
				resultQueue <- result
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(resultQueue)
	}()

	for result := range resultQueue {
		if collect != nil {
			collect(result)
		}
	}

	return g.Wait()
}
