package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Task pairs one input with the outcome of processing it.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
}

// ProcessFunc handles a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool runs a ProcessFunc over a slice of inputs with bounded concurrency.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a pool of at least one worker.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{workers: workers, process: fn}
}

// Execute processes every input and returns the tasks in input order. Inputs
// not started before ctx is cancelled carry ctx.Err().
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Task[T, R] {
	tasks := make([]Task[T, R], len(inputs))
	for i, in := range inputs {
		tasks[i].Input = in
	}

	indexes := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < min(p.workers, len(inputs)); w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range indexes {
				if err := ctx.Err(); err != nil {
					tasks[idx].Err = err
					continue
				}
				tasks[idx].Result, tasks[idx].Err = p.process(ctx, inputs[idx])
				if tasks[idx].Err != nil {
					log.Error().Err(tasks[idx].Err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
				}
			}
		}(w)
	}

	for i := range inputs {
		indexes <- i
	}
	close(indexes)

	wg.Wait()
	return tasks
}
