// Package worker provides the concurrency layer for processing batches of
// news items: a bounded goroutine pool replaces the manual event-loop
// management the service would otherwise need.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of a job
type Result interface {
	GetError() error
}

// Run executes all jobs with at most workers goroutines in flight and
// returns one result per job, in job order.
func Run(ctx context.Context, workers int, jobs []Job) []Result {
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(jobs))
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, j Job) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = &cancelledResult{err: ctx.Err()}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = j.Execute(ctx)
		}(i, job)
	}

	wg.Wait()
	return results
}

type cancelledResult struct {
	err error
}

func (r *cancelledResult) GetError() error { return r.err }
