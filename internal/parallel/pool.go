// Package parallel runs independent emphasis jobs concurrently on a
// bounded pool of goroutines.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// WorkerPool manages a fixed set of goroutines that execute submitted tasks.
// Submissions block once every worker is busy and the queue is full.
type WorkerPool struct {
	maxWorkers   int
	taskChan     chan func()
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If maxWorkers is 0 or negative, it defaults to the number of CPU cores.
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan func(), maxWorkers*2),
		shutdownChan: make(chan struct{}),
	}

	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}

	return pool
}

// Workers returns the number of worker goroutines.
func (wp *WorkerPool) Workers() int {
	return wp.maxWorkers
}

// worker runs tasks until the pool shuts down. Tasks already queued when
// Shutdown is called are still executed.
func (wp *WorkerPool) worker() {
	defer wp.workerWg.Done()

	for task := range wp.taskChan {
		if task != nil {
			task()
		}
	}
}

// Submit queues a task. It blocks while the queue is full and fails when
// ctx is done or the pool has been shut down.
func (wp *WorkerPool) Submit(ctx context.Context, task func()) error {
	select {
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	default:
	}

	select {
	case wp.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.shutdownChan:
		return ErrPoolShutdown
	}
}

// Shutdown stops accepting tasks, drains the queue and waits for the
// workers to exit. It must not run concurrently with Submit.
func (wp *WorkerPool) Shutdown() {
	wp.once.Do(func() {
		close(wp.shutdownChan)
		close(wp.taskChan)
		wp.workerWg.Wait()
	})
}

// ErrPoolShutdown is returned when trying to submit tasks to a shutdown pool.
var ErrPoolShutdown = errors.New("worker pool has been shutdown")

// Result pairs a job's output with its error.
type Result[R any] struct {
	Index int
	Value R
	Err   error
}

// RunBatch runs fn over every job on pool and returns the results in job
// order. A failing job does not stop the others. If ctx ends before every
// job was submitted, the unsubmitted jobs report ctx's error.
func RunBatch[J, R any](ctx context.Context, pool *WorkerPool, jobs []J, fn func(context.Context, J) (R, error)) []Result[R] {
	results := make([]Result[R], len(jobs))
	var wg sync.WaitGroup

	for i, job := range jobs {
		results[i].Index = i
		wg.Add(1)
		err := pool.Submit(ctx, func() {
			defer wg.Done()
			v, err := fn(ctx, job)
			results[i].Value, results[i].Err = v, err
		})
		if err != nil {
			wg.Done()
			results[i].Err = err
		}
	}

	wg.Wait()
	return results
}
