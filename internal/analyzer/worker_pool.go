package analyzer

import (
	"runtime"
	"sync"
)

// WorkerPool runs feature-extraction jobs on a fixed set of goroutines.
type WorkerPool struct {
	workers  int
	jobQueue chan func()
	started  sync.Once
	stopped  sync.Once
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start launches the workers; safe to call more than once
func (wp *WorkerPool) Start() {
	wp.started.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

func (wp *WorkerPool) worker() {
	for job := range wp.jobQueue {
		job()
	}
}

// Submit queues a job; blocks when the queue is full
func (wp *WorkerPool) Submit(job func()) {
	wp.jobQueue <- job
}

// Close shuts down the worker pool; queued jobs still run
func (wp *WorkerPool) Close() {
	wp.stopped.Do(func() {
		close(wp.jobQueue)
	})
}
