package analyzer

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPool(t *testing.T) {
	pool := NewWorkerPool(3)
	pool.Start()
	pool.Start() // idempotent

	var counter int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			atomic.AddInt64(&counter, 1)
		})
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("expected 50 jobs executed, got %d", counter)
	}

	pool.Close()
	pool.Close() // idempotent
}

func TestWorkerPool_DefaultsToNumCPU(t *testing.T) {
	pool := NewWorkerPool(0)
	if pool.workers < 1 {
		t.Errorf("expected at least one worker, got %d", pool.workers)
	}
	pool.Start()
	defer pool.Close()

	done := make(chan struct{})
	pool.Submit(func() { close(done) })
	<-done
}
