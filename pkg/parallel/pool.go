// Package parallel runs batch jobs on a fixed number of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc queues a job. It blocks while every worker is busy.
	WorkerFunc func(func())
	// WaitFunc blocks until queued jobs finish. Passing true also closes
	// the queue, which must happen before the last Wait.
	WaitFunc func(done bool)
	// CancelFunc closes the queue. It is safe to call more than once.
	CancelFunc func()
)

// Pool hands jobs to its workers.
type Pool struct {
	wg      sync.WaitGroup
	workers int

	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

// Start launches numWorkers goroutines. A value below 1 uses GOMAXPROCS.
// With a single worker jobs run inline on the caller's goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		jobs := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range jobs {
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			jobs <- f
		}
		pool.Cancel = sync.OnceFunc(func() { close(jobs) })
		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
	}

	return pool
}

// Workers reports how many goroutines the pool was started with.
func (p *Pool) Workers() int {
	return p.workers
}
