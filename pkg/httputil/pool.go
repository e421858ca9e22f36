package httputil

import (
	"context"
	"sync"
)

// Network resolution runs through one process-wide pool sized for a
// handful of concurrent lookups. The pool is constructed lazily on the
// first resolution call and reused for the lifetime of the process;
// repeated calls never spin up new resources.
const poolWorkers = 4

var (
	poolOnce sync.Once
	poolJobs chan task
)

type task struct {
	fn   func()
	done chan struct{}
}

func pool() chan<- task {
	poolOnce.Do(func() {
		poolJobs = make(chan task)
		for range poolWorkers {
			go func() {
				for t := range poolJobs {
					t.fn()
					close(t.done)
				}
			}()
		}
	})
	return poolJobs
}

// submit runs fn on the shared pool and blocks until it completes or
// ctx is cancelled while the call is still queued or in flight. When
// submit returns ctx.Err() the job may still finish in the background;
// fn must therefore not capture state the caller mutates after return.
func submit(ctx context.Context, fn func()) error {
	t := task{fn: fn, done: make(chan struct{})}
	select {
	case pool() <- t:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
