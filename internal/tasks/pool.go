// Package tasks runs blocking row work (subprocess captures, small file
// reads) off the UI thread on a small fixed pool of workers.
//
// The pool is constructed and owned by the application shell and shut
// down explicitly on teardown. Submission never blocks: the UI thread
// calls Submit from timer callbacks and must return immediately, so a
// full queue or a stopped pool rejects instead of waiting. Per-row
// reentrancy guards keep the queue close to empty in practice.
package tasks

import (
	"sync"

	"github.com/duskydesk/duskycc/internal/logger"
)

const (
	// DefaultWorkers is sized for short-lived blocking I/O, not CPU work.
	DefaultWorkers = 4

	// queueCapacity is generous headroom over the handful of rows that
	// can have a fetch outstanding at once.
	queueCapacity = 64
)

// Pool executes submitted tasks on a fixed number of worker goroutines.
type Pool struct {
	mu       sync.Mutex
	shutdown bool

	queue chan func()
	done  chan struct{}
	wg    sync.WaitGroup
}

// NewPool starts a pool with the given number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	p := &Pool{
		queue: make(chan func(), queueCapacity),
		done:  make(chan struct{}),
	}
	for w := 0; w < workers; w++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		// Checked first so queued work is discarded once Shutdown has
		// been called, even when the queue still has entries.
		select {
		case <-p.done:
			return
		default:
		}
		select {
		case <-p.done:
			return
		case task := <-p.queue:
			p.runTask(task)
		}
	}
}

// runTask keeps a panicking task from killing its worker. Failures never
// cross back to the UI thread; tasks report through their own callbacks.
func (p *Pool) runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Background task panicked", "panic", r)
		}
	}()
	task()
}

// Submit queues task for execution and reports whether it was accepted.
// A stopped pool or a full queue rejects, so callers can clear their
// in-flight flag and skip the update instead of crashing or blocking.
func (p *Pool) Submit(task func()) bool {
	if task == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shutdown {
		return false
	}
	select {
	case p.queue <- task:
		return true
	default:
		logger.Warn("Task queue full, rejecting submission")
		return false
	}
}

// Shutdown stops the pool: subsequent submissions are rejected, queued
// tasks that have not started are discarded, and running tasks are left
// to finish on their own. Safe to call more than once.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shutdown {
		return
	}
	p.shutdown = true
	close(p.done)
	logger.Debug("Task pool shut down")
}
