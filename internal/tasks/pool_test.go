package tasks

import (
	"sync"
	"testing"
	"time"
)

func TestSubmitRunsTask(t *testing.T) {
	p := NewPool(2)
	defer p.Shutdown()

	ran := make(chan struct{})
	if !p.Submit(func() { close(ran) }) {
		t.Fatal("Submit rejected on a fresh pool")
	}
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
}

func TestSubmitRejectsAfterShutdown(t *testing.T) {
	p := NewPool(1)
	p.Shutdown()
	if p.Submit(func() {}) {
		t.Fatal("Submit accepted after Shutdown")
	}
}

func TestSubmitRejectsNilTask(t *testing.T) {
	p := NewPool(1)
	defer p.Shutdown()
	if p.Submit(nil) {
		t.Fatal("Submit accepted a nil task")
	}
}

func TestShutdownDiscardsQueuedTasks(t *testing.T) {
	p := NewPool(1)

	release := make(chan struct{})
	started := make(chan struct{})
	firstDone := make(chan struct{})
	if !p.Submit(func() { close(started); <-release; close(firstDone) }) {
		t.Fatal("first Submit rejected")
	}
	<-started

	var mu sync.Mutex
	queuedRan := false
	if !p.Submit(func() { mu.Lock(); queuedRan = true; mu.Unlock() }) {
		t.Fatal("second Submit rejected")
	}

	// The queued task is still pending behind the blocked worker.
	p.Shutdown()
	close(release)

	select {
	case <-firstDone:
	case <-time.After(2 * time.Second):
		t.Fatal("running task did not finish")
	}
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if queuedRan {
		t.Fatal("queued task ran after Shutdown")
	}
}

func TestShutdownDoesNotWaitForRunningTasks(t *testing.T) {
	p := NewPool(1)
	release := make(chan struct{})
	defer close(release)
	if !p.Submit(func() { <-release }) {
		t.Fatal("Submit rejected")
	}

	returned := make(chan struct{})
	go func() {
		p.Shutdown()
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown blocked on a running task")
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	p := NewPool(1)
	p.Shutdown()
	p.Shutdown()
}

func TestSubmitRejectsWhenQueueFull(t *testing.T) {
	p := NewPool(1)
	defer p.Shutdown()

	release := make(chan struct{})
	defer close(release)
	started := make(chan struct{})
	if !p.Submit(func() { close(started); <-release }) {
		t.Fatal("blocking Submit rejected")
	}
	<-started

	accepted := 0
	for i := 0; i < queueCapacity+10; i++ {
		if p.Submit(func() { <-release }) {
			accepted++
		}
	}
	if accepted != queueCapacity {
		t.Fatalf("accepted %d queued tasks, want %d", accepted, queueCapacity)
	}
}

func TestPanickingTaskDoesNotKillWorker(t *testing.T) {
	p := NewPool(1)
	defer p.Shutdown()

	if !p.Submit(func() { panic("boom") }) {
		t.Fatal("Submit rejected")
	}
	ran := make(chan struct{})
	if !p.Submit(func() { close(ran) }) {
		t.Fatal("Submit after panic rejected")
	}
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after a panicking task")
	}
}

func TestConcurrentSubmissionsAllRun(t *testing.T) {
	p := NewPool(DefaultWorkers)
	defer p.Shutdown()

	const n = 32
	var mu sync.Mutex
	count := 0
	done := make(chan struct{})

	for i := 0; i < n; i++ {
		go func() {
			p.Submit(func() {
				mu.Lock()
				count++
				finished := count == n
				mu.Unlock()
				if finished {
					close(done)
				}
			})
		}()
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		mu.Lock()
		defer mu.Unlock()
		t.Fatalf("ran %d of %d tasks", count, n)
	}
}
