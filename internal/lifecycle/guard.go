// Package lifecycle guards row widgets against background work arriving
// after teardown.
//
// Every row owns one Guard by value. The row's detach callback is the
// single place that calls MarkDestroyedAndDrain and stops the returned
// handles; pollers consult the guard before submitting work and again
// before applying a result. Destruction is monotonic: once a guard is
// destroyed no timer can be re-armed and no fetch can begin.
package lifecycle

import "sync"

// Kind identifies one logical recurring purpose on a row. Each kind has
// at most one armed timer and at most one outstanding background fetch.
type Kind uint8

const (
	KindIcon     Kind = iota // dynamic icon refresh
	KindMonitor              // toggle state monitor
	KindValue                // label value refresh
	KindDebounce             // slider debounce
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindIcon:
		return "icon"
	case KindMonitor:
		return "monitor"
	case KindValue:
		return "value"
	case KindDebounce:
		return "debounce"
	default:
		return "unknown"
	}
}

func (k Kind) valid() bool { return k < kindCount }

// Handle is an armed timer as the guard tracks it: anything that can be
// stopped. The guard never stops handles itself; it hands them back so
// callers cancel outside the lock.
type Handle interface {
	Stop()
}

// StopFunc adapts a plain cancel function into a Handle.
type StopFunc func()

func (f StopFunc) Stop() { f() }

// Guard tracks whether a row has been destroyed, which timers are
// armed, and which fetch kinds are in flight. The zero value is ready
// to use. All fields live behind one mutex so teardown can run
// concurrently with a finishing background task without racing on
// timer-handle state.
type Guard struct {
	mu        sync.Mutex
	destroyed bool
	timers    [kindCount]Handle
	inFlight  [kindCount]bool
}

// Destroyed reports whether the row has been torn down.
func (g *Guard) Destroyed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.destroyed
}

// Arm records h as the active timer for kind and returns the handle it
// replaces, nil if none, so the caller can stop it outside the lock.
// When the guard is already destroyed nothing is recorded and ok is
// false; the caller still owns h and must stop it.
func (g *Guard) Arm(kind Kind, h Handle) (prev Handle, ok bool) {
	if !kind.valid() || h == nil {
		return nil, false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed {
		return nil, false
	}
	prev = g.timers[kind]
	g.timers[kind] = h
	return prev, true
}

// Disarm removes and returns the armed timer for kind, nil if none.
func (g *Guard) Disarm(kind Kind) Handle {
	if !kind.valid() {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	h := g.timers[kind]
	g.timers[kind] = nil
	return h
}

// TryBegin marks a fetch of kind as in flight. It refuses when the row
// is destroyed or a fetch of the same kind is still outstanding, so a
// slow command never stacks up behind itself.
func (g *Guard) TryBegin(kind Kind) bool {
	if !kind.valid() {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.destroyed || g.inFlight[kind] {
		return false
	}
	g.inFlight[kind] = true
	return true
}

// End clears the in-flight flag for kind, whatever the fetch outcome.
func (g *Guard) End(kind Kind) {
	if !kind.valid() {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inFlight[kind] = false
}

// InFlight reports whether a fetch of kind is outstanding.
func (g *Guard) InFlight(kind Kind) bool {
	if !kind.valid() {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight[kind]
}

// MarkDestroyedAndDrain flips the row to destroyed and returns every
// armed timer handle, clearing them in the same protected step. Only
// the first call returns handles. This is the sole way to collect
// handles for cancellation, so a timer can never be re-armed between
// the read and the stop.
func (g *Guard) MarkDestroyedAndDrain() []Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.destroyed = true
	var handles []Handle
	for i := range g.timers {
		if g.timers[i] != nil {
			handles = append(handles, g.timers[i])
			g.timers[i] = nil
		}
	}
	return handles
}
