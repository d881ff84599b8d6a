package poll

import (
	"time"

	"github.com/duskydesk/duskycc/internal/lifecycle"
)

// manualSched collects scheduled callbacks for the test to fire.
type manualSched struct {
	pending []func()
}

func (s *manualSched) Schedule(d time.Duration, fn func()) lifecycle.Handle {
	s.pending = append(s.pending, fn)
	return lifecycle.StopFunc(func() {})
}

// fire runs every currently pending callback; callbacks re-arming the
// loop land in the next batch.
func (s *manualSched) fire() {
	fns := s.pending
	s.pending = nil
	for _, fn := range fns {
		fn()
	}
}

// capturePool holds submitted tasks until the test runs them.
type capturePool struct {
	tasks []func()
}

func (p *capturePool) Submit(task func()) bool {
	p.tasks = append(p.tasks, task)
	return true
}

func (p *capturePool) runAll() {
	tasks := p.tasks
	p.tasks = nil
	for _, task := range tasks {
		task()
	}
}

// rejectPool refuses everything, like a pool after shutdown.
type rejectPool struct{}

func (rejectPool) Submit(func()) bool { return false }

type fakeIconTarget struct {
	mapped  bool
	current string
	applied []string
}

func (t *fakeIconTarget) Mapped() bool        { return t.mapped }
func (t *fakeIconTarget) CurrentIcon() string { return t.current }
func (t *fakeIconTarget) ApplyIcon(name string) {
	t.current = name
	t.applied = append(t.applied, name)
}

type fakeStateTarget struct {
	mapped bool
	states []bool
}

func (t *fakeStateTarget) Mapped() bool       { return t.mapped }
func (t *fakeStateTarget) ApplyState(on bool) { t.states = append(t.states, on) }

type fakeValueTarget struct {
	mapped bool
	values []string
}

func (t *fakeValueTarget) Mapped() bool           { return t.mapped }
func (t *fakeValueTarget) ApplyValue(text string) { t.values = append(t.values, text) }

func drainAndStop(g *lifecycle.Guard) {
	for _, h := range g.MarkDestroyedAndDrain() {
		h.Stop()
	}
}
