package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/lifecycle"
	"github.com/duskydesk/duskycc/internal/settings"
)

type errString string

func (e errString) Error() string { return string(e) }

// stubSched collects scheduled callbacks for the test to fire. Stopped
// entries stay queued but never run, mirroring cancelled timers.
type stubSched struct {
	pending []*schedEntry
}

type schedEntry struct {
	fn      func()
	stopped bool
}

func (s *stubSched) Schedule(d time.Duration, fn func()) lifecycle.Handle {
	e := &schedEntry{fn: fn}
	s.pending = append(s.pending, e)
	return lifecycle.StopFunc(func() { e.stopped = true })
}

// live counts the armed, not yet cancelled timers.
func (s *stubSched) live() int {
	n := 0
	for _, e := range s.pending {
		if !e.stopped {
			n++
		}
	}
	return n
}

// fire runs every live callback; callbacks re-arming a timer land in
// the next batch.
func (s *stubSched) fire() {
	entries := s.pending
	s.pending = nil
	for _, e := range entries {
		if !e.stopped {
			e.fn()
		}
	}
}

// stubPool holds submitted tasks until the test runs them.
type stubPool struct {
	tasks []func()
}

func (p *stubPool) Submit(task func()) bool {
	p.tasks = append(p.tasks, task)
	return true
}

// newTestShell builds a shell on the test driver with the full widget
// tree assembled but no watcher or toaster armed.
func newTestShell(t *testing.T, doc string) (*duskyApp, *stubSched) {
	t.Helper()
	test.NewApp()
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	sched := &stubSched{}
	a := &duskyApp{
		window: w,
		store:  settings.NewStore(t.TempDir()),
		pool:   &stubPool{},
		sched:  sched,
	}
	a.prefs = windowPrefs{Width: defaultWindowWidth, Height: defaultWindowHeight}
	if doc != "" {
		cfg, err := config.Parse([]byte(doc))
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", doc, err)
		}
		a.state.cfg = cfg
	} else {
		a.state.cfg = &config.Config{}
	}
	a.setupUI()
	return a, sched
}

const twoPageDoc = `
pages:
  - title: General
    id: general
    layout:
      - title: Basics
        items:
          - type: label
            properties:
              title: Hostname
  - title: Network
    id: network
    layout:
      - title: Links
        items:
          - type: label
            properties:
              title: Interface
`

func TestSidebarOffset(t *testing.T) {
	tests := []struct {
		name  string
		width float32
		want  float64
	}{
		{"wide_window_clamps_to_max", 1180, 260.0 / 1180.0},
		{"quarter_within_bounds", 1040, 0.25},
		{"narrow_window_clamps_to_min", 600, 220.0 / 600.0},
		{"tiny_window_fills_it", 160, 1},
		{"zero_width", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sidebarOffset(tt.width)
			if got != tt.want {
				t.Fatalf("sidebarOffset(%v) = %v, want %v", tt.width, got, tt.want)
			}
		})
	}
}

func TestPageTitleFallback(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"named_page", "Display", "Display"},
		{"empty_title", "", "Untitled"},
		{"whitespace_title", "   ", "Untitled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pageTitle(&config.Page{Title: tt.title})
			if got != tt.want {
				t.Fatalf("pageTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSkipReload(t *testing.T) {
	base := documentState{checksum: "aaaa", style: styleSpec{}}
	styled := documentState{checksum: "aaaa", style: styleSpec{Colors: map[string]string{"primary": "#fff"}}}

	tests := []struct {
		name    string
		force   bool
		loadErr error
		next    documentState
		want    bool
	}{
		{"forced_reload_never_skips", true, nil, base, false},
		{"load_error_never_skips", false, errString("bad yaml"), base, false},
		{"identical_document_skips", false, nil, base, true},
		{"changed_checksum_rebuilds", false, nil, documentState{checksum: "bbbb"}, false},
		{"changed_style_rebuilds", false, nil, styled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := skipReload(tt.force, tt.loadErr, base, tt.next)
			if got != tt.want {
				t.Fatalf("skipReload(%v, %v, ...) = %v, want %v", tt.force, tt.loadErr, got, tt.want)
			}
		})
	}
}

func TestConfigErrorToast(t *testing.T) {
	short := configErrorToast(errString("bad indent"))
	if short != "Config Error: bad indent" {
		t.Fatalf("configErrorToast(short) = %q", short)
	}

	long := configErrorToast(errString(strings.Repeat("x", 80)))
	want := "Config Error: " + strings.Repeat("x", 50) + "..."
	if long != want {
		t.Fatalf("configErrorToast(long) = %q, want %q", long, want)
	}
}

func TestApplyDocumentErrorState(t *testing.T) {
	a, _ := newTestShell(t, "")
	a.state.loadErr = errString("yaml: line 3: mapping values")

	a.applyDocument(0)

	if got := a.cursor.get(); got != errorPageID {
		t.Fatalf("visible page = %q, want %q", got, errorPageID)
	}
	if a.errorLabel.Text != "yaml: line 3: mapping values" {
		t.Fatalf("error label = %q", a.errorLabel.Text)
	}
	if len(a.pages) != 0 {
		t.Fatalf("built %d pages for a broken document", len(a.pages))
	}
}

func TestApplyDocumentEmptyState(t *testing.T) {
	a, _ := newTestShell(t, "")

	a.applyDocument(0)

	if got := a.cursor.get(); got != emptyPageID {
		t.Fatalf("visible page = %q, want %q", got, emptyPageID)
	}
}

func TestApplyDocumentBuildsPagesAndRestores(t *testing.T) {
	a, _ := newTestShell(t, twoPageDoc)

	a.applyDocument(1)

	if len(a.pages) != 2 {
		t.Fatalf("built %d pages, want 2", len(a.pages))
	}
	if got := a.cursor.get(); got != "page-1" {
		t.Fatalf("visible page = %q, want %q", got, "page-1")
	}
	if a.currentIdx != 1 {
		t.Fatalf("currentIdx = %d, want 1", a.currentIdx)
	}
	if a.pages[0].title != "General" || a.pages[1].title != "Network" {
		t.Fatalf("page titles = %q, %q", a.pages[0].title, a.pages[1].title)
	}
}

func TestApplyDocumentClampsRestoreIndex(t *testing.T) {
	a, _ := newTestShell(t, twoPageDoc)

	a.applyDocument(5)

	if got := a.cursor.get(); got != "page-0" {
		t.Fatalf("visible page = %q, want %q", got, "page-0")
	}
	if a.currentIdx != 0 {
		t.Fatalf("currentIdx = %d, want 0", a.currentIdx)
	}
}

func TestRedirectSelectsByConfiguredID(t *testing.T) {
	a, _ := newTestShell(t, twoPageDoc)
	a.applyDocument(0)

	a.redirect("network")

	if got := a.cursor.get(); got != "page-1" {
		t.Fatalf("visible page after redirect = %q, want %q", got, "page-1")
	}
}

func TestRedirectIgnoresUnknownAndBlank(t *testing.T) {
	a, _ := newTestShell(t, twoPageDoc)
	a.applyDocument(0)

	a.redirect("nonexistent")
	if got := a.cursor.get(); got != "page-0" {
		t.Fatalf("unknown redirect moved to %q", got)
	}

	a.redirect("")
	if got := a.cursor.get(); got != "page-0" {
		t.Fatalf("blank redirect moved to %q", got)
	}
}

func TestRebuildUIRecoversPanic(t *testing.T) {
	a, _ := newTestShell(t, "")
	a.state.cfg = nil
	a.state.loadErr = nil

	err := a.rebuildUI(0)
	if err == nil {
		t.Fatal("rebuildUI() returned nil for a nil document")
	}
	if !strings.Contains(err.Error(), "rebuild panic") {
		t.Fatalf("rebuildUI() error = %v", err)
	}
}

func TestShellPagePushAndPop(t *testing.T) {
	a, _ := newTestShell(t, twoPageDoc)
	a.applyDocument(0)

	p := a.pages[0]
	if got := p.depth.Load(); got != 1 {
		t.Fatalf("initial depth = %d, want 1", got)
	}

	p.push("Advanced", []config.Section{{
		Kind:  config.SectionList,
		Items: []config.Item{{Kind: config.KindLabel}},
	}})
	if got := p.depth.Load(); got != 2 {
		t.Fatalf("depth after push = %d, want 2", got)
	}
	if p.levels[0].view.Visible() {
		t.Fatal("base level still visible under a subpage")
	}

	p.pop()
	if got := p.depth.Load(); got != 1 {
		t.Fatalf("depth after pop = %d, want 1", got)
	}
	if !p.levels[0].view.Visible() {
		t.Fatal("base level hidden after pop")
	}

	p.pop()
	if got := p.depth.Load(); got != 1 {
		t.Fatalf("pop below root changed depth to %d", got)
	}
}

func TestRowContextVisibility(t *testing.T) {
	a, _ := newTestShell(t, twoPageDoc)
	a.applyDocument(0)

	ctx0 := a.rowContext(a.pages[0], 0)
	ctx1 := a.rowContext(a.pages[1], 0)

	if !ctx0.Visible() {
		t.Fatal("selected page reports invisible")
	}
	if ctx1.Visible() {
		t.Fatal("unselected page reports visible")
	}

	a.onPageSelected(1)
	if ctx0.Visible() || !ctx1.Visible() {
		t.Fatal("visibility did not follow the page switch")
	}

	a.hidden.Store(true)
	if ctx1.Visible() {
		t.Fatal("hidden window still reports visible rows")
	}
}

func TestApplyReloadRollsBackOnRebuildFailure(t *testing.T) {
	a, _ := newTestShell(t, twoPageDoc)
	a.applyDocument(0)
	prev := a.state
	prev.checksum = prev.cfg.Checksum()

	// A nil document makes the rebuild panic, forcing the rollback path.
	next := documentState{cfg: nil, checksum: "broken"}
	a.applyReload(next, prev, 0)

	if a.state.cfg != prev.cfg {
		t.Fatal("state not rolled back to previous document")
	}
	if a.state.loadErr != nil {
		t.Fatalf("rollback kept loadErr = %v", a.state.loadErr)
	}
	if len(a.pages) != 2 {
		t.Fatalf("rollback rebuilt %d pages, want 2", len(a.pages))
	}
}

func TestApplyReloadKeepsErrorDocument(t *testing.T) {
	a, _ := newTestShell(t, twoPageDoc)
	a.applyDocument(0)
	prev := a.state

	next := documentState{
		cfg:     &config.Config{},
		loadErr: errors.New("yaml: unmarshal failure"),
	}
	a.applyReload(next, prev, 0)

	if got := a.cursor.get(); got != errorPageID {
		t.Fatalf("visible page = %q, want %q", got, errorPageID)
	}
	if a.errorLabel.Text != "yaml: unmarshal failure" {
		t.Fatalf("error label = %q", a.errorLabel.Text)
	}
}
