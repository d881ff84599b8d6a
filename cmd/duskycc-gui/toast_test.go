package main

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
)

// newTestToaster wires a toaster to the test canvas with a manual
// scheduler and an inline dispatcher.
func newTestToaster(t *testing.T) (*toaster, *stubSched) {
	t.Helper()
	test.NewApp()
	sched := &stubSched{}
	tst := &toaster{
		canvas:   test.NewCanvas(),
		sched:    sched,
		dispatch: func(fn func()) { fn() },
	}
	return tst, sched
}

func TestToasterReplacesCurrent(t *testing.T) {
	tst, sched := newTestToaster(t)

	tst.Show("first", 1)
	if tst.popup == nil {
		t.Fatal("no popup after Show")
	}
	first := tst.popup

	tst.Show("second", 1)
	if tst.popup == first {
		t.Fatal("second Show kept the first popup")
	}
	if !sched.pending[0].stopped {
		t.Fatal("first toast timer not cancelled")
	}
	if got := sched.live(); got != 1 {
		t.Fatalf("live timers = %d, want 1", got)
	}

	sched.fire()
	if tst.popup != nil {
		t.Fatal("popup survived its timeout")
	}
}

func TestToasterStaleTimeoutIgnored(t *testing.T) {
	tst, sched := newTestToaster(t)

	tst.Show("first", 1)
	stale := sched.pending[0]
	tst.Show("second", 1)

	// Fire the superseded timeout by hand; it must not touch the
	// replacement popup.
	stale.fn()
	if tst.popup == nil {
		t.Fatal("stale timeout hid the current popup")
	}

	sched.fire()
	if tst.popup != nil {
		t.Fatal("current timeout did not hide the popup")
	}
}

func TestToasterNilReceiver(t *testing.T) {
	var tst *toaster
	tst.Show("ignored", 1)
}

func TestToastDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"explicit", 3, 3 * time.Second},
		{"zero_defaults", 0, 2 * time.Second},
		{"negative_defaults", -5, 2 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toastDuration(tt.seconds)
			if got != tt.want {
				t.Fatalf("toastDuration(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestClipGraphemes(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short_string_untouched", "hello", 10, "hello"},
		{"exact_length_untouched", "hello", 5, "hello"},
		{"ascii_clipped", "hello world", 5, "hello"},
		{"combining_mark_kept_whole", "éxy", 1, "é"},
		{"emoji_kept_whole", "ok 🚀🚀", 4, "ok 🚀"},
		{"empty", "", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clipGraphemes(tt.in, tt.limit)
			if got != tt.want {
				t.Fatalf("clipGraphemes(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}
