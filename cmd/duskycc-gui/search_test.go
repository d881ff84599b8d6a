package main

import (
	"fmt"
	"strings"
	"testing"
)

func TestExecuteSearchPopulatesResults(t *testing.T) {
	a, _ := newTestShell(t, twoPageDoc)
	a.applyDocument(0)

	a.executeSearch("Hostname")

	if got := a.cursor.get(); got != searchPageID {
		t.Fatalf("visible page = %q, want %q", got, searchPageID)
	}
	if a.lastVisiblePage != "page-0" {
		t.Fatalf("lastVisiblePage = %q, want %q", a.lastVisiblePage, "page-0")
	}
	if a.resultsTitle.Text != "Results for 'hostname'" {
		t.Fatalf("results title = %q", a.resultsTitle.Text)
	}
	if len(a.resultRows) != 1 {
		t.Fatalf("built %d result rows, want 1", len(a.resultRows))
	}

	// Emptying the query resets the results view but stays put; the
	// previous page only returns when the search bar is dismissed.
	a.executeSearch("")
	if a.resultsTitle.Text != "Search Results" {
		t.Fatalf("results title after empty query = %q", a.resultsTitle.Text)
	}
	if len(a.resultRows) != 0 {
		t.Fatalf("%d result rows left after empty query", len(a.resultRows))
	}
	if got := a.cursor.get(); got != searchPageID {
		t.Fatalf("empty query moved to %q", got)
	}
}

func TestExecuteSearchNoMatches(t *testing.T) {
	a, _ := newTestShell(t, twoPageDoc)
	a.applyDocument(0)

	a.executeSearch("zzz")

	if len(a.resultRows) != 0 {
		t.Fatalf("built %d result rows for a hopeless query", len(a.resultRows))
	}
	if len(a.resultsBox.Objects) != 1 {
		t.Fatalf("results box holds %d objects, want the placeholder only", len(a.resultsBox.Objects))
	}
}

func TestExecuteSearchOverflow(t *testing.T) {
	var doc strings.Builder
	doc.WriteString("pages:\n  - title: Bulk\n    layout:\n      - title: Everything\n        items:\n")
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&doc, "          - type: label\n            properties:\n              title: Item %02d\n", i)
	}

	a, _ := newTestShell(t, doc.String())
	a.applyDocument(0)

	a.executeSearch("item")

	if len(a.resultRows) != 50 {
		t.Fatalf("built %d result rows, want 50", len(a.resultRows))
	}
	// Rows plus the trailing overflow notice.
	if len(a.resultsBox.Objects) != 51 {
		t.Fatalf("results box holds %d objects, want 51", len(a.resultsBox.Objects))
	}
}

func TestSearchDebounceCancelsPriorTimer(t *testing.T) {
	a, sched := newTestShell(t, twoPageDoc)
	a.applyDocument(0)

	a.onSearchChanged("net")
	a.onSearchChanged("netw")

	if len(sched.pending) != 2 {
		t.Fatalf("scheduled %d timers, want 2", len(sched.pending))
	}
	if !sched.pending[0].stopped {
		t.Fatal("first keystroke timer not cancelled")
	}
	if got := sched.live(); got != 1 {
		t.Fatalf("live timers = %d, want 1", got)
	}

	sched.fire()
	if a.resultsTitle.Text != "Results for 'netw'" {
		t.Fatalf("results title = %q, want the last keystroke's query", a.resultsTitle.Text)
	}
}

func TestDeactivateSearchRestoresPage(t *testing.T) {
	a, sched := newTestShell(t, twoPageDoc)
	a.applyDocument(1)

	a.activateSearch()
	if !a.searchActive || !a.searchBar.Visible() {
		t.Fatal("search bar not active after activation")
	}

	a.searchBar.SetText("hostname")
	sched.fire()
	if got := a.cursor.get(); got != searchPageID {
		t.Fatalf("visible page after search = %q, want %q", got, searchPageID)
	}

	a.deactivateSearch()
	if a.searchActive {
		t.Fatal("search still active after deactivation")
	}
	if a.searchBar.Text != "" {
		t.Fatalf("search text = %q after deactivation", a.searchBar.Text)
	}
	if a.searchBar.Visible() {
		t.Fatal("search bar still visible after deactivation")
	}
	if got := a.cursor.get(); got != "page-1" {
		t.Fatalf("visible page = %q, want %q", got, "page-1")
	}
}

func TestDeactivateSearchWithoutActivation(t *testing.T) {
	a, _ := newTestShell(t, twoPageDoc)
	a.applyDocument(0)

	// Escape with the bar already hidden must not touch the stack.
	a.deactivateSearch()
	if got := a.cursor.get(); got != "page-0" {
		t.Fatalf("visible page = %q, want %q", got, "page-0")
	}
}
