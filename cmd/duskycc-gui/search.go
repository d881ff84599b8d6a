package main

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/ui"
)

const searchDebounce = 200 * time.Millisecond

func (a *duskyApp) toggleSearch() {
	if a.searchActive {
		a.deactivateSearch()
		return
	}
	a.activateSearch()
}

func (a *duskyApp) activateSearch() {
	if !a.searchActive {
		a.searchActive = true
		a.searchBar.Show()
	}
	a.window.Canvas().Focus(a.searchBar)
}

func (a *duskyApp) deactivateSearch() {
	if !a.searchActive {
		return
	}
	a.searchActive = false
	a.searchBar.SetText("")
	a.searchBar.Hide()
	a.window.Canvas().Unfocus()
	if a.lastVisiblePage != "" {
		a.showPageID(a.lastVisiblePage)
	}
}

// onSearchChanged debounces keystrokes; only the last text within the
// window is searched.
func (a *duskyApp) onSearchChanged(text string) {
	a.cancelSearchTimer()
	a.searchTimer = a.sched.Schedule(searchDebounce, func() {
		a.safeDo("search.execute", func() { a.executeSearch(text) })
	})
}

func (a *duskyApp) cancelSearchTimer() {
	if a.searchTimer != nil {
		a.searchTimer.Stop()
		a.searchTimer = nil
	}
}

// executeSearch renders the results page for query. An emptied query
// only resets the results view; the page the user was on before
// searching comes back when the search bar is dismissed.
func (a *duskyApp) executeSearch(raw string) {
	query := strings.ToLower(strings.TrimSpace(raw))
	if query == "" {
		a.resultsTitle.SetText("Search Results")
		a.clearSearchResults()
		return
	}

	if cur := a.cursor.get(); cur != searchPageID {
		a.lastVisiblePage = cur
	}
	a.showPageID(searchPageID)
	a.resultsTitle.SetText(fmt.Sprintf("Results for '%s'", query))
	a.clearSearchResults()

	results, truncated := a.state.cfg.Search(query, config.SearchMaxResults)
	if len(results) == 0 {
		a.resultsBox.Add(searchPlaceholder("No results found", "Try different search terms"))
		a.resultsBox.Refresh()
		return
	}

	ctx := a.searchContext()
	for i := range results {
		row := ui.BuildItem(ctx, &results[i])
		a.resultRows = append(a.resultRows, row)
		a.resultsBox.Add(row.Object())
	}
	if truncated {
		a.resultsBox.Add(searchPlaceholder(
			fmt.Sprintf("Showing first %d results...", config.SearchMaxResults),
			"Refine your search for more specific results",
		))
	}
	a.resultsBox.Refresh()
}

func (a *duskyApp) clearSearchResults() {
	ui.DestroyRows(a.resultRows)
	a.resultRows = nil
	a.resultsBox.RemoveAll()
	a.resultsBox.Refresh()
}

func searchPlaceholder(title, subtitle string) fyne.CanvasObject {
	t := widget.NewLabel(title)
	s := widget.NewLabel(subtitle)
	s.Importance = widget.LowImportance
	return container.NewVBox(t, s)
}
