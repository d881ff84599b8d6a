package main

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/cleanup"
	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/lifecycle"
	"github.com/duskydesk/duskycc/internal/logger"
	"github.com/duskydesk/duskycc/internal/poll"
	"github.com/duskydesk/duskycc/internal/settings"
	"github.com/duskydesk/duskycc/internal/tasks"
	"github.com/duskydesk/duskycc/internal/ui"
)

const (
	appID    = "com.duskydesk.duskycc"
	appTitle = "Dusky Control Center"

	pagePrefix   = "page-"
	searchPageID = "search-results"
	errorPageID  = "error-state"
	emptyPageID  = "empty-state"

	sidebarMinWidth = 220
	sidebarMaxWidth = 260
	sidebarFraction = 0.25

	poolWorkers = 4
)

// documentState is the loaded configuration the shell renders: the
// parsed document, the validation error if it had one, the checksum
// reloads compare against, and the style file content.
type documentState struct {
	cfg      *config.Config
	loadErr  error
	checksum string
	style    styleSpec
}

// pageCursor tracks the visible stack page. Row visibility closures
// read it from poll timer goroutines, so access is locked.
type pageCursor struct {
	mu sync.Mutex
	id string
}

func (c *pageCursor) set(id string) {
	c.mu.Lock()
	c.id = id
	c.mu.Unlock()
}

func (c *pageCursor) get() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

type duskyApp struct {
	window fyne.Window
	store  *settings.Store
	pool   poll.Submitter
	sched  poll.Scheduler
	toasts *toaster

	configPath string
	stylePath  string

	state documentState
	prefs windowPrefs

	split        *container.Split
	sidebar      *widget.List
	searchBar    *searchEntry
	searchActive bool

	content    *fyne.Container
	stackIDs   []string
	cursor     pageCursor
	hidden     atomic.Bool
	pages      []*shellPage
	currentIdx int

	searchView   fyne.CanvasObject
	errorView    fyne.CanvasObject
	emptyView    fyne.CanvasObject
	errorLabel   *widget.Label
	resultsTitle *widget.Label
	resultsBox   *fyne.Container
	resultRows   []*ui.Row

	lastVisiblePage string
	searchTimer     lifecycle.Handle

	reloading atomic.Bool
	watcher   *config.Watcher

	profilesWin     fyne.Window
	aboutWin        fyne.Window
	panicNoticeOnce sync.Once
}

func newDuskyApp(w fyne.Window) *duskyApp {
	pool := tasks.NewPool(poolWorkers)
	a := &duskyApp{
		window:     w,
		store:      settings.NewStore(settings.DefaultDir()),
		pool:       pool,
		sched:      poll.TimerScheduler{},
		configPath: config.DefaultPath(),
		stylePath:  config.DefaultStylePath(),
	}
	a.toasts = newToaster(w.Canvas())
	cleanup.Register("task-pool", func() error {
		pool.Shutdown()
		return nil
	})
	return a
}

// shellPage is one sidebar entry's content: a stack of navigation
// levels, level 0 being the page itself and deeper levels pushed
// subpages.
type shellPage struct {
	app    *duskyApp
	id     string
	cfgID  string
	title  string
	root   *fyne.Container
	levels []*pageLevel
	depth  atomic.Int32
}

type pageLevel struct {
	view fyne.CanvasObject
	rows []*ui.Row
}

func (p *shellPage) push(title string, layout []config.Section) {
	if strings.TrimSpace(title) == "" {
		title = "Subpage"
	}
	level := len(p.levels)
	ctx := p.app.rowContext(p, level)
	body, rows := ui.BuildLayout(ctx, layout)

	back := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), p.pop)
	heading := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	view := container.NewBorder(
		container.NewHBox(back, heading), nil, nil, nil,
		container.NewVScroll(container.NewPadded(body)),
	)

	for _, lvl := range p.levels {
		lvl.view.Hide()
	}
	p.levels = append(p.levels, &pageLevel{view: view, rows: rows})
	p.depth.Store(int32(len(p.levels)))
	p.root.Add(view)
	p.root.Refresh()
}

func (p *shellPage) pop() {
	if len(p.levels) <= 1 {
		return
	}
	top := p.levels[len(p.levels)-1]
	p.levels = p.levels[:len(p.levels)-1]
	p.depth.Store(int32(len(p.levels)))
	ui.DestroyRows(top.rows)
	p.root.Remove(top.view)
	p.levels[len(p.levels)-1].view.Show()
	p.root.Refresh()
}

func (p *shellPage) destroy() {
	for _, lvl := range p.levels {
		ui.DestroyRows(lvl.rows)
	}
	p.levels = nil
	p.depth.Store(0)
}

// rowContext builds the service surface rows on one navigation level
// use. The visibility closure is read by poll loops off the UI thread.
func (a *duskyApp) rowContext(p *shellPage, levelIdx int) *ui.Context {
	level := int32(levelIdx + 1)
	return &ui.Context{
		Store:       a.store,
		Pool:        a.pool,
		Sched:       a.sched,
		Dispatch:    func(fn func()) { a.safeDo("ui.update", fn) },
		Toast:       a.showToast,
		Redirect:    a.redirect,
		PushSubpage: p.push,
		Visible: func() bool {
			return !a.hidden.Load() && a.cursor.get() == p.id && p.depth.Load() == level
		},
	}
}

func (a *duskyApp) searchContext() *ui.Context {
	return &ui.Context{
		Store:    a.store,
		Pool:     a.pool,
		Sched:    a.sched,
		Dispatch: func(fn func()) { a.safeDo("ui.update", fn) },
		Toast:    a.showToast,
		Redirect: a.redirect,
		Visible: func() bool {
			return !a.hidden.Load() && a.cursor.get() == searchPageID
		},
	}
}

func (a *duskyApp) showToast(message string, seconds int) {
	if a.toasts == nil {
		return
	}
	a.toasts.Show(message, seconds)
}

func (a *duskyApp) setupUI() {
	a.buildStaticViews()
	sidebarArea := a.buildSidebar()

	a.split = container.NewHSplit(sidebarArea, a.content)
	a.split.Offset = sidebarOffset(float32(a.prefs.Width))
	a.window.SetContent(a.split)

	a.installShortcuts()
}

func (a *duskyApp) buildStaticViews() {
	a.content = container.NewStack()

	a.resultsTitle = widget.NewLabelWithStyle("Search Results", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.resultsBox = container.NewVBox()
	a.searchView = container.NewBorder(
		container.NewPadded(a.resultsTitle), nil, nil, nil,
		container.NewVScroll(container.NewPadded(a.resultsBox)),
	)

	a.errorLabel = widget.NewLabel("")
	a.errorLabel.Wrapping = fyne.TextWrapWord
	a.errorLabel.Alignment = fyne.TextAlignCenter
	a.errorView = statusView(
		ui.IconResource("dialog-error"),
		"Configuration Error",
		a.errorLabel,
		"Press Ctrl+R to reload after fixing the configuration.",
	)

	emptyBody := widget.NewLabel("The configuration file exists but contains no pages.")
	emptyBody.Alignment = fyne.TextAlignCenter
	a.emptyView = statusView(
		ui.IconResource("document-open"),
		"No Configuration Found",
		emptyBody,
		fmt.Sprintf("Add pages to %s and press Ctrl+R to reload.", config.FileName),
	)
}

func (a *duskyApp) buildSidebar() fyne.CanvasObject {
	a.sidebar = widget.NewList(
		func() int {
			if a.state.cfg == nil {
				return 0
			}
			return len(a.state.cfg.Pages)
		},
		func() fyne.CanvasObject {
			icon := widget.NewIcon(theme.ComputerIcon())
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, icon, nil, label)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if a.state.cfg == nil || id < 0 || id >= len(a.state.cfg.Pages) {
				return
			}
			page := &a.state.cfg.Pages[id]
			box, ok := obj.(*fyne.Container)
			if !ok {
				return
			}
			for _, child := range box.Objects {
				switch w := child.(type) {
				case *widget.Label:
					w.SetText(pageTitle(page))
				case *widget.Icon:
					w.SetResource(ui.IconResource(page.Icon))
				}
			}
		},
	)
	a.sidebar.OnSelected = func(id widget.ListItemID) {
		a.onPageSelected(id)
	}

	a.searchBar = newSearchEntry()
	a.searchBar.PlaceHolder = "Find setting..."
	a.searchBar.OnChanged = a.onSearchChanged
	a.searchBar.onEscape = a.deactivateSearch
	a.searchBar.Hide()

	header := container.NewBorder(nil, nil,
		widget.NewIcon(ui.IconResource("emblem-system")),
		container.NewHBox(a.searchToggleButton(), a.menuButton()),
		widget.NewLabelWithStyle("Dusky", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	sidebarBox := container.NewBorder(
		container.NewVBox(header, a.searchBar), nil, nil, nil,
		a.sidebar,
	)
	return container.NewStack(
		&minSizeBox{size: fyne.NewSize(sidebarMinWidth, 0)},
		sidebarBox,
	)
}

func (a *duskyApp) searchToggleButton() *widget.Button {
	btn := widget.NewButtonWithIcon("", ui.IconResource("system-search"), a.toggleSearch)
	btn.Importance = widget.LowImportance
	return btn
}

func (a *duskyApp) menuButton() *widget.Button {
	var btn *widget.Button
	btn = widget.NewButtonWithIcon("", theme.MoreVerticalIcon(), func() {
		menu := fyne.NewMenu("",
			fyne.NewMenuItem("Reload Configuration", func() { a.reload(true) }),
			fyne.NewMenuItem("Profiles...", a.showProfilesWindow),
			fyne.NewMenuItem("About", a.showAboutWindow),
		)
		pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(btn)
		pos.Y += btn.Size().Height
		widget.NewPopUpMenu(menu, a.window.Canvas()).ShowAtPosition(pos)
	})
	btn.Importance = widget.LowImportance
	return btn
}

func (a *duskyApp) installShortcuts() {
	canvas := a.window.Canvas()
	canvas.AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { a.reload(true) },
	)
	canvas.AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyF, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { a.activateSearch() },
	)
	canvas.AddShortcut(
		&desktop.CustomShortcut{KeyName: fyne.KeyQ, Modifier: fyne.KeyModifierControl},
		func(fyne.Shortcut) { a.closeToTray() },
	)
	canvas.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape && a.searchActive {
			a.deactivateSearch()
		}
	})
}

// applyDocument tears the rendered pages down and rebuilds them from
// the current state, then selects the page at restore when it still
// exists.
func (a *duskyApp) applyDocument(restore int) {
	for _, p := range a.pages {
		p.destroy()
	}
	a.pages = nil
	a.clearSearchResults()

	a.content.RemoveAll()
	a.stackIDs = a.stackIDs[:0]
	a.addStackView(searchPageID, a.searchView)
	a.addStackView(errorPageID, a.errorView)
	a.addStackView(emptyPageID, a.emptyView)

	if a.state.loadErr != nil {
		a.errorLabel.SetText(a.state.loadErr.Error())
		a.sidebar.Refresh()
		a.showPageID(errorPageID)
		return
	}
	pages := a.state.cfg.Pages
	if len(pages) == 0 {
		a.sidebar.Refresh()
		a.showPageID(emptyPageID)
		return
	}

	for idx := range pages {
		p := a.newShellPage(idx, &pages[idx])
		a.pages = append(a.pages, p)
		a.addStackView(p.id, p.root)
	}
	a.sidebar.Refresh()
	if restore < 0 || restore >= len(a.pages) {
		restore = 0
	}
	a.sidebar.Select(restore)
	a.onPageSelected(restore)
}

func (a *duskyApp) addStackView(id string, view fyne.CanvasObject) {
	view.Hide()
	a.content.Add(view)
	a.stackIDs = append(a.stackIDs, id)
}

func (a *duskyApp) newShellPage(idx int, page *config.Page) *shellPage {
	p := &shellPage{
		app:   a,
		id:    fmt.Sprintf("%s%d", pagePrefix, idx),
		cfgID: page.ID,
		title: pageTitle(page),
		root:  container.NewStack(),
	}
	ctx := a.rowContext(p, 0)
	body, rows := ui.BuildLayout(ctx, page.Layout)
	heading := widget.NewLabelWithStyle(p.title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	view := container.NewBorder(
		container.NewPadded(heading), nil, nil, nil,
		container.NewVScroll(container.NewPadded(body)),
	)
	p.levels = append(p.levels, &pageLevel{view: view, rows: rows})
	p.depth.Store(1)
	p.root.Add(view)
	return p
}

func (a *duskyApp) showPageID(id string) {
	for i, obj := range a.content.Objects {
		if i < len(a.stackIDs) && a.stackIDs[i] == id {
			obj.Show()
		} else {
			obj.Hide()
		}
	}
	a.cursor.set(id)
	a.content.Refresh()
}

func (a *duskyApp) onPageSelected(idx int) {
	if idx < 0 || idx >= len(a.pages) {
		return
	}
	a.currentIdx = idx
	a.showPageID(a.pages[idx].id)
	a.prefs.LastPage = idx
	fyne.CurrentApp().Preferences().SetInt("LastPage", idx)
}

// redirect selects the sidebar entry whose configured id matches.
// Blank targets and unknown ids are ignored.
func (a *duskyApp) redirect(pageID string) {
	if pageID == "" {
		return
	}
	for i, p := range a.pages {
		if p.cfgID == pageID {
			a.sidebar.Select(i)
			a.onPageSelected(i)
			return
		}
	}
	logger.Warn("Redirect target not found", "page", pageID)
}

func (a *duskyApp) closeToTray() {
	a.hidden.Store(true)
	a.savePrefs()
	a.window.Hide()
}

func pageTitle(p *config.Page) string {
	if strings.TrimSpace(p.Title) == "" {
		return "Untitled"
	}
	return p.Title
}

// sidebarOffset converts the clamped sidebar width into the fraction
// the split container expects.
func sidebarOffset(totalWidth float32) float64 {
	if totalWidth <= 0 {
		return 0
	}
	w := float32(sidebarFraction) * totalWidth
	if w < sidebarMinWidth {
		w = sidebarMinWidth
	}
	if w > sidebarMaxWidth {
		w = sidebarMaxWidth
	}
	if w > totalWidth {
		w = totalWidth
	}
	return float64(w / totalWidth)
}

func statusView(icon fyne.Resource, title string, body fyne.CanvasObject, hint string) fyne.CanvasObject {
	heading := widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	hintLabel := widget.NewLabelWithStyle(hint, fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	hintLabel.Importance = widget.LowImportance
	return container.NewCenter(container.NewVBox(
		container.NewCenter(widget.NewIcon(icon)),
		heading,
		body,
		hintLabel,
	))
}
