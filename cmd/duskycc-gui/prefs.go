package main

import (
	"fyne.io/fyne/v2"

	"github.com/duskydesk/duskycc/internal/logger"
)

type windowPrefs struct {
	Width    int
	Height   int
	LastPage int
}

const (
	defaultWindowWidth  = 1180
	defaultWindowHeight = 780
	minWindowWidth      = 640
	minWindowHeight     = 480
	maxWindowWidth      = 7680
	maxWindowHeight     = 4320
)

func (a *duskyApp) loadPrefs() {
	prefs := fyne.CurrentApp().Preferences()

	a.prefs.Width = prefs.IntWithFallback("WindowWidth", defaultWindowWidth)
	if a.prefs.Width < minWindowWidth || a.prefs.Width > maxWindowWidth {
		logger.Warn("Window width reset", "requested", a.prefs.Width, "effective", defaultWindowWidth)
		a.prefs.Width = defaultWindowWidth
		prefs.SetInt("WindowWidth", a.prefs.Width)
	}
	a.prefs.Height = prefs.IntWithFallback("WindowHeight", defaultWindowHeight)
	if a.prefs.Height < minWindowHeight || a.prefs.Height > maxWindowHeight {
		logger.Warn("Window height reset", "requested", a.prefs.Height, "effective", defaultWindowHeight)
		a.prefs.Height = defaultWindowHeight
		prefs.SetInt("WindowHeight", a.prefs.Height)
	}
	a.prefs.LastPage = prefs.IntWithFallback("LastPage", 0)
	if a.prefs.LastPage < 0 {
		logger.Warn("Last page reset", "requested", a.prefs.LastPage)
		a.prefs.LastPage = 0
		prefs.SetInt("LastPage", a.prefs.LastPage)
	}
}

func (a *duskyApp) savePrefs() {
	if a.window != nil {
		size := a.window.Canvas().Size()
		if w := int(size.Width); w >= minWindowWidth && w <= maxWindowWidth {
			a.prefs.Width = w
		}
		if h := int(size.Height); h >= minWindowHeight && h <= maxWindowHeight {
			a.prefs.Height = h
		}
	}

	prefs := fyne.CurrentApp().Preferences()
	prefs.SetInt("WindowWidth", a.prefs.Width)
	prefs.SetInt("WindowHeight", a.prefs.Height)
	prefs.SetInt("LastPage", a.prefs.LastPage)
}
