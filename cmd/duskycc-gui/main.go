package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/duskydesk/duskycc/internal/cleanup"
	"github.com/duskydesk/duskycc/internal/logger"
)

func main() {
	logger.Init(logger.LevelInfo, nil)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			os.Exit(1)
		}
	}()

	myApp := app.NewWithID(appID)
	myApp.SetIcon(appIcon())

	w := myApp.NewWindow(appTitle)
	w.SetIcon(appIcon())
	w.SetMaster()

	da := newDuskyApp(w)
	da.loadPrefs()
	w.Resize(fyne.NewSize(float32(da.prefs.Width), float32(da.prefs.Height)))
	w.CenterOnScreen()

	da.setupUI()
	da.loadDocument()
	da.startWatcher()

	// The control center is a session app: closing the window hides it
	// and leaves background state intact.
	w.SetCloseIntercept(da.closeToTray)

	w.ShowAndRun()

	da.savePrefs()
	if err := cleanup.RunAll(); err != nil {
		logger.Error("Cleanup failed", "error", err)
	}
}
