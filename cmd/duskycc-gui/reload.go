package main

import (
	"fmt"

	"fyne.io/fyne/v2"

	"github.com/duskydesk/duskycc/internal/cleanup"
	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/logger"
)

// loadDocument performs the startup load: no toast, no rollback, the
// error and empty states carry the outcome.
func (a *duskyApp) loadDocument() {
	cfg, loadErr := config.Load(a.configPath)
	if loadErr != nil {
		logger.Error("Config load failed", "path", a.configPath, "error", loadErr)
	}
	style := loadStyle(a.stylePath)
	a.state = documentState{cfg: cfg, loadErr: loadErr, checksum: cfg.Checksum(), style: style}
	fyne.CurrentApp().Settings().SetTheme(newDuskyTheme(style))
	a.applyDocument(a.prefs.LastPage)
}

// reload re-reads the config and style files off the UI thread and
// swaps the rendered pages. Must be entered on the UI thread; watcher
// events dispatch before calling. force skips the unchanged check,
// which watcher events rely on to coalesce editor write bursts.
func (a *duskyApp) reload(force bool) {
	if !a.reloading.CompareAndSwap(false, true) {
		return
	}
	restore := a.currentIdx
	prev := a.state

	go func() {
		withPanicGuard("shell.reload", func(any) {
			a.reloading.Store(false)
			a.safeDo("shell.reload.panic", func() {
				a.showToast("Reload Failed: Internal error", 3)
			})
		}, func() {
			cfg, loadErr := config.Load(a.configPath)
			style := loadStyle(a.stylePath)
			next := documentState{cfg: cfg, loadErr: loadErr, checksum: cfg.Checksum(), style: style}

			a.safeDo("shell.reload.apply", func() {
				defer a.reloading.Store(false)
				if skipReload(force, loadErr, a.state, next) {
					logger.Info("Config unchanged, reload skipped", "checksum", next.checksum)
					return
				}
				a.applyReload(next, prev, restore)
			})
		})
	}()
}

// skipReload decides whether a reload outcome changes anything worth
// rebuilding for.
func skipReload(force bool, loadErr error, current, next documentState) bool {
	if force || loadErr != nil {
		return false
	}
	return next.checksum == current.checksum &&
		next.style.fingerprint() == current.style.fingerprint()
}

func (a *duskyApp) applyReload(next, prev documentState, restore int) {
	a.applyTheme(next.style)
	a.state = next
	if err := a.rebuildUI(restore); err != nil {
		logger.Error("UI rebuild failed, rolling back", "error", err)
		a.applyTheme(prev.style)
		a.state = documentState{cfg: prev.cfg, checksum: prev.checksum, style: prev.style}
		if rbErr := a.rebuildUI(restore); rbErr != nil {
			logger.Error("Rollback rebuild failed", "error", rbErr)
		}
		a.showToast("Reload Failed: UI rebuild error", 3)
		return
	}
	if next.loadErr != nil {
		a.showToast(configErrorToast(next.loadErr), 4)
		return
	}
	a.showToast("Configuration Reloaded 🚀", 2)
}

// rebuildUI rebuilds the page stack. A panic from a corrupt document
// shape surfaces as an error so the caller can roll back; widgets a
// failed rebuild already produced are abandoned with their timers
// drained by the next applyDocument pass.
func (a *duskyApp) rebuildUI(restore int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rebuild panic: %v", r)
		}
	}()
	a.applyDocument(restore)
	return nil
}

func (a *duskyApp) applyTheme(spec styleSpec) {
	if spec.fingerprint() == a.state.style.fingerprint() {
		return
	}
	fyne.CurrentApp().Settings().SetTheme(newDuskyTheme(spec))
}

func configErrorToast(err error) string {
	msg := err.Error()
	clipped := clipGraphemes(msg, 50)
	if clipped != msg {
		clipped += "..."
	}
	return "Config Error: " + clipped
}

// startWatcher arms the file watcher feeding the reload path. Watch
// failures degrade to manual Ctrl+R reloads.
func (a *duskyApp) startWatcher() {
	w, err := config.NewWatcher(a.configPath, a.stylePath)
	if err != nil {
		logger.Warn("Config watcher unavailable", "error", err)
		return
	}
	a.watcher = w
	cleanup.Register("config-watcher", w.Close)
	a.safeGo("shell.watch", func() {
		for range w.Events() {
			a.safeDo("shell.watch.reload", func() { a.reload(false) })
		}
	})
}
