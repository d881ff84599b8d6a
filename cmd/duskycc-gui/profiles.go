package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/logger"
	"github.com/duskydesk/duskycc/internal/settings"
)

// showProfilesWindow opens the profile manager. The window is a
// singleton; a second request focuses the open one.
func (a *duskyApp) showProfilesWindow() {
	if a.profilesWin != nil {
		a.profilesWin.RequestFocus()
		return
	}

	w := fyne.CurrentApp().NewWindow("Settings Profiles")
	a.profilesWin = w
	w.SetOnClosed(func() { a.profilesWin = nil })

	dir := settings.DefaultProfileDir()
	var names []string
	selected := widget.ListItemID(-1)

	list := widget.NewList(
		func() int { return len(names) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= 0 && id < len(names) {
				obj.(*widget.Label).SetText(names[id])
			}
		},
	)
	list.OnSelected = func(id widget.ListItemID) { selected = id }
	list.OnUnselected = func(widget.ListItemID) { selected = -1 }

	refresh := func() {
		found, err := settings.ListProfiles(dir)
		if err != nil {
			logger.Error("Failed to list profiles", "dir", dir, "error", err)
			dialog.ShowError(err, w)
			return
		}
		names = found
		selected = -1
		list.UnselectAll()
		list.Refresh()
	}
	refresh()

	selectedName := func() (string, bool) {
		if selected < 0 || int(selected) >= len(names) {
			return "", false
		}
		return names[selected], true
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Profile name")

	exportBtn := widget.NewButtonWithIcon("Export Current", theme.DocumentSaveIcon(), func() {
		name := strings.TrimSpace(nameEntry.Text)
		if name == "" {
			dialog.ShowError(fmt.Errorf("profile name is empty"), w)
			return
		}
		path, err := a.store.ExportProfile(dir, name)
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		logger.Info("Profile exported", "path", path)
		nameEntry.SetText("")
		refresh()
		dialog.ShowInformation("Exported", "Current settings were exported to "+path, w)
	})

	applyBtn := widget.NewButtonWithIcon("Apply Selected", theme.ConfirmIcon(), func() {
		name, ok := selectedName()
		if !ok {
			dialog.ShowInformation("No Selection", "Select a profile to apply.", w)
			return
		}
		dialog.ShowConfirm("Apply Profile",
			fmt.Sprintf("Overwrite current settings with profile %q?", name),
			func(ok bool) {
				if !ok {
					return
				}
				p, err := a.store.ImportProfile(dir, name)
				if err != nil {
					dialog.ShowError(err, w)
					return
				}
				logger.Info("Profile applied", "name", p.Name, "settings", len(p.Settings))
				// Keyed rows read the store when built; rebuild so
				// they pick up the imported values.
				a.safeDo("profiles.rebuild", func() { a.applyDocument(a.currentIdx) })
				dialog.ShowInformation("Applied",
					fmt.Sprintf("Profile %q applied (%d settings).", p.Name, len(p.Settings)), w)
			}, w)
	})

	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		name, ok := selectedName()
		if !ok {
			dialog.ShowInformation("No Selection", "Select a profile to delete.", w)
			return
		}
		dialog.ShowConfirm("Delete Profile",
			fmt.Sprintf("Delete profile %q from disk?", name),
			func(ok bool) {
				if !ok {
					return
				}
				if err := settings.DeleteProfile(dir, name); err != nil {
					dialog.ShowError(err, w)
					return
				}
				refresh()
			}, w)
	})

	refreshBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), refresh)

	dirLabel := widget.NewLabel(dir)
	dirLabel.Importance = widget.LowImportance
	dirLabel.Truncation = fyne.TextTruncateEllipsis

	content := container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Profiles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			dirLabel,
		),
		container.NewVBox(
			widget.NewSeparator(),
			container.NewBorder(nil, nil, nil, exportBtn, nameEntry),
			container.NewHBox(applyBtn, deleteBtn, refreshBtn),
		),
		nil, nil,
		list,
	)

	w.SetContent(content)
	w.Resize(fyne.NewSize(420, 480))
	w.CenterOnScreen()
	w.Show()
}
