package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/licenses"
	"github.com/duskydesk/duskycc/internal/sysinfo"
	"github.com/duskydesk/duskycc/internal/version"
)

const projectURL = "https://github.com/duskydesk/duskycc"

func (a *duskyApp) showAboutWindow() {
	if a.aboutWin != nil {
		a.aboutWin.RequestFocus()
		return
	}

	w := fyne.CurrentApp().NewWindow("About")
	a.aboutWin = w
	w.SetOnClosed(func() { a.aboutWin = nil })

	aboutSection := container.NewVBox(
		widget.NewLabelWithStyle(appTitle, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Version", widget.NewLabel(version.Version)),
			widget.NewFormItem("Commit", widget.NewLabel(version.Commit)),
			widget.NewFormItem("Build", widget.NewLabel(version.BuildDate)),
			widget.NewFormItem("Links", buildLinksRow()),
		),
	)

	systemSection := container.NewVBox(
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		buildSystemForm(a),
	)

	viewLicenseBtn := widget.NewButton("View LICENSE", func() {
		text := licenses.LicenseText()
		if strings.TrimSpace(text) == "" {
			dialog.ShowError(fmt.Errorf("embedded LICENSE is empty"), w)
			return
		}
		showTextDialog(w, "LICENSE", text)
	})
	viewNoticesBtn := widget.NewButton("View Third-Party Notices", func() {
		text := licenses.NoticesText()
		if strings.TrimSpace(text) == "" {
			dialog.ShowError(fmt.Errorf("embedded THIRD_PARTY_NOTICES is empty"), w)
			return
		}
		showTextDialog(w, "Third-Party Notices", text)
	})

	licensesSection := container.NewVBox(
		widget.NewLabelWithStyle("Licenses", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(viewLicenseBtn, viewNoticesBtn),
	)

	w.SetContent(container.NewPadded(container.NewVScroll(container.NewVBox(
		aboutSection,
		widget.NewSeparator(),
		systemSection,
		widget.NewSeparator(),
		licensesSection,
	))))
	w.Resize(fyne.NewSize(520, 460))
	w.CenterOnScreen()
	w.Show()
}

// buildSystemForm probes lazily: the labels fill in as the pool
// delivers values, so a slow probe never blocks the window opening.
func buildSystemForm(a *duskyApp) fyne.CanvasObject {
	items := []struct {
		label string
		key   string
	}{
		{"Kernel", "kernel_version"},
		{"CPU", "cpu_model"},
		{"Memory", "memory_total"},
	}
	form := widget.NewForm()
	for _, it := range items {
		value := widget.NewLabel("...")
		form.Append(it.label, value)
		key := it.key
		a.pool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			text := sysinfo.Value(ctx, key)
			a.safeDo("about.system", func() { value.SetText(text) })
		})
	}
	return form
}

func buildLinksRow() fyne.CanvasObject {
	return container.NewHBox(newHyperlink("GitHub", projectURL))
}

func newHyperlink(label, raw string) *widget.Hyperlink {
	u, _ := url.Parse(raw)
	return widget.NewHyperlink(label, u)
}

// showTextDialog presents read-only text; edits are reverted on the
// spot since Entry has no read-only mode that still allows selection.
func showTextDialog(w fyne.Window, title, text string) {
	entry := widget.NewMultiLineEntry()
	entry.SetText(text)
	entry.Wrapping = fyne.TextWrapWord
	lock := false
	entry.OnChanged = func(s string) {
		if lock || s == text {
			return
		}
		lock = true
		entry.SetText(text)
		lock = false
	}
	scroll := container.NewScroll(entry)
	scroll.SetMinSize(fyne.NewSize(720, 520))
	d := dialog.NewCustom(title, "Close", scroll, w)
	d.Resize(fyne.NewSize(760, 560))
	d.Show()
}
