package ui

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/duskydesk/duskycc/internal/command"
	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/logger"
	"github.com/duskydesk/duskycc/internal/poll"
)

// cardIconSize is the hero icon edge length on grid cards.
const cardIconSize = 42

// themeIcons maps freedesktop icon names onto the closest bundled
// theme resources. The mapping is lossy by nature; unmapped names get
// the terminal stand-in from IconResource.
var themeIcons = map[string]fyne.Resource{
	"utilities-terminal":          theme.ComputerIcon(),
	"computer":                    theme.ComputerIcon(),
	"video-display":               theme.ComputerIcon(),
	"preferences-desktop-display": theme.ComputerIcon(),
	"network-server":              theme.StorageIcon(),
	"drive-harddisk":              theme.StorageIcon(),
	"media-removable":             theme.StorageIcon(),

	"folder":                   theme.FolderIcon(),
	"folder-new":               theme.FolderNewIcon(),
	"folder-open":              theme.FolderOpenIcon(),
	"system-file-manager":      theme.FolderIcon(),
	"document-open":            theme.FolderOpenIcon(),
	"document-new":             theme.DocumentCreateIcon(),
	"document-save":            theme.DocumentSaveIcon(),
	"document-print":           theme.DocumentPrintIcon(),
	"document-send":            theme.MailSendIcon(),
	"document-open-recent":     theme.HistoryIcon(),
	"text-x-generic":           theme.FileTextIcon(),
	"x-office-document":        theme.FileTextIcon(),
	"image-x-generic":          theme.FileImageIcon(),
	"audio-x-generic":          theme.FileAudioIcon(),
	"video-x-generic":          theme.FileVideoIcon(),
	"application-x-executable": theme.FileApplicationIcon(),

	"system-search":     theme.SearchIcon(),
	"edit-find":         theme.SearchIcon(),
	"edit-find-replace": theme.SearchReplaceIcon(),
	"edit-clear":        theme.ContentClearIcon(),
	"edit-clear-all":    theme.ContentClearIcon(),
	"edit-copy":         theme.ContentCopyIcon(),
	"edit-cut":          theme.ContentCutIcon(),
	"edit-paste":        theme.ContentPasteIcon(),
	"edit-delete":       theme.DeleteIcon(),
	"edit-undo":         theme.ContentUndoIcon(),
	"edit-redo":         theme.ContentRedoIcon(),
	"user-trash":        theme.DeleteIcon(),
	"user-trash-full":   theme.DeleteIcon(),
	"list-add":          theme.ContentAddIcon(),
	"list-remove":       theme.ContentRemoveIcon(),

	"user-home":       theme.HomeIcon(),
	"go-home":         theme.HomeIcon(),
	"go-next":         theme.NavigateNextIcon(),
	"go-previous":     theme.NavigateBackIcon(),
	"go-up":           theme.MoveUpIcon(),
	"go-down":         theme.MoveDownIcon(),
	"pan-start":       theme.NavigateBackIcon(),
	"pan-end":         theme.NavigateNextIcon(),
	"pan-down":        theme.MenuDropDownIcon(),
	"pan-up":          theme.MenuDropUpIcon(),
	"open-menu":       theme.MenuIcon(),
	"view-more":       theme.MoreVerticalIcon(),
	"view-grid":       theme.GridIcon(),
	"view-list":       theme.ListIcon(),
	"view-refresh":    theme.ViewRefreshIcon(),
	"view-fullscreen": theme.ViewFullScreenIcon(),
	"view-restore":    theme.ViewRestoreIcon(),
	"zoom-in":         theme.ZoomInIcon(),
	"zoom-out":        theme.ZoomOutIcon(),
	"zoom-fit-best":   theme.ZoomFitIcon(),
	"zoom-original":   theme.ZoomFitIcon(),

	"dialog-information": theme.InfoIcon(),
	"dialog-question":    theme.QuestionIcon(),
	"dialog-warning":     theme.WarningIcon(),
	"dialog-error":       theme.ErrorIcon(),
	"dialog-password":    theme.VisibilityOffIcon(),
	"emblem-ok":          theme.ConfirmIcon(),
	"object-select":      theme.ConfirmIcon(),
	"process-stop":       theme.CancelIcon(),
	"window-close":       theme.WindowCloseIcon(),
	"help-about":         theme.InfoIcon(),
	"help-browser":       theme.HelpIcon(),
	"help-faq":           theme.HelpIcon(),
	"help-contents":      theme.HelpIcon(),

	"preferences-system":  theme.SettingsIcon(),
	"preferences-other":   theme.SettingsIcon(),
	"emblem-system":       theme.SettingsIcon(),
	"applications-system": theme.SettingsIcon(),
	"document-properties": theme.SettingsIcon(),
	"system-run":          theme.SettingsIcon(),
	"application-exit":    theme.LogoutIcon(),
	"system-log-out":      theme.LogoutIcon(),
	"system-shutdown":     theme.LogoutIcon(),
	"avatar-default":      theme.AccountIcon(),
	"system-users":        theme.AccountIcon(),
	"contact-new":         theme.AccountIcon(),

	"mail-send":         theme.MailSendIcon(),
	"mail-message-new":  theme.MailComposeIcon(),
	"mail-attachment":   theme.MailAttachmentIcon(),
	"mail-reply-sender": theme.MailReplyIcon(),
	"mail-reply-all":    theme.MailReplyAllIcon(),
	"mail-forward":      theme.MailForwardIcon(),

	"media-playback-start":      theme.MediaPlayIcon(),
	"media-playback-pause":      theme.MediaPauseIcon(),
	"media-playback-stop":       theme.MediaStopIcon(),
	"media-record":              theme.MediaRecordIcon(),
	"media-seek-forward":        theme.MediaFastForwardIcon(),
	"media-seek-backward":       theme.MediaFastRewindIcon(),
	"media-skip-forward":        theme.MediaSkipNextIcon(),
	"media-skip-backward":       theme.MediaSkipPreviousIcon(),
	"audio-volume-high":         theme.VolumeUpIcon(),
	"audio-volume-medium":       theme.VolumeUpIcon(),
	"audio-volume-low":          theme.VolumeDownIcon(),
	"audio-volume-muted":        theme.VolumeMuteIcon(),
	"multimedia-volume-control": theme.VolumeUpIcon(),
	"audio-headphones":          theme.MediaMusicIcon(),
	"emblem-music":              theme.MediaMusicIcon(),
	"emblem-photos":             theme.MediaPhotoIcon(),
	"emblem-videos":             theme.MediaVideoIcon(),
	"camera-photo":              theme.MediaPhotoIcon(),
	"camera-video":              theme.MediaVideoIcon(),
	"folder-download":           theme.DownloadIcon(),
	"emblem-downloads":          theme.DownloadIcon(),
	"network-receive":           theme.DownloadIcon(),
	"network-transmit":          theme.UploadIcon(),

	"applications-graphics":         theme.ColorPaletteIcon(),
	"color-select":                  theme.ColorPaletteIcon(),
	"preferences-desktop-theme":     theme.ColorPaletteIcon(),
	"preferences-desktop-wallpaper": theme.MediaPhotoIcon(),
	"appointment-soon":              theme.HistoryIcon(),
}

// IconResource resolves a freedesktop icon name to a theme resource.
// A "-symbolic" suffix is stripped first, matching how the names are
// written in configuration files.
func IconResource(name string) fyne.Resource {
	name = strings.TrimSuffix(strings.TrimSpace(name), "-symbolic")
	if res, ok := themeIcons[name]; ok {
		return res
	}
	return theme.ComputerIcon()
}

// staticIconResource resolves an icon without running anything: file
// icons load from disk, everything else maps its static name. A file
// that is missing or unreadable falls back to the name mapping.
func staticIconResource(ic config.Icon) fyne.Resource {
	if ic.Kind == config.IconFile && strings.TrimSpace(ic.Path) != "" {
		path := command.Expand(ic.Path)
		res, err := fyne.LoadResourceFromPath(path)
		if err == nil {
			return res
		}
		logger.Debug("Icon file not loadable, using name fallback", "path", path, "error", err)
	}
	return IconResource(ic.StaticName())
}

// newRowIcon builds a row's prefix icon and, for dynamic icons, arms
// the refresh loop on the row's guard.
func newRowIcon(ctx *Context, r *Row, ic config.Icon) fyne.CanvasObject {
	img := widget.NewIcon(staticIconResource(ic))
	if ic.Dynamic() {
		startIconLoop(ctx, r, ic, img.SetResource)
	}
	return img
}

// startIconLoop arms the refresh loop for a dynamic icon. The shown
// name is tracked so unchanged command output skips the apply.
func startIconLoop(ctx *Context, r *Row, ic config.Icon, apply func(fyne.Resource)) {
	current := ic.StaticName()
	view := &iconView{
		visible: ctx.visible(),
		current: func() string { return current },
		apply: func(name string) {
			current = name
			apply(IconResource(name))
		},
	}
	poll.NewIconLoop(poll.IconConfig{
		Guard:    &r.guard,
		Pool:     ctx.Pool,
		Target:   view,
		Command:  ic.Command,
		Interval: time.Duration(ic.Interval) * time.Second,
		Sched:    ctx.Sched,
		Dispatch: ctx.Dispatch,
		Capture:  ctx.Capture,
	}).Start()
}

// iconView adapts an icon widget to the refresh loop's target. The
// loop only calls ApplyIcon on the UI thread.
type iconView struct {
	visible func() bool
	current func() string
	apply   func(string)
}

func (v *iconView) Mapped() bool          { return v.visible() }
func (v *iconView) CurrentIcon() string   { return v.current() }
func (v *iconView) ApplyIcon(name string) { v.apply(name) }
