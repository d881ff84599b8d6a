package config

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strconv"
)

// Checksum returns a stable SHA-256 checksum of the whole tree. Reload
// compares it to decide whether a rewritten file actually changed
// anything before tearing down and rebuilding the UI.
func (c *Config) Checksum() string {
	h := sha256.New()
	io.WriteString(h, "config_v1\n")
	if c != nil {
		io.WriteString(h, strconv.Itoa(len(c.Pages)))
		io.WriteString(h, "\n")
		for _, p := range c.Pages {
			writeField(h, p.ID)
			writeField(h, p.Title)
			writeField(h, p.Icon)
			writeSections(h, p.Layout)
		}
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil))
}

func writeSections(w io.Writer, sections []Section) {
	io.WriteString(w, strconv.Itoa(len(sections)))
	io.WriteString(w, "\n")
	for _, s := range sections {
		io.WriteString(w, s.Kind.String())
		writeBool(w, s.Implicit)
		writeProperties(w, s.Properties)
		writeItems(w, s.Items)
	}
}

func writeItems(w io.Writer, items []Item) {
	io.WriteString(w, strconv.Itoa(len(items)))
	io.WriteString(w, "\n")
	for _, it := range items {
		writeField(w, it.RawKind)
		writeProperties(w, it.Properties)
		writeAction(w, it.OnPress)
		writeAction(w, it.OnToggle)
		writeAction(w, it.OnChange)
		writeAction(w, it.OnAction)
		writeValue(w, it.Value)
		writeSections(w, it.Layout)
		writeItems(w, it.Items)
	}
}

func writeProperties(w io.Writer, p Properties) {
	writeField(w, p.Title)
	writeField(w, p.Description)
	writeIcon(w, p.Icon)
	writeField(w, p.Message)
	writeField(w, p.Style)
	writeField(w, p.ButtonText)
	writeField(w, p.Placeholder)
	io.WriteString(w, strconv.Itoa(p.Interval))
	writeBool(w, p.IntervalSet)
	writeField(w, p.Key)
	writeBool(w, p.KeyInverse)
	writeBool(w, p.SaveAsInt)
	writeBool(w, p.Secret)
	writeField(w, p.StateCommand)
	writeFloat(w, p.Min)
	writeFloat(w, p.Max)
	writeFloat(w, p.Step)
	writeFloat(w, p.Default)
	writeBool(w, p.Debounce)
	io.WriteString(w, strconv.Itoa(len(p.Options)))
	io.WriteString(w, "\n")
	for _, o := range p.Options {
		writeField(w, o)
	}
}

func writeIcon(w io.Writer, i Icon) {
	io.WriteString(w, strconv.Itoa(int(i.Kind)))
	writeField(w, i.Name)
	writeField(w, i.Path)
	writeField(w, i.Command)
	io.WriteString(w, strconv.Itoa(i.Interval))
	io.WriteString(w, "\n")
}

func writeAction(w io.Writer, a *Action) {
	if a == nil {
		io.WriteString(w, "-\n")
		return
	}
	io.WriteString(w, strconv.Itoa(int(a.Kind)))
	writeField(w, a.Command)
	writeBool(w, a.Terminal)
	writeField(w, a.Page)
	writeAction(w, a.Enabled)
	writeAction(w, a.Disabled)
}

func writeValue(w io.Writer, v *Value) {
	if v == nil {
		io.WriteString(w, "-\n")
		return
	}
	io.WriteString(w, strconv.Itoa(int(v.Kind)))
	writeField(w, v.Text)
	writeField(w, v.Command)
	writeField(w, v.Path)
	writeField(w, v.Key)
}

func writeField(w io.Writer, value string) {
	io.WriteString(w, strconv.Itoa(len(value)))
	io.WriteString(w, ":")
	io.WriteString(w, value)
	io.WriteString(w, "\n")
}

func writeBool(w io.Writer, b bool) {
	if b {
		io.WriteString(w, "1")
	} else {
		io.WriteString(w, "0")
	}
}

func writeFloat(w io.Writer, f float64) {
	io.WriteString(w, strconv.FormatFloat(f, 'g', -1, 64))
	io.WriteString(w, "\n")
}
