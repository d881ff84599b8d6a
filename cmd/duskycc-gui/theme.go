package main

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"gopkg.in/yaml.v3"

	"github.com/duskydesk/duskycc/internal/logger"
)

// styleSpec is the parsed dusky_style.yaml document. The file is
// optional; a zero spec renders with stock theme values.
type styleSpec struct {
	Colors map[string]string `yaml:"colors"`
	Sizes  struct {
		Text float32 `yaml:"text"`
	} `yaml:"sizes"`
}

const (
	minStyleTextSize = 8
	maxStyleTextSize = 48
)

var styleColorNames = map[string]fyne.ThemeColorName{
	"background": theme.ColorNameBackground,
	"foreground": theme.ColorNameForeground,
	"primary":    theme.ColorNamePrimary,
	"success":    theme.ColorNameSuccess,
	"warning":    theme.ColorNameWarning,
	"error":      theme.ColorNameError,
}

// loadStyle reads the style file. A missing file is normal, anything
// else that goes wrong keeps the defaults rather than blocking startup.
func loadStyle(path string) styleSpec {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("No style file found", "path", path)
		} else {
			logger.Warn("Style file unreadable", "path", path, "error", err)
		}
		return styleSpec{}
	}
	spec, err := parseStyle(data)
	if err != nil {
		logger.Warn("Style file malformed, keeping defaults", "path", path, "error", err)
		return styleSpec{}
	}
	return spec
}

func parseStyle(data []byte) (styleSpec, error) {
	var spec styleSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return styleSpec{}, err
	}
	return spec, nil
}

// fingerprint is a stable rendering of the spec used to decide whether
// a reload actually changed the theme.
func (s styleSpec) fingerprint() string {
	keys := make([]string, 0, len(s.Colors))
	for k := range s.Colors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.Colors[k])
		b.WriteByte(';')
	}
	fmt.Fprintf(&b, "text=%g", s.Sizes.Text)
	return b.String()
}

// duskyTheme overlays the style file's colors and text size on the
// stock theme.
type duskyTheme struct {
	base   fyne.Theme
	colors map[fyne.ThemeColorName]color.Color
	text   float32
}

var _ fyne.Theme = (*duskyTheme)(nil)

func newDuskyTheme(spec styleSpec) fyne.Theme {
	t := &duskyTheme{
		base:   theme.DefaultTheme(),
		colors: make(map[fyne.ThemeColorName]color.Color, len(spec.Colors)),
	}
	for name, value := range spec.Colors {
		cn, known := styleColorNames[strings.ToLower(strings.TrimSpace(name))]
		if !known {
			logger.Warn("Unknown style color", "name", name)
			continue
		}
		c, ok := parseHexColor(value)
		if !ok {
			logger.Warn("Invalid style color value", "name", name, "value", value)
			continue
		}
		t.colors[cn] = c
	}
	if size := spec.Sizes.Text; size != 0 {
		if size < minStyleTextSize || size > maxStyleTextSize {
			logger.Warn("Style text size out of range", "requested", size, "min", minStyleTextSize, "max", maxStyleTextSize)
		} else {
			t.text = size
		}
	}
	return t
}

func (t *duskyTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := t.colors[name]; ok {
		return c
	}
	return t.base.Color(name, variant)
}

func (t *duskyTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText && t.text > 0 {
		return t.text
	}
	return t.base.Size(name)
}

func (t *duskyTheme) Font(style fyne.TextStyle) fyne.Resource { return t.base.Font(style) }

func (t *duskyTheme) Icon(name fyne.ThemeIconName) fyne.Resource { return t.base.Icon(name) }

// parseHexColor accepts #rgb, #rrggbb and #rrggbbaa.
func parseHexColor(s string) (color.NRGBA, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, false
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String() + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, true
}
