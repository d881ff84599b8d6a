package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/theme"
)

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#1a1b26", color.NRGBA{R: 26, G: 27, B: 38, A: 255}, true},
		{"#abc", color.NRGBA{R: 170, G: 187, B: 204, A: 255}, true},
		{"#11223344", color.NRGBA{R: 17, G: 34, B: 51, A: 68}, true},
		{" #FFF ", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, true},
		{"1a1b26", color.NRGBA{}, false},
		{"#12345", color.NRGBA{}, false},
		{"#xyzxyz", color.NRGBA{}, false},
		{"", color.NRGBA{}, false},
	}
	for _, tc := range cases {
		got, ok := parseHexColor(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseHexColor(%q) = %v, %v, want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseStyle(t *testing.T) {
	spec, err := parseStyle([]byte("colors:\n  background: \"#101020\"\nsizes:\n  text: 16\n"))
	if err != nil {
		t.Fatalf("parseStyle returned error: %v", err)
	}
	if spec.Colors["background"] != "#101020" {
		t.Fatalf("background = %q, want #101020", spec.Colors["background"])
	}
	if spec.Sizes.Text != 16 {
		t.Fatalf("text size = %v, want 16", spec.Sizes.Text)
	}
}

func TestParseStyleMalformed(t *testing.T) {
	if _, err := parseStyle([]byte("colors:\n  - one\n  - two\n")); err == nil {
		t.Fatalf("expected error for sequence under colors")
	}
}

func TestLoadStyleMissingFileKeepsDefaults(t *testing.T) {
	spec := loadStyle(filepath.Join(t.TempDir(), "missing.yaml"))
	if len(spec.Colors) != 0 || spec.Sizes.Text != 0 {
		t.Fatalf("expected zero spec, got %+v", spec)
	}
}

func TestLoadStyleMalformedKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dusky_style.yaml")
	if err := os.WriteFile(path, []byte("colors: [oops\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	spec := loadStyle(path)
	if len(spec.Colors) != 0 || spec.Sizes.Text != 0 {
		t.Fatalf("expected zero spec for malformed file, got %+v", spec)
	}
}

func TestDuskyThemeOverrides(t *testing.T) {
	spec := styleSpec{
		Colors: map[string]string{
			"background": "#102030",
			"sparkle":    "#ffffff",
			"primary":    "not-a-color",
		},
	}
	spec.Sizes.Text = 21

	th := newDuskyTheme(spec)

	got := th.Color(theme.ColorNameBackground, theme.VariantDark)
	if got != (color.NRGBA{R: 16, G: 32, B: 48, A: 255}) {
		t.Fatalf("background = %v, want overridden color", got)
	}
	def := theme.DefaultTheme().Color(theme.ColorNamePrimary, theme.VariantDark)
	if th.Color(theme.ColorNamePrimary, theme.VariantDark) != def {
		t.Fatalf("invalid primary value should keep the default color")
	}
	if size := th.Size(theme.SizeNameText); size != 21 {
		t.Fatalf("text size = %v, want 21", size)
	}
	if pad := th.Size(theme.SizeNamePadding); pad != theme.DefaultTheme().Size(theme.SizeNamePadding) {
		t.Fatalf("padding should come from the base theme")
	}
}

func TestDuskyThemeTextSizeOutOfRange(t *testing.T) {
	var spec styleSpec
	spec.Sizes.Text = 300
	th := newDuskyTheme(spec)
	if got := th.Size(theme.SizeNameText); got != theme.DefaultTheme().Size(theme.SizeNameText) {
		t.Fatalf("out of range text size should keep the default, got %v", got)
	}
}

func TestStyleFingerprint(t *testing.T) {
	a := styleSpec{Colors: map[string]string{"background": "#000000", "primary": "#ffffff"}}
	b := styleSpec{Colors: map[string]string{"primary": "#ffffff", "background": "#000000"}}
	if a.fingerprint() != b.fingerprint() {
		t.Fatalf("fingerprint should not depend on map order")
	}
	c := a
	c.Sizes.Text = 14
	if a.fingerprint() == c.fingerprint() {
		t.Fatalf("fingerprint should change with text size")
	}
}
