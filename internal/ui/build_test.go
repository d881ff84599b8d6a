package ui

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/duskydesk/duskycc/internal/config"
	"github.com/duskydesk/duskycc/internal/settings"
)

func TestTruncateGraphemes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "ok", 5, "ok"},
		{"exactly at limit", "hello", 5, "hello"},
		{"over limit", "hello world", 5, "hello"},
		{"empty", "", 3, ""},
		{"combining marks stay whole", strings.Repeat("é", 4), 2, strings.Repeat("é", 2)},
	}
	for _, tc := range cases {
		if got := truncateGraphemes(tc.in, tc.n); got != tc.want {
			t.Errorf("%s: truncateGraphemes(%q, %d) = %q, want %q", tc.name, tc.in, tc.n, got, tc.want)
		}
	}
}

func TestErrorRowTruncatesDetail(t *testing.T) {
	test.NewApp()
	row := errorRow("Audio", strings.Repeat("x", errorTextLimit+20))

	root := row.Object()
	if !hasLabel(root, "⚠ Audio") {
		t.Errorf("error row labels = %v, want the flagged title", labelTexts(root))
	}
	want := "Build error: " + strings.Repeat("x", errorTextLimit)
	if !hasLabel(root, want) {
		t.Errorf("error row does not truncate the detail to %d characters", errorTextLimit)
	}
}

func TestBuildItemUnknownKindDefaultsToButton(t *testing.T) {
	test.NewApp()
	item := &config.Item{
		Kind:       config.KindUnknown,
		RawKind:    "spinner",
		Properties: config.Properties{Title: "Mystery"},
	}

	row := BuildItem(&Context{}, item)
	findButton(t, row.Object(), "Run")
}

func TestBuildItemCardKindsRenderAsRowsInList(t *testing.T) {
	test.NewApp()
	ctx := &Context{Pool: &stubPool{}, Sched: &stubSched{}}

	card := BuildItem(ctx, &config.Item{
		Kind:       config.KindGridCard,
		Properties: config.Properties{Title: "Screenshot"},
	})
	findButton(t, card.Object(), "Run")

	toggle := BuildItem(ctx, &config.Item{
		Kind:       config.KindToggleCard,
		Properties: config.Properties{Title: "Dark Mode"},
	})
	findCheck(t, toggle.Object())
}

func TestBuildItemWarningBanner(t *testing.T) {
	test.NewApp()
	item := &config.Item{
		Kind:       config.KindWarningBanner,
		Properties: config.Properties{Title: "Battery", Message: "Charge below 15%"},
	}

	row := BuildItem(&Context{}, item)
	for _, want := range []string{"Battery", "Charge below 15%"} {
		if !hasLabel(row.Object(), want) {
			t.Errorf("banner labels = %v, want %q", labelTexts(row.Object()), want)
		}
	}

	bare := BuildItem(&Context{}, &config.Item{
		Kind:       config.KindWarningBanner,
		Properties: config.Properties{Message: "m"},
	})
	if !hasLabel(bare.Object(), "Warning") {
		t.Error("untitled banner should fall back to the Warning heading")
	}
}

func TestBuildExpanderSkipsUnknownChildren(t *testing.T) {
	test.NewApp()
	ctx := &Context{Pool: &stubPool{}, Sched: &stubSched{}}
	item := &config.Item{
		Kind:       config.KindExpander,
		Properties: config.Properties{Title: "Advanced"},
		Items: []config.Item{
			{Kind: config.KindButton, Properties: config.Properties{Title: "Rebuild"}},
			{Kind: config.KindUnknown, RawKind: "gauge"},
			{
				Kind:       config.KindLabel,
				Properties: config.Properties{Title: "Kernel"},
				Value:      &config.Value{Kind: config.ValueStatic, Text: "6.18"},
			},
		},
	}

	row := BuildItem(ctx, item)
	if got := len(row.children); got != 2 {
		t.Fatalf("expander built %d children, want 2 with the unknown one skipped", got)
	}
}

func TestBuildLayoutBuildsListAndGridSections(t *testing.T) {
	test.NewApp()
	sched := &stubSched{}
	ctx := &Context{
		Store: settings.NewStore(t.TempDir()),
		Pool:  &stubPool{},
		Sched: sched,
	}
	layout := []config.Section{
		{
			Kind:       config.SectionList,
			Properties: config.Properties{Title: "Network", Description: "Radios and links"},
			Items: []config.Item{
				{Kind: config.KindButton, Properties: config.Properties{Title: "Restart"}},
				{Kind: config.KindToggle, Properties: config.Properties{Title: "WiFi", Key: "wifi"}},
			},
		},
		{
			Kind:       config.SectionGrid,
			Properties: config.Properties{Title: "Quick Actions"},
			Items: []config.Item{
				{Kind: config.KindGridCard, Properties: config.Properties{Title: "Screenshot"}},
				{Kind: config.KindToggleCard, Properties: config.Properties{Title: "Dark Mode", Key: "dark"}},
			},
		},
	}

	body, rows := BuildLayout(ctx, layout)
	if len(rows) != 4 {
		t.Fatalf("built %d rows, want 4", len(rows))
	}
	for _, want := range []string{"Network", "Radios and links", "Quick Actions", "Screenshot", "Dark Mode", "Off"} {
		if !hasLabel(body, want) {
			t.Errorf("layout labels = %v, want %q", labelTexts(body), want)
		}
	}

	// The keyed toggle row and toggle card each armed a state monitor.
	if got := sched.live(); got != 2 {
		t.Fatalf("live schedules after build = %d, want 2", got)
	}
	DestroyRows(rows)
	if got := sched.live(); got != 0 {
		t.Errorf("live schedules after destroy = %d, want 0", got)
	}
}
