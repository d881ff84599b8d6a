// Package config models, loads, validates, and searches the control
// center's YAML configuration tree.
//
// The tree is fully typed: every node carries a kind tag, so traversal
// and cloning are structurally exhaustive and an unrecognized kind is an
// explicit variant rather than a stringly-typed surprise. Unknown item
// kinds degrade to a button at render time instead of failing the page.
package config

import "strings"

// DefaultIcon is used wherever an item does not name its own icon.
const DefaultIcon = "utilities-terminal-symbolic"

// Config is the root of the configuration tree.
type Config struct {
	Pages []Page
}

// Page is one sidebar entry with its content layout.
type Page struct {
	ID     string
	Title  string
	Icon   string
	Layout []Section
}

// SectionKind tags a section variant.
type SectionKind uint8

const (
	// SectionList renders its items as a vertical group of rows.
	SectionList SectionKind = iota
	// SectionGrid renders its items as a flow of cards.
	SectionGrid
)

func (k SectionKind) String() string {
	if k == SectionGrid {
		return "grid_section"
	}
	return "section"
}

// Section groups items under an optional heading. Implicit marks a
// section synthesized from a bare item written directly in a page
// layout; such sections carry exactly one item and no heading.
type Section struct {
	Kind       SectionKind
	Properties Properties
	Items      []Item
	Implicit   bool
}

// ItemKind tags a row variant. The zero value is KindUnknown so a
// missing or unrecognized type tag never masquerades as a real kind.
type ItemKind uint8

const (
	KindUnknown ItemKind = iota
	KindButton
	KindToggle
	KindLabel
	KindSlider
	KindSelection
	KindEntry
	KindNavigation
	KindExpander
	KindWarningBanner
	KindGridCard
	KindToggleCard
)

var itemKindNames = map[string]ItemKind{
	"button":         KindButton,
	"toggle":         KindToggle,
	"label":          KindLabel,
	"slider":         KindSlider,
	"selection":      KindSelection,
	"entry":          KindEntry,
	"navigation":     KindNavigation,
	"expander":       KindExpander,
	"warning_banner": KindWarningBanner,
	"grid_card":      KindGridCard,
	"toggle_card":    KindToggleCard,
}

// ParseItemKind maps a type tag to its kind, case-insensitively.
func ParseItemKind(s string) (ItemKind, bool) {
	kind, ok := itemKindNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return KindUnknown, false
	}
	return kind, true
}

func (k ItemKind) String() string {
	for name, kind := range itemKindNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// Item is one configuration control.
type Item struct {
	Kind       ItemKind
	RawKind    string // type tag as written, kept for diagnostics
	Properties Properties
	OnPress    *Action
	OnToggle   *Action
	OnChange   *Action
	OnAction   *Action
	Value      *Value
	Layout     []Section // navigation subtree
	Items      []Item    // expander children
}

// Properties carries the shared presentation and behavior fields of a
// row. Absent numeric fields are filled with their defaults at parse
// time so consumers never re-derive them.
type Properties struct {
	Title        string
	Description  string
	Icon         Icon
	Message      string
	Style        string
	ButtonText   string
	Placeholder  string
	Interval     int  // seconds; meaning depends on the row kind
	IntervalSet  bool // distinguishes an explicit zero from an absent field
	Key          string
	KeyInverse   bool
	SaveAsInt    bool
	Secret       bool // value lives in the OS keyring, not the flat store
	StateCommand string
	Min          float64
	Max          float64
	Step         float64
	Default      float64
	Debounce     bool
	Options      []string
}

// ActionKind tags an action payload variant.
type ActionKind uint8

const (
	ActionNone     ActionKind = iota
	ActionExec                // run a command line
	ActionRedirect            // select another sidebar page
	ActionToggle              // distinct exec per switch direction
)

// Action is a row's reaction to user input. Command and Terminal are
// populated whenever present, even for ActionNone payloads: selection
// and entry rows honor a bare command without a type tag.
type Action struct {
	Kind     ActionKind
	Command  string
	Terminal bool
	Page     string
	Enabled  *Action
	Disabled *Action
}

// ValueKind tags a label value source.
type ValueKind uint8

const (
	ValueStatic ValueKind = iota // fixed text
	ValueExec                    // command stdout
	ValueFile                    // file contents
	ValueSystem                  // built-in probe by key
)

// Value describes where a label row gets its text.
type Value struct {
	Kind    ValueKind
	Text    string
	Command string
	Path    string
	Key     string
}

// IconKind tags an icon source.
type IconKind uint8

const (
	IconStatic IconKind = iota // fixed theme icon name
	IconFile                   // image file on disk
	IconExec                   // refreshed by running a command
)

// Icon describes a row's prefix icon. Exec icons keep a static Name as
// the value shown before the first refresh completes.
type Icon struct {
	Kind     IconKind
	Name     string
	Path     string
	Command  string
	Interval int
}

// Dynamic reports whether the icon is periodically refreshed: an exec
// icon with a command and a positive interval.
func (i Icon) Dynamic() bool {
	return i.Kind == IconExec && i.Interval > 0 && strings.TrimSpace(i.Command) != ""
}

// StaticName resolves the icon name to show without running anything.
func (i Icon) StaticName() string {
	if i.Name != "" {
		return i.Name
	}
	return DefaultIcon
}
