package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/duskydesk/duskycc/internal/apperrors"
	"github.com/duskydesk/duskycc/internal/logger"
)

// Load reads and validates the configuration file. The returned error
// carries a human-readable description for the error view; callers keep
// an empty config alongside it so the shell stays usable.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, apperrors.New(apperrors.KindConfig,
				fmt.Sprintf("Config file not found: %s", path), err)
		}
		return &Config{}, apperrors.New(apperrors.KindConfig,
			fmt.Sprintf("Config parse error: %v", err), err)
	}
	return Parse(data)
}

// Parse decodes and validates a configuration document.
//
// Structural validation stops at the page level: a bad root, pages
// field, or page entry is a hard error with a descriptive message,
// while malformed sections and items inside a valid page degrade
// per-node so one bad entry never takes down the whole tree.
func Parse(data []byte) (*Config, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return &Config{}, apperrors.New(apperrors.KindConfig,
			fmt.Sprintf("Config parse error: %v", err), err)
	}
	if root == nil {
		return &Config{}, apperrors.New(apperrors.KindConfig,
			"Config missing required 'pages' key", nil)
	}
	doc, ok := asMap(root)
	if !ok {
		return &Config{}, apperrors.New(apperrors.KindConfig,
			fmt.Sprintf("Config is not a dictionary (got %s)", typeName(root)), nil)
	}
	rawPages, ok := doc["pages"]
	if !ok {
		return &Config{}, apperrors.New(apperrors.KindConfig,
			"Config missing required 'pages' key", nil)
	}
	pageList, ok := asList(rawPages)
	if !ok {
		return &Config{}, apperrors.New(apperrors.KindConfig,
			"'pages' must be a list", nil)
	}

	cfg := &Config{Pages: make([]Page, 0, len(pageList))}
	for idx, rawPage := range pageList {
		pageMap, ok := asMap(rawPage)
		if !ok {
			return &Config{}, apperrors.New(apperrors.KindConfig,
				fmt.Sprintf("Page %d is not a dictionary", idx), nil)
		}
		if _, ok := pageMap["title"]; !ok {
			return &Config{}, apperrors.New(apperrors.KindConfig,
				fmt.Sprintf("Page %d missing required 'title' key", idx), nil)
		}
		cfg.Pages = append(cfg.Pages, Page{
			ID:     stringOf(pageMap["id"]),
			Title:  stringOf(pageMap["title"]),
			Icon:   stringOf(pageMap["icon"]),
			Layout: parseLayout(pageMap["layout"]),
		})
	}
	return cfg, nil
}

func parseLayout(raw any) []Section {
	list, ok := asList(raw)
	if !ok {
		return nil
	}
	sections := make([]Section, 0, len(list))
	for _, rawSection := range list {
		m, ok := asMap(rawSection)
		if !ok {
			logger.Warn("Skipping non-mapping section entry")
			continue
		}
		sections = append(sections, parseSection(m))
	}
	return sections
}

func parseSection(m map[string]any) Section {
	typeTag := strings.ToLower(stringOf(m["type"]))
	if typeTag == SectionGrid.String() {
		return Section{
			Kind:       SectionGrid,
			Properties: parseProperties(m["properties"]),
			Items:      parseItems(m["items"]),
		}
	}
	if _, ok := m["items"]; ok {
		return Section{
			Kind:       SectionList,
			Properties: parseProperties(m["properties"]),
			Items:      parseItems(m["items"]),
		}
	}
	// A bare item written at layout level becomes its own heading-less
	// section. Only the type and properties carry over.
	kind, known := ParseItemKind(typeTag)
	if !known && typeTag != "" {
		logger.Warn("Unknown item type in layout", "type", typeTag)
	}
	return Section{
		Kind:     SectionList,
		Implicit: true,
		Items: []Item{{
			Kind:       kind,
			RawKind:    stringOf(m["type"]),
			Properties: parseProperties(m["properties"]),
		}},
	}
}

func parseItems(raw any) []Item {
	list, ok := asList(raw)
	if !ok {
		return nil
	}
	items := make([]Item, 0, len(list))
	for _, rawItem := range list {
		m, ok := asMap(rawItem)
		if !ok {
			logger.Warn("Skipping non-mapping item entry")
			continue
		}
		items = append(items, parseItem(m))
	}
	return items
}

func parseItem(m map[string]any) Item {
	rawKind := stringOf(m["type"])
	kind, _ := ParseItemKind(rawKind)
	return Item{
		Kind:       kind,
		RawKind:    rawKind,
		Properties: parseProperties(m["properties"]),
		OnPress:    parseAction(m["on_press"]),
		OnToggle:   parseAction(m["on_toggle"]),
		OnChange:   parseAction(m["on_change"]),
		OnAction:   parseAction(m["on_action"]),
		Value:      parseValue(m["value"]),
		Layout:     parseLayout(m["layout"]),
		Items:      parseItems(m["items"]),
	}
}

func parseProperties(raw any) Properties {
	p := Properties{
		Max:      100,
		Step:     1,
		Debounce: true,
	}
	m, ok := asMap(raw)
	if !ok {
		return p
	}
	p.Title = stringOf(m["title"])
	p.Description = stringOf(m["description"])
	p.Icon = parseIcon(m["icon"])
	p.Message = stringOf(m["message"])
	p.Style = stringOf(m["style"])
	p.ButtonText = stringOf(m["button_text"])
	p.Placeholder = stringOf(m["placeholder"])
	p.Interval, p.IntervalSet = intOf(m["interval"])
	p.Key = stringOf(m["key"])
	p.KeyInverse = boolOf(m["key_inverse"])
	p.SaveAsInt = boolOf(m["save_as_int"])
	p.Secret = boolOf(m["secret"])
	p.StateCommand = stringOf(m["state_command"])
	p.Min = safeFloat(m["min"], 0)
	p.Max = safeFloat(m["max"], 100)
	p.Step = safeFloat(m["step"], 1)
	p.Default = safeFloat(m["default"], p.Min)
	if raw, ok := m["debounce"]; ok {
		if b, isBool := raw.(bool); isBool {
			p.Debounce = b
		}
	}
	if opts, ok := asList(m["options"]); ok {
		p.Options = make([]string, 0, len(opts))
		for _, o := range opts {
			p.Options = append(p.Options, stringOf(o))
		}
	}
	return p
}

func parseIcon(raw any) Icon {
	switch v := raw.(type) {
	case nil:
		return Icon{}
	case string:
		return Icon{Kind: IconStatic, Name: v}
	}
	m, ok := asMap(raw)
	if !ok {
		return Icon{}
	}
	switch strings.ToLower(stringOf(m["type"])) {
	case "file":
		return Icon{Kind: IconFile, Path: stringOf(m["path"]), Name: stringOf(m["name"])}
	case "exec":
		return Icon{
			Kind:     IconExec,
			Command:  stringOf(m["command"]),
			Interval: safeInt(m["interval"], 0),
			Name:     stringOf(m["name"]),
		}
	default:
		return Icon{Kind: IconStatic, Name: stringOf(m["name"])}
	}
}

func parseAction(raw any) *Action {
	m, ok := asMap(raw)
	if !ok {
		return nil
	}
	a := &Action{
		Command:  stringOf(m["command"]),
		Terminal: boolOf(m["terminal"]),
		Page:     stringOf(m["page"]),
	}
	_, hasEnabled := m["enabled"]
	_, hasDisabled := m["disabled"]
	if hasEnabled || hasDisabled {
		a.Kind = ActionToggle
		a.Enabled = parseAction(m["enabled"])
		a.Disabled = parseAction(m["disabled"])
		return a
	}
	switch strings.ToLower(stringOf(m["type"])) {
	case "exec":
		a.Kind = ActionExec
	case "redirect":
		a.Kind = ActionRedirect
	default:
		a.Kind = ActionNone
	}
	return a
}

func parseValue(raw any) *Value {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return &Value{Kind: ValueStatic, Text: v}
	}
	m, ok := asMap(raw)
	if !ok {
		return nil
	}
	switch strings.ToLower(stringOf(m["type"])) {
	case "exec":
		return &Value{Kind: ValueExec, Command: stringOf(m["command"])}
	case "static":
		if text, ok := m["text"]; ok {
			return &Value{Kind: ValueStatic, Text: stringOf(text)}
		}
		return &Value{Kind: ValueStatic, Text: "N/A"}
	case "file":
		return &Value{Kind: ValueFile, Path: stringOf(m["path"])}
	case "system":
		return &Value{Kind: ValueSystem, Key: stringOf(m["key"])}
	default:
		return &Value{Kind: ValueStatic, Text: "N/A"}
	}
}

// asMap accepts both string-keyed and any-keyed mappings; YAML decodes
// nested mappings with string keys but a cautious cast keeps odd
// documents from slipping through as panics.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[stringOf(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// stringOf renders scalar YAML values the way the config expects:
// numbers and booleans written where text belongs become their text
// form instead of failing.
func stringOf(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}

func boolOf(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func safeInt(v any, def int) int {
	if n, ok := intOf(v); ok {
		return n
	}
	return def
}

func intOf(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func safeFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return parsed
		}
	}
	return def
}

func typeName(v any) string {
	switch v.(type) {
	case map[string]any, map[any]any:
		return "dictionary"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, uint64, float64:
		return "number"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
