package config

import "strings"

const (
	// SearchMaxResults caps one search pass; past it the walker stops
	// and the caller shows an explicit overflow row instead of silently
	// truncating.
	SearchMaxResults = 50

	breadcrumbSep  = " › "
	descriptionSep = " • "
)

// Search walks the tree depth-first and returns clones of every item
// whose title or description contains query, case-insensitively. Each
// clone's description is rewritten to lead with the breadcrumb of
// ancestor page and submenu titles so results are identifiable out of
// context. Navigation items never match directly (they are structure,
// not settings) but their subtrees are still walked. truncated reports
// that a further match existed beyond limit.
func (c *Config) Search(query string, limit int) (results []Item, truncated bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || c == nil {
		return nil, false
	}
	if limit <= 0 {
		limit = SearchMaxResults
	}

	var walk func(sections []Section, crumb string) bool
	walk = func(sections []Section, crumb string) bool {
		for _, section := range sections {
			for i := range section.Items {
				item := &section.Items[i]
				if item.Kind != KindNavigation && item.matches(q) {
					if len(results) >= limit {
						truncated = true
						return false
					}
					hit := item.Clone()
					if desc := hit.Properties.Description; desc != "" {
						hit.Properties.Description = crumb + descriptionSep + desc
					} else {
						hit.Properties.Description = crumb
					}
					results = append(results, hit)
				}
				if len(item.Layout) > 0 {
					sub := item.Properties.Title
					if sub == "" {
						sub = "Submenu"
					}
					if !walk(item.Layout, crumb+breadcrumbSep+sub) {
						return false
					}
				}
			}
		}
		return true
	}

	for _, page := range c.Pages {
		title := page.Title
		if title == "" {
			title = "Unknown"
		}
		if !walk(page.Layout, title) {
			break
		}
	}
	return results, truncated
}

func (it *Item) matches(loweredQuery string) bool {
	if strings.Contains(strings.ToLower(it.Properties.Title), loweredQuery) {
		return true
	}
	return strings.Contains(strings.ToLower(it.Properties.Description), loweredQuery)
}
