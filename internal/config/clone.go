package config

// Clone returns a deep copy of the tree. Reload keeps a clone of the
// previous configuration for rollback, and search hands out item clones
// so description rewrites never touch the live tree.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := &Config{Pages: make([]Page, len(c.Pages))}
	for i, p := range c.Pages {
		out.Pages[i] = p.clone()
	}
	return out
}

func (p Page) clone() Page {
	p.Layout = cloneSections(p.Layout)
	return p
}

func cloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	out := make([]Section, len(sections))
	for i, s := range sections {
		out[i] = s.clone()
	}
	return out
}

func (s Section) clone() Section {
	s.Properties = s.Properties.clone()
	s.Items = cloneItems(s.Items)
	return s
}

func cloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Clone returns a deep copy of one item and everything under it.
func (it Item) Clone() Item {
	it.Properties = it.Properties.clone()
	it.OnPress = it.OnPress.clone()
	it.OnToggle = it.OnToggle.clone()
	it.OnChange = it.OnChange.clone()
	it.OnAction = it.OnAction.clone()
	it.Value = it.Value.clone()
	it.Layout = cloneSections(it.Layout)
	it.Items = cloneItems(it.Items)
	return it
}

func (p Properties) clone() Properties {
	if p.Options != nil {
		opts := make([]string, len(p.Options))
		copy(opts, p.Options)
		p.Options = opts
	}
	return p
}

func (a *Action) clone() *Action {
	if a == nil {
		return nil
	}
	out := *a
	out.Enabled = a.Enabled.clone()
	out.Disabled = a.Disabled.clone()
	return &out
}

func (v *Value) clone() *Value {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
