package reviews

// Draft is the in-memory working copy of a review document's payload:
// a mapping of section name to section content. Section content is either
// a field map (field name → value), a line-item list ([]any of field maps),
// or a passthrough value carried forward from an older save.
//
// A Draft produced by Merge is always render-safe: it contains every
// section the slot's default structure defines, and every line-item list
// holds at least its placeholder rows.
type Draft map[string]any

// Clone returns a deep copy of the draft. Mutating the copy never
// affects the original.
func (d Draft) Clone() Draft {
	if d == nil {
		return nil
	}
	return cloneMap(d)
}

// Section returns the named section as a field map, or nil when the
// section is absent or not a field map.
func (d Draft) Section(name string) map[string]any {
	if m, ok := d[name].(map[string]any); ok {
		return m
	}
	return nil
}

// List returns the named section as a line-item list, or nil when the
// section is absent or not a list.
func (d Draft) List(name string) []any {
	if l, ok := d[name].([]any); ok {
		return l
	}
	return nil
}

// Set assigns a field within a section, creating the section map if needed.
func (d Draft) Set(section, field string, value any) {
	m, ok := d[section].(map[string]any)
	if !ok {
		m = make(map[string]any)
		d[section] = m
	}
	m[field] = value
}

// Replace assigns an entire section value, used for line-item list edits.
func (d Draft) Replace(section string, value any) {
	d[section] = value
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
