// Package form holds the boundary types between a schema-driven form
// renderer and the controllers that consume its output.
package form

import (
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/schema"
)

// Change is emitted by a form renderer once per user edit. It is either
// Toggled or ValueSet.
type Change interface {
	isChange()
}

// Toggled reports a boolean input's new checked state.
type Toggled struct {
	Path    []string
	Checked bool
}

// ValueSet carries the complete data object after an edit.
type ValueSet struct {
	Value card.Values
}

func (Toggled) isChange()  {}
func (ValueSet) isChange() {}

// LabelFunc resolves the display label of a field.
type LabelFunc func(f schema.Field) string

// HelperFunc resolves the helper text of a field for the current data.
type HelperFunc func(f schema.Field, data card.Values) string

// Get reads the value at path.
func Get(data card.Values, path []string) (any, bool) {
	var cur any = map[string]any(data)
	for _, p := range path {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set returns a copy of data with the value at path replaced. Maps along
// the path are copied; data itself is not modified.
func Set(data card.Values, path []string, value any) card.Values {
	return card.Values(setIn(map[string]any(data), path, value, false))
}

// Delete returns a copy of data with the key at path removed. Emptied
// nested maps are removed as well.
func Delete(data card.Values, path []string) card.Values {
	return card.Values(setIn(map[string]any(data), path, nil, true))
}

func setIn(m map[string]any, path []string, value any, del bool) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	if len(path) == 0 {
		return out
	}
	key := path[0]
	if len(path) == 1 {
		if del {
			delete(out, key)
		} else {
			out[key] = value
		}
		return out
	}
	child, _ := asMap(out[key])
	if child == nil {
		if del {
			return out
		}
		child = map[string]any{}
	}
	next := setIn(child, path[1:], value, del)
	if del && len(next) == 0 {
		delete(out, key)
	} else {
		out[key] = next
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case card.Values:
		return map[string]any(m), true
	case card.EntityConfig:
		return map[string]any(m), true
	}
	return nil, false
}

// Apply folds a change into data and returns the resulting data object.
func Apply(data card.Values, c Change) card.Values {
	switch c := c.(type) {
	case Toggled:
		return Set(data, c.Path, c.Checked)
	case ValueSet:
		if c.Value == nil {
			return card.Values{}
		}
		return c.Value
	}
	return data
}
