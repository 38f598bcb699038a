package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/schema"
)

// Lookup finds the leaf addressed by a dotted path such as "show.fill".
func Lookup(fields []schema.Field, dotted string) (schema.Leaf, bool) {
	for _, l := range schema.Leaves(fields) {
		if strings.Join(l.Path, ".") == dotted {
			return l, true
		}
	}
	return schema.Leaf{}, false
}

// Assign turns a "path=value" argument into the change a form would emit
// for it: Toggled for booleans, ValueSet with the full data otherwise. An
// empty value clears the key.
func Assign(fields []schema.Field, data card.Values, arg string) (Change, error) {
	path, raw, ok := strings.Cut(arg, "=")
	if !ok {
		return nil, fmt.Errorf("%q: expected key=value", arg)
	}
	leaf, ok := Lookup(fields, strings.TrimSpace(path))
	if !ok {
		return nil, fmt.Errorf("%q: unknown field", path)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ValueSet{Value: Delete(data, leaf.Path)}, nil
	}

	sel := leaf.Field.Selector
	switch sel.Kind {
	case schema.SelectorBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid boolean %q", path, raw)
		}
		return Toggled{Path: leaf.Path, Checked: b}, nil
	case schema.SelectorSelect:
		for _, o := range sel.Options {
			if Format(o.Value) == raw || strings.EqualFold(o.Label, raw) {
				return ValueSet{Value: Set(data, leaf.Path, o.Value)}, nil
			}
		}
		return nil, fmt.Errorf("%s: %q is not one of the options", path, raw)
	}
	v, keep, err := Coerce(sel, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !keep {
		return ValueSet{Value: Delete(data, leaf.Path)}, nil
	}
	return ValueSet{Value: Set(data, leaf.Path, v)}, nil
}
