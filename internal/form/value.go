package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tonhe/mgce/internal/schema"
)

// ErrNotEditable is returned for selectors that cannot be edited as text.
var ErrNotEditable = errors.New("field is not editable inline")

// Editable reports whether a selector can be edited with a text input.
func Editable(sel schema.Selector) bool {
	switch sel.Kind {
	case schema.SelectorText, schema.SelectorIcon, schema.SelectorEntity,
		schema.SelectorHexColor, schema.SelectorInteger, schema.SelectorFloat:
		return true
	}
	return false
}

// Coerce converts raw text input into a value for the selector. The second
// return is false when the input is empty and the key should be cleared.
func Coerce(sel schema.Selector, input string) (any, bool, error) {
	input = strings.TrimSpace(input)
	if !Editable(sel) {
		return nil, false, ErrNotEditable
	}
	if input == "" {
		return nil, false, nil
	}
	switch sel.Kind {
	case schema.SelectorInteger:
		n, err := strconv.Atoi(input)
		if err != nil {
			return nil, false, fmt.Errorf("invalid integer %q", input)
		}
		return n, true, nil
	case schema.SelectorFloat:
		f, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return nil, false, fmt.Errorf("invalid number %q", input)
		}
		return f, true, nil
	}
	return input, true, nil
}

// Format renders a stored value for display or as initial input text.
func Format(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any:
		if a, ok := v["action"].(string); ok {
			return a
		}
		return fmt.Sprintf("{%d keys}", len(v))
	}
	return fmt.Sprint(v)
}

// OptionLabel returns the label of the option matching v, or Format(v).
func OptionLabel(sel schema.Selector, v any) string {
	for _, o := range sel.Options {
		if o.Value == v {
			return o.Label
		}
	}
	return Format(v)
}

// Cycle returns the option value dir steps away from current. A current
// value outside the option list starts from the first option.
func Cycle(sel schema.Selector, current any, dir int) any {
	n := len(sel.Options)
	if n == 0 {
		return current
	}
	idx := -1
	for i, o := range sel.Options {
		if o.Value == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return sel.Options[0].Value
	}
	return sel.Options[((idx+dir)%n+n)%n].Value
}

// Effective returns the stored value or the field's default when unset.
func Effective(f schema.Field, v any, ok bool) any {
	if ok {
		return v
	}
	if f.Default != nil {
		return f.Default
	}
	return f.Selector.Default
}
