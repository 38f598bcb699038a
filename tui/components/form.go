package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/form"
	"github.com/tonhe/mgce/internal/schema"
	"github.com/tonhe/mgce/tui/keys"
	"github.com/tonhe/mgce/tui/styles"
)

// Form renders a schema over a data object and reports each edit as a
// form.Change. It never keeps edits itself: the owner feeds the accepted
// data back with SetData.
type Form struct {
	theme  styles.Theme
	sty    *styles.Styles
	leaves []schema.Leaf
	data   card.Values
	label  form.LabelFunc
	helper form.HelperFunc

	cursor  int
	editing bool
	input   textinput.Model
	err     string
	focused bool
	width   int
}

// NewForm creates a form over fields. label and helper may be nil.
func NewForm(theme styles.Theme, fields []schema.Field, label form.LabelFunc, helper form.HelperFunc) Form {
	return Form{
		theme:   theme,
		sty:     styles.NewStyles(theme),
		leaves:  schema.Leaves(fields),
		data:    card.Values{},
		label:   label,
		helper:  helper,
		focused: true,
	}
}

// SetData replaces the data being shown.
func (f *Form) SetData(data card.Values) {
	if data == nil {
		data = card.Values{}
	}
	f.data = data
}

// Data returns the data being shown.
func (f Form) Data() card.Values {
	return f.data
}

// SetWidth sets the render width.
func (f *Form) SetWidth(w int) {
	f.width = w
}

// Focus makes the form draw its cursor and handle keys.
func (f *Form) Focus() {
	f.focused = true
}

// Blur hides the cursor and closes any open input.
func (f *Form) Blur() {
	f.focused = false
	f.editing = false
}

// Focused reports whether the form handles keys.
func (f Form) Focused() bool {
	return f.focused
}

// Editing reports whether a text input is open.
func (f Form) Editing() bool {
	return f.editing
}

// Len returns the number of leaf rows.
func (f Form) Len() int {
	return len(f.leaves)
}

// Cursor returns the highlighted row.
func (f Form) Cursor() int {
	return f.cursor
}

// Current returns the highlighted leaf.
func (f Form) Current() (schema.Leaf, bool) {
	if f.cursor < 0 || f.cursor >= len(f.leaves) {
		return schema.Leaf{}, false
	}
	return f.leaves[f.cursor], true
}

// Update handles a key and returns the change it produced, if any.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd, form.Change) {
	if !f.focused {
		return f, nil, nil
	}
	if f.editing {
		return f.updateEditing(msg)
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil, nil
	}
	leaf, ok := f.Current()

	switch {
	case key.Matches(km, keys.DefaultKeyMap.Up):
		if f.cursor > 0 {
			f.cursor--
		}
		return f, nil, nil
	case key.Matches(km, keys.DefaultKeyMap.Down):
		if f.cursor < len(f.leaves)-1 {
			f.cursor++
		}
		return f, nil, nil
	case !ok:
		return f, nil, nil

	case key.Matches(km, keys.DefaultKeyMap.Enter), key.Matches(km, keys.DefaultKeyMap.Toggle):
		return f.activate(leaf, 1)
	case key.Matches(km, keys.DefaultKeyMap.Right):
		if leaf.Field.Selector.Kind == schema.SelectorSelect {
			return f.activate(leaf, 1)
		}
	case key.Matches(km, keys.DefaultKeyMap.Left):
		if leaf.Field.Selector.Kind == schema.SelectorSelect {
			return f.activate(leaf, -1)
		}
	case key.Matches(km, keys.DefaultKeyMap.Clear):
		if _, set := form.Get(f.data, leaf.Path); set && f.writable(leaf) {
			f.err = ""
			return f, nil, form.ValueSet{Value: form.Delete(f.data, leaf.Path)}
		}
	}
	return f, nil, nil
}

func (f Form) writable(leaf schema.Leaf) bool {
	switch leaf.Field.Selector.Kind {
	case schema.SelectorBoolean, schema.SelectorSelect:
		return true
	}
	return form.Editable(leaf.Field.Selector)
}

// activate performs the primary action for a row: toggle, cycle, or open
// the text input.
func (f Form) activate(leaf schema.Leaf, dir int) (Form, tea.Cmd, form.Change) {
	sel := leaf.Field.Selector
	cur, set := form.Get(f.data, leaf.Path)
	switch sel.Kind {
	case schema.SelectorBoolean:
		on, _ := form.Effective(leaf.Field, cur, set).(bool)
		return f, nil, form.Toggled{Path: leaf.Path, Checked: !on}
	case schema.SelectorSelect:
		next := form.Cycle(sel, form.Effective(leaf.Field, cur, set), dir)
		return f, nil, form.ValueSet{Value: form.Set(f.data, leaf.Path, next)}
	}
	if !form.Editable(sel) {
		f.err = fmt.Sprintf("%s is edited in the YAML file", leaf.Key())
		return f, nil, nil
	}
	f.err = ""
	f.editing = true
	f.input = textinput.New()
	f.input.CharLimit = 256
	f.input.Width = 36
	f.input.Placeholder = placeholder(leaf)
	if set {
		f.input.SetValue(form.Format(cur))
	}
	cmd := f.input.Focus()
	return f, cmd, nil
}

func placeholder(leaf schema.Leaf) string {
	switch leaf.Field.Selector.Kind {
	case schema.SelectorHexColor:
		return "#rrggbb"
	case schema.SelectorIcon:
		return "mdi:..."
	case schema.SelectorEntity:
		return "domain.object_id"
	}
	if d := form.Effective(leaf.Field, nil, false); d != nil {
		return form.Format(d)
	}
	return ""
}

func (f Form) updateEditing(msg tea.Msg) (Form, tea.Cmd, form.Change) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return f, cmd, nil
	}
	switch {
	case key.Matches(km, keys.DefaultKeyMap.Escape):
		f.editing = false
		f.err = ""
		return f, nil, nil
	case key.Matches(km, keys.DefaultKeyMap.Enter):
		leaf, _ := f.Current()
		v, keep, err := form.Coerce(leaf.Field.Selector, f.input.Value())
		if err != nil {
			f.err = err.Error()
			return f, nil, nil
		}
		f.editing = false
		f.err = ""
		if !keep {
			if _, set := form.Get(f.data, leaf.Path); !set {
				return f, nil, nil
			}
			return f, nil, form.ValueSet{Value: form.Delete(f.data, leaf.Path)}
		}
		return f, nil, form.ValueSet{Value: form.Set(f.data, leaf.Path, v)}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd, nil
}

// View renders the rows grouped under their section titles.
func (f Form) View() string {
	var s strings.Builder
	section := ""
	for i, leaf := range f.leaves {
		if leaf.Section != section {
			section = leaf.Section
			if section != "" {
				s.WriteString("\n  " + f.sty.Section.Render(section) + "\n")
			}
		}
		s.WriteString(f.row(i, leaf) + "\n")
	}
	if f.err != "" {
		s.WriteString("\n  " + f.sty.Error.Render(f.err) + "\n")
	}
	return s.String()
}

func (f Form) row(i int, leaf schema.Leaf) string {
	active := f.focused && i == f.cursor
	indicator := "  "
	lbl := f.sty.Label
	if active {
		indicator = f.sty.Cursor.Render("> ")
		lbl = f.sty.LabelSel
	}

	name := ""
	if f.label != nil {
		name = f.label(leaf.Field)
	}
	if name == "" {
		name = leaf.Key()
	}

	val := f.value(leaf)
	if active && f.editing {
		val = f.input.View()
	}

	line := fmt.Sprintf("  %s%s%s", indicator, lbl.Render(PadRight(name, 24)), val)
	if f.helper != nil {
		if h := f.helper(leaf.Field, f.data); h != "" {
			line += "  " + f.sty.Helper.Render(h)
		}
	}
	return line
}

func (f Form) value(leaf schema.Leaf) string {
	sel := leaf.Field.Selector
	cur, set := form.Get(f.data, leaf.Path)
	eff := form.Effective(leaf.Field, cur, set)

	var out string
	switch sel.Kind {
	case schema.SelectorBoolean:
		on, _ := eff.(bool)
		if on {
			out = f.sty.BoolOn.Render("[x]")
		} else {
			out = f.sty.BoolOff.Render("[ ]")
		}
	case schema.SelectorSelect:
		if eff == nil {
			out = f.sty.Dim.Render("(none)")
		} else {
			out = f.sty.Option.Render("< " + form.OptionLabel(sel, eff) + " >")
		}
	case schema.SelectorHexColor:
		if !set {
			out = f.sty.Dim.Render("(auto)")
		} else {
			hex := form.Format(cur)
			out = styles.Swatch(f.theme, hex) + " " + f.sty.Value.Render(hex)
		}
	default:
		switch {
		case set:
			out = f.sty.Value.Render(form.Format(cur))
		case eff != nil:
			out = f.sty.Dim.Render(form.Format(eff))
		default:
			out = f.sty.Dim.Render("(none)")
		}
		if !form.Editable(sel) {
			out += f.sty.Dim.Render("  (yaml)")
		}
	}
	return out
}

// PadRight pads or truncates s to width runes.
func PadRight(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
