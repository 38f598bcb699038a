package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/editor"
	"github.com/tonhe/mgce/tui/components"
	"github.com/tonhe/mgce/tui/keys"
	"github.com/tonhe/mgce/tui/styles"
)

const (
	colValue = iota
	colColor
)

// ThresholdsView edits the color_thresholds list: one row per rule with
// a value cell and a color cell.
type ThresholdsView struct {
	theme   styles.Theme
	sty     *styles.Styles
	binding *editor.ThresholdBinding
	title   string
	rules   []card.ThresholdRule

	cursor  int
	col     int
	editing bool
	input   textinput.Model
	err     string

	width  int
	height int
}

// NewThresholdsView creates an empty threshold view.
func NewThresholdsView(theme styles.Theme) ThresholdsView {
	return ThresholdsView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// Sync binds the view to the root's current threshold scope.
func (v *ThresholdsView) Sync(root *editor.Root) {
	v.binding = root.Thresholds()
	if v.binding == nil {
		v.editing = false
		return
	}
	v.title = root.Text("editor.color_thresholds")
	v.rules = v.binding.Rules
	if v.cursor >= len(v.rules) {
		v.cursor = len(v.rules) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// SetSize updates the available dimensions.
func (v *ThresholdsView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Capturing reports whether a text input has the keyboard.
func (v ThresholdsView) Capturing() bool {
	return v.editing
}

// Title is the panel name shown in the header.
func (v ThresholdsView) Title() string {
	return v.title
}

func (v ThresholdsView) commit(rules []card.ThresholdRule) {
	if v.binding != nil && v.binding.Changed != nil {
		v.binding.Changed(rules)
	}
}

// Update handles list navigation and cell editing.
func (v ThresholdsView) Update(msg tea.Msg) (ThresholdsView, tea.Cmd) {
	if v.binding == nil {
		return v, nil
	}
	if v.editing {
		return v.updateEditing(msg)
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	n := len(v.rules)
	switch {
	case key.Matches(km, keys.DefaultKeyMap.Escape):
		v.binding.Back()
	case key.Matches(km, keys.DefaultKeyMap.MoveUp):
		if v.cursor > 0 {
			v.commit(swapRules(v.rules, v.cursor, v.cursor-1))
			v.cursor--
		}
	case key.Matches(km, keys.DefaultKeyMap.MoveDown):
		if v.cursor < n-1 {
			v.commit(swapRules(v.rules, v.cursor, v.cursor+1))
			v.cursor++
		}
	case key.Matches(km, keys.DefaultKeyMap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(km, keys.DefaultKeyMap.Down):
		if v.cursor < n-1 {
			v.cursor++
		}
	case key.Matches(km, keys.DefaultKeyMap.Left):
		v.col = colValue
	case key.Matches(km, keys.DefaultKeyMap.Right), key.Matches(km, keys.DefaultKeyMap.Tab):
		v.col = 1 - v.col
	case key.Matches(km, keys.DefaultKeyMap.Enter):
		if n > 0 {
			cmd := v.startEdit()
			return v, cmd
		}
	case key.Matches(km, keys.DefaultKeyMap.Add):
		v.rules = append(card.CloneRules(v.rules), nextRule(v.rules))
		v.commit(v.rules)
		v.cursor = n
		v.col = colValue
		cmd := v.startEdit()
		return v, cmd
	case key.Matches(km, keys.DefaultKeyMap.Delete):
		if n > 0 {
			rules := card.CloneRules(v.rules)
			v.commit(append(rules[:v.cursor], rules[v.cursor+1:]...))
		}
	}
	return v, nil
}

// nextRule proposes a rule above the highest existing value.
func nextRule(rules []card.ThresholdRule) card.ThresholdRule {
	if len(rules) == 0 {
		return card.NewRule(0, "#3498db")
	}
	last := rules[len(rules)-1]
	v, _ := last.Value()
	color := last.Color()
	if color == "" {
		color = "#3498db"
	}
	return card.NewRule(v+10, color)
}

func swapRules(rules []card.ThresholdRule, i, j int) []card.ThresholdRule {
	out := card.CloneRules(rules)
	out[i], out[j] = out[j], out[i]
	return out
}

func (v *ThresholdsView) startEdit() tea.Cmd {
	v.editing = true
	v.err = ""
	v.input = textinput.New()
	v.input.CharLimit = 32
	v.input.Width = 16
	r := v.rules[v.cursor]
	if v.col == colValue {
		if f, ok := r.Value(); ok {
			v.input.SetValue(strconv.FormatFloat(f, 'f', -1, 64))
		}
	} else {
		v.input.Placeholder = "#rrggbb"
		v.input.SetValue(r.Color())
	}
	return v.input.Focus()
}

func (v ThresholdsView) updateEditing(msg tea.Msg) (ThresholdsView, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.DefaultKeyMap.Escape):
			v.editing = false
			v.err = ""
			return v, nil
		case key.Matches(km, keys.DefaultKeyMap.Enter):
			rules := card.CloneRules(v.rules)
			raw := strings.TrimSpace(v.input.Value())
			if v.col == colValue {
				f, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					v.err = fmt.Sprintf("invalid number %q", raw)
					return v, nil
				}
				rules[v.cursor] = rules[v.cursor].WithValue(f)
			} else {
				if raw == "" {
					v.err = "color is required"
					return v, nil
				}
				rules[v.cursor] = rules[v.cursor].WithColor(raw)
			}
			v.editing = false
			v.err = ""
			v.commit(rules)
			return v, nil
		}
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the rule table, a preview of the resulting color scale,
// and a sparkline of the rule values in list order.
func (v ThresholdsView) View() string {
	if v.binding == nil {
		return ""
	}
	var s strings.Builder
	s.WriteString("\n  " + v.sty.Title.Render(v.title) + "\n\n")
	if v.err != "" {
		s.WriteString("  " + v.sty.Error.Render(v.err) + "\n\n")
	}

	s.WriteString("    " + v.sty.Section.Render(padRight("Value", 14)+"Color") + "\n")
	if len(v.rules) == 0 {
		s.WriteString("    " + v.sty.Dim.Render("No thresholds. Press [a] to add.") + "\n")
	}
	for i, r := range v.rules {
		s.WriteString(v.row(i, r) + "\n")
	}

	if len(v.rules) > 0 {
		width := v.width - 8
		if width > 60 {
			width = 60
		}
		s.WriteString("\n  " + v.sty.Section.Render("Scale") + "\n")
		for _, line := range strings.Split(components.RenderScale(v.theme, v.rules, width), "\n") {
			s.WriteString("    " + line + "\n")
		}
		values := make([]float64, 0, len(v.rules))
		for _, r := range v.rules {
			if f, ok := r.Value(); ok {
				values = append(values, f)
			}
		}
		s.WriteString("\n  " + v.sty.Section.Render("Order") + "  " +
			v.sty.SparklineStyle.Render(components.Sparkline(values, len(values))) + "\n")
	}
	return scroll(s.String(), v.height)
}

func (v ThresholdsView) row(i int, r card.ThresholdRule) string {
	active := i == v.cursor
	indicator := "  "
	if active {
		indicator = v.sty.Cursor.Render(cursorMark)
	}

	value := "(none)"
	if f, ok := r.Value(); ok {
		value = components.FormatValue(f)
	} else if raw, set := r[card.KeyValue]; set {
		value = fmt.Sprint(raw)
	}
	value = padRight(value, 12)
	color := r.Color()
	valStyle, colStyle := v.sty.Value, v.sty.Value
	if active && v.col == colValue {
		valStyle = v.sty.InputActive
	}
	if active && v.col == colColor {
		colStyle = v.sty.InputActive
	}
	cellV := valStyle.Render(value)
	cellC := colStyle.Render(color)
	if active && v.editing {
		if v.col == colValue {
			cellV = v.input.View()
		} else {
			cellC = v.input.View()
		}
	}
	return fmt.Sprintf("  %s%s  %s %s", indicator, cellV, styles.Swatch(v.theme, r.Color()), cellC)
}

// Hints returns the key hints for the status bar.
func (v ThresholdsView) Hints() []components.KeyHint {
	if v.editing {
		return []components.KeyHint{{Key: "enter", Desc: "commit"}, {Key: "esc", Desc: "cancel"}}
	}
	return []components.KeyHint{{Key: "enter", Desc: "edit"}, {Key: "tab", Desc: "column"}, {Key: "a", Desc: "add"},
		{Key: "d", Desc: "delete"}, {Key: "K/J", Desc: "move"}, {Key: "esc", Desc: "back"}}
}
