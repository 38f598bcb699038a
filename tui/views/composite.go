package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/editor"
	"github.com/tonhe/mgce/internal/form"
	"github.com/tonhe/mgce/internal/schema"
	"github.com/tonhe/mgce/tui/components"
	"github.com/tonhe/mgce/tui/keys"
	"github.com/tonhe/mgce/tui/styles"
)

type compositeSection int

const (
	sectionFields compositeSection = iota
	sectionEntities
	sectionThresholds
	sectionCount
)

// CompositeView is the top-level card editor: the card form, the entity
// list, and an entry into the threshold panel. Every edit goes straight to
// the Root; the view redraws from Sync.
type CompositeView struct {
	theme styles.Theme
	sty   *styles.Styles
	root  *editor.Root
	form  components.Form

	entities []card.EntityConfig
	rules    []card.ThresholdRule

	section compositeSection
	entCur  int
	adding  bool
	input   textinput.Model
	err     string

	width  int
	height int
}

// NewCompositeView creates the composite view bound to root.
func NewCompositeView(theme styles.Theme, root *editor.Root) CompositeView {
	return CompositeView{
		theme: theme,
		sty:   styles.NewStyles(theme),
		root:  root,
		form:  components.NewForm(theme, schema.Card, root.Label, nil),
	}
}

// Sync refreshes the view from a composite rendering.
func (v *CompositeView) Sync(r editor.Rendering) {
	if r.Kind != editor.RenderComposite {
		return
	}
	v.form.SetData(r.Fields)
	v.entities = r.Entities
	v.rules = r.Thresholds
	if v.entCur >= len(v.entities) {
		v.entCur = len(v.entities) - 1
	}
	if v.entCur < 0 {
		v.entCur = 0
	}
}

// SetSize updates the available dimensions.
func (v *CompositeView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.form.SetWidth(width)
}

// Capturing reports whether a text input has the keyboard.
func (v CompositeView) Capturing() bool {
	return v.adding || v.form.Editing()
}

// Title is the panel name shown in the header.
func (v CompositeView) Title() string {
	return "Card"
}

// Update handles a key for the active section.
func (v CompositeView) Update(msg tea.Msg) (CompositeView, tea.Cmd) {
	if v.adding {
		return v.updateAdding(msg)
	}
	if v.form.Editing() {
		return v.updateForm(msg)
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch {
	case key.Matches(km, keys.DefaultKeyMap.Escape):
		v.root.OnLeave()
		return v, nil
	case key.Matches(km, keys.DefaultKeyMap.Tab):
		v.focus((v.section + 1) % sectionCount)
		return v, nil
	case km.String() == "shift+tab":
		v.focus((v.section + sectionCount - 1) % sectionCount)
		return v, nil
	case key.Matches(km, keys.DefaultKeyMap.Thresholds):
		v.root.OnOpenThresholds()
		return v, nil
	}

	switch v.section {
	case sectionFields:
		return v.updateForm(msg)
	case sectionEntities:
		return v.updateEntities(km)
	case sectionThresholds:
		if key.Matches(km, keys.DefaultKeyMap.Enter) {
			v.root.OnOpenThresholds()
		}
	}
	return v, nil
}

func (v *CompositeView) focus(s compositeSection) {
	v.section = s
	v.err = ""
	if s == sectionFields {
		v.form.Focus()
	} else {
		v.form.Blur()
	}
}

func (v CompositeView) updateForm(msg tea.Msg) (CompositeView, tea.Cmd) {
	var cmd tea.Cmd
	var change form.Change
	v.form, cmd, change = v.form.Update(msg)
	if change != nil {
		v.root.OnFieldsChanged(form.Apply(v.form.Data(), change))
	}
	return v, cmd
}

func (v CompositeView) updateEntities(km tea.KeyMsg) (CompositeView, tea.Cmd) {
	n := len(v.entities)
	switch {
	case key.Matches(km, keys.DefaultKeyMap.MoveUp):
		if v.entCur > 0 {
			v.moveEntity(v.entCur, v.entCur-1)
			v.entCur--
		}
	case key.Matches(km, keys.DefaultKeyMap.MoveDown):
		if v.entCur < n-1 {
			v.moveEntity(v.entCur, v.entCur+1)
			v.entCur++
		}
	case key.Matches(km, keys.DefaultKeyMap.Up):
		if v.entCur > 0 {
			v.entCur--
		}
	case key.Matches(km, keys.DefaultKeyMap.Down):
		if v.entCur < n-1 {
			v.entCur++
		}
	case key.Matches(km, keys.DefaultKeyMap.Enter):
		if err := v.root.OnOpenEntity(v.entCur); err != nil {
			v.err = err.Error()
		}
	case key.Matches(km, keys.DefaultKeyMap.Add):
		v.adding = true
		v.err = ""
		v.input = textinput.New()
		v.input.Placeholder = "sensor.living_room_temperature"
		v.input.CharLimit = 255
		v.input.Width = 40
		cmd := v.input.Focus()
		return v, cmd
	case key.Matches(km, keys.DefaultKeyMap.Delete):
		if n > 0 {
			list := card.CloneEntities(v.entities)
			list = append(list[:v.entCur], list[v.entCur+1:]...)
			v.root.OnEntitiesChanged(list)
		}
	}
	return v, nil
}

func (v *CompositeView) moveEntity(from, to int) {
	list := card.CloneEntities(v.entities)
	list[from], list[to] = list[to], list[from]
	v.root.OnEntitiesChanged(list)
}

func (v CompositeView) updateAdding(msg tea.Msg) (CompositeView, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.DefaultKeyMap.Escape):
			v.adding = false
			return v, nil
		case key.Matches(km, keys.DefaultKeyMap.Enter):
			id := strings.TrimSpace(v.input.Value())
			if !strings.Contains(id, ".") {
				v.err = fmt.Sprintf("%q is not an entity id", id)
				return v, nil
			}
			v.adding = false
			v.err = ""
			list := append(card.CloneEntities(v.entities), card.EntityConfig{card.KeyEntity: id})
			v.entCur = len(list) - 1
			v.root.OnEntitiesChanged(list)
			return v, nil
		}
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the three sections.
func (v CompositeView) View() string {
	var s strings.Builder
	s.WriteString("\n")
	if v.err != "" {
		s.WriteString("  " + v.sty.Error.Render(v.err) + "\n\n")
	}

	s.WriteString("  " + v.heading(sectionFields, "Card") + "\n")
	s.WriteString(v.form.View())

	s.WriteString("\n  " + v.heading(sectionEntities, v.root.Text("editor.entities")) + "\n\n")
	if len(v.entities) == 0 {
		s.WriteString("    " + v.sty.Dim.Render("No entities. Press [a] to add.") + "\n")
	}
	for i, e := range v.entities {
		s.WriteString(v.entityRow(i, e) + "\n")
	}
	if v.adding {
		s.WriteString("    " + v.sty.Label.Render("Entity: ") + v.input.View() + "\n")
	}

	s.WriteString("\n  " + v.heading(sectionThresholds, v.root.Text("editor.color_thresholds")) + "\n\n")
	indicator := "  "
	if v.section == sectionThresholds {
		indicator = v.sty.Cursor.Render(cursorMark)
	}
	summary := v.sty.Dim.Render("none")
	if len(v.rules) > 0 {
		summary = fmt.Sprintf("%d rules", len(v.rules))
	}
	s.WriteString("  " + indicator + summary + "\n")
	if len(v.rules) > 0 {
		for _, line := range strings.Split(components.RenderScale(v.theme, v.rules, 40), "\n") {
			s.WriteString("    " + line + "\n")
		}
	}

	return scroll(s.String(), v.height)
}

func (v CompositeView) heading(sec compositeSection, title string) string {
	if v.section == sec {
		return v.sty.Title.Render("--- " + title + " ---")
	}
	return v.sty.Section.Render("--- " + title + " ---")
}

func (v CompositeView) entityRow(i int, e card.EntityConfig) string {
	active := v.section == sectionEntities && i == v.entCur
	indicator := "  "
	lbl := v.sty.Label
	if active {
		indicator = v.sty.Cursor.Render(cursorMark)
		lbl = v.sty.LabelSel
	}
	name := e.DisplayName()
	if name == "" {
		name = "(no entity)"
	}
	line := fmt.Sprintf("  %s%s%s", indicator, lbl.Render(padRight(fmt.Sprintf("%d. %s", i+1, name), 32)), v.sty.Dim.Render(e.ID()))
	if c, ok := e["color"].(string); ok && c != "" {
		line += "  " + styles.Swatch(v.theme, c)
	}
	return line
}

// Hints returns the key hints for the status bar.
func (v CompositeView) Hints() []components.KeyHint {
	if v.Capturing() {
		return []components.KeyHint{{Key: "enter", Desc: "commit"}, {Key: "esc", Desc: "cancel"}}
	}
	switch v.section {
	case sectionEntities:
		return []components.KeyHint{{Key: "enter", Desc: "edit"}, {Key: "a", Desc: "add"}, {Key: "d", Desc: "delete"},
			{Key: "K/J", Desc: "move"}, {Key: "tab", Desc: "section"}, {Key: "esc", Desc: "quit"}}
	case sectionThresholds:
		return []components.KeyHint{{Key: "enter", Desc: "edit"}, {Key: "tab", Desc: "section"}, {Key: "esc", Desc: "quit"}}
	}
	return []components.KeyHint{{Key: "enter", Desc: "edit"}, {Key: "x", Desc: "clear"}, {Key: "t", Desc: "thresholds"},
		{Key: "tab", Desc: "section"}, {Key: "u", Desc: "undo"}, {Key: "?", Desc: "help"}, {Key: "esc", Desc: "quit"}}
}
