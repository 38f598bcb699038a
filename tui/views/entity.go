package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/mgce/internal/editor"
	"github.com/tonhe/mgce/internal/form"
	"github.com/tonhe/mgce/internal/schema"
	"github.com/tonhe/mgce/tui/components"
	"github.com/tonhe/mgce/tui/keys"
	"github.com/tonhe/mgce/tui/styles"
)

// EntityView shows the single-entity panel. The panel is rebuilt whenever
// the editor's scope changes, so a view left over from an earlier entity
// can never write into the current one.
type EntityView struct {
	theme styles.Theme
	sty   *styles.Styles
	panel *editor.EntityPanel
	scope editor.Scope
	index int
	form  components.Form

	width  int
	height int
}

// NewEntityView creates an empty entity view.
func NewEntityView(theme styles.Theme) EntityView {
	return EntityView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// Sync binds the view to the root's current entity scope.
func (v *EntityView) Sync(root *editor.Root) {
	r := root.Render()
	if r.Kind != editor.RenderEntity {
		v.panel = nil
		return
	}
	if v.panel == nil || r.Scope != v.scope {
		v.panel = root.EntityPanel()
		v.scope = r.Scope
		v.index = r.Index
		v.form = components.NewForm(v.theme, schema.Entity, v.panel.Label, v.panel.Helper)
		v.form.SetWidth(v.width)
	}
	v.form.SetData(v.panel.Data())
}

// SetSize updates the available dimensions.
func (v *EntityView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.form.SetWidth(width)
}

// Capturing reports whether a text input has the keyboard.
func (v EntityView) Capturing() bool {
	return v.form.Editing()
}

// Title is the panel name shown in the header.
func (v EntityView) Title() string {
	if v.panel == nil {
		return ""
	}
	return v.panel.Title()
}

// Update routes keys to the form; esc goes back to the composite view.
func (v EntityView) Update(msg tea.Msg) (EntityView, tea.Cmd) {
	if v.panel == nil {
		return v, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok && !v.form.Editing() && key.Matches(km, keys.DefaultKeyMap.Escape) {
		v.panel.GoBack()
		return v, nil
	}
	var cmd tea.Cmd
	var change form.Change
	v.form, cmd, change = v.form.Update(msg)
	if change != nil {
		v.panel.OnValueChanged(change)
		v.form.SetData(v.panel.Data())
	}
	return v, cmd
}

// View renders the panel heading and form.
func (v EntityView) View() string {
	if v.panel == nil {
		return ""
	}
	var s strings.Builder
	s.WriteString("\n")
	name := v.panel.Config().DisplayName()
	s.WriteString("  " + v.sty.Title.Render(fmt.Sprintf("%s #%d: %s", v.panel.Title(), v.index+1, name)) + "\n")
	s.WriteString(v.form.View())
	return scroll(s.String(), v.height)
}

// Hints returns the key hints for the status bar.
func (v EntityView) Hints() []components.KeyHint {
	if v.Capturing() {
		return []components.KeyHint{{Key: "enter", Desc: "commit"}, {Key: "esc", Desc: "cancel"}}
	}
	return []components.KeyHint{{Key: "enter", Desc: "edit"}, {Key: "space", Desc: "toggle"}, {Key: "x", Desc: "clear"},
		{Key: "u", Desc: "undo"}, {Key: "esc", Desc: "back"}}
}
