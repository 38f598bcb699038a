package views

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/tui/components"
	"github.com/tonhe/mgce/tui/keys"
	"github.com/tonhe/mgce/tui/styles"
)

// PickerAction describes what the app should do after a picker key press.
type PickerAction int

const (
	// ActionNone means no action needed.
	ActionNone PickerAction = iota
	// ActionClose means the user dismissed the picker.
	ActionClose
	// ActionOpen means the user selected a card file; see Path.
	ActionOpen
	// ActionNew means the user named a new card; see Path.
	ActionNew
)

// PickerItem is one card file in the picker list.
type PickerItem struct {
	Name     string
	FilePath string
	Entities int
	Err      error
}

// PickerView is a modal that lists card files in the cards directory.
type PickerView struct {
	theme  styles.Theme
	sty    *styles.Styles
	dir    string
	items  []PickerItem
	cursor int
	width  int
	height int

	naming bool
	input  textinput.Model
	err    string
	path   string
}

// NewPickerView creates a picker over dir.
func NewPickerView(theme styles.Theme, dir string) PickerView {
	return PickerView{
		theme: theme,
		sty:   styles.NewStyles(theme),
		dir:   dir,
	}
}

// Refresh rescans the cards directory.
func (v *PickerView) Refresh() {
	v.items = nil
	names, err := card.ListCards(v.dir)
	if err != nil {
		v.err = err.Error()
		return
	}
	for _, name := range names {
		item := PickerItem{Name: name, FilePath: card.ResolveCardPath(v.dir, name)}
		if cfg, err := card.LoadCard(item.FilePath); err != nil {
			item.Err = err
		} else {
			item.Entities = len(cfg.Entities)
		}
		v.items = append(v.items, item)
	}
	if v.cursor >= len(v.items) {
		v.cursor = len(v.items) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// SetSize updates the available dimensions for the overlay.
func (v *PickerView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Path is the file chosen by the last ActionOpen or ActionNew.
func (v PickerView) Path() string {
	return v.path
}

// Capturing reports whether a text input has the keyboard.
func (v PickerView) Capturing() bool {
	return v.naming
}

// Update handles key messages for the picker.
func (v PickerView) Update(msg tea.Msg) (PickerView, tea.Cmd, PickerAction) {
	if v.naming {
		return v.updateNaming(msg)
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil, ActionNone
	}
	switch {
	case key.Matches(km, keys.DefaultKeyMap.Escape):
		return v, nil, ActionClose
	case key.Matches(km, keys.DefaultKeyMap.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(km, keys.DefaultKeyMap.Down):
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}
	case key.Matches(km, keys.DefaultKeyMap.Enter):
		if len(v.items) == 0 {
			return v, nil, ActionNone
		}
		item := v.items[v.cursor]
		if item.Err != nil {
			v.err = item.Err.Error()
			return v, nil, ActionNone
		}
		v.path = item.FilePath
		return v, nil, ActionOpen
	case km.String() == "n":
		v.naming = true
		v.err = ""
		v.input = textinput.New()
		v.input.Placeholder = "living-room-temperature"
		v.input.CharLimit = 64
		v.input.Width = 32
		cmd := v.input.Focus()
		return v, cmd, ActionNone
	}
	return v, nil, ActionNone
}

func (v PickerView) updateNaming(msg tea.Msg) (PickerView, tea.Cmd, PickerAction) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.DefaultKeyMap.Escape):
			v.naming = false
			return v, nil, ActionNone
		case key.Matches(km, keys.DefaultKeyMap.Enter):
			slug := slugify(v.input.Value())
			if slug == "" {
				v.err = "card name is required"
				return v, nil, ActionNone
			}
			v.naming = false
			v.path = filepath.Join(v.dir, slug+".yaml")
			return v, nil, ActionNew
		}
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd, ActionNone
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-"), "-")
}

// View renders the picker as a centered modal box.
func (v PickerView) View() string {
	modalWidth := components.ModalWidth(v.width, 44, 64)
	innerWidth := modalWidth - 6

	var lines []string
	if v.err != "" {
		lines = append(lines, v.sty.Error.Render(v.err), "")
	}
	switch {
	case v.naming:
		lines = append(lines, v.sty.Label.Render("New card name: ")+v.input.View())
	case len(v.items) == 0:
		lines = append(lines,
			v.sty.Dim.Render("No cards in "+v.dir),
			"",
			v.sty.Dim.Render("Press [n] to create one."))
	default:
		for i, item := range v.items {
			lines = append(lines, v.renderItem(item, i == v.cursor, innerWidth))
		}
	}

	hints := []components.KeyHint{{Key: "enter", Desc: "open"}, {Key: "n", Desc: "new"}, {Key: "esc", Desc: "close"}}
	if v.naming {
		hints = []components.KeyHint{{Key: "enter", Desc: "create"}, {Key: "esc", Desc: "cancel"}}
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(lines, "\n"),
		"",
		components.RenderHints(v.theme, hints...),
	)
	return components.RenderModal(v.theme, "Cards", content, modalWidth, v.width, v.height)
}

func (v PickerView) renderItem(item PickerItem, selected bool, width int) string {
	cursor := "  "
	nameStyle := v.sty.Row
	if selected {
		cursor = v.sty.Cursor.Render("> ")
		nameStyle = nameStyle.Foreground(v.theme.Base06).Bold(true)
	}

	status := v.sty.Dim.Render(pluralize(item.Entities, "entity", "entities"))
	statusLen := lipgloss.Width(status)
	if item.Err != nil {
		status = v.sty.Error.Render("invalid")
		statusLen = len("invalid")
	}

	pad := width - 2 - len(item.Name) - statusLen
	if pad < 2 {
		pad = 2
	}
	return cursor + nameStyle.Render(item.Name) + strings.Repeat(" ", pad) + status
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
