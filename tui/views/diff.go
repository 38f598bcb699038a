package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/tui/components"
	"github.com/tonhe/mgce/tui/keys"
	"github.com/tonhe/mgce/tui/styles"
)

// DiffView is a modal showing what changed between the configuration the
// session started with and the current one.
type DiffView struct {
	theme  styles.Theme
	sty    *styles.Styles
	lines  []card.DiffLine
	offset int
	width  int
	height int
}

// NewDiffView creates an empty diff view.
func NewDiffView(theme styles.Theme) DiffView {
	return DiffView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetLines replaces the diff being shown.
func (v *DiffView) SetLines(lines []card.DiffLine) {
	v.lines = lines
	v.offset = 0
}

// SetSize updates the available dimensions.
func (v *DiffView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func (v DiffView) pageSize() int {
	h := v.height - 10
	if h < 5 {
		h = 5
	}
	return h
}

// Update scrolls the diff. It reports true when the modal should close.
func (v DiffView) Update(msg tea.Msg) (DiffView, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, false
	}
	maxOffset := len(v.lines) - v.pageSize()
	if maxOffset < 0 {
		maxOffset = 0
	}
	switch {
	case key.Matches(km, keys.DefaultKeyMap.Escape), key.Matches(km, keys.DefaultKeyMap.Diff):
		return v, true
	case key.Matches(km, keys.DefaultKeyMap.Up):
		if v.offset > 0 {
			v.offset--
		}
	case key.Matches(km, keys.DefaultKeyMap.Down):
		if v.offset < maxOffset {
			v.offset++
		}
	}
	return v, false
}

// View renders the visible slice of the diff in a modal.
func (v DiffView) View() string {
	modalWidth := components.ModalWidth(v.width, 50, 100)
	var out []string
	if !card.Changed(v.lines) {
		out = append(out, v.sty.Dim.Render("No changes this session."))
	} else {
		end := v.offset + v.pageSize()
		if end > len(v.lines) {
			end = len(v.lines)
		}
		for _, l := range v.lines[v.offset:end] {
			st := v.sty.DiffEqual
			switch l.Op {
			case card.DiffInsert:
				st = v.sty.DiffInsert
			case card.DiffDelete:
				st = v.sty.DiffDelete
			}
			out = append(out, st.Render(padRight(l.String(), modalWidth-8)))
		}
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(out, "\n"),
		"",
		components.RenderHints(v.theme,
			components.KeyHint{Key: "up/down", Desc: "scroll"}, components.KeyHint{Key: "esc", Desc: "close"}),
	)
	return components.RenderModal(v.theme, "Changes", content, modalWidth, v.width, v.height)
}
