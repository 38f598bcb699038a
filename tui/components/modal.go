package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/mgce/tui/styles"
)

// ModalWidth picks a modal width for a terminal width, clamped to
// [min, max].
func ModalWidth(termWidth, min, max int) int {
	w := min
	if termWidth > 60 {
		w = termWidth / 2
	}
	if w > max {
		w = max
	}
	if w < min {
		w = min
	}
	return w
}

// RenderModal draws content in a rounded box with title set into the top
// border, centered in width x height.
func RenderModal(theme styles.Theme, title, content string, modalWidth, width, height int) string {
	sty := styles.NewStyles(theme)
	innerWidth := modalWidth - 6 // border + padding

	body := sty.ModalBorder.BorderTop(false).Width(innerWidth).Render(content)

	borderFg := lipgloss.NewStyle().Foreground(theme.Base0D).Background(theme.Base00)
	titleText := " " + title + " "
	rightDashes := lipgloss.Width(body) - 3 - lipgloss.Width(titleText)
	if rightDashes < 0 {
		rightDashes = 0
	}
	top := borderFg.Render("╭─") + sty.ModalTitle.Render(titleText) +
		borderFg.Render(strings.Repeat("─", rightDashes)+"╮")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, top+"\n"+body)
}

// KeyHint is one key/description pair in a help line.
type KeyHint struct {
	Key  string
	Desc string
}

// RenderHints renders hints as "key:desc" pairs.
func RenderHints(theme styles.Theme, hints ...KeyHint) string {
	sty := styles.NewStyles(theme)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = sty.HelpKey.Render(h.Key) + sty.Help.Render(":"+h.Desc)
	}
	return strings.Join(parts, "  ")
}
