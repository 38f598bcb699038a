package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/mgce/tui/styles"
)

// Status is the state the status bar reports.
type Status struct {
	Message   string
	IsError   bool
	LastSaved time.Time
	Revisions int
	Session   uint64
}

// RenderStatusBar renders the two-line footer: save state and message on
// top, key hints below.
func RenderStatusBar(theme styles.Theme, st Status, hints []KeyHint, width int) string {
	bg := theme.Base01
	bgStyle := lipgloss.NewStyle().Background(bg)
	sep := lipgloss.NewStyle().Foreground(theme.Base03).Background(bg).Render(" | ")
	plain := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg)

	saved := "not saved"
	if !st.LastSaved.IsZero() {
		saved = "saved " + st.LastSaved.Format("15:04:05")
	}
	top := bgStyle.Render(" ") + plain.Render(saved) + sep +
		plain.Render(fmt.Sprintf("%d revisions", st.Revisions)) + sep +
		plain.Render(fmt.Sprintf("session %d", st.Session))
	if st.Message != "" {
		msgColor := theme.Base0B
		if st.IsError {
			msgColor = theme.Base08
		}
		top += sep + lipgloss.NewStyle().Foreground(msgColor).Background(bg).Render(st.Message)
	}
	top = fill(bgStyle, top, width)

	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Background(bg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base04).Background(bg)
	spacer := bgStyle.Render("  ")
	line := bgStyle.Render(" ")
	for i, h := range hints {
		if i > 0 {
			line += spacer
		}
		line += keyStyle.Render(h.Key) + descStyle.Render(":"+h.Desc)
	}
	line = fill(bgStyle, line, width)

	return lipgloss.JoinVertical(lipgloss.Left, top, line)
}

func fill(bg lipgloss.Style, s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		s += bg.Render(strings.Repeat(" ", width-w))
	}
	return s
}
