package views

import (
	"fmt"
	"strings"

	"github.com/tonhe/mgce/tui/components"
	"github.com/tonhe/mgce/tui/styles"
)

// HelpView renders a modal overlay showing all keyboard shortcuts.
type HelpView struct {
	theme   styles.Theme
	sty     *styles.Styles
	width   int
	height  int
	visible bool
}

// NewHelpView creates a new HelpView with the given theme.
func NewHelpView(theme styles.Theme) HelpView {
	return HelpView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// Toggle flips the help overlay visibility.
func (v *HelpView) Toggle() {
	v.visible = !v.visible
}

// IsVisible returns whether the help overlay is currently shown.
func (v HelpView) IsVisible() bool {
	return v.visible
}

// SetSize updates the available dimensions for the overlay.
func (v *HelpView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

type helpSection struct {
	title    string
	bindings [][2]string
}

var helpSections = []helpSection{
	{"Global", [][2]string{
		{"Ctrl+C", "Quit"},
		{"?", "Toggle this help"},
		{"u", "Undo last change"},
		{"D", "Show session changes"},
		{"o", "Open another card"},
		{"b", "Choose MQTT broker"},
		{"T", "Next theme"},
	}},
	{"Card", [][2]string{
		{"Tab", "Next section"},
		{"Enter / Space", "Edit / toggle / cycle"},
		{"Left / Right", "Cycle options"},
		{"x", "Clear field"},
		{"t", "Color thresholds"},
		{"Esc", "Quit"},
	}},
	{"Entities", [][2]string{
		{"Enter", "Edit entity"},
		{"a / d", "Add / delete"},
		{"K / J", "Move up / down"},
	}},
	{"Entity / Thresholds", [][2]string{
		{"Enter", "Edit"},
		{"Tab", "Switch column"},
		{"Esc", "Back to card"},
	}},
}

// View renders the help overlay as a centered modal box.
func (v HelpView) View() string {
	bindingLine := func(keys, desc string) string {
		return fmt.Sprintf("  %s  %s",
			v.sty.HelpKey.Render(padRight(keys, 16)),
			v.sty.Row.Render(desc),
		)
	}

	var lines []string
	for _, sec := range helpSections {
		lines = append(lines, v.sty.Section.Render(sec.title))
		for _, b := range sec.bindings {
			lines = append(lines, bindingLine(b[0], b[1]))
		}
		lines = append(lines, "")
	}
	lines = append(lines, v.sty.Help.Render("[?] close"))

	return components.RenderModal(v.theme, "Keyboard Shortcuts", strings.Join(lines, "\n"),
		components.ModalWidth(v.width, 44, 56), v.width, v.height)
}
