package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds the themed lipgloss styles shared by views.
type Styles struct {
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style

	// Panel chrome
	Title   lipgloss.Style
	Section lipgloss.Style
	Help    lipgloss.Style
	HelpKey lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
	Cursor  lipgloss.Style

	// Rows
	Row      lipgloss.Style
	RowSel   lipgloss.Style
	Label    lipgloss.Style
	LabelSel lipgloss.Style
	Value    lipgloss.Style
	Helper   lipgloss.Style

	// Values
	BoolOn  lipgloss.Style
	BoolOff lipgloss.Style
	Option  lipgloss.Style

	// Diff
	DiffInsert lipgloss.Style
	DiffDelete lipgloss.Style
	DiffEqual  lipgloss.Style

	SparklineStyle lipgloss.Style

	// Modal / overlay
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style

	Input       lipgloss.Style
	InputActive lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(theme Theme) *Styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base01).
			Bold(true).
			Padding(0, 1),
		HeaderTitle: fg(theme.Base0D).Bold(true),

		Title:   fg(theme.Base0D).Bold(true),
		Section: fg(theme.Base0E).Bold(true),
		Help:    fg(theme.Base04),
		HelpKey: fg(theme.Base0D).Bold(true),
		Error:   fg(theme.Base08),
		Dim:     fg(theme.Base03),
		Cursor:  fg(theme.Base0D).Bold(true),

		Row:      fg(theme.Base05),
		RowSel:   fg(theme.Base06).Background(theme.Base02),
		Label:    fg(theme.Base04),
		LabelSel: fg(theme.Base0D).Bold(true),
		Value:    fg(theme.Base06),
		Helper:   fg(theme.Base03).Italic(true),

		BoolOn:  fg(theme.Base0B),
		BoolOff: fg(theme.Base08),
		Option:  fg(theme.Base0C),

		DiffInsert: fg(theme.Base0B),
		DiffDelete: fg(theme.Base08),
		DiffEqual:  fg(theme.Base04),

		SparklineStyle: fg(theme.Base0C),

		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0D).
			BorderBackground(theme.Base00).
			Background(theme.Base00).
			Padding(1, 2),
		ModalTitle: fg(theme.Base0D).Bold(true),

		Input:       fg(theme.Base05),
		InputActive: fg(theme.Base06).Background(theme.Base02),
	}
}

// Swatch renders a two-cell block in the given hex color. Invalid colors
// render as a dim placeholder.
func Swatch(theme Theme, hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return lipgloss.NewStyle().Foreground(theme.Base03).Render("··")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}
