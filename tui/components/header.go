package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/mgce/tui/styles"
)

// HeaderInfo is what the header bar shows.
type HeaderInfo struct {
	Card    string // card file base name
	Panel   string // active panel title
	Broker  string // connected MQTT broker, "" when none
	Version string
	Build   string
}

// RenderHeader renders the top header bar with app name, card, panel,
// MQTT status, and version.
func RenderHeader(theme styles.Theme, info HeaderInfo, width int) string {
	seg := func(c lipgloss.Color, s string) string {
		return lipgloss.NewStyle().Foreground(c).Background(theme.Base01).Render(s)
	}

	app := lipgloss.NewStyle().
		Foreground(theme.Base0D).
		Background(theme.Base01).
		Bold(true).
		Render("mgce")

	cardName := info.Card
	if cardName == "" {
		cardName = "(no card)"
	}

	mqtt := seg(theme.Base03, "mqtt: off")
	if info.Broker != "" {
		mqtt = seg(theme.Base0B, "mqtt: "+info.Broker)
	}

	ver := "v" + info.Version
	if info.Build != "" {
		ver += "  " + info.Build
	}

	content := fmt.Sprintf(" %s  |  %s  |  %s  |  %s  |  %s ",
		app, seg(theme.Base05, cardName), seg(theme.Base0E, info.Panel), mqtt, seg(theme.Base04, ver))

	return lipgloss.NewStyle().
		Background(theme.Base01).
		Width(width).
		Render(content)
}
