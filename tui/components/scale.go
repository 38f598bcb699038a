package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/tui/styles"
)

// ColorAt returns the color of the rule a value falls under: the rule
// with the highest value not above v. Values below every rule take the
// lowest rule's color. Rules without a numeric value are skipped.
func ColorAt(rules []card.ThresholdRule, v float64) string {
	return colorAt(sortedRules(rules), v)
}

func colorAt(sorted []stop, v float64) string {
	if len(sorted) == 0 {
		return ""
	}
	color := sorted[0].color
	for _, r := range sorted {
		if r.value > v {
			break
		}
		color = r.color
	}
	return color
}

type stop struct {
	value float64
	color string
}

func sortedRules(rules []card.ThresholdRule) []stop {
	out := make([]stop, 0, len(rules))
	for _, r := range rules {
		if v, ok := r.Value(); ok {
			out = append(out, stop{value: v, color: r.Color()})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].value < out[j].value })
	return out
}

// RenderScale draws the color a graph line takes across the range of the
// rules, with the lowest and highest values labeled underneath.
func RenderScale(theme styles.Theme, rules []card.ThresholdRule, width int) string {
	if width < 10 {
		width = 10
	}
	dim := lipgloss.NewStyle().Foreground(theme.Base03)
	sorted := sortedRules(rules)
	if len(sorted) == 0 {
		return dim.Render(strings.Repeat("─", width))
	}
	lo, hi := sorted[0].value, sorted[len(sorted)-1].value
	if hi == lo {
		hi = lo + 1
	}
	// Leave room past the top rule so its color is visible.
	span := (hi - lo) * float64(width) / float64(width-width/8)

	var bar strings.Builder
	for i := 0; i < width; i++ {
		v := lo + span*float64(i)/float64(width)
		c := colorAt(sorted, v)
		st := dim
		if len(c) == 7 && c[0] == '#' {
			st = lipgloss.NewStyle().Foreground(lipgloss.Color(c))
		}
		bar.WriteString(st.Render("█"))
	}

	left := FormatValue(lo)
	right := FormatValue(sorted[len(sorted)-1].value)
	gap := width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	axis := dim.Render(left + strings.Repeat(" ", gap) + right)
	return bar.String() + "\n" + axis
}
