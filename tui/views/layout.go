package views

import (
	"strings"

	"github.com/tonhe/mgce/tui/components"
)

func padRight(s string, width int) string {
	return components.PadRight(s, width)
}

// cursorMark is how list rows mark the highlighted row; scroll keeps the
// line carrying it on screen.
const cursorMark = "> "

// scroll clips content to height lines, keeping the highlighted row
// visible with a little context above it.
func scroll(content string, height int) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if height <= 0 || len(lines) <= height {
		return content
	}
	focus := 0
	for i, l := range lines {
		if strings.Contains(l, cursorMark) {
			focus = i
			break
		}
	}
	start := focus - height/3
	if start < 0 {
		start = 0
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return strings.Join(lines[start:start+height], "\n")
}
