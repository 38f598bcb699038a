package components

import (
	"strings"
	"testing"

	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/tui/styles"
)

func TestColorAt(t *testing.T) {
	rules := []card.ThresholdRule{
		card.NewRule(20, "#ff0000"),
		card.NewRule(0, "#0000ff"),
		card.NewRule(10, "#00ff00"),
		{card.KeyColor: "#ffffff"},
	}
	tests := []struct {
		v    float64
		want string
	}{
		{-5, "#0000ff"},
		{0, "#0000ff"},
		{9.9, "#0000ff"},
		{10, "#00ff00"},
		{25, "#ff0000"},
	}
	for _, tt := range tests {
		if got := ColorAt(rules, tt.v); got != tt.want {
			t.Errorf("ColorAt(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
	if ColorAt(nil, 1) != "" {
		t.Error("expected no color without rules")
	}
}

func TestRenderScale(t *testing.T) {
	rules := []card.ThresholdRule{card.NewRule(0, "#0000ff"), {card.KeyValue: "30", card.KeyColor: "#ff0000"}}
	out := RenderScale(styles.DefaultTheme, rules, 20)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected bar and axis, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "0") || !strings.Contains(lines[1], "30") {
		t.Errorf("expected axis labels 0 and 30, got %q", lines[1])
	}
	if strings.Count(lines[0], "█") != 20 {
		t.Errorf("expected 20 cells, got %q", lines[0])
	}
}
