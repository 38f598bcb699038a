package card

import (
	"reflect"
	"strings"
	"testing"
)

func TestThresholdRulesRoundTripUnchanged(t *testing.T) {
	src := "type: custom:mini-graph-card\nentities: []\ncolor_thresholds:\n" +
		"  - value: 10\n" +
		"  - color: '#f00'\n" +
		"  - value: '20'\n    color: '#0f0'\n"
	cfg, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cfg.ColorThresholds) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(cfg.ColorThresholds))
	}
	if v, ok := cfg.ColorThresholds[2].Value(); !ok || v != 20 {
		t.Errorf("expected quoted value to read as 20, got %v/%v", v, ok)
	}

	cfg.Fields["name"] = "Renamed"
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	out := string(data)
	if strings.Contains(out, `color: ""`) {
		t.Errorf("expected no empty color added, got:\n%s", out)
	}
	if strings.Contains(out, "value: 0") {
		t.Errorf("expected no zero value added, got:\n%s", out)
	}
	if !strings.Contains(out, `value: "20"`) {
		t.Errorf("expected quoted value kept as a string, got:\n%s", out)
	}

	again, err := Parse(data)
	if err != nil {
		t.Fatalf("reparse error: %v", err)
	}
	if !reflect.DeepEqual(cfg.ColorThresholds, again.ColorThresholds) {
		t.Errorf("expected rules unchanged:\n%v\n%v", cfg.ColorThresholds, again.ColorThresholds)
	}
}

func TestThresholdRuleNonMappingIsEmpty(t *testing.T) {
	cfg, err := Parse([]byte("color_thresholds:\n  - 12\n  - value: 3\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cfg.ColorThresholds) != 2 || len(cfg.ColorThresholds[0]) != 0 {
		t.Errorf("expected the scalar entry coerced to an empty rule, got %v", cfg.ColorThresholds)
	}
}
