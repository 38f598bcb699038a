package card

import (
	"reflect"
	"testing"
)

func TestCloneIsDeep(t *testing.T) {
	cfg := Configuration{
		Fields:          Values{"name": "A", "show": map[string]any{"legend": true}},
		Entities:        []EntityConfig{{"entity": "sensor.a"}},
		ColorThresholds: []ThresholdRule{NewRule(1, "#fff")},
	}
	cp := cfg.Clone()
	if !reflect.DeepEqual(cfg, cp) {
		t.Fatalf("expected clone to equal source:\n%#v\n%#v", cfg, cp)
	}

	cp.Fields["name"] = "B"
	cp.Fields["show"].(map[string]any)["legend"] = false
	cp.Entities[0]["entity"] = "sensor.b"
	cp.ColorThresholds[0][KeyColor] = "#000"

	if cfg.Fields["name"] != "A" {
		t.Error("clone shares top-level fields")
	}
	if cfg.Fields["show"].(map[string]any)["legend"] != true {
		t.Error("clone shares nested maps")
	}
	if cfg.Entities[0].ID() != "sensor.a" {
		t.Error("clone shares entities")
	}
	if cfg.ColorThresholds[0].Color() != "#fff" {
		t.Error("clone shares thresholds")
	}
}

func TestNormalize(t *testing.T) {
	var cfg Configuration
	cfg.Normalize()
	if cfg.Fields == nil || cfg.Entities == nil || cfg.ColorThresholds == nil {
		t.Errorf("expected non-nil fields after Normalize, got %#v", cfg)
	}
}

func TestToMap(t *testing.T) {
	cfg := New()
	cfg.Entities = append(cfg.Entities, EntityConfig{"entity": "sensor.a"})
	m := cfg.ToMap()
	if m[KeyType] != Type {
		t.Errorf("expected type %q, got %v", Type, m[KeyType])
	}
	if _, ok := m[KeyColorThresholds]; ok {
		t.Error("expected empty thresholds to be omitted")
	}
	ents, ok := m[KeyEntities].([]map[string]any)
	if !ok || len(ents) != 1 {
		t.Fatalf("expected one entity map, got %#v", m[KeyEntities])
	}
}

func TestDiffConfigs(t *testing.T) {
	before := New()
	before.Fields["name"] = "Old"
	after := before.Clone()
	after.Fields["name"] = "New"

	lines, err := DiffConfigs(before, &after)
	if err != nil {
		t.Fatalf("DiffConfigs() error: %v", err)
	}
	if !Changed(lines) {
		t.Fatal("expected a change")
	}
	var sawDel, sawIns bool
	for _, l := range lines {
		if l.String() == "-name: Old" {
			sawDel = true
		}
		if l.String() == "+name: New" {
			sawIns = true
		}
	}
	if !sawDel || !sawIns {
		t.Errorf("expected -name: Old and +name: New, got %v", lines)
	}

	same, _ := DiffConfigs(before, before)
	if Changed(same) {
		t.Error("expected no change for identical configs")
	}
}

func TestThresholdRuleValue(t *testing.T) {
	tests := []struct {
		rule ThresholdRule
		want float64
		ok   bool
	}{
		{ThresholdRule{KeyValue: 10}, 10, true},
		{ThresholdRule{KeyValue: 2.5}, 2.5, true},
		{ThresholdRule{KeyValue: " 20 "}, 20, true},
		{ThresholdRule{KeyValue: "warm"}, 0, false},
		{ThresholdRule{KeyColor: "#f00"}, 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.rule.Value()
		if got != tt.want || ok != tt.ok {
			t.Errorf("Value() of %v: expected %v/%v, got %v/%v", tt.rule, tt.want, tt.ok, got, ok)
		}
	}
}

func TestThresholdRuleWithCopies(t *testing.T) {
	r := ThresholdRule{KeyColor: "#f00", "label": "hot"}
	next := r.WithValue(5).WithColor("#0f0")
	if _, ok := r[KeyValue]; ok {
		t.Error("expected WithValue to leave the source rule alone")
	}
	if r.Color() != "#f00" {
		t.Errorf("expected source color #f00, got %q", r.Color())
	}
	if v, _ := next.Value(); v != 5 || next.Color() != "#0f0" || next["label"] != "hot" {
		t.Errorf("unexpected rule %v", next)
	}
}
