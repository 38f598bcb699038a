package card

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCardYAML = `
type: custom:mini-graph-card
name: Living Room
hours_to_show: 48
show:
  legend: false
  fill: fade
custom_flag: keep-me
entities:
  - sensor.temperature
  - entity: sensor.humidity
    name: Humidity
    color: "#00aaff"
    y_axis: secondary
color_thresholds:
  - value: 18
    color: "#0000ff"
  - value: 25
    color: "#ff0000"
    label: hot
`

func TestLoadCard(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "living.yaml")
	os.WriteFile(path, []byte(testCardYAML), 0644)

	cfg, err := LoadCard(path)
	if err != nil {
		t.Fatalf("LoadCard() error: %v", err)
	}
	if cfg.Fields["name"] != "Living Room" {
		t.Errorf("expected name 'Living Room', got %v", cfg.Fields["name"])
	}
	if cfg.Fields["hours_to_show"] != 48 {
		t.Errorf("expected hours_to_show 48, got %v", cfg.Fields["hours_to_show"])
	}
	if len(cfg.Entities) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(cfg.Entities))
	}
	if cfg.Entities[0].ID() != "sensor.temperature" {
		t.Errorf("expected shorthand entity 'sensor.temperature', got %q", cfg.Entities[0].ID())
	}
	if cfg.Entities[1].DisplayName() != "Humidity" {
		t.Errorf("expected display name 'Humidity', got %q", cfg.Entities[1].DisplayName())
	}
	if len(cfg.ColorThresholds) != 2 {
		t.Fatalf("expected 2 thresholds, got %d", len(cfg.ColorThresholds))
	}
	if v, _ := cfg.ColorThresholds[1].Value(); v != 25 || cfg.ColorThresholds[1]["label"] != "hot" {
		t.Errorf("unexpected threshold %+v", cfg.ColorThresholds[1])
	}
}

func TestLoadCardMissingType(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "bare.yaml")
	os.WriteFile(path, []byte("name: Bare\n"), 0644)

	cfg, err := LoadCard(path)
	if err != nil {
		t.Fatalf("LoadCard() error: %v", err)
	}
	if cfg.Fields[KeyType] != Type {
		t.Errorf("expected type %q, got %v", Type, cfg.Fields[KeyType])
	}
	if cfg.Entities == nil || len(cfg.Entities) != 0 {
		t.Errorf("expected empty non-nil entities, got %#v", cfg.Entities)
	}
}

func TestLoadCardCoercesMalformedLists(t *testing.T) {
	cfg, err := Parse([]byte("name: X\nentities: sensor.a\ncolor_thresholds: {value: 1}\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Entities == nil || len(cfg.Entities) != 0 {
		t.Errorf("expected entities coerced to empty list, got %#v", cfg.Entities)
	}
	if cfg.ColorThresholds == nil || len(cfg.ColorThresholds) != 0 {
		t.Errorf("expected thresholds coerced to empty list, got %#v", cfg.ColorThresholds)
	}
}

func TestParseRejectsNonMapping(t *testing.T) {
	if _, err := Parse([]byte("- a\n- b\n")); err == nil {
		t.Error("expected error for a sequence document")
	}
}

func TestSaveCardRoundTripKeepsUnknownKeys(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "in.yaml")
	dst := filepath.Join(tmp, "out.yaml")
	os.WriteFile(src, []byte(testCardYAML), 0644)

	cfg, err := LoadCard(src)
	if err != nil {
		t.Fatalf("LoadCard() error: %v", err)
	}
	if err := SaveCard(cfg, dst); err != nil {
		t.Fatalf("SaveCard() error: %v", err)
	}
	loaded, err := LoadCard(dst)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if loaded.Fields["custom_flag"] != "keep-me" {
		t.Errorf("expected unknown key to survive, got %v", loaded.Fields["custom_flag"])
	}
	if loaded.ColorThresholds[1]["label"] != "hot" {
		t.Errorf("expected threshold extra key to survive, got %v", loaded.ColorThresholds[1])
	}

	data, _ := os.ReadFile(dst)
	if !strings.HasPrefix(string(data), "type: custom:mini-graph-card\nname: Living Room\n") {
		t.Errorf("expected type and name first, got:\n%s", data)
	}
	if strings.Index(string(data), "custom_flag") > strings.Index(string(data), "entities:") {
		t.Errorf("expected unknown keys before entities, got:\n%s", data)
	}
}

func TestSaveCardOmitsEmptyThresholds(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "out.yaml")
	cfg := New()
	cfg.Entities = append(cfg.Entities, EntityConfig{"entity": "sensor.a"})
	if err := SaveCard(cfg, path); err != nil {
		t.Fatalf("SaveCard() error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "color_thresholds") {
		t.Errorf("expected no color_thresholds key, got:\n%s", data)
	}
	if !strings.Contains(string(data), "entity: sensor.a") {
		t.Errorf("expected entity to be written, got:\n%s", data)
	}
}

func TestListCards(t *testing.T) {
	tmp := t.TempDir()
	os.WriteFile(filepath.Join(tmp, "a.yaml"), []byte(testCardYAML), 0644)
	os.WriteFile(filepath.Join(tmp, "b.yml"), []byte(testCardYAML), 0644)
	os.WriteFile(filepath.Join(tmp, "not-yaml.txt"), []byte("ignore"), 0644)

	names, err := ListCards(tmp)
	if err != nil {
		t.Fatalf("ListCards() error: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("expected 2 cards, got %d", len(names))
	}
	if got := ResolveCardPath(tmp, "b"); filepath.Base(got) != "b.yml" {
		t.Errorf("expected b.yml, got %q", got)
	}
}
