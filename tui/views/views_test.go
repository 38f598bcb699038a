package views

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/editor"
	"github.com/tonhe/mgce/internal/locale"
	"github.com/tonhe/mgce/tui/styles"
)

func newRoot(published *[]card.Configuration) *editor.Root {
	root := editor.NewRoot(editor.Options{
		Publish: func(c card.Configuration) { *published = append(*published, c) },
		Host:    locale.Host("en"),
		Panel:   locale.Panel("en"),
	})
	root.SetConfiguration(card.Configuration{
		Fields:   card.Values{"type": card.Type, "name": "Test"},
		Entities: []card.EntityConfig{{"entity": "sensor.a"}, {"entity": "sensor.b"}},
		ColorThresholds: []card.ThresholdRule{
			card.NewRule(0, "#0000ff"),
			card.NewRule(20, "#ff0000"),
		},
	})
	return root
}

func value(r card.ThresholdRule) float64 {
	v, _ := r.Value()
	return v
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCompositeDeleteAndMoveEntities(t *testing.T) {
	var published []card.Configuration
	root := newRoot(&published)
	v := NewCompositeView(styles.DefaultTheme, root)
	v.Sync(root.Render())

	v, _ = v.Update(keyMsg("tab"))
	v, _ = v.Update(keyMsg("J"))
	if len(published) != 1 {
		t.Fatalf("expected one publish, got %d", len(published))
	}
	got := published[0].Entities
	if got[0].ID() != "sensor.b" || got[1].ID() != "sensor.a" {
		t.Errorf("expected entities swapped, got %v", got)
	}

	v.Sync(root.Render())
	v, _ = v.Update(keyMsg("d"))
	if n := len(published[len(published)-1].Entities); n != 1 {
		t.Errorf("expected one entity after delete, got %d", n)
	}
}

func TestCompositeOpensEntityAndThresholds(t *testing.T) {
	var published []card.Configuration
	root := newRoot(&published)
	v := NewCompositeView(styles.DefaultTheme, root)
	v.Sync(root.Render())

	v, _ = v.Update(keyMsg("tab"))
	v, _ = v.Update(keyMsg("enter"))
	if root.Navigation() != editor.EditingEntity(0) {
		t.Fatalf("expected EditingEntity(0), got %s", root.Navigation())
	}
	root.OnBack()
	v.Update(keyMsg("t"))
	if root.Navigation() != editor.EditingThresholds() {
		t.Errorf("expected EditingThresholds, got %s", root.Navigation())
	}
}

func TestCompositeRejectsBadEntityID(t *testing.T) {
	var published []card.Configuration
	root := newRoot(&published)
	v := NewCompositeView(styles.DefaultTheme, root)
	v.Sync(root.Render())

	v, _ = v.Update(keyMsg("tab"))
	v, _ = v.Update(keyMsg("a"))
	v, _ = v.Update(keyMsg("nodot"))
	v, _ = v.Update(keyMsg("enter"))
	if len(published) != 0 {
		t.Errorf("expected no publish, got %d", len(published))
	}
	if !v.Capturing() {
		t.Error("expected the input to stay open")
	}
}

func TestEntityViewEditsBoundEntity(t *testing.T) {
	var published []card.Configuration
	root := newRoot(&published)
	if err := root.OnOpenEntity(1); err != nil {
		t.Fatal(err)
	}
	v := NewEntityView(styles.DefaultTheme)
	v.Sync(root)
	if !strings.Contains(v.View(), "sensor.b") {
		t.Error("expected view to name sensor.b")
	}

	// Cursor starts on the entity field; clear it.
	v, _ = v.Update(keyMsg("x"))
	if len(published) != 1 {
		t.Fatalf("expected one publish, got %d", len(published))
	}
	if id := published[0].Entities[1].ID(); id != "" {
		t.Errorf("expected entity cleared, got %q", id)
	}
	if published[0].Entities[0].ID() != "sensor.a" {
		t.Error("expected other entity untouched")
	}

	v.Update(keyMsg("esc"))
	if root.Navigation() != editor.Closed() {
		t.Errorf("expected Closed after esc, got %s", root.Navigation())
	}
}

func TestThresholdsViewEdits(t *testing.T) {
	var published []card.Configuration
	root := newRoot(&published)
	root.OnOpenThresholds()
	v := NewThresholdsView(styles.DefaultTheme)
	v.Sync(root)

	v, _ = v.Update(keyMsg("a"))
	if !v.Capturing() {
		t.Fatal("expected value input to open for the new rule")
	}
	last := published[len(published)-1].ColorThresholds
	if len(last) != 3 || value(last[2]) != 30 {
		t.Fatalf("expected rule at 30 appended, got %v", last)
	}

	v.Sync(root)
	v, _ = v.Update(keyMsg("x"))
	v, _ = v.Update(keyMsg("enter"))
	if !v.Capturing() {
		t.Error("expected invalid number to keep the input open")
	}
	v, _ = v.Update(keyMsg("esc"))
	n := len(published)

	v.Sync(root)
	v, _ = v.Update(keyMsg("K"))
	if len(published) != n+1 {
		t.Fatalf("expected swap to publish, got %d", len(published)-n)
	}
	last = published[len(published)-1].ColorThresholds
	if value(last[1]) != 30 || value(last[2]) != 20 {
		t.Errorf("expected rule moved up, got %v", last)
	}

	v.Update(keyMsg("esc"))
	if root.Navigation() != editor.Closed() {
		t.Errorf("expected Closed after esc, got %s", root.Navigation())
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Living Room Temp": "living-room-temp",
		"  --a__b--  ":     "a-b",
		"":                 "",
	}
	for in, want := range tests {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		prefix := "  "
		if i == 25 {
			prefix = cursorMark
		}
		lines = append(lines, prefix+"row")
	}
	out := scroll(strings.Join(lines, "\n"), 10)
	if got := strings.Count(out, "\n") + 1; got != 10 {
		t.Errorf("expected 10 lines, got %d", got)
	}
	if !strings.Contains(out, cursorMark) {
		t.Error("expected cursor row to stay visible")
	}
}

func TestThresholdsViewKeepsPartialRules(t *testing.T) {
	var published []card.Configuration
	root := newRoot(&published)
	cfg, _ := root.Configuration()
	cfg.ColorThresholds = []card.ThresholdRule{{card.KeyValue: 5}, {card.KeyColor: "#f00"}}
	root.SetConfiguration(cfg)
	root.OnOpenThresholds()

	v := NewThresholdsView(styles.DefaultTheme)
	v.Sync(root)
	v.View()
	v.Update(keyMsg("J"))

	if len(published) != 1 {
		t.Fatalf("expected one publish, got %d", len(published))
	}
	want := []card.ThresholdRule{{card.KeyColor: "#f00"}, {card.KeyValue: 5}}
	if !reflect.DeepEqual(published[0].ColorThresholds, want) {
		t.Errorf("expected %v, got %v", want, published[0].ColorThresholds)
	}
}
