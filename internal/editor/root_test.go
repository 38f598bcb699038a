package editor

import (
	"errors"
	"reflect"
	"testing"

	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/form"
	"github.com/tonhe/mgce/internal/locale"
	"github.com/tonhe/mgce/internal/schema"
)

type recorder struct {
	published []card.Configuration
	left      int
}

func newTestRoot(rec *recorder) *Root {
	return NewRoot(Options{
		Publish: func(c card.Configuration) { rec.published = append(rec.published, c) },
		Leave:   func() { rec.left++ },
		Host:    locale.Host("en"),
		Panel:   locale.Panel("en"),
	})
}

func (r *recorder) last(t *testing.T) card.Configuration {
	t.Helper()
	if len(r.published) == 0 {
		t.Fatal("expected a published configuration")
	}
	return r.published[len(r.published)-1]
}

func TestRootIgnoresEverythingBeforeConfiguration(t *testing.T) {
	rec := &recorder{}
	root := newTestRoot(rec)

	root.OnFieldsChanged(card.Values{"name": "x"})
	root.OnEntitiesChanged(nil)
	if err := root.OnOpenEntity(0); err != nil {
		t.Errorf("expected OnOpenEntity to be silent, got %v", err)
	}
	root.OnOpenThresholds()
	root.OnBack()
	root.OnLeave()
	root.OnEntityEdited(card.EntityConfig{"entity": "x"})
	root.OnThresholdsEdited(nil)

	if len(rec.published) != 0 || rec.left != 0 {
		t.Errorf("expected no callbacks, got %d publishes and %d leaves", len(rec.published), rec.left)
	}
	if k := root.Render().Kind; k != RenderNothing {
		t.Errorf("expected RenderNothing, got %v", k)
	}
	if _, ok := root.Configuration(); ok {
		t.Error("expected no configuration")
	}
	if root.EntityPanel() != nil {
		t.Error("expected no entity panel")
	}
}

func TestRootConcreteScenario(t *testing.T) {
	rec := &recorder{}
	root := newTestRoot(rec)
	root.SetConfiguration(card.Configuration{
		Fields:          card.Values{"name": "Test"},
		Entities:        []card.EntityConfig{{"entity": "sensor.a"}, {"entity": "sensor.b"}},
		ColorThresholds: []card.ThresholdRule{},
	})
	if len(rec.published) != 0 {
		t.Fatalf("expected SetConfiguration not to publish, got %d", len(rec.published))
	}

	if err := root.OnOpenEntity(1); err != nil {
		t.Fatalf("OnOpenEntity(1) error: %v", err)
	}
	if root.Navigation() != EditingEntity(1) {
		t.Errorf("expected EditingEntity(1), got %s", root.Navigation())
	}

	root.OnEntityEdited(card.EntityConfig{"entity": "sensor.b", "color": "#ff0000"})
	if len(rec.published) != 1 {
		t.Fatalf("expected one publish, got %d", len(rec.published))
	}
	got := rec.last(t)
	if want := (card.EntityConfig{"entity": "sensor.b", "color": "#ff0000"}); !reflect.DeepEqual(got.Entities[1], want) {
		t.Errorf("expected entity 1 %v, got %v", want, got.Entities[1])
	}
	if want := (card.EntityConfig{"entity": "sensor.a"}); !reflect.DeepEqual(got.Entities[0], want) {
		t.Errorf("expected entity 0 %v, got %v", want, got.Entities[0])
	}
	if got.Fields["name"] != "Test" {
		t.Errorf("expected name Test, got %v", got.Fields["name"])
	}
}

func TestRootInvalidIndexSignals(t *testing.T) {
	rec := &recorder{}
	root := newTestRoot(rec)
	root.SetConfiguration(sampleConfig())

	if err := root.OnOpenEntity(5); !errors.Is(err, ErrInvalidNavigationIndex) {
		t.Errorf("expected ErrInvalidNavigationIndex, got %v", err)
	}
	if root.Navigation() != Closed() || len(rec.published) != 0 {
		t.Errorf("expected no change, got %s and %d publishes", root.Navigation(), len(rec.published))
	}
}

func TestRootStaleEditIsSilent(t *testing.T) {
	rec := &recorder{}
	root := newTestRoot(rec)
	root.SetConfiguration(sampleConfig())

	root.OnEntityEdited(card.EntityConfig{"entity": "sensor.x"})
	if len(rec.published) != 0 {
		t.Errorf("expected no publish, got %d", len(rec.published))
	}
}

func TestRootFieldsChangedPublishes(t *testing.T) {
	rec := &recorder{}
	root := newTestRoot(rec)
	root.SetConfiguration(sampleConfig())

	root.OnFieldsChanged(card.Values{"type": card.Type, "name": "New", "hours_to_show": 48})
	got := rec.last(t)
	if got.Fields["name"] != "New" || got.Fields["hours_to_show"] != 48 {
		t.Errorf("unexpected fields %v", got.Fields)
	}
	want := sampleConfig()
	if !reflect.DeepEqual(got.Entities, want.Entities) || !reflect.DeepEqual(got.ColorThresholds, want.ColorThresholds) {
		t.Errorf("expected lists re-attached, got %v", got)
	}
}

func TestRootLeave(t *testing.T) {
	rec := &recorder{}
	root := newTestRoot(rec)
	root.SetConfiguration(sampleConfig())
	root.OnLeave()
	if rec.left != 1 || len(rec.published) != 0 {
		t.Errorf("expected one leave and no publish, got %d / %d", rec.left, len(rec.published))
	}
}

func TestRootEntityPanelBinding(t *testing.T) {
	rec := &recorder{}
	root := newTestRoot(rec)
	root.SetConfiguration(sampleConfig())
	if err := root.OnOpenEntity(0); err != nil {
		t.Fatalf("OnOpenEntity(0) error: %v", err)
	}

	panel := root.EntityPanel()
	if panel == nil {
		t.Fatal("expected an entity panel")
	}
	if panel.Config().ID() != "sensor.a" || panel.Title() != "Edit entity" {
		t.Errorf("unexpected panel %q / %q", panel.Config().ID(), panel.Title())
	}

	panel.OnValueChanged(form.Toggled{Path: []string{"show_state"}, Checked: false})
	want := card.EntityConfig{"entity": "sensor.a", "show_state": false}
	if got := rec.last(t).Entities[0]; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	panel.GoBack()
	if root.Navigation() != Closed() {
		t.Errorf("expected Closed, got %s", root.Navigation())
	}

	// The panel's scope is gone; its edits no longer land.
	if err := root.OnOpenEntity(1); err != nil {
		t.Fatalf("OnOpenEntity(1) error: %v", err)
	}
	n := len(rec.published)
	panel.OnValueChanged(form.ValueSet{Value: card.Values{"entity": "sensor.z"}})
	if len(rec.published) != n {
		t.Errorf("expected stale panel edit dropped, got %d publishes", len(rec.published)-n)
	}
	cfg, _ := root.Configuration()
	if cfg.Entities[1].ID() != "sensor.b" {
		t.Errorf("expected sensor.b untouched, got %q", cfg.Entities[1].ID())
	}
}

func TestRootReorderDetachesEntityPanel(t *testing.T) {
	rec := &recorder{}
	root := newTestRoot(rec)
	root.SetConfiguration(card.Configuration{
		Fields:   card.Values{"name": "Test"},
		Entities: []card.EntityConfig{{"entity": "a"}, {"entity": "b"}},
	})
	if err := root.OnOpenEntity(0); err != nil {
		t.Fatalf("OnOpenEntity(0) error: %v", err)
	}
	panel := root.EntityPanel()

	root.OnEntitiesChanged([]card.EntityConfig{{"entity": "b"}, {"entity": "a"}})
	n := len(rec.published)
	panel.OnValueChanged(form.ValueSet{Value: card.Values{"entity": "a", "color": "red"}})

	if len(rec.published) != n {
		t.Fatalf("expected the detached panel's edit dropped, got %v", rec.last(t).Entities)
	}
	cfg, _ := root.Configuration()
	want := []card.EntityConfig{{"entity": "b"}, {"entity": "a"}}
	if !reflect.DeepEqual(cfg.Entities, want) {
		t.Errorf("expected %v, got %v", want, cfg.Entities)
	}
	if root.Navigation() != Closed() {
		t.Errorf("expected Closed, got %s", root.Navigation())
	}
}

func TestRootThresholdBinding(t *testing.T) {
	rec := &recorder{}
	root := newTestRoot(rec)
	root.SetConfiguration(sampleConfig())
	if root.Thresholds() != nil {
		t.Error("expected no threshold binding while closed")
	}

	root.OnOpenThresholds()
	b := root.Thresholds()
	if b == nil || len(b.Rules) != 2 {
		t.Fatalf("expected a binding with 2 rules, got %#v", b)
	}

	b.Changed(append(b.Rules, card.NewRule(40, "#ffffff")))
	if n := len(rec.last(t).ColorThresholds); n != 3 {
		t.Errorf("expected 3 rules, got %d", n)
	}

	b.Back()
	if root.Navigation() != Closed() {
		t.Errorf("expected Closed, got %s", root.Navigation())
	}
}

func TestRootLabel(t *testing.T) {
	root := newTestRoot(&recorder{})
	tests := []struct {
		got, want string
	}{
		{root.Label(schema.Field{Name: "name"}), "Name"},
		{root.Label(schema.Field{Name: "points_per_hour"}), "Points per hour"},
		{root.Text("editor.color_thresholds"), "Color thresholds"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, tt.got)
		}
	}
}
