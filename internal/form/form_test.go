package form

import (
	"reflect"
	"testing"

	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/schema"
)

func TestSetDoesNotMutateInput(t *testing.T) {
	data := card.Values{"name": "A", "show": map[string]any{"legend": true}}

	out := Set(data, []string{"show", "fill"}, "fade")

	show := out["show"].(map[string]any)
	if show["fill"] != "fade" || show["legend"] != true {
		t.Errorf("unexpected show %v", show)
	}
	if _, had := data["show"].(map[string]any)["fill"]; had {
		t.Error("expected input map untouched")
	}
}

func TestSetCreatesMissingParents(t *testing.T) {
	out := Set(card.Values{}, []string{"show", "legend"}, false)
	v, ok := Get(out, []string{"show", "legend"})
	if !ok || v != false {
		t.Errorf("expected show.legend=false, got %v (set=%v)", v, ok)
	}
}

func TestDeleteRemovesEmptiedParent(t *testing.T) {
	data := card.Values{"show": map[string]any{"legend": true}, "name": "A"}
	out := Delete(data, []string{"show", "legend"})
	if _, ok := out["show"]; ok {
		t.Error("expected emptied show removed")
	}
	if out["name"] != "A" {
		t.Errorf("expected name A, got %v", out["name"])
	}
	if _, ok := data["show"]; !ok {
		t.Error("expected input untouched")
	}
}

func TestApply(t *testing.T) {
	data := card.Values{"entity": "sensor.a", "show_state": false}

	toggled := Apply(data, Toggled{Path: []string{"show_state"}, Checked: true})
	if toggled["show_state"] != true || toggled["entity"] != "sensor.a" {
		t.Errorf("unexpected toggled record %v", toggled)
	}

	replaced := Apply(data, ValueSet{Value: card.Values{"entity": "sensor.b"}})
	if !reflect.DeepEqual(replaced, card.Values{"entity": "sensor.b"}) {
		t.Errorf("expected full replacement, got %v", replaced)
	}
	if empty := Apply(data, ValueSet{}); !reflect.DeepEqual(empty, card.Values{}) {
		t.Errorf("expected empty record, got %v", empty)
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		kind    schema.SelectorKind
		input   string
		want    any
		keep    bool
		wantErr bool
	}{
		{"text", schema.SelectorText, " Kitchen ", "Kitchen", true, false},
		{"empty clears", schema.SelectorText, "  ", nil, false, false},
		{"integer", schema.SelectorInteger, "48", 48, true, false},
		{"bad integer", schema.SelectorInteger, "4.5", nil, false, true},
		{"float", schema.SelectorFloat, "0.25", 0.25, true, false},
		{"color", schema.SelectorHexColor, "#ff0000", "#ff0000", true, false},
		{"boolean not editable", schema.SelectorBoolean, "true", nil, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep, err := Coerce(schema.Selector{Kind: tt.kind}, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Coerce() error: %v", err)
			}
			if got != tt.want || keep != tt.keep {
				t.Errorf("expected %v/%v, got %v/%v", tt.want, tt.keep, got, keep)
			}
		})
	}
}

func TestCycle(t *testing.T) {
	sel := schema.Selector{Kind: schema.SelectorSelect, Options: []schema.Option{
		{Label: "Show", Value: true},
		{Label: "Hide", Value: false},
		{Label: "Fade", Value: "fade"},
	}}
	tests := []struct {
		current any
		dir     int
		want    any
	}{
		{true, 1, false},
		{"fade", 1, true},
		{true, -1, "fade"},
		{"bogus", 1, true},
	}
	for _, tt := range tests {
		if got := Cycle(sel, tt.current, tt.dir); got != tt.want {
			t.Errorf("Cycle(%v, %d): expected %v, got %v", tt.current, tt.dir, tt.want, got)
		}
	}
	if got := OptionLabel(sel, "fade"); got != "Fade" {
		t.Errorf("expected label Fade, got %q", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{0.5, "0.5"},
		{24, "24"},
		{map[string]any{"action": "more-info"}, "more-info"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestEffective(t *testing.T) {
	f := schema.Field{Name: "hours_to_show", Default: 24}
	if got := Effective(f, nil, false); got != 24 {
		t.Errorf("expected default 24, got %v", got)
	}
	if got := Effective(f, 12, true); got != 12 {
		t.Errorf("expected set value 12, got %v", got)
	}
}
