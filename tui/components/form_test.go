package components

import (
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/form"
	"github.com/tonhe/mgce/internal/schema"
	"github.com/tonhe/mgce/tui/styles"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func entityForm(data card.Values) Form {
	f := NewForm(styles.DefaultTheme, schema.Entity, nil, nil)
	f.SetData(data)
	return f
}

// moveTo moves the cursor to the leaf named name.
func moveTo(t *testing.T, f Form, name string) Form {
	t.Helper()
	for i := 0; i < f.Len(); i++ {
		if leaf, _ := f.Current(); leaf.Key() == name {
			return f
		}
		f, _, _ = f.Update(keyMsg("down"))
	}
	t.Fatalf("field %q not found", name)
	return f
}

func TestFormToggleBoolean(t *testing.T) {
	f := moveTo(t, entityForm(card.Values{"entity": "sensor.a"}), "state_adaptive_color")

	_, _, change := f.Update(keyMsg("space"))
	want := form.Toggled{Path: []string{"state_adaptive_color"}, Checked: true}
	if !reflect.DeepEqual(change, want) {
		t.Errorf("expected %#v, got %#v", want, change)
	}
}

func TestFormCycleSelect(t *testing.T) {
	f := moveTo(t, entityForm(card.Values{"entity": "sensor.a"}), "aggregate_func")

	_, _, change := f.Update(keyMsg("enter"))
	vs, ok := change.(form.ValueSet)
	if !ok {
		t.Fatalf("expected ValueSet, got %T", change)
	}
	if vs.Value["aggregate_func"] != "avg" || vs.Value["entity"] != "sensor.a" {
		t.Errorf("expected full record with aggregate_func=avg, got %v", vs.Value)
	}
}

func TestFormTextInput(t *testing.T) {
	f := moveTo(t, entityForm(card.Values{"entity": "sensor.a"}), "name")

	f, _, change := f.Update(keyMsg("enter"))
	if change != nil || !f.Editing() {
		t.Fatalf("expected input to open without a change")
	}
	for _, r := range "Kitchen" {
		f, _, _ = f.Update(keyMsg(string(r)))
	}
	f, _, change = f.Update(keyMsg("enter"))
	if f.Editing() {
		t.Error("expected input to close on enter")
	}
	vs, ok := change.(form.ValueSet)
	if !ok {
		t.Fatalf("expected ValueSet, got %T", change)
	}
	want := card.Values{"entity": "sensor.a", "name": "Kitchen"}
	if !reflect.DeepEqual(vs.Value, want) {
		t.Errorf("expected %v, got %v", want, vs.Value)
	}
}

func TestFormEscapeCancelsInput(t *testing.T) {
	f := moveTo(t, entityForm(card.Values{"entity": "sensor.a"}), "unit")
	f, _, _ = f.Update(keyMsg("enter"))
	f, _, _ = f.Update(keyMsg("C"))
	f, _, change := f.Update(keyMsg("esc"))
	if change != nil || f.Editing() {
		t.Errorf("expected esc to cancel without a change, got %#v", change)
	}
}

func TestFormRejectsInvalidNumber(t *testing.T) {
	f := NewForm(styles.DefaultTheme, schema.Card, nil, nil)
	f = moveTo(t, f, "hours_to_show")
	f, _, _ = f.Update(keyMsg("enter"))
	f, _, _ = f.Update(keyMsg("x"))
	f, _, change := f.Update(keyMsg("enter"))
	if change != nil {
		t.Errorf("expected no change for invalid input, got %#v", change)
	}
	if !f.Editing() {
		t.Error("expected input to stay open after an error")
	}
}

func TestFormClear(t *testing.T) {
	f := moveTo(t, entityForm(card.Values{"entity": "sensor.a", "name": "A"}), "name")
	_, _, change := f.Update(keyMsg("x"))
	vs, ok := change.(form.ValueSet)
	if !ok {
		t.Fatalf("expected ValueSet, got %T", change)
	}
	if _, has := vs.Value["name"]; has {
		t.Errorf("expected name cleared, got %v", vs.Value)
	}

	f = moveTo(t, f, "unit")
	if _, _, change := f.Update(keyMsg("x")); change != nil {
		t.Errorf("expected clearing an unset field to do nothing, got %#v", change)
	}
}

func TestFormNonEditableField(t *testing.T) {
	f := moveTo(t, entityForm(card.Values{"entity": "sensor.a"}), "attribute")
	f, _, change := f.Update(keyMsg("enter"))
	if change != nil || f.Editing() {
		t.Errorf("expected attribute to be read-only, got %#v", change)
	}
}

func TestFormBlurredIgnoresKeys(t *testing.T) {
	f := entityForm(card.Values{"entity": "sensor.a"})
	f.Blur()
	f, _, change := f.Update(keyMsg("down"))
	if change != nil || f.Cursor() != 0 {
		t.Errorf("expected blurred form to ignore keys")
	}
}

func TestFormViewUsesLabelAndHelper(t *testing.T) {
	label := func(fl schema.Field) string {
		if fl.Name == "entity" {
			return "Entity (required)"
		}
		return ""
	}
	helper := func(fl schema.Field, data card.Values) string {
		if fl.Name == "entity" {
			s, _ := data["entity"].(string)
			return s
		}
		return ""
	}
	f := NewForm(styles.DefaultTheme, schema.Entity, label, helper)
	f.SetData(card.Values{"entity": "sensor.helper"})
	view := f.View()
	for _, want := range []string{"Entity (required)", "sensor.helper", "show_state", "Display"} {
		if !contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
