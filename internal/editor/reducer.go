// Package editor implements the navigation and merge state machine of the
// card editor. Reduce is pure; Root wraps it with state, logging, and the
// host callbacks.
package editor

import (
	"fmt"
	"reflect"

	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/schema"
)

// State is everything the editor owns.
type State struct {
	Config  *card.Configuration
	Nav     Navigation
	Session uint64
	Opened  uint64
}

// Scope returns the scope a panel opened now would capture.
func (s State) Scope() Scope {
	return Scope{Session: s.Session, Opened: s.Opened, Nav: s.Nav}
}

// Ready reports whether the host has supplied a configuration.
func (s State) Ready() bool {
	return s.Config != nil
}

// cardKeys are the top-level keys the composite form can edit.
var cardKeys = func() map[string]bool {
	m := make(map[string]bool)
	for _, k := range schema.TopLevelKeys(schema.Card) {
		m[k] = true
	}
	return m
}()

// Reduce applies one event. It never mutates s or the configuration s
// points to. A non-nil error means the event was rejected and the
// returned state equals s.
func Reduce(s State, ev Event) (State, Outbound, error) {
	if set, ok := ev.(ConfigurationSet); ok {
		cfg := set.Config.Clone()
		return State{Config: &cfg, Nav: Closed(), Session: s.Session + 1, Opened: s.Opened}, nil, nil
	}
	if s.Config == nil {
		return s, nil, ErrNotReady
	}

	switch ev := ev.(type) {
	case FieldsChanged:
		return s.replace(mergeFields(*s.Config, ev.Data))

	case EntitiesChanged:
		next := s.Config.Clone()
		next.Entities = card.CloneEntities(ev.Entities)
		st, out, err := s.replace(next)
		if st.Nav.Kind == NavEntity && !sameEntry(s.Config.Entities, next.Entities, st.Nav.Index) {
			st.Nav = Closed()
		}
		return st, out, err

	case EntityOpened:
		if s.Nav.Kind != NavClosed {
			return s, nil, ErrStaleScope
		}
		if ev.Index < 0 || ev.Index >= len(s.Config.Entities) {
			return s, nil, fmt.Errorf("%w: %d (have %d)", ErrInvalidNavigationIndex, ev.Index, len(s.Config.Entities))
		}
		s.Nav = EditingEntity(ev.Index)
		s.Opened++
		return s, nil, nil

	case ThresholdsOpened:
		if s.Nav.Kind != NavClosed {
			return s, nil, ErrStaleScope
		}
		s.Nav = EditingThresholds()
		s.Opened++
		return s, nil, nil

	case BackRequested:
		s.Nav = Closed()
		return s, nil, nil

	case LeaveRequested:
		return s, NavigatedBack{}, nil

	case EntityEdited:
		if s.Nav.Kind != NavEntity || ev.Scope != s.Scope() || s.Nav.Index >= len(s.Config.Entities) {
			return s, nil, ErrStaleScope
		}
		next := s.Config.Clone()
		next.Entities[s.Nav.Index] = ev.Value.Clone()
		return s.replace(next)

	case ThresholdsEdited:
		if s.Nav.Kind != NavThresholds || ev.Scope != s.Scope() {
			return s, nil, ErrStaleScope
		}
		next := s.Config.Clone()
		next.ColorThresholds = card.CloneRules(ev.Rules)
		return s.replace(next)
	}
	return s, nil, fmt.Errorf("unknown event %T", ev)
}

// sameEntry reports whether position i holds the same entity in both
// lists. An open panel stays bound only while its entry is untouched.
func sameEntry(before, after []card.EntityConfig, i int) bool {
	if i < 0 || i >= len(before) || i >= len(after) {
		return false
	}
	return reflect.DeepEqual(before[i], after[i])
}

func (s State) replace(next card.Configuration) (State, Outbound, error) {
	next.Normalize()
	s.Config = &next
	return s, ConfigReplaced{Config: next.Clone()}, nil
}

// mergeFields builds the configuration after a composite form edit. The
// payload is the full set of top-level fields; the lists are re-attached
// from cur. Keys outside the card schema that the payload lacks are kept,
// since the form never shows them and cannot have removed them.
func mergeFields(cur card.Configuration, data card.Values) card.Configuration {
	fields := data.Clone()
	delete(fields, card.KeyEntities)
	delete(fields, card.KeyColorThresholds)
	for k, v := range cur.Fields.Clone() {
		if cardKeys[k] {
			continue
		}
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	return card.Configuration{
		Fields:          fields,
		Entities:        card.CloneEntities(cur.Entities),
		ColorThresholds: card.CloneRules(cur.ColorThresholds),
	}
}
