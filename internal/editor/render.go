package editor

import "github.com/tonhe/mgce/internal/card"

// RenderKind says which view the editor shows.
type RenderKind int

const (
	RenderNothing RenderKind = iota
	RenderComposite
	RenderEntity
	RenderThresholds
)

// Rendering is the view decision for a state, with snapshots of the data
// the chosen view needs.
type Rendering struct {
	Kind       RenderKind
	Scope      Scope
	Fields     card.Values
	Entities   []card.EntityConfig
	Index      int
	Entity     card.EntityConfig
	Thresholds []card.ThresholdRule
}

// Render decides what to show for s.
func Render(s State) Rendering {
	if s.Config == nil {
		return Rendering{Kind: RenderNothing}
	}
	r := Rendering{Scope: s.Scope()}
	switch s.Nav.Kind {
	case NavEntity:
		r.Kind = RenderEntity
		r.Index = s.Nav.Index
		r.Entity = s.Config.Entities[s.Nav.Index].Clone()
	case NavThresholds:
		r.Kind = RenderThresholds
		r.Thresholds = card.CloneRules(s.Config.ColorThresholds)
	default:
		r.Kind = RenderComposite
		r.Fields = s.Config.Fields.Clone()
		r.Entities = card.CloneEntities(s.Config.Entities)
		r.Thresholds = card.CloneRules(s.Config.ColorThresholds)
	}
	return r
}
