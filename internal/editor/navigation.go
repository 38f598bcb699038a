package editor

import "fmt"

// NavKind names the active editing panel.
type NavKind int

const (
	NavClosed NavKind = iota
	NavEntity
	NavThresholds
)

// Navigation is the tagged navigation state. Index is only meaningful for
// NavEntity.
type Navigation struct {
	Kind  NavKind
	Index int
}

// Closed is the composite list and form view.
func Closed() Navigation { return Navigation{Kind: NavClosed} }

// EditingEntity is the single-entity panel for entities[i].
func EditingEntity(i int) Navigation { return Navigation{Kind: NavEntity, Index: i} }

// EditingThresholds is the color-threshold panel.
func EditingThresholds() Navigation { return Navigation{Kind: NavThresholds} }

func (n Navigation) String() string {
	switch n.Kind {
	case NavEntity:
		return fmt.Sprintf("EditingEntity(%d)", n.Index)
	case NavThresholds:
		return "EditingThresholds"
	}
	return "Closed"
}

// Scope identifies the session and panel an edit was produced under.
// Panels capture it when they open; edits with a different scope are stale.
// Opened counts panel openings, so reopening the same panel is a new scope.
type Scope struct {
	Session uint64
	Opened  uint64
	Nav     Navigation
}
