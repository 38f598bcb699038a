package editor

import (
	"errors"

	"github.com/tonhe/mgce/internal/card"
)

var (
	// ErrNotReady means no configuration has been supplied yet.
	ErrNotReady = errors.New("editor has no configuration")
	// ErrInvalidNavigationIndex means an entity index outside the list.
	ErrInvalidNavigationIndex = errors.New("entity index out of range")
	// ErrStaleScope means an edit arrived from a panel that is no longer
	// the active one, or an open request arrived while a panel is open.
	ErrStaleScope = errors.New("event from inactive panel")
)

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// ConfigurationSet is the host supplying a configuration. It starts a
// new session.
type ConfigurationSet struct {
	Config card.Configuration
}

// FieldsChanged carries the composite form's full top-level data.
type FieldsChanged struct {
	Data card.Values
}

// EntitiesChanged replaces the entity list.
type EntitiesChanged struct {
	Entities []card.EntityConfig
}

// EntityOpened requests the entity panel for Index.
type EntityOpened struct {
	Index int
}

// ThresholdsOpened requests the color-threshold panel.
type ThresholdsOpened struct{}

// BackRequested returns to the composite view.
type BackRequested struct{}

// LeaveRequested asks the embedding shell to close the editor.
type LeaveRequested struct{}

// EntityEdited replaces the entity the scoped panel is editing.
type EntityEdited struct {
	Scope Scope
	Value card.EntityConfig
}

// ThresholdsEdited replaces the color-threshold list.
type ThresholdsEdited struct {
	Scope Scope
	Rules []card.ThresholdRule
}

func (ConfigurationSet) isEvent() {}
func (FieldsChanged) isEvent()    {}
func (EntitiesChanged) isEvent()  {}
func (EntityOpened) isEvent()     {}
func (ThresholdsOpened) isEvent() {}
func (BackRequested) isEvent()    {}
func (LeaveRequested) isEvent()   {}
func (EntityEdited) isEvent()     {}
func (ThresholdsEdited) isEvent() {}

// Outbound is a message for the host produced by Reduce.
type Outbound interface {
	isOutbound()
}

// ConfigReplaced carries the complete new configuration.
type ConfigReplaced struct {
	Config card.Configuration
}

// NavigatedBack tells the embedding shell the user left the editor.
type NavigatedBack struct{}

func (ConfigReplaced) isOutbound() {}
func (NavigatedBack) isOutbound()  {}
