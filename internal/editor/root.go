package editor

import (
	"errors"
	"fmt"

	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/locale"
	"github.com/tonhe/mgce/internal/schema"
	"go.uber.org/zap"
)

// Options configures a Root.
type Options struct {
	// Publish receives the complete configuration after every accepted
	// mutation. The host persists it.
	Publish func(card.Configuration)
	// Leave is called when the user backs out of the editor entirely.
	Leave func()
	// Host is the host's generic catalog, Panel the editor's own.
	Host   locale.Localizer
	Panel  locale.Localizer
	Logger *zap.Logger
}

// Root owns the configuration and navigation state and is the only part
// of the editor that talks to the host.
type Root struct {
	state   State
	publish func(card.Configuration)
	leave   func()
	host    locale.Localizer
	panel   locale.Localizer
	log     *zap.Logger
}

// NewRoot creates a Root with no configuration.
func NewRoot(opts Options) *Root {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Root{
		publish: opts.Publish,
		leave:   opts.Leave,
		host:    opts.Host,
		panel:   opts.Panel,
		log:     log.Named("editor"),
	}
}

func (r *Root) dispatch(ev Event) error {
	next, out, err := Reduce(r.state, ev)
	switch {
	case errors.Is(err, ErrNotReady), errors.Is(err, ErrStaleScope):
		r.log.Debug("event ignored", zap.String("event", eventName(ev)), zap.Error(err))
		return nil
	case err != nil:
		r.log.Warn("event rejected", zap.String("event", eventName(ev)), zap.Error(err))
		return err
	}

	if next.Nav != r.state.Nav {
		r.log.Debug("navigation",
			zap.Stringer("from", r.state.Nav),
			zap.Stringer("to", next.Nav),
			zap.Uint64("session", next.Session))
	}
	r.state = next

	switch out := out.(type) {
	case ConfigReplaced:
		r.log.Info("configuration replaced",
			zap.String("event", eventName(ev)),
			zap.Int("entities", len(out.Config.Entities)),
			zap.Int("thresholds", len(out.Config.ColorThresholds)))
		if r.publish != nil {
			r.publish(out.Config)
		}
	case NavigatedBack:
		if r.leave != nil {
			r.leave()
		}
	}
	return nil
}

func eventName(ev Event) string {
	return fmt.Sprintf("%T", ev)
}

// SetConfiguration adopts cfg as a new session and returns to the
// composite view.
func (r *Root) SetConfiguration(cfg card.Configuration) {
	r.dispatch(ConfigurationSet{Config: cfg})
}

// OnFieldsChanged merges the composite form's full top-level data.
func (r *Root) OnFieldsChanged(data card.Values) {
	r.dispatch(FieldsChanged{Data: data})
}

// OnEntitiesChanged replaces the entity list.
func (r *Root) OnEntitiesChanged(list []card.EntityConfig) {
	r.dispatch(EntitiesChanged{Entities: list})
}

// OnOpenEntity opens the entity panel for entities[i]. An index outside
// the list returns ErrInvalidNavigationIndex and changes nothing. It is
// ignored while a panel is already open.
func (r *Root) OnOpenEntity(i int) error {
	return r.dispatch(EntityOpened{Index: i})
}

// OnOpenThresholds opens the color-threshold panel from the composite
// view.
func (r *Root) OnOpenThresholds() {
	r.dispatch(ThresholdsOpened{})
}

// OnBack returns to the composite view. It is a no-op there.
func (r *Root) OnBack() {
	r.dispatch(BackRequested{})
}

// OnLeave tells the embedding shell the user is done with the editor.
func (r *Root) OnLeave() {
	r.dispatch(LeaveRequested{})
}

// OnEntityEdited replaces the entity currently being edited.
func (r *Root) OnEntityEdited(v card.EntityConfig) {
	r.dispatch(EntityEdited{Scope: r.state.Scope(), Value: v})
}

// OnThresholdsEdited replaces the color-threshold list.
func (r *Root) OnThresholdsEdited(rules []card.ThresholdRule) {
	r.dispatch(ThresholdsEdited{Scope: r.state.Scope(), Rules: rules})
}

// State returns a copy of the current state.
func (r *Root) State() State {
	return r.state
}

// Navigation returns the active navigation state.
func (r *Root) Navigation() Navigation {
	return r.state.Nav
}

// Configuration returns a snapshot of the owned configuration.
func (r *Root) Configuration() (card.Configuration, bool) {
	if r.state.Config == nil {
		return card.Configuration{}, false
	}
	return r.state.Config.Clone(), true
}

// Render returns the view decision for the current state.
func (r *Root) Render() Rendering {
	return Render(r.state)
}

// Label resolves a composite-form field label.
func (r *Root) Label(f schema.Field) string {
	return locale.Label(r.host, r.panel, locale.CardPrefix, f.Name)
}

// Text returns a panel string such as a section title.
func (r *Root) Text(key string) string {
	if r.panel == nil {
		return ""
	}
	return r.panel.Localize(key)
}

// EntityPanel returns a panel bound to the current entity scope, or nil
// when no entity is being edited. Edits it emits after the scope changes
// are dropped.
func (r *Root) EntityPanel() *EntityPanel {
	view := r.Render()
	if view.Kind != RenderEntity {
		return nil
	}
	scope := view.Scope
	return NewEntityPanel(EntityPanelOptions{
		Config: view.Entity,
		Host:   r.host,
		Panel:  r.panel,
		Changed: func(v card.EntityConfig) {
			r.dispatch(EntityEdited{Scope: scope, Value: v})
		},
		Back:   r.backFrom(scope),
		Logger: r.log,
	})
}

// ThresholdBinding is what the color-threshold panel gets: a snapshot of
// the list and scoped callbacks.
type ThresholdBinding struct {
	Rules   []card.ThresholdRule
	Changed func([]card.ThresholdRule)
	Back    func()
}

// Thresholds returns a binding for the current threshold scope, or nil
// when the threshold panel is not active.
func (r *Root) Thresholds() *ThresholdBinding {
	view := r.Render()
	if view.Kind != RenderThresholds {
		return nil
	}
	scope := view.Scope
	return &ThresholdBinding{
		Rules: view.Thresholds,
		Changed: func(rules []card.ThresholdRule) {
			r.dispatch(ThresholdsEdited{Scope: scope, Rules: rules})
		},
		Back: r.backFrom(scope),
	}
}

// backFrom returns a back callback that only closes the panel opened in
// scope.
func (r *Root) backFrom(scope Scope) func() {
	return func() {
		if r.state.Scope() != scope {
			r.log.Debug("back from inactive panel ignored", zap.Stringer("nav", scope.Nav))
			return
		}
		r.OnBack()
	}
}
