package editor

import (
	"github.com/tonhe/mgce/internal/card"
	"github.com/tonhe/mgce/internal/form"
	"github.com/tonhe/mgce/internal/locale"
	"github.com/tonhe/mgce/internal/schema"
	"go.uber.org/zap"
)

// EntityPanelOptions configures an EntityPanel.
type EntityPanelOptions struct {
	Config  card.EntityConfig
	Host    locale.Localizer
	Panel   locale.Localizer
	Changed func(card.EntityConfig)
	Back    func()
	Logger  *zap.Logger
}

// EntityPanel edits one entity in isolation. It works on its own snapshot
// and reports every edit upward as a full replacement record.
type EntityPanel struct {
	config  card.EntityConfig
	host    locale.Localizer
	panel   locale.Localizer
	changed func(card.EntityConfig)
	back    func()
	log     *zap.Logger
}

// NewEntityPanel creates a panel over a copy of opts.Config.
func NewEntityPanel(opts EntityPanelOptions) *EntityPanel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	p := &EntityPanel{
		host:    opts.Host,
		panel:   opts.Panel,
		changed: opts.Changed,
		back:    opts.Back,
		log:     log,
	}
	if opts.Config != nil {
		p.config = opts.Config.Clone()
	}
	return p
}

func (p *EntityPanel) ready() bool {
	return p.config != nil && p.host != nil
}

// Config returns a copy of the panel's current record.
func (p *EntityPanel) Config() card.EntityConfig {
	if p.config == nil {
		return nil
	}
	return p.config.Clone()
}

// Data returns the record as form data.
func (p *EntityPanel) Data() card.Values {
	if p.config == nil {
		return nil
	}
	return card.Values(p.config.Clone())
}

// Title is the panel heading.
func (p *EntityPanel) Title() string {
	if p.panel == nil {
		return ""
	}
	return p.panel.Localize("editor.edit_entity")
}

// Label resolves a field label, host catalog first.
func (p *EntityPanel) Label(f schema.Field) string {
	if !p.ready() {
		return ""
	}
	return locale.Label(p.host, p.panel, locale.EntityPrefix, f.Name)
}

// Helper returns helper text. Only the entity field has one: the current
// entity identifier.
func (p *EntityPanel) Helper(f schema.Field, data card.Values) string {
	if !p.ready() || f.Name != card.KeyEntity {
		return ""
	}
	s, _ := data[card.KeyEntity].(string)
	return s
}

// OnValueChanged folds a form change into the record and publishes the
// whole record.
func (p *EntityPanel) OnValueChanged(c form.Change) {
	if !p.ready() {
		return
	}
	var next card.EntityConfig
	switch c := c.(type) {
	case form.Toggled:
		next = card.EntityConfig(form.Set(card.Values(p.config), c.Path, c.Checked))
	case form.ValueSet:
		next = card.EntityConfig(c.Value.Clone())
	default:
		p.log.Warn("unhandled form change", zap.Any("change", c))
		return
	}
	p.config = next
	if p.changed != nil {
		p.changed(next.Clone())
	}
}

// GoBack asks the parent to close the panel.
func (p *EntityPanel) GoBack() {
	if !p.ready() {
		return
	}
	if p.back != nil {
		p.back()
	}
}
