package card

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tiendc/go-deepcopy"
)

// Type is the Lovelace card type this editor understands.
const Type = "custom:mini-graph-card"

// Keys with dedicated handling in Configuration.
const (
	KeyType            = "type"
	KeyEntities        = "entities"
	KeyColorThresholds = "color_thresholds"
	KeyEntity          = "entity"
	KeyValue           = "value"
	KeyColor           = "color"
)

// Values is a generic mapping as decoded from YAML.
type Values map[string]any

// Configuration is a complete mini-graph-card configuration. Fields holds
// every top-level key other than entities and color_thresholds, including
// keys no schema knows about.
type Configuration struct {
	Fields          Values
	Entities        []EntityConfig
	ColorThresholds []ThresholdRule
}

// EntityConfig is one entry of the entities list. It is addressed by its
// position in the list only.
type EntityConfig Values

// ThresholdRule is one entry of color_thresholds. It is kept as decoded so
// keys that are missing, quoted, or unknown are written back untouched.
type ThresholdRule Values

// NewRule returns a rule with both keys set.
func NewRule(value float64, color string) ThresholdRule {
	return ThresholdRule{KeyValue: value, KeyColor: color}
}

// Value returns the rule's value as a number. Quoted numbers are accepted;
// false means the key is missing or not numeric.
func (r ThresholdRule) Value() (float64, bool) {
	switch v := r[KeyValue].(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// Color returns the rule's color, or "" when unset.
func (r ThresholdRule) Color() string {
	s, _ := r[KeyColor].(string)
	return s
}

// WithValue returns a copy of the rule with value set.
func (r ThresholdRule) WithValue(v float64) ThresholdRule {
	out := r.Clone()
	out[KeyValue] = v
	return out
}

// WithColor returns a copy of the rule with color set.
func (r ThresholdRule) WithColor(c string) ThresholdRule {
	out := r.Clone()
	out[KeyColor] = c
	return out
}

// Clone returns a deep copy of the rule, never nil.
func (r ThresholdRule) Clone() ThresholdRule {
	return ThresholdRule(Values(r).Clone())
}

// New returns an empty mini-graph-card configuration.
func New() *Configuration {
	return &Configuration{
		Fields:          Values{KeyType: Type},
		Entities:        []EntityConfig{},
		ColorThresholds: []ThresholdRule{},
	}
}

// ID returns the entity identifier, or "" when unset.
func (e EntityConfig) ID() string {
	s, _ := e[KeyEntity].(string)
	return s
}

// DisplayName returns the name override, falling back to the identifier.
func (e EntityConfig) DisplayName() string {
	if s, ok := e["name"].(string); ok && s != "" {
		return s
	}
	return e.ID()
}

// Normalize makes the list fields non-nil so that an absent list and an
// empty list compare equal.
func (c *Configuration) Normalize() {
	if c.Fields == nil {
		c.Fields = Values{}
	}
	if c.Entities == nil {
		c.Entities = []EntityConfig{}
	}
	for i := range c.Entities {
		if c.Entities[i] == nil {
			c.Entities[i] = EntityConfig{}
		}
	}
	if c.ColorThresholds == nil {
		c.ColorThresholds = []ThresholdRule{}
	}
	for i := range c.ColorThresholds {
		if c.ColorThresholds[i] == nil {
			c.ColorThresholds[i] = ThresholdRule{}
		}
	}
}

// Clone returns a deep copy. Snapshots handed to panels and the host are
// clones so nothing outside the owner can mutate its copy.
func (c Configuration) Clone() Configuration {
	out := Configuration{
		Fields:          c.Fields.Clone(),
		Entities:        CloneEntities(c.Entities),
		ColorThresholds: CloneRules(c.ColorThresholds),
	}
	out.Normalize()
	return out
}

// Clone returns a deep copy of the mapping, never nil.
func (v Values) Clone() Values {
	out := Values{}
	if err := deepcopy.Copy(&out, v); err != nil {
		panic(fmt.Sprintf("card: clone values: %v", err))
	}
	if out == nil {
		out = Values{}
	}
	return out
}

// Clone returns a deep copy of the entity.
func (e EntityConfig) Clone() EntityConfig {
	out := EntityConfig{}
	if err := deepcopy.Copy(&out, e); err != nil {
		panic(fmt.Sprintf("card: clone entity: %v", err))
	}
	if out == nil {
		out = EntityConfig{}
	}
	return out
}

// CloneRules returns a deep copy of a threshold list, never nil.
func CloneRules(rules []ThresholdRule) []ThresholdRule {
	out := make([]ThresholdRule, len(rules))
	for i, r := range rules {
		out[i] = r.Clone()
	}
	return out
}

// CloneEntities returns a deep copy of an entity list, never nil.
func CloneEntities(list []EntityConfig) []EntityConfig {
	out := make([]EntityConfig, len(list))
	for i, e := range list {
		out[i] = e.Clone()
	}
	return out
}

// ToMap renders the configuration as plain maps and slices, suitable for
// JSON encoding.
func (c Configuration) ToMap() map[string]any {
	out := make(map[string]any, len(c.Fields)+2)
	for k, v := range c.Fields {
		out[k] = v
	}
	entities := make([]map[string]any, len(c.Entities))
	for i, e := range c.Entities {
		entities[i] = map[string]any(e)
	}
	out[KeyEntities] = entities
	if len(c.ColorThresholds) > 0 {
		rules := make([]map[string]any, len(c.ColorThresholds))
		for i, r := range c.ColorThresholds {
			rules[i] = map[string]any(r)
		}
		out[KeyColorThresholds] = rules
	}
	return out
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
