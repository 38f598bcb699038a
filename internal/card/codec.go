package card

import (
	"bytes"
	"fmt"

	"github.com/tonhe/mgce/internal/schema"
	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a card mapping. Non-sequence values under
// entities or color_thresholds are coerced to empty lists; the host is
// allowed to omit or mangle optional fields.
func (c *Configuration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: card configuration must be a mapping", node.Line)
	}
	out := Configuration{Fields: Values{}}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		switch k.Value {
		case KeyEntities:
			if v.Kind == yaml.SequenceNode {
				if err := v.Decode(&out.Entities); err != nil {
					return fmt.Errorf("entities: %w", err)
				}
			}
		case KeyColorThresholds:
			if v.Kind == yaml.SequenceNode {
				if err := v.Decode(&out.ColorThresholds); err != nil {
					return fmt.Errorf("color_thresholds: %w", err)
				}
			}
		default:
			var val any
			if err := v.Decode(&val); err != nil {
				return fmt.Errorf("%s: %w", k.Value, err)
			}
			out.Fields[k.Value] = val
		}
	}
	out.Normalize()
	*c = out
	return nil
}

// MarshalYAML writes keys in a stable order: type, the card schema's
// order, unknown keys sorted, then the two lists.
func (c Configuration) MarshalYAML() (any, error) {
	order := append([]string{KeyType}, schema.TopLevelKeys(schema.Card)...)
	node, err := orderedMapping(c.Fields, order)
	if err != nil {
		return nil, err
	}
	entities := c.Entities
	if entities == nil {
		entities = []EntityConfig{}
	}
	if err := appendPair(node, KeyEntities, entities); err != nil {
		return nil, err
	}
	if len(c.ColorThresholds) > 0 {
		if err := appendPair(node, KeyColorThresholds, c.ColorThresholds); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// UnmarshalYAML accepts both the mapping form and the bare identifier
// shorthand ("- sensor.temperature").
func (e *EntityConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!null" {
			*e = EntityConfig{}
			return nil
		}
		*e = EntityConfig{KeyEntity: node.Value}
		return nil
	}
	var m map[string]any
	if err := node.Decode(&m); err != nil {
		return err
	}
	if m == nil {
		m = map[string]any{}
	}
	*e = EntityConfig(m)
	return nil
}

// UnmarshalYAML decodes a rule mapping. Anything else becomes an empty
// rule rather than failing the whole card.
func (r *ThresholdRule) UnmarshalYAML(node *yaml.Node) error {
	*r = ThresholdRule{}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	var m map[string]any
	if err := node.Decode(&m); err != nil {
		return err
	}
	for k, v := range m {
		(*r)[k] = v
	}
	return nil
}

// MarshalYAML writes value then color, then any other keys sorted.
func (r ThresholdRule) MarshalYAML() (any, error) {
	return orderedMapping(Values(r), []string{KeyValue, KeyColor})
}

// MarshalYAML writes the entity id first, then the entity schema's order.
func (e EntityConfig) MarshalYAML() (any, error) {
	return orderedMapping(Values(e), schema.TopLevelKeys(schema.Entity))
}

func orderedMapping(values Values, order []string) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		seen[k] = true
		v, ok := values[k]
		if !ok {
			continue
		}
		if err := appendPair(node, k, v); err != nil {
			return nil, err
		}
	}
	for _, k := range sortedKeys(values) {
		if seen[k] {
			continue
		}
		if err := appendPair(node, k, values[k]); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func appendPair(node *yaml.Node, key string, value any) error {
	var vn yaml.Node
	if err := vn.Encode(value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	kn := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	node.Content = append(node.Content, kn, &vn)
	return nil
}

// Parse decodes a card from YAML. An empty document yields an empty card.
func Parse(data []byte) (*Configuration, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(), nil
	}
	var cfg Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Marshal encodes a card as YAML with two-space indentation.
func Marshal(cfg *Configuration) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
