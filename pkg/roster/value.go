package roster

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shift-rota/pkg/core/scheduler"
)

// Value is one employee's preference for one day as written in a roster
// document: a single shift label or a list of labels in rank order.
//
// Decoding is permissive. Non-string list items are skipped and any other
// shape (numbers, maps, null) decodes to an absent preference.
type Value struct {
	raw scheduler.RawPreference
}

// Single returns a Value holding one label
func Single(label string) Value {
	return Value{raw: scheduler.SinglePreference(label)}
}

// Ranked returns a Value holding labels in rank order
func Ranked(labels ...string) Value {
	return Value{raw: scheduler.RankedPreference(labels...)}
}

// Raw returns the value as the scheduler's raw preference
func (v Value) Raw() scheduler.RawPreference {
	return v.raw
}

// UnmarshalYAML implements yaml.Unmarshaler
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	switch node.Kind {
	case yaml.ScalarNode:
		if isString(node) {
			*v = Single(node.Value)
			return nil
		}
	case yaml.SequenceNode:
		labels := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind == yaml.AliasNode && item.Alias != nil {
				item = item.Alias
			}
			if item.Kind == yaml.ScalarNode && isString(item) {
				labels = append(labels, item.Value)
			}
		}
		*v = Ranked(labels...)
		return nil
	}

	*v = Value{}
	return nil
}

func isString(node *yaml.Node) bool {
	return node.ShortTag() == "!!str"
}

// UnmarshalJSON implements json.Unmarshaler
func (v *Value) UnmarshalJSON(data []byte) error {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	switch typed := decoded.(type) {
	case string:
		*v = Single(typed)
	case []any:
		labels := make([]string, 0, len(typed))
		for _, item := range typed {
			if label, ok := item.(string); ok {
				labels = append(labels, label)
			}
		}
		*v = Ranked(labels...)
	default:
		*v = Value{}
	}
	return nil
}
