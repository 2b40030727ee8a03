package pack

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string map that keeps insertion order when serialized.
type OrderedMap struct {
	keys   []string
	values map[string]string
}

func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: map[string]string{}}
}

// Set stores v under k. An existing key keeps its position.
func (m *OrderedMap) Set(k, v string) {
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

func (m *OrderedMap) Get(k string) (string, bool) {
	v, ok := m.values[k]
	return v, ok
}

func (m *OrderedMap) Has(k string) bool {
	_, ok := m.values[k]
	return ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m *OrderedMap) Len() int { return len(m.keys) }

func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *OrderedMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.values[k]},
		)
	}
	return node, nil
}
