package nest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var (
	_ json.Marshaler = (*Map)(nil)
	_ json.Marshaler = (Entries)(nil)
)

// MarshalJSON implements json.Marshaler, producing a canonical JSON object
// with keys in storage order. Generic serialization code can pass a *Map
// straight to json.Marshal; nested subtrees encode as nested objects.
func (m *Map) MarshalJSON() ([]byte, error) {
	return marshalNode(m.storage)
}

func marshalNode(n *node) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", key, err)
		}

		buf.Write(encodedKey)
		buf.WriteByte(':')

		value := n.values[key]

		var encodedValue []byte

		if subtree, ok := value.(*node); ok {
			encodedValue, err = marshalNode(subtree)
		} else {
			encodedValue, err = json.Marshal(value)
		}

		if err != nil {
			return nil, fmt.Errorf("encoding value for key %q: %w", key, err)
		}

		buf.Write(encodedValue)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalJSON encodes the entries as a JSON object in entry order.
// Mappings carried inside opaque sequence values (see load/decoder/yaml)
// therefore serialize with the same shape as containers.
func (e Entries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, entry := range e {
		if i > 0 {
			buf.WriteByte(',')
		}

		encodedKey, err := json.Marshal(entry.Key)
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", entry.Key, err)
		}

		buf.Write(encodedKey)
		buf.WriteByte(':')

		encodedValue, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding value for key %q: %w", entry.Key, err)
		}

		buf.Write(encodedValue)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
