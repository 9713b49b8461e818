package nest

import "iter"

// All returns a lazy, restartable sequence over the current top level of
// the Map, in key order. Values that are nested mappings are yielded as
// live views; scalars are yielded as-is. The key order is captured when
// iteration begins, and keys removed mid-iteration are skipped. Mutating
// the Map from another goroutine during iteration is not supported.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range m.storage.orderedKeys() {
			value, ok := m.storage.get(key)
			if !ok {
				continue
			}

			if !yield(key, m.liveValue(value)) {
				return
			}
		}
	}
}

// Keys returns the top-level keys in order. The slice is a copy.
func (m *Map) Keys() []string {
	return m.storage.orderedKeys()
}
