package nest

import "sort"

// node is an insertion-ordered container of string keys. Values are either
// scalars or further *node subtrees. Views share nodes by pointer; a node
// is never copied when handed to a view.
type node struct {
	keys   []string
	values map[string]any
}

func newNode() *node {
	return &node{values: make(map[string]any)}
}

func (n *node) get(key string) (any, bool) {
	value, ok := n.values[key]

	return value, ok
}

// child returns the container stored under key, or false when the key is
// absent or holds a scalar.
func (n *node) child(key string) (*node, bool) {
	value, ok := n.values[key]
	if !ok {
		return nil, false
	}

	childNode, ok := value.(*node)

	return childNode, ok
}

// set assigns value under key, appending the key to the order when new.
func (n *node) set(key string, value any) {
	if _, exists := n.values[key]; !exists {
		n.keys = append(n.keys, key)
	}

	n.values[key] = value
}

func (n *node) delete(key string) bool {
	if _, exists := n.values[key]; !exists {
		return false
	}

	delete(n.values, key)

	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)

			break
		}
	}

	return true
}

func (n *node) len() int {
	return len(n.keys)
}

// orderedKeys returns a copy of the key order, safe to hold across
// mutation of the node.
func (n *node) orderedKeys() []string {
	keys := make([]string, len(n.keys))
	copy(keys, n.keys)

	return keys
}

// plain converts the subtree into plain nested map[string]any values.
func (n *node) plain() map[string]any {
	out := make(map[string]any, len(n.keys))

	for _, key := range n.keys {
		if childNode, ok := n.values[key].(*node); ok {
			out[key] = childNode.plain()

			continue
		}

		out[key] = n.values[key]
	}

	return out
}

// adopt converts a caller value into its storage form: nested mappings
// become *node subtrees, a *Map contributes its storage node by alias, and
// anything else is stored as an opaque scalar.
func adopt(value any) any {
	switch typed := value.(type) {
	case *Map:
		if typed == nil {
			return nil
		}

		return typed.storage
	case *node:
		return typed
	case map[string]any:
		return nodeFromMap(typed)
	case Entries:
		return nodeFromEntries(typed)
	default:
		return value
	}
}

// nodeFromMap builds an ordered node from a plain map. Go maps carry no
// order, so keys are sorted for a deterministic result.
func nodeFromMap(values map[string]any) *node {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	built := newNode()
	for _, key := range keys {
		built.set(key, adopt(values[key]))
	}

	return built
}

func nodeFromEntries(entries Entries) *node {
	built := newNode()
	for _, entry := range entries {
		built.set(entry.Key, adopt(entry.Value))
	}

	return built
}

// slot is an aliased reference to a resolved storage slot: the container
// holding the value plus the final key. The resolution cache stores slots,
// never value copies, so assignment through a slot mutates storage.
type slot struct {
	parent *node
	key    string
}

func (s slot) value() (any, bool) {
	return s.parent.get(s.key)
}

func (s slot) assign(value any) {
	s.parent.set(s.key, value)
}
