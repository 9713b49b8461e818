package nest

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Entry is one key/value pair used to build a Map with a defined key
// order. A nested Entries value becomes a child container.
type Entry struct {
	Key   string
	Value any
}

// Entries is an ordered sequence of key/value pairs.
type Entries []Entry

// Lookup is the minimal container-lookup contract: anything that resolves
// an identifier to a value. *Map satisfies it so an instance can be passed
// wherever dependency-wiring code expects a simple key-value source.
type Lookup interface {
	Get(id string) any
	Has(id string) bool
}

// Map is an ordered nested mapping addressed with dot-separated paths.
// It resolves paths lazily, memoizes resolved references per instance, and
// hands nested values back as live views onto its own storage.
//
// The zero value is not usable; construct with New, FromMap or FromEntries.
type Map struct {
	storage *node
	cache   map[string]slot
	logger  *slog.Logger
}

var _ Lookup = (*Map)(nil)

// New creates an empty Map.
func New(opts ...Option) *Map {
	return build(newNode(), opts)
}

// FromMap creates a Map from a plain nested mapping. Nested map[string]any
// values become child containers. Go maps carry no key order, so top-level
// and nested keys are adopted in sorted order; use FromEntries when the
// caller's order must be preserved.
func FromMap(values map[string]any, opts ...Option) *Map {
	if values == nil {
		return build(newNode(), opts)
	}

	return build(nodeFromMap(values), opts)
}

// FromEntries creates a Map from ordered key/value pairs, preserving their
// order. Decoders in load/decoder produce Entries for exactly this reason.
func FromEntries(entries Entries, opts ...Option) *Map {
	return build(nodeFromEntries(entries), opts)
}

func build(storage *node, opts []Option) *Map {
	built := &Map{
		storage: storage,
		cache:   make(map[string]slot),
	}

	for _, apply := range opts {
		apply(built)
	}

	return built
}

// view is the factory for live sub-collections: the result shares the
// given subtree by reference and starts with an empty resolution cache.
// Only storage is shared between a Map and its views.
func (m *Map) view(subtree *node) *Map {
	return &Map{
		storage: subtree,
		cache:   make(map[string]slot),
		logger:  m.logger,
	}
}

// Get returns the value at path, or nil when the path does not resolve.
// A value that is itself a nested mapping is returned as a fresh view
// aliasing that subtree. See GetOr for a caller-supplied fallback.
func (m *Map) Get(path string) any {
	return m.GetOr(path, nil)
}

// GetOr returns the value at path, or fallback when the path does not
// resolve. GetOr never fails: a miss below the top level is reported as a
// warn-level log event and degrades to the fallback value. Successful
// resolutions are memoized; misses are not.
func (m *Map) GetOr(path string, fallback any) any {
	path = Normalize(path)

	if cached, ok := m.cache[path]; ok {
		if value, exists := cached.value(); exists {
			return m.liveValue(value)
		}

		// The slot went stale (deleted through another view); drop it
		// and resolve again from storage.
		delete(m.cache, path)
	}

	if !isNested(path) {
		value, ok := m.storage.get(path)
		if !ok {
			return fallback
		}

		m.cache[path] = slot{parent: m.storage, key: path}

		return m.liveValue(value)
	}

	resolved, ok := m.walk(path)
	if !ok {
		return fallback
	}

	m.cache[path] = resolved

	value, _ := resolved.value()

	return m.liveValue(value)
}

// Has reports whether path resolves to an existing slot. It is a
// read-only probe: no cache entries are written and no views are created.
func (m *Map) Has(path string) bool {
	path = Normalize(path)

	if cached, ok := m.cache[path]; ok {
		if _, exists := cached.value(); exists {
			return true
		}

		delete(m.cache, path)
	}

	if !isNested(path) {
		_, ok := m.storage.get(path)

		return ok
	}

	segs := segments(path)
	current := m.storage

	for _, seg := range segs[:len(segs)-1] {
		next, ok := current.child(seg)
		if !ok {
			return false
		}

		current = next
	}

	_, ok := current.get(segs[len(segs)-1])

	return ok
}

// Set assigns value at path, creating intermediate containers for any
// missing segments. When an existing non-container value blocks the walk,
// Set returns ErrInvalidAccess and leaves storage unchanged.
//
// A map[string]any, Entries or *Map value is adopted as a container; a
// *Map contributes its storage by reference, so the stored subtree stays
// aliased to the original instance. Everything else is stored as-is.
func (m *Map) Set(path string, value any) error {
	path = Normalize(path)
	stored := adopt(value)

	if cached, ok := m.cache[path]; ok {
		// Overwriting may detach a subtree; slots resolved below the
		// path must not be read again.
		m.purgeBelow(path)
		cached.assign(stored)

		return nil
	}

	segs := segments(path)

	// Validate the whole walk before touching storage: an existing scalar
	// anywhere before the final segment aborts the write with nothing
	// applied, including no intermediate containers.
	current := m.storage

	for _, seg := range segs[:len(segs)-1] {
		existing, ok := current.get(seg)
		if !ok {
			break
		}

		next, isContainer := existing.(*node)
		if !isContainer {
			return fmt.Errorf("segment %q of path %q: %w", seg, path, ErrInvalidAccess)
		}

		current = next
	}

	current = m.storage

	for _, seg := range segs[:len(segs)-1] {
		next, ok := current.child(seg)
		if !ok {
			next = newNode()
			current.set(seg, next)
		}

		current = next
	}

	m.purgeBelow(path)

	final := slot{parent: current, key: segs[len(segs)-1]}
	final.assign(stored)
	m.cache[path] = final

	return nil
}

// Delete removes the entry at path and reports whether anything was
// removed. Cache entries for the path and all of its descendant paths are
// purged on this instance; views keep their own caches and are not swept.
// Delete is total: a path that does not resolve is a no-op.
func (m *Map) Delete(path string) bool {
	path = Normalize(path)

	m.purge(path)

	// A top-level key may itself contain separators; it wins over a walk.
	if m.storage.delete(path) {
		return true
	}

	if !isNested(path) {
		return false
	}

	segs := segments(path)
	current := m.storage

	for _, seg := range segs[:len(segs)-1] {
		next, ok := current.child(seg)
		if !ok {
			return false
		}

		current = next
	}

	return current.delete(segs[len(segs)-1])
}

// Len returns the number of top-level keys.
func (m *Map) Len() int {
	return m.storage.len()
}

// Snapshot returns the current contents as plain nested map[string]any
// values for interop with generic consumers. The nested maps are built
// fresh on every call; mutating them does not affect the Map. Use views
// (Get, All) when live aliasing is required.
func (m *Map) Snapshot() map[string]any {
	return m.storage.plain()
}

// String implements fmt.Stringer with a diagnostic view: the storage
// contents as JSON plus the sorted set of currently cached paths.
func (m *Map) String() string {
	cached := make([]string, 0, len(m.cache))
	for path := range m.cache {
		cached = append(cached, path)
	}

	sort.Strings(cached)

	data, err := m.MarshalJSON()
	if err != nil {
		data = []byte("<unserializable>")
	}

	return fmt.Sprintf("nest.Map{storage: %s, cached: %v}", data, cached)
}

// walk resolves a dotted path to its slot without creating anything,
// logging a diagnostic for the failing segment on a miss.
func (m *Map) walk(path string) (slot, bool) {
	segs := segments(path)
	current := m.storage

	for _, seg := range segs[:len(segs)-1] {
		next, ok := current.child(seg)
		if !ok {
			m.reportMiss(path, seg)

			return slot{}, false
		}

		current = next
	}

	last := segs[len(segs)-1]

	if _, ok := current.get(last); !ok {
		m.reportMiss(path, last)

		return slot{}, false
	}

	return slot{parent: current, key: last}, true
}

// liveValue converts a storage value into its caller-facing form: subtree
// nodes are wrapped as views, scalars pass through untouched.
func (m *Map) liveValue(value any) any {
	if subtree, ok := value.(*node); ok {
		return m.view(subtree)
	}

	return value
}

// purge drops the cache entry for path and for every descendant path.
func (m *Map) purge(path string) {
	delete(m.cache, path)
	m.purgeBelow(path)
}

// purgeBelow drops cache entries for every descendant path of path.
// Overwriting or deleting a slot detaches whatever subtree it held, so
// slots resolved below it must not serve reads afterwards.
func (m *Map) purgeBelow(path string) {
	prefix := path + pathSeparator

	for cached := range m.cache {
		if strings.HasPrefix(cached, prefix) {
			delete(m.cache, cached)
		}
	}
}

func (m *Map) reportMiss(path, segment string) {
	m.log().Warn("path did not resolve",
		slog.String("path", path),
		slog.String("segment", segment),
	)
}

func (m *Map) log() *slog.Logger {
	if m.logger != nil {
		return m.logger
	}

	return slog.Default()
}
