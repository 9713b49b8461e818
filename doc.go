// Package nest provides a nested key-value container addressed with
// dot-separated paths.
//
// A Map is an ordered hierarchical mapping of string keys to values, where
// a value is either a scalar or another nested mapping. Instead of walking
// intermediate containers by hand, callers read and write deep values with
// a single path string:
//
//	m := nest.New()
//	_ = m.Set("database.connection.timeout", 30)
//	timeout := m.Get("database.connection.timeout")
//
// # Paths
//
// Paths use dot (.) as the separator and are normalized before use: all
// whitespace is removed, leading and trailing dots are trimmed, and runs
// of dots collapse to one. "  a..b. .c. " therefore addresses the same
// slot as "a.b.c". See Normalize.
//
// # Views
//
// Reading a path whose value is a nested mapping returns a view: a new Map
// that aliases the same underlying subtree rather than copying it. Writes
// through a view are visible from the root and vice versa:
//
//	sub, _ := m.Get("database").(*nest.Map)
//	_ = sub.Set("connection.retries", 5)
//	m.Get("database.connection.retries") // 5
//
// Iteration (All) wraps nested values in views the same way.
//
// # Resolution cache
//
// Each Map memoizes resolved paths as aliased references into storage, so
// repeated access to the same path skips the segment walk. Views keep
// their own cache; only the storage is shared. Delete purges cache
// entries for the removed path and its descendants on the instance the
// call is made on — views holding their own caches are not swept.
//
// # Concurrency
//
// A Map is not safe for concurrent use. When embedded in a concurrent
// host, the root and every live view must share one external mutex.
package nest
