package nest_test

import (
	"bytes"
	"encoding/json"
	"testing"

	nest "github.com/0xalexb/hjarta-nest"
	"github.com/0xalexb/hjarta-nest/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument(opts ...nest.Option) *nest.Map {
	return nest.FromEntries(nest.Entries{
		{Key: "first", Value: "1"},
		{Key: "second", Value: nest.Entries{
			{Key: "first", Value: "2.1"},
		}},
		{Key: "third", Value: nest.Entries{
			{Key: "first", Value: nest.Entries{
				{Key: "first", Value: "3.1.1"},
			}},
		}},
	}, opts...)
}

func TestMap_Get_TopLevelAndNested(t *testing.T) {
	t.Parallel()

	document := sampleDocument()

	assert.Equal(t, "1", document.Get("first"))
	assert.Equal(t, "2.1", document.Get("second.first"))
	assert.Equal(t, "3.1.1", document.Get("third.first.first"))
}

func TestMap_Get_MissingReturnsNil(t *testing.T) {
	t.Parallel()

	document := sampleDocument(nest.WithLogger(logging.Discard()))

	assert.Nil(t, document.Get("missing"))
	assert.Nil(t, document.Get("second.missing"))
	assert.Nil(t, document.Get("first.cannot.descend"), "descending through a scalar is a miss, not a failure")
}

func TestMap_GetOr_FallsBack(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		path     string
		fallback any
		want     any
	}{
		{
			name:     "missing top-level key",
			path:     "missing",
			fallback: "default",
			want:     "default",
		},
		{
			name:     "missing nested key",
			path:     "second.absent",
			fallback: 42,
			want:     42,
		},
		{
			name:     "missing intermediate container",
			path:     "nowhere.at.all",
			fallback: true,
			want:     true,
		},
		{
			name:     "present value ignores fallback",
			path:     "second.first",
			fallback: "default",
			want:     "2.1",
		},
		{
			name:     "structured fallback",
			path:     "missing",
			fallback: map[string]any{"a": 1},
			want:     map[string]any{"a": 1},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			// GetOr memoizes hits, so each case gets its own instance.
			document := sampleDocument(nest.WithLogger(logging.Discard()))

			assert.Equal(t, testCase.want, document.GetOr(testCase.path, testCase.fallback))
		})
	}
}

func TestMap_Set_RoundTrip(t *testing.T) {
	t.Parallel()

	document := nest.New()

	require.NoError(t, document.Set("a.b.c", "deep"))
	require.NoError(t, document.Set("top", 7))

	assert.Equal(t, "deep", document.Get("a.b.c"))
	assert.Equal(t, 7, document.Get("top"))
	assert.True(t, document.Has("a.b.c"))
	assert.True(t, document.Has("a.b"), "intermediate containers should be created")
}

func TestMap_Set_OverwriteThroughCache(t *testing.T) {
	t.Parallel()

	document := sampleDocument()

	// Resolve once so the path is cached, then overwrite in place.
	require.Equal(t, "2.1", document.Get("second.first"))
	require.NoError(t, document.Set("second.first", "updated"))

	assert.Equal(t, "updated", document.Get("second.first"))
}

func TestMap_Set_ContainerValue(t *testing.T) {
	t.Parallel()

	document := nest.New()
	payload := map[string]any{
		"host": "localhost",
		"tls":  map[string]any{"enabled": true},
	}

	require.NoError(t, document.Set("server", payload))

	view, ok := document.Get("server").(*nest.Map)
	require.True(t, ok, "a container value should come back as a view")
	assert.Equal(t, payload, view.Snapshot())

	// Mutation through the view is visible from the root.
	require.NoError(t, view.Set("port", 8080))
	assert.Equal(t, 8080, document.Get("server.port"))
}

func TestMap_Set_MapValueAliases(t *testing.T) {
	t.Parallel()

	shared := nest.New()
	require.NoError(t, shared.Set("k", "v"))

	document := nest.New()
	require.NoError(t, document.Set("sub", shared))

	// Later writes to the original instance are visible through the adopter.
	require.NoError(t, shared.Set("k2", "v2"))
	assert.Equal(t, "v2", document.Get("sub.k2"))

	// And the reverse direction holds as well.
	require.NoError(t, document.Set("sub.k3", "v3"))
	assert.Equal(t, "v3", shared.Get("k3"))
}

func TestMap_Set_InvalidAccessLeavesStorageUnchanged(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		path string
	}{
		{
			name: "scalar at first segment",
			path: "first.inner",
		},
		{
			name: "scalar below a valid container",
			path: "second.first.deeper",
		},
		{
			name: "scalar followed by missing segments",
			path: "first.a.b.c",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			document := sampleDocument()
			before := document.Snapshot()

			err := document.Set(testCase.path, "x")

			require.ErrorIs(t, err, nest.ErrInvalidAccess)
			assert.Contains(t, err.Error(), testCase.path)
			assert.Equal(t, before, document.Snapshot(), "a failed write should not create intermediate containers")
		})
	}
}

func TestMap_Has(t *testing.T) {
	t.Parallel()

	document := sampleDocument()

	assert.True(t, document.Has("first"))
	assert.True(t, document.Has("third.first.first"))
	assert.False(t, document.Has("missing"))
	assert.False(t, document.Has("third.missing.first"))
	assert.False(t, document.Has("first.below.scalar"))

	require.NoError(t, document.Set("fresh.key", 1))
	assert.True(t, document.Has("fresh.key"))

	document.Delete("fresh.key")
	assert.False(t, document.Has("fresh.key"))
}

func TestMap_Delete(t *testing.T) {
	t.Parallel()

	document := nest.FromMap(map[string]any{
		"a": map[string]any{"b": 1, "c": 2},
	})

	assert.True(t, document.Delete("a.b"))
	assert.False(t, document.Has("a.b"))
	assert.True(t, document.Has("a.c"))
	assert.Equal(t, map[string]any{"a": map[string]any{"c": 2}}, document.Snapshot())

	assert.False(t, document.Delete("a.b"), "deleting a missing path is a no-op")
	assert.False(t, document.Delete("never.there"))
}

func TestMap_Delete_TopLevelKeyWithSeparator(t *testing.T) {
	t.Parallel()

	document := nest.FromEntries(nest.Entries{
		{Key: "a.b", Value: "literal"},
		{Key: "a", Value: nest.Entries{{Key: "b", Value: "nested"}}},
	})

	// A literal top-level key wins over the segment walk.
	assert.True(t, document.Delete("a.b"))
	assert.Equal(t, "nested", document.Get("a.b"), "the nested slot should survive")
}

func TestMap_Delete_PurgesDescendantCacheEntries(t *testing.T) {
	t.Parallel()

	document := sampleDocument(nest.WithLogger(logging.Discard()))

	// Populate the cache below the subtree we are about to remove.
	require.Equal(t, "3.1.1", document.Get("third.first.first"))

	assert.True(t, document.Delete("third.first"))
	assert.Nil(t, document.Get("third.first.first"))
	assert.False(t, document.Has("third.first.first"))
}

func TestMap_Set_OverwritePurgesDescendantCacheEntries(t *testing.T) {
	t.Parallel()

	document := nest.New(nest.WithLogger(logging.Discard()))

	require.NoError(t, document.Set("a.b", 1))
	require.Equal(t, 1, document.Get("a.b"))

	// Overwriting the prefix detaches the subtree holding "a.b".
	require.NoError(t, document.Set("a", "scalar"))

	assert.Nil(t, document.Get("a.b"), "the cached slot must not serve the detached subtree")
	assert.False(t, document.Has("a.b"))
	assert.Equal(t, map[string]any{"a": "scalar"}, document.Snapshot())
}

func TestMap_Set_OverwriteThroughCachePurgesDescendants(t *testing.T) {
	t.Parallel()

	document := nest.New(nest.WithLogger(logging.Discard()))

	require.NoError(t, document.Set("a.b", 1))
	require.NotNil(t, document.Get("a"), "resolve the parent so the overwrite takes the cached-slot path")

	require.NoError(t, document.Set("a", "scalar"))

	assert.Nil(t, document.Get("a.b"))
	assert.False(t, document.Has("a.b"))
	assert.Equal(t, "scalar", document.Get("a"))
}

func TestMap_Has_DropsStaleCacheEntry(t *testing.T) {
	t.Parallel()

	document := sampleDocument(nest.WithLogger(logging.Discard()))

	require.Equal(t, "2.1", document.Get("second.first"))

	view, ok := document.Get("second").(*nest.Map)
	require.True(t, ok)
	require.True(t, view.Delete("first"))

	assert.False(t, document.Has("second.first"))
	assert.NotContains(t, document.String(), "second.first", "the stale entry should leave the cached set")
}

func TestMap_Get_StaleCacheDroppedAfterViewDelete(t *testing.T) {
	t.Parallel()

	document := sampleDocument(nest.WithLogger(logging.Discard()))

	// Cache the slot on the root, then remove it through a view, which
	// cannot sweep the root's cache.
	require.Equal(t, "2.1", document.Get("second.first"))

	view, ok := document.Get("second").(*nest.Map)
	require.True(t, ok)
	require.True(t, view.Delete("first"))

	assert.Nil(t, document.Get("second.first"), "the stale cached slot should not resurrect the value")
}

func TestMap_ViewAliasing_EndToEnd(t *testing.T) {
	t.Parallel()

	document := sampleDocument()

	assert.Equal(t, "1", document.Get("first"))
	assert.Equal(t, "2.1", document.Get("second.first"))

	x, ok := document.Get("third.first").(*nest.Map)
	require.True(t, ok)

	require.NoError(t, x.Set("second.0", "a3.1"))
	require.NoError(t, x.Set("second.1", "a3.2"))

	inner, ok := document.Get("third.first.second").(*nest.Map)
	require.True(t, ok)

	var pairs [][2]string

	for key, value := range inner.All() {
		str, isString := value.(string)
		require.True(t, isString)

		pairs = append(pairs, [2]string{key, str})
	}

	assert.Equal(t, [][2]string{{"0", "a3.1"}, {"1", "a3.2"}}, pairs)
}

func TestMap_Views_ShareStorageNotCache(t *testing.T) {
	t.Parallel()

	document := sampleDocument()

	viewA, ok := document.Get("second").(*nest.Map)
	require.True(t, ok)

	viewB, ok := document.Get("second").(*nest.Map)
	require.True(t, ok)

	assert.NotSame(t, viewA, viewB, "every Get should produce a fresh view object")

	require.NoError(t, viewA.Set("shared", "yes"))
	assert.Equal(t, "yes", viewB.Get("shared"), "views over the same path alias the same subtree")
	assert.Equal(t, "yes", document.Get("second.shared"))
}

func TestMap_Len(t *testing.T) {
	t.Parallel()

	document := sampleDocument()

	assert.Equal(t, 3, document.Len(), "Len counts top-level keys only")

	require.NoError(t, document.Set("fourth", 4))
	assert.Equal(t, 4, document.Len())

	document.Delete("first")
	assert.Equal(t, 3, document.Len())

	assert.Equal(t, 0, nest.New().Len())
}

func TestMap_Snapshot_IsDetached(t *testing.T) {
	t.Parallel()

	document := sampleDocument()
	snapshot := document.Snapshot()

	want := map[string]any{
		"first":  "1",
		"second": map[string]any{"first": "2.1"},
		"third":  map[string]any{"first": map[string]any{"first": "3.1.1"}},
	}
	assert.Equal(t, want, snapshot)

	// Mutating the snapshot must not leak into storage.
	snapshot["first"] = "mutated"
	nested, ok := snapshot["second"].(map[string]any)
	require.True(t, ok)
	nested["first"] = "mutated"

	assert.Equal(t, "1", document.Get("first"))
	assert.Equal(t, "2.1", document.Get("second.first"))
}

func TestMap_EmptyPathAddressesEmptyKey(t *testing.T) {
	t.Parallel()

	document := nest.New()

	require.NoError(t, document.Set(" . ", "degenerate"))

	assert.Equal(t, "degenerate", document.Get(""))
	assert.True(t, document.Has("..."))
}

func TestMap_Lookup_Conformance(t *testing.T) {
	t.Parallel()

	var lookup nest.Lookup = sampleDocument()

	assert.Equal(t, "1", lookup.Get("first"))
	assert.True(t, lookup.Has("second.first"))
	assert.False(t, lookup.Has("absent"))
}

func TestMap_MissLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.Config{Level: "warn"}, &buf)
	document := sampleDocument(nest.WithLogger(logger))

	// A bare-key miss degrades silently.
	assert.Nil(t, document.Get("missing"))
	assert.Empty(t, buf.String())

	// A miss below the top level names the segment and the full path.
	assert.Nil(t, document.Get("second.absent"))

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "second.absent", record["path"])
	assert.Equal(t, "absent", record["segment"])
}

func TestMap_String_ShowsStorageAndCachedPaths(t *testing.T) {
	t.Parallel()

	document := nest.FromEntries(nest.Entries{
		{Key: "a", Value: nest.Entries{{Key: "b", Value: 1}}},
	})

	require.Equal(t, 1, document.Get("a.b"))

	debug := document.String()

	assert.Contains(t, debug, `"a":{"b":1}`)
	assert.Contains(t, debug, "a.b", "cached paths should be listed")

	document.Delete("a.b")
	assert.NotContains(t, document.String(), "[a.b]", "purged paths should disappear from the cached set")
}
