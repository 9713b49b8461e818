// Package yaml provides a YAML decoder implementation for the load package.
//
// This package uses github.com/goccy/go-yaml with ordered-map decoding so
// that the resulting nest.Entries preserve document order, and PathString
// for efficient navigation to a sub-document. The container's dot-paths
// (e.g., "api.permissions") map directly onto YAML path format
// (e.g., "$.api.permissions") internally.
//
// Usage:
//
//	decoder := yaml.NewDecoder()
//	entries, err := decoder.Decode(data, "api.permissions")
//	document := nest.FromEntries(entries)
//
// Path selection:
//   - Empty path "" -> decode the entire document
//   - Single key "key" -> "$.key"
//   - Nested path "api.permissions" -> "$.api.permissions"
//
// Since YAML is a superset of JSON, the decoder accepts JSON input too.
package yaml
