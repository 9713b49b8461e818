// Package load builds nest.Map containers from external documents.
//
// The package uses an interface-based design with two extension points:
//   - Fetcher: retrieves raw document data (file, embedded bytes, etc.)
//   - Decoder: decodes raw data into ordered entries, with dot-path
//     navigation to a sub-document
//
// # Sub-document selection
//
// The Provider function accepts a dot-path that targets a section of the
// document before adoption:
//
//	"api.permissions"  -> document["api"]["permissions"]
//	""                 -> entire document
//
// Decoder implementations handle the navigation internally. The YAML
// decoder in load/decoder/yaml uses goccy/go-yaml PathString to reach the
// target section before decoding.
//
// # Example
//
// A typical usage pattern:
//
//	provider := load.Provider("services.api")
//	document, err := provider(yamldecoder.NewDecoder(), filefetcher.NewFetcher("config.yaml")())
//
// NewModule wraps the same flow as a named Fx module, providing the
// resulting *nest.Map (and its nest.Lookup form) to a DI graph.
package load
