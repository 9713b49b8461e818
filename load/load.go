package load

import (
	"fmt"
	"log/slog"

	nest "github.com/0xalexb/hjarta-nest"
)

// Fetcher defines an interface for reading raw document data.
type Fetcher interface {
	Fetch() ([]byte, error)
}

// Decoder defines an interface for decoding raw document data into ordered
// entries suitable for adoption by a nest.Map.
//
// The path parameter selects a sub-document before decoding, using the
// container's dot-path notation:
//   - "api.permissions" decodes document["api"]["permissions"]
//   - "" (empty path) decodes the entire document
//
// Decoder implementations are responsible for path navigation internally.
// See load/decoder/yaml for an implementation using goccy/go-yaml.
type Decoder interface {
	Decode(data []byte, path string) (nest.Entries, error)
}

// Provider returns a function that fetches a document, decodes it (or the
// sub-document selected by path) and adopts the result as a *nest.Map.
// The returned function signature is Fx-friendly: wire a Decoder and a
// Fetcher into the graph and provide the result.
func Provider(path string, opts ...nest.Option) func(Decoder, Fetcher) (*nest.Map, error) {
	return func(decoder Decoder, fetcher Fetcher) (*nest.Map, error) {
		data, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("fetching document: %w", err)
		}

		entries, err := decoder.Decode(data, path)
		if err != nil {
			return nil, fmt.Errorf("decoding document: %w", err)
		}

		document := nest.FromEntries(entries, opts...)

		slog.Debug("document adopted",
			slog.String("path", path),
			slog.Int("keys", document.Len()),
		)

		return document, nil
	}
}
