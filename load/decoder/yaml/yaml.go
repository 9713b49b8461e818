package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	nest "github.com/0xalexb/hjarta-nest"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the selected path is not found in the document.
var ErrPathNotFound = errors.New("path not found")

// ErrNotMapping is returned when the decoded (sub-)document is not a mapping.
var ErrNotMapping = errors.New("document is not a mapping")

// Decoder implements load.Decoder for YAML documents. JSON documents
// decode as well, since YAML is a superset of JSON.
//
// Mappings decode in document order, so the resulting container iterates
// the way the document was written. Sequences are kept as opaque scalar
// values; they are not turned into containers. Mapping elements inside a
// sequence stay nest.Entries values, which still serialize as JSON
// objects.
type Decoder struct{}

// NewDecoder creates a new YAML decoder instance.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes YAML data into ordered entries. The path parameter
// selects a sub-document using dot-path notation before decoding; the
// empty path decodes the entire document. Keys that themselves contain
// dots cannot be addressed through path.
func (d *Decoder) Decode(data []byte, path string) (nest.Entries, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	path = nest.Normalize(path)

	if path == "" {
		var document any

		err := yaml.UnmarshalWithOptions(data, &document, yaml.UseOrderedMap())
		if err != nil {
			return nil, fmt.Errorf("unmarshal error: %w", err)
		}

		return toEntries(document)
	}

	pathObj, err := yaml.PathString("$." + path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	node, err := pathObj.ReadNode(bytes.NewReader(data))
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return nil, fmt.Errorf("reading path %q: %w", path, err)
	}

	var document any

	err = yaml.NodeToValue(node, &document, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("decoding path %q: %w", path, err)
	}

	return toEntries(document)
}

// toEntries converts a decoded document root into ordered entries. A nil
// root (an empty document) yields no entries.
func toEntries(document any) (nest.Entries, error) {
	if document == nil {
		return nest.Entries{}, nil
	}

	mapping, ok := document.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, document)
	}

	return mappingToEntries(mapping), nil
}

func mappingToEntries(mapping yaml.MapSlice) nest.Entries {
	entries := make(nest.Entries, 0, len(mapping))

	for _, item := range mapping {
		entries = append(entries, nest.Entry{
			Key:   fmt.Sprint(item.Key),
			Value: convertValue(item.Value),
		})
	}

	return entries
}

func convertValue(value any) any {
	switch typed := value.(type) {
	case yaml.MapSlice:
		return mappingToEntries(typed)
	case map[string]any:
		// Guard against decode paths that bypass the ordered option;
		// sorted keys keep the result deterministic.
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		entries := make(nest.Entries, 0, len(typed))
		for _, key := range keys {
			entries = append(entries, nest.Entry{Key: key, Value: convertValue(typed[key])})
		}

		return entries
	case []any:
		converted := make([]any, len(typed))
		for i, element := range typed {
			converted[i] = convertValue(element)
		}

		return converted
	default:
		return value
	}
}
