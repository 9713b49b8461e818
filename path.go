package nest

import (
	"strings"
	"unicode"
)

// pathSeparator joins the segments of a normalized path.
const pathSeparator = "."

// Normalize converts a raw path into its canonical form: all whitespace
// characters are removed, leading and trailing separators are trimmed, and
// any run of consecutive separators collapses into one.
//
// Normalize is pure and total; empty or all-dot input normalizes to "".
// It is idempotent: Normalize(Normalize(raw)) == Normalize(raw).
func Normalize(raw string) string {
	var b strings.Builder

	b.Grow(len(raw))

	for _, r := range raw {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	path := strings.Trim(b.String(), pathSeparator)

	for strings.Contains(path, pathSeparator+pathSeparator) {
		path = strings.ReplaceAll(path, pathSeparator+pathSeparator, pathSeparator)
	}

	return path
}

// segments splits a normalized path into its ordered segment keys.
func segments(path string) []string {
	return strings.Split(path, pathSeparator)
}

// isNested reports whether a normalized path addresses below the top level.
func isNested(path string) bool {
	return strings.Contains(path, pathSeparator)
}
