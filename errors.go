package nest

import "errors"

// ErrInvalidAccess is returned by Set when a write path must pass through
// an existing non-container value to reach its target. The write is not
// applied past the failing segment; use errors.Is to detect it.
var ErrInvalidAccess = errors.New("cannot descend through non-container value")
