package nest

import "log/slog"

// Option defines a function type for configuring a Map at construction.
type Option func(*Map)

// WithLogger sets the logger used for lookup-miss diagnostics. Views
// created from the Map inherit it. When unset, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Map) {
		m.logger = logger
	}
}
