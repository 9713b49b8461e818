// Package logging provides structured logging using Go's standard library log/slog.
// It outputs JSON records and exists so that container lookup-miss
// diagnostics (see nest.WithLogger) and application logs share one stream
// and one level configuration.
package logging
