// Package logging assembles the structured slog loggers used across scribe.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// exposes context-aware helpers so pipeline code can automatically tag log
// lines with session and request identifiers. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
