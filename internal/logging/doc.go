// Package logging assembles the structured slog loggers used across the
// thermo daemon and CLI.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attr helpers plus standardized field names so every
// component emits diagnostics with the same shape. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
