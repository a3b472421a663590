// Package logging provides structured logging for doorsentry.
//
// Built on log/slog with JSON output by default, a configurable level,
// and service/version attributes attached to every record. Use With to
// derive component-scoped loggers.
package logging
