// Package logging builds the slog loggers used across the CLI.
//
// Console output is a compact single-line format with color when attached to
// a terminal; JSON output is available for log collection. NewFromConfig
// additionally tees records into the configured log directory.
package logging
