// Package services defines shared utilities consumed by the enumeration
// pipeline and external tool integrations.
//
// Key responsibilities:
//   - Structured error markers plus the Wrap helper that classify failures
//     into fatal (abort the run) and recoverable (skip and report) classes.
//   - The ExitCode mapping the CLI uses so validation failures, malformed set
//     ranges, and tool failures surface distinct process statuses.
//
// Use these helpers when wiring new pipeline logic so error handling stays
// uniform across components.
package services
