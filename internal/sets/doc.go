// Package sets expands user-supplied set selection tokens into the concrete
// set numbers a run should process.
//
// Tokens are validated before any filesystem access so a malformed range
// aborts the run immediately; expansion then filters every requested span
// against the set directories actually present on disk. Sets are sparse by
// design, so a number missing from a requested range is silently excluded
// rather than treated as an error.
package sets
