// Package runner executes enumerated upscaling jobs.
//
// Jobs run strictly sequentially, one external tool invocation at a time,
// because GPU memory is an exclusively held resource. An advisory file lock
// under the output root prevents overlapping batches; a destination-existence
// check makes interrupted runs resumable without tracking any state beyond
// the filesystem.
package runner
