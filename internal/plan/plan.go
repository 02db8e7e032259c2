package plan

import (
	"fmt"
	"strings"

	"esrup/internal/naming"
	"esrup/internal/services"
	"esrup/internal/services/realesrgan"
)

// OutputSpec is the (suffix, extension) pair applied uniformly to every
// destination filename in a run. The suffix is supplied without its leading
// underscore; the separator is injected during rendering.
type OutputSpec struct {
	Suffix string
	Ext    string
}

// Normalize applies the default extension and validates the spec.
func (s OutputSpec) Normalize() (OutputSpec, error) {
	ext := strings.ToLower(strings.TrimSpace(s.Ext))
	if ext == "" {
		ext = realesrgan.DefaultExt
	}
	switch ext {
	case "png", "jpg":
	default:
		return OutputSpec{}, services.Wrap(services.ErrValidation, "plan", "output spec", fmt.Sprintf("extension %q is not png or jpg", s.Ext), nil)
	}
	if strings.HasPrefix(s.Suffix, "_") {
		return OutputSpec{}, services.Wrap(services.ErrValidation, "plan", "output spec", "suffix must not include the leading underscore", nil)
	}
	return OutputSpec{Suffix: strings.TrimSpace(s.Suffix), Ext: ext}, nil
}

// Job is one immutable unit of upscaling work: a source image, its computed
// destination, and the resolved upscaler options. Jobs are created here and
// consumed exactly once by the runner.
type Job struct {
	Source  string
	Dest    string
	Set     int
	Name    naming.ImageName
	Options realesrgan.Options
}

// Request carries everything the enumerator needs for one run. Root must be
// resolved (literal or preset) before a Request is built. Exactly one of
// SetTokens or Files is populated.
type Request struct {
	Root       string
	RelPath    string
	SetTokens  []string
	Files      []string
	OutputRoot string
	Output     OutputSpec
	Options    realesrgan.Options
}

// FileSkip records one file excluded from enumeration.
type FileSkip struct {
	Set    int
	File   string
	Reason string
}

// SetSkip records one selected set that could not be resolved.
type SetSkip struct {
	Set    int
	Reason string
}

// Collision records two distinct sources resolving to the same destination.
// Both jobs stay in the list; the later one overwrites, so the condition is
// surfaced as a warning rather than dropped silently.
type Collision struct {
	Dest        string
	Source      string
	PriorSource string
}

// Report aggregates per-set and per-file skip reasons collected during
// enumeration so the caller can summarize a run without aborting it.
type Report struct {
	RunID         string
	Sets          []int
	SetsProcessed int
	JobCount      int
	SkippedSets   []SetSkip
	SkippedFiles  []FileSkip
	Collisions    []Collision
	Warnings      []string
}

// SkipCount returns the total number of skipped sets and files.
func (r *Report) SkipCount() int {
	return len(r.SkippedSets) + len(r.SkippedFiles)
}

// Summary renders the one-line run summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d sets processed, %d jobs enumerated, %d skipped", r.SetsProcessed, r.JobCount, r.SkipCount())
}
