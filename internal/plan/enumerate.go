package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"esrup/internal/fileutil"
	"esrup/internal/naming"
	"esrup/internal/services"
	"esrup/internal/services/realesrgan"
	"esrup/internal/sets"
)

// Enumerate produces the full ordered job list for a run plus the structured
// skip report. Fatal errors (bad options, malformed set tokens, missing
// roots) abort immediately; per-set and per-file problems accumulate into the
// report so a partially malformed library still yields a useful run.
//
// Re-invoking Enumerate with identical inputs produces an identical ordered
// job list.
func Enumerate(req Request) ([]Job, *Report, error) {
	report := &Report{RunID: uuid.NewString()}

	spec, err := req.Output.Normalize()
	if err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(req.Root) == "" {
		return nil, nil, services.Wrap(services.ErrValidation, "plan", "enumerate", "root directory is required", nil)
	}
	if strings.TrimSpace(req.OutputRoot) == "" {
		return nil, nil, services.Wrap(services.ErrValidation, "plan", "enumerate", "output root is required", nil)
	}
	if info, err := os.Stat(req.Root); err != nil || !info.IsDir() {
		return nil, nil, services.Wrap(services.ErrValidation, "plan", "enumerate", fmt.Sprintf("root %q is not a readable directory", req.Root), nil)
	}

	options := req.Options
	options.Suffix = spec.Suffix
	options.Ext = spec.Ext

	if len(req.Files) > 0 {
		if len(req.SetTokens) > 0 {
			return nil, nil, services.Wrap(services.ErrValidation, "plan", "enumerate", "sets and explicit files are mutually exclusive", nil)
		}
		jobs := enumerateFiles(req, spec, options, report)
		detectCollisions(jobs, report)
		report.JobCount = len(jobs)
		return jobs, report, nil
	}

	if strings.TrimSpace(req.RelPath) == "" {
		return nil, nil, services.Wrap(services.ErrValidation, "plan", "enumerate", "relative Studio/Model path is required", nil)
	}

	// Token validation happens before any directory listing so an inverted
	// range fails without filesystem access.
	if err := sets.Validate(req.SetTokens); err != nil {
		return nil, nil, err
	}

	modelDir := filepath.Join(req.Root, req.RelPath)
	available, err := sets.Available(modelDir)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrValidation, "plan", "enumerate", fmt.Sprintf("path %q under root", req.RelPath), err)
	}

	selected, err := sets.Expand(req.SetTokens, available)
	if err != nil {
		return nil, nil, err
	}
	report.Sets = selected
	if len(selected) == 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("no sets under %q match %v", req.RelPath, req.SetTokens))
		return nil, report, nil
	}

	var jobs []Job
	for _, set := range selected {
		setJobs, skips, err := ResolveSet(req.Root, req.RelPath, set, req.OutputRoot, spec)
		if err != nil {
			if services.Fatal(err) {
				return nil, nil, err
			}
			report.SkippedSets = append(report.SkippedSets, SetSkip{Set: set, Reason: err.Error()})
			continue
		}
		report.SetsProcessed++
		report.SkippedFiles = append(report.SkippedFiles, skips...)
		for i := range setJobs {
			setJobs[i].Options = options
		}
		jobs = append(jobs, setJobs...)
	}

	detectCollisions(jobs, report)
	report.JobCount = len(jobs)
	return jobs, report, nil
}

// enumerateFiles handles the explicit file list mode: each entry is a path
// relative to root, its destination mirrors the file's parent directory under
// the output root. Problems with individual files are reported, not fatal.
func enumerateFiles(req Request, spec OutputSpec, options realesrgan.Options, report *Report) []Job {
	var jobs []Job
	for _, rel := range req.Files {
		source := filepath.Join(req.Root, rel)
		info, err := os.Stat(source)
		if err != nil || info.IsDir() {
			report.SkippedFiles = append(report.SkippedFiles, FileSkip{File: rel, Reason: fmt.Sprintf("not a file under root %q", req.Root)})
			continue
		}
		name, err := naming.Parse(filepath.Base(rel))
		if err != nil {
			report.SkippedFiles = append(report.SkippedFiles, FileSkip{File: rel, Reason: err.Error()})
			continue
		}
		destDir := filepath.Join(req.OutputRoot, filepath.Dir(rel))
		if err := fileutil.EnsureDir(destDir); err != nil {
			report.SkippedFiles = append(report.SkippedFiles, FileSkip{File: rel, Reason: err.Error()})
			continue
		}
		jobs = append(jobs, Job{
			Source:  source,
			Dest:    filepath.Join(destDir, name.Rename(spec.Suffix, spec.Ext)),
			Set:     name.Set,
			Name:    name,
			Options: options,
		})
	}
	return jobs
}

func detectCollisions(jobs []Job, report *Report) {
	owners := make(map[string]string, len(jobs))
	for _, job := range jobs {
		if prior, ok := owners[job.Dest]; ok {
			report.Collisions = append(report.Collisions, Collision{Dest: job.Dest, Source: job.Source, PriorSource: prior})
			continue
		}
		owners[job.Dest] = job.Source
	}
}
