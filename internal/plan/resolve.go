package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"esrup/internal/fileutil"
	"esrup/internal/naming"
	"esrup/internal/services"
)

// ResolveSet enumerates the image files directly inside
// root/relPath/SetNumber that parse under the naming convention and computes
// each one's destination under outputRoot. Jobs come back in ascending
// ImageNumber order with zero Options; the enumerator stamps the run options.
// A missing set directory yields services.ErrNotFound, which is recoverable
// per set.
func ResolveSet(root, relPath string, set int, outputRoot string, spec OutputSpec) ([]Job, []FileSkip, error) {
	setDir := filepath.Join(root, relPath, naming.FormatSet(set))
	entries, err := os.ReadDir(setDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, services.Wrap(services.ErrNotFound, "plan", "resolve set", fmt.Sprintf("set directory %q", setDir), nil)
		}
		return nil, nil, services.Wrap(services.ErrNotFound, "plan", "resolve set", fmt.Sprintf("read set directory %q", setDir), err)
	}

	destDir := filepath.Join(outputRoot, relPath, naming.FormatSet(set))

	var jobs []Job
	var skips []FileSkip
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, err := naming.Parse(entry.Name())
		if err != nil {
			skips = append(skips, FileSkip{Set: set, File: entry.Name(), Reason: err.Error()})
			continue
		}
		jobs = append(jobs, Job{
			Source: filepath.Join(setDir, entry.Name()),
			Dest:   filepath.Join(destDir, name.Rename(spec.Suffix, spec.Ext)),
			Set:    set,
			Name:   name,
		})
	}

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].Name.Image != jobs[j].Name.Image {
			return jobs[i].Name.Image < jobs[j].Name.Image
		}
		return filepath.Base(jobs[i].Source) < filepath.Base(jobs[j].Source)
	})

	if len(jobs) > 0 {
		if err := fileutil.EnsureDir(destDir); err != nil {
			return nil, nil, services.Wrap(services.ErrValidation, "plan", "resolve set", "prepare destination directory", err)
		}
	}

	return jobs, skips, nil
}
