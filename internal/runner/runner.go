package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"esrup/internal/fileutil"
	"esrup/internal/plan"
	"esrup/internal/services"
	"esrup/internal/services/realesrgan"
)

// Options tunes runner behaviour for one batch.
type Options struct {
	// SkipExisting resumes a partial run by skipping jobs whose destination
	// already exists.
	SkipExisting bool
	// Placeholder copies sources to destinations instead of invoking the
	// upscaler, keeping the pipeline testable without a GPU.
	Placeholder bool
}

// Stats aggregates the outcome of one batch.
type Stats struct {
	Total     int
	Completed int
	Skipped   int
	Failed    int
}

// Runner executes an enumerated job list strictly sequentially. The GPU is an
// exclusively held resource, so an advisory lock under the output root keeps
// concurrent batches from overlapping.
type Runner struct {
	client realesrgan.Client
	logger *slog.Logger
	opts   Options
}

// New constructs a Runner.
func New(client realesrgan.Client, logger *slog.Logger, opts Options) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{client: client, logger: logger, opts: opts}
}

// Run consumes the job list one at a time. Per-job failures are logged and
// counted, not fatal to the batch. Cancellation finishes the current job and
// stops before the next one; the job list is cheaply re-derivable, so a
// resumed run with SkipExisting picks up where this one stopped.
func (r *Runner) Run(ctx context.Context, jobs []plan.Job, outputRoot string) (Stats, error) {
	stats := Stats{Total: len(jobs)}
	if len(jobs) == 0 {
		return stats, nil
	}

	if err := fileutil.EnsureDir(outputRoot); err != nil {
		return stats, services.Wrap(services.ErrValidation, "runner", "prepare", "output root", err)
	}
	lock := flock.New(filepath.Join(outputRoot, ".esrup.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return stats, services.Wrap(services.ErrValidation, "runner", "acquire lock", outputRoot, err)
	}
	if !ok {
		return stats, services.Wrap(services.ErrValidation, "runner", "acquire lock", "another run is already writing to this output root", nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("run interrupted", "completed", stats.Completed, "remaining", len(jobs)-i)
			return stats, err
		}

		jobLog := r.logger.With(
			"job", fmt.Sprintf("%d/%d", i+1, len(jobs)),
			"source", filepath.Base(job.Source),
		)

		if r.opts.SkipExisting {
			if _, err := os.Stat(job.Dest); err == nil {
				jobLog.Info("skip existing destination", "dest", job.Dest)
				stats.Skipped++
				continue
			}
		}

		jobLog.Info("upscaling", "dest", job.Dest)
		if err := r.process(ctx, job, jobLog); err != nil {
			jobLog.Error("job failed", "error", err)
			stats.Failed++
			continue
		}
		stats.Completed++
	}

	return stats, nil
}

func (r *Runner) process(ctx context.Context, job plan.Job, jobLog *slog.Logger) error {
	if r.opts.Placeholder {
		if err := fileutil.CopyFileVerified(job.Source, job.Dest); err != nil {
			return services.Wrap(services.ErrExternalTool, "runner", "placeholder copy", job.Source, err)
		}
		return nil
	}

	err := r.client.Upscale(ctx, job.Source, filepath.Dir(job.Dest), job.Options, func(line realesrgan.OutputLine) {
		jobLog.Debug("realesrgan", "output", line.Text)
	})
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "runner", "upscale", job.Source, err)
	}
	return nil
}
