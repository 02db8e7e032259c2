package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"esrup/internal/config"
	"esrup/internal/plan"
	"esrup/internal/runner"
	"esrup/internal/services"
	"esrup/internal/services/realesrgan"
)

// selectionFlags is the flag surface shared by run and plan: library
// selection plus the upscaler options passed through to the inference tool.
type selectionFlags struct {
	root       string
	rootPreset string
	relPath    string
	setTokens  []string
	files      []string
	suffix     string
	ext        string
	outputRoot string

	model       string
	faceEnhance bool
	tile        int
	tilePad     int
	outscale    float64
	gpuID       int
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.root, "root", "", "Library root directory")
	flags.StringVar(&f.rootPreset, "root_preset", "", "Configured library root preset ("+strings.Join(config.PresetKeys, ", ")+")")
	flags.StringVar(&f.relPath, "Path", "", `Studio/Model path relative to the root (e.g. "Nikki Studios/Nikki")`)
	flags.StringArrayVar(&f.setTokens, "sets", nil, "Set selection tokens: *, NNN, NNN-MMM, NNN- (repeatable)")
	flags.StringArrayVar(&f.files, "Files", nil, "Explicit image paths relative to the root (repeatable)")
	flags.StringVar(&f.suffix, "suffix", "", "Suffix appended to destination filenames, without the underscore")
	flags.StringVar(&f.ext, "ext", realesrgan.DefaultExt, "Destination image extension (png or jpg)")
	flags.StringVar(&f.outputRoot, "output_root", "", "Destination root (defaults to paths.output_root)")
	flags.StringVar(&f.model, "model", realesrgan.DefaultModel, "Upscaler model ("+strings.Join(realesrgan.ModelNames(), ", ")+")")
	flags.BoolVar(&f.faceEnhance, "face_enhance", false, "Enable GFPGAN face enhancement")
	flags.IntVar(&f.tile, "tile", realesrgan.DefaultTile, "Tile size for tiled inference")
	flags.IntVar(&f.tilePad, "tile_pad", realesrgan.DefaultTilePad, "Tile padding in pixels")
	flags.Float64Var(&f.outscale, "outscale", realesrgan.DefaultOutscale, "Final upsampling scale")
	flags.IntVar(&f.gpuID, "gpu_id", realesrgan.DefaultGPUID, "GPU device index")
}

// request validates the flag combination and builds the enumeration request.
// All option conflicts surface here, before any filesystem access.
func (f *selectionFlags) request(cfg *config.Config) (plan.Request, error) {
	root, err := config.ResolveRoot(cfg, f.root, f.rootPreset)
	if err != nil {
		return plan.Request{}, err
	}

	hasPath := strings.TrimSpace(f.relPath) != ""
	switch {
	case hasPath && len(f.files) > 0:
		return plan.Request{}, services.Wrap(services.ErrValidation, "cli", "options", "--Path and --Files are mutually exclusive", nil)
	case !hasPath && len(f.files) == 0:
		return plan.Request{}, services.Wrap(services.ErrValidation, "cli", "options", "one of --Path or --Files is required", nil)
	case hasPath && len(f.setTokens) == 0:
		return plan.Request{}, services.Wrap(services.ErrValidation, "cli", "options", "--sets requires at least one token", nil)
	}

	if _, err := realesrgan.InferenceModel(f.model); err != nil {
		return plan.Request{}, services.Wrap(services.ErrValidation, "cli", "options", fmt.Sprintf("valid models are %s", strings.Join(realesrgan.ModelNames(), ", ")), err)
	}

	outputRoot := strings.TrimSpace(f.outputRoot)
	if outputRoot == "" {
		outputRoot = cfg.Paths.OutputRoot
	}

	return plan.Request{
		Root:       root,
		RelPath:    f.relPath,
		SetTokens:  f.setTokens,
		Files:      f.files,
		OutputRoot: outputRoot,
		Output:     plan.OutputSpec{Suffix: f.suffix, Ext: f.ext},
		Options: realesrgan.Options{
			Model:       f.model,
			FaceEnhance: f.faceEnhance,
			Tile:        f.tile,
			TilePad:     f.tilePad,
			Outscale:    f.outscale,
			GPUID:       f.gpuID,
		},
	}, nil
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags selectionFlags
	var skipExisting bool
	var placeholder bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Enumerate and upscale the selected sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			req, err := flags.request(cfg)
			if err != nil {
				return err
			}

			jobs, report, err := plan.Enumerate(req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			writeReport(out, report)
			if len(jobs) == 0 {
				return nil
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("starting batch", "run_id", report.RunID, "jobs", len(jobs))

			client := realesrgan.NewCLI(
				realesrgan.WithPython(cfg.RealESRGAN.Python),
				realesrgan.WithScript(cfg.RealESRGAN.Script),
			)
			stats, err := runner.New(client, logger, runner.Options{
				SkipExisting: skipExisting,
				Placeholder:  placeholder,
			}).Run(runCtx, jobs, req.OutputRoot)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Completed %d, skipped %d, failed %d of %d jobs\n", stats.Completed, stats.Skipped, stats.Failed, stats.Total)
			if stats.Failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", stats.Failed, stats.Total)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&skipExisting, "skip_existing", false, "Skip jobs whose destination file already exists")
	cmd.Flags().BoolVar(&placeholder, "placeholder", false, "Copy sources instead of invoking the upscaler (plumbing check)")
	return cmd
}

// writeReport prints enumeration warnings, collisions, and the run summary.
func writeReport(out io.Writer, report *plan.Report) {
	for _, warning := range report.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	for _, collision := range report.Collisions {
		fmt.Fprintf(out, "warning: %s and %s both resolve to %s; the later job overwrites\n", collision.PriorSource, collision.Source, collision.Dest)
	}
	for _, skip := range report.SkippedSets {
		fmt.Fprintf(out, "skipped set %03d: %s\n", skip.Set, skip.Reason)
	}
	for _, skip := range report.SkippedFiles {
		fmt.Fprintf(out, "skipped %s: %s\n", skip.File, skip.Reason)
	}
	fmt.Fprintf(out, "run %s: %s\n", report.RunID, report.Summary())
}
