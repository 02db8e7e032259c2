package realesrgan

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// OutputLine carries one line of inference script output for progress display.
type OutputLine struct {
	Text string
}

// Client defines Real-ESRGAN upscaling behaviour.
type Client interface {
	Upscale(ctx context.Context, inputPath, outputDir string, opts Options, output func(OutputLine)) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithPython overrides the python interpreter used to launch the script.
func WithPython(python string) Option {
	return func(c *CLI) {
		if python != "" {
			c.python = python
		}
	}
}

// WithScript sets the path to the Real-ESRGAN inference script.
func WithScript(script string) Option {
	return func(c *CLI) {
		if script != "" {
			c.script = script
		}
	}
}

// CLI wraps the Real-ESRGAN inference script invocation.
type CLI struct {
	python string
	script string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{python: "python3", script: "inference_realesrgan.py"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Upscale launches one inference run for a single image. The script writes
// the upscaled result into outputDir itself; the caller predicts the final
// path from the naming convention.
func (c *CLI) Upscale(ctx context.Context, inputPath, outputDir string, opts Options, output func(OutputLine)) error {
	if inputPath == "" {
		return errors.New("input path required")
	}
	if strings.TrimSpace(outputDir) == "" {
		return errors.New("output directory required")
	}
	modelName, err := InferenceModel(opts.Model)
	if err != nil {
		return err
	}

	args := []string{
		c.script,
		"-n", modelName,
		"-i", inputPath,
		"-o", outputDir,
		"--outscale", strconv.FormatFloat(opts.Outscale, 'f', -1, 64),
		"--gpu-id", strconv.Itoa(opts.GPUID),
		"--ext", opts.Ext,
		"--tile", strconv.Itoa(opts.Tile),
		"--tile_pad", strconv.Itoa(opts.TilePad),
	}
	if opts.Suffix != "" {
		args = append(args, "--suffix", opts.Suffix)
	}
	if opts.FaceEnhance {
		args = append(args, "--face_enhance")
	}

	cmd := commandContext(ctx, c.python, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start realesrgan: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if output != nil {
			output(OutputLine{Text: scanner.Text()})
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read realesrgan output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("realesrgan inference failed: %w", err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
