package realesrgan

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
)

func TestNewCLIWithOverrides(t *testing.T) {
	cli := NewCLI(WithPython("/opt/venv/bin/python"), WithScript("/opt/Real-ESRGAN/inference_realesrgan.py"))
	if cli.python != "/opt/venv/bin/python" {
		t.Fatalf("expected python override to be applied, got %q", cli.python)
	}
	if cli.script != "/opt/Real-ESRGAN/inference_realesrgan.py" {
		t.Fatalf("expected script override to be applied, got %q", cli.script)
	}
}

func TestCLIUpscaleRequiresInput(t *testing.T) {
	cli := NewCLI()
	if err := cli.Upscale(context.Background(), "", "/tmp", DefaultOptions(), nil); err == nil {
		t.Fatal("expected error when input path is empty")
	}
}

func TestCLIUpscaleRequiresOutputDir(t *testing.T) {
	cli := NewCLI()
	if err := cli.Upscale(context.Background(), "/lib/Nikki-001-001.jpg", "", DefaultOptions(), nil); err == nil {
		t.Fatal("expected error when output directory is empty")
	}
}

func TestCLIUpscaleRejectsUnknownModel(t *testing.T) {
	cli := NewCLI()
	opts := DefaultOptions()
	opts.Model = "x9ultra"
	if err := cli.Upscale(context.Background(), "/lib/Nikki-001-001.jpg", "/out", opts, nil); err == nil {
		t.Fatal("expected error for unknown model")
	}
}

func TestCLIUpscaleBuildsArguments(t *testing.T) {
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedArgs = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "ESRGAN_HELPER_MODE=success")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	cli := NewCLI(WithScript("/srv/Real-ESRGAN/inference_realesrgan.py"))
	opts := Options{
		Model:       "x4plus",
		FaceEnhance: true,
		Tile:        400,
		TilePad:     20,
		Outscale:    2.5,
		GPUID:       1,
		Suffix:      "X4",
		Ext:         "jpg",
	}

	if err := cli.Upscale(context.Background(), "/lib/Nikki-001-001.jpg", "/out/001", opts, nil); err != nil {
		t.Fatalf("Upscale returned error: %v", err)
	}

	want := []string{
		"/srv/Real-ESRGAN/inference_realesrgan.py",
		"-n", "RealESRGAN_x4plus",
		"-i", "/lib/Nikki-001-001.jpg",
		"-o", "/out/001",
		"--outscale", "2.5",
		"--gpu-id", "1",
		"--ext", "jpg",
		"--tile", "400",
		"--tile_pad", "20",
		"--suffix", "X4",
		"--face_enhance",
	}
	if len(capturedArgs) != len(want) {
		t.Fatalf("expected %d args, got %d: %v", len(want), len(capturedArgs), capturedArgs)
	}
	for i, arg := range want {
		if capturedArgs[i] != arg {
			t.Fatalf("arg %d: expected %q, got %q (full: %v)", i, arg, capturedArgs[i], capturedArgs)
		}
	}
}

func TestCLIUpscaleOmitsEmptySuffix(t *testing.T) {
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedArgs = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "ESRGAN_HELPER_MODE=success")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	cli := NewCLI()
	if err := cli.Upscale(context.Background(), "/lib/Nikki-001-001.jpg", "/out/001", DefaultOptions(), nil); err != nil {
		t.Fatalf("Upscale returned error: %v", err)
	}

	if idx := findArg(capturedArgs, "--suffix"); idx != -1 {
		t.Fatalf("expected no --suffix flag for empty suffix, got %v", capturedArgs)
	}
	if idx := findArg(capturedArgs, "--face_enhance"); idx != -1 {
		t.Fatalf("expected no --face_enhance flag by default, got %v", capturedArgs)
	}
}

func TestCLIUpscaleStreamsOutput(t *testing.T) {
	setHelperCommand(t, "success")

	cli := NewCLI()
	var lines []string
	err := cli.Upscale(context.Background(), "/lib/Nikki-001-001.jpg", "/out/001", DefaultOptions(), func(line OutputLine) {
		lines = append(lines, line.Text)
	})
	if err != nil {
		t.Fatalf("Upscale returned error: %v", err)
	}
	if len(lines) == 0 {
		t.Fatal("expected streamed output lines")
	}
}

func TestCLIUpscaleFailure(t *testing.T) {
	setHelperCommand(t, "failure")

	cli := NewCLI()
	if err := cli.Upscale(context.Background(), "/lib/Nikki-001-001.jpg", "/out/001", DefaultOptions(), nil); err == nil {
		t.Fatal("expected upscale failure error")
	}
}

func setHelperCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("ESRGAN_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("ESRGAN_HELPER_MODE") {
	case "success":
		fmt.Println("Testing 0 Nikki-001-001")
		fmt.Println("saved results to output folder")
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "CUDA out of memory")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}

func findArg(args []string, target string) int {
	for i, arg := range args {
		if arg == target {
			return i
		}
	}
	return -1
}

func TestInferenceModelMapping(t *testing.T) {
	cases := map[string]string{
		"x4v3":            "realesr-general-x4v3",
		"x4plus":          "RealESRGAN_x4plus",
		"net_x4plus":      "RealESRNet_x4plus",
		"x2plus":          "RealESRGAN_x2plus",
		"x4plus_anime_6B": "RealESRGAN_x4plus_anime_6B",
	}
	for short, want := range cases {
		got, err := InferenceModel(short)
		if err != nil {
			t.Fatalf("InferenceModel(%q) returned error: %v", short, err)
		}
		if got != want {
			t.Fatalf("InferenceModel(%q) = %q, want %q", short, got, want)
		}
	}
	if _, err := InferenceModel("x9ultra"); err == nil {
		t.Fatal("expected error for unknown model")
	}
}
