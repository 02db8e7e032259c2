package plan

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"esrup/internal/services"
	"esrup/internal/services/realesrgan"
)

const testRelPath = "Nikki Studios/Nikki"

func writeLibrary(t *testing.T, root string, files map[string][]string) {
	t.Helper()
	for set, names := range files {
		dir := filepath.Join(root, testRelPath, set)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		for _, name := range names {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestResolveSetDestinationWithSuffix(t *testing.T) {
	root := t.TempDir()
	outRoot := t.TempDir()
	writeLibrary(t, root, map[string][]string{"001": {"Nikki-001-001.jpg"}})

	jobs, skips, err := ResolveSet(root, testRelPath, 1, outRoot, OutputSpec{Suffix: "X4V3", Ext: "jpg"})
	if err != nil {
		t.Fatal(err)
	}
	if len(skips) != 0 {
		t.Fatalf("unexpected skips: %v", skips)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	want := filepath.Join(outRoot, "Nikki Studios", "Nikki", "001", "Nikki-001-001_X4V3.jpg")
	if jobs[0].Dest != want {
		t.Fatalf("dest = %q, want %q", jobs[0].Dest, want)
	}
	if jobs[0].Source != filepath.Join(root, "Nikki Studios", "Nikki", "001", "Nikki-001-001.jpg") {
		t.Fatalf("unexpected source %q", jobs[0].Source)
	}
}

func TestResolveSetDestinationDefaults(t *testing.T) {
	root := t.TempDir()
	outRoot := t.TempDir()
	writeLibrary(t, root, map[string][]string{"001": {"Nikki-001-001.jpg"}})

	spec, err := OutputSpec{}.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	jobs, _, err := ResolveSet(root, testRelPath, 1, outRoot, spec)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(outRoot, "Nikki Studios", "Nikki", "001", "Nikki-001-001.png")
	if jobs[0].Dest != want {
		t.Fatalf("dest = %q, want %q", jobs[0].Dest, want)
	}
}

func TestResolveSetOrdersByImageNumber(t *testing.T) {
	root := t.TempDir()
	outRoot := t.TempDir()
	writeLibrary(t, root, map[string][]string{"002": {
		"Nikki-002-010.jpg",
		"Nikki-002-002.jpg",
		"Nikki-002-001.jpg",
	}})

	jobs, _, err := ResolveSet(root, testRelPath, 2, outRoot, OutputSpec{Ext: "png"})
	if err != nil {
		t.Fatal(err)
	}
	var got []int
	for _, job := range jobs {
		got = append(got, job.Name.Image)
	}
	if !reflect.DeepEqual(got, []int{1, 2, 10}) {
		t.Fatalf("image order = %v", got)
	}
}

func TestResolveSetSkipsUnparseableFiles(t *testing.T) {
	root := t.TempDir()
	outRoot := t.TempDir()
	writeLibrary(t, root, map[string][]string{"001": {
		"Nikki-001-001.jpg",
		"thumbnails.db",
		"Nikki-01-001.jpg",
	}})

	jobs, skips, err := ResolveSet(root, testRelPath, 1, outRoot, OutputSpec{Ext: "png"})
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if len(skips) != 2 {
		t.Fatalf("expected 2 skips, got %v", skips)
	}
	for _, skip := range skips {
		if skip.Set != 1 || skip.Reason == "" {
			t.Fatalf("skip missing context: %+v", skip)
		}
	}
}

func TestResolveSetMissingDirectory(t *testing.T) {
	root := t.TempDir()
	_, _, err := ResolveSet(root, testRelPath, 7, t.TempDir(), OutputSpec{Ext: "png"})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found marker, got %v", err)
	}
}

func TestResolveSetCreatesDestinationParents(t *testing.T) {
	root := t.TempDir()
	outRoot := t.TempDir()
	writeLibrary(t, root, map[string][]string{"001": {"Nikki-001-001.jpg"}})

	if _, _, err := ResolveSet(root, testRelPath, 1, outRoot, OutputSpec{Ext: "png"}); err != nil {
		t.Fatal(err)
	}
	// Resolving again must not fail on the existing directory.
	if _, _, err := ResolveSet(root, testRelPath, 1, outRoot, OutputSpec{Ext: "png"}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(filepath.Join(outRoot, "Nikki Studios", "Nikki", "001"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected destination directory, err=%v", err)
	}
}

func testRequest(root, outRoot string, tokens []string) Request {
	return Request{
		Root:       root,
		RelPath:    testRelPath,
		SetTokens:  tokens,
		OutputRoot: outRoot,
		Options:    realesrgan.DefaultOptions(),
	}
}

func TestEnumerateSparseRange(t *testing.T) {
	root := t.TempDir()
	outRoot := t.TempDir()
	writeLibrary(t, root, map[string][]string{
		"001": {"Nikki-001-001.jpg"},
		"002": {"Nikki-002-001.jpg"},
		"004": {"Nikki-004-001.jpg"},
		"005": {"Nikki-005-001.jpg"},
		"006": {"Nikki-006-001.jpg"},
	})

	jobs, report, err := Enumerate(testRequest(root, outRoot, []string{"001-006"}))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(report.Sets, []int{1, 2, 4, 5, 6}) {
		t.Fatalf("selected sets = %v", report.Sets)
	}
	if report.SetsProcessed != 5 || len(jobs) != 5 {
		t.Fatalf("expected 5 sets and 5 jobs, got %d/%d", report.SetsProcessed, len(jobs))
	}
	var gotSets []int
	for _, job := range jobs {
		gotSets = append(gotSets, job.Set)
	}
	if !reflect.DeepEqual(gotSets, []int{1, 2, 4, 5, 6}) {
		t.Fatalf("job set order = %v", gotSets)
	}
}

func TestEnumerateInvalidRangeBeforeFilesystem(t *testing.T) {
	// RelPath does not exist under root; the token failure must win, proving
	// validation precedes any directory listing.
	_, _, err := Enumerate(testRequest(t.TempDir(), t.TempDir(), []string{"010-005"}))
	if !errors.Is(err, services.ErrInvalidRange) {
		t.Fatalf("expected invalid range marker, got %v", err)
	}
}

func TestEnumerateMissingRootFatal(t *testing.T) {
	req := testRequest(filepath.Join(t.TempDir(), "absent"), t.TempDir(), []string{"001"})
	_, _, err := Enumerate(req)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}

func TestEnumerateEmptySelectionWarns(t *testing.T) {
	root := t.TempDir()
	writeLibrary(t, root, map[string][]string{"001": {"Nikki-001-001.jpg"}})

	jobs, report, err := Enumerate(testRequest(root, t.TempDir(), []string{"100-200"}))
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %d", len(jobs))
	}
	if len(report.Warnings) == 0 {
		t.Fatal("expected empty-selection warning")
	}
}

func TestEnumerateStampsOptions(t *testing.T) {
	root := t.TempDir()
	writeLibrary(t, root, map[string][]string{"001": {"Nikki-001-001.jpg"}})

	req := testRequest(root, t.TempDir(), []string{"001"})
	req.Output = OutputSpec{Suffix: "X4V3", Ext: "jpg"}
	req.Options.Model = "x2plus"
	req.Options.FaceEnhance = true

	jobs, _, err := Enumerate(req)
	if err != nil {
		t.Fatal(err)
	}
	opts := jobs[0].Options
	if opts.Model != "x2plus" || !opts.FaceEnhance {
		t.Fatalf("run options not carried: %+v", opts)
	}
	if opts.Suffix != "X4V3" || opts.Ext != "jpg" {
		t.Fatalf("output spec not stamped onto options: %+v", opts)
	}
}

func TestEnumerateDeterministic(t *testing.T) {
	root := t.TempDir()
	outRoot := t.TempDir()
	writeLibrary(t, root, map[string][]string{
		"001": {"Nikki-001-003.jpg", "Nikki-001-001.jpg", "Nikki-001-002.jpg"},
		"002": {"Nikki-002-001.jpg"},
	})

	req := testRequest(root, outRoot, []string{"*"})
	first, firstReport, err := Enumerate(req)
	if err != nil {
		t.Fatal(err)
	}
	second, secondReport, err := Enumerate(req)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical job lists across enumerations")
	}
	if firstReport.Summary() != secondReport.Summary() {
		t.Fatalf("expected identical summaries, got %q vs %q", firstReport.Summary(), secondReport.Summary())
	}
}

func TestEnumerateAssignsRunID(t *testing.T) {
	root := t.TempDir()
	writeLibrary(t, root, map[string][]string{"001": {"Nikki-001-001.jpg"}})

	_, first, err := Enumerate(testRequest(root, t.TempDir(), []string{"001"}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(first.RunID); err != nil {
		t.Fatalf("run ID %q is not a UUID: %v", first.RunID, err)
	}

	_, second, err := Enumerate(testRequest(root, t.TempDir(), []string{"001"}))
	if err != nil {
		t.Fatal(err)
	}
	if first.RunID == second.RunID {
		t.Fatalf("expected a fresh run ID per enumeration, got %q twice", first.RunID)
	}
}

func TestEnumerateFlagsCollisions(t *testing.T) {
	root := t.TempDir()
	writeLibrary(t, root, map[string][]string{"001": {
		"Nikki-001-001.jpg",
		"Nikki-001-001.png",
	}})

	jobs, report, err := Enumerate(testRequest(root, t.TempDir(), []string{"001"}))
	if err != nil {
		t.Fatal(err)
	}
	// Both sources stay in the list; the collision is flagged, not resolved.
	if len(jobs) != 2 {
		t.Fatalf("expected both jobs retained, got %d", len(jobs))
	}
	if len(report.Collisions) != 1 {
		t.Fatalf("expected 1 collision, got %+v", report.Collisions)
	}
	if report.Collisions[0].Dest != jobs[0].Dest {
		t.Fatalf("collision dest mismatch: %+v", report.Collisions[0])
	}
}

func TestEnumerateExplicitFiles(t *testing.T) {
	root := t.TempDir()
	outRoot := t.TempDir()
	writeLibrary(t, root, map[string][]string{"001": {"Nikki-001-001.jpg"}})

	req := Request{
		Root:       root,
		OutputRoot: outRoot,
		Files: []string{
			filepath.Join(testRelPath, "001", "Nikki-001-001.jpg"),
			filepath.Join(testRelPath, "001", "missing.jpg"),
		},
		Options: realesrgan.DefaultOptions(),
	}
	jobs, report, err := Enumerate(req)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	want := filepath.Join(outRoot, "Nikki Studios", "Nikki", "001", "Nikki-001-001.png")
	if jobs[0].Dest != want {
		t.Fatalf("dest = %q, want %q", jobs[0].Dest, want)
	}
	if len(report.SkippedFiles) != 1 {
		t.Fatalf("expected missing file to be reported, got %+v", report.SkippedFiles)
	}
}

func TestEnumerateRejectsMixedModes(t *testing.T) {
	root := t.TempDir()
	writeLibrary(t, root, map[string][]string{"001": {"Nikki-001-001.jpg"}})

	req := testRequest(root, t.TempDir(), []string{"001"})
	req.Files = []string{"whatever.jpg"}
	if _, _, err := Enumerate(req); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
}

func TestOutputSpecNormalize(t *testing.T) {
	if _, err := (OutputSpec{Ext: "gif"}).Normalize(); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker for bad extension, got %v", err)
	}
	if _, err := (OutputSpec{Suffix: "_X4"}).Normalize(); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker for leading underscore, got %v", err)
	}
	spec, err := (OutputSpec{Ext: "JPG", Suffix: "V2"}).Normalize()
	if err != nil {
		t.Fatal(err)
	}
	if spec.Ext != "jpg" || spec.Suffix != "V2" {
		t.Fatalf("unexpected normalized spec %+v", spec)
	}
}
