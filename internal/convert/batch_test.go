package convert

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixelkit/widescreen/internal/codec"
	"github.com/pixelkit/widescreen/internal/geometry"
)

func TestProcessBatchContinuesPastFailures(t *testing.T) {
	tmp := t.TempDir()
	inputDir := filepath.Join(tmp, "in")
	outputDir := filepath.Join(tmp, "out")
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		t.Fatalf("create input dir: %v", err)
	}

	writeTestPNG(t, filepath.Join(inputDir, "good.png"), 640, 400)
	if err := os.WriteFile(filepath.Join(inputDir, "bad.png"), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatalf("write non-image file: %v", err)
	}

	conv := newTestConverter(t)
	results, err := conv.ProcessBatch(context.Background(), inputDir, outputDir, geometry.MethodCrop, 95, 1)
	if err != nil {
		t.Fatalf("process batch: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// results come back in filename order
	bad, good := results[0], results[1]
	if bad.Err == nil {
		t.Fatal("expected an error recorded for the corrupt file")
	}
	if good.Err != nil {
		t.Fatalf("expected the valid file to succeed, got %v", good.Err)
	}
	if good.Output != (geometry.Geometry{Width: 640, Height: 360}) {
		t.Fatalf("unexpected output geometry %s", good.Output)
	}

	verifyImageDimensions(t, filepath.Join(outputDir, "good.png"), 640, 360)
	if _, err := os.Stat(filepath.Join(outputDir, "notes.txt")); !os.IsNotExist(err) {
		t.Fatal("expected non-image file to be skipped")
	}
}

func TestProcessBatchParallel(t *testing.T) {
	tmp := t.TempDir()
	inputDir := filepath.Join(tmp, "in")
	outputDir := filepath.Join(tmp, "out")
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		t.Fatalf("create input dir: %v", err)
	}

	names := []string{"a.png", "b.png", "c.png", "d.png"}
	for _, name := range names {
		writeTestPNG(t, filepath.Join(inputDir, name), 320, 200)
	}

	conv := newTestConverter(t)
	results, err := conv.ProcessBatch(context.Background(), inputDir, outputDir, geometry.MethodFit, 95, 4)
	if err != nil {
		t.Fatalf("process batch: %v", err)
	}

	if len(results) != len(names) {
		t.Fatalf("expected %d results, got %d", len(names), len(results))
	}
	for i, result := range results {
		if result.Err != nil {
			t.Fatalf("file %s failed: %v", names[i], result.Err)
		}
		verifyImageDimensions(t, filepath.Join(outputDir, names[i]), 355, 200)
	}
}

func TestProcessBatchReportsDiscoveredCount(t *testing.T) {
	tmp := t.TempDir()
	inputDir := filepath.Join(tmp, "in")
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		t.Fatalf("create input dir: %v", err)
	}
	writeTestPNG(t, filepath.Join(inputDir, "one.png"), 160, 90)

	c, err := codec.New()
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	var buf bytes.Buffer
	conv := New(c, ConsoleReporter{Out: &buf})
	if _, err := conv.ProcessBatch(context.Background(), inputDir, filepath.Join(tmp, "out"), geometry.MethodCrop, 95, 1); err != nil {
		t.Fatalf("process batch: %v", err)
	}

	if !strings.Contains(buf.String(), "Found 1 images to process") {
		t.Fatalf("missing discovery line in output:\n%s", buf.String())
	}
}

func TestProcessBatchMissingInputDir(t *testing.T) {
	tmp := t.TempDir()

	conv := newTestConverter(t)
	_, err := conv.ProcessBatch(context.Background(), filepath.Join(tmp, "nope"), filepath.Join(tmp, "out"), geometry.MethodCrop, 95, 1)
	if err == nil {
		t.Fatal("expected error for missing input directory")
	}
}

func TestProcessBatchOutputDirCreateFailure(t *testing.T) {
	tmp := t.TempDir()
	inputDir := filepath.Join(tmp, "in")
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		t.Fatalf("create input dir: %v", err)
	}
	writeTestPNG(t, filepath.Join(inputDir, "one.png"), 160, 90)

	// a regular file where the output directory should go makes MkdirAll fail
	blocker := filepath.Join(tmp, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker file: %v", err)
	}

	conv := newTestConverter(t)
	_, err := conv.ProcessBatch(context.Background(), inputDir, blocker, geometry.MethodCrop, 95, 1)
	if err == nil {
		t.Fatal("expected fatal error when output directory cannot be created")
	}
}
