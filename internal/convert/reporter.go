package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pixelkit/widescreen/internal/geometry"
)

// Reporter receives per-file progress events. Implementations decide how to
// surface them; library callers that want none use NopReporter.
type Reporter interface {
	// Discovered fires once per batch with the number of candidate files.
	Discovered(count int)
	Start(path string)
	Complete(path string, result FileResult)
	Error(path string, err error)
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) Discovered(int)              {}
func (NopReporter) Start(string)                {}
func (NopReporter) Complete(string, FileResult) {}
func (NopReporter) Error(string, error)         {}

// ConsoleReporter writes human-readable progress lines, one block per file.
type ConsoleReporter struct {
	Out io.Writer
}

func (r ConsoleReporter) writer() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

func (r ConsoleReporter) Discovered(count int) {
	fmt.Fprintf(r.writer(), "Found %d images to process\n\n", count)
}

func (r ConsoleReporter) Start(path string) {
	fmt.Fprintf(r.writer(), "Processing: %s\n", filepath.Base(path))
}

func (r ConsoleReporter) Complete(_ string, result FileResult) {
	w := r.writer()
	fmt.Fprintf(w, "Original size: %s\n", result.Input)
	fmt.Fprintf(w, "Final size: %s\n", result.Output)
	fmt.Fprintf(w, "Aspect ratio: %.3f (16:9 = %.3f)\n", result.Output.Ratio(), geometry.TargetRatio)
	fmt.Fprintf(w, "Saved to: %s\n\n", result.OutputPath)
}

func (r ConsoleReporter) Error(path string, err error) {
	fmt.Fprintf(r.writer(), "Error processing %s: %v\n\n", filepath.Base(path), err)
}
