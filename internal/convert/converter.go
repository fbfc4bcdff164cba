// Package convert drives single-file and batch conversions: read, probe,
// compute the transform, hand the canvas operations to the codec, write.
package convert

import (
	"context"
	"fmt"
	"os"

	"github.com/pixelkit/widescreen/internal/codec"
	"github.com/pixelkit/widescreen/internal/geometry"
)

// ProcessingError ties a decode, transform, encode, or filesystem failure
// to the file it came from.
type ProcessingError struct {
	Path string
	Err  error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("process %s: %v", e.Path, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// FileResult is the outcome of one conversion. Err is set when the file
// failed; the geometry fields are only meaningful on success.
type FileResult struct {
	Path       string
	OutputPath string
	Input      geometry.Geometry
	Output     geometry.Geometry
	Bytes      int
	Err        error
}

type Converter struct {
	codec    codec.Codec
	reporter Reporter
}

func New(c codec.Codec, r Reporter) *Converter {
	if r == nil {
		r = NopReporter{}
	}
	return &Converter{codec: c, reporter: r}
}

// ProcessOne converts a single file. The returned error, always a
// *ProcessingError, is also recorded on the FileResult so batch callers can
// collect outcomes without inspecting errors twice.
func (c *Converter) ProcessOne(ctx context.Context, inputPath, outputPath string, method geometry.Method, quality int) (FileResult, error) {
	c.reporter.Start(inputPath)

	result, err := c.processOne(ctx, inputPath, outputPath, method, quality)
	if err != nil {
		c.reporter.Error(inputPath, err)
		return FileResult{Path: inputPath, OutputPath: outputPath, Err: err}, err
	}

	c.reporter.Complete(inputPath, result)
	return result, nil
}

func (c *Converter) processOne(ctx context.Context, inputPath, outputPath string, method geometry.Method, quality int) (FileResult, error) {
	input, err := os.ReadFile(inputPath)
	if err != nil {
		return FileResult{}, &ProcessingError{Path: inputPath, Err: fmt.Errorf("read input file: %w", err)}
	}

	in, _, err := c.codec.Probe(input)
	if err != nil {
		return FileResult{}, &ProcessingError{Path: inputPath, Err: err}
	}

	transform, err := geometry.Compute(in, method)
	if err != nil {
		return FileResult{}, &ProcessingError{Path: inputPath, Err: err}
	}

	format := codec.FormatForPath(outputPath)
	data, out, err := c.codec.Convert(ctx, input, transform, format, quality)
	if err != nil {
		return FileResult{}, &ProcessingError{Path: inputPath, Err: err}
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return FileResult{}, &ProcessingError{Path: inputPath, Err: fmt.Errorf("write output file: %w", err)}
	}

	return FileResult{
		Path:       inputPath,
		OutputPath: outputPath,
		Input:      in,
		Output:     out,
		Bytes:      len(data),
	}, nil
}
