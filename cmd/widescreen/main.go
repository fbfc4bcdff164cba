// Command widescreen converts images to a 16:9 aspect ratio by cropping,
// padding, or stretching, for a single file or a whole directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixelkit/widescreen/internal/codec"
	"github.com/pixelkit/widescreen/internal/config"
	"github.com/pixelkit/widescreen/internal/convert"
	"github.com/pixelkit/widescreen/internal/geometry"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stderr, "[widescreen] ", log.LstdFlags|log.Lmsgprefix)

	var (
		output  string
		method  string
		quality int
		batch   bool
		jobs    int
	)
	flag.StringVar(&output, "o", "", "output file or directory")
	flag.StringVar(&output, "output", "", "output file or directory")
	flag.StringVar(&method, "m", cfg.Method, "resize method: crop, fit, or stretch")
	flag.StringVar(&method, "method", cfg.Method, "resize method: crop, fit, or stretch")
	flag.IntVar(&quality, "q", cfg.Quality, "output quality 1-100 for lossy formats")
	flag.IntVar(&quality, "quality", cfg.Quality, "output quality 1-100 for lossy formats")
	flag.BoolVar(&batch, "b", false, "process every supported image in the input directory")
	flag.BoolVar(&batch, "batch", false, "process every supported image in the input directory")
	flag.IntVar(&jobs, "j", cfg.Jobs, "number of files to convert in parallel (batch mode)")
	flag.IntVar(&jobs, "jobs", cfg.Jobs, "number of files to convert in parallel (batch mode)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	parsedMethod, err := geometry.ParseMethod(method)
	if err != nil {
		logger.Fatalf("invalid method: %v", err)
	}
	if quality < 1 || quality > 100 {
		logger.Fatalf("quality must be between 1 and 100, got %d", quality)
	}

	if err := codec.Startup(); err != nil {
		logger.Fatalf("start codec: %v", err)
	}
	defer codec.Shutdown()

	imageCodec, err := codec.New()
	if err != nil {
		logger.Fatalf("build codec: %v", err)
	}
	converter := convert.New(imageCodec, convert.ConsoleReporter{})

	ctx := context.Background()

	if batch {
		outputDir := output
		if outputDir == "" {
			outputDir = cfg.OutputDir
		}
		if _, err := converter.ProcessBatch(ctx, input, outputDir, parsedMethod, quality, jobs); err != nil {
			codec.Shutdown()
			logger.Fatalf("batch failed: %v", err)
		}
		return
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutputPath(input)
	}
	if _, err := converter.ProcessOne(ctx, input, outputPath, parsedMethod, quality); err != nil {
		codec.Shutdown()
		logger.Fatalf("conversion failed: %v", err)
	}
}

// defaultOutputPath turns photo.jpg into photo_16_9.jpg.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_16_9" + ext
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: widescreen [options] <input>

Convert an image (or, with -b, a directory of images) to a 16:9 aspect ratio.

Options:
  -o, --output   output file, or output directory in batch mode
                 (default: <name>_16_9<ext>, or output_16_9/ in batch mode)
  -m, --method   crop, fit, or stretch (default crop)
  -q, --quality  quality 1-100 for lossy output formats (default 95)
  -b, --batch    treat input as a directory and convert every supported image
  -j, --jobs     files to convert in parallel in batch mode (default 1)

Supported formats: jpg, jpeg, png, bmp, tiff, webp.
`)
}
