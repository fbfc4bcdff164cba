package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/pixelkit/widescreen/internal/codec"
	"github.com/pixelkit/widescreen/internal/geometry"
)

// ProcessBatch converts every supported image directly under inputDir,
// writing each result to outputDir under the same filename. Per-file
// failures are reported and recorded but never abort the batch; only
// listing inputDir or creating outputDir can fail it as a whole.
//
// Workers bounds how many files are converted at once. One worker keeps
// the strictly serial behavior; outputs go to distinct paths, so higher
// counts are safe.
func (c *Converter) ProcessBatch(ctx context.Context, inputDir, outputDir string, method geometry.Method, quality, workers int) ([]FileResult, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input directory %s: %w", inputDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !codec.SupportedInput(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", outputDir, err)
	}

	c.reporter.Discovered(len(names))

	if workers < 1 {
		workers = 1
	}

	results := make([]FileResult, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			// per-file failures are reported and recorded on the result,
			// never returned, so one bad file cannot cancel the group
			result, _ := c.ProcessOne(ctx, filepath.Join(inputDir, name), filepath.Join(outputDir, name), method, quality)
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
