//go:build govips && cgo

package codec

import (
	"context"
	"fmt"
	"sync"

	"github.com/davidbyttow/govips/v2/vips"

	"github.com/pixelkit/widescreen/internal/geometry"
)

var (
	startupOnce sync.Once
	shutdownMu  sync.Mutex
	started     bool
)

func Startup() error {
	startupOnce.Do(func() {
		vips.Startup(&vips.Config{
			MaxCacheFiles: 0,
			MaxCacheMem:   128 * 1024 * 1024,
			MaxCacheSize:  100,
		})

		shutdownMu.Lock()
		started = true
		shutdownMu.Unlock()
	})
	return nil
}

func Shutdown() {
	shutdownMu.Lock()
	defer shutdownMu.Unlock()
	if !started {
		return
	}
	vips.Shutdown()
	started = false
}

func newCodec() (Codec, error) {
	return govipsCodec{}, nil
}

type govipsCodec struct{}

func (govipsCodec) Probe(input []byte) (geometry.Geometry, string, error) {
	img, err := vips.NewImageFromBuffer(input)
	if err != nil {
		return geometry.Geometry{}, "", fmt.Errorf("decode source image: %w", err)
	}
	defer img.Close()

	return geometry.Geometry{Width: img.Width(), Height: img.Height()}, sourceFormat(input), nil
}

func (govipsCodec) Convert(ctx context.Context, input []byte, res geometry.Result, format string, quality int) ([]byte, geometry.Geometry, error) {
	select {
	case <-ctx.Done():
		return nil, geometry.Geometry{}, ctx.Err()
	default:
	}

	img, err := vips.NewImageFromBuffer(input)
	if err != nil {
		return nil, geometry.Geometry{}, fmt.Errorf("decode source image: %w", err)
	}
	defer img.Close()

	for _, op := range res.Ops {
		switch op.Kind {
		case geometry.OpCrop:
			err = img.ExtractArea(op.Crop.Left, op.Crop.Top, op.Crop.Right-op.Crop.Left, op.Crop.Bottom-op.Crop.Top)
		case geometry.OpPad:
			err = img.Embed(op.OffsetX, op.OffsetY, op.Canvas.Width, op.Canvas.Height, vips.ExtendBlack)
		case geometry.OpResize:
			err = img.ResizeWithVScale(
				float64(op.Target.Width)/float64(img.Width()),
				float64(op.Target.Height)/float64(img.Height()),
				vips.KernelLanczos3,
			)
		default:
			err = fmt.Errorf("unknown canvas operation: %s", op.Kind)
		}
		if err != nil {
			return nil, geometry.Geometry{}, fmt.Errorf("apply %s: %w", op.Kind, err)
		}
	}

	data, err := exportImage(img, format, quality)
	if err != nil {
		return nil, geometry.Geometry{}, err
	}

	return data, geometry.Geometry{Width: img.Width(), Height: img.Height()}, nil
}

func sourceFormat(input []byte) string {
	switch vips.DetermineImageType(input) {
	case vips.ImageTypeJPEG:
		return "jpeg"
	case vips.ImageTypeWEBP:
		return "webp"
	case vips.ImageTypeTIFF:
		return "tiff"
	case vips.ImageTypeBMP:
		return "bmp"
	default:
		return "png"
	}
}

func exportImage(img *vips.ImageRef, format string, quality int) ([]byte, error) {
	switch format {
	case "jpeg":
		params := vips.NewJpegExportParams()
		if quality > 0 && quality <= 100 {
			params.Quality = quality
		}
		// keep full chroma and skip the optimization pass, trading file
		// size for fidelity
		params.SubsampleMode = vips.VipsForeignSubsampleOff
		params.OptimizeCoding = false
		data, _, err := img.ExportJpeg(params)
		if err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
		return data, nil
	case "png":
		params := vips.NewPngExportParams()
		params.Compression = 1
		data, _, err := img.ExportPng(params)
		if err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
		return data, nil
	case "webp":
		params := vips.NewWebpExportParams()
		if quality > 0 && quality <= 100 {
			params.Quality = quality
		}
		data, _, err := img.ExportWebp(params)
		if err != nil {
			return nil, fmt.Errorf("encode webp: %w", err)
		}
		return data, nil
	case "tiff":
		params := vips.NewTiffExportParams()
		if quality > 0 && quality <= 100 {
			params.Quality = quality
		}
		data, _, err := img.ExportTiff(params)
		if err != nil {
			return nil, fmt.Errorf("encode tiff: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %s requires the default build", ErrUnsupportedFormat, format)
	}
}
