//go:build !govips || !cgo

package codec

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pixelkit/widescreen/internal/geometry"
)

// Startup and Shutdown are no-ops for the pure Go backend; they exist so
// callers need not care which backend was built.
func Startup() error { return nil }

func Shutdown() {}

func newCodec() (Codec, error) {
	return imagingCodec{}, nil
}

type imagingCodec struct{}

func (imagingCodec) Probe(input []byte) (geometry.Geometry, string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(input))
	if err != nil {
		return geometry.Geometry{}, "", fmt.Errorf("decode source image: %w", err)
	}
	return geometry.Geometry{Width: cfg.Width, Height: cfg.Height}, format, nil
}

func (imagingCodec) Convert(ctx context.Context, input []byte, res geometry.Result, format string, quality int) ([]byte, geometry.Geometry, error) {
	select {
	case <-ctx.Done():
		return nil, geometry.Geometry{}, ctx.Err()
	default:
	}

	img, _, err := image.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, geometry.Geometry{}, fmt.Errorf("decode source image: %w", err)
	}

	for _, op := range res.Ops {
		switch op.Kind {
		case geometry.OpCrop:
			img = imaging.Crop(img, image.Rect(op.Crop.Left, op.Crop.Top, op.Crop.Right, op.Crop.Bottom))
		case geometry.OpPad:
			canvas := imaging.New(op.Canvas.Width, op.Canvas.Height, color.NRGBA{A: 255})
			img = imaging.Paste(canvas, img, image.Pt(op.OffsetX, op.OffsetY))
		case geometry.OpResize:
			img = imaging.Resize(img, op.Target.Width, op.Target.Height, imaging.Lanczos)
		default:
			return nil, geometry.Geometry{}, fmt.Errorf("unknown canvas operation: %s", op.Kind)
		}
	}

	data, err := encodeImage(img, format, quality)
	if err != nil {
		return nil, geometry.Geometry{}, err
	}

	bounds := img.Bounds()
	return data, geometry.Geometry{Width: bounds.Dx(), Height: bounds.Dy()}, nil
}

func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "jpeg":
		if quality <= 0 || quality > 100 {
			quality = 95
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case "png":
		// minimal compression keeps the encode near-lossless in time as
		// well as content
		encoder := png.Encoder{CompressionLevel: png.BestSpeed}
		if err := encoder.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case "bmp":
		if err := bmp.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode bmp: %w", err)
		}
	case "tiff":
		if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
			return nil, fmt.Errorf("encode tiff: %w", err)
		}
	case "webp":
		return nil, fmt.Errorf("%w: webp encoding requires the govips build", ErrUnsupportedFormat)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return buf.Bytes(), nil
}
