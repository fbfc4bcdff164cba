// Package geometry computes the canvas operations needed to bring an image
// to a 16:9 aspect ratio. It never touches pixel data; callers hand the
// resulting operations to a codec backend for execution.
package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// Target aspect ratio, expressed as an integer pair so every intermediate
// value stays in exact integer arithmetic.
const (
	RatioW = 16
	RatioH = 9
)

// TargetRatio is the 16:9 ratio as a float, for display only.
const TargetRatio = float64(RatioW) / float64(RatioH)

var (
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrUnknownMethod   = errors.New("unknown method")
)

type Geometry struct {
	Width  int
	Height int
}

// Ratio returns width divided by height.
func (g Geometry) Ratio() float64 {
	return float64(g.Width) / float64(g.Height)
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// Method selects how an image is brought to the target ratio.
type Method string

const (
	// MethodCrop removes pixels from the edges, centered.
	MethodCrop Method = "crop"
	// MethodFit pads the image onto a black canvas (letterbox/pillarbox).
	MethodFit Method = "fit"
	// MethodStretch resamples the height non-uniformly, keeping the width.
	MethodStretch Method = "stretch"
)

func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodCrop, MethodFit, MethodStretch:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// OpKind identifies a canvas operation for the codec backend.
type OpKind string

const (
	OpCrop   OpKind = "crop"
	OpPad    OpKind = "pad"
	OpResize OpKind = "resize"
)

// Rect is a pixel rectangle, inclusive of Left/Top and exclusive of
// Right/Bottom.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Op describes one canvas operation. Kind decides which fields apply:
// OpCrop uses Crop, OpPad uses Canvas plus the paste offsets, OpResize
// uses Target.
type Op struct {
	Kind    OpKind
	Crop    Rect
	Canvas  Geometry
	OffsetX int
	OffsetY int
	Target  Geometry
}

// Result is the full instruction set for one conversion: the operations to
// run in order and the geometry the image will have afterwards.
type Result struct {
	Output Geometry
	Ops    []Op
}

// Compute returns the operations that bring in to 16:9 using the given
// method. It is a pure function; the only failure modes are non-positive
// dimensions and an unknown method.
//
// An image already at exactly 16:9 takes the "taller" branch for crop and
// fit, where both converge to a no-op over the full frame.
func Compute(in Geometry, method Method) (Result, error) {
	if in.Width <= 0 || in.Height <= 0 {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidGeometry, in)
	}

	// width/height > 16/9, in integer form
	wider := in.Width*RatioH > in.Height*RatioW

	switch method {
	case MethodCrop:
		if wider {
			newWidth := in.Height * RatioW / RatioH
			left := (in.Width - newWidth) / 2
			return Result{
				Output: Geometry{Width: newWidth, Height: in.Height},
				Ops: []Op{{
					Kind: OpCrop,
					Crop: Rect{Left: left, Top: 0, Right: left + newWidth, Bottom: in.Height},
				}},
			}, nil
		}
		newHeight := in.Width * RatioH / RatioW
		top := (in.Height - newHeight) / 2
		return Result{
			Output: Geometry{Width: in.Width, Height: newHeight},
			Ops: []Op{{
				Kind: OpCrop,
				Crop: Rect{Left: 0, Top: top, Right: in.Width, Bottom: top + newHeight},
			}},
		}, nil

	case MethodFit:
		if wider {
			newHeight := in.Width * RatioH / RatioW
			return Result{
				Output: Geometry{Width: in.Width, Height: newHeight},
				Ops: []Op{{
					Kind:    OpPad,
					Canvas:  Geometry{Width: in.Width, Height: newHeight},
					OffsetY: (newHeight - in.Height) / 2,
				}},
			}, nil
		}
		newWidth := in.Height * RatioW / RatioH
		return Result{
			Output: Geometry{Width: newWidth, Height: in.Height},
			Ops: []Op{{
				Kind:    OpPad,
				Canvas:  Geometry{Width: newWidth, Height: in.Height},
				OffsetX: (newWidth - in.Width) / 2,
			}},
		}, nil

	case MethodStretch:
		target := Geometry{Width: in.Width, Height: in.Width * RatioH / RatioW}
		return Result{
			Output: target,
			Ops:    []Op{{Kind: OpResize, Target: target}},
		}, nil

	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}
