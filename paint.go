package tess

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tess/geom"
)

// Style selects whether a path is filled, stroked, or both.
type Style uint8

const (
	// StyleFill fills the path interior.
	StyleFill Style = iota
	// StyleStroke strokes the path outline.
	StyleStroke
	// StyleStrokeAndFill strokes and fills; tessellation treats it as a
	// fill of the outline expanded by half the stroke width.
	StyleStrokeAndFill
)

// Cap specifies the shape of stroke endpoints.
type Cap uint8

const (
	// CapButt ends the stroke flat at the endpoint.
	CapButt Cap = iota
	// CapRound ends the stroke with a half-circle fan.
	CapRound
	// CapSquare extends the stroke past the endpoint by half the width.
	CapSquare
)

// Paint carries the attributes that influence tessellation.
type Paint struct {
	// Style selects fill or stroke tessellation. Default: StyleFill.
	Style Style

	// Cap is the endpoint shape for open strokes. Default: CapButt.
	Cap Cap

	// StrokeWidth is the stroke width in local units. A width of 0 is a
	// hairline: always one device pixel wide regardless of transform.
	StrokeWidth float32

	// AntiAlias enables per-vertex alpha ramp generation.
	AntiAlias bool
}

// NewPaint returns a Paint with default settings: a filled, non-AA shape.
func NewPaint() *Paint {
	return &Paint{StrokeWidth: 1}
}

// roundCapThresh is the maximum sagitta error, in device pixels, allowed
// between consecutive round cap vertices. Lower values produce smoother
// caps at the cost of more vertices.
const roundCapThresh = 0.25

// paintInfo is the derived tessellation state computed once per call from
// a Paint and the active transform. It is never persisted.
type paintInfo struct {
	style Style
	cap   Cap
	isAA  bool

	// halfStrokeWidth is half the stroke width in local units; 0 means
	// hairline (fixed one-pixel geometric width).
	halfStrokeWidth float32

	// inverseScaleX/Y convert device-pixel measures back into local
	// units, keeping hairline and AA ramp widths constant in screen
	// space regardless of the transform's scale.
	inverseScaleX float32
	inverseScaleY float32

	// maxAlpha is reduced below 1 when a sub-pixel stroke is coerced to
	// hairline, preserving apparent coverage.
	maxAlpha float32
}

// derivePaintInfo computes the per-call tessellation state.
func derivePaintInfo(paint *Paint, transform geom.Matrix) paintInfo {
	info := paintInfo{
		style:         paint.Style,
		cap:           paint.Cap,
		isAA:          paint.AntiAlias,
		inverseScaleX: 1,
		inverseScaleY: 1,
		maxAlpha:      1,
	}

	sx, sy := transform.ScaleFactors()
	if sx != 0 {
		info.inverseScaleX = 1 / sx
	}
	if sy != 0 {
		info.inverseScaleY = 1 / sy
	}

	if paint.Style != StyleFill {
		info.halfStrokeWidth = paint.StrokeWidth * 0.5

		// A stroke that would render thinner than one device pixel is
		// drawn as a hairline with its alpha scaled down by the true
		// width, which preserves apparent darkness without the artifacts
		// of anti-aliasing a sub-pixel ribbon.
		if paint.Style == StyleStroke &&
			info.isAA && info.halfStrokeWidth != 0 &&
			info.inverseScaleX == info.inverseScaleY &&
			paint.StrokeWidth*sx < 1 {
			info.maxAlpha *= paint.StrokeWidth * sx
			info.halfStrokeWidth = 0
		}
	}
	return info
}

// strokeOutset returns the local-space distance geometry extends beyond
// the perimeter: half the stroke width (or the hairline half pixel) plus
// the AA ramp.
func (info *paintInfo) strokeOutset() float32 {
	outset := info.halfStrokeWidth
	if outset == 0 {
		outset = 0.5 * info.inverseScaleX
	}
	if info.isAA {
		outset += 0.5 * info.inverseScaleX
	}
	return outset
}

// expandBoundsForStroke outsets mesh bounds to cover stroke width and the
// anti-alias ramp.
func (info *paintInfo) expandBoundsForStroke(r geom.Rect) geom.Rect {
	return r.Outset(info.strokeOutset())
}

// capExtraDivisions returns how many extra vertices a round cap inserts
// per endpoint. The count keeps each fan segment's sagitta below
// roundCapThresh device pixels, so caps look circular at any radius.
func (info *paintInfo) capExtraDivisions() int {
	if info.cap != CapRound {
		return 0
	}
	// Hairlines always use a minimal 2-point cap.
	if info.halfStrokeWidth == 0 {
		return 2
	}
	thresh := math32.Min(info.inverseScaleX, info.inverseScaleY) * roundCapThresh
	if thresh >= info.halfStrokeWidth {
		return 2
	}
	step := 2 * math32.Acos(1-thresh/info.halfStrokeWidth)
	n := int(math32.Ceil(math32.Pi/step)) - 1
	if n < 2 {
		n = 2
	}
	return n
}

// emitsAlpha reports whether tessellation with this paint produces
// AlphaVertex meshes.
func (info *paintInfo) emitsAlpha() bool {
	return info.isAA
}
