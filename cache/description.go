package cache

import (
	"github.com/gogpu/tess"
	"github.com/gogpu/tess/geom"
)

// Shape identifies the geometry family a Description keys.
type Shape uint8

const (
	// ShapeNone is an empty description.
	ShapeNone Shape = iota
	// ShapeRoundRect keys a rounded rectangle tessellation.
	ShapeRoundRect
)

// Description is the structural cache key for a tessellated shape: the
// geometry parameters plus every paint and transform attribute the
// tessellation depends on. Two draws with equal Descriptions produce
// byte-identical meshes, so the struct is comparable and used directly
// as a map key.
//
// Only the transform's scale enters the key: tessellation happens in
// local space and translation or rotation do not change the mesh.
type Description struct {
	Shape          Shape
	Width, Height  float32
	Radius         float32
	ScaleX, ScaleY float32
	Style          tess.Style
	Cap            tess.Cap
	StrokeWidth    float32
	AntiAlias      bool
}

// RoundRectDescription builds the cache key for a rounded rectangle
// drawn with the given paint under the given transform.
func RoundRectDescription(width, height, radius float32, paint *tess.Paint, transform geom.Matrix) Description {
	sx, sy := transform.ScaleFactors()
	return Description{
		Shape:       ShapeRoundRect,
		Width:       width,
		Height:      height,
		Radius:      radius,
		ScaleX:      sx,
		ScaleY:      sy,
		Style:       paint.Style,
		Cap:         paint.Cap,
		StrokeWidth: paint.StrokeWidth,
		AntiAlias:   paint.AntiAlias,
	}
}

// scaleTransform rebuilds the part of the draw transform the
// tessellators consume.
func (d Description) scaleTransform() geom.Matrix {
	return geom.Scale(d.ScaleX, d.ScaleY)
}

// ShadowDescription keys one node's shadow pair for the duration of a
// frame: the identity of the scene node plus its flattened draw
// transform. Unlike Description it does not capture geometry: a node's
// outline is assumed stable within the frame, and shadow entries are
// trimmed every frame rather than persisted.
type ShadowDescription struct {
	NodeKey       uint64
	DrawTransform [6]float32
}

// NewShadowDescription builds the per-frame shadow cache key for a node.
func NewShadowDescription(nodeKey uint64, drawTransform geom.Matrix) ShadowDescription {
	return ShadowDescription{
		NodeKey:       nodeKey,
		DrawTransform: drawTransform.Elements(),
	}
}
