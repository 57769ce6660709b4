package geom

import "github.com/chewxy/math32"

// Rect is an axis-aligned rectangle in the same coordinate space as the
// vertices it bounds.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// RectXYWH creates a rectangle from an origin and a size.
func RectXYWH(x, y, w, h float32) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// EmptyRect returns an empty rectangle (inverted bounds for union operations).
func EmptyRect() Rect {
	return Rect{
		MinX: math32.MaxFloat32,
		MinY: math32.MaxFloat32,
		MaxX: -math32.MaxFloat32,
		MaxY: -math32.MaxFloat32,
	}
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float32 {
	return r.MaxY - r.MinY
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		MinX: math32.Min(r.MinX, other.MinX),
		MinY: math32.Min(r.MinY, other.MinY),
		MaxX: math32.Max(r.MaxX, other.MaxX),
		MaxY: math32.Max(r.MaxY, other.MaxY),
	}
}

// UnionPoint expands the rectangle to include the point.
func (r Rect) UnionPoint(v Vector2) Rect {
	return Rect{
		MinX: math32.Min(r.MinX, v.X),
		MinY: math32.Min(r.MinY, v.Y),
		MaxX: math32.Max(r.MaxX, v.X),
		MaxY: math32.Max(r.MaxY, v.Y),
	}
}

// Intersects reports whether r and other share any area.
func (r Rect) Intersects(other Rect) bool {
	return r.MinX < other.MaxX && other.MinX < r.MaxX &&
		r.MinY < other.MaxY && other.MinY < r.MaxY
}

// Contains reports whether the point lies inside or on the boundary of r.
func (r Rect) Contains(v Vector2) bool {
	return v.X >= r.MinX && v.X <= r.MaxX && v.Y >= r.MinY && v.Y <= r.MaxY
}

// Outset returns the rectangle expanded by d on every side.
func (r Rect) Outset(d float32) Rect {
	return Rect{
		MinX: r.MinX - d,
		MinY: r.MinY - d,
		MaxX: r.MaxX + d,
		MaxY: r.MaxY + d,
	}
}
