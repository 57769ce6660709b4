package geom

import "github.com/chewxy/math32"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
//
// The tessellators only consume the plane transform of the caller's full
// matrix stack, so the 4x4 matrices used by scene graphs reduce to this
// form before tessellation.
type Matrix struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float32) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float32) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float32) Matrix {
	cos := math32.Cos(angle)
	sin := math32.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Multiply multiplies two matrices (m * other).
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(v Vector2) Vector2 {
	return Vector2{
		X: m.A*v.X + m.B*v.Y + m.C,
		Y: m.D*v.X + m.E*v.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(v Vector2) Vector2 {
	return Vector2{
		X: m.A*v.X + m.B*v.Y,
		Y: m.D*v.X + m.E*v.Y,
	}
}

// IsIdentity reports whether the matrix is exactly the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsPureTranslate reports whether the matrix only translates.
func (m Matrix) IsPureTranslate() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// ScaleFactors returns the approximate X and Y scale applied by the matrix,
// measured as the lengths of the transformed basis vectors. Screen-space
// error thresholds and hairline widths are derived from these.
func (m Matrix) ScaleFactors() (sx, sy float32) {
	sx = math32.Hypot(m.A, m.D)
	sy = math32.Hypot(m.B, m.E)
	return sx, sy
}

// Elements returns the matrix as a flat comparable array, suitable for use
// inside cache description keys.
func (m Matrix) Elements() [6]float32 {
	return [6]float32{m.A, m.B, m.C, m.D, m.E, m.F}
}
