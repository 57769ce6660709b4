package geom

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestVectorNormalize(t *testing.T) {
	v := V2(3, 4).Normalize()
	assert.InDelta(t, 0.6, v.X, 1e-6)
	assert.InDelta(t, 0.8, v.Y, 1e-6)

	if z := V2(0, 0).Normalize(); z != (Vector2{}) {
		t.Errorf("normalizing zero vector = %+v, want zero", z)
	}
}

func TestVectorCrossSign(t *testing.T) {
	if c := V2(1, 0).Cross(V2(0, 1)); c <= 0 {
		t.Errorf("x cross y = %v, want positive", c)
	}
	if c := V2(0, 1).Cross(V2(1, 0)); c >= 0 {
		t.Errorf("y cross x = %v, want negative", c)
	}
}

func TestVectorLerp(t *testing.T) {
	mid := V2(0, 0).Lerp(V2(10, 20), 0.5)
	if mid != V2(5, 10) {
		t.Errorf("midpoint = %+v", mid)
	}
}

func TestMatrixScaleFactors(t *testing.T) {
	sx, sy := Scale(2, 3).ScaleFactors()
	assert.InDelta(t, 2, sx, 1e-6)
	assert.InDelta(t, 3, sy, 1e-6)

	// Rotation does not change the scale factors.
	m := Rotate(math32.Pi / 2).Multiply(Scale(2, 3))
	sx, sy = m.ScaleFactors()
	assert.InDelta(t, 2, sx, 1e-5)
	assert.InDelta(t, 3, sy, 1e-5)
}

func TestMatrixTransformPoint(t *testing.T) {
	m := Translate(10, 20).Multiply(Scale(2, 2))
	p := m.TransformPoint(V2(3, 4))
	if p != V2(16, 28) {
		t.Errorf("transformed point = %+v, want (16, 28)", p)
	}

	// TransformVector ignores translation.
	v := m.TransformVector(V2(3, 4))
	if v != V2(6, 8) {
		t.Errorf("transformed vector = %+v, want (6, 8)", v)
	}
}

func TestRectUnionAndOutset(t *testing.T) {
	r := EmptyRect().
		UnionPoint(V2(10, 20)).
		UnionPoint(V2(-5, 40))
	want := Rect{MinX: -5, MinY: 20, MaxX: 10, MaxY: 40}
	if r != want {
		t.Errorf("union = %+v, want %+v", r, want)
	}

	out := r.Outset(5)
	if out.MinX != -10 || out.MaxY != 45 {
		t.Errorf("outset = %+v", out)
	}
	if !out.Contains(V2(-10, 45)) {
		t.Error("outset rect should contain its own corner")
	}
}

func TestRectIntersects(t *testing.T) {
	a := RectXYWH(0, 0, 10, 10)
	if !a.Intersects(RectXYWH(5, 5, 10, 10)) {
		t.Error("overlapping rects should intersect")
	}
	if a.Intersects(RectXYWH(20, 20, 5, 5)) {
		t.Error("disjoint rects should not intersect")
	}
	if EmptyRect().Intersects(a) {
		t.Error("empty rect should not intersect anything")
	}
}

func TestSignedAreaWinding(t *testing.T) {
	square := []Vector2{V2(0, 0), V2(100, 0), V2(100, 100), V2(0, 100)}
	if a := SignedArea(square); a != 20000 {
		t.Errorf("signed area = %v, want 20000", a)
	}

	reversed := []Vector2{V2(0, 100), V2(100, 100), V2(100, 0), V2(0, 0)}
	if a := SignedArea(reversed); a != -20000 {
		t.Errorf("reversed signed area = %v, want -20000", a)
	}
}

func TestCentroid(t *testing.T) {
	square := []Vector2{V2(0, 0), V2(100, 0), V2(100, 100), V2(0, 100)}
	c := Centroid(square)
	assert.InDelta(t, 50, c.X, 1e-4)
	assert.InDelta(t, 50, c.Y, 1e-4)

	// Degenerate polygon falls back to the vertex average.
	line := []Vector2{V2(0, 0), V2(10, 0)}
	c = Centroid(line)
	assert.InDelta(t, 5, c.X, 1e-6)
	assert.InDelta(t, 0, c.Y, 1e-6)
}
