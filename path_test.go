package tess

import (
	"testing"

	"github.com/gogpu/tess/geom"
)

func TestPathBuilderVerbs(t *testing.T) {
	p := NewPath().
		MoveTo(0, 0).
		LineTo(10, 0).
		QuadTo(15, 5, 10, 10).
		ConicTo(5, 15, 0, 10, 0.707).
		CubicTo(-5, 5, -5, 0, 0, 0).
		Close()

	want := []PathVerb{VerbMoveTo, VerbLineTo, VerbQuadTo, VerbConicTo, VerbCubicTo, VerbClose}
	verbs := p.Verbs()
	if len(verbs) != len(want) {
		t.Fatalf("verb count = %d, want %d", len(verbs), len(want))
	}
	for i, v := range verbs {
		if v != want[i] {
			t.Errorf("verb %d = %v, want %v", i, v, want[i])
		}
	}

	// Coordinate data length matches the per-verb point counts.
	total := 0
	for _, v := range verbs {
		total += v.PointCount()
	}
	if len(p.Points()) != total {
		t.Errorf("point data length = %d, want %d", len(p.Points()), total)
	}
}

func TestPathBounds(t *testing.T) {
	p := NewPath().MoveTo(10, 20).LineTo(-5, 40)
	want := geom.Rect{MinX: -5, MinY: 20, MaxX: 10, MaxY: 40}
	if p.Bounds() != want {
		t.Errorf("bounds = %+v, want %+v", p.Bounds(), want)
	}

	// Control points participate in the conservative bounds.
	p = NewPath().MoveTo(0, 0).QuadTo(50, 100, 100, 0)
	if p.Bounds().MaxY != 100 {
		t.Errorf("bounds %+v should include the control point", p.Bounds())
	}
}

func TestPathReset(t *testing.T) {
	p := NewPath().Rectangle(0, 0, 10, 10)
	p.Reset()
	if !p.IsEmpty() {
		t.Error("reset path should be empty")
	}
	if p.Bounds() != geom.EmptyRect() {
		t.Errorf("reset bounds = %+v, want empty", p.Bounds())
	}
}

func TestRoundedRectangleClampsRadius(t *testing.T) {
	// Radius above half the minimum dimension degrades to a capsule, not
	// a self-intersecting outline.
	p := NewPath().RoundedRectangle(0, 0, 100, 40, 1000)
	want := geom.RectXYWH(0, 0, 100, 40)
	if p.Bounds() != want {
		t.Errorf("bounds = %+v, want %+v", p.Bounds(), want)
	}

	// Zero radius is a plain rectangle: 4 lines, no curves.
	p = NewPath().RoundedRectangle(0, 0, 100, 40, 0)
	for _, v := range p.Verbs() {
		if v == VerbCubicTo {
			t.Fatal("zero-radius rounded rectangle should not contain curves")
		}
	}
}

func TestVerbString(t *testing.T) {
	if VerbConicTo.String() != "ConicTo" {
		t.Errorf("VerbConicTo.String() = %q", VerbConicTo.String())
	}
	if PathVerb(200).String() != "Unknown" {
		t.Errorf("unknown verb String() = %q", PathVerb(200).String())
	}
}
