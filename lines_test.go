package tess

import (
	"testing"

	"github.com/gogpu/tess/geom"
	"github.com/gogpu/tess/mesh"
)

func TestTessellateLinesBatch(t *testing.T) {
	pts := []float32{
		0, 0, 100, 0,
		0, 50, 100, 50,
	}
	paint := NewPaint()
	paint.Style = StyleStroke
	paint.StrokeWidth = 10
	out := mesh.NewVertexBuffer()

	TessellateLines(pts, paint, geom.Identity(), out)

	// Two 8-vertex ribbons plus one 2-vertex separator.
	if got := out.VertexCount(); got != 18 {
		t.Fatalf("vertex count = %d, want 18", got)
	}

	verts := mesh.View[mesh.Vertex](out)
	if verts[8] != verts[7] {
		t.Errorf("separator vertex 8 = %+v, want copy of %+v", verts[8], verts[7])
	}
	if verts[9] != verts[10] {
		t.Errorf("separator vertex 9 = %+v, want copy of %+v", verts[9], verts[10])
	}

	want := geom.Rect{MinX: -5, MinY: -5, MaxX: 105, MaxY: 55}
	if out.Bounds() != want {
		t.Errorf("bounds = %+v, want %+v", out.Bounds(), want)
	}
}

func TestTessellateLinesIgnoresTrailingCoords(t *testing.T) {
	pts := []float32{0, 0, 100, 0, 7, 7} // trailing incomplete line
	paint := NewPaint()
	paint.Style = StyleStroke
	paint.StrokeWidth = 2
	out := mesh.NewVertexBuffer()

	TessellateLines(pts, paint, geom.Identity(), out)

	if got := out.VertexCount(); got != 8 {
		t.Errorf("vertex count = %d, want 8", got)
	}
}

func TestTessellateLinesZeroLength(t *testing.T) {
	pts := []float32{50, 50, 50, 50}

	butt := NewPaint()
	butt.Style = StyleStroke
	butt.StrokeWidth = 10
	out := mesh.NewVertexBuffer()
	TessellateLines(pts, butt, geom.Identity(), out)
	if !out.Empty() {
		t.Error("butt-cap zero-length line should draw nothing")
	}

	round := NewPaint()
	round.Style = StyleStroke
	round.StrokeWidth = 10
	round.Cap = CapRound
	out = mesh.NewVertexBuffer()
	TessellateLines(pts, round, geom.Identity(), out)
	if out.Empty() {
		t.Error("round-cap zero-length line should draw a dot")
	}
	// The sampled circle stays inside the stroke radius around the point.
	b := out.Bounds()
	if b.MinX < 45 || b.MinY < 45 || b.MaxX > 55 || b.MaxY > 55 {
		t.Errorf("dot bounds %+v escape the stroke radius", b)
	}
	if b.Width() < 8 || b.Height() < 8 {
		t.Errorf("dot bounds %+v implausibly small", b)
	}
}

func TestTessellatePointsSquareDots(t *testing.T) {
	pts := []float32{10, 10, 90, 90}
	paint := NewPaint()
	paint.StrokeWidth = 4
	out := mesh.NewVertexBuffer()

	TessellatePoints(pts, paint, geom.Identity(), out)

	// Two quads plus one separator.
	if got := out.VertexCount(); got != 10 {
		t.Errorf("vertex count = %d, want 10", got)
	}
	want := geom.Rect{MinX: 8, MinY: 8, MaxX: 92, MaxY: 92}
	if out.Bounds() != want {
		t.Errorf("bounds = %+v, want %+v", out.Bounds(), want)
	}
}

func TestTessellatePointsRoundAA(t *testing.T) {
	pts := []float32{0, 0}
	paint := NewPaint()
	paint.StrokeWidth = 8
	paint.Cap = CapRound
	paint.AntiAlias = true
	out := mesh.NewVertexBuffer()

	TessellatePoints(pts, paint, geom.Identity(), out)

	if out.Empty() {
		t.Fatal("round AA point produced no geometry")
	}
	if out.Flags()&mesh.FlagAlpha == 0 {
		t.Error("AA point should carry per-vertex alpha")
	}
	// Circle outline of d vertices tessellates to 3d+2.
	if (out.VertexCount()-2)%3 != 0 {
		t.Errorf("vertex count %d does not match AA fill layout", out.VertexCount())
	}
}
