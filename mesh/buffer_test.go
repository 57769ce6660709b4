package mesh

import (
	"testing"

	"github.com/gogpu/tess/geom"
)

func TestAllocSingleRegion(t *testing.T) {
	b := NewVertexBuffer()
	region := Alloc[Vertex](b, 3)
	if len(region) != 3 {
		t.Fatalf("region length = %d, want 3", len(region))
	}
	region[0] = Vertex{X: 1, Y: 2}
	region[2] = Vertex{X: 5, Y: 6}

	if b.VertexCount() != 3 {
		t.Errorf("vertex count = %d, want 3", b.VertexCount())
	}
	if b.Stride() != 8 {
		t.Errorf("stride = %d, want 8", b.Stride())
	}
	if b.Flags() != FlagNone {
		t.Errorf("flags = %v, want none", b.Flags())
	}

	view := View[Vertex](b)
	if view[0] != (Vertex{X: 1, Y: 2}) || view[2] != (Vertex{X: 5, Y: 6}) {
		t.Errorf("view does not reflect writes: %+v", view)
	}
}

func TestAllocSeparatorBetweenRegions(t *testing.T) {
	b := NewVertexBuffer()
	first := Alloc[Vertex](b, 2)
	first[0] = Vertex{X: 1, Y: 1}
	first[1] = Vertex{X: 2, Y: 2}

	second := Alloc[Vertex](b, 2)
	second[0] = Vertex{X: 10, Y: 10}
	second[1] = Vertex{X: 20, Y: 20}

	if b.VertexCount() != 6 {
		t.Fatalf("vertex count = %d, want 2+2+2 separators", b.VertexCount())
	}

	view := View[Vertex](b)
	if view[2] != (Vertex{X: 2, Y: 2}) {
		t.Errorf("first separator = %+v, want copy of previous region's last vertex", view[2])
	}
	if view[3] != (Vertex{X: 10, Y: 10}) {
		t.Errorf("second separator = %+v, want copy of next region's first vertex", view[3])
	}
}

func TestAllocAlphaSetsFlag(t *testing.T) {
	b := NewVertexBuffer()
	Alloc[AlphaVertex](b, 1)
	if b.Flags()&FlagAlpha == 0 {
		t.Error("alpha vertex allocation should set FlagAlpha")
	}
	if b.Stride() != 12 {
		t.Errorf("stride = %d, want 12", b.Stride())
	}
}

func TestAllocMixedTypesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("mixing vertex types should panic")
		}
	}()
	b := NewVertexBuffer()
	Alloc[Vertex](b, 1)
	Alloc[AlphaVertex](b, 1)
}

func TestUpdateVertexCountClamps(t *testing.T) {
	b := NewVertexBuffer()
	Alloc[Vertex](b, 4)

	b.UpdateVertexCount(2)
	if b.VertexCount() != 2 {
		t.Errorf("count = %d, want 2", b.VertexCount())
	}
	b.UpdateVertexCount(100)
	if b.VertexCount() != 4 {
		t.Errorf("count = %d, want clamp to 4", b.VertexCount())
	}
	b.UpdateVertexCount(-1)
	if b.VertexCount() != 0 {
		t.Errorf("count = %d, want clamp to 0", b.VertexCount())
	}
}

func TestBytesMatchesLogicalCount(t *testing.T) {
	b := NewVertexBuffer()
	Alloc[AlphaVertex](b, 5)
	b.UpdateVertexCount(3)

	if got := len(b.Bytes()); got != 3*12 {
		t.Errorf("byte length = %d, want 36", got)
	}
}

func TestIndices(t *testing.T) {
	b := NewVertexBuffer()
	Alloc[Vertex](b, 3)
	idx := b.AllocIndices(4)
	copy(idx, []uint16{0, 1, 2, 0})

	if b.Flags()&FlagIndices == 0 {
		t.Error("index allocation should set FlagIndices")
	}
	if b.IndexCount() != 4 {
		t.Errorf("index count = %d, want 4", b.IndexCount())
	}
	if got := len(b.IndexBytes()); got != 8 {
		t.Errorf("index byte length = %d, want 8", got)
	}
	b.UpdateIndexCount(2)
	if got := len(b.IndexBytes()); got != 4 {
		t.Errorf("index byte length after shrink = %d, want 4", got)
	}
}

func TestEmptyBuffer(t *testing.T) {
	b := NewVertexBuffer()
	if !b.Empty() {
		t.Error("new buffer should be empty")
	}
	if b.Bounds() != geom.EmptyRect() {
		t.Errorf("bounds = %+v, want empty", b.Bounds())
	}
	if len(View[Vertex](b)) != 0 {
		t.Error("view of empty buffer should be empty")
	}
}

func TestLayoutSelection(t *testing.T) {
	plain := NewVertexBuffer()
	Alloc[Vertex](plain, 1)
	if got := plain.Layout().ArrayStride; got != 8 {
		t.Errorf("plain layout stride = %d, want 8", got)
	}

	alpha := NewVertexBuffer()
	Alloc[AlphaVertex](alpha, 1)
	layout := alpha.Layout()
	if layout.ArrayStride != 12 {
		t.Errorf("alpha layout stride = %d, want 12", layout.ArrayStride)
	}
	if len(layout.Attributes) != 2 {
		t.Errorf("alpha layout attributes = %d, want 2", len(layout.Attributes))
	}
}
