package mesh

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gputypes"
	"honnef.co/go/safeish"

	"github.com/gogpu/tess/geom"
)

// Flags describes optional features carried by a tessellated mesh.
type Flags uint8

const (
	// FlagNone marks a plain position-only triangle strip.
	FlagNone Flags = 0
	// FlagAlpha marks a mesh carrying per-vertex alpha.
	FlagAlpha Flags = 1 << 0
	// FlagIndices marks a mesh drawn through its index buffer instead of
	// as an implicit strip.
	FlagIndices Flags = 1 << 1
)

// Mode tells the consuming renderer how to interpret the mesh.
type Mode uint8

const (
	// ModeStandard is an implicit triangle strip over the vertex array.
	ModeStandard Mode = iota
	// ModeOnePolyRingShadow is an indexed strip connecting one polygon
	// ring pair (ambient shadow).
	ModeOnePolyRingShadow
	// ModeTwoPolyRingShadow is an indexed strip connecting two polygon
	// rings (spot shadow penumbra and umbra).
	ModeTwoPolyRingShadow
	// ModeIndices is a generic indexed triangle strip.
	ModeIndices
)

// VertexBuffer is a growable arena owning one vertex array and at most one
// index array, plus the bounds and feature flags of the mesh inside it.
//
// Alloc may be called multiple times on the same buffer to tessellate
// batched geometry into disjoint sub-regions. Regions after the first are
// separated by two repeated vertices, producing zero-area triangles that
// keep a single strip draw from bridging between regions.
//
// A VertexBuffer is not safe for concurrent use; once handed to a renderer
// for a draw it must be treated as read-only for the duration of the draw.
type VertexBuffer struct {
	data   []byte
	stride int

	vertexCount int // logical count, <= allocated
	allocated   int // physical element count

	// sepFixups holds element indices of separator slots that must be
	// filled with a copy of the following region's first vertex. The copy
	// is deferred until the region has been written; accessors apply it.
	sepFixups []int

	indices    []uint16
	indexCount int

	bounds geom.Rect
	flags  Flags
	mode   Mode
}

// separatorVertices is the number of repeated vertices inserted between
// regions to create degenerate bridging triangles.
const separatorVertices = 2

// NewVertexBuffer creates an empty vertex buffer.
func NewVertexBuffer() *VertexBuffer {
	return &VertexBuffer{bounds: geom.EmptyRect()}
}

// Alloc appends a region of n vertices of type T to the buffer and returns
// it for the caller to fill. The first call fixes the buffer's element
// type; mixing vertex types in one buffer is a programming error and
// panics.
func Alloc[T VertexType](b *VertexBuffer, n int) []T {
	var zero T
	stride := int(unsafe.Sizeof(zero))
	if b.stride == 0 {
		b.stride = stride
		if _, ok := any(zero).(AlphaVertex); ok {
			b.flags |= FlagAlpha
		}
	} else if b.stride != stride {
		panic(fmt.Sprintf("mesh: mixed vertex types in one buffer (stride %d vs %d)", b.stride, stride))
	}
	if n <= 0 {
		return nil
	}

	if b.allocated > 0 {
		// Separator pair: a copy of the last vertex of the previous
		// region now, and a copy of the new region's first vertex once
		// the caller has written it.
		last := b.data[(b.allocated-1)*stride : b.allocated*stride]
		b.data = append(b.data, last...)
		b.sepFixups = append(b.sepFixups, b.allocated+1)
		b.data = append(b.data, make([]byte, stride)...)
		b.allocated += separatorVertices
	}

	start := b.allocated
	b.data = append(b.data, make([]byte, n*stride)...)
	b.allocated += n
	b.vertexCount = b.allocated

	region := safeish.SliceCast[[]T](b.data)
	return region[start : start+n]
}

// View returns the logical vertex array as a typed slice.
func View[T VertexType](b *VertexBuffer) []T {
	var zero T
	if b.stride != 0 && b.stride != int(unsafe.Sizeof(zero)) {
		panic("mesh: view type does not match buffer element type")
	}
	b.applySeparatorFixups()
	if len(b.data) == 0 {
		return nil
	}
	return safeish.SliceCast[[]T](b.data)[:b.vertexCount]
}

// applySeparatorFixups copies each following region's first vertex into
// its pending separator slot.
func (b *VertexBuffer) applySeparatorFixups() {
	for _, slot := range b.sepFixups {
		copy(b.data[slot*b.stride:(slot+1)*b.stride], b.data[(slot+1)*b.stride:(slot+2)*b.stride])
	}
	b.sepFixups = b.sepFixups[:0]
}

// AllocIndices allocates the index array with n entries and returns it for
// the caller to fill. At most one index array exists per buffer; a second
// call replaces the first.
func (b *VertexBuffer) AllocIndices(n int) []uint16 {
	b.indices = make([]uint16, n)
	b.indexCount = n
	b.flags |= FlagIndices
	return b.indices
}

// UpdateVertexCount shrinks the logical vertex count after tessellation
// has finished, when the worst-case allocation was not fully used.
// Counts above the allocated size are clamped.
func (b *VertexBuffer) UpdateVertexCount(n int) {
	if n < 0 {
		n = 0
	}
	if n > b.allocated {
		n = b.allocated
	}
	b.vertexCount = n
}

// UpdateIndexCount shrinks the logical index count.
func (b *VertexBuffer) UpdateIndexCount(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(b.indices) {
		n = len(b.indices)
	}
	b.indexCount = n
}

// VertexCount returns the logical number of vertices in the buffer.
func (b *VertexBuffer) VertexCount() int { return b.vertexCount }

// IndexCount returns the logical number of indices in the buffer.
func (b *VertexBuffer) IndexCount() int { return b.indexCount }

// Stride returns the byte stride of the buffer's vertex type, or 0 if
// nothing has been allocated yet.
func (b *VertexBuffer) Stride() int { return b.stride }

// Empty reports whether the buffer holds no drawable geometry.
// Callers must treat an empty buffer as "draw nothing".
func (b *VertexBuffer) Empty() bool { return b.vertexCount == 0 }

// Bounds returns the axis-aligned bounding box of the mesh.
func (b *VertexBuffer) Bounds() geom.Rect { return b.bounds }

// SetBounds records the bounding box of the mesh, including any stroke or
// anti-alias outset the tessellator applied.
func (b *VertexBuffer) SetBounds(r geom.Rect) { b.bounds = r }

// Flags returns the mesh feature flags.
func (b *VertexBuffer) Flags() Flags { return b.flags }

// Mode returns the draw mode of the mesh.
func (b *VertexBuffer) Mode() Mode { return b.mode }

// SetMode records how the consuming renderer should interpret the mesh.
func (b *VertexBuffer) SetMode(m Mode) { b.mode = m }

// Bytes returns the raw bytes of the logical vertex array, ready for
// upload. The returned slice aliases the buffer.
func (b *VertexBuffer) Bytes() []byte {
	b.applySeparatorFixups()
	return b.data[:b.vertexCount*b.stride]
}

// IndexBytes returns the raw bytes of the logical index array, or nil if
// the mesh has no indices.
func (b *VertexBuffer) IndexBytes() []byte {
	if b.indexCount == 0 {
		return nil
	}
	return safeish.SliceCast[[]byte](b.indices[:b.indexCount])
}

// ByteSize returns the total memory footprint of the mesh data, used for
// cache accounting.
func (b *VertexBuffer) ByteSize() int {
	return len(b.data) + len(b.indices)*2
}

// Layout returns the GPU vertex buffer layout matching the buffer's
// element type.
func (b *VertexBuffer) Layout() gputypes.VertexBufferLayout {
	if b.flags&FlagAlpha != 0 {
		return AlphaVertexLayout()
	}
	return VertexLayout()
}
