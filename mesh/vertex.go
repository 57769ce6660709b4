// Package mesh provides the vertex types and the VertexBuffer arena that
// all tessellators write into.
//
// A VertexBuffer owns exactly one vertex array and at most one index
// array. Vertex data is stored in a raw byte arena with a declared element
// stride, so a device layer can upload it directly; typed views are
// obtained through the generic View and Alloc functions.
package mesh

import "github.com/gogpu/gputypes"

// Vertex is a position-only mesh vertex.
//
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes (location 0)
type Vertex struct {
	X, Y float32
}

// AlphaVertex is a mesh vertex carrying a per-vertex alpha scalar.
// For anti-aliased geometry the alpha is coverage in [0,1]; for shadow
// meshes it is an angle-domain value that the renderer maps back through
// a non-linear falloff (see the shadow package).
//
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes (location 0)
//	alpha    (f32)       = 4 bytes (location 1)
type AlphaVertex struct {
	X, Y  float32
	Alpha float32
}

// VertexType constrains the element types a VertexBuffer can hold.
type VertexType interface {
	Vertex | AlphaVertex
}

// vertexStride and alphaVertexStride are the byte strides of the two
// supported vertex layouts.
const (
	vertexStride      = 8
	alphaVertexStride = 12
)

// VertexLayout returns the GPU vertex buffer layout for position-only
// vertices.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: vertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
		},
	}
}

// AlphaVertexLayout returns the GPU vertex buffer layout for vertices with
// per-vertex alpha.
func AlphaVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: alphaVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			{Format: gputypes.VertexFormatFloat32, Offset: 8, ShaderLocation: 1},   // alpha
		},
	}
}
