// Package tess converts vector paths, strokes, points, and shadow-casting
// polygons into triangle meshes suitable for GPU rasterization.
//
// The package is a pure in-process computational library: it issues no GPU
// calls and defines no file formats. Callers build a [Path], describe it
// with a [Paint], and tessellate it into a [mesh.VertexBuffer] which they
// then hand to their own device layer:
//
//	buf := mesh.NewVertexBuffer()
//	path := tess.NewPath().RoundedRectangle(0, 0, 200, 100, 12)
//	tess.TessellatePath(path, paint, transform, buf)
//
// Shadow geometry lives in the shadow sub-package, and memoization of
// expensive tessellations in the cache sub-package.
//
// Degenerate inputs (empty paths, zero-length strokes, casters with fewer
// than three vertices) never fail: they produce an empty buffer, which
// callers must treat as "draw nothing".
package tess
