package geom

// SignedArea returns the shoelace sum of a polygon: twice its signed
// area. Polygons in this module are kept in canonical winding, defined
// as a non-negative shoelace sum.
func SignedArea(verts []Vector2) float32 {
	var area float32
	for i := range verts {
		j := (i + 1) % len(verts)
		area += verts[i].Cross(verts[j])
	}
	return area
}

// Centroid returns the area-weighted centroid of a simple polygon. A
// zero-area polygon falls back to the vertex average so degenerate
// casters still yield a finite point.
func Centroid(verts []Vector2) Vector2 {
	var area, cx, cy float32
	for i := range verts {
		j := (i + 1) % len(verts)
		cross := verts[i].Cross(verts[j])
		area += cross
		cx += (verts[i].X + verts[j].X) * cross
		cy += (verts[i].Y + verts[j].Y) * cross
	}
	if area == 0 {
		var sum Vector2
		for _, v := range verts {
			sum = sum.Add(v)
		}
		return sum.Div(float32(len(verts)))
	}
	return V2(cx, cy).Div(3 * area)
}
