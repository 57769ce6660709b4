package shadow

import (
	"slices"

	"github.com/chewxy/math32"

	"github.com/gogpu/tess/geom"
)

// convexHull computes the 2D convex hull of a point set with the
// monotone chain algorithm: sort by x (then y), build the lower and
// upper chains independently with a cross-product turn test, and
// concatenate. The result is in canonical winding (non-negative shoelace
// area) and free of collinear runs. Inputs with fewer than three
// distinct points return what remains after deduplication.
func convexHull(points []geom.Vector2) []geom.Vector2 {
	pts := slices.Clone(points)
	slices.SortFunc(pts, func(a, b geom.Vector2) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		case a.Y < b.Y:
			return -1
		case a.Y > b.Y:
			return 1
		default:
			return 0
		}
	})
	pts = slices.Compact(pts)
	if len(pts) < 3 {
		return pts
	}

	hull := make([]geom.Vector2, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lowerLen := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lowerLen && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// turn is the cross product of oa and ob: positive for a left turn.
func turn(o, a, b geom.Vector2) float32 {
	return a.Sub(o).Cross(b.Sub(o))
}

// pointInPolygon reports whether p lies inside the polygon by the
// even-odd crossing rule. Points exactly on an edge may land on either
// side; callers do not rely on boundary behavior.
func pointInPolygon(p geom.Vector2, poly []geom.Vector2) bool {
	inside := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// centroidRayIntersect intersects the ray from center through target
// with the polygon boundary. The crossed edge is located by the sign
// change of the cross product between the ray direction and the
// center-to-vertex vectors, so only one line intersection is evaluated
// per sign change instead of a full segment scan. Returns false when no
// forward intersection exists, which happens when center lies outside
// the polygon.
func centroidRayIntersect(poly []geom.Vector2, center, target geom.Vector2) (geom.Vector2, bool) {
	dir := target.Sub(center)
	n := len(poly)
	prevCross := dir.Cross(poly[0].Sub(center))
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		currCross := dir.Cross(poly[j].Sub(center))
		if (prevCross > 0) != (currCross > 0) {
			a, b := poly[i], poly[j]
			edge := b.Sub(a)
			denom := dir.Cross(edge)
			if denom != 0 {
				t := a.Sub(center).Cross(edge) / denom
				if t > 0 {
					return center.Add(dir.Mul(t)), true
				}
			}
		}
		prevCross = currCross
	}
	return geom.Vector2{}, false
}

// outwardNormal returns the unit normal of the edge from a to b pointing
// outward of a canonically wound polygon. Zero-length edges yield the
// zero vector.
func outwardNormal(a, b geom.Vector2) geom.Vector2 {
	e := b.Sub(a)
	return geom.V2(e.Y, -e.X).Normalize()
}

// arcVerticesPerRadian sets how densely corner arcs are subdivided when
// a shadow ring turns between two edge normals. A tuning parameter, not
// a geometric necessity.
const arcVerticesPerRadian = 4

// cornerArcDirections returns unit directions sweeping from the `from`
// normal to the `to` normal, exclusive of from and inclusive of to,
// subdivided so corners of the shadow ring read as round bevels.
func cornerArcDirections(from, to geom.Vector2) []geom.Vector2 {
	angle := math32.Atan2(from.Cross(to), from.Dot(to))
	steps := int(math32.Ceil(math32.Abs(angle) * arcVerticesPerRadian))
	if steps < 1 {
		steps = 1
	}
	dirs := make([]geom.Vector2, steps)
	sinA, cosA := math32.Sincos(angle / float32(steps))
	d := from
	for k := 0; k < steps; k++ {
		d = geom.V2(d.X*cosA-d.Y*sinA, d.X*sinA+d.Y*cosA)
		dirs[k] = d
	}
	// Land exactly on the target normal instead of accumulating rotation
	// error.
	dirs[steps-1] = to
	return dirs
}
