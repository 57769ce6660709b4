package shadow

import (
	"slices"

	"github.com/chewxy/math32"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/geom"
	"github.com/gogpu/tess/mesh"
)

// maxProjectionRatio caps how close to the light plane a caster vertex
// may project. Without the cap a vertex directly under the light divides
// by zero and the projected outline blows up.
const maxProjectionRatio = 0.95

// fakeUmbraRatio is the size, relative to the outline, of the synthetic
// umbra substituted when the geometric umbra degenerates.
const fakeUmbraRatio = 0.05

// createSpotShadow tessellates the spot (directional) shadow of a caster
// lit by a sphere light. Caster vertices are projected from the light
// onto the receiver plane; the penumbra is the convex hull of the
// projected outline offset outward by each vertex's penumbra radius, and
// the umbra is the hull of the outline interpolated toward the shadow
// centroid. The two rings are stitched into one indexed strip, with the
// umbra interior filled by a centroid fan, or bounded by the caster
// silhouette when the caster is opaque and would hide part of its own
// umbra.
func createSpotShadow(isCasterOpaque bool, caster []geom.Vector3, light Light, out *mesh.VertexBuffer) {
	n := len(caster)
	lz := light.Center.Z
	lxy := light.Center.XY()

	outline := make([]geom.Vector2, n)
	radii := make([]float32, n)
	for i, v := range caster {
		z := math32.Min(math32.Max(v.Z, 0), maxProjectionRatio*lz)
		outline[i] = lxy.Add(v.XY().Sub(lxy).Mul(lz / (lz - z)))
		radii[i] = light.Radius * z / (lz - z)
	}
	if geom.SignedArea(outline) < 0 {
		slices.Reverse(outline)
		slices.Reverse(radii)
	}

	centroid := geom.Centroid(outline)

	normals := make([]geom.Vector2, n)
	for i := range outline {
		normals[i] = outwardNormal(outline[i], outline[(i+1)%n])
	}

	// Penumbra: rounded offset of the outline, hulled.
	raw := make([]geom.Vector2, 0, 4*n)
	for i := range outline {
		prev := normals[(i+n-1)%n]
		raw = append(raw, outline[i].Add(prev.Mul(radii[i])))
		for _, dir := range cornerArcDirections(prev, normals[i]) {
			raw = append(raw, outline[i].Add(dir.Mul(radii[i])))
		}
	}
	penumbra := convexHull(raw)
	if len(penumbra) < 3 {
		tess.Logger().Warn("spot shadow outline degenerate, skipping",
			"casterVertices", n, "penumbraVertices", len(penumbra))
		return
	}

	// Umbra: outline interpolated toward the centroid by radius/distance.
	// When every vertex's offset circle reaches past the centroid there is
	// no geometric umbra; a small synthetic one keeps the mesh well formed
	// and the shadow strength is scaled down instead.
	minRatio := math32.Inf(1)
	ratios := make([]float32, n)
	for i := range outline {
		d := outline[i].Distance(centroid)
		if d == 0 {
			ratios[i] = math32.Inf(1)
		} else {
			ratios[i] = radii[i] / d
		}
		minRatio = math32.Min(minRatio, ratios[i])
	}

	strength := float32(1)
	umbraPts := make([]geom.Vector2, n)
	if minRatio >= 1 {
		strength = 1 / minRatio
		for i := range outline {
			umbraPts[i] = centroid.Add(outline[i].Sub(centroid).Mul(fakeUmbraRatio))
		}
	} else {
		for i := range outline {
			umbraPts[i] = outline[i].Lerp(centroid, math32.Min(ratios[i], 1))
		}
	}
	umbra := convexHull(umbraPts)
	if len(umbra) < 3 {
		tess.Logger().Warn("spot shadow umbra degenerate, skipping",
			"casterVertices", n, "umbraVertices", len(umbra))
		return
	}

	// An opaque caster hides the part of its umbra that lies underneath
	// it; pull each umbra interior vertex in to the caster silhouette.
	casterXY := make([]geom.Vector2, n)
	for i, v := range caster {
		casterXY[i] = v.XY()
	}
	innerRing := slices.Clone(umbra)
	occluded := isCasterOpaque && pointInPolygon(centroid, casterXY)
	if occluded {
		for j := range umbra {
			isect, ok := centroidRayIntersect(casterXY, centroid, umbra[j])
			if ok && isect.Sub(centroid).LengthSq() < umbra[j].Sub(centroid).LengthSq() {
				innerRing[j] = isect
			}
		}
	}

	ring, paired := pairRings(penumbra, umbra, centroid)
	umbraAlpha := transformAlpha(strength)

	ringCount := len(ring)
	m := len(umbra)
	vertexCount := ringCount + m
	if occluded {
		vertexCount += m
	} else {
		vertexCount++
	}
	verts := mesh.Alloc[mesh.AlphaVertex](out, vertexCount)
	for k, p := range ring {
		verts[k] = mesh.AlphaVertex{X: p.X, Y: p.Y, Alpha: 0}
	}
	umbraBase := ringCount
	for j, p := range umbra {
		verts[umbraBase+j] = mesh.AlphaVertex{X: p.X, Y: p.Y, Alpha: umbraAlpha}
	}
	if occluded {
		for j, p := range innerRing {
			verts[umbraBase+m+j] = mesh.AlphaVertex{X: p.X, Y: p.Y, Alpha: umbraAlpha}
		}
	} else {
		verts[umbraBase+m] = mesh.AlphaVertex{X: centroid.X, Y: centroid.Y, Alpha: umbraAlpha}
	}

	// Strip 1 stitches penumbra to umbra; strip 2 fills the umbra
	// interior. The repeated indices at the junction are the usual
	// degenerate strip restart.
	indices := make([]uint16, 0, 2*ringCount+2+2+2*m+2)
	for k := 0; k < ringCount; k++ {
		indices = append(indices, uint16(k), uint16(umbraBase+paired[k]))
	}
	indices = append(indices, 0, uint16(umbraBase+paired[0]))

	if occluded {
		indices = append(indices, uint16(umbraBase+paired[0]), uint16(umbraBase))
		for j := 0; j < m; j++ {
			indices = append(indices, uint16(umbraBase+j), uint16(umbraBase+m+j))
		}
		indices = append(indices, uint16(umbraBase), uint16(umbraBase+m))
	} else {
		centroidIdx := uint16(umbraBase + m)
		indices = append(indices, uint16(umbraBase+paired[0]), uint16(umbraBase))
		for j := 0; j < m; j++ {
			indices = append(indices, uint16(umbraBase+j), centroidIdx)
		}
		indices = append(indices, uint16(umbraBase))
	}
	idx := out.AllocIndices(len(indices))
	copy(idx, indices)

	bounds := geom.EmptyRect()
	for _, p := range ring {
		bounds = bounds.UnionPoint(p)
	}
	out.SetBounds(bounds)
	out.SetMode(mesh.ModeTwoPolyRingShadow)
}

// pairRings pairs every penumbra (outer) vertex with an umbra (inner)
// vertex by angular proximity around the shadow center. Where two
// consecutive outer vertices skip over more than one inner vertex,
// synthetic outer vertices are interpolated between them, weighted by
// the cumulative chord length of the skipped inner run, so every inner
// vertex gets a paired outer vertex and the connecting strip has no gaps
// or overlaps. Returns the augmented outer ring and the inner index
// paired with each of its vertices.
func pairRings(outer, inner []geom.Vector2, center geom.Vector2) ([]geom.Vector2, []int) {
	p, m := len(outer), len(inner)

	angleAround := func(pt geom.Vector2) float32 {
		return math32.Atan2(pt.Y-center.Y, pt.X-center.X)
	}
	angDist := func(a, b float32) float32 {
		d := math32.Abs(a - b)
		if d > math32.Pi {
			d = 2*math32.Pi - d
		}
		return d
	}
	outerAngles := make([]float32, p)
	for k := range outer {
		outerAngles[k] = angleAround(outer[k])
	}
	innerAngles := make([]float32, m)
	for j := range inner {
		innerAngles[j] = angleAround(inner[j])
	}

	pair := make([]int, p)
	best := 0
	for j := 1; j < m; j++ {
		if angDist(outerAngles[0], innerAngles[j]) < angDist(outerAngles[0], innerAngles[best]) {
			best = j
		}
	}
	pair[0] = best
	// Both rings are convex and canonically wound, so angles advance in
	// the same direction; the paired index only ever moves forward.
	for k := 1; k < p; k++ {
		j := pair[k-1]
		for steps := 0; steps < m; steps++ {
			next := (j + 1) % m
			if angDist(outerAngles[k], innerAngles[next]) <= angDist(outerAngles[k], innerAngles[j]) {
				j = next
			} else {
				break
			}
		}
		pair[k] = j
	}

	ring := make([]geom.Vector2, 0, p+m)
	pairs := make([]int, 0, p+m)
	for k := 0; k < p; k++ {
		ring = append(ring, outer[k])
		pairs = append(pairs, pair[k])

		nextK := (k + 1) % p
		gap := (pair[nextK] - pair[k] + m) % m
		if gap <= 1 {
			continue
		}
		total := float32(0)
		for s := 0; s < gap; s++ {
			total += inner[(pair[k]+s)%m].Distance(inner[(pair[k]+s+1)%m])
		}
		acc := float32(0)
		for s := 1; s < gap; s++ {
			acc += inner[(pair[k]+s-1)%m].Distance(inner[(pair[k]+s)%m])
			t := float32(s) / float32(gap)
			if total > 0 {
				t = acc / total
			}
			ring = append(ring, outer[k].Lerp(outer[nextK], t))
			pairs = append(pairs, (pair[k]+s)%m)
		}
	}
	return ring, pairs
}
