// Package shadow derives ambient and spot shadow triangle meshes from 3D
// caster polygons.
//
// A caster is a simple closed polygon whose vertices carry a height (z)
// above the receiver plane. The ambient shadow is the diffuse halo cast
// by overhead sky light; the spot shadow is the directional shadow cast
// by a sphere light with a position and radius. Both are written as
// indexed AlphaVertex strips whose alpha channel holds angle-domain
// values (see transformAlpha) rather than raw opacity.
//
// Invalid input never fails: it logs and leaves the destination buffer
// empty, and callers treat an empty buffer as "draw nothing".
package shadow

import (
	"github.com/gogpu/tess"
	"github.com/gogpu/tess/geom"
	"github.com/gogpu/tess/mesh"
)

// heightFactor converts caster elevation into shadow alpha falloff:
// ambient alpha is 1 / (1 + z * heightFactor).
const heightFactor = 1.0 / 128

// geomFactor converts caster elevation into ambient shadow spread, in
// receiver-plane units per unit of scaled height.
const geomFactor = 64

// Light is a sphere light positioned above the receiver plane.
type Light struct {
	Center geom.Vector3
	Radius float32
}

// TessellateAmbientShadow writes the ambient shadow mesh of the caster
// into out. casterBounds is the 2D bounding box of the caster polygon
// and maxZ its highest vertex; together they bound the shadow's maximum
// spread, and the call returns with an empty buffer when that spread
// cannot intersect localClip.
func TessellateAmbientShadow(isCasterOpaque bool, caster []geom.Vector3,
	casterBounds, localClip geom.Rect, maxZ float32, out *mesh.VertexBuffer) {
	if len(caster) < 3 {
		tess.Logger().Warn("ambient shadow caster has too few vertices", "got", len(caster))
		return
	}

	spread := maxZ * heightFactor * geomFactor
	if !casterBounds.Outset(spread).Intersects(localClip) {
		return
	}

	createAmbientShadow(isCasterOpaque, caster, Centroid3D(caster), out)
}

// TessellateSpotShadow writes the spot shadow mesh of the caster into
// out. The light must sit strictly above every caster vertex; a light at
// or below the caster cannot project onto the receiver plane and yields
// an empty buffer.
func TessellateSpotShadow(isCasterOpaque bool, caster []geom.Vector3,
	light Light, casterBounds, localClip geom.Rect, out *mesh.VertexBuffer) {
	if len(caster) < 3 {
		tess.Logger().Warn("spot shadow caster has too few vertices", "got", len(caster))
		return
	}
	maxZ := float32(0)
	for _, v := range caster {
		if v.Z > maxZ {
			maxZ = v.Z
		}
	}
	if light.Center.Z <= maxZ {
		tess.Logger().Warn("light is not above the caster, skipping spot shadow",
			"lightZ", light.Center.Z, "casterMaxZ", maxZ)
		return
	}

	if !spotShadowSpreadBounds(casterBounds, light, maxZ).Intersects(localClip) {
		return
	}

	createSpotShadow(isCasterOpaque, caster, light, out)
}

// spotShadowSpreadBounds conservatively bounds the projected spot shadow
// by pushing the caster bounding box corners through the light at the
// caster's maximum height and adding the penumbra radius at that height.
func spotShadowSpreadBounds(casterBounds geom.Rect, light Light, maxZ float32) geom.Rect {
	z := maxZ
	if limit := maxProjectionRatio * light.Center.Z; z > limit {
		z = limit
	}
	scale := light.Center.Z / (light.Center.Z - z)
	penumbraRadius := light.Radius * z / (light.Center.Z - z)

	lxy := light.Center.XY()
	corners := [4]geom.Vector2{
		geom.V2(casterBounds.MinX, casterBounds.MinY),
		geom.V2(casterBounds.MaxX, casterBounds.MinY),
		geom.V2(casterBounds.MaxX, casterBounds.MaxY),
		geom.V2(casterBounds.MinX, casterBounds.MaxY),
	}
	r := casterBounds
	for _, c := range corners {
		r = r.UnionPoint(lxy.Add(c.Sub(lxy).Mul(scale)))
	}
	return r.Outset(penumbraRadius)
}

// Centroid3D returns the centroid of a caster polygon: the area-weighted
// 2D centroid of its projection paired with the average height.
func Centroid3D(caster []geom.Vector3) geom.Vector3 {
	outline := make([]geom.Vector2, len(caster))
	var zSum float32
	for i, v := range caster {
		outline[i] = v.XY()
		zSum += v.Z
	}
	c := geom.Centroid(outline)
	return geom.V3(c.X, c.Y, zSum/float32(len(caster)))
}

// ProjectCasterPolygon lifts a flat 2D outline into a 3D caster polygon
// in receiver space: the transform maps the outline's xy coordinates and
// every vertex is raised to the given elevation.
func ProjectCasterPolygon(outline []geom.Vector2, transform geom.Matrix, elevation float32) []geom.Vector3 {
	caster := make([]geom.Vector3, len(outline))
	for i, p := range outline {
		q := transform.TransformPoint(p)
		caster[i] = geom.V3(q.X, q.Y, elevation)
	}
	return caster
}
