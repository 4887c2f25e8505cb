package bmesh

import (
	"github.com/spaghettifunk/uvmesh/engine/math"
)

// UV queries. Every function takes the offsets of the UV map to read
// and mutates nothing, so any number of goroutines may run them against
// one mesh as long as nobody edits it meanwhile.
//
// Queries degrade to zero or false when the offsets are absent. Invalid
// elements are a programming error: builds tagged bmeshdebug panic on
// them, other builds return zero or false.

// DefaultUVLimit is the per-axis tolerance of LoopUVShareEdgeCheck.
var DefaultUVLimit = math.Vec2{X: 1e-6, Y: 1e-6}

// DegenerateUVArea is the UV area at or below which a face is considered
// to have collapsed in UV space.
const DegenerateUVArea float32 = 1e-10

func (m *Mesh) checkUVLoop(l LoopID, o UVOffsets) bool {
	ok := m.IsValidLoop(l)
	assertf(ok, "loop %d does not exist", l)
	assertf(!o.Valid() || o.layout == m.ldata.layout, "stale uv offsets")
	return ok && o.Valid()
}

func (m *Mesh) checkUVFace(f FaceID, o UVOffsets) bool {
	ok := m.IsValidFace(f) && m.faces[f].len >= 3
	assertf(ok, "face %d does not exist or has less than 3 corners", f)
	assertf(!o.Valid() || o.layout == m.ldata.layout, "stale uv offsets")
	return ok && o.Valid()
}

func (m *Mesh) uv(l LoopID, o UVOffsets) math.Vec2 {
	return m.ldata.float2(int(l), o.UV)
}

// LoopUVEdgeLengthSquared returns the squared UV distance between l and
// the next corner of its face.
func LoopUVEdgeLengthSquared(m *Mesh, l LoopID, o UVOffsets) float32 {
	if !m.checkUVLoop(l, o) {
		return 0
	}
	return m.uv(l, o).DistanceSquared(m.uv(m.loops[l].next, o))
}

// LoopUVEdgeLength returns the UV distance between l and the next corner
// of its face.
func LoopUVEdgeLength(m *Mesh, l LoopID, o UVOffsets) float32 {
	if !m.checkUVLoop(l, o) {
		return 0
	}
	return m.uv(l, o).Distance(m.uv(m.loops[l].next, o))
}

// FaceUVCenterMedian returns the mean of the corner UVs of f.
func FaceUVCenterMedian(m *Mesh, f FaceID, o UVOffsets) math.Vec2 {
	if !m.checkUVFace(f, o) {
		return math.NewVec2Zero()
	}
	sum := math.NewVec2Zero()
	first := m.faces[f].l
	l := first
	for {
		sum = sum.Add(m.uv(l, o))
		l = m.loops[l].next
		if l == first {
			break
		}
	}
	return sum.MulScalar(1.0 / float32(m.faces[f].len))
}

// FaceUVCenterMedianWeighted returns the center of the UV outline of f
// where each corner weighs as much as its two adjacent edges are long,
// which is the average of the edge midpoints weighted by edge length.
//
// Lengths are measured after scaling UVs by aspect so that non-square
// textures are measured in texels; the result is in regular UV space.
// Zero length edges carry no weight. When every edge has zero length the
// plain median is returned. A zero aspect component is treated as 1.
func FaceUVCenterMedianWeighted(m *Mesh, f FaceID, aspect math.Vec2, o UVOffsets) math.Vec2 {
	if !m.checkUVFace(f, o) {
		return math.NewVec2Zero()
	}
	if aspect.X == 0 {
		aspect.X = 1
	}
	if aspect.Y == 0 {
		aspect.Y = 1
	}

	first := m.faces[f].l
	curr := m.uv(first, o).Mul(aspect)
	wPrev := m.uv(m.loops[first].prev, o).Mul(aspect).Distance(curr)

	cent := math.NewVec2Zero()
	total := float32(0)
	l := first
	for {
		next := m.uv(m.loops[l].next, o).Mul(aspect)
		wCurr := curr.Distance(next)
		w := wPrev + wCurr
		cent = cent.Add(curr.MulScalar(w))
		total += w

		wPrev = wCurr
		curr = next
		l = m.loops[l].next
		if l == first {
			break
		}
	}
	if total == 0 {
		return FaceUVCenterMedian(m, f, o)
	}
	return cent.MulScalar(1.0 / total).Div(aspect)
}

// FaceUVCross returns the signed area of the UV outline of f: positive
// when the corners wind counter-clockwise in UV space, negative when they
// wind clockwise, zero for a collinear outline.
func FaceUVCross(m *Mesh, f FaceID, o UVOffsets) float32 {
	if !m.checkUVFace(f, o) {
		return 0
	}
	first := m.faces[f].l
	prev := m.uv(m.loops[first].prev, o)
	sum := float32(0)
	l := first
	for {
		curr := m.uv(l, o)
		sum += math.ShoelaceTermV2(prev, curr)
		prev = curr
		l = m.loops[l].next
		if l == first {
			break
		}
	}
	return sum * 0.5
}

// FaceUVArea returns the unsigned UV area of f.
func FaceUVArea(m *Mesh, f FaceID, o UVOffsets) float32 {
	a := FaceUVCross(m, f, o)
	if a < 0 {
		return -a
	}
	return a
}

// FaceUVIsFlipped reports whether f winds clockwise in UV space.
func FaceUVIsFlipped(m *Mesh, f FaceID, o UVOffsets) bool {
	return FaceUVCross(m, f, o) < 0
}

// FaceUVIsDegenerate reports whether the UV outline of f has no area.
func FaceUVIsDegenerate(m *Mesh, f FaceID, o UVOffsets) bool {
	return FaceUVArea(m, f, o) <= DegenerateUVArea
}

// FaceUVMinMax returns the UV bounding box of f. The box is empty when
// the offsets are absent.
func FaceUVMinMax(m *Mesh, f FaceID, o UVOffsets) math.Extents2D {
	ext := math.NewExtents2DEmpty()
	FaceUVMinMaxExpand(m, f, o, &ext)
	return ext
}

// FaceUVMinMaxExpand grows ext to include the UVs of f.
func FaceUVMinMaxExpand(m *Mesh, f FaceID, o UVOffsets, ext *math.Extents2D) {
	if !m.checkUVFace(f, o) {
		return
	}
	first := m.faces[f].l
	l := first
	for {
		ext.Expand(m.uv(l, o))
		l = m.loops[l].next
		if l == first {
			break
		}
	}
}

// LoopUVShareEdgeCheckWithLimit reports whether a and b lie on the same
// edge and agree on the UVs of both its end points within limit on each
// axis. The two loops may run along the edge in opposite directions.
func LoopUVShareEdgeCheckWithLimit(m *Mesh, a, b LoopID, limit math.Vec2, o UVOffsets) bool {
	if !m.checkUVLoop(a, o) || !m.checkUVLoop(b, o) {
		return false
	}
	la, lb := &m.loops[a], &m.loops[b]
	if la.e != lb.e {
		return false
	}
	aCurr, aNext := m.uv(a, o), m.uv(la.next, o)
	bCurr, bNext := m.uv(b, o), m.uv(lb.next, o)
	if la.v != lb.v {
		bCurr, bNext = bNext, bCurr
	}
	return aCurr.CompareLimit(bCurr, limit) && aNext.CompareLimit(bNext, limit)
}

// LoopUVShareEdgeCheck is LoopUVShareEdgeCheckWithLimit with DefaultUVLimit.
func LoopUVShareEdgeCheck(m *Mesh, a, b LoopID, o UVOffsets) bool {
	return LoopUVShareEdgeCheckWithLimit(m, a, b, DefaultUVLimit, o)
}

// loopUsesEdge reports whether e touches the corner l within its face.
func (m *Mesh) loopUsesEdge(l LoopID, e EdgeID) bool {
	return m.loops[l].e == e || m.loops[m.loops[l].prev].e == e
}

// EdgeUVShareVertCheck reports whether a and b are corners of the same
// vertex, both of their faces use e at that corner, and their UVs are
// exactly equal.
func EdgeUVShareVertCheck(m *Mesh, e EdgeID, a, b LoopID, o UVOffsets) bool {
	if !m.checkUVLoop(a, o) || !m.checkUVLoop(b, o) {
		return false
	}
	ok := m.IsValidEdge(e)
	assertf(ok, "edge %d does not exist", e)
	if !ok {
		return false
	}
	if m.loops[a].v != m.loops[b].v {
		return false
	}
	if !m.loopUsesEdge(a, e) || !m.loopUsesEdge(b, e) {
		return false
	}
	return m.uv(a, o) == m.uv(b, o)
}

// LoopUVShareVertCheck reports whether a and b are corners of the same
// vertex with exactly equal UVs.
func LoopUVShareVertCheck(m *Mesh, a, b LoopID, o UVOffsets) bool {
	if !m.checkUVLoop(a, o) || !m.checkUVLoop(b, o) {
		return false
	}
	if m.loops[a].v != m.loops[b].v {
		return false
	}
	return m.uv(a, o) == m.uv(b, o)
}

// FaceUVPointInsideTest reports whether p lies inside the UV outline of
// f using the even-odd rule, so concave outlines are handled. Points on
// the boundary follow a half-open rule: with a ray cast towards +X, an
// edge counts when p.Y is in [min Y, max Y) of the edge and p lies
// strictly left of it. For an axis aligned square this means the left
// and bottom sides are inside and the right and top sides are outside.
func FaceUVPointInsideTest(m *Mesh, f FaceID, p math.Vec2, o UVOffsets) bool {
	if !m.checkUVFace(f, o) {
		return false
	}
	first := m.faces[f].l
	prev := m.uv(m.loops[first].prev, o)
	inside := false
	l := first
	for {
		curr := m.uv(l, o)
		if math.RayCrossesEdgeV2(p, prev, curr) {
			inside = !inside
		}
		prev = curr
		l = m.loops[l].next
		if l == first {
			break
		}
	}
	return inside
}
