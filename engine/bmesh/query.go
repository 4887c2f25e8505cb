package bmesh

import (
	"github.com/spaghettifunk/uvmesh/engine/math"
)

// EdgeCalcLength returns the 3D length of e.
func EdgeCalcLength(m *Mesh, e EdgeID) float32 {
	if !m.IsValidEdge(e) {
		return 0
	}
	ed := &m.edges[e]
	return m.verts[ed.v[0]].co.Distance(m.verts[ed.v[1]].co)
}

// FaceCalcCenterMedian returns the mean position of the corners of f.
func FaceCalcCenterMedian(m *Mesh, f FaceID) math.Vec3 {
	if !m.IsValidFace(f) {
		return math.NewVec3Zero()
	}
	sum := math.NewVec3Zero()
	for v := range m.FaceVerts(f) {
		sum = sum.Add(m.verts[v].co)
	}
	return sum.MulScalar(1.0 / float32(m.faces[f].len))
}

// FaceCalcNormal returns the unit normal of f computed with Newell's
// method, which tolerates non-planar and concave faces. Faces without
// area get a zero normal.
func FaceCalcNormal(m *Mesh, f FaceID) math.Vec3 {
	if !m.IsValidFace(f) {
		return math.NewVec3Zero()
	}
	n := math.NewVec3Zero()
	for l := range m.FaceLoops(f) {
		a := m.verts[m.loops[l].v].co
		b := m.verts[m.loops[m.loops[l].next].v].co
		n = n.Add(math.NewellTermV3(a, b))
	}
	return n.Normalized()
}

// LoopOtherVertLoopByEdge returns the corner of the face of l at the
// other end of e, where e must touch the corner l. NilLoop is returned
// when it does not.
func LoopOtherVertLoopByEdge(m *Mesh, l LoopID, e EdgeID) LoopID {
	if !m.IsValidLoop(l) {
		return NilLoop
	}
	lp := &m.loops[l]
	if lp.e == e {
		return lp.next
	}
	if m.loops[lp.prev].e == e {
		return lp.prev
	}
	return NilLoop
}
