// Package bmesh implements a half-edge (loop based) polygon mesh with
// per-loop attribute layers and the UV queries built on top of it.
//
// Elements live in arenas owned by the Mesh and are addressed by integer
// identifiers. Identifiers of removed elements are recycled, so an
// identifier must not be kept once the element it names has been removed.
package bmesh

import (
	"iter"

	"github.com/google/uuid"
	"github.com/spaghettifunk/uvmesh/engine/core"
	"github.com/spaghettifunk/uvmesh/engine/math"
)

type (
	VertID int32
	EdgeID int32
	FaceID int32
	LoopID int32
)

const (
	NilVert VertID = -1
	NilEdge EdgeID = -1
	NilFace FaceID = -1
	NilLoop LoopID = -1
)

type vert struct {
	co math.Vec3
	// any edge of the disk cycle around the vertex
	e EdgeID
	// any loop of the vertex loop cycle
	l LoopID
}

type diskLink struct {
	next, prev EdgeID
}

type edge struct {
	v [2]VertID
	// disk cycle links, one per end point, indexed like v
	disk [2]diskLink
	// any loop of the radial cycle
	l LoopID
}

type face struct {
	l   LoopID
	len int
}

type loop struct {
	v VertID
	e EdgeID
	f FaceID

	next, prev             LoopID
	radialNext, radialPrev LoopID
	vertNext, vertPrev     LoopID
}

// Mesh owns every vertex, edge, face and loop together with the loop
// attribute layers.
type Mesh struct {
	ID uuid.UUID

	verts []vert
	edges []edge
	faces []face
	loops []loop

	vpool *core.IdentifierPool
	epool *core.IdentifierPool
	fpool *core.IdentifierPool
	lpool *core.IdentifierPool

	ldata customData
}

func NewMesh() *Mesh {
	return &Mesh{
		ID:    uuid.New(),
		vpool: core.NewIdentifierPool(0),
		epool: core.NewIdentifierPool(0),
		fpool: core.NewIdentifierPool(0),
		lpool: core.NewIdentifierPool(0),
		ldata: newCustomData(),
	}
}

// acquire takes an identifier from pool and stores elem at that slot of arena.
func acquire[T any](pool *core.IdentifierPool, arena *[]T, elem T) int32 {
	id := pool.Acquire()
	if int(id) == len(*arena) {
		*arena = append(*arena, elem)
	} else {
		(*arena)[id] = elem
	}
	return int32(id)
}

func (m *Mesh) VertCount() int { return m.vpool.Len() }
func (m *Mesh) EdgeCount() int { return m.epool.Len() }
func (m *Mesh) FaceCount() int { return m.fpool.Len() }
func (m *Mesh) LoopCount() int { return m.lpool.Len() }

func (m *Mesh) IsValidVert(v VertID) bool { return v >= 0 && m.vpool.InUse(uint32(v)) }
func (m *Mesh) IsValidEdge(e EdgeID) bool { return e >= 0 && m.epool.InUse(uint32(e)) }
func (m *Mesh) IsValidFace(f FaceID) bool { return f >= 0 && m.fpool.InUse(uint32(f)) }
func (m *Mesh) IsValidLoop(l LoopID) bool { return l >= 0 && m.lpool.InUse(uint32(l)) }

// ------------------------------------------
// Element accessors
// ------------------------------------------

func (m *Mesh) VertCo(v VertID) math.Vec3 { return m.verts[v].co }

func (m *Mesh) SetVertCo(v VertID, co math.Vec3) { m.verts[v].co = co }

// EdgeVerts returns the two end points of e in storage order.
func (m *Mesh) EdgeVerts(e EdgeID) (VertID, VertID) {
	return m.edges[e].v[0], m.edges[e].v[1]
}

// EdgeOtherVert returns the end point of e that is not v, or NilVert
// when v is not on e.
func (m *Mesh) EdgeOtherVert(e EdgeID, v VertID) VertID {
	ed := &m.edges[e]
	switch v {
	case ed.v[0]:
		return ed.v[1]
	case ed.v[1]:
		return ed.v[0]
	}
	return NilVert
}

// EdgeHasVert reports whether v is one of the end points of e.
func (m *Mesh) EdgeHasVert(e EdgeID, v VertID) bool {
	return m.edges[e].v[0] == v || m.edges[e].v[1] == v
}

// EdgeLoop returns any loop of the radial cycle of e.
func (m *Mesh) EdgeLoop(e EdgeID) LoopID { return m.edges[e].l }

// EdgeRadialLen returns the number of faces using e.
func (m *Mesh) EdgeRadialLen(e EdgeID) int {
	n := 0
	for range m.EdgeLoops(e) {
		n++
	}
	return n
}

// EdgeIsBoundary reports whether exactly one face uses e.
func (m *Mesh) EdgeIsBoundary(e EdgeID) bool {
	l := m.edges[e].l
	return l != NilLoop && m.loops[l].radialNext == l
}

// EdgeIsManifold reports whether exactly two faces use e.
func (m *Mesh) EdgeIsManifold(e EdgeID) bool {
	l := m.edges[e].l
	return l != NilLoop && m.loops[l].radialNext != l && m.loops[m.loops[l].radialNext].radialNext == l
}

// FaceLen returns the number of corners of f.
func (m *Mesh) FaceLen(f FaceID) int { return m.faces[f].len }

// FaceFirstLoop returns the loop the boundary of f starts at.
func (m *Mesh) FaceFirstLoop(f FaceID) LoopID { return m.faces[f].l }

func (m *Mesh) LoopVert(l LoopID) VertID       { return m.loops[l].v }
func (m *Mesh) LoopEdge(l LoopID) EdgeID       { return m.loops[l].e }
func (m *Mesh) LoopFace(l LoopID) FaceID       { return m.loops[l].f }
func (m *Mesh) LoopNext(l LoopID) LoopID       { return m.loops[l].next }
func (m *Mesh) LoopPrev(l LoopID) LoopID       { return m.loops[l].prev }
func (m *Mesh) LoopRadialNext(l LoopID) LoopID { return m.loops[l].radialNext }
func (m *Mesh) LoopRadialPrev(l LoopID) LoopID { return m.loops[l].radialPrev }

// ------------------------------------------
// Iteration
// ------------------------------------------

// Verts yields every live vertex in identifier order.
func (m *Mesh) Verts() iter.Seq[VertID] {
	return func(yield func(VertID) bool) {
		for i := range m.verts {
			if m.vpool.InUse(uint32(i)) && !yield(VertID(i)) {
				return
			}
		}
	}
}

// Edges yields every live edge in identifier order.
func (m *Mesh) Edges() iter.Seq[EdgeID] {
	return func(yield func(EdgeID) bool) {
		for i := range m.edges {
			if m.epool.InUse(uint32(i)) && !yield(EdgeID(i)) {
				return
			}
		}
	}
}

// Faces yields every live face in identifier order.
func (m *Mesh) Faces() iter.Seq[FaceID] {
	return func(yield func(FaceID) bool) {
		for i := range m.faces {
			if m.fpool.InUse(uint32(i)) && !yield(FaceID(i)) {
				return
			}
		}
	}
}

// FaceLoops yields the boundary loops of f in winding order.
func (m *Mesh) FaceLoops(f FaceID) iter.Seq[LoopID] {
	return func(yield func(LoopID) bool) {
		first := m.faces[f].l
		if first == NilLoop {
			return
		}
		l := first
		for {
			next := m.loops[l].next
			if !yield(l) {
				return
			}
			l = next
			if l == first {
				return
			}
		}
	}
}

// FaceVerts yields the corner vertices of f in winding order.
func (m *Mesh) FaceVerts(f FaceID) iter.Seq[VertID] {
	return func(yield func(VertID) bool) {
		for l := range m.FaceLoops(f) {
			if !yield(m.loops[l].v) {
				return
			}
		}
	}
}

// EdgeLoops yields the radial cycle of e.
func (m *Mesh) EdgeLoops(e EdgeID) iter.Seq[LoopID] {
	return func(yield func(LoopID) bool) {
		first := m.edges[e].l
		if first == NilLoop {
			return
		}
		l := first
		for {
			next := m.loops[l].radialNext
			if !yield(l) {
				return
			}
			l = next
			if l == first {
				return
			}
		}
	}
}

// VertLoops yields every loop whose origin is v.
func (m *Mesh) VertLoops(v VertID) iter.Seq[LoopID] {
	return func(yield func(LoopID) bool) {
		first := m.verts[v].l
		if first == NilLoop {
			return
		}
		l := first
		for {
			next := m.loops[l].vertNext
			if !yield(l) {
				return
			}
			l = next
			if l == first {
				return
			}
		}
	}
}

// VertEdges yields the disk cycle of v.
func (m *Mesh) VertEdges(v VertID) iter.Seq[EdgeID] {
	return func(yield func(EdgeID) bool) {
		first := m.verts[v].e
		if first == NilEdge {
			return
		}
		e := first
		for {
			next := m.diskLinkOf(e, v).next
			if !yield(e) {
				return
			}
			e = next
			if e == first {
				return
			}
		}
	}
}
