package bmesh

import (
	"fmt"

	"github.com/spaghettifunk/uvmesh/engine/core"
	"github.com/spaghettifunk/uvmesh/engine/math"
)

// AddVert creates an isolated vertex at co.
func (m *Mesh) AddVert(co math.Vec3) VertID {
	return VertID(acquire(m.vpool, &m.verts, vert{co: co, e: NilEdge, l: NilLoop}))
}

// FindEdge returns the edge joining a and b, or NilEdge.
func (m *Mesh) FindEdge(a, b VertID) EdgeID {
	if !m.IsValidVert(a) || !m.IsValidVert(b) {
		return NilEdge
	}
	for e := range m.VertEdges(a) {
		if m.EdgeOtherVert(e, a) == b {
			return e
		}
	}
	return NilEdge
}

// FindFace returns the face whose corners are exactly verts, in any
// rotation or winding, or NilFace.
func (m *Mesh) FindFace(verts []VertID) FaceID {
	if len(verts) < 3 {
		return NilFace
	}
	e := m.FindEdge(verts[0], verts[1])
	if e == NilEdge {
		return NilFace
	}
	for l := range m.EdgeLoops(e) {
		f := m.loops[l].f
		if m.faces[f].len == len(verts) && m.faceUsesAllVerts(f, verts) {
			return f
		}
	}
	return NilFace
}

func (m *Mesh) faceUsesAllVerts(f FaceID, verts []VertID) bool {
	for _, v := range verts {
		found := false
		for fv := range m.FaceVerts(f) {
			if fv == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *Mesh) newEdge(a, b VertID) EdgeID {
	e := EdgeID(acquire(m.epool, &m.edges, edge{
		v:    [2]VertID{a, b},
		disk: [2]diskLink{{NilEdge, NilEdge}, {NilEdge, NilEdge}},
		l:    NilLoop,
	}))
	m.diskAppend(e, a)
	m.diskAppend(e, b)
	return e
}

func (m *Mesh) killEdge(e EdgeID) {
	ed := m.edges[e]
	m.diskRemove(e, ed.v[0])
	m.diskRemove(e, ed.v[1])
	_ = m.epool.Release(uint32(e))
}

func (m *Mesh) newLoop(v VertID, e EdgeID, f FaceID) LoopID {
	l := LoopID(acquire(m.lpool, &m.loops, loop{
		v: v, e: e, f: f,
		next: NilLoop, prev: NilLoop,
		radialNext: NilLoop, radialPrev: NilLoop,
		vertNext: NilLoop, vertPrev: NilLoop,
	}))
	m.ldata.allocBlock(int(l))
	m.radialAppend(e, l)
	m.vertLoopAppend(v, l)
	return l
}

func (m *Mesh) killLoop(l LoopID) {
	lp := m.loops[l]
	m.radialRemove(lp.e, l)
	m.vertLoopRemove(lp.v, l)
	_ = m.lpool.Release(uint32(l))
}

// AddFace creates a face with one corner per vertex, in the given winding.
// Missing edges are created, existing ones are shared with the faces
// already using them.
func (m *Mesh) AddFace(verts []VertID) (FaceID, error) {
	n := len(verts)
	if n < 3 {
		return NilFace, fmt.Errorf("add face with %d vertices: %w", n, core.ErrFaceTooSmall)
	}
	for i, v := range verts {
		if !m.IsValidVert(v) {
			return NilFace, fmt.Errorf("add face: vertex %d: %w", v, core.ErrInvalidElement)
		}
		for _, w := range verts[:i] {
			if w == v {
				return NilFace, fmt.Errorf("add face: vertex %d: %w", v, core.ErrDuplicateVert)
			}
		}
	}
	if existing := m.FindFace(verts); existing != NilFace {
		return NilFace, fmt.Errorf("add face: face %d: %w", existing, core.ErrFaceExists)
	}

	f := FaceID(acquire(m.fpool, &m.faces, face{l: NilLoop, len: n}))

	var first, prev LoopID = NilLoop, NilLoop
	for i, v := range verts {
		w := verts[(i+1)%n]
		e := m.FindEdge(v, w)
		if e == NilEdge {
			e = m.newEdge(v, w)
		}
		l := m.newLoop(v, e, f)
		if first == NilLoop {
			first = l
		} else {
			m.loops[prev].next = l
			m.loops[l].prev = prev
		}
		prev = l
	}
	m.loops[prev].next = first
	m.loops[first].prev = prev
	m.faces[f].l = first

	return f, nil
}

// RemoveFace deletes f together with every edge that no other face uses.
// Vertices are kept.
func (m *Mesh) RemoveFace(f FaceID) error {
	if !m.IsValidFace(f) {
		return fmt.Errorf("remove face %d: %w", f, core.ErrInvalidElement)
	}
	loops := make([]LoopID, 0, m.faces[f].len)
	for l := range m.FaceLoops(f) {
		loops = append(loops, l)
	}
	for _, l := range loops {
		e := m.loops[l].e
		m.killLoop(l)
		if m.edges[e].l == NilLoop {
			m.killEdge(e)
		}
	}
	m.faces[f] = face{l: NilLoop}
	return m.fpool.Release(uint32(f))
}

// RemoveEdge deletes every face using e, which in turn deletes e.
func (m *Mesh) RemoveEdge(e EdgeID) error {
	if !m.IsValidEdge(e) {
		return fmt.Errorf("remove edge %d: %w", e, core.ErrInvalidElement)
	}
	for m.IsValidEdge(e) {
		// The radial cycle always holds a loop while the edge is alive.
		if err := m.RemoveFace(m.loops[m.edges[e].l].f); err != nil {
			return err
		}
	}
	return nil
}

// RemoveVert deletes every face using v, then v itself.
func (m *Mesh) RemoveVert(v VertID) error {
	if !m.IsValidVert(v) {
		return fmt.Errorf("remove vertex %d: %w", v, core.ErrInvalidElement)
	}
	for m.verts[v].l != NilLoop {
		if err := m.RemoveFace(m.loops[m.verts[v].l].f); err != nil {
			return err
		}
	}
	m.verts[v] = vert{e: NilEdge, l: NilLoop}
	return m.vpool.Release(uint32(v))
}

// FlipFace reverses the winding of f. Every loop keeps its vertex and its
// attribute block, so per-corner data such as UVs stays on its corner.
func (m *Mesh) FlipFace(f FaceID) error {
	if !m.IsValidFace(f) {
		return fmt.Errorf("flip face %d: %w", f, core.ErrInvalidElement)
	}
	n := m.faces[f].len
	loops := make([]LoopID, 0, n)
	for l := range m.FaceLoops(f) {
		loops = append(loops, l)
	}
	// After the flip a corner's edge is the one it used to arrive by.
	prevEdges := make([]EdgeID, n)
	for i, l := range loops {
		prevEdges[i] = m.loops[m.loops[l].prev].e
	}
	for _, l := range loops {
		m.radialRemove(m.loops[l].e, l)
	}
	for i, l := range loops {
		lp := &m.loops[l]
		lp.e = prevEdges[i]
		lp.next, lp.prev = lp.prev, lp.next
		m.radialAppend(lp.e, l)
	}
	return nil
}
