package bmesh

import (
	"fmt"

	"github.com/spaghettifunk/uvmesh/engine/core"
)

func topologyError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), core.ErrInvalidTopology)
}

// Validate walks every cycle of the mesh and reports the first broken
// invariant it finds.
func (m *Mesh) Validate() error {
	for f := range m.Faces() {
		if err := m.validateFace(f); err != nil {
			return err
		}
	}
	for e := range m.Edges() {
		if err := m.validateEdge(e); err != nil {
			return err
		}
	}
	for v := range m.Verts() {
		if err := m.validateVert(v); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mesh) validateFace(f FaceID) error {
	fc := &m.faces[f]
	if !m.IsValidLoop(fc.l) {
		return topologyError("face %d: first loop %d does not exist", f, fc.l)
	}
	if fc.len < 3 {
		return topologyError("face %d: %d corners", f, fc.len)
	}
	n := 0
	l := fc.l
	for {
		lp := &m.loops[l]
		if lp.f != f {
			return topologyError("face %d: loop %d belongs to face %d", f, l, lp.f)
		}
		if !m.IsValidLoop(lp.next) || m.loops[lp.next].prev != l {
			return topologyError("face %d: loop %d has a broken next link", f, l)
		}
		if !m.IsValidEdge(lp.e) {
			return topologyError("face %d: loop %d uses missing edge %d", f, l, lp.e)
		}
		if !m.EdgeHasVert(lp.e, lp.v) || !m.EdgeHasVert(lp.e, m.loops[lp.next].v) {
			return topologyError("face %d: edge %d of loop %d does not join its corners", f, lp.e, l)
		}
		n++
		if n > fc.len {
			return topologyError("face %d: loop cycle longer than %d", f, fc.len)
		}
		l = lp.next
		if l == fc.l {
			break
		}
	}
	if n != fc.len {
		return topologyError("face %d: %d loops, want %d", f, n, fc.len)
	}
	return nil
}

func (m *Mesh) validateEdge(e EdgeID) error {
	ed := &m.edges[e]
	if !m.IsValidLoop(ed.l) {
		return topologyError("edge %d: empty radial cycle", e)
	}
	limit := m.LoopCount()
	n := 0
	l := ed.l
	for {
		lp := &m.loops[l]
		if lp.e != e {
			return topologyError("edge %d: radial loop %d uses edge %d", e, l, lp.e)
		}
		if !m.IsValidLoop(lp.radialNext) || m.loops[lp.radialNext].radialPrev != l {
			return topologyError("edge %d: loop %d has a broken radial link", e, l)
		}
		n++
		if n > limit {
			return topologyError("edge %d: radial cycle does not close", e)
		}
		l = lp.radialNext
		if l == ed.l {
			break
		}
	}
	for side, v := range ed.v {
		if !m.IsValidVert(v) {
			return topologyError("edge %d: missing vertex %d", e, v)
		}
		link := ed.disk[side]
		if !m.IsValidEdge(link.next) || m.diskLinkOf(link.next, v).prev != e {
			return topologyError("edge %d: broken disk link at vertex %d", e, v)
		}
	}
	return nil
}

func (m *Mesh) validateVert(v VertID) error {
	vt := &m.verts[v]
	if vt.e != NilEdge {
		limit := m.EdgeCount()
		n := 0
		for e := range m.VertEdges(v) {
			if !m.IsValidEdge(e) || !m.EdgeHasVert(e, v) {
				return topologyError("vertex %d: disk edge %d does not use it", v, e)
			}
			n++
			if n > limit {
				return topologyError("vertex %d: disk cycle does not close", v)
			}
		}
	}
	if vt.l != NilLoop {
		limit := m.LoopCount()
		n := 0
		for l := range m.VertLoops(v) {
			if !m.IsValidLoop(l) || m.loops[l].v != v {
				return topologyError("vertex %d: loop %d does not start at it", v, l)
			}
			n++
			if n > limit {
				return topologyError("vertex %d: loop cycle does not close", v)
			}
		}
	}
	return nil
}
