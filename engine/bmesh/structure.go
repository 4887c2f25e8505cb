package bmesh

// Low level cycle maintenance. None of these functions allocate or touch
// the arenas' lengths, so pointers into the arenas stay valid for the
// duration of a call.

// diskLinkOf returns the disk links of e that belong to its end point v.
func (m *Mesh) diskLinkOf(e EdgeID, v VertID) *diskLink {
	ed := &m.edges[e]
	if ed.v[0] == v {
		return &ed.disk[0]
	}
	return &ed.disk[1]
}

// diskAppend inserts e into the disk cycle of v.
func (m *Mesh) diskAppend(e EdgeID, v VertID) {
	link := m.diskLinkOf(e, v)
	vt := &m.verts[v]
	if vt.e == NilEdge {
		vt.e = e
		link.next = e
		link.prev = e
		return
	}
	first := vt.e
	firstLink := m.diskLinkOf(first, v)
	last := firstLink.prev
	lastLink := m.diskLinkOf(last, v)

	link.next = first
	link.prev = last
	firstLink.prev = e
	lastLink.next = e
}

// diskRemove unlinks e from the disk cycle of v.
func (m *Mesh) diskRemove(e EdgeID, v VertID) {
	link := m.diskLinkOf(e, v)
	vt := &m.verts[v]
	if link.next == e {
		vt.e = NilEdge
	} else {
		m.diskLinkOf(link.prev, v).next = link.next
		m.diskLinkOf(link.next, v).prev = link.prev
		if vt.e == e {
			vt.e = link.next
		}
	}
	link.next = NilEdge
	link.prev = NilEdge
}

// radialAppend inserts l into the radial cycle of e.
func (m *Mesh) radialAppend(e EdgeID, l LoopID) {
	ed := &m.edges[e]
	lp := &m.loops[l]
	if ed.l == NilLoop {
		ed.l = l
		lp.radialNext = l
		lp.radialPrev = l
		return
	}
	first := ed.l
	last := m.loops[first].radialPrev
	lp.radialNext = first
	lp.radialPrev = last
	m.loops[first].radialPrev = l
	m.loops[last].radialNext = l
}

// radialRemove unlinks l from the radial cycle of e.
func (m *Mesh) radialRemove(e EdgeID, l LoopID) {
	ed := &m.edges[e]
	lp := &m.loops[l]
	if lp.radialNext == l {
		ed.l = NilLoop
	} else {
		m.loops[lp.radialPrev].radialNext = lp.radialNext
		m.loops[lp.radialNext].radialPrev = lp.radialPrev
		if ed.l == l {
			ed.l = lp.radialNext
		}
	}
	lp.radialNext = NilLoop
	lp.radialPrev = NilLoop
}

// vertLoopAppend inserts l into the loop cycle of v.
func (m *Mesh) vertLoopAppend(v VertID, l LoopID) {
	vt := &m.verts[v]
	lp := &m.loops[l]
	if vt.l == NilLoop {
		vt.l = l
		lp.vertNext = l
		lp.vertPrev = l
		return
	}
	first := vt.l
	last := m.loops[first].vertPrev
	lp.vertNext = first
	lp.vertPrev = last
	m.loops[first].vertPrev = l
	m.loops[last].vertNext = l
}

// vertLoopRemove unlinks l from the loop cycle of v.
func (m *Mesh) vertLoopRemove(v VertID, l LoopID) {
	vt := &m.verts[v]
	lp := &m.loops[l]
	if lp.vertNext == l {
		vt.l = NilLoop
	} else {
		m.loops[lp.vertPrev].vertNext = lp.vertNext
		m.loops[lp.vertNext].vertPrev = lp.vertPrev
		if vt.l == l {
			vt.l = lp.vertNext
		}
	}
	lp.vertNext = NilLoop
	lp.vertPrev = NilLoop
}
