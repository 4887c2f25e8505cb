package bmesh

import (
	"github.com/spaghettifunk/uvmesh/engine/containers"
	"github.com/spaghettifunk/uvmesh/engine/math"
)

// UVIsland is a set of faces connected through edges whose UVs agree on
// both sides.
type UVIsland struct {
	Faces  []FaceID
	Bounds math.Extents2D
	Area   float32
}

// CalcUVIslands splits the faces of m into UV islands. Two faces sharing
// an edge belong to the same island when LoopUVShareEdgeCheckWithLimit
// holds for their loops on that edge. Islands are returned in the order
// of their lowest face identifier.
func CalcUVIslands(m *Mesh, o UVOffsets, limit math.Vec2) []UVIsland {
	if !o.Valid() || m.FaceCount() == 0 {
		return nil
	}
	visited := make([]bool, len(m.faces))
	queue := containers.NewRingQueue[FaceID](m.FaceCount())

	var islands []UVIsland
	for seed := range m.Faces() {
		if visited[seed] {
			continue
		}
		island := UVIsland{Bounds: math.NewExtents2DEmpty()}
		visited[seed] = true
		queue.Reset()
		_ = queue.Enqueue(seed)

		for !queue.IsEmpty() {
			f, _ := queue.Dequeue()
			island.Faces = append(island.Faces, f)
			FaceUVMinMaxExpand(m, f, o, &island.Bounds)
			island.Area += FaceUVArea(m, f, o)

			for l := range m.FaceLoops(f) {
				for r := range m.EdgeLoops(m.loops[l].e) {
					if r == l {
						continue
					}
					g := m.loops[r].f
					if visited[g] || !LoopUVShareEdgeCheckWithLimit(m, l, r, limit, o) {
						continue
					}
					visited[g] = true
					// Every face is queued at most once, so this cannot overflow.
					_ = queue.Enqueue(g)
				}
			}
		}
		islands = append(islands, island)
	}
	return islands
}

// EdgeIsUVSeam reports whether e splits UV space: it is a boundary edge,
// or at least two of the faces using it disagree on its UVs.
func EdgeIsUVSeam(m *Mesh, e EdgeID, o UVOffsets, limit math.Vec2) bool {
	if !o.Valid() || !m.IsValidEdge(e) {
		return false
	}
	if m.EdgeIsBoundary(e) {
		return true
	}
	for a := range m.EdgeLoops(e) {
		for b := range m.EdgeLoops(e) {
			if a < b && !LoopUVShareEdgeCheckWithLimit(m, a, b, limit, o) {
				return true
			}
		}
	}
	return false
}

// UVSeamEdges returns every edge of m for which EdgeIsUVSeam holds.
func UVSeamEdges(m *Mesh, o UVOffsets, limit math.Vec2) []EdgeID {
	var seams []EdgeID
	for e := range m.Edges() {
		if EdgeIsUVSeam(m, e, o, limit) {
			seams = append(seams, e)
		}
	}
	return seams
}
