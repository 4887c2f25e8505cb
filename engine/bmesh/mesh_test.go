package bmesh

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/uvmesh/engine/core"
	"github.com/spaghettifunk/uvmesh/engine/math"
)

// buildFace creates a single face whose corners sit at uvs, both as
// positions (z = 0) and as UV coordinates of a "UVMap" layer.
func buildFace(t *testing.T, uvs ...math.Vec2) (*Mesh, FaceID, UVOffsets) {
	t.Helper()
	m := NewMesh()
	if _, err := m.AddUVLayer("UVMap"); err != nil {
		t.Fatalf("AddUVLayer() error = %v", err)
	}
	verts := make([]VertID, len(uvs))
	for i, uv := range uvs {
		verts[i] = m.AddVert(math.NewVec3(uv.X, uv.Y, 0))
	}
	f, err := m.AddFace(verts)
	if err != nil {
		t.Fatalf("AddFace() error = %v", err)
	}
	o := GetUVOffsets(m)
	i := 0
	for l := range m.FaceLoops(f) {
		SetLoopUV(m, l, o, uvs[i])
		i++
	}
	return m, f, o
}

// buildStrip creates two unit quads sharing the edge between vertices 1
// and 2, with UVs equal to the vertex positions.
//
//	3---2---5
//	| A | B |
//	0---1---4
func buildStrip(t *testing.T) (*Mesh, [2]FaceID, []VertID, UVOffsets) {
	t.Helper()
	m := NewMesh()
	if _, err := m.AddUVLayer("UVMap"); err != nil {
		t.Fatalf("AddUVLayer() error = %v", err)
	}
	cos := []math.Vec3{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 2, Y: 0}, {X: 2, Y: 1},
	}
	verts := make([]VertID, len(cos))
	for i, co := range cos {
		verts[i] = m.AddVert(co)
	}
	a, err := m.AddFace([]VertID{verts[0], verts[1], verts[2], verts[3]})
	if err != nil {
		t.Fatalf("AddFace(A) error = %v", err)
	}
	b, err := m.AddFace([]VertID{verts[1], verts[4], verts[5], verts[2]})
	if err != nil {
		t.Fatalf("AddFace(B) error = %v", err)
	}
	o := GetUVOffsets(m)
	for _, f := range []FaceID{a, b} {
		for l := range m.FaceLoops(f) {
			co := m.VertCo(m.LoopVert(l))
			SetLoopUV(m, l, o, math.NewVec2(co.X, co.Y))
		}
	}
	return m, [2]FaceID{a, b}, verts, o
}

// loopAt returns the corner of f at v.
func loopAt(t *testing.T, m *Mesh, f FaceID, v VertID) LoopID {
	t.Helper()
	for l := range m.FaceLoops(f) {
		if m.LoopVert(l) == v {
			return l
		}
	}
	t.Fatalf("face %d has no corner at vertex %d", f, v)
	return NilLoop
}

func mustValidate(t *testing.T, m *Mesh) {
	t.Helper()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestMesh_AddFaceSharesEdges(t *testing.T) {
	m, faces, verts, _ := buildStrip(t)
	mustValidate(t, m)

	if got := m.VertCount(); got != 6 {
		t.Errorf("VertCount() = %d, want 6", got)
	}
	if got := m.EdgeCount(); got != 7 {
		t.Errorf("EdgeCount() = %d, want 7", got)
	}
	if got := m.FaceCount(); got != 2 {
		t.Errorf("FaceCount() = %d, want 2", got)
	}
	if got := m.LoopCount(); got != 8 {
		t.Errorf("LoopCount() = %d, want 8", got)
	}

	shared := m.FindEdge(verts[1], verts[2])
	if shared == NilEdge {
		t.Fatal("FindEdge(1, 2) = NilEdge")
	}
	if m.FindEdge(verts[2], verts[1]) != shared {
		t.Error("FindEdge should not depend on argument order")
	}
	if got := m.EdgeRadialLen(shared); got != 2 {
		t.Errorf("EdgeRadialLen(shared) = %d, want 2", got)
	}
	if !m.EdgeIsManifold(shared) || m.EdgeIsBoundary(shared) {
		t.Error("shared edge should be manifold")
	}
	if e := m.FindEdge(verts[0], verts[1]); !m.EdgeIsBoundary(e) {
		t.Error("edge 0-1 should be a boundary edge")
	}
	if m.FindEdge(verts[0], verts[2]) != NilEdge {
		t.Error("FindEdge(0, 2) should not find a diagonal")
	}

	for i, f := range faces {
		if got := m.FaceLen(f); got != 4 {
			t.Errorf("FaceLen(face %d) = %d, want 4", i, got)
		}
	}
	if got := m.FindFace([]VertID{verts[2], verts[3], verts[0], verts[1]}); got != faces[0] {
		t.Errorf("FindFace(rotated A) = %d, want %d", got, faces[0])
	}
}

func TestMesh_AddFaceErrors(t *testing.T) {
	m, _, verts, _ := buildStrip(t)
	tests := []struct {
		name  string
		verts []VertID
		want  error
	}{
		{"too small", []VertID{verts[0], verts[1]}, core.ErrFaceTooSmall},
		{"duplicate", []VertID{verts[0], verts[1], verts[0]}, core.ErrDuplicateVert},
		{"invalid vertex", []VertID{verts[0], verts[1], 99}, core.ErrInvalidElement},
		{"exists", []VertID{verts[3], verts[2], verts[1], verts[0]}, core.ErrFaceExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := m.AddFace(tt.verts)
			if !errors.Is(err, tt.want) {
				t.Errorf("AddFace() error = %v, want %v", err, tt.want)
			}
			if f != NilFace {
				t.Errorf("AddFace() = %d, want NilFace", f)
			}
		})
	}
	mustValidate(t, m)
}

func TestMesh_RemoveFaceKeepsSharedEdges(t *testing.T) {
	m, faces, verts, _ := buildStrip(t)
	shared := m.FindEdge(verts[1], verts[2])

	if err := m.RemoveFace(faces[0]); err != nil {
		t.Fatalf("RemoveFace() error = %v", err)
	}
	mustValidate(t, m)

	if m.IsValidFace(faces[0]) {
		t.Error("removed face is still valid")
	}
	if got := m.EdgeCount(); got != 4 {
		t.Errorf("EdgeCount() = %d, want 4", got)
	}
	if got := m.VertCount(); got != 6 {
		t.Errorf("VertCount() = %d, want 6", got)
	}
	if !m.IsValidEdge(shared) || !m.EdgeIsBoundary(shared) {
		t.Error("shared edge should survive as a boundary edge")
	}
	if m.FindEdge(verts[0], verts[1]) != NilEdge {
		t.Error("edge 0-1 should have been deleted with its last face")
	}
	if err := m.RemoveFace(faces[0]); !errors.Is(err, core.ErrInvalidElement) {
		t.Errorf("second RemoveFace() error = %v, want ErrInvalidElement", err)
	}
}

func TestMesh_RemoveVertAndEdge(t *testing.T) {
	m, _, verts, _ := buildStrip(t)

	if err := m.RemoveVert(verts[4]); err != nil {
		t.Fatalf("RemoveVert() error = %v", err)
	}
	mustValidate(t, m)
	if got := m.FaceCount(); got != 1 {
		t.Errorf("FaceCount() = %d, want 1", got)
	}
	if got := m.VertCount(); got != 5 {
		t.Errorf("VertCount() = %d, want 5", got)
	}

	e := m.FindEdge(verts[0], verts[1])
	if err := m.RemoveEdge(e); err != nil {
		t.Fatalf("RemoveEdge() error = %v", err)
	}
	mustValidate(t, m)
	if m.FaceCount() != 0 || m.EdgeCount() != 0 || m.LoopCount() != 0 {
		t.Errorf("counts after RemoveEdge = %d faces, %d edges, %d loops, want 0",
			m.FaceCount(), m.EdgeCount(), m.LoopCount())
	}
}

func TestMesh_RecycledLoopsStartZeroed(t *testing.T) {
	m, f, o := buildFace(t, math.NewVec2(0.2, 0.2), math.NewVec2(0.8, 0.2), math.NewVec2(0.5, 0.9))
	verts := make([]VertID, 0, 3)
	for v := range m.FaceVerts(f) {
		verts = append(verts, v)
	}
	if err := m.RemoveFace(f); err != nil {
		t.Fatalf("RemoveFace() error = %v", err)
	}
	g, err := m.AddFace(verts)
	if err != nil {
		t.Fatalf("AddFace() error = %v", err)
	}
	for l := range m.FaceLoops(g) {
		if uv := LoopUV(m, l, o); uv != math.NewVec2Zero() {
			t.Errorf("recycled loop %d has uv %v, want zero", l, uv)
		}
	}
}

func TestMesh_FlipFaceKeepsCornerData(t *testing.T) {
	m, faces, verts, o := buildStrip(t)
	before := map[VertID]math.Vec2{}
	SetLoopUV(m, loopAt(t, m, faces[0], verts[3]), o, math.NewVec2(-1, 7))
	for l := range m.FaceLoops(faces[0]) {
		before[m.LoopVert(l)] = LoopUV(m, l, o)
	}

	if err := m.FlipFace(faces[0]); err != nil {
		t.Fatalf("FlipFace() error = %v", err)
	}
	mustValidate(t, m)

	var order []VertID
	for l := range m.FaceLoops(faces[0]) {
		order = append(order, m.LoopVert(l))
		if got := LoopUV(m, l, o); got != before[m.LoopVert(l)] {
			t.Errorf("corner at vertex %d has uv %v, want %v", m.LoopVert(l), got, before[m.LoopVert(l)])
		}
	}
	want := []VertID{verts[0], verts[3], verts[2], verts[1]}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("winding after flip = %v, want %v", order, want)
		}
	}
	if got := m.EdgeCount(); got != 7 {
		t.Errorf("EdgeCount() after flip = %d, want 7", got)
	}
}

func TestMesh_Iterators(t *testing.T) {
	m, faces, verts, _ := buildStrip(t)

	n := 0
	for range m.VertEdges(verts[1]) {
		n++
	}
	if n != 3 {
		t.Errorf("VertEdges(1) yielded %d edges, want 3", n)
	}

	n = 0
	for l := range m.VertLoops(verts[2]) {
		if m.LoopVert(l) != verts[2] {
			t.Errorf("VertLoops(2) yielded loop of vertex %d", m.LoopVert(l))
		}
		n++
	}
	if n != 2 {
		t.Errorf("VertLoops(2) yielded %d loops, want 2", n)
	}

	for l := range m.FaceLoops(faces[1]) {
		if m.LoopNext(m.LoopPrev(l)) != l {
			t.Errorf("loop %d: next(prev) mismatch", l)
		}
		if m.LoopRadialNext(m.LoopRadialPrev(l)) != l {
			t.Errorf("loop %d: radial next(prev) mismatch", l)
		}
		if m.LoopFace(l) != faces[1] {
			t.Errorf("loop %d: LoopFace = %d, want %d", l, m.LoopFace(l), faces[1])
		}
	}

	n = 0
	for range m.Faces() {
		n++
		break
	}
	if n != 1 {
		t.Error("Faces() should stop when the loop breaks")
	}
}
