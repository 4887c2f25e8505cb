package systems

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spaghettifunk/uvmesh/engine/bmesh"
	"github.com/spaghettifunk/uvmesh/engine/core"
	"github.com/spaghettifunk/uvmesh/engine/math"
)

// addQuad appends a unit quad at x whose UVs start at uv.
func addQuad(t *testing.T, m *bmesh.Mesh, x float32, uv math.Vec2, flip bool) {
	t.Helper()
	offsets := []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	if flip {
		offsets[1], offsets[3] = offsets[3], offsets[1]
	}
	verts := make([]bmesh.VertID, 4)
	for i, off := range []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}} {
		verts[i] = m.AddVert(math.NewVec3(x+off.X, off.Y, 0))
	}
	f, err := m.AddFace(verts)
	if err != nil {
		t.Fatalf("AddFace() error = %v", err)
	}
	o := bmesh.GetUVOffsets(m)
	i := 0
	for l := range m.FaceLoops(f) {
		bmesh.SetLoopUV(m, l, o, uv.Add(offsets[i]))
		i++
	}
}

func newReportSystem(t *testing.T, cfg *UVReportSystemConfig) *UVReportSystem {
	t.Helper()
	js, err := NewJobSystem(2, 4)
	if err != nil {
		t.Fatalf("NewJobSystem() error = %v", err)
	}
	t.Cleanup(func() { js.Shutdown() })
	rs, err := NewUVReportSystem(cfg, js)
	if err != nil {
		t.Fatalf("NewUVReportSystem() error = %v", err)
	}
	return rs
}

func TestUVReportSystem_Analyse(t *testing.T) {
	m := bmesh.NewMesh()
	if _, err := m.AddUVLayer("UVMap"); err != nil {
		t.Fatal(err)
	}
	addQuad(t, m, 0, math.NewVec2(0, 0), false)
	addQuad(t, m, 2, math.NewVec2(0.5, 0.5), false)
	addQuad(t, m, 4, math.NewVec2(4, 0), true)

	rs := newReportSystem(t, &UVReportSystemConfig{})
	r, err := rs.Analyse("three quads", m)
	if err != nil {
		t.Fatalf("Analyse() error = %v", err)
	}
	if r.Faces != 3 || r.Edges != 12 || r.Loops != 12 {
		t.Errorf("counts = %d faces, %d edges, %d loops", r.Faces, r.Edges, r.Loops)
	}
	if r.Layer != "UVMap" || r.MeshID != m.ID {
		t.Errorf("report layer %q mesh %v", r.Layer, r.MeshID)
	}
	if r.FlippedFaces != 1 || r.DegenerateFaces != 0 {
		t.Errorf("flipped %d degenerate %d, want 1 and 0", r.FlippedFaces, r.DegenerateFaces)
	}
	if r.UVArea != 3 {
		t.Errorf("UVArea = %v, want 3", r.UVArea)
	}
	if r.Bounds.Min != math.NewVec2(0, 0) || r.Bounds.Max != math.NewVec2(5, 1.5) {
		t.Errorf("Bounds = %+v", r.Bounds)
	}
	if len(r.Islands) != 3 || r.Seams != 12 {
		t.Errorf("islands %d seams %d, want 3 and 12", len(r.Islands), r.Seams)
	}
	if len(r.Overlaps) != 1 || r.Overlaps[0].A != 0 || r.Overlaps[0].B != 1 || r.Overlaps[0].Area != 0.25 {
		t.Errorf("Overlaps = %+v, want islands 0 and 1 sharing 0.25", r.Overlaps)
	}

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	for _, want := range []string{"three quads", "flipped faces 1", "islands 3, seams 12", "islands 0 and 1 overlap"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("report is missing %q:\n%s", want, buf.String())
		}
	}
}

func TestUVReportSystem_TouchingIslandsDoNotOverlap(t *testing.T) {
	m := bmesh.NewMesh()
	if _, err := m.AddUVLayer("UVMap"); err != nil {
		t.Fatal(err)
	}
	addQuad(t, m, 0, math.NewVec2(0, 0), false)
	addQuad(t, m, 2, math.NewVec2(1, 0), false)

	r, err := newReportSystem(t, &UVReportSystemConfig{}).Analyse("touching", m)
	if err != nil {
		t.Fatalf("Analyse() error = %v", err)
	}
	if len(r.Islands) != 2 || len(r.Overlaps) != 0 {
		t.Errorf("islands %d overlaps %v, want 2 islands and no overlap", len(r.Islands), r.Overlaps)
	}
}

func TestUVReportSystem_MissingLayer(t *testing.T) {
	m := bmesh.NewMesh()
	addQuad(t, m, 0, math.NewVec2Zero(), false)

	rs := newReportSystem(t, &UVReportSystemConfig{})
	r, err := rs.Analyse("bare", m)
	if !errors.Is(err, core.ErrAbsentLayer) {
		t.Fatalf("Analyse() error = %v, want ErrAbsentLayer", err)
	}
	if r.Faces != 1 || r.Layer != "" {
		t.Errorf("report = %+v, want counts only", r)
	}

	m2 := bmesh.NewMesh()
	if _, err := m2.AddUVLayer("UVMap"); err != nil {
		t.Fatal(err)
	}
	named := newReportSystem(t, &UVReportSystemConfig{Layer: "Lightmap"})
	if _, err := named.Analyse("named", m2); !errors.Is(err, core.ErrAbsentLayer) {
		t.Errorf("Analyse(Lightmap) error = %v, want ErrAbsentLayer", err)
	}
}

func TestUVReportSystem_AnalyseAll(t *testing.T) {
	var meshes []NamedMesh
	for i := 0; i < 6; i++ {
		m := bmesh.NewMesh()
		if i != 3 {
			if _, err := m.AddUVLayer("UVMap"); err != nil {
				t.Fatal(err)
			}
		}
		for q := 0; q <= i; q++ {
			addQuad(t, m, float32(2*q), math.NewVec2(float32(2*q), 0), false)
		}
		meshes = append(meshes, NamedMesh{Name: string(rune('a' + i)), Mesh: m})
	}

	reports, err := newReportSystem(t, &UVReportSystemConfig{}).AnalyseAll(meshes)
	if !errors.Is(err, core.ErrAbsentLayer) {
		t.Errorf("AnalyseAll() error = %v, want the missing layer of mesh d", err)
	}
	if len(reports) != len(meshes) {
		t.Fatalf("AnalyseAll() = %d reports, want %d", len(reports), len(meshes))
	}
	for i, r := range reports {
		if r == nil || r.Name != meshes[i].Name || r.Faces != i+1 {
			t.Errorf("report %d = %+v, want %d faces of %s", i, r, i+1, meshes[i].Name)
			continue
		}
		if i != 3 && len(r.Islands) != i+1 {
			t.Errorf("report %d: %d islands, want %d", i, len(r.Islands), i+1)
		}
	}
}
