package systems

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/uvmesh/engine/bmesh"
	"github.com/spaghettifunk/uvmesh/engine/math"
)

var errNoSuchMesh = errors.New("no such mesh")

// mapSource serves meshes built on demand, keyed by path.
type mapSource map[string]func() *bmesh.Mesh

func (s mapSource) LoadAsset(path string) (*bmesh.Mesh, error) {
	build, ok := s[path]
	if !ok {
		return nil, errNoSuchMesh
	}
	return build(), nil
}

func TestMeshLoaderSystem_LoadAll(t *testing.T) {
	src := mapSource{
		"a": bmesh.NewMesh,
		"b": bmesh.NewMesh,
		"c": bmesh.NewMesh,
	}
	js, err := NewJobSystem(3, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer js.Shutdown()
	mls, err := NewMeshLoaderSystem(src, js)
	if err != nil {
		t.Fatal(err)
	}

	meshes, err := mls.LoadAll([]string{"c", "missing", "a", "b"})
	if !errors.Is(err, errNoSuchMesh) {
		t.Errorf("LoadAll() error = %v, want errNoSuchMesh", err)
	}
	var names []string
	for _, nm := range meshes {
		names = append(names, nm.Name)
	}
	if len(names) != 3 || names[0] != "c" || names[1] != "a" || names[2] != "b" {
		t.Errorf("LoadAll() names = %v, want [c a b]", names)
	}

	if _, err := NewMeshLoaderSystem(nil, js); err == nil {
		t.Error("NewMeshLoaderSystem(nil) should fail")
	}
}

func TestSystemManager_Inspect(t *testing.T) {
	quad := bmesh.NewMesh()
	if _, err := quad.AddUVLayer("UVMap"); err != nil {
		t.Fatal(err)
	}
	addQuad(t, quad, 0, math.NewVec2Zero(), false)
	src := mapSource{"quad": func() *bmesh.Mesh { return quad }}
	sm, err := NewSystemManager(&SystemManagerConfig{Workers: 2, QueueSize: 2}, src)
	if err != nil {
		t.Fatalf("NewSystemManager() error = %v", err)
	}

	reports, err := sm.Inspect([]string{"quad", "gone"})
	if !errors.Is(err, errNoSuchMesh) {
		t.Errorf("Inspect() error = %v, want errNoSuchMesh", err)
	}
	if len(reports) != 1 || reports[0].Name != "quad" || reports[0].UVArea != 1 {
		t.Errorf("Inspect() reports = %+v", reports)
	}

	if err := sm.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if _, err := sm.Inspect([]string{"quad"}); !errors.Is(err, ErrJobSystemClosed) {
		t.Errorf("Inspect() after Shutdown error = %v, want ErrJobSystemClosed", err)
	}

	if _, err := NewSystemManager(&SystemManagerConfig{Workers: 0}, src); !errors.Is(err, ErrNoWorkers) {
		t.Errorf("NewSystemManager(0 workers) error = %v, want ErrNoWorkers", err)
	}
}
