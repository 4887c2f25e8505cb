package systems

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/golang/geo/r2"
	"github.com/google/uuid"

	"github.com/spaghettifunk/uvmesh/engine/bmesh"
	"github.com/spaghettifunk/uvmesh/engine/core"
	"github.com/spaghettifunk/uvmesh/engine/math"
)

type UVReportSystemConfig struct {
	// Layer is the UV map to inspect, the active one when empty.
	Layer string
	// Aspect scales UVs before measuring lengths.
	Aspect math.Vec2
	// ShareLimit is how far apart, per axis, two UVs may be and still be
	// considered connected.
	ShareLimit math.Vec2
}

// IslandOverlap names two islands whose UV bounds overlap.
type IslandOverlap struct {
	A, B int
	Area float64
}

type UVReport struct {
	ID     uuid.UUID
	Name   string
	MeshID uuid.UUID

	Faces int
	Edges int
	Loops int

	UVLayers []string
	Layer    string

	FlippedFaces    int
	DegenerateFaces int
	UVArea          float32
	Bounds          math.Extents2D
	WeightedCenter  math.Vec2

	Islands  []bmesh.UVIsland
	Seams    int
	Overlaps []IslandOverlap

	Duration time.Duration
}

// NamedMesh pairs a mesh with the name it is reported under.
type NamedMesh struct {
	Name string
	Mesh *bmesh.Mesh
}

type UVReportSystem struct {
	config    UVReportSystemConfig
	jobSystem *JobSystem
}

func NewUVReportSystem(config *UVReportSystemConfig, js *JobSystem) (*UVReportSystem, error) {
	if config == nil {
		return nil, fmt.Errorf("uv report system requires a config")
	}
	if js == nil {
		return nil, fmt.Errorf("uv report system requires a job system")
	}
	cfg := *config
	if cfg.Aspect.X <= 0 || cfg.Aspect.Y <= 0 {
		cfg.Aspect = math.NewVec2One()
	}
	if cfg.ShareLimit.X < 0 || cfg.ShareLimit.Y < 0 {
		cfg.ShareLimit = bmesh.DefaultUVLimit
	}
	return &UVReportSystem{
		config:    cfg,
		jobSystem: js,
	}, nil
}

func (rs *UVReportSystem) Shutdown() error {
	return nil
}

func (rs *UVReportSystem) offsets(m *bmesh.Mesh) (bmesh.UVOffsets, string, error) {
	if rs.config.Layer == "" {
		idx := m.ActiveUVLayer()
		if idx < 0 {
			return bmesh.AbsentUVOffsets, "", core.ErrAbsentLayer
		}
		return bmesh.GetUVOffsets(m), m.UVLayerName(idx), nil
	}
	idx := m.UVLayerIndex(rs.config.Layer)
	if idx < 0 {
		return bmesh.AbsentUVOffsets, "", fmt.Errorf("layer '%s': %w", rs.config.Layer, core.ErrAbsentLayer)
	}
	return bmesh.GetUVOffsetsN(m, idx), rs.config.Layer, nil
}

// Analyse builds the report of one mesh on the calling goroutine. A mesh
// without the requested UV layer still gets its element counts reported,
// along with core.ErrAbsentLayer.
func (rs *UVReportSystem) Analyse(name string, m *bmesh.Mesh) (*UVReport, error) {
	start := time.Now()
	r := &UVReport{
		ID:     uuid.New(),
		Name:   name,
		MeshID: m.ID,
		Faces:  m.FaceCount(),
		Edges:  m.EdgeCount(),
		Loops:  m.LoopCount(),
		Bounds: math.NewExtents2DEmpty(),
	}
	for i := 0; i < m.UVLayerCount(); i++ {
		r.UVLayers = append(r.UVLayers, m.UVLayerName(i))
	}

	o, layer, err := rs.offsets(m)
	if err != nil {
		r.Duration = time.Since(start)
		return r, err
	}
	r.Layer = layer

	var centerSum math.Vec2
	for f := range m.Faces() {
		cross := bmesh.FaceUVCross(m, f, o)
		if cross < 0 {
			r.FlippedFaces++
			cross = -cross
		}
		if cross <= bmesh.DegenerateUVArea {
			r.DegenerateFaces++
		}
		r.UVArea += cross
		bmesh.FaceUVMinMaxExpand(m, f, o, &r.Bounds)
		centerSum = centerSum.Add(bmesh.FaceUVCenterMedianWeighted(m, f, rs.config.Aspect, o))
	}
	if r.Faces > 0 {
		r.WeightedCenter = centerSum.MulScalar(1.0 / float32(r.Faces))
	}

	r.Islands = bmesh.CalcUVIslands(m, o, rs.config.ShareLimit)
	r.Seams = len(bmesh.UVSeamEdges(m, o, rs.config.ShareLimit))
	r.Overlaps = islandOverlaps(r.Islands)
	r.Duration = time.Since(start)
	return r, nil
}

func islandRect(isl bmesh.UVIsland) r2.Rect {
	return r2.RectFromPoints(
		r2.Point{X: float64(isl.Bounds.Min.X), Y: float64(isl.Bounds.Min.Y)},
		r2.Point{X: float64(isl.Bounds.Max.X), Y: float64(isl.Bounds.Max.Y)},
	)
}

// islandOverlaps lists the island pairs whose bounding boxes share
// interior. Boxes that only touch do not count.
func islandOverlaps(islands []bmesh.UVIsland) []IslandOverlap {
	rects := make([]r2.Rect, len(islands))
	for i, isl := range islands {
		rects[i] = islandRect(isl)
	}
	var out []IslandOverlap
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if !rects[i].InteriorIntersects(rects[j]) {
				continue
			}
			size := rects[i].Intersection(rects[j]).Size()
			out = append(out, IslandOverlap{A: i, B: j, Area: size.X * size.Y})
		}
	}
	return out
}

// AnalyseAll reports every mesh in parallel on the job system. Reports are
// returned in input order; the error joins the failures of every mesh.
func (rs *UVReportSystem) AnalyseAll(meshes []NamedMesh) ([]*UVReport, error) {
	reports := make([]*UVReport, len(meshes))
	errs := make([]error, len(meshes))

	var wg sync.WaitGroup
	for i, nm := range meshes {
		wg.Add(1)
		err := rs.jobSystem.Submit(JobTask{
			Name:        "uv report " + nm.Name,
			InputParams: nm,
			OnStart: func(params interface{}) (interface{}, error) {
				p := params.(NamedMesh)
				r, err := rs.Analyse(p.Name, p.Mesh)
				reports[i] = r
				return r, err
			},
			OnFailure: func(err error) {
				errs[i] = fmt.Errorf("%s: %w", nm.Name, err)
			},
			OnCompletionCallback: wg.Done,
		})
		if err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	return reports, errors.Join(errs...)
}

// Write prints r in a human readable form.
func (r *UVReport) Write(w io.Writer) error {
	var err error
	printf := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	printf("%s\n", r.Name)
	printf("  faces %d, edges %d, loops %d\n", r.Faces, r.Edges, r.Loops)
	if r.Layer == "" {
		printf("  uv layers: none\n")
		return err
	}
	printf("  uv layers: %v (inspecting '%s')\n", r.UVLayers, r.Layer)
	printf("  flipped faces %d, degenerate faces %d\n", r.FlippedFaces, r.DegenerateFaces)
	printf("  uv area %.6f", r.UVArea)
	if !r.Bounds.IsEmpty() {
		printf(", bounds (%.4f, %.4f)-(%.4f, %.4f)", r.Bounds.Min.X, r.Bounds.Min.Y, r.Bounds.Max.X, r.Bounds.Max.Y)
	}
	printf("\n")
	printf("  islands %d, seams %d\n", len(r.Islands), r.Seams)
	for _, o := range r.Overlaps {
		printf("  islands %d and %d overlap (%.6f)\n", o.A, o.B, o.Area)
	}
	return err
}
