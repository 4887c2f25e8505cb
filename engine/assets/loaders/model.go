package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spaghettifunk/uvmesh/engine/bmesh"
	"github.com/spaghettifunk/uvmesh/engine/core"
	"github.com/spaghettifunk/uvmesh/engine/math"
)

// DefaultUVLayerName is the layer the texture coordinates of a model end
// up in.
const DefaultUVLayerName = "UVMap"

var ErrMalformedOBJ = errors.New("malformed obj")

// ModelLoader reads Wavefront OBJ files.
type ModelLoader struct {
	// UVLayerName overrides DefaultUVLayerName when set.
	UVLayerName string
}

func (ml *ModelLoader) Load(path string) (*bmesh.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	m, err := ml.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

type objCorner struct {
	v, vt int // zero based, vt is -1 when missing
}

type objFace struct {
	line    int
	corners []objCorner
}

// Parse builds a mesh out of the v, vt and f statements of an OBJ stream.
// Every other statement is ignored. Faces the mesh cannot hold (less than
// 3 corners, a repeated vertex, a copy of another face) are skipped with
// a warning.
func (ml *ModelLoader) Parse(r io.Reader) (*bmesh.Mesh, error) {
	var (
		positions []math.Vec3
		uvs       []math.Vec2
		faces     []objFace
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			positions = append(positions, math.NewVec3(p[0], p[1], p[2]))
		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			uvs = append(uvs, math.NewVec2(p[0], p[1]))
		case "f":
			corners := make([]objCorner, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				c, err := parseCorner(ref, len(positions), len(uvs))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				corners = append(corners, c)
			}
			faces = append(faces, objFace{line: lineNo, corners: corners})
		case "vn", "vp", "o", "g", "s", "usemtl", "mtllib", "l", "p":
			// geometry the mesh does not carry
		default:
			core.LogDebug("obj line %d: unsupported statement '%s'", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return ml.build(positions, uvs, faces)
}

func (ml *ModelLoader) build(positions []math.Vec3, uvs []math.Vec2, faces []objFace) (*bmesh.Mesh, error) {
	m := bmesh.NewMesh()
	verts := make([]bmesh.VertID, len(positions))
	for i, p := range positions {
		verts[i] = m.AddVert(p)
	}

	o := bmesh.AbsentUVOffsets
	if len(uvs) > 0 {
		name := ml.UVLayerName
		if name == "" {
			name = DefaultUVLayerName
		}
		if _, err := m.AddUVLayer(name); err != nil {
			return nil, err
		}
		o = bmesh.GetUVOffsets(m)
	}

	fv := make([]bmesh.VertID, 0, 8)
	for _, face := range faces {
		fv = fv[:0]
		for _, c := range face.corners {
			fv = append(fv, verts[c.v])
		}
		f, err := m.AddFace(fv)
		if err != nil {
			if errors.Is(err, core.ErrInvalidElement) {
				return nil, err
			}
			core.LogWarn("obj line %d: skipping face: %s", face.line, err)
			continue
		}
		if !o.Valid() {
			continue
		}
		i := 0
		for l := range m.FaceLoops(f) {
			if vt := face.corners[i].vt; vt >= 0 {
				bmesh.SetLoopUV(m, l, o, uvs[vt])
			}
			i++
		}
	}
	return m, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d: %w", n, len(fields), ErrMalformedOBJ)
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value '%s': %w", fields[i], ErrMalformedOBJ)
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseCorner decodes one of v, v/vt, v//vn or v/vt/vn. Indices are one
// based; negative ones count back from the last element read so far.
func parseCorner(ref string, nv, nvt int) (objCorner, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 {
		return objCorner{}, fmt.Errorf("invalid face corner '%s': %w", ref, ErrMalformedOBJ)
	}
	v, err := resolveIndex(parts[0], nv)
	if err != nil {
		return objCorner{}, fmt.Errorf("face corner '%s': %w", ref, err)
	}
	c := objCorner{v: v, vt: -1}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], nvt); err != nil {
			return objCorner{}, fmt.Errorf("face corner '%s': %w", ref, err)
		}
	}
	return c, nil
}

func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index '%s': %w", s, ErrMalformedOBJ)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("index %d out of range [1, %d]: %w", i, n, ErrMalformedOBJ)
}
