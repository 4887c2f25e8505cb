package bmesh

import (
	"fmt"

	"github.com/spaghettifunk/uvmesh/engine/core"
	"github.com/spaghettifunk/uvmesh/engine/math"
)

// UVOffsets is the set of per-loop block offsets of one UV map, resolved
// once and handed to every UV query. A field is -1 when the layer it
// refers to does not exist.
//
// Offsets are tied to the attribute layout they were resolved against:
// adding or removing any layer invalidates them.
type UVOffsets struct {
	UV         int
	SelectVert int
	SelectEdge int
	Pin        int

	layout uint64
}

// AbsentUVOffsets is returned when no UV map could be resolved.
var AbsentUVOffsets = UVOffsets{UV: -1, SelectVert: -1, SelectEdge: -1, Pin: -1}

// Valid reports whether the UV coordinate offset exists.
func (o UVOffsets) Valid() bool {
	return o.UV >= 0
}

// GetUVOffsets resolves the offsets of the active UV map.
func GetUVOffsets(m *Mesh) UVOffsets {
	return GetUVOffsetsN(m, -1)
}

// GetUVOffsetsN resolves the offsets of UV map index, or of the active
// map when index is -1.
func GetUVOffsetsN(m *Mesh, index int) UVOffsets {
	uvs := m.ldata.uvLayers()
	if index == -1 {
		index = m.ldata.activeUV
	}
	if index < 0 || index >= len(uvs) {
		return AbsentUVOffsets
	}
	uv := m.ldata.layers[uvs[index]]
	offsetOf := func(prefix string) int {
		if i := m.ldata.layerIndex(prefix+uv.name, layerBool); i >= 0 {
			return m.ldata.layers[i].offset
		}
		return -1
	}
	return UVOffsets{
		UV:         uv.offset,
		SelectVert: offsetOf(uvSelectVertPrefix),
		SelectEdge: offsetOf(uvSelectEdgePrefix),
		Pin:        offsetOf(uvPinPrefix),
		layout:     m.ldata.layout,
	}
}

// CheckUVOffsets reports whether o can still be used with m.
func (m *Mesh) CheckUVOffsets(o UVOffsets) error {
	if !o.Valid() {
		return core.ErrAbsentLayer
	}
	if o.layout != m.ldata.layout {
		return core.ErrStaleOffsets
	}
	return nil
}

// AddUVLayer adds a UV map and returns its index. The first map added
// becomes the active one.
func (m *Mesh) AddUVLayer(name string) (int, error) {
	if m.UVLayerIndex(name) >= 0 {
		return -1, fmt.Errorf("add uv layer %q: %w", name, core.ErrLayerExists)
	}
	m.ldata.addLayer(name, layerFloat2, len(m.loops))
	index := m.UVLayerCount() - 1
	if m.ldata.activeUV < 0 {
		m.ldata.activeUV = index
	}
	return index, nil
}

// RemoveUVLayer removes UV map index and its flag layers.
func (m *Mesh) RemoveUVLayer(index int) error {
	name, err := m.uvLayerName(index)
	if err != nil {
		return err
	}
	m.ldata.removeLayers(len(m.loops), func(l layer) bool {
		if l.typ == layerFloat2 {
			return l.name == name
		}
		return l.name == uvSelectVertPrefix+name ||
			l.name == uvSelectEdgePrefix+name ||
			l.name == uvPinPrefix+name
	})

	count := m.UVLayerCount()
	switch {
	case count == 0:
		m.ldata.activeUV = -1
	case m.ldata.activeUV > index:
		m.ldata.activeUV--
	case m.ldata.activeUV == index:
		m.ldata.activeUV = min(index, count-1)
	}
	return nil
}

// SetActiveUVLayer makes UV map index the one GetUVOffsets resolves.
func (m *Mesh) SetActiveUVLayer(index int) error {
	if _, err := m.uvLayerName(index); err != nil {
		return err
	}
	m.ldata.activeUV = index
	return nil
}

// ActiveUVLayer returns the index of the active UV map, or -1.
func (m *Mesh) ActiveUVLayer() int {
	return m.ldata.activeUV
}

// EnsureUVFlagLayers creates the select and pin layers of UV map index
// when they are missing.
func (m *Mesh) EnsureUVFlagLayers(index int) error {
	name, err := m.uvLayerName(index)
	if err != nil {
		return err
	}
	for _, prefix := range []string{uvSelectVertPrefix, uvSelectEdgePrefix, uvPinPrefix} {
		if m.ldata.layerIndex(prefix+name, layerBool) < 0 {
			m.ldata.addLayer(prefix+name, layerBool, len(m.loops))
		}
	}
	return nil
}

func (m *Mesh) UVLayerCount() int {
	return len(m.ldata.uvLayers())
}

// UVLayerName returns the name of UV map index, or "" when it does not exist.
func (m *Mesh) UVLayerName(index int) string {
	name, _ := m.uvLayerName(index)
	return name
}

// UVLayerIndex returns the index of the UV map called name, or -1.
func (m *Mesh) UVLayerIndex(name string) int {
	for i, li := range m.ldata.uvLayers() {
		if m.ldata.layers[li].name == name {
			return i
		}
	}
	return -1
}

func (m *Mesh) uvLayerName(index int) (string, error) {
	uvs := m.ldata.uvLayers()
	if index < 0 || index >= len(uvs) {
		return "", fmt.Errorf("uv layer %d: %w", index, core.ErrAbsentLayer)
	}
	return m.ldata.layers[uvs[index]].name, nil
}

// ------------------------------------------
// Per loop accessors
// ------------------------------------------

// LoopUV returns the UV coordinate of l, or zero when o is absent.
func LoopUV(m *Mesh, l LoopID, o UVOffsets) math.Vec2 {
	if !o.Valid() {
		return math.NewVec2Zero()
	}
	return m.ldata.float2(int(l), o.UV)
}

func SetLoopUV(m *Mesh, l LoopID, o UVOffsets, uv math.Vec2) {
	if !o.Valid() {
		return
	}
	m.ldata.setFloat2(int(l), o.UV, uv)
}

func LoopUVPinned(m *Mesh, l LoopID, o UVOffsets) bool {
	return m.ldata.getBool(int(l), o.Pin)
}

func SetLoopUVPinned(m *Mesh, l LoopID, o UVOffsets, pinned bool) {
	m.ldata.setBool(int(l), o.Pin, pinned)
}

func LoopUVVertSelected(m *Mesh, l LoopID, o UVOffsets) bool {
	return m.ldata.getBool(int(l), o.SelectVert)
}

func SetLoopUVVertSelected(m *Mesh, l LoopID, o UVOffsets, selected bool) {
	m.ldata.setBool(int(l), o.SelectVert, selected)
}

func LoopUVEdgeSelected(m *Mesh, l LoopID, o UVOffsets) bool {
	return m.ldata.getBool(int(l), o.SelectEdge)
}

func SetLoopUVEdgeSelected(m *Mesh, l LoopID, o UVOffsets, selected bool) {
	m.ldata.setBool(int(l), o.SelectEdge, selected)
}
