package bmesh

import (
	"encoding/binary"
	m "math"

	"github.com/spaghettifunk/uvmesh/engine/math"
)

type layerType uint8

const (
	layerFloat2 layerType = iota
	layerBool
)

func (t layerType) size() int {
	switch t {
	case layerFloat2:
		return 8
	case layerBool:
		return 1
	}
	return 0
}

// Flag layers of a UV map are named after the map.
const (
	uvSelectVertPrefix = ".vs."
	uvSelectEdgePrefix = ".es."
	uvPinPrefix        = ".pn."
)

type layer struct {
	name   string
	typ    layerType
	offset int
}

// customData stores one fixed-size attribute block per loop slot in a
// single byte slice. Layers are located by their byte offset in a block.
type customData struct {
	layers []layer
	stride int
	blocks []byte
	// layout changes whenever offsets move. Offsets resolved for one
	// layout are meaningless for another.
	layout uint64
	// activeUV indexes the float2 layers only.
	activeUV int
}

func newCustomData() customData {
	return customData{activeUV: -1}
}

func (cd *customData) blockCount() int {
	if cd.stride == 0 {
		return 0
	}
	return len(cd.blocks) / cd.stride
}

// allocBlock makes sure slot has a zeroed block.
func (cd *customData) allocBlock(slot int) {
	if cd.stride == 0 {
		return
	}
	start := slot * cd.stride
	end := start + cd.stride
	if end > cap(cd.blocks) {
		grown := make([]byte, len(cd.blocks), max(end, 2*cap(cd.blocks)))
		copy(grown, cd.blocks)
		cd.blocks = grown
	}
	if end > len(cd.blocks) {
		cd.blocks = cd.blocks[:end]
	}
	clear(cd.blocks[start:end])
}

func (cd *customData) layerIndex(name string, typ layerType) int {
	for i, l := range cd.layers {
		if l.name == name && l.typ == typ {
			return i
		}
	}
	return -1
}

// relayout rebuilds every block for newLayers, keeping the values of
// layers present in both layouts.
func (cd *customData) relayout(newLayers []layer, slots int) {
	stride := 0
	for i := range newLayers {
		newLayers[i].offset = stride
		stride += newLayers[i].typ.size()
	}
	blocks := make([]byte, slots*stride)
	oldCount := cd.blockCount()
	for _, nl := range newLayers {
		oi := cd.layerIndex(nl.name, nl.typ)
		if oi < 0 {
			continue
		}
		ol := cd.layers[oi]
		size := nl.typ.size()
		for s := 0; s < slots && s < oldCount; s++ {
			src := cd.blocks[s*cd.stride+ol.offset:]
			dst := blocks[s*stride+nl.offset:]
			copy(dst[:size], src[:size])
		}
	}
	cd.layers = newLayers
	cd.stride = stride
	cd.blocks = blocks
	cd.layout++
}

func (cd *customData) addLayer(name string, typ layerType, slots int) int {
	layers := make([]layer, 0, len(cd.layers)+1)
	layers = append(layers, cd.layers...)
	layers = append(layers, layer{name: name, typ: typ})
	cd.relayout(layers, slots)
	return len(layers) - 1
}

func (cd *customData) removeLayers(slots int, drop func(layer) bool) {
	layers := make([]layer, 0, len(cd.layers))
	for _, l := range cd.layers {
		if !drop(l) {
			layers = append(layers, l)
		}
	}
	cd.relayout(layers, slots)
}

// bytesAt returns the size bytes at offset of slot, or nil when the
// offset does not fit the current layout.
func (cd *customData) bytesAt(slot, offset, size int) []byte {
	if slot < 0 || offset < 0 || offset+size > cd.stride {
		return nil
	}
	start := slot*cd.stride + offset
	if start+size > len(cd.blocks) {
		return nil
	}
	return cd.blocks[start : start+size]
}

func (cd *customData) float2(slot, offset int) math.Vec2 {
	b := cd.bytesAt(slot, offset, 8)
	if b == nil {
		return math.NewVec2Zero()
	}
	return math.Vec2{
		X: m.Float32frombits(binary.LittleEndian.Uint32(b[0:4])),
		Y: m.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
	}
}

func (cd *customData) setFloat2(slot, offset int, v math.Vec2) {
	b := cd.bytesAt(slot, offset, 8)
	if b == nil {
		return
	}
	binary.LittleEndian.PutUint32(b[0:4], m.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:8], m.Float32bits(v.Y))
}

func (cd *customData) getBool(slot, offset int) bool {
	b := cd.bytesAt(slot, offset, 1)
	return b != nil && b[0] != 0
}

func (cd *customData) setBool(slot, offset int, v bool) {
	b := cd.bytesAt(slot, offset, 1)
	if b == nil {
		return
	}
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
}

// uvLayers returns the indices into cd.layers of the float2 layers, in
// UV layer order.
func (cd *customData) uvLayers() []int {
	var out []int
	for i, l := range cd.layers {
		if l.typ == layerFloat2 {
			out = append(out, i)
		}
	}
	return out
}
