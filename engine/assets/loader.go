package assets

import "github.com/spaghettifunk/uvmesh/engine/bmesh"

type Loader interface {
	Load(path string) (*bmesh.Mesh, error)
}

type AssetType int

const (
	AssetTypeNone AssetType = iota
	AssetTypeModel
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeModel:
		return "model"
	default:
		return "none"
	}
}
