package core

import (
	"errors"
)

var (
	ErrAbsentLayer      = errors.New("uv layer does not exist")
	ErrStaleOffsets     = errors.New("uv offsets resolved against an older attribute layout")
	ErrLayerExists      = errors.New("uv layer already exists")
	ErrInvalidTopology  = errors.New("invalid mesh topology")
	ErrInvalidElement   = errors.New("mesh element does not exist")
	ErrFaceTooSmall     = errors.New("face needs at least 3 vertices")
	ErrDuplicateVert    = errors.New("face uses the same vertex more than once")
	ErrFaceExists       = errors.New("face already exists")
	ErrUnknownAssetType = errors.New("unknown asset type")
)
