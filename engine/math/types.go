package math

const (
	/** @brief Larger than any coordinate a mesh is expected to hold. */
	K_INFINITY float32 = 1e30
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 1.0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

// Vec2 is a point or direction in UV space.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a point or direction in object space.
type Vec3 struct {
	X, Y, Z float32
}

/**
 * @brief Axis aligned bounds of a set of 2d points. The zero value is a
 * degenerate box at the origin; use NewExtents2DEmpty to start an
 * accumulation.
 */
type Extents2D struct {
	Min Vec2
	Max Vec2
}
