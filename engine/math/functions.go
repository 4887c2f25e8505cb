package math

import (
	m "math"
)

func ksqrt(x float32) float32 {
	return float32(m.Sqrt(float64(x)))
}

// ------------------------------------------
// Vector 2
// ------------------------------------------

/**
 * @brief Creates and returns a new 2-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @return A new 2-element vector.
 */
func NewVec2(x, y float32) Vec2 {
	return Vec2{
		X: x,
		Y: y,
	}
}

/**
 * @brief Creates and returns a 2-component vector with all components set to 0.0f.
 */
func NewVec2Zero() Vec2 {
	return Vec2{X: 0.0, Y: 0.0}
}

/**
 * @brief Creates and returns a 2-component vector with all components set to 1.0f.
 */
func NewVec2One() Vec2 {
	return Vec2{1.0, 1.0}
}

/**
 *  Adds other to v and returns a copy of the result.
 */
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

/**
 * Subtracts other from v and returns a copy of the result.
 */
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

/**
 *  Multiplies v by other and returns a copy of the result.
 */
func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

/**
 * Multiplies all elements of v by scalar and returns a copy of the result.
 */
func (v Vec2) MulScalar(scalar float32) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

/**
 * Divides v by other and returns a copy of the result.
 */
func (v Vec2) Div(other Vec2) Vec2 {
	return Vec2{v.X / other.X, v.Y / other.Y}
}

/**
 * Returns the squared length of the provided vector.
 */
func (v Vec2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

/**
 * @brief Returns the length of the provided vector.
 */
func (v Vec2) Length() float32 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Returns a normalized copy of the supplied vector. A zero
 * vector is returned unchanged.
 */
func (v Vec2) Normalized() Vec2 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return Vec2{v.X / length, v.Y / length}
}

/**
 * @brief Returns the z component of the 3D cross product of v and other,
 * i.e. the signed area of the parallelogram they span.
 */
func (v Vec2) Cross(other Vec2) float32 {
	return v.X*other.Y - v.Y*other.X
}

/**
 * @brief Returns the dot product between v and other.
 */
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 *
 * @param other The second vector.
 * @param tolerance The difference tolerance. Typically K_FLOAT_EPSILON or similar.
 * @return True if within tolerance; otherwise false.
 */
func (v Vec2) Compare(other Vec2, tolerance float32) bool {
	return v.CompareLimit(other, Vec2{tolerance, tolerance})
}

/**
 * @brief Same as Compare but with an independent tolerance per axis.
 *
 * @param other The second vector.
 * @param limit The per-axis difference tolerance.
 * @return True if within tolerance on both axes; otherwise false.
 */
func (v Vec2) CompareLimit(other Vec2, limit Vec2) bool {
	if Abs(v.X-other.X) > limit.X {
		return false
	}
	if Abs(v.Y-other.Y) > limit.Y {
		return false
	}
	return true
}

/**
 * @brief Returns the distance between v and other.
 */
func (v Vec2) Distance(other Vec2) float32 {
	d := Vec2{
		v.X - other.X,
		v.Y - other.Y}
	return d.Length()
}

/**
 * @brief Returns the squared distance between v and other.
 */
func (v Vec2) DistanceSquared(other Vec2) float32 {
	d := Vec2{
		v.X - other.X,
		v.Y - other.Y}
	return d.LengthSquared()
}

// IsNaN reports whether either component is NaN.
func (v Vec2) IsNaN() bool {
	return v.X != v.X || v.Y != v.Y
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @param z The z value.
 * @return A new 3-element vector.
 */
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 0.0f.
 */
func NewVec3Zero() Vec3 {
	return Vec3{0.0, 0.0, 0.0}
}

/**
 * @brief Adds other to v and returns a copy of the result.
 */
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		v.X + other.X,
		v.Y + other.Y,
		v.Z + other.Z}
}

/**
 * @brief Subtracts other from v and returns a copy of the result.
 */
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		v.X - other.X,
		v.Y - other.Y,
		v.Z - other.Z}
}

/**
 * @brief Multiplies all elements of v by scalar and returns a copy of the result.
 */
func (v Vec3) MulScalar(scalar float32) Vec3 {
	return Vec3{
		v.X * scalar,
		v.Y * scalar,
		v.Z * scalar}
}

/**
 * @brief Returns the squared length of the provided vector.
 */
func (v Vec3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

/**
 * @brief Returns the length of the provided vector.
 */
func (v Vec3) Length() float32 {
	return ksqrt(v.LengthSquared())
}

/**
 * @brief Returns a normalized copy of the supplied vector. A zero
 * vector is returned unchanged.
 */
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return Vec3{
		v.X / length,
		v.Y / length,
		v.Z / length}
}

/**
 * @brief Returns the dot product between the provided vectors.
 */
func (v Vec3) Dot(other Vec3) float32 {
	p := float32(0)
	p += v.X * other.X
	p += v.Y * other.Y
	p += v.Z * other.Z
	return p
}

/**
 * @brief Calculates and returns the cross product of the supplied vectors.
 * The cross product is a new vector which is orthoganal to both provided vectors.
 */
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 *
 * @param other The second vector.
 * @param tolerance The difference tolerance. Typically K_FLOAT_EPSILON or similar.
 * @return True if within tolerance; otherwise false.
 */
func (v Vec3) Compare(other Vec3, tolerance float32) bool {
	if Abs(v.X-other.X) > tolerance {
		return false
	}

	if Abs(v.Y-other.Y) > tolerance {
		return false
	}

	if Abs(v.Z-other.Z) > tolerance {
		return false
	}

	return true
}

/**
 * @brief Returns the distance between v and other.
 */
func (v Vec3) Distance(other Vec3) float32 {
	d := Vec3{
		v.X - other.X,
		v.Y - other.Y,
		v.Z - other.Z}
	return d.Length()
}

// ------------------------------------------
// Extents
// ------------------------------------------

/**
 * @brief Returns inverted extents (min = +inf, max = -inf) so that the first
 * Expand call snaps both corners to the expanded point.
 */
func NewExtents2DEmpty() Extents2D {
	return Extents2D{
		Min: Vec2{K_INFINITY, K_INFINITY},
		Max: Vec2{-K_INFINITY, -K_INFINITY},
	}
}

// Expand grows the extents to include p.
func (e *Extents2D) Expand(p Vec2) {
	e.Min.X = min(e.Min.X, p.X)
	e.Min.Y = min(e.Min.Y, p.Y)
	e.Max.X = max(e.Max.X, p.X)
	e.Max.Y = max(e.Max.Y, p.Y)
}

// Union grows the extents to include other.
func (e *Extents2D) Union(other Extents2D) {
	if other.IsEmpty() {
		return
	}
	e.Expand(other.Min)
	e.Expand(other.Max)
}

// IsEmpty reports whether nothing has been added to the extents yet.
func (e Extents2D) IsEmpty() bool {
	return e.Min.X > e.Max.X || e.Min.Y > e.Max.Y
}

// Contains reports whether p lies inside the extents, bounds inclusive.
func (e Extents2D) Contains(p Vec2) bool {
	return p.X >= e.Min.X && p.X <= e.Max.X && p.Y >= e.Min.Y && p.Y <= e.Max.Y
}

// Size returns the width and height of the extents.
func (e Extents2D) Size() Vec2 {
	if e.IsEmpty() {
		return NewVec2Zero()
	}
	return e.Max.Sub(e.Min)
}
