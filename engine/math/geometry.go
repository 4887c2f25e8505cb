package math

/**
 * @brief Returns the contribution of the directed edge a->b to the
 * shoelace sum of a polygon. Summing this over every edge of a closed
 * polygon gives twice its signed area (positive for counter-clockwise).
 */
func ShoelaceTermV2(a, b Vec2) float32 {
	return a.X*b.Y - b.X*a.Y
}

/**
 * @brief Reports whether the horizontal ray cast from p towards +X crosses
 * the edge a->b. Each edge is treated as half-open in Y (the lower end point
 * is included, the upper one is not) so that a ray passing exactly through
 * a polygon vertex is counted once.
 */
func RayCrossesEdgeV2(p, a, b Vec2) bool {
	if (a.Y > p.Y) == (b.Y > p.Y) {
		return false
	}
	// a.Y != b.Y is guaranteed by the test above.
	x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
	return p.X < x
}

/**
 * @brief Returns the contribution of the edge a->b to a polygon normal
 * computed with Newell's method.
 */
func NewellTermV3(a, b Vec3) Vec3 {
	return Vec3{
		(a.Y - b.Y) * (a.Z + b.Z),
		(a.Z - b.Z) * (a.X + b.X),
		(a.X - b.X) * (a.Y + b.Y),
	}
}

// PolyCrossV2 returns the signed area of the closed polygon pts.
func PolyCrossV2(pts []Vec2) float32 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	sum := float32(0)
	prev := pts[n-1]
	for _, curr := range pts {
		sum += ShoelaceTermV2(prev, curr)
		prev = curr
	}
	return sum * 0.5
}

// PointInPolyV2 is an even-odd point in polygon test over pts.
func PointInPolyV2(p Vec2, pts []Vec2) bool {
	n := len(pts)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if RayCrossesEdgeV2(p, pts[j], pts[i]) {
			inside = !inside
		}
	}
	return inside
}
