package survivor

import "math"

// Vec3 is a world position supplied by the movement system
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Distance is the straight-line distance between two points
func (v Vec3) Distance(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Within reports whether o lies inside radius, boundary included
func (v Vec3) Within(o Vec3, radius float64) bool {
	return v.Distance(o) <= radius
}
