package geo

import "math"

// Point2D is a point in the horizontal XY plane of the reactor (Z is the core axis).
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a shorthand constructor for Point2D.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// FromPolar converts an angle (radians) and a radius to local offset
// coordinates. The angle is measured from the +Y axis towards +X, which is the
// convention the block placement uses: (r·sin θ, r·cos θ).
func FromPolar(theta, r float64) Point2D {
	return Point2D{X: r * math.Sin(theta), Y: r * math.Cos(theta)}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Length returns the Euclidean distance from the origin.
func (p Point2D) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Radius returns the radial distance of (x, y) from the core centerline.
func Radius(x, y float64) float64 {
	return Pt(x, y).Length()
}
