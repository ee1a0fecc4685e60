// Package geom provides shared 2D geometry helpers for posture analysis.
//
// All coordinates are normalized to the image extent: x increases to the
// right, y increases upward, both in [0,1]. Callers using a y-down image
// convention must flip y before constructing points.
package geom

import "math"

// Point is a 2D point or vector in normalized image coordinates.
type Point struct {
	X float64
	Y float64
}

// Sub returns the vector p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Norm returns the Euclidean length of p treated as a vector.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// IsZero reports whether p is the zero vector.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Clamp limits v to the range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// AngleBetweenDeg returns the angle between vectors a and b in degrees,
// in [0,180]. The arccos argument is clamped to [-1,1] so floating point
// drift never produces NaN. Returns 0 if either vector is zero length.
func AngleBetweenDeg(a, b Point) float64 {
	na := a.Norm()
	nb := b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	cos := (a.X*b.X + a.Y*b.Y) / (na * nb)
	return Degrees(math.Acos(Clamp(cos, -1, 1)))
}
