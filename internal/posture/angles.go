package posture

import (
	"math"

	"github.com/banshee-data/posture.report/internal/geom"
	"github.com/banshee-data/posture.report/internal/pose"
)

// craniovertebralAngle computes the CVA in degrees, in [0,90].
//
// The angle is measured between the vertical and the line from the
// shoulder midpoint to the ear midpoint, in an image frame where y
// increases downward; the normalized y is flipped before computing. An ear
// midpoint directly above the shoulder midpoint yields 90° (upright); a
// head carried fully forward yields 0°.
func craniovertebralAngle(f pose.Frame) float64 {
	earMid := geom.Midpoint(f[pose.LeftEar].Point(), f[pose.RightEar].Point())
	shoulderMid := geom.Midpoint(f[pose.LeftShoulder].Point(), f[pose.RightShoulder].Point())

	dx := math.Abs(earMid.X - shoulderMid.X)
	dy := math.Abs((1 - earMid.Y) - (1 - shoulderMid.Y))
	return 90 - geom.Degrees(math.Atan2(dx, dy))
}

// forwardShoulderAngle approximates the FSA in degrees, in [0,90].
//
// This is a coarse linear approximation: the normalized horizontal offset
// between the shoulder and hip midpoints scaled by 180 and capped at 90°.
// It is not a true subtended angle like the other two checks; the
// approximation is kept pending a reviewed replacement formula.
func forwardShoulderAngle(f pose.Frame) float64 {
	shoulderMid := geom.Midpoint(f[pose.LeftShoulder].Point(), f[pose.RightShoulder].Point())
	hipMid := geom.Midpoint(f[pose.LeftHip].Point(), f[pose.RightHip].Point())

	return math.Min(90, 180*math.Abs(shoulderMid.X-hipMid.X))
}

// kyphosisDeviation computes the thoracic-kyphosis deviation in degrees,
// in [0,180].
//
// With an upright spine the vector neck→shoulderMid opposes the vector
// hipMid→shoulderMid (180° apart) and the deviation is 0. Degenerate
// frames where a vector collapses to zero length report no measurable
// deviation.
func kyphosisDeviation(f pose.Frame) float64 {
	neck := f[pose.Neck].Point()
	shoulderMid := geom.Midpoint(f[pose.LeftShoulder].Point(), f[pose.RightShoulder].Point())
	hipMid := geom.Midpoint(f[pose.LeftHip].Point(), f[pose.RightHip].Point())

	v1 := shoulderMid.Sub(neck)
	v2 := shoulderMid.Sub(hipMid)
	if v1.IsZero() || v2.IsZero() {
		return 0
	}
	return math.Abs(180 - geom.AngleBetweenDeg(v1, v2))
}
