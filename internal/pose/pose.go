// Package pose defines the keypoint data model consumed by the orientation
// gate and the posture classifier.
//
// A Frame is the per-image output of an external pose-detection pipeline:
// a mapping from named body joints to observed keypoints. Coordinates are
// normalized to the image extent with x increasing to the right and y
// increasing upward. Detectors that report y-down coordinates must flip y
// before building a Frame.
package pose

import (
	"math"

	"github.com/banshee-data/posture.report/internal/geom"
)

// Joint identifies a named body landmark.
type Joint string

// The closed set of joints used for posture analysis. Joints a detector
// does not report are simply absent from the frame.
const (
	Neck          Joint = "neck"
	LeftEar       Joint = "left_ear"
	RightEar      Joint = "right_ear"
	LeftShoulder  Joint = "left_shoulder"
	RightShoulder Joint = "right_shoulder"
	LeftHip       Joint = "left_hip"
	RightHip      Joint = "right_hip"
	Root          Joint = "root"
)

// AllJoints contains every joint the analysis layer understands.
var AllJoints = []Joint{
	Neck, LeftEar, RightEar, LeftShoulder, RightShoulder, LeftHip, RightHip, Root,
}

// Valid reports whether j is one of the known joints.
func (j Joint) Valid() bool {
	for _, known := range AllJoints {
		if j == known {
			return true
		}
	}
	return false
}

// Keypoint is a single joint observation: a normalized 2D location plus the
// detector's confidence in [0,1].
type Keypoint struct {
	X          float64
	Y          float64
	Confidence float32
}

// Finite reports whether all numeric fields of the keypoint are finite.
func (k Keypoint) Finite() bool {
	return !math.IsNaN(k.X) && !math.IsInf(k.X, 0) &&
		!math.IsNaN(k.Y) && !math.IsInf(k.Y, 0) &&
		!math.IsNaN(float64(k.Confidence)) && !math.IsInf(float64(k.Confidence), 0)
}

// Point returns the keypoint location as a geometry point.
func (k Keypoint) Point() geom.Point {
	return geom.Point{X: k.X, Y: k.Y}
}

// Frame is one image's worth of joint observations. Frames are built once
// per detection and treated as immutable by the analysis layer; nothing
// below this package retains a reference across calls.
type Frame map[Joint]Keypoint

// Lookup returns the keypoint for j. Absence is an ordinary not-present
// case, not an error.
func (f Frame) Lookup(j Joint) (Keypoint, bool) {
	k, ok := f[j]
	return k, ok
}

// Confidence returns the confidence for j, or 0 if the joint is absent.
func (f Frame) Confidence(j Joint) float32 {
	return f[j].Confidence
}

// Has reports whether j is present in the frame.
func (f Frame) Has(j Joint) bool {
	_, ok := f[j]
	return ok
}
