// Package testutil provides shared test fixtures for posture analysis.
//
// This package centralises keypoint frame builders so geometry expectations
// are defined once and reused across test files.
package testutil

import (
	"github.com/banshee-data/posture.report/internal/pose"
)

// GoodPostureFrame returns a fully visible, upright subject: the ear
// midpoint sits directly above the shoulder midpoint (CVA 90°), shoulders
// stack over hips (FSA 0°), and neck, shoulder midpoint and hip midpoint
// are collinear (kyphosis deviation 0°).
func GoodPostureFrame() pose.Frame {
	return pose.Frame{
		pose.LeftEar:       {X: 0.48, Y: 0.75, Confidence: 0.9},
		pose.RightEar:      {X: 0.52, Y: 0.75, Confidence: 0.9},
		pose.Neck:          {X: 0.5, Y: 0.65, Confidence: 0.95},
		pose.LeftShoulder:  {X: 0.45, Y: 0.6, Confidence: 0.9},
		pose.RightShoulder: {X: 0.55, Y: 0.6, Confidence: 0.9},
		pose.LeftHip:       {X: 0.46, Y: 0.35, Confidence: 0.85},
		pose.RightHip:      {X: 0.54, Y: 0.35, Confidence: 0.85},
		pose.Root:          {X: 0.5, Y: 0.35, Confidence: 0.9},
	}
}

// SlouchedFrame returns a subject with the head carried well forward
// (CVA ≈ 38.7°, moderate), shoulders ahead of the hips by 0.17 normalized
// (FSA ≈ 30.6°, mild), and a bent upper back (kyphosis deviation ≈ 55.8°,
// mild).
func SlouchedFrame() pose.Frame {
	return pose.Frame{
		pose.LeftEar:       {X: 0.63, Y: 0.72, Confidence: 0.8},
		pose.RightEar:      {X: 0.67, Y: 0.72, Confidence: 0.8},
		pose.Neck:          {X: 0.58, Y: 0.6, Confidence: 0.9},
		pose.LeftShoulder:  {X: 0.45, Y: 0.6, Confidence: 0.85},
		pose.RightShoulder: {X: 0.55, Y: 0.6, Confidence: 0.85},
		pose.LeftHip:       {X: 0.28, Y: 0.35, Confidence: 0.8},
		pose.RightHip:      {X: 0.38, Y: 0.35, Confidence: 0.8},
		pose.Root:          {X: 0.33, Y: 0.35, Confidence: 0.85},
	}
}

// SideViewFrame returns a subject in profile. With left set the left
// shoulder is clearly visible (0.8) and the right clearly occluded (0.05);
// otherwise mirrored.
func SideViewFrame(left bool) pose.Frame {
	visible, occluded := float32(0.8), float32(0.05)
	f := pose.Frame{
		pose.Neck:    {X: 0.5, Y: 0.65, Confidence: 0.9},
		pose.LeftHip: {X: 0.5, Y: 0.35, Confidence: 0.7},
		pose.Root:    {X: 0.5, Y: 0.35, Confidence: 0.8},
	}
	if left {
		f[pose.LeftShoulder] = pose.Keypoint{X: 0.5, Y: 0.6, Confidence: visible}
		f[pose.RightShoulder] = pose.Keypoint{X: 0.52, Y: 0.6, Confidence: occluded}
		f[pose.LeftEar] = pose.Keypoint{X: 0.5, Y: 0.75, Confidence: 0.85}
		f[pose.RightEar] = pose.Keypoint{X: 0.52, Y: 0.75, Confidence: 0.04}
	} else {
		f[pose.RightShoulder] = pose.Keypoint{X: 0.5, Y: 0.6, Confidence: visible}
		f[pose.LeftShoulder] = pose.Keypoint{X: 0.48, Y: 0.6, Confidence: occluded}
		f[pose.RightEar] = pose.Keypoint{X: 0.5, Y: 0.75, Confidence: 0.85}
		f[pose.LeftEar] = pose.Keypoint{X: 0.48, Y: 0.75, Confidence: 0.04}
	}
	return f
}

// FrontFrame returns a subject facing the camera: both shoulders and both
// ears clearly visible.
func FrontFrame() pose.Frame {
	return GoodPostureFrame()
}

// BackFrame returns a subject facing away: both shoulders clearly visible
// but both ears hidden.
func BackFrame() pose.Frame {
	f := GoodPostureFrame()
	f[pose.LeftEar] = pose.Keypoint{X: 0.48, Y: 0.75, Confidence: 0.2}
	f[pose.RightEar] = pose.Keypoint{X: 0.52, Y: 0.75, Confidence: 0.2}
	return f
}

// WithConfidence returns a copy of f with the confidence of joint j
// overridden. The input frame is not modified.
func WithConfidence(f pose.Frame, j pose.Joint, c float32) pose.Frame {
	out := Clone(f)
	k := out[j]
	k.Confidence = c
	out[j] = k
	return out
}

// Without returns a copy of f with joint j removed.
func Without(f pose.Frame, j pose.Joint) pose.Frame {
	out := Clone(f)
	delete(out, j)
	return out
}

// Clone returns a shallow copy of f.
func Clone(f pose.Frame) pose.Frame {
	out := make(pose.Frame, len(f))
	for j, k := range f {
		out[j] = k
	}
	return out
}
