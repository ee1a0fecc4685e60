// Package orientation classifies subject orientation from shoulder and ear
// visibility, gating whether a frame is usable as a side profile.
package orientation

import (
	"github.com/banshee-data/posture.report/internal/pose"
)

// Orientation represents the subject's facing relative to the camera.
type Orientation string

const (
	// SidewaysLeft indicates the subject's left side faces the camera.
	SidewaysLeft Orientation = "sideways_left"
	// SidewaysRight indicates the subject's right side faces the camera.
	SidewaysRight Orientation = "sideways_right"
	// Front indicates the subject faces the camera.
	Front Orientation = "front"
	// Back indicates the subject faces away from the camera.
	Back Orientation = "back"
	// Unknown indicates the orientation could not be determined.
	Unknown Orientation = "unknown"
)

// Default visibility thresholds (confidence units). Comparisons are strict
// so exact threshold equality counts as "not exceeding"; this avoids
// verdicts flapping at the boundary.
const (
	DefaultVisibilityThreshold float32 = 0.5
	DefaultOcclusionThreshold  float32 = 0.1
)

// Verdict is the result of orientation detection for one frame.
type Verdict struct {
	Orientation    Orientation `json:"orientation"`
	SideConfidence float32     `json:"side_confidence"`
}

// IsSideView reports whether the verdict represents a usable side profile.
func (v Verdict) IsSideView() bool {
	return v.Orientation == SidewaysLeft || v.Orientation == SidewaysRight
}

// Config holds tunable thresholds for the gate.
type Config struct {
	VisibilityThreshold float32 // joint clearly visible above this
	OcclusionThreshold  float32 // joint clearly hidden below this
}

// DefaultConfig returns the standard gate thresholds.
func DefaultConfig() Config {
	return Config{
		VisibilityThreshold: DefaultVisibilityThreshold,
		OcclusionThreshold:  DefaultOcclusionThreshold,
	}
}

// Gate detects subject orientation from keypoint frames. It is stateless
// and safe for concurrent use.
type Gate struct {
	visibility float32
	occlusion  float32
}

// NewGate creates a gate with the given thresholds. Zero thresholds fall
// back to the defaults.
func NewGate(cfg Config) *Gate {
	if cfg.VisibilityThreshold == 0 {
		cfg.VisibilityThreshold = DefaultVisibilityThreshold
	}
	if cfg.OcclusionThreshold == 0 {
		cfg.OcclusionThreshold = DefaultOcclusionThreshold
	}
	return &Gate{visibility: cfg.VisibilityThreshold, occlusion: cfg.OcclusionThreshold}
}

// Detect classifies the subject's orientation for one frame.
//
// A clearly visible shoulder paired with a clearly occluded opposite
// shoulder indicates a side view. Both shoulders visible means the subject
// faces toward or away from the camera; the ears disambiguate which.
func (g *Gate) Detect(f pose.Frame) Verdict {
	left, leftOK := f.Lookup(pose.LeftShoulder)
	right, rightOK := f.Lookup(pose.RightShoulder)
	if !leftOK || !rightOK {
		return Verdict{Orientation: Unknown}
	}

	v := Verdict{SideConfidence: g.sideConfidence(left.Confidence, right.Confidence)}
	switch {
	case left.Confidence > g.visibility && right.Confidence < g.occlusion:
		v.Orientation = SidewaysLeft
	case right.Confidence > g.visibility && left.Confidence < g.occlusion:
		v.Orientation = SidewaysRight
	case left.Confidence > g.visibility && right.Confidence > g.visibility:
		if f.Confidence(pose.LeftEar) > g.visibility && f.Confidence(pose.RightEar) > g.visibility {
			v.Orientation = Front
		} else {
			v.Orientation = Back
		}
	default:
		v.Orientation = Unknown
	}
	return v
}

// sideConfidence measures how strongly the shoulder confidences disagree.
// The signal is only meaningful when one shoulder is clearly visible and
// the other clearly hidden; otherwise there is no side-view signal and the
// confidence is 0.
func (g *Gate) sideConfidence(left, right float32) float32 {
	max, min := left, right
	if right > left {
		max, min = right, left
	}
	if max > g.visibility && min < g.occlusion {
		return max - min
	}
	return 0
}

// Detect classifies orientation using the default thresholds.
func Detect(f pose.Frame) Verdict {
	return defaultGate.Detect(f)
}

var defaultGate = NewGate(DefaultConfig())
