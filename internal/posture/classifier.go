// Package posture computes geometric posture checks over keypoint frames.
//
// Each check kind maps to a fixed set of required joints, one scalar angle,
// and a three-tier severity table. The classifier is a pure function over
// an immutable frame: no state, no I/O, safe for concurrent use, and
// repeated calls on the same frame yield identical results.
package posture

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/posture.report/internal/pose"
)

// CheckKind identifies one of the posture checks.
type CheckKind string

const (
	// ForwardHead measures the craniovertebral angle (CVA).
	ForwardHead CheckKind = "forward_head"
	// RoundedShoulders measures the forward shoulder angle (FSA).
	RoundedShoulders CheckKind = "rounded_shoulders"
	// BackSlouch measures thoracic-kyphosis deviation.
	BackSlouch CheckKind = "back_slouch"
)

// AllCheckKinds lists every supported check.
var AllCheckKinds = []CheckKind{ForwardHead, RoundedShoulders, BackSlouch}

// Valid reports whether k names a supported check.
func (k CheckKind) Valid() bool {
	for _, known := range AllCheckKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Severity is the classification tier for an analyzed angle.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate_to_severe"
)

// DefaultMinJointConfidence is the confidence floor a required joint must
// strictly exceed for the check to run. At or below the floor the check
// fails closed with ErrInsufficientData; no partial or interpolated
// results are produced.
const DefaultMinJointConfidence float32 = 0.5

// ErrInsufficientData is returned when a required joint is missing or does
// not exceed the confidence floor. It is the only error kind at this
// layer; retrying means requesting a fresh frame from the capture side.
var ErrInsufficientData = errors.New("insufficient keypoint data")

// Result holds one completed posture analysis.
type Result struct {
	Kind           CheckKind `json:"kind"`
	AngleDegrees   float64   `json:"angle_degrees"`
	IsNormal       bool      `json:"is_normal"`
	Severity       Severity  `json:"severity"`
	Confidence     float32   `json:"confidence"`
	Recommendation string    `json:"recommendation"`
}

// Thresholds defines the severity cutoffs for one check kind.
//
// When LargerIsBetter is set the angle is healthy above NormalCutoff and
// mild down to MildCutoff (forward head: a large CVA is upright). When
// unset the angle is healthy below NormalCutoff and mild up to MildCutoff.
// The comparison directions are part of the clinical definition and are
// inverted between checks; do not normalize them away.
type Thresholds struct {
	NormalCutoff   float64
	MildCutoff     float64
	LargerIsBetter bool
}

// DefaultThresholds returns the standard severity table.
func DefaultThresholds() map[CheckKind]Thresholds {
	return map[CheckKind]Thresholds{
		ForwardHead:      {NormalCutoff: 50, MildCutoff: 45, LargerIsBetter: true},
		RoundedShoulders: {NormalCutoff: 30, MildCutoff: 40},
		BackSlouch:       {NormalCutoff: 50, MildCutoff: 60},
	}
}

// checkSpec describes the joints and angle computation for one check.
// required joints gate the analysis; scored joints contribute to the
// aggregate confidence. Neck and root are required for geometry but are
// excluded from the confidence mean, matching the reference thresholds
// which were calibrated against ear/shoulder/hip confidences only.
type checkSpec struct {
	required []pose.Joint
	scored   []pose.Joint
	angle    func(pose.Frame) float64
}

var checkSpecs = map[CheckKind]checkSpec{
	ForwardHead: {
		required: []pose.Joint{pose.LeftEar, pose.RightEar, pose.LeftShoulder, pose.RightShoulder, pose.Neck},
		scored:   []pose.Joint{pose.LeftEar, pose.RightEar, pose.LeftShoulder, pose.RightShoulder},
		angle:    craniovertebralAngle,
	},
	RoundedShoulders: {
		required: []pose.Joint{pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip, pose.Neck},
		scored:   []pose.Joint{pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip},
		angle:    forwardShoulderAngle,
	},
	BackSlouch: {
		required: []pose.Joint{pose.Neck, pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip, pose.Root},
		scored:   []pose.Joint{pose.LeftShoulder, pose.RightShoulder, pose.LeftHip, pose.RightHip},
		angle:    kyphosisDeviation,
	},
}

// Config holds tunable classifier parameters.
type Config struct {
	MinJointConfidence float32
	Thresholds         map[CheckKind]Thresholds
}

// DefaultConfig returns the standard classifier configuration.
func DefaultConfig() Config {
	return Config{
		MinJointConfidence: DefaultMinJointConfidence,
		Thresholds:         DefaultThresholds(),
	}
}

// Classifier performs rule-based posture classification. It holds only
// immutable configuration and is safe for concurrent use.
type Classifier struct {
	minConfidence float32
	thresholds    map[CheckKind]Thresholds
}

// NewClassifier creates a classifier. Zero-value config fields fall back
// to the defaults.
func NewClassifier(cfg Config) *Classifier {
	if cfg.MinJointConfidence == 0 {
		cfg.MinJointConfidence = DefaultMinJointConfidence
	}
	thresholds := DefaultThresholds()
	for kind, t := range cfg.Thresholds {
		thresholds[kind] = t
	}
	return &Classifier{minConfidence: cfg.MinJointConfidence, thresholds: thresholds}
}

// Analyze runs one posture check over a frame.
//
// Every required joint must be present with confidence strictly above the
// floor; otherwise the check fails closed with ErrInsufficientData. The
// returned angle is always finite: intermediate values are clamped to
// valid trigonometric domains before inverse functions are evaluated.
func (c *Classifier) Analyze(f pose.Frame, kind CheckKind) (Result, error) {
	spec, ok := checkSpecs[kind]
	if !ok {
		return Result{}, fmt.Errorf("unknown check kind %q", kind)
	}

	for _, joint := range spec.required {
		k, present := f.Lookup(joint)
		if !present || k.Confidence <= c.minConfidence {
			return Result{}, fmt.Errorf("%w: joint %s below confidence floor", ErrInsufficientData, joint)
		}
	}

	angle := spec.angle(f)
	severity := c.classify(kind, angle)

	return Result{
		Kind:           kind,
		AngleDegrees:   angle,
		IsNormal:       severity == SeverityNormal,
		Severity:       severity,
		Confidence:     meanConfidence(f, spec.scored),
		Recommendation: recommendationFor(kind, severity, angle),
	}, nil
}

// classify maps an angle to a severity tier using cascaded cutoffs.
func (c *Classifier) classify(kind CheckKind, angle float64) Severity {
	t := c.thresholds[kind]
	if t.LargerIsBetter {
		switch {
		case angle >= t.NormalCutoff:
			return SeverityNormal
		case angle >= t.MildCutoff:
			return SeverityMild
		default:
			return SeverityModerate
		}
	}
	switch {
	case angle <= t.NormalCutoff:
		return SeverityNormal
	case angle < t.MildCutoff:
		return SeverityMild
	default:
		return SeverityModerate
	}
}

// meanConfidence returns the arithmetic mean of the scored joints'
// confidences.
func meanConfidence(f pose.Frame, joints []pose.Joint) float32 {
	values := make([]float64, len(joints))
	for i, j := range joints {
		values[i] = float64(f.Confidence(j))
	}
	return float32(stat.Mean(values, nil))
}
