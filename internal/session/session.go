// Package session accumulates per-frame analysis results into summary
// statistics for a recorded run. Accumulation is in-memory only; nothing
// here persists or performs I/O.
package session

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/posture.report/internal/orientation"
	"github.com/banshee-data/posture.report/internal/posture"
)

// Sample records the analysis outcome for one frame.
type Sample struct {
	Time         time.Time                            `json:"time"`
	Orientation  orientation.Verdict                  `json:"orientation"`
	Results      map[posture.CheckKind]posture.Result `json:"results,omitempty"`
	Gated        bool                                 `json:"gated,omitempty"`
	Insufficient []posture.CheckKind                  `json:"insufficient,omitempty"`
}

// Session is an ordered run of samples identified by a UUID.
type Session struct {
	ID      uuid.UUID
	Started time.Time
	Samples []Sample
}

// New creates an empty session.
func New() *Session {
	return &Session{ID: uuid.New()}
}

// Add appends a sample. The first sample sets the session start time.
func (s *Session) Add(sample Sample) {
	if len(s.Samples) == 0 {
		s.Started = sample.Time
	}
	s.Samples = append(s.Samples, sample)
}

// KindStats summarises one check kind across the session.
type KindStats struct {
	Count          int                      `json:"count"`
	MeanAngle      float64                  `json:"mean_angle"`
	StdDevAngle    float64                  `json:"stddev_angle"`
	MinAngle       float64                  `json:"min_angle"`
	MaxAngle       float64                  `json:"max_angle"`
	SeverityCounts map[posture.Severity]int `json:"severity_counts"`
	AbnormalRatio  float64                  `json:"abnormal_ratio"`
}

// Summary aggregates a whole session.
type Summary struct {
	SessionID          uuid.UUID                       `json:"session_id"`
	Frames             int                             `json:"frames"`
	GatedFrames        int                             `json:"gated_frames"`
	InsufficientFrames int                             `json:"insufficient_frames"`
	SideViewFrames     int                             `json:"side_view_frames"`
	ByKind             map[posture.CheckKind]KindStats `json:"by_kind"`
	Orientations       map[orientation.Orientation]int `json:"orientations"`
}

// Summarize computes summary statistics over all samples.
func (s *Session) Summarize() Summary {
	summary := Summary{
		SessionID:    s.ID,
		Frames:       len(s.Samples),
		ByKind:       make(map[posture.CheckKind]KindStats),
		Orientations: make(map[orientation.Orientation]int),
	}

	angles := make(map[posture.CheckKind][]float64)
	severities := make(map[posture.CheckKind]map[posture.Severity]int)
	abnormal := make(map[posture.CheckKind]int)

	for _, sample := range s.Samples {
		summary.Orientations[sample.Orientation.Orientation]++
		if sample.Orientation.IsSideView() {
			summary.SideViewFrames++
		}
		if sample.Gated {
			summary.GatedFrames++
		}
		if len(sample.Insufficient) > 0 {
			summary.InsufficientFrames++
		}

		for kind, result := range sample.Results {
			angles[kind] = append(angles[kind], result.AngleDegrees)
			if severities[kind] == nil {
				severities[kind] = make(map[posture.Severity]int)
			}
			severities[kind][result.Severity]++
			if !result.IsNormal {
				abnormal[kind]++
			}
		}
	}

	for kind, values := range angles {
		ks := KindStats{
			Count:          len(values),
			MeanAngle:      stat.Mean(values, nil),
			MinAngle:       values[0],
			MaxAngle:       values[0],
			SeverityCounts: severities[kind],
			AbnormalRatio:  float64(abnormal[kind]) / float64(len(values)),
		}
		// StdDev divides by n-1; a single sample has no spread.
		if len(values) > 1 {
			ks.StdDevAngle = stat.StdDev(values, nil)
		}
		for _, v := range values {
			ks.MinAngle = math.Min(ks.MinAngle, v)
			ks.MaxAngle = math.Max(ks.MaxAngle, v)
		}
		summary.ByKind[kind] = ks
	}

	return summary
}
