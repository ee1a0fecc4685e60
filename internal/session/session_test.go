package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/posture.report/internal/orientation"
	"github.com/banshee-data/posture.report/internal/posture"
)

func sampleAt(t time.Time, angle float64, severity posture.Severity) Sample {
	return Sample{
		Time:        t,
		Orientation: orientation.Verdict{Orientation: orientation.SidewaysLeft, SideConfidence: 0.7},
		Results: map[posture.CheckKind]posture.Result{
			posture.ForwardHead: {
				Kind:         posture.ForwardHead,
				AngleDegrees: angle,
				Severity:     severity,
				IsNormal:     severity == posture.SeverityNormal,
			},
		},
	}
}

func TestSessionAddSetsStart(t *testing.T) {
	t.Parallel()

	s := New()
	require.NotEqual(t, [16]byte{}, [16]byte(s.ID), "session ID must be set")

	start := time.UnixMilli(1724961600000).UTC()
	s.Add(sampleAt(start, 80, posture.SeverityNormal))
	s.Add(sampleAt(start.Add(time.Second), 70, posture.SeverityNormal))

	assert.Equal(t, start, s.Started)
	assert.Len(t, s.Samples, 2)
}

func TestSummarizeStatistics(t *testing.T) {
	t.Parallel()

	s := New()
	base := time.UnixMilli(1724961600000).UTC()
	s.Add(sampleAt(base, 60, posture.SeverityNormal))
	s.Add(sampleAt(base.Add(time.Second), 50, posture.SeverityNormal))
	s.Add(sampleAt(base.Add(2*time.Second), 40, posture.SeverityModerate))

	sum := s.Summarize()
	assert.Equal(t, s.ID, sum.SessionID)
	assert.Equal(t, 3, sum.Frames)
	assert.Equal(t, 3, sum.SideViewFrames)
	assert.Equal(t, 3, sum.Orientations[orientation.SidewaysLeft])

	ks, ok := sum.ByKind[posture.ForwardHead]
	require.True(t, ok)
	assert.Equal(t, 3, ks.Count)
	assert.InDelta(t, 50, ks.MeanAngle, 1e-9)
	assert.InDelta(t, 10, ks.StdDevAngle, 1e-9)
	assert.Equal(t, 40.0, ks.MinAngle)
	assert.Equal(t, 60.0, ks.MaxAngle)
	assert.Equal(t, 2, ks.SeverityCounts[posture.SeverityNormal])
	assert.Equal(t, 1, ks.SeverityCounts[posture.SeverityModerate])
	assert.InDelta(t, 1.0/3.0, ks.AbnormalRatio, 1e-9)
}

func TestSummarizeSingleSampleHasZeroSpread(t *testing.T) {
	t.Parallel()

	s := New()
	s.Add(sampleAt(time.Now(), 55, posture.SeverityNormal))

	ks := s.Summarize().ByKind[posture.ForwardHead]
	assert.Equal(t, 1, ks.Count)
	assert.Zero(t, ks.StdDevAngle)
	assert.Equal(t, 55.0, ks.MinAngle)
	assert.Equal(t, 55.0, ks.MaxAngle)
}

func TestSummarizeCountsGatedAndInsufficient(t *testing.T) {
	t.Parallel()

	s := New()
	base := time.Now()
	s.Add(Sample{
		Time:        base,
		Orientation: orientation.Verdict{Orientation: orientation.Front},
		Gated:       true,
	})
	s.Add(Sample{
		Time:         base.Add(time.Second),
		Orientation:  orientation.Verdict{Orientation: orientation.SidewaysLeft},
		Insufficient: []posture.CheckKind{posture.ForwardHead},
	})

	sum := s.Summarize()
	assert.Equal(t, 2, sum.Frames)
	assert.Equal(t, 1, sum.GatedFrames)
	assert.Equal(t, 1, sum.InsufficientFrames)
	assert.Empty(t, sum.ByKind)
	assert.Equal(t, 1, sum.Orientations[orientation.Front])
}

func TestSummarizeEmptySession(t *testing.T) {
	t.Parallel()

	sum := New().Summarize()
	assert.Zero(t, sum.Frames)
	assert.Empty(t, sum.ByKind)
}
