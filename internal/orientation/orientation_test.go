package orientation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/posture.report/internal/pose"
	"github.com/banshee-data/posture.report/internal/testutil"
)

func shoulderFrame(left, right float32) pose.Frame {
	return pose.Frame{
		pose.LeftShoulder:  {X: 0.45, Y: 0.6, Confidence: left},
		pose.RightShoulder: {X: 0.55, Y: 0.6, Confidence: right},
	}
}

func TestDetectSideViews(t *testing.T) {
	t.Parallel()

	t.Run("left shoulder visible, right occluded", func(t *testing.T) {
		v := Detect(shoulderFrame(0.8, 0.05))
		assert.Equal(t, SidewaysLeft, v.Orientation)
		assert.InDelta(t, 0.75, v.SideConfidence, 1e-6)
		assert.True(t, v.IsSideView())
	})

	t.Run("right shoulder visible, left occluded", func(t *testing.T) {
		v := Detect(shoulderFrame(0.05, 0.8))
		assert.Equal(t, SidewaysRight, v.Orientation)
		assert.InDelta(t, 0.75, v.SideConfidence, 1e-6)
	})

	t.Run("fixture frames", func(t *testing.T) {
		assert.Equal(t, SidewaysLeft, Detect(testutil.SideViewFrame(true)).Orientation)
		assert.Equal(t, SidewaysRight, Detect(testutil.SideViewFrame(false)).Orientation)
	})
}

func TestDetectFrontBack(t *testing.T) {
	t.Parallel()

	t.Run("both shoulders and ears visible is front", func(t *testing.T) {
		assert.Equal(t, Front, Detect(testutil.FrontFrame()).Orientation)
	})

	t.Run("shoulders visible, ears hidden is back", func(t *testing.T) {
		f := shoulderFrame(0.9, 0.9)
		f[pose.LeftEar] = pose.Keypoint{X: 0.48, Y: 0.75, Confidence: 0.2}
		f[pose.RightEar] = pose.Keypoint{X: 0.52, Y: 0.75, Confidence: 0.2}
		v := Detect(f)
		assert.Equal(t, Back, v.Orientation)
		assert.Zero(t, v.SideConfidence)
	})

	t.Run("shoulders visible, ears absent is back", func(t *testing.T) {
		assert.Equal(t, Back, Detect(shoulderFrame(0.9, 0.9)).Orientation)
	})

	t.Run("one ear visible is back", func(t *testing.T) {
		f := shoulderFrame(0.9, 0.9)
		f[pose.LeftEar] = pose.Keypoint{X: 0.48, Y: 0.75, Confidence: 0.8}
		assert.Equal(t, Back, Detect(f).Orientation)
	})
}

func TestDetectUnknown(t *testing.T) {
	t.Parallel()

	t.Run("missing shoulder", func(t *testing.T) {
		f := pose.Frame{pose.LeftShoulder: {X: 0.45, Y: 0.6, Confidence: 0.9}}
		assert.Equal(t, Unknown, Detect(f).Orientation)
	})

	t.Run("empty frame", func(t *testing.T) {
		assert.Equal(t, Unknown, Detect(pose.Frame{}).Orientation)
	})

	t.Run("ambiguous confidences", func(t *testing.T) {
		// One shoulder moderately visible, the other neither clearly
		// visible nor clearly occluded.
		v := Detect(shoulderFrame(0.8, 0.3))
		assert.Equal(t, Unknown, v.Orientation)
		assert.Zero(t, v.SideConfidence)
	})
}

// Threshold equality counts as "not exceeding": comparisons are strict so
// verdicts do not flap at the boundary.
func TestDetectThresholdBoundaries(t *testing.T) {
	t.Parallel()

	t.Run("visibility exactly at threshold", func(t *testing.T) {
		v := Detect(shoulderFrame(0.5, 0.05))
		assert.Equal(t, Unknown, v.Orientation)
	})

	t.Run("occlusion exactly at threshold", func(t *testing.T) {
		v := Detect(shoulderFrame(0.8, 0.1))
		assert.Equal(t, Unknown, v.Orientation)
		assert.Zero(t, v.SideConfidence)
	})
}

func TestSideConfidenceRequiresClearAsymmetry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		left, right float32
		want        float32
	}{
		{"clear asymmetry", 0.8, 0.05, 0.75},
		{"both visible", 0.9, 0.8, 0},
		{"both occluded", 0.05, 0.02, 0},
		{"visible but not occluded", 0.8, 0.2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Detect(shoulderFrame(tt.left, tt.right))
			assert.InDelta(t, tt.want, v.SideConfidence, 1e-6)
		})
	}
}

func TestNewGateDefaults(t *testing.T) {
	t.Parallel()

	g := NewGate(Config{})
	require.NotNil(t, g)
	// Zero-value config falls back to the standard thresholds.
	assert.Equal(t, SidewaysLeft, g.Detect(shoulderFrame(0.8, 0.05)).Orientation)
}

func TestDetectIdempotent(t *testing.T) {
	t.Parallel()

	f := testutil.SideViewFrame(true)
	first := Detect(f)
	second := Detect(f)
	assert.Equal(t, first, second)
}
