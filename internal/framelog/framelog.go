// Package framelog reads and writes JSONL recordings of keypoint frames.
//
// This is the boundary to the external pose-detection collaborator: one
// JSON object per line, e.g.
//
//	{"t":1724961600123,"joints":{"left_shoulder":{"x":0.45,"y":0.6,"c":0.92}}}
//
// Timestamps are unix milliseconds. Joint names the analysis layer does
// not know are skipped; the core packages never touch files themselves.
package framelog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/banshee-data/posture.report/internal/pose"
)

// JointObservation is the wire form of a single keypoint.
type JointObservation struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float32 `json:"c"`
}

// Record is the wire form of one frame.
type Record struct {
	TimestampMillis int64                       `json:"t"`
	Joints          map[string]JointObservation `json:"joints"`
}

// TimedFrame pairs a decoded frame with its capture time.
type TimedFrame struct {
	Time  time.Time
	Frame pose.Frame
}

// Frame converts the record into a pose frame, dropping unknown joints.
func (r Record) Frame() pose.Frame {
	f := make(pose.Frame, len(r.Joints))
	for name, obs := range r.Joints {
		joint := pose.Joint(name)
		if !joint.Valid() {
			continue
		}
		f[joint] = pose.Keypoint{X: obs.X, Y: obs.Y, Confidence: obs.Confidence}
	}
	return f
}

// Read decodes a JSONL frame log. Blank lines are skipped. Malformed JSON
// or non-finite keypoint values fail with the offending line number; dirty
// capture data should be fixed at the source, not silently dropped here.
func Read(r io.Reader) ([]TimedFrame, error) {
	var frames []TimedFrame

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: failed to unmarshal frame: %w", line, err)
		}

		frame := rec.Frame()
		for joint, k := range frame {
			if !k.Finite() {
				return nil, fmt.Errorf("line %d: non-finite keypoint for joint %s", line, joint)
			}
		}

		frames = append(frames, TimedFrame{
			Time:  time.UnixMilli(rec.TimestampMillis).UTC(),
			Frame: frame,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read frame log: %w", err)
	}

	return frames, nil
}

// Write encodes frames as a JSONL log.
func Write(w io.Writer, frames []TimedFrame) error {
	enc := json.NewEncoder(w)
	for i, tf := range frames {
		rec := Record{
			TimestampMillis: tf.Time.UnixMilli(),
			Joints:          make(map[string]JointObservation, len(tf.Frame)),
		}
		for joint, k := range tf.Frame {
			rec.Joints[string(joint)] = JointObservation{X: k.X, Y: k.Y, Confidence: k.Confidence}
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("frame %d: failed to encode: %w", i, err)
		}
	}
	return nil
}
