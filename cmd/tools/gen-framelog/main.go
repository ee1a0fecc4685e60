// Command gen-framelog generates sample keypoint frame logs for testing
// the analysis pipeline without a live pose detector.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/banshee-data/posture.report/internal/framelog"
	"github.com/banshee-data/posture.report/internal/pose"
)

func main() {
	output := flag.String("o", "sample-frames.jsonl", "output path; '-' writes stdout")
	frames := flag.Int("n", 100, "number of frames")
	profile := flag.String("profile", "good", "subject profile: good, slouched or mixed")
	intervalMs := flag.Int("interval-ms", 100, "milliseconds between frames")
	seed := flag.Int64("seed", 1, "random seed for jitter")
	flag.Parse()

	if err := run(*output, *frames, *profile, *intervalMs, *seed); err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
}

func run(output string, frames int, profile string, intervalMs int, seed int64) error {
	base, ok := profiles[profile]
	if !ok && profile != "mixed" {
		return fmt.Errorf("unknown profile %q", profile)
	}

	rng := rand.New(rand.NewSource(seed))
	start := time.Now().UTC().Truncate(time.Millisecond)

	generated := make([]framelog.TimedFrame, 0, frames)
	for i := 0; i < frames; i++ {
		f := base
		if profile == "mixed" {
			// Alternate halves so reports show both regimes.
			if i < frames/2 {
				f = profiles["good"]
			} else {
				f = profiles["slouched"]
			}
		}
		generated = append(generated, framelog.TimedFrame{
			Time:  start.Add(time.Duration(i*intervalMs) * time.Millisecond),
			Frame: jitter(rng, f),
		})
	}

	w := os.Stdout
	if output != "-" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer file.Close()
		w = file
	}
	if err := framelog.Write(w, generated); err != nil {
		return err
	}
	if output != "-" {
		log.Printf("✓ Created: %s (%d frames)", output, frames)
	}
	return nil
}

var profiles = map[string]pose.Frame{
	"good": {
		pose.LeftEar:       {X: 0.48, Y: 0.75, Confidence: 0.9},
		pose.RightEar:      {X: 0.52, Y: 0.75, Confidence: 0.9},
		pose.Neck:          {X: 0.5, Y: 0.65, Confidence: 0.95},
		pose.LeftShoulder:  {X: 0.45, Y: 0.6, Confidence: 0.9},
		pose.RightShoulder: {X: 0.55, Y: 0.6, Confidence: 0.9},
		pose.LeftHip:       {X: 0.46, Y: 0.35, Confidence: 0.85},
		pose.RightHip:      {X: 0.54, Y: 0.35, Confidence: 0.85},
		pose.Root:          {X: 0.5, Y: 0.35, Confidence: 0.9},
	},
	"slouched": {
		pose.LeftEar:       {X: 0.63, Y: 0.72, Confidence: 0.8},
		pose.RightEar:      {X: 0.67, Y: 0.72, Confidence: 0.8},
		pose.Neck:          {X: 0.58, Y: 0.6, Confidence: 0.9},
		pose.LeftShoulder:  {X: 0.45, Y: 0.6, Confidence: 0.85},
		pose.RightShoulder: {X: 0.55, Y: 0.6, Confidence: 0.85},
		pose.LeftHip:       {X: 0.28, Y: 0.35, Confidence: 0.8},
		pose.RightHip:      {X: 0.38, Y: 0.35, Confidence: 0.8},
		pose.Root:          {X: 0.33, Y: 0.35, Confidence: 0.85},
	},
}

// jitter perturbs joint positions and confidences slightly, keeping
// confidences inside [0,1] so generated logs stay valid.
func jitter(rng *rand.Rand, f pose.Frame) pose.Frame {
	out := make(pose.Frame, len(f))
	for joint, k := range f {
		c := k.Confidence + float32(rng.NormFloat64()*0.01)
		if c > 1 {
			c = 1
		}
		if c < 0 {
			c = 0
		}
		out[joint] = pose.Keypoint{
			X:          k.X + rng.NormFloat64()*0.003,
			Y:          k.Y + rng.NormFloat64()*0.003,
			Confidence: c,
		}
	}
	return out
}
