// Command posture-analyze runs the orientation gate and posture checks
// over a recorded keypoint frame log and emits per-frame results as JSONL.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/banshee-data/posture.report/internal/config"
	"github.com/banshee-data/posture.report/internal/framelog"
	"github.com/banshee-data/posture.report/internal/orientation"
	"github.com/banshee-data/posture.report/internal/posture"
	"github.com/banshee-data/posture.report/internal/session"
	"github.com/banshee-data/posture.report/internal/version"
)

// Config holds the command configuration.
type Config struct {
	InputPath   string
	Checks      []posture.CheckKind
	RequireSide bool
	TuningPath  string
	SummaryOnly bool
}

// FrameResult is the per-frame output record.
type FrameResult struct {
	Index        int                 `json:"index"`
	Time         time.Time           `json:"time"`
	Orientation  orientation.Verdict `json:"orientation"`
	Gated        bool                `json:"gated,omitempty"`
	Results      []posture.Result    `json:"results,omitempty"`
	Insufficient []posture.CheckKind `json:"insufficient,omitempty"`
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}
	if err := run(cfg, os.Stdout); err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}
}

func parseFlags() (Config, error) {
	input := flag.String("input", "-", "frame log path (JSONL); '-' reads stdin")
	check := flag.String("check", "all", "check to run: all, forward_head, rounded_shoulders or back_slouch")
	requireSide := flag.Bool("require-side", false, "skip frames whose orientation is not a side view")
	tuning := flag.String("tuning", "", "optional tuning config JSON (defaults match "+config.DefaultConfigPath+")")
	summaryOnly := flag.Bool("summary-only", false, "emit only the session summary")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	cfg := Config{
		InputPath:   *input,
		RequireSide: *requireSide,
		TuningPath:  *tuning,
		SummaryOnly: *summaryOnly,
	}

	if *check == "all" {
		cfg.Checks = posture.AllCheckKinds
	} else {
		kind := posture.CheckKind(*check)
		if !kind.Valid() {
			return Config{}, fmt.Errorf("unknown check %q", *check)
		}
		cfg.Checks = []posture.CheckKind{kind}
	}

	return cfg, nil
}

func run(cfg Config, out io.Writer) error {
	frames, err := readFrames(cfg.InputPath)
	if err != nil {
		return err
	}

	tuning := config.EmptyTuningConfig()
	if cfg.TuningPath != "" {
		tuning, err = config.LoadTuningConfig(cfg.TuningPath)
		if err != nil {
			return err
		}
	}
	gate := orientation.NewGate(tuning.GateConfig())
	classifier := posture.NewClassifier(tuning.ClassifierConfig())

	sess := session.New()
	enc := json.NewEncoder(out)

	for i, tf := range frames {
		verdict := gate.Detect(tf.Frame)
		sample := session.Sample{Time: tf.Time, Orientation: verdict}
		record := FrameResult{Index: i, Time: tf.Time, Orientation: verdict}

		if cfg.RequireSide && !verdict.IsSideView() {
			sample.Gated = true
			record.Gated = true
		} else {
			sample.Results = make(map[posture.CheckKind]posture.Result, len(cfg.Checks))
			for _, kind := range cfg.Checks {
				result, err := classifier.Analyze(tf.Frame, kind)
				if errors.Is(err, posture.ErrInsufficientData) {
					sample.Insufficient = append(sample.Insufficient, kind)
					record.Insufficient = append(record.Insufficient, kind)
					continue
				}
				if err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
				sample.Results[kind] = result
				record.Results = append(record.Results, result)
			}
		}

		sess.Add(sample)
		if !cfg.SummaryOnly {
			if err := enc.Encode(record); err != nil {
				return fmt.Errorf("frame %d: failed to encode result: %w", i, err)
			}
		}
	}

	summary := sess.Summarize()
	if cfg.SummaryOnly {
		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
	} else {
		log.Printf("Session %s: %d frames analyzed (%d gated, %d insufficient)",
			summary.SessionID, summary.Frames, summary.GatedFrames, summary.InsufficientFrames)
	}

	return nil
}

func readFrames(path string) ([]framelog.TimedFrame, error) {
	if path == "-" {
		return framelog.Read(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame log: %w", err)
	}
	defer f.Close()
	return framelog.Read(f)
}
