// Command posture-report renders an HTML report of a recorded keypoint
// frame log: per-check angle timelines and a severity distribution, with
// an optional PNG timeline for embedding elsewhere.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/posture.report/internal/config"
	"github.com/banshee-data/posture.report/internal/framelog"
	"github.com/banshee-data/posture.report/internal/orientation"
	"github.com/banshee-data/posture.report/internal/posture"
	"github.com/banshee-data/posture.report/internal/session"
)

var kindLabels = map[posture.CheckKind]string{
	posture.ForwardHead:      "Forward head (CVA)",
	posture.RoundedShoulders: "Rounded shoulders (FSA)",
	posture.BackSlouch:       "Back slouch (kyphosis deviation)",
}

var severityOrder = []posture.Severity{
	posture.SeverityNormal, posture.SeverityMild, posture.SeverityModerate,
}

func main() {
	input := flag.String("input", "", "frame log path (JSONL)")
	output := flag.String("o", "posture-report.html", "output HTML path")
	pngPath := flag.String("png", "", "optional PNG timeline output path")
	tuningPath := flag.String("tuning", "", "optional tuning config JSON")
	flag.Parse()

	if *input == "" {
		log.Fatal("Frame log path is required (-input)")
	}

	if err := run(*input, *output, *pngPath, *tuningPath); err != nil {
		log.Fatalf("Report generation failed: %v", err)
	}
}

func run(input, output, pngPath, tuningPath string) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("failed to open frame log: %w", err)
	}
	defer f.Close()

	frames, err := framelog.Read(f)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("frame log %s contains no frames", input)
	}

	tuning := config.EmptyTuningConfig()
	if tuningPath != "" {
		tuning, err = config.LoadTuningConfig(tuningPath)
		if err != nil {
			return err
		}
	}

	sess, err := analyze(frames, tuning)
	if err != nil {
		return err
	}
	summary := sess.Summarize()
	log.Printf("Session %s: %d frames, %d side-view", summary.SessionID, summary.Frames, summary.SideViewFrames)

	if err := renderHTML(output, sess, summary); err != nil {
		return err
	}
	log.Printf("Report written to %s", output)

	if pngPath != "" {
		if err := renderPNG(pngPath, sess); err != nil {
			return err
		}
		log.Printf("Timeline written to %s", pngPath)
	}

	return nil
}

func analyze(frames []framelog.TimedFrame, tuning *config.TuningConfig) (*session.Session, error) {
	gate := orientation.NewGate(tuning.GateConfig())
	classifier := posture.NewClassifier(tuning.ClassifierConfig())

	sess := session.New()
	for i, tf := range frames {
		sample := session.Sample{
			Time:        tf.Time,
			Orientation: gate.Detect(tf.Frame),
			Results:     make(map[posture.CheckKind]posture.Result),
		}
		for _, kind := range posture.AllCheckKinds {
			result, err := classifier.Analyze(tf.Frame, kind)
			if errors.Is(err, posture.ErrInsufficientData) {
				sample.Insufficient = append(sample.Insufficient, kind)
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
			sample.Results[kind] = result
		}
		sess.Add(sample)
	}
	return sess, nil
}

// angleSeries collects per-frame angles for one check; frames without a
// result for the check carry no data point.
func angleSeries(sess *session.Session, kind posture.CheckKind) ([]string, []opts.LineData) {
	var xs []string
	var ys []opts.LineData
	for i, sample := range sess.Samples {
		result, ok := sample.Results[kind]
		if !ok {
			continue
		}
		xs = append(xs, fmt.Sprintf("%d", i))
		ys = append(ys, opts.LineData{Value: result.AngleDegrees})
	}
	return xs, ys
}

func renderHTML(output string, sess *session.Session, summary session.Summary) error {
	page := components.NewPage()
	page.PageTitle = "Posture session report"

	for _, kind := range posture.AllCheckKinds {
		xs, ys := angleSeries(sess, kind)
		if len(ys) == 0 {
			continue
		}
		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{
				Title:    kindLabels[kind],
				Subtitle: fmt.Sprintf("mean %.1f°", summary.ByKind[kind].MeanAngle),
			}),
			charts.WithYAxisOpts(opts.YAxis{Name: "degrees"}),
			charts.WithXAxisOpts(opts.XAxis{Name: "frame"}),
		)
		line.SetXAxis(xs).AddSeries(string(kind), ys)
		page.AddCharts(line)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Severity distribution"}))
	severityAxis := make([]string, len(severityOrder))
	for i, s := range severityOrder {
		severityAxis[i] = string(s)
	}
	bar.SetXAxis(severityAxis)
	for _, kind := range posture.AllCheckKinds {
		stats, ok := summary.ByKind[kind]
		if !ok {
			continue
		}
		data := make([]opts.BarData, len(severityOrder))
		for i, s := range severityOrder {
			data[i] = opts.BarData{Value: stats.SeverityCounts[s]}
		}
		bar.AddSeries(string(kind), data)
	}
	page.AddCharts(bar)

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer out.Close()
	if err := page.Render(out); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

var lineColors = map[posture.CheckKind]color.RGBA{
	posture.ForwardHead:      {R: 31, G: 119, B: 180, A: 255},
	posture.RoundedShoulders: {R: 255, G: 127, B: 14, A: 255},
	posture.BackSlouch:       {R: 44, G: 160, B: 44, A: 255},
}

func renderPNG(pngPath string, sess *session.Session) error {
	p := plot.New()
	p.Title.Text = "Posture angles over session"
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "degrees"

	for _, kind := range posture.AllCheckKinds {
		var xys plotter.XYs
		for i, sample := range sess.Samples {
			if result, ok := sample.Results[kind]; ok {
				xys = append(xys, plotter.XY{X: float64(i), Y: result.AngleDegrees})
			}
		}
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("failed to build %s series: %w", kind, err)
		}
		line.Color = lineColors[kind]
		p.Add(line)
		p.Legend.Add(string(kind), line)
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, pngPath); err != nil {
		return fmt.Errorf("failed to save timeline: %w", err)
	}
	return nil
}
