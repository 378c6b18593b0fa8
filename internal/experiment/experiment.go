// Package experiment measures render cost as the view zooms toward a
// point of the plane.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/fractal"
	"github.com/san-kum/mandelview/internal/metrics"
	chart "github.com/wcharczuk/go-chart/v2"
)

var ErrConfig = errors.New("experiment: invalid config")

type Config struct {
	Width   int
	Height  int
	Workers int
	Palette string
	// Start is where the sweep begins; its MaxRound is derived from the scale.
	Start fractal.View
	// Steps is the number of zoom steps after the starting frame.
	Steps int
	// Zoom is the amount passed to Controller.Zoom between frames.
	Zoom    float64
	Repeats int
	// Options configure the controller, e.g. the zoom base and scale limits.
	Options []fractal.Option
}

func DefaultConfig() Config {
	return Config{
		Width:   320,
		Height:  240,
		Palette: "classic",
		Start:   fractal.DefaultView(),
		Steps:   20,
		Zoom:    10,
		Repeats: 3,
	}
}

// Sample is one frame of the sweep. Elapsed is the fastest of the repeats.
type Sample struct {
	Step     int
	Scale    float64
	MaxRound int
	Elapsed  time.Duration
	InSet    float64
}

type Experiment struct {
	cfg Config
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) validate() error {
	c := e.cfg
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrConfig, c.Width, c.Height)
	}
	if c.Steps < 0 || c.Repeats < 1 {
		return fmt.Errorf("%w: steps %d repeats %d", ErrConfig, c.Steps, c.Repeats)
	}
	if !(c.Start.Scale > 0) {
		return fmt.Errorf("%w: start scale %g", ErrConfig, c.Start.Scale)
	}
	return nil
}

// Run renders the starting view and then one frame per zoom step, stopping
// early once the scale clamps at a limit.
func (e *Experiment) Run(ctx context.Context) ([]Sample, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	palette, err := fractal.LookupPalette(e.cfg.Palette)
	if err != nil {
		return nil, err
	}

	ctl := fractal.NewController(e.cfg.Start, e.cfg.Options...)
	eng, err := fractal.NewEngine(ctl, palette, compute.NewCPU(e.cfg.Workers))
	if err != nil {
		return nil, err
	}

	buf := make([]byte, e.cfg.Width*e.cfg.Height*fractal.BytesPerPixel)
	coverage := metrics.NewCoverage()
	samples := make([]Sample, 0, e.cfg.Steps+1)

	clamped := false
	for step := 0; step <= e.cfg.Steps; step++ {
		select {
		case <-ctx.Done():
			return samples, ctx.Err()
		default:
		}

		elapsed, inSet, err := e.measure(eng, buf, coverage)
		if err != nil {
			return samples, err
		}
		v := ctl.View()
		samples = append(samples, Sample{
			Step:     step,
			Scale:    v.Scale,
			MaxRound: v.MaxRound,
			Elapsed:  elapsed,
			InSet:    inSet,
		})

		if clamped {
			break
		}
		clamped = !ctl.Zoom(e.cfg.Zoom)
	}
	return samples, nil
}

func (e *Experiment) measure(eng *fractal.Engine, buf []byte, coverage *metrics.Coverage) (time.Duration, float64, error) {
	best := time.Duration(-1)
	for r := 0; r < e.cfg.Repeats; r++ {
		eng.Controller().MarkDirty()
		elapsed, _, err := eng.Render(buf, e.cfg.Width, e.cfg.Height)
		if err != nil {
			return 0, 0, err
		}
		if best < 0 || elapsed < best {
			best = elapsed
		}
	}
	coverage.Observe(buf, best)
	return best, coverage.Value(), nil
}

func Milliseconds(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s.Elapsed) / float64(time.Millisecond)
	}
	return out
}

// Plot draws render time per step as a terminal line graph.
func Plot(samples []Sample) string {
	if len(samples) == 0 {
		return ""
	}
	return asciigraph.Plot(Milliseconds(samples),
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("render time (ms) per zoom step"))
}

// WriteChart renders render time and iteration cap against the zoom step as
// a PNG line chart.
func WriteChart(w io.Writer, samples []Sample) error {
	if len(samples) < 2 {
		return fmt.Errorf("%w: chart needs at least 2 samples, got %d", ErrConfig, len(samples))
	}

	steps := make([]float64, len(samples))
	caps := make([]float64, len(samples))
	ms := Milliseconds(samples)
	maxMs, maxCap := 1.0, 1.0
	for i, s := range samples {
		steps[i] = float64(s.Step)
		caps[i] = float64(s.MaxRound)
		maxMs = max(maxMs, ms[i])
		maxCap = max(maxCap, caps[i])
	}

	ch := chart.Chart{
		Title:      "render time by zoom step",
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name: "zoom step",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(f))
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name:  "ms",
			Range: &chart.ContinuousRange{Min: 0, Max: maxMs * 1.1},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "max round",
			Range: &chart.ContinuousRange{Min: 0, Max: maxCap * 1.1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "render ms",
				XValues: steps,
				YValues: ms,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "max round",
				YAxis:   chart.YAxisSecondary,
				XValues: steps,
				YValues: caps,
				Style:   chart.Style{StrokeColor: chart.ColorAlternateGray, StrokeWidth: 1},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}
