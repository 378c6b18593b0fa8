package experiment

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/mandelview/internal/fractal"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 32, 24
	cfg.Workers = 2
	cfg.Steps = 3
	cfg.Repeats = 1
	return cfg
}

func TestRunSweep(t *testing.T) {
	samples, err := New(smallConfig()).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(samples) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(samples))
	}
	for i, s := range samples {
		if s.Step != i {
			t.Errorf("expected step %d, got %d", i, s.Step)
		}
		if i > 0 && s.Scale >= samples[i-1].Scale {
			t.Errorf("step %d: scale %g did not shrink from %g", i, s.Scale, samples[i-1].Scale)
		}
		if s.InSet < 0 || s.InSet > 1 {
			t.Errorf("step %d: in-set fraction %f out of range", i, s.InSet)
		}
	}
}

func TestRunStopsWhenClamped(t *testing.T) {
	cfg := smallConfig()
	cfg.Start = fractal.View{CenterX: -0.5, Scale: 0.05}
	cfg.Zoom = -100
	cfg.Steps = 10

	samples, err := New(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[1].Scale != fractal.MaxScale {
		t.Errorf("expected clamped scale %g, got %g", fractal.MaxScale, samples[1].Scale)
	}
}

func TestRunUsesControllerOptions(t *testing.T) {
	cfg := smallConfig()
	cfg.Zoom = 1
	cfg.Options = []fractal.Option{fractal.WithZoomBase(2)}

	samples, err := New(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for i := 1; i < len(samples); i++ {
		if want := samples[i-1].Scale / 2; samples[i].Scale != want {
			t.Errorf("step %d: expected scale %g, got %g", i, want, samples[i].Scale)
		}
	}
}

func TestRunStopsAtConfiguredLimit(t *testing.T) {
	cfg := smallConfig()
	cfg.Zoom = 1
	cfg.Steps = 10
	cfg.Options = []fractal.Option{
		fractal.WithZoomBase(2),
		fractal.WithLimits(fractal.Limits{MinScale: 0.001, MaxScale: fractal.MaxScale}),
	}

	samples, err := New(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// 0.005 -> 0.0025 -> 0.00125 -> clamped at 0.001
	if len(samples) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(samples))
	}
	if last := samples[len(samples)-1].Scale; last != 0.001 {
		t.Errorf("expected clamped scale 0.001, got %g", last)
	}
}

func TestRunRaisesCap(t *testing.T) {
	cfg := smallConfig()
	cfg.Start = fractal.View{CenterX: -0.743643887037151, CenterY: 0.131825904205330, Scale: 6e-6}
	cfg.Zoom = 5
	cfg.Steps = 1

	samples, err := New(cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if samples[0].MaxRound != fractal.DefaultMaxRound || samples[1].MaxRound != fractal.DeepMaxRound {
		t.Errorf("expected caps %d then %d, got %d then %d",
			fractal.DefaultMaxRound, fractal.DeepMaxRound, samples[0].MaxRound, samples[1].MaxRound)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	samples, err := New(smallConfig()).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("expected no samples, got %d", len(samples))
	}
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Repeats = 0
	if _, err := New(cfg).Run(context.Background()); !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}

	cfg = smallConfig()
	cfg.Palette = "plaid"
	if _, err := New(cfg).Run(context.Background()); !errors.Is(err, fractal.ErrUnknownPalette) {
		t.Errorf("expected ErrUnknownPalette, got %v", err)
	}
}

func TestPlotAndChart(t *testing.T) {
	samples, err := New(smallConfig()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if plot := Plot(samples); !strings.Contains(plot, "render time") {
		t.Errorf("expected caption in plot, got %q", plot)
	}
	if Plot(nil) != "" {
		t.Error("expected empty plot for no samples")
	}

	var buf bytes.Buffer
	if err := WriteChart(&buf, samples); err != nil {
		t.Fatalf("chart failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("expected PNG output")
	}

	if err := WriteChart(&buf, samples[:1]); !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig for one sample, got %v", err)
	}
}
