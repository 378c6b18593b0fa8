package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/fractal"
)

func TestCoverageCountsInSetPixels(t *testing.T) {
	c := NewCoverage()
	frame := []byte{
		0, 0, 0, 255,
		0, 0, 128, 255,
		0, 0, 0, 255,
		0, 0, 0, 0,
	}

	c.Observe(frame, 0)

	if c.Value() != 0.5 {
		t.Errorf("expected coverage 0.5, got %f", c.Value())
	}

	c.Reset()
	if c.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", c.Value())
	}
}

func TestCoverageTracksLatestFrame(t *testing.T) {
	c := NewCoverage()
	inSet := []byte{0, 0, 0, 255, 0, 0, 0, 255}
	escaped := []byte{0, 0, 128, 255, 0, 0, 128, 255}

	c.Observe(inSet, 0)
	if c.Value() != 1 {
		t.Fatalf("expected coverage 1, got %f", c.Value())
	}

	c.Observe(escaped, 0)
	if c.Value() != 0 {
		t.Errorf("expected coverage of the second frame only, got %f", c.Value())
	}

	c.Observe(append(escaped, inSet...), 0)
	if c.Value() != 0.5 {
		t.Errorf("expected coverage 0.5, got %f", c.Value())
	}
}

func TestRenderTimeSpansFrames(t *testing.T) {
	r := NewRenderTime()
	for _, ms := range []int{1, 2, 3, 6} {
		r.Observe(nil, time.Duration(ms)*time.Millisecond)
	}
	if r.Count() != 4 {
		t.Errorf("expected 4 samples, got %d", r.Count())
	}
	if math.Abs(r.Value()-3) > 1e-9 {
		t.Errorf("expected mean 3ms over all frames, got %f", r.Value())
	}
}

func TestCoverageOfRenderedFrame(t *testing.T) {
	const w, h = 64, 48
	buf := make([]byte, w*h*fractal.BytesPerPixel)
	f := fractal.NewFiller(compute.NewCPU(2), fractal.Classic())
	v := fractal.View{CenterX: -0.7, Scale: 0.05, MaxRound: fractal.DefaultMaxRound}
	if err := f.Fill(buf, w, h, v); err != nil {
		t.Fatal(err)
	}

	c := NewCoverage()
	c.Observe(buf, 0)

	// the set covers about a fifth of the whole-set frame
	if v := c.Value(); v < 0.05 || v > 0.5 {
		t.Errorf("expected in-set fraction between 0.05 and 0.5, got %f", v)
	}
}

func TestRenderTime(t *testing.T) {
	r := NewRenderTime()
	if r.Value() != 0 {
		t.Errorf("expected 0 with no samples, got %f", r.Value())
	}

	r.Observe(nil, 2*time.Millisecond)
	r.Observe(nil, 4*time.Millisecond)

	if math.Abs(r.Value()-3) > 1e-9 {
		t.Errorf("expected mean 3ms, got %f", r.Value())
	}
	if r.Min() != 2*time.Millisecond || r.Max() != 4*time.Millisecond {
		t.Errorf("expected min 2ms max 4ms, got %v %v", r.Min(), r.Max())
	}

	r.Reset()
	if r.Count() != 0 || r.Name() != "render_ms" {
		t.Errorf("reset should keep the name and drop samples")
	}
}

func TestCollect(t *testing.T) {
	r := NewRenderTime()
	r.Observe(nil, time.Millisecond)
	got := Collect(NewCoverage(), r)

	if len(got) != 2 {
		t.Fatalf("expected 2 metrics, got %d", len(got))
	}
	if got["render_ms"] != 1 {
		t.Errorf("expected render_ms 1, got %f", got["render_ms"])
	}
}
