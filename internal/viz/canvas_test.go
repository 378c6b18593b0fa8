package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/mandelview/internal/fractal"
)

func TestCanvasLoad(t *testing.T) {
	c := NewCanvas(2, 1)
	if w, h := c.PixelSize(); w != 2 || h != 2 {
		t.Fatalf("expected 2x2 pixels, got %dx%d", w, h)
	}

	frame := []byte{
		0x00, 0x00, 0x80, 0xff, 0xff, 0xff, 0x00, 0xff,
		0x00, 0x00, 0x00, 0xff, 0x00, 0xff, 0xff, 0xff,
	}
	c.Load(frame)

	if got := c.Grid[0][0]; got.top != "#000080" || got.bottom != "#000000" {
		t.Errorf("unexpected first cell %+v", got)
	}
	if got := c.Grid[0][1]; got.top != "#ffff00" || got.bottom != "#00ffff" {
		t.Errorf("unexpected second cell %+v", got)
	}
}

func TestCanvasIgnoresMismatchedFrame(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Load([]byte{1, 2, 3})

	if c.Grid[0][0].top != "#000000" {
		t.Errorf("expected canvas untouched, got %+v", c.Grid[0][0])
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	out := c.String()

	if n := strings.Count(out, halfBlock); n != 6 {
		t.Errorf("expected 6 half blocks, got %d", n)
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("expected 2 lines, got %d newlines", n+1)
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("expected empty line, got %q", got)
	}

	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(i)
	}
	out := SparklineChart(values, 10)
	count := 0
	for _, r := range out {
		if r >= '▁' && r <= '█' {
			count++
		}
	}
	if count != 10 {
		t.Errorf("expected 10 bars, got %d", count)
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor(255, 0, 128); got != "#ff0080" {
		t.Errorf("expected #ff0080, got %s", got)
	}
	if got := hexColor(-1, 300, 16); got != "#00ff10" {
		t.Errorf("expected clamped #00ff10, got %s", got)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme("classic")

	classic := ThemeFor(fractal.Classic())
	if classic.Background != "#000020" || classic.Primary != "#00ffff" {
		t.Errorf("expected navy background and cyan values, got %s and %s", classic.Background, classic.Primary)
	}

	SetTheme("ocean")
	SetTheme("nope")
	if CurrentTheme.Name != "ocean" {
		t.Errorf("expected unknown name to keep ocean, got %s", CurrentTheme.Name)
	}
	nextTheme()
	if CurrentTheme.Name != "classic" {
		t.Errorf("expected wrap to classic, got %s", CurrentTheme.Name)
	}
	nextTheme()
	if CurrentTheme.Name != "fire" {
		t.Errorf("expected fire after classic, got %s", CurrentTheme.Name)
	}
}
