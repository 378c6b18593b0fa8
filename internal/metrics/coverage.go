package metrics

import (
	"time"

	"github.com/san-kum/mandelview/internal/fractal"
)

// Coverage is the fraction of pixels of the most recently observed frame
// that never escaped. It relies on no palette stop interpolating to the
// in-set color.
type Coverage struct {
	name   string
	inSet  int
	pixels int
}

func NewCoverage() *Coverage {
	return &Coverage{name: "in_set"}
}

func (c *Coverage) Name() string {
	return c.name
}

func (c *Coverage) Observe(frame []byte, elapsed time.Duration) {
	c.Reset()
	in := fractal.InSet
	for i := 0; i+fractal.BytesPerPixel <= len(frame); i += fractal.BytesPerPixel {
		c.pixels++
		if frame[i] == in.R && frame[i+1] == in.G && frame[i+2] == in.B && frame[i+3] == in.A {
			c.inSet++
		}
	}
}

func (c *Coverage) Value() float64 {
	if c.pixels == 0 {
		return 0
	}
	return float64(c.inSet) / float64(c.pixels)
}

func (c *Coverage) Reset() {
	c.inSet = 0
	c.pixels = 0
}
