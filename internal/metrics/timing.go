package metrics

import "time"

// RenderTime tracks fill durations; Value is the mean in milliseconds.
type RenderTime struct {
	name  string
	sum   time.Duration
	min   time.Duration
	max   time.Duration
	count int
}

func NewRenderTime() *RenderTime {
	return &RenderTime{name: "render_ms"}
}

func (r *RenderTime) Name() string {
	return r.name
}

func (r *RenderTime) Observe(frame []byte, elapsed time.Duration) {
	if r.count == 0 || elapsed < r.min {
		r.min = elapsed
	}
	if elapsed > r.max {
		r.max = elapsed
	}
	r.sum += elapsed
	r.count++
}

func (r *RenderTime) Value() float64 {
	if r.count == 0 {
		return 0
	}
	return float64(r.sum) / float64(r.count) / float64(time.Millisecond)
}

func (r *RenderTime) Min() time.Duration { return r.min }
func (r *RenderTime) Max() time.Duration { return r.max }
func (r *RenderTime) Count() int         { return r.count }

func (r *RenderTime) Reset() {
	*r = RenderTime{name: r.name}
}
