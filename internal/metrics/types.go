package metrics

import "time"

// Metric is a statistic over rendered frames. Each metric documents whether
// it covers every observed frame or only the latest one.
type Metric interface {
	Name() string
	Observe(frame []byte, elapsed time.Duration)
	Value() float64
	Reset()
}

// Collect snapshots the current value of each metric by name.
func Collect(ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
