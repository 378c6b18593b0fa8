package experiment

import (
	"encoding/json"
	"io"

	"github.com/san-kum/mandelview/internal/fractal"
)

type ExportData struct {
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Workers int          `json:"workers"`
	Palette string       `json:"palette"`
	Start   fractal.View `json:"start"`
	Zoom    float64      `json:"zoom"`
	Repeats int          `json:"repeats"`
	Steps   []StepData   `json:"steps"`
}

type StepData struct {
	Step     int     `json:"step"`
	Scale    float64 `json:"scale"`
	MaxRound int     `json:"max_round"`
	Ms       float64 `json:"ms"`
	InSet    float64 `json:"in_set"`
}

// ExportJSON writes the sweep settings and its samples as indented JSON.
func ExportJSON(w io.Writer, cfg Config, samples []Sample) error {
	data := ExportData{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Workers: cfg.Workers,
		Palette: cfg.Palette,
		Start:   cfg.Start,
		Zoom:    cfg.Zoom,
		Repeats: cfg.Repeats,
		Steps:   make([]StepData, len(samples)),
	}

	ms := Milliseconds(samples)
	for i, s := range samples {
		data.Steps[i] = StepData{
			Step:     s.Step,
			Scale:    s.Scale,
			MaxRound: s.MaxRound,
			Ms:       ms[i],
			InSet:    s.InSet,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
