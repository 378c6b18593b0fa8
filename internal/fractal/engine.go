package fractal

import (
	"fmt"
	"time"

	"github.com/san-kum/mandelview/internal/compute"
)

// Engine renders the controller's view into caller-owned frame buffers,
// skipping the fill while the view has not changed.
type Engine struct {
	ctl    *Controller
	filler *Filler
	frames int
}

// NewEngine pairs a controller with a palette. The palette must cover the
// deepest cap the controller can reach.
func NewEngine(ctl *Controller, palette *Palette, cpu *compute.CPU) (*Engine, error) {
	if need := ctl.DeepestMaxRound(); palette.MaxRound() < need {
		return nil, fmt.Errorf("%w: %q covers %d rounds, controller reaches %d",
			ErrPaletteRange, palette.Name(), palette.MaxRound(), need)
	}
	return &Engine{ctl: ctl, filler: NewFiller(cpu, palette)}, nil
}

func (e *Engine) Controller() *Controller { return e.ctl }

// Frames counts completed fills.
func (e *Engine) Frames() int { return e.frames }

// Render fills buf when the view is dirty and clears the flag once the fill
// is complete. When nothing changed it returns immediately with drawn false
// and buf untouched.
func (e *Engine) Render(buf []byte, width, height int) (elapsed time.Duration, drawn bool, err error) {
	if err := CheckFrame(buf, width, height); err != nil {
		return 0, false, err
	}
	if !e.ctl.IsDirty() {
		return 0, false, nil
	}

	start := time.Now()
	if err := e.filler.Fill(buf, width, height, e.ctl.View()); err != nil {
		return 0, false, err
	}
	elapsed = time.Since(start)

	e.ctl.clearDirty()
	e.frames++
	return elapsed, true, nil
}
