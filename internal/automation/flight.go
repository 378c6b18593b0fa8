// Package automation plays scripted flights over the plane and renders
// every frame, for animations and reproducible captures.
package automation

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/fractal"
	"gopkg.in/yaml.v3"
)

var ErrFlight = errors.New("automation: invalid flight")

const (
	ActionPan      = "pan"
	ActionZoom     = "zoom"
	ActionRecenter = "recenter"
	ActionReset    = "reset"
	ActionHold     = "hold"
)

// Flight is a scripted sequence of controller moves.
type Flight struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Palette     string `yaml:"palette"`
	Preset      string `yaml:"preset"`
	// Delay between GIF frames in hundredths of a second.
	Delay int    `yaml:"delay"`
	Steps []Step `yaml:"steps"`
}

// Step applies its action once per frame for Frames frames. Pan moves X,Y
// pixels per frame, zoom applies Amount per frame, recenter moves the pixel
// X,Y to the center on its first frame and then holds.
type Step struct {
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Amount float64 `yaml:"amount"`
	Frames int     `yaml:"frames"`
}

func LoadFlight(path string) (*Flight, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f Flight
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// Apply fills unset flight fields from cfg and applies the flight's preset
// and palette to a copy of it.
func (f *Flight) Apply(cfg *config.Config) (*config.Config, error) {
	out := *cfg
	if f.Width <= 0 {
		f.Width = cfg.Width
	}
	if f.Height <= 0 {
		f.Height = cfg.Height
	}
	if f.Delay <= 0 {
		f.Delay = 4
	}
	out.Width, out.Height = f.Width, f.Height
	if f.Palette != "" {
		out.Palette = f.Palette
	}
	if f.Preset != "" {
		if err := out.ApplyPreset(f.Preset); err != nil {
			return nil, err
		}
	}
	return &out, out.Validate()
}

func (f *Flight) Validate() error {
	if len(f.Steps) == 0 {
		return fmt.Errorf("%w: %q has no steps", ErrFlight, f.Name)
	}
	for i, s := range f.Steps {
		switch s.Action {
		case ActionPan, ActionZoom, ActionRecenter, ActionReset, ActionHold:
		default:
			return fmt.Errorf("%w: step %d: unknown action %q", ErrFlight, i+1, s.Action)
		}
		if s.Frames < 0 {
			return fmt.Errorf("%w: step %d: frames %d", ErrFlight, i+1, s.Frames)
		}
	}
	return nil
}

// Views plays the flight on ctl and returns the view of every frame,
// starting with the controller's current view.
func (f *Flight) Views(ctl *fractal.Controller) ([]fractal.View, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	views := []fractal.View{ctl.View()}
	for _, s := range f.Steps {
		frames := max(s.Frames, 1)
		for i := 0; i < frames; i++ {
			switch s.Action {
			case ActionPan:
				ctl.Pan(s.X, s.Y)
			case ActionZoom:
				ctl.Zoom(s.Amount)
			case ActionRecenter:
				if i == 0 {
					ctl.Recenter(s.X, s.Y, f.Width, f.Height)
				}
			case ActionReset:
				if i == 0 {
					ctl.Reset()
				}
			}
			views = append(views, ctl.View())
		}
	}
	return views, nil
}
