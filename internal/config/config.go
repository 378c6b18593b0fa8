package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/mandelview/internal/fractal"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth   = 640
	DefaultHeight  = 480
	DefaultPalette = "classic"
	DefaultDataDir = ".mandelview"

	DefaultWheelStep   = 1.0
	DefaultKeyStep     = 3.0
	DefaultFineStep    = 0.1
	DefaultAutoStep    = 0.2
	DefaultPanStep     = 10.0
	DefaultDoubleClick = 700
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Width      int              `yaml:"width"`
	Height     int              `yaml:"height"`
	Workers    int              `yaml:"workers"`
	Palette    string           `yaml:"palette"`
	Preset     string           `yaml:"preset"`
	View       ViewConfig       `yaml:"view"`
	Zoom       ZoomConfig       `yaml:"zoom"`
	Navigation NavigationConfig `yaml:"navigation"`
	DataDir    string           `yaml:"data_dir"`
	Log        LogConfig        `yaml:"log"`
}

type ViewConfig struct {
	CenterX float64 `yaml:"center_x"`
	CenterY float64 `yaml:"center_y"`
	Scale   float64 `yaml:"scale"`
}

type ZoomConfig struct {
	Base     float64 `yaml:"base"`
	MinScale float64 `yaml:"min_scale"`
	MaxScale float64 `yaml:"max_scale"`
}

// NavigationConfig holds the input policy speeds. Steps are zoom amounts
// passed to the controller; PanStep is in pixels.
type NavigationConfig struct {
	WheelStep     float64 `yaml:"wheel_step"`
	KeyStep       float64 `yaml:"key_step"`
	FineStep      float64 `yaml:"fine_step"`
	AutoStep      float64 `yaml:"auto_step"`
	PanStep       float64 `yaml:"pan_step"`
	DoubleClickMs int     `yaml:"double_click_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Palette: DefaultPalette,
		View: ViewConfig{
			CenterX: fractal.DefaultCenterX,
			CenterY: fractal.DefaultCenterY,
			Scale:   fractal.DefaultScale,
		},
		Zoom: ZoomConfig{
			Base:     fractal.DefaultZoomBase,
			MinScale: fractal.MinScale,
			MaxScale: fractal.MaxScale,
		},
		Navigation: NavigationConfig{
			WheelStep:     DefaultWheelStep,
			KeyStep:       DefaultKeyStep,
			FineStep:      DefaultFineStep,
			AutoStep:      DefaultAutoStep,
			PanStep:       DefaultPanStep,
			DoubleClickMs: DefaultDoubleClick,
		},
		DataDir: DefaultDataDir,
		Log: LogConfig{
			Verbosity: VerbosityNormal,
		},
	}
}

// Load reads a YAML file over the defaults. A preset named in the file
// replaces the view section.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Preset != "" {
		if err := cfg.ApplyPreset(cfg.Preset); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("%w: unknown preset %q (available: %v)", ErrInvalid, name, ListPresets())
	}
	c.Preset = name
	c.View = p.View
	return nil
}

// Validate checks every field the engine relies on.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	}
	if !finite(c.Zoom.Base, c.Zoom.MinScale, c.Zoom.MaxScale) {
		return fmt.Errorf("%w: zoom base %g, scale limits [%g, %g] must be finite", ErrInvalid, c.Zoom.Base, c.Zoom.MinScale, c.Zoom.MaxScale)
	}
	if !finite(c.View.CenterX, c.View.CenterY, c.View.Scale) {
		return fmt.Errorf("%w: view (%g, %g) scale %g must be finite", ErrInvalid, c.View.CenterX, c.View.CenterY, c.View.Scale)
	}
	if !(c.Zoom.Base > 1) {
		return fmt.Errorf("%w: zoom base %g must be > 1", ErrInvalid, c.Zoom.Base)
	}
	if !(c.Zoom.MinScale > 0) || c.Zoom.MaxScale < c.Zoom.MinScale {
		return fmt.Errorf("%w: scale limits [%g, %g]", ErrInvalid, c.Zoom.MinScale, c.Zoom.MaxScale)
	}
	if !(c.View.Scale > 0) {
		return fmt.Errorf("%w: view scale %g", ErrInvalid, c.View.Scale)
	}

	p, err := fractal.LookupPalette(c.Palette)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if need := fractal.MaxRoundFor(c.Zoom.MinScale); p.MaxRound() < need {
		return fmt.Errorf("%w: palette %q covers %d rounds, min scale needs %d", ErrInvalid, c.Palette, p.MaxRound(), need)
	}

	n := c.Navigation
	if !finite(n.WheelStep, n.KeyStep, n.FineStep, n.AutoStep, n.PanStep) {
		return fmt.Errorf("%w: navigation steps must be finite", ErrInvalid)
	}
	if n.WheelStep < 0 || n.KeyStep < 0 || n.FineStep < 0 || n.AutoStep < 0 || n.PanStep < 0 || n.DoubleClickMs < 0 {
		return fmt.Errorf("%w: navigation steps must not be negative", ErrInvalid)
	}
	return c.Log.validate()
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// StartView is the view the controller starts from and resets to.
func (c *Config) StartView() fractal.View {
	return fractal.View{
		CenterX:  c.View.CenterX,
		CenterY:  c.View.CenterY,
		Scale:    c.View.Scale,
		MaxRound: fractal.MaxRoundFor(c.View.Scale),
	}
}

func (c *Config) ControllerOptions() []fractal.Option {
	return []fractal.Option{
		fractal.WithZoomBase(c.Zoom.Base),
		fractal.WithLimits(fractal.Limits{MinScale: c.Zoom.MinScale, MaxScale: c.Zoom.MaxScale}),
	}
}

func (c *Config) NewController() *fractal.Controller {
	return fractal.NewController(c.StartView(), c.ControllerOptions()...)
}
