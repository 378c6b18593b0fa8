// Package navigate turns raw pointer and keyboard input into controller
// calls. It owns the interaction state the view controller does not: the
// pending drag, the double-click window, the auto-zoom amount and the info
// toggle.
package navigate

import (
	"strconv"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/fractal"
)

// Settings are the zoom amounts and pan distance applied per input event.
type Settings struct {
	WheelStep   float64
	KeyStep     float64
	FineStep    float64
	AutoStep    float64
	PanStep     float64
	DoubleClick time.Duration
}

func DefaultSettings() Settings {
	return SettingsFrom(config.DefaultConfig().Navigation)
}

func SettingsFrom(nc config.NavigationConfig) Settings {
	return Settings{
		WheelStep:   nc.WheelStep,
		KeyStep:     nc.KeyStep,
		FineStep:    nc.FineStep,
		AutoStep:    nc.AutoStep,
		PanStep:     nc.PanStep,
		DoubleClick: time.Duration(nc.DoubleClickMs) * time.Millisecond,
	}
}

// Input is everything a front end observed since the previous update.
// Positions are frame pixels.
type Input struct {
	X, Y     float64
	Pressed  bool
	Released bool
	Wheel    float64

	// Zoom is +1 for a zoom-in key press, -1 for zoom-out, 0 otherwise.
	Zoom  int
	Shift bool
	Alt   bool

	// PanX and PanY are key pan directions in -1..1; positive Y is up.
	PanX, PanY int

	Stop       bool
	Reset      bool
	ToggleInfo bool
	Dump       bool
	Capture    bool
	Quit       bool
}

// Result carries the requests a front end must act on itself.
type Result struct {
	Quit    bool
	Dump    bool
	Capture bool
}

type Option func(*Navigator)

func WithClock(now func() time.Time) Option {
	return func(n *Navigator) { n.now = now }
}

func WithLogger(log *bslogger.Logger) Option {
	return func(n *Navigator) { n.log = log }
}

type Navigator struct {
	ctl           *fractal.Controller
	settings      Settings
	width, height int
	now           func() time.Time
	log           *bslogger.Logger

	lastPress     time.Time
	doubleClicked bool
	pressX        float64
	pressY        float64

	auto     float64
	showInfo bool
}

func New(ctl *fractal.Controller, settings Settings, width, height int, opts ...Option) *Navigator {
	n := &Navigator{
		ctl:      ctl,
		settings: settings,
		width:    width,
		height:   height,
		now:      time.Now,
		showInfo: true,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Navigator) Controller() *fractal.Controller { return n.ctl }

// Resize sets the frame size used for recentering.
func (n *Navigator) Resize(width, height int) {
	n.width, n.height = width, height
	n.ctl.MarkDirty()
}

func (n *Navigator) Size() (int, int) { return n.width, n.height }

// AutoZoom is the zoom amount applied on every update without a zoom key.
func (n *Navigator) AutoZoom() float64 { return n.auto }

// ShowInfo reports whether the info text is visible. It starts on and Reset
// turns it back on.
func (n *Navigator) ShowInfo() bool { return n.showInfo }

func (n *Navigator) SetShowInfo(on bool) {
	if n.showInfo != on {
		n.showInfo = on
		n.ctl.MarkDirty()
	}
}

// PlanePoint maps a frame pixel to the complex plane under the current view.
func (n *Navigator) PlanePoint(x, y float64) (float64, float64) {
	v := n.ctl.View()
	re, im := v.PlanePoint(0, 0, n.width, n.height)
	return re + x*v.Scale, im - y*v.Scale
}

// Update applies one round of input in a fixed order: quit, reset, mouse,
// wheel, zoom keys and auto-zoom, key pan, then the info and dump toggles.
func (n *Navigator) Update(in Input) Result {
	if in.Quit {
		return Result{Quit: true}
	}

	if in.Reset {
		n.auto = 0
		n.showInfo = true
		n.ctl.Reset()
		n.debugf("reset to %s", formatView(n.ctl.View()))
	}

	if in.Pressed {
		n.press(in.X, in.Y)
	}
	if in.Released {
		n.release(in.X, in.Y)
	}

	if in.Wheel != 0 {
		n.debugf("scroll: %g", in.Wheel)
		n.ctl.Zoom(in.Wheel * n.settings.WheelStep)
	}

	n.zoom(in)

	if in.PanX != 0 || in.PanY != 0 {
		step := n.settings.PanStep
		n.ctl.Pan(float64(in.PanX)*step, float64(in.PanY)*step)
	}

	if in.ToggleInfo {
		n.showInfo = !n.showInfo
		n.ctl.MarkDirty()
	}

	return Result{Dump: in.Dump, Capture: in.Capture}
}

func (n *Navigator) press(x, y float64) {
	now := n.now()
	interval := now.Sub(n.lastPress)
	n.debugf("click interval %s", interval)

	if !n.lastPress.IsZero() && interval < n.settings.DoubleClick {
		n.doubleClicked = true
		n.ctl.Recenter(x, y, n.width, n.height)
		n.debugf("double clicked, center %s", formatView(n.ctl.View()))
	} else {
		n.doubleClicked = false
		n.pressX, n.pressY = x, y
	}
	n.lastPress = now
}

func (n *Navigator) release(x, y float64) {
	if n.doubleClicked {
		return
	}
	dx, dy := n.pressX-x, -(n.pressY - y)
	if dx == 0 && dy == 0 {
		return
	}
	n.debugf("drag: (%g, %g)", dx, dy)
	n.ctl.Pan(dx, dy)
}

// zoom resolves the key zoom amount. Alt steps slowly and arms auto-zoom, a
// zoom key while auto-zoom runs stops it, shift steps finely. Without a key
// the armed amount is applied, and a clamped auto step disarms it.
func (n *Navigator) zoom(in Input) {
	amount, arm := n.auto, false
	if in.Zoom != 0 {
		dir := float64(in.Zoom)
		switch {
		case in.Alt:
			amount, arm = n.settings.AutoStep*dir, true
		case n.auto != 0:
			amount, arm = 0, true
		case in.Shift:
			amount = n.settings.FineStep * dir
		default:
			amount = n.settings.KeyStep * dir
		}
	}

	if amount != 0 {
		if !n.ctl.Zoom(amount) {
			n.auto = 0
		}
	}

	switch {
	case in.Stop:
		n.auto = 0
	case arm:
		n.auto = amount
	}
}

// InfoLines describes the current view, as shown by the overlay and printed
// by a dump.
func (n *Navigator) InfoLines(elapsed time.Duration) []string {
	return InfoLines(n.ctl.View(), elapsed)
}

func InfoLines(v fractal.View, elapsed time.Duration) []string {
	return []string{
		"x: " + strconv.FormatFloat(v.CenterX, 'f', -1, 64),
		"y: " + strconv.FormatFloat(v.CenterY, 'f', -1, 64),
		"scale: " + strconv.FormatFloat(v.Scale, 'f', -1, 64),
		"rendering time: " + strconv.FormatFloat(elapsed.Seconds(), 'f', 4, 64) + "[sec]",
	}
}

func formatView(v fractal.View) string {
	return "(" + strconv.FormatFloat(v.CenterX, 'g', -1, 64) + ", " +
		strconv.FormatFloat(v.CenterY, 'g', -1, 64) + ") scale " +
		strconv.FormatFloat(v.Scale, 'g', -1, 64)
}

func (n *Navigator) debugf(format string, args ...interface{}) {
	if n.log != nil {
		n.log.Debugf(format, args...)
	}
}
