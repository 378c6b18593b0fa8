package fractal

import (
	"fmt"
	"math"
)

// Limits bounds the scale a Controller will accept.
type Limits struct {
	MinScale float64
	MaxScale float64
}

func DefaultLimits() Limits {
	return Limits{MinScale: MinScale, MaxScale: MaxScale}
}

// Controller owns the current view and the flag telling the renderer the frame
// is stale. The flag lives beside the view rather than inside it, so the
// snapshot handed to the filler never aliases mutable state.
type Controller struct {
	view   View
	start  View
	limits Limits
	base   float64
	dirty  bool
}

type Option func(*Controller)

// WithZoomBase sets the geometric factor applied per unit of Zoom.
func WithZoomBase(base float64) Option {
	return func(c *Controller) { c.base = base }
}

func WithLimits(l Limits) Option {
	return func(c *Controller) { c.limits = l }
}

// NewController starts at the given view. The start scale is clamped into the
// limits and MaxRound is derived from it; Reset returns to this normalized view.
// A new controller is dirty so the first Render always draws.
func NewController(start View, opts ...Option) *Controller {
	c := &Controller{
		limits: DefaultLimits(),
		base:   DefaultZoomBase,
		dirty:  true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !(c.limits.MinScale > 0) || c.limits.MaxScale < c.limits.MinScale || math.IsInf(c.limits.MaxScale, 0) {
		panic(fmt.Sprintf("fractal: invalid scale limits [%g, %g]", c.limits.MinScale, c.limits.MaxScale))
	}
	if !(c.base > 1) || math.IsInf(c.base, 0) {
		panic(fmt.Sprintf("fractal: zoom base must be > 1, got %g", c.base))
	}
	if !(start.Scale > 0) || math.IsInf(start.Scale, 0) {
		panic(fmt.Sprintf("fractal: start scale must be positive and finite, got %g", start.Scale))
	}

	start.Scale, _ = c.clamp(start.Scale)
	start.MaxRound = MaxRoundFor(start.Scale)
	c.start = start
	c.view = start
	return c
}

// View returns a snapshot of the current view.
func (c *Controller) View() View { return c.view }

// DeepestMaxRound is the largest cap the controller can reach within its limits.
func (c *Controller) DeepestMaxRound() int {
	return MaxRoundFor(c.limits.MinScale)
}

func (c *Controller) MarkDirty() { c.dirty = true }

func (c *Controller) IsDirty() bool { return c.dirty }

func (c *Controller) clearDirty() { c.dirty = false }

// Pan moves the center by a screen-space offset in pixels.
func (c *Controller) Pan(dx, dy float64) {
	c.view.CenterX += dx * c.view.Scale
	c.view.CenterY += dy * c.view.Scale
	c.MarkDirty()
}

// Recenter moves the plane point under screen pixel (x, y) of a width x height
// window to the center. Screen rows grow downward, plane y grows upward.
func (c *Controller) Recenter(x, y float64, width, height int) {
	c.view.CenterX += (x - float64(width)/2) * c.view.Scale
	c.view.CenterY += (float64(height)/2 - y) * c.view.Scale
	c.MarkDirty()
}

// Zoom multiplies the scale by base^(-amount): positive amounts zoom in.
// It returns false when the result had to be clamped to a limit, which
// callers use to stop continuous zooming. The frame is marked dirty either way.
func (c *Controller) Zoom(amount float64) bool {
	c.MarkDirty()

	scale := c.view.Scale * math.Pow(c.base, -amount)
	if math.IsNaN(scale) {
		return false
	}

	scale, applied := c.clamp(scale)
	c.view.Scale = scale
	c.view.MaxRound = MaxRoundFor(scale)
	return applied
}

// Reset restores the start view.
func (c *Controller) Reset() {
	c.view = c.start
	c.MarkDirty()
}

func (c *Controller) clamp(scale float64) (float64, bool) {
	if scale > c.limits.MaxScale {
		return c.limits.MaxScale, false
	}
	if scale < c.limits.MinScale {
		return c.limits.MinScale, false
	}
	return scale, true
}
