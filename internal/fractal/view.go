package fractal

import "math"

const (
	DefaultCenterX  = -0.7
	DefaultCenterY  = 0.0
	DefaultScale    = 0.005
	DefaultMaxRound = 512

	// DeepMaxRound is the cap once the scale drops to DeepScale or below.
	DeepMaxRound = 1024
	DeepScale    = 5e-6

	DefaultZoomBase = 1.07

	// MinScale is float64 machine epsilon.
	MinScale = 0x1p-52
	MaxScale = 0.1
)

// View is a snapshot of the visible window over the complex plane.
// Scale is measured in plane units per pixel.
type View struct {
	CenterX  float64 `json:"center_x" yaml:"center_x"`
	CenterY  float64 `json:"center_y" yaml:"center_y"`
	Scale    float64 `json:"scale" yaml:"scale"`
	MaxRound int     `json:"max_round" yaml:"max_round"`
}

func DefaultView() View {
	return View{
		CenterX:  DefaultCenterX,
		CenterY:  DefaultCenterY,
		Scale:    DefaultScale,
		MaxRound: DefaultMaxRound,
	}
}

// MaxRoundFor returns the iteration cap used at the given scale.
func MaxRoundFor(scale float64) int {
	if scale > DeepScale {
		return DefaultMaxRound
	}
	return DeepMaxRound
}

// PlanePoint maps pixel (col, row) of a width x height frame to the plane.
// Row 0 is the top edge and maps to the largest imaginary part.
func (v View) PlanePoint(col, row, width, height int) (x, y float64) {
	x = v.CenterX - v.Scale*float64(width)/2 + float64(col)*v.Scale
	y = v.CenterY + v.Scale*float64(height)/2 - float64(row)*v.Scale
	return x, y
}

// Bounds returns the plane rectangle covered by a width x height frame.
func (v View) Bounds(width, height int) (minX, minY, maxX, maxY float64) {
	halfW := v.Scale * float64(width) / 2
	halfH := v.Scale * float64(height) / 2
	return v.CenterX - halfW, v.CenterY - halfH, v.CenterX + halfW, v.CenterY + halfH
}

// Valid reports whether the view can be rendered.
func (v View) Valid() bool {
	return v.Scale > 0 && !math.IsInf(v.Scale, 0) &&
		!math.IsNaN(v.CenterX) && !math.IsInf(v.CenterX, 0) &&
		!math.IsNaN(v.CenterY) && !math.IsInf(v.CenterY, 0) &&
		v.MaxRound >= 1
}
