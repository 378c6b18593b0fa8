package fractal

import (
	"math"
	"testing"
)

func TestPlanePointCenter(t *testing.T) {
	tests := []struct {
		w, h int
		v    View
	}{
		{640, 480, DefaultView()},
		{800, 600, View{CenterX: 0.25, CenterY: -0.1, Scale: 1e-3, MaxRound: 512}},
		{1920, 1080, View{CenterX: -0.743643887, CenterY: 0.131825904, Scale: 1e-9, MaxRound: 1024}},
		{2, 2, View{CenterX: 1, CenterY: 1, Scale: 0.5, MaxRound: 512}},
	}

	for _, tt := range tests {
		x, y := tt.v.PlanePoint(tt.w/2, tt.h/2, tt.w, tt.h)
		tol := tt.v.Scale * 1e-6
		if math.Abs(x-tt.v.CenterX) > tol || math.Abs(y-tt.v.CenterY) > tol {
			t.Errorf("%dx%d: expected (%g, %g), got (%g, %g)", tt.w, tt.h, tt.v.CenterX, tt.v.CenterY, x, y)
		}
	}
}

func TestPlanePointCorners(t *testing.T) {
	v := DefaultView()
	x, y := v.PlanePoint(0, 0, 640, 480)
	if math.Abs(x-(-0.7-1.6)) > 1e-12 || math.Abs(y-1.2) > 1e-12 {
		t.Errorf("top-left: expected (-2.3, 1.2), got (%g, %g)", x, y)
	}

	_, yBottom := v.PlanePoint(0, 479, 640, 480)
	if yBottom >= y {
		t.Errorf("expected lower rows to map to smaller y, got top %g bottom %g", y, yBottom)
	}
}

func TestPlanePointDeterministic(t *testing.T) {
	v := View{CenterX: -0.1234, CenterY: 0.5678, Scale: 3.3e-7, MaxRound: 1024}
	x1, y1 := v.PlanePoint(17, 311, 640, 480)
	x2, y2 := v.PlanePoint(17, 311, 640, 480)
	if x1 != x2 || y1 != y2 {
		t.Error("expected identical results for identical inputs")
	}
}

func TestBounds(t *testing.T) {
	minX, minY, maxX, maxY := DefaultView().Bounds(640, 480)
	if math.Abs(minX+2.3) > 1e-12 || math.Abs(maxX-0.9) > 1e-12 {
		t.Errorf("x range: got [%g, %g]", minX, maxX)
	}
	if math.Abs(minY+1.2) > 1e-12 || math.Abs(maxY-1.2) > 1e-12 {
		t.Errorf("y range: got [%g, %g]", minY, maxY)
	}
}

func TestMaxRoundFor(t *testing.T) {
	tests := []struct {
		scale float64
		want  int
	}{
		{0.1, 512},
		{0.005, 512},
		{5.0001e-6, 512},
		{5e-6, 1024},
		{1e-10, 1024},
		{MinScale, 1024},
	}
	for _, tt := range tests {
		if got := MaxRoundFor(tt.scale); got != tt.want {
			t.Errorf("scale %g: expected %d, got %d", tt.scale, tt.want, got)
		}
	}
}

func TestViewValid(t *testing.T) {
	if !DefaultView().Valid() {
		t.Error("default view should be valid")
	}
	bad := []View{
		{Scale: 0, MaxRound: 512},
		{Scale: -1, MaxRound: 512},
		{Scale: math.NaN(), MaxRound: 512},
		{Scale: math.Inf(1), MaxRound: 512},
		{CenterX: math.NaN(), Scale: 0.1, MaxRound: 512},
		{Scale: 0.1, MaxRound: 0},
	}
	for _, v := range bad {
		if v.Valid() {
			t.Errorf("expected %+v to be invalid", v)
		}
	}
}
