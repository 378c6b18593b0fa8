// Package fractal is the escape-time engine behind mandelview.
//
// It maps frame pixels to points of the complex plane, runs the Mandelbrot
// divergence test for each point, and turns the escape round into an RGBA color:
//
//   - [View]: immutable snapshot of center, scale and iteration cap
//   - [Controller]: owns the current view and the dirty flag; pan, zoom, recenter, reset
//   - [Escape]: divergence test for one point
//   - [Palette]: banded color-stop table
//   - [Filler]: parallel fill of an RGBA8 frame buffer
//   - [Engine]: renders a frame only when the controller reports it stale
//
// # Example
//
//	ctl := fractal.NewController(fractal.DefaultView())
//	eng, _ := fractal.NewEngine(ctl, fractal.Classic(), compute.NewCPU(0))
//	buf := make([]byte, 640*480*4)
//	elapsed, drawn, err := eng.Render(buf, 640, 480)
//
// # Thread Safety
//
// A Controller is meant to be driven from one goroutine. Render reads a snapshot
// of the view and fans the fill out over disjoint row ranges, so the frame is the
// same regardless of how many workers run it.
package fractal
