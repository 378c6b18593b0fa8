// Package viz renders the Mandelbrot view in a terminal.
//
// Each cell shows two stacked pixels with the upper half block, the top
// pixel as foreground and the bottom one as background, so a true-color
// terminal of W x H cells displays a W x 2(H-2) frame above a two line
// status bar.
//
// # Key Bindings
//
//	+/-      zoom in and out (alt arms auto-zoom)
//	< >      fine zoom
//	hjkl     pan, arrows work too
//	esc      stop auto-zoom
//	space    reset the view
//	i        toggle the status bar
//	t        cycle status bar themes
//	d        show the view in the status bar
//	s        save a snapshot
//	q        quit
//
// The mouse drags, double-clicks and scrolls as in the window front end.
package viz
