package fractal

import "errors"

// Errors returned for caller contract violations. Broken invariants inside the
// engine panic instead.
var (
	// ErrDimensions indicates a zero or negative frame width or height.
	ErrDimensions = errors.New("fractal: frame dimensions must be positive")

	// ErrBufferSize indicates a frame buffer whose length is not width*height*4.
	ErrBufferSize = errors.New("fractal: frame buffer size mismatch")

	// ErrPalette indicates a color table with too few stops or a bad band size.
	ErrPalette = errors.New("fractal: invalid palette")

	// ErrUnknownPalette indicates a lookup of a palette name that is not built in.
	ErrUnknownPalette = errors.New("fractal: unknown palette")

	// ErrPaletteRange indicates a palette too short for the controller's deepest cap.
	ErrPaletteRange = errors.New("fractal: palette does not cover iteration cap")
)
