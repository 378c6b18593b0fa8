package fractal

import (
	"fmt"
	"math"
)

// Escape runs z = z*z + c from z = 0 for c = x + iy and reports the first
// round at which |z|^2 >= 4. Rounds are 1-indexed; escaped is false when the
// point stays bounded for maxRound-1 rounds.
func Escape(x, y float64, maxRound int) (round int, escaped bool) {
	if maxRound < 1 {
		panic(fmt.Sprintf("fractal: maxRound must be >= 1, got %d", maxRound))
	}

	// |c| >= 2 leaves the disk on the first step.
	if math.Abs(x) >= 2 || math.Abs(y) >= 2 {
		return 1, true
	}

	var zx, zy, zx2, zy2 float64
	for round = 1; round < maxRound; round++ {
		zx, zy = zx2-zy2+x, 2*zx*zy+y

		// squares are reused by the next step
		zx2 = zx * zx
		zy2 = zy * zy

		if zx2+zy2 >= 4 {
			return round, true
		}
	}
	return 0, false
}
