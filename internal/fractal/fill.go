package fractal

import (
	"fmt"
	"image"

	"github.com/san-kum/mandelview/internal/compute"
)

// BytesPerPixel is the RGBA8 stride of one pixel.
const BytesPerPixel = 4

// CheckFrame validates a frame buffer against its dimensions.
func CheckFrame(buf []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if want := width * height * BytesPerPixel; len(buf) != want {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrBufferSize, width, height, want, len(buf))
	}
	return nil
}

// FrameImage wraps buf as an image without copying it.
func FrameImage(buf []byte, width, height int) (*image.RGBA, error) {
	if err := CheckFrame(buf, width, height); err != nil {
		return nil, err
	}
	return &image.RGBA{Pix: buf, Stride: width * BytesPerPixel, Rect: image.Rect(0, 0, width, height)}, nil
}

// Filler colors every pixel of a frame. Each worker owns a contiguous block of
// rows and writes nothing else.
type Filler struct {
	cpu     *compute.CPU
	palette *Palette
}

func NewFiller(cpu *compute.CPU, palette *Palette) *Filler {
	return &Filler{cpu: cpu, palette: palette}
}

func (f *Filler) Palette() *Palette { return f.palette }

// Fill renders v into buf, an RGBA8 row-major frame of width x height pixels.
func (f *Filler) Fill(buf []byte, width, height int, v View) error {
	if err := CheckFrame(buf, width, height); err != nil {
		return err
	}
	if !v.Valid() {
		panic(fmt.Sprintf("fractal: cannot render view %+v", v))
	}
	if v.MaxRound > f.palette.MaxRound() {
		panic(fmt.Sprintf("fractal: cap %d exceeds palette %q (max %d)", v.MaxRound, f.palette.name, f.palette.MaxRound()))
	}

	minX := v.CenterX - v.Scale*float64(width)/2
	maxY := v.CenterY + v.Scale*float64(height)/2
	stride := width * BytesPerPixel

	f.cpu.ParallelFor(height, 1, func(start, end int) {
		for row := start; row < end; row++ {
			y := maxY - float64(row)*v.Scale
			line := buf[row*stride : (row+1)*stride]
			for col := 0; col < width; col++ {
				x := minX + float64(col)*v.Scale
				round, escaped := Escape(x, y, v.MaxRound)
				f.palette.Put(line[col*BytesPerPixel:(col+1)*BytesPerPixel], round, escaped)
			}
		}
	})
	return nil
}
