// Package overlay composites status text onto a finished frame.
package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	Text   = color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}
	Shadow = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
)

const (
	Left       = 5
	Top        = 5
	LineHeight = 12
)

var face = basicfont.Face7x13

// Draw writes lines top-down from the upper-left corner of dst, each with a
// one pixel shadow so it stays readable on bright bands. It returns the part
// of dst it may have changed.
func Draw(dst draw.Image, lines []string) image.Rectangle {
	ascent := face.Metrics().Ascent.Ceil()
	min := dst.Bounds().Min
	for i, line := range lines {
		x := min.X + Left
		y := min.Y + Top + i*LineHeight + ascent
		drawString(dst, line, x+1, y+1, Shadow)
		drawString(dst, line, x, y, Text)
	}
	return Bounds(lines).Add(min).Intersect(dst.Bounds())
}

func drawString(dst draw.Image, s string, x, y int, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

// Bounds is the area Draw touches for lines.
func Bounds(lines []string) image.Rectangle {
	if len(lines) == 0 {
		return image.Rectangle{}
	}
	meas := &font.Drawer{Face: face}
	w := 0
	for _, line := range lines {
		if lw := meas.MeasureString(line).Ceil(); lw > w {
			w = lw
		}
	}
	h := (len(lines)-1)*LineHeight + face.Metrics().Height.Ceil()
	return image.Rect(Left, Top, Left+w+1, Top+h+1)
}
