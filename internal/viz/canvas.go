package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/mandelview/internal/fractal"
)

// Upper half block: foreground paints the top pixel, background the bottom.
const halfBlock = "▀"

type cell struct {
	top, bottom string
}

// Canvas holds one terminal cell per pair of vertically stacked pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]cell
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]cell, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]cell, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = cell{top: "#000000", bottom: "#000000"}
		}
	}
}

// PixelSize is the frame size the canvas displays.
func (c *Canvas) PixelSize() (int, int) {
	return c.Width, c.Height * 2
}

// Load copies an RGBA8 frame of PixelSize into the cells.
func (c *Canvas) Load(frame []byte) {
	w, h := c.PixelSize()
	if len(frame) != w*h*fractal.BytesPerPixel {
		return
	}
	stride := w * fractal.BytesPerPixel
	for row := 0; row < c.Height; row++ {
		top := frame[2*row*stride : (2*row+1)*stride]
		bottom := frame[(2*row+1)*stride : (2*row+2)*stride]
		for col := 0; col < c.Width; col++ {
			o := col * fractal.BytesPerPixel
			c.Grid[row][col] = cell{
				top:    hexColor(int(top[o]), int(top[o+1]), int(top[o+2])),
				bottom: hexColor(int(bottom[o]), int(bottom[o+1]), int(bottom[o+2])),
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, line := range c.Grid {
		for _, cl := range line {
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(cl.top)).
				Background(lipgloss.Color(cl.bottom))
			b.WriteString(style.Render(halfBlock))
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
