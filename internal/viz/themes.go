package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/mandelview/internal/fractal"
)

// Theme colors the status bar. Every fractal palette has one, taken from its
// color stops so the bar matches the bands above it.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
}

var CurrentTheme = ThemeFor(fractal.Classic())

// ThemeFor derives a theme from p: the background is the outermost band
// darkened, values use the second to last stop.
func ThemeFor(p *fractal.Palette) Theme {
	stops := p.Stops()
	return Theme{
		Name:       p.Name(),
		Primary:    shade(stops[len(stops)-2], 1),
		Background: shade(stops[0], 0.25),
		Text:       lipgloss.Color("#e0e0e0"),
		Muted:      shade(stops[len(stops)/2], 0.6),
		Warning:    lipgloss.Color("#ff8800"),
	}
}

func shade(c color.RGBA, f float64) lipgloss.Color {
	return lipgloss.Color(hexColor(int(float64(c.R)*f), int(float64(c.G)*f), int(float64(c.B)*f)))
}

// SetTheme switches to the theme of the named palette. Unknown names keep the
// current theme.
func SetTheme(name string) {
	if p, err := fractal.LookupPalette(name); err == nil {
		CurrentTheme = ThemeFor(p)
	}
}

func nextTheme() {
	names := fractal.PaletteNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}
