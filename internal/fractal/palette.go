package fractal

import (
	"fmt"
	"image/color"
	"sort"
)

// BandSize is the number of escape rounds spanned by one pair of stops.
const BandSize = 256

// InSet is the color of points that never escaped.
var InSet = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}

// Palette maps escape rounds to colors by interpolating linearly between
// consecutive stops, one band of rounds per stop pair.
type Palette struct {
	name  string
	band  int
	stops []color.RGBA
}

func NewPalette(name string, band int, stops ...color.RGBA) (*Palette, error) {
	if band < 1 {
		return nil, fmt.Errorf("%w: band size %d", ErrPalette, band)
	}
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: %q needs at least 2 stops, got %d", ErrPalette, name, len(stops))
	}
	p := &Palette{name: name, band: band, stops: make([]color.RGBA, len(stops))}
	copy(p.stops, stops)
	return p, nil
}

func mustPalette(name string, stops ...color.RGBA) *Palette {
	p, err := NewPalette(name, BandSize, stops...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Palette) Name() string { return p.name }
func (p *Palette) Band() int    { return p.band }

func (p *Palette) Stops() []color.RGBA {
	out := make([]color.RGBA, len(p.stops))
	copy(out, p.stops)
	return out
}

// MaxRound is the largest iteration cap the table can serve. Escaped rounds
// are always below the cap, so the last band is never indexed past its end.
func (p *Palette) MaxRound() int {
	return (len(p.stops) - 1) * p.band
}

// Color returns InSet for bounded points and the banded color otherwise.
// A round beyond the table is a programming error and panics.
func (p *Palette) Color(round int, escaped bool) color.RGBA {
	if !escaped {
		return InSet
	}

	idx := round / p.band
	if round < 0 || idx+1 >= len(p.stops) {
		panic(fmt.Sprintf("fractal: round %d outside palette %q (max %d)", round, p.name, p.MaxRound()))
	}
	offset := round % p.band

	c0, c1 := p.stops[idx], p.stops[idx+1]
	lerp := func(a, b uint8) uint8 {
		return uint8(((int(a)*(p.band-offset) + int(b)*offset) / p.band) & 0xff)
	}

	return color.RGBA{R: lerp(c0.R, c1.R), G: lerp(c0.G, c1.G), B: lerp(c0.B, c1.B), A: 0xff}
}

// Put writes the color for (round, escaped) into the 4 bytes of px.
func (p *Palette) Put(px []byte, round int, escaped bool) {
	c := p.Color(round, escaped)
	px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
}

var (
	classic = mustPalette("classic",
		color.RGBA{R: 0x00, G: 0x00, B: 0x80, A: 0xff},
		color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff},
		color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff},
		color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff},
		color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	)

	palettes = map[string]*Palette{
		"classic": classic,
		"fire": mustPalette("fire",
			color.RGBA{R: 0x20, G: 0x00, B: 0x00, A: 0xff},
			color.RGBA{R: 0xff, G: 0x40, B: 0x00, A: 0xff},
			color.RGBA{R: 0xff, G: 0xc0, B: 0x00, A: 0xff},
			color.RGBA{R: 0xff, G: 0xff, B: 0x80, A: 0xff},
			color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		),
		"ocean": mustPalette("ocean",
			color.RGBA{R: 0x00, G: 0x10, B: 0x30, A: 0xff},
			color.RGBA{R: 0x00, G: 0x60, B: 0x90, A: 0xff},
			color.RGBA{R: 0x00, G: 0xc0, B: 0xc0, A: 0xff},
			color.RGBA{R: 0x80, G: 0xff, B: 0xe0, A: 0xff},
			color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		),
		"mono": mustPalette("mono",
			color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff},
			color.RGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xff},
			color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xff},
			color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff},
			color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		),
	}
)

// Classic returns the reference navy-green-yellow-cyan-blue table.
func Classic() *Palette { return classic }

func LookupPalette(name string) (*Palette, error) {
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPalette, name, PaletteNames())
	}
	return p, nil
}

func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
