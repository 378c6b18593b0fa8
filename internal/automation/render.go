package automation

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/fractal"
	"golang.org/x/sync/errgroup"
)

// Renderer fills flight frames concurrently, each into its own buffer.
type Renderer struct {
	filler      *fractal.Filler
	width       int
	height      int
	concurrency int
}

// NewRenderer splits workers between frames running at once and rows within
// a frame.
func NewRenderer(p *fractal.Palette, width, height, workers, concurrency int) *Renderer {
	cpu := compute.NewCPU(workers)
	if concurrency <= 0 {
		concurrency = 1
	}
	perFrame := max(cpu.Workers()/concurrency, 1)
	return &Renderer{
		filler:      fractal.NewFiller(compute.NewCPU(perFrame), p),
		width:       width,
		height:      height,
		concurrency: concurrency,
	}
}

// Render returns one image per view in order. It stops starting new frames
// once ctx is done or a frame fails.
func (r *Renderer) Render(ctx context.Context, views []fractal.View) ([]*image.RGBA, error) {
	for _, v := range views {
		if v.MaxRound > r.filler.Palette().MaxRound() {
			return nil, fmt.Errorf("%w: cap %d exceeds palette %q", fractal.ErrPaletteRange, v.MaxRound, r.filler.Palette().Name())
		}
	}

	frames := make([]*image.RGBA, len(views))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, v := range views {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf := make([]byte, r.width*r.height*fractal.BytesPerPixel)
			if err := r.filler.Fill(buf, r.width, r.height, v); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			img, err := fractal.FrameImage(buf, r.width, r.height)
			if err != nil {
				return err
			}
			frames[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

// WriteGIF encodes frames as a looping animation with the web-safe palette.
func WriteGIF(w io.Writer, frames []*image.RGBA, delay int) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		b := frame.Bounds()
		pal := image.NewPaletted(b, palette.WebSafe)
		draw.Draw(pal, b, frame, b.Min, draw.Src)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

// WritePNGs stores frames as dir/frame_0000.png onwards.
func WritePNGs(dir string, frames []*image.RGBA) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(frames))
	for i, frame := range frames {
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		f, err := os.Create(path)
		if err != nil {
			return paths, err
		}
		if err := png.Encode(f, frame); err != nil {
			f.Close()
			return paths, err
		}
		if err := f.Close(); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Fly plays a flight and writes it to out: a GIF when out ends in .gif,
// otherwise a directory of PNG frames.
func Fly(ctx context.Context, f *Flight, cfg *config.Config, out string, concurrency int, log *bslogger.Logger) error {
	fcfg, err := f.Apply(cfg)
	if err != nil {
		return err
	}
	p, err := fractal.LookupPalette(fcfg.Palette)
	if err != nil {
		return err
	}

	views, err := f.Views(fcfg.NewController())
	if err != nil {
		return err
	}
	log.Infof("Flight %q: %d frames at %dx%d", f.Name, len(views), f.Width, f.Height)

	frames, err := NewRenderer(p, f.Width, f.Height, fcfg.Workers, concurrency).Render(ctx, views)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(out), ".gif") {
		file, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := WriteGIF(file, frames, f.Delay); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return err
		}
		log.Infof("Saved animation to %s", out)
		return nil
	}

	paths, err := WritePNGs(out, frames)
	if err != nil {
		return err
	}
	log.Infof("Saved %d frames to %s", len(paths), out)
	return nil
}
