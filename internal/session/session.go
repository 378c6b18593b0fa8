// Package session wires a controller, engine, navigator and frame buffer
// into one interactive viewer state shared by the window and terminal
// front ends.
package session

import (
	"fmt"
	"image"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/san-kum/mandelview/internal/compute"
	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/fractal"
	"github.com/san-kum/mandelview/internal/metrics"
	"github.com/san-kum/mandelview/internal/navigate"
	"github.com/san-kum/mandelview/internal/overlay"
	"github.com/san-kum/mandelview/internal/storage"
)

// Observer is notified after every completed fill.
type Observer interface {
	OnFrame(v fractal.View, elapsed time.Duration)
}

type Session struct {
	palette   *fractal.Palette
	ctl       *fractal.Controller
	eng       *fractal.Engine
	nav       *navigate.Navigator
	log       *bslogger.Logger
	metrics   []metrics.Metric
	observers []Observer
	overlay   bool

	width, height int
	buf           []byte
	img           *image.RGBA
	elapsed       time.Duration
}

// New builds a session from cfg with a width x height frame. log may be nil.
func New(cfg *config.Config, width, height int, log *bslogger.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	palette, err := fractal.LookupPalette(cfg.Palette)
	if err != nil {
		return nil, err
	}

	ctl := cfg.NewController()
	eng, err := fractal.NewEngine(ctl, palette, compute.NewCPU(cfg.Workers))
	if err != nil {
		return nil, err
	}

	opts := []navigate.Option{}
	if log != nil {
		opts = append(opts, navigate.WithLogger(log))
	}

	s := &Session{
		palette: palette,
		ctl:     ctl,
		eng:     eng,
		nav:     navigate.New(ctl, navigate.SettingsFrom(cfg.Navigation), width, height, opts...),
		log:     log,
		overlay: true,
	}
	if err := s.allocate(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) allocate(width, height int) error {
	buf := make([]byte, max(width, 0)*max(height, 0)*fractal.BytesPerPixel)
	img, err := fractal.FrameImage(buf, width, height)
	if err != nil {
		return err
	}
	s.width, s.height = width, height
	s.buf, s.img = buf, img
	return nil
}

// SetOverlay controls whether the info text is drawn into the frame. Front
// ends that show the info elsewhere turn it off.
func (s *Session) SetOverlay(on bool) {
	s.overlay = on
	s.ctl.MarkDirty()
}

func (s *Session) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Session) AddObserver(o Observer)     { s.observers = append(s.observers, o) }

func (s *Session) Controller() *fractal.Controller { return s.ctl }
func (s *Session) Engine() *fractal.Engine         { return s.eng }
func (s *Session) Navigator() *navigate.Navigator  { return s.nav }

func (s *Session) Size() (int, int)       { return s.width, s.height }
func (s *Session) Frame() []byte          { return s.buf }
func (s *Session) Image() *image.RGBA     { return s.img }
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Resize replaces the frame buffer and forces a full redraw. A size equal to
// the current one is a no-op, and so is a zero size, which minimized windows
// report on some platforms.
func (s *Session) Resize(width, height int) error {
	if width == s.width && height == s.height {
		return nil
	}
	if width == 0 || height == 0 {
		return nil
	}
	if err := s.allocate(width, height); err != nil {
		return err
	}
	s.nav.Resize(width, height)
	return nil
}

func (s *Session) Update(in navigate.Input) navigate.Result {
	return s.nav.Update(in)
}

// Render redraws the frame if the view changed, then feeds metrics and
// observers and composites the info overlay. drawn is false when the frame
// was already current.
func (s *Session) Render() (drawn bool, err error) {
	elapsed, drawn, err := s.eng.Render(s.buf, s.width, s.height)
	if err != nil || !drawn {
		return false, err
	}
	s.elapsed = elapsed

	v := s.ctl.View()
	for _, m := range s.metrics {
		m.Observe(s.buf, elapsed)
	}
	for _, o := range s.observers {
		o.OnFrame(v, elapsed)
	}
	if s.log != nil {
		s.log.Debugf("rendering time: %s", elapsed)
	}

	if s.overlay && s.nav.ShowInfo() {
		overlay.Draw(s.img, s.InfoLines())
	}
	return true, nil
}

func (s *Session) InfoLines() []string {
	return navigate.InfoLines(s.ctl.View(), s.elapsed)
}

// Capture stores the current frame with its view and metric values.
func (s *Session) Capture(store *storage.Store) (string, error) {
	if err := store.Init(); err != nil {
		return "", err
	}
	id, err := store.Save(storage.SnapshotMetadata{
		View:      s.ctl.View(),
		Palette:   s.palette.Name(),
		ElapsedMs: float64(s.elapsed) / float64(time.Millisecond),
		Metrics:   metrics.Collect(s.metrics...),
	}, s.img)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	if s.log != nil {
		s.log.Infof("Saved snapshot %s to %s", id, store.Dir())
	}
	return id, nil
}
