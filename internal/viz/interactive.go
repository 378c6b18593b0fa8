package viz

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/navigate"
	"github.com/san-kum/mandelview/internal/session"
	"github.com/san-kum/mandelview/internal/storage"
)

const (
	statusLines = 2
	historySize = 60
	tickRate    = time.Second / 30
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type model struct {
	cfg   *config.Config
	store *storage.Store
	log   *bslogger.Logger

	sess    *session.Session
	canvas  *Canvas
	history []float64
	message string
	err     error

	width, height int
}

func NewInteractiveApp(cfg *config.Config, store *storage.Store, log *bslogger.Logger) *model {
	SetTheme(cfg.Palette)
	return &model{
		cfg:    cfg,
		store:  store,
		log:    log,
		width:  80,
		height: 24,
	}
}

func (m *model) Init() tea.Cmd { return tick() }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if err := m.resize(msg.Width, msg.Height); err != nil {
			m.err = err
			return m, tea.Quit
		}
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			return m, nil
		}
		m.apply(mouseInput(msg))
	case TickMsg:
		m.apply(navigate.Input{})
		return m, tick()
	}
	return m, nil
}

// resize builds the session on the first size message. The start scale is
// widened so the terminal shows the same part of the plane as a window of
// the configured width.
func (m *model) resize(width, height int) error {
	m.width, m.height = width, height
	rows := max(height-statusLines, 1)
	w, h := max(width, 1), rows*2

	if m.sess == nil {
		cfg := *m.cfg
		cfg.View.Scale = m.cfg.View.Scale * float64(m.cfg.Width) / float64(w)
		cfg.View.Scale = min(max(cfg.View.Scale, cfg.Zoom.MinScale), cfg.Zoom.MaxScale)
		sess, err := session.New(&cfg, w, h, m.log)
		if err != nil {
			return err
		}
		// the status bar carries the info text; cells are too coarse for glyphs
		sess.SetOverlay(false)
		m.sess = sess
	} else if err := m.sess.Resize(w, h); err != nil {
		return err
	}
	m.canvas = NewCanvas(w, rows)
	m.render()
	return nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	in := navigate.Input{Alt: msg.Alt}
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "+", "=", "pgup", "alt++", "alt+=", "alt+pgup":
		in.Zoom = 1
	case "-", "pgdown", "alt+-", "alt+pgdown":
		in.Zoom = -1
	case ">":
		in.Zoom, in.Shift = 1, true
	case "<":
		in.Zoom, in.Shift = -1, true
	case "up", "k":
		in.PanY = 1
	case "down", "j":
		in.PanY = -1
	case "left", "h":
		in.PanX = -1
	case "right", "l":
		in.PanX = 1
	case "esc":
		in.Stop = true
	case " ":
		in.Reset = true
	case "i":
		in.ToggleInfo = true
	case "t":
		nextTheme()
	case "d":
		in.Dump = true
	case "s":
		in.Capture = true
	}
	m.apply(in)
	return nil
}

func mouseInput(msg tea.MouseMsg) navigate.Input {
	in := navigate.Input{X: float64(msg.X), Y: float64(msg.Y * 2), Alt: msg.Alt, Shift: msg.Shift}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		in.Wheel = 1
	case tea.MouseButtonWheelDown:
		in.Wheel = -1
	case tea.MouseButtonLeft:
		in.Pressed = msg.Action == tea.MouseActionPress
		in.Released = msg.Action == tea.MouseActionRelease
	case tea.MouseButtonNone:
		// some terminals report releases without the button
		in.Released = msg.Action == tea.MouseActionRelease
	}
	return in
}

func (m *model) apply(in navigate.Input) {
	if m.sess == nil {
		return
	}
	res := m.sess.Update(in)
	if res.Dump {
		m.message = strings.Join(m.sess.InfoLines(), "  ")
		if m.log != nil {
			m.log.Info(m.message)
		}
	}
	if res.Capture {
		if id, err := m.sess.Capture(m.store); err != nil {
			m.message = "capture failed: " + err.Error()
			if m.log != nil {
				m.log.Errorf("Unable to save snapshot: %s", err)
			}
		} else {
			m.message = "saved " + id
		}
	}
	m.render()
}

func (m *model) render() {
	drawn, err := m.sess.Render()
	if err != nil {
		m.err = err
		return
	}
	if !drawn {
		return
	}
	m.canvas.Load(m.sess.Frame())
	ms := float64(m.sess.Elapsed()) / float64(time.Millisecond)
	m.history = append(m.history, ms)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

func (m *model) View() string {
	if m.canvas == nil {
		return "\n  initializing..."
	}
	var b strings.Builder
	b.WriteString(m.canvas.String())
	if m.sess.Navigator().ShowInfo() {
		b.WriteString("\n" + m.status())
	}
	return b.String()
}

func (m *model) status() string {
	v := m.sess.Controller().View()
	nav := m.sess.Navigator()

	var line strings.Builder
	line.WriteString(labelStyle().Render(" x ") + valueStyle().Render(strconv.FormatFloat(v.CenterX, 'g', 12, 64)))
	line.WriteString(labelStyle().Render("  y ") + valueStyle().Render(strconv.FormatFloat(v.CenterY, 'g', 12, 64)))
	line.WriteString(labelStyle().Render("  scale ") + valueStyle().Render(strconv.FormatFloat(v.Scale, 'e', 3, 64)))
	line.WriteString(labelStyle().Render("  cap ") + valueStyle().Render(strconv.Itoa(v.MaxRound)))
	if auto := nav.AutoZoom(); auto != 0 {
		line.WriteString(alertStyle().Render(fmt.Sprintf("  auto %+.1f", auto)))
	}

	second := labelStyle().Render(fmt.Sprintf(" %6.1fms ", float64(m.sess.Elapsed())/float64(time.Millisecond))) +
		SparklineChart(m.history, 20)
	if m.message != "" {
		second += statusStyle().Render("  " + m.message)
	} else {
		second += labelStyle().Render("  +/- zoom  <> fine  alt auto  hjkl pan  spc reset  s save  t theme  q quit")
	}
	return line.String() + "\n" + second
}

// Run starts the terminal viewer and blocks until it quits.
func Run(cfg *config.Config, store *storage.Store, log *bslogger.Logger) error {
	m := NewInteractiveApp(cfg, store, log)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return err
	}
	return m.err
}
