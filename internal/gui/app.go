package gui

import (
	"fmt"
	"image/color"
	"unsafe"

	"github.com/BrugadaSyndrome/bslogger"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/mandelview/internal/config"
	"github.com/san-kum/mandelview/internal/metrics"
	"github.com/san-kum/mandelview/internal/navigate"
	"github.com/san-kum/mandelview/internal/session"
	"github.com/san-kum/mandelview/internal/storage"
)

const Title = "Mandelbrot"

type App struct {
	Session *session.Session
	Store   *storage.Store
	Log     *bslogger.Logger
	Texture rl.Texture2D
}

// initWindow opens a resizable window no smaller than the configured frame.
func initWindow(width, height int) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(width), int32(height), Title)
	rl.SetWindowMinSize(width, height)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed or q is pressed.
func Run(cfg *config.Config, store *storage.Store, log *bslogger.Logger) error {
	s, err := session.New(cfg, cfg.Width, cfg.Height, log)
	if err != nil {
		return err
	}
	s.AddMetric(metrics.NewCoverage())
	s.AddMetric(metrics.NewRenderTime())

	initWindow(cfg.Width, cfg.Height)
	defer rl.CloseWindow()

	app := &App{Session: s, Store: store, Log: log}
	app.loadTexture()
	defer func() { rl.UnloadTexture(app.Texture) }()

	return app.RunLoop()
}

func (a *App) loadTexture() {
	w, h := a.Session.Size()
	img := rl.GenImageColor(w, h, rl.Black)
	a.Texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() {
		if err := a.handleResize(); err != nil {
			return err
		}

		res := a.Session.Update(readInput())
		if res.Quit {
			return nil
		}
		if res.Dump {
			a.dump()
		}
		if res.Capture {
			if _, err := a.Session.Capture(a.Store); err != nil {
				a.Log.Errorf("Unable to save snapshot: %s", err)
			}
		}

		drawn, err := a.Session.Render()
		if err != nil {
			a.Log.Errorf("Render failed: %s", err)
			return err
		}
		if drawn {
			rl.UpdateTexture(a.Texture, pixels(a.Session.Frame()))
		}
		a.Draw()
	}
	return nil
}

func (a *App) handleResize() error {
	if !rl.IsWindowResized() {
		return nil
	}
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w == 0 || h == 0 {
		return nil
	}
	if err := a.Session.Resize(w, h); err != nil {
		return err
	}
	rl.UnloadTexture(a.Texture)
	a.loadTexture()
	a.Log.Debugf("Resized to %dx%d", w, h)
	return nil
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTexture(a.Texture, 0, 0, rl.White)
	rl.EndDrawing()
}

func (a *App) dump() {
	fmt.Println()
	for _, line := range a.Session.InfoLines() {
		fmt.Println(line)
	}
}

// pixels reinterprets the RGBA8 frame as the color slice raylib uploads.
func pixels(buf []byte) []color.RGBA {
	if len(buf) == 0 {
		return nil
	}
	return unsafe.Slice((*color.RGBA)(unsafe.Pointer(&buf[0])), len(buf)/4)
}

func readInput() navigate.Input {
	mouse := rl.GetMousePosition()
	in := navigate.Input{
		X:          float64(mouse.X),
		Y:          float64(mouse.Y),
		Pressed:    rl.IsMouseButtonPressed(rl.MouseLeftButton),
		Released:   rl.IsMouseButtonReleased(rl.MouseLeftButton),
		Wheel:      float64(rl.GetMouseWheelMove()),
		Shift:      rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
		Alt:        rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt),
		Stop:       rl.IsKeyPressed(rl.KeyEscape),
		Reset:      rl.IsKeyPressed(rl.KeySpace),
		ToggleInfo: rl.IsKeyPressed(rl.KeyI),
		Dump:       rl.IsKeyPressed(rl.KeyD),
		Capture:    rl.IsKeyPressed(rl.KeyS),
		Quit:       rl.IsKeyPressed(rl.KeyQ),
	}

	switch {
	case rl.IsKeyPressed(rl.KeyPageUp):
		in.Zoom = 1
	case rl.IsKeyPressed(rl.KeyPageDown):
		in.Zoom = -1
	}

	switch {
	case rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK):
		in.PanY = 1
	case rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ):
		in.PanY = -1
	case rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH):
		in.PanX = -1
	case rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL):
		in.PanX = 1
	}
	return in
}
