package gui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/particlesim/internal/control"
	"github.com/san-kum/particlesim/internal/metrics"
	"github.com/san-kum/particlesim/internal/particle"
	"github.com/san-kum/particlesim/internal/sim"
)

// HUD colors (monochrome)
var (
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColPanel   = rl.NewColor(10, 10, 10, 180)
)

const (
	fontPath      = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
	telemetryLen  = 200
	maxTicksFrame = 8
	targetFPS     = 60
)

// Options configure the window.
type Options struct {
	Width, Height int32
	TickInterval  time.Duration
	Fullscreen    bool
}

type App struct {
	surface  *control.Surface
	pacer    *sim.Pacer
	frame    *circleBuffer
	recorder *metrics.Recorder
	font     rl.Font

	showHUD  bool
	paramSel int
	params   []string
	lastTick sim.TickStats
}

func toColor(c particle.RGB) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}

// initWindow opens a resizable window and disables the default exit key.
func initWindow(opts Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(opts.Width, opts.Height, "particlesim")
	rl.SetTargetFPS(targetFPS)
	rl.SetExitKey(0)
	if opts.Fullscreen {
		rl.ToggleFullscreen()
	}
}

// loadFont loads Liberation Mono when installed, else raylib's built-in
// font.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		log.Debug("font not found, using default", "path", fontPath)
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(surface *control.Surface, opts Options) *App {
	rec := metrics.NewRecorder(telemetryLen)
	surface.Loop().AddObserver(rec)

	if opts.Fullscreen && !surface.Fullscreen() {
		surface.ToggleFullscreen()
	}

	return &App{
		surface:  surface,
		pacer:    sim.NewPacer(opts.TickInterval, maxTicksFrame),
		frame:    &circleBuffer{},
		recorder: rec,
		font:     loadFont(),
		showHUD:  true,
		params:   control.ParamNames(),
	}
}

// Run opens the window and blocks until it is closed.
func Run(surface *control.Surface, opts Options) {
	initWindow(opts)
	defer rl.CloseWindow()

	app := NewApp(surface, opts)
	defer surface.Close()

	log.Info("window opened", "width", opts.Width, "height", opts.Height)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if quit := a.Update(time.Now()); quit {
			return
		}
		a.Draw()
	}
}

// Update feeds input to the surface and advances as many ticks as the
// wall clock owes. It reports whether the user asked to quit.
func (a *App) Update(now time.Time) bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return true
	}
	a.keys()

	a.surface.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	a.pointer()

	a.surface.SpawnDue(now)
	for n := a.pacer.Due(now); n > 0; n-- {
		a.frame.Reset()
		a.lastTick = a.surface.Tick(a.frame)
	}
	return false
}

func (a *App) keys() {
	switch {
	case rl.IsKeyPressed(rl.KeyC):
		on := a.surface.ToggleCycle()
		log.Debug("colour cycle", "on", on)
	case rl.IsKeyPressed(rl.KeyX):
		a.surface.Clear()
		a.frame.Reset()
	case rl.IsKeyPressed(rl.KeyB):
		a.surface.NextBackground()
	case rl.IsKeyPressed(rl.KeyP):
		a.surface.NextColor()
	case rl.IsKeyPressed(rl.KeyH):
		a.showHUD = !a.showHUD
	case rl.IsKeyPressed(rl.KeyF):
		a.surface.ToggleFullscreen()
		rl.ToggleFullscreen()
	case rl.IsKeyPressed(rl.KeyTab):
		a.paramSel = (a.paramSel + 1) % len(a.params)
	case rl.IsKeyPressed(rl.KeyUp), rl.IsKeyPressed(rl.KeyK):
		a.surface.Adjust(a.params[a.paramSel], 1)
	case rl.IsKeyPressed(rl.KeyDown), rl.IsKeyPressed(rl.KeyJ):
		a.surface.Adjust(a.params[a.paramSel], -1)
	}
}

func (a *App) pointer() {
	if !rl.IsCursorOnScreen() {
		a.surface.PointerLeave()
		return
	}

	pos := rl.GetMousePosition()
	x, y := float64(pos.X), float64(pos.Y)

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		a.surface.PointerDown(x, y)
	case rl.IsMouseButtonReleased(rl.MouseLeftButton):
		a.surface.PointerUp()
		a.surface.PointerMove(x, y)
	default:
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			a.surface.PointerMove(x, y)
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(toColor(a.surface.Background()))

	for _, c := range a.frame.circles {
		rl.DrawCircleV(rl.NewVector2(c.x, c.y), c.r, toColor(c.color))
	}

	if a.showHUD && !a.surface.Fullscreen() {
		a.drawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int32, size float32, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), size, 1, color)
}

func (a *App) drawHUD() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	params := a.surface.Params()

	rl.DrawRectangle(20, 20, 300, 190, ColPanel)
	a.drawText("particlesim", 30, 30, 24, ColSelect)

	a.drawText(fmt.Sprintf("tick %d", a.surface.Loop().Ticks()), 200, 34, 16, ColSelect)

	a.drawText(fmt.Sprintf("live %d  collisions %d", a.lastTick.Live, a.lastTick.Collisions), 30, 64, 14, ColText)

	values := a.surface.GetParams()
	for i, name := range a.params {
		line := fmt.Sprintf("  %-8s %6.2f", name, values[name])
		c := ColText
		if i == a.paramSel {
			line, c = fmt.Sprintf("> %-8s %6.2f", name, values[name]), ColSelect
		}
		a.drawText(line, 30, 90+int32(i)*22, 16, c)
	}

	cycle := "off"
	if params.CycleColors {
		cycle = "on"
	}
	a.drawText(fmt.Sprintf("colour %s  cycle %s", params.Color.Hex(), cycle), 30, 160, 14, ColAccent)
	rl.DrawCircle(280, 167, 8, toColor(params.Color))

	a.drawTelemetry(30, h-100, 300, 50)

	a.drawText("[C] CYCLE  [P] COLOUR  [B] BG  [X] CLEAR  [F] FULL  [TAB/ARROWS] TUNE  [Q] QUIT", 30, h-30, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), w-90, 30, 14, ColTextDim)
}

// drawTelemetry plots the live count history as a line strip.
func (a *App) drawTelemetry(x, y, width, height int32) {
	values := a.recorder.Series(metrics.SeriesLive)
	if len(values) < 2 {
		return
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(values))
	for i, v := range values {
		px := float32(x) + float32(i)/float32(len(values))*float32(width)
		py := float32(y+height) - float32((v-lo)/(hi-lo))*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("live %.0f", values[len(values)-1]), x+width+10, y+height-10, 14, ColText)
}
