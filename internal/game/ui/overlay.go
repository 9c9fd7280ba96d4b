// Package ui draws the Dear ImGui menus and HUD over the scene.
package ui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/game"
	"github.com/Faultbox/blackjack/internal/logger"
)

// Layout sizes, in logical pixels.
var (
	menuButton   = imgui.NewVec2(120, 40)
	pauseButton  = imgui.NewVec2(150, 30)
	creditButton = imgui.NewVec2(100, 30)
	pauseWindow  = imgui.NewVec2(200, 150)
	infoWindow   = imgui.NewVec2(250, 100)
)

var (
	errorColor  = imgui.NewVec4(1.0, 0.3, 0.3, 1.0)
	noticeColor = imgui.NewVec4(0.2, 1.0, 0.2, 1.0)
)

const fullscreenFlags = imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
	imgui.WindowFlagsNoMove | imgui.WindowFlagsNoBringToFrontOnFocus

// noticeDuration is how long the screenshot notice stays up.
const noticeDuration = 3 * time.Second

// credits are listed on the credits screen.
var credits = []string{
	"Lihan Martinez",
	"Fernando Rojas",
	"Nicolas Vega",
	"Carlos Gernhofer",
}

// Overlay implements game.Overlay with ImGui windows for each game state.
type Overlay struct {
	app      *game.App
	settings *Settings
	debug    *DebugOverlay
	log      *zap.Logger

	playErr    string
	lastShot   string
	shotNotice time.Time
}

// NewOverlay creates the overlay for app and installs it.
func NewOverlay(app *game.App) *Overlay {
	o := &Overlay{
		app:      app,
		settings: NewSettings(),
		debug:    NewDebugOverlay(),
		log:      logger.Named("ui"),
	}
	app.SetOverlay(o)
	return o
}

// WantsInput reports whether ImGui is capturing the mouse or keyboard.
func (o *Overlay) WantsInput() bool {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse() || io.WantCaptureKeyboard()
}

// Draw renders the windows for the current state.
func (o *Overlay) Draw() {
	size := imgui.MainViewport().WorkSize()

	switch o.app.State() {
	case game.StateMainMenu:
		o.drawMainMenu(size)
	case game.StateCredits:
		o.drawCredits(size)
	case game.StatePaused:
		o.drawPaused(size)
		fallthrough
	case game.StatePlaying:
		o.drawInfo()
	}

	if o.settings.Open {
		o.settings.Draw(o.app, o.debug, size)
	}

	o.debug.Update(float64(imgui.CurrentIO().DeltaTime()) * 1000)
	o.debug.Render(o.app, size)
	o.drawScreenshotNotice(size)
}

func (o *Overlay) play() {
	if err := o.app.Play(); err != nil {
		o.log.Error("failed to load scene", zap.Error(err))
		o.playErr = err.Error()
		return
	}
	o.playErr = ""
}

func (o *Overlay) drawMainMenu(size imgui.Vec2) {
	imgui.SetNextWindowPos(imgui.NewVec2(0, 0))
	imgui.SetNextWindowSize(size)
	if imgui.BeginV("Menu", nil, fullscreenFlags) {
		imgui.SetCursorPosY(size.Y * 0.4)
		if centeredButton("Play", menuButton) {
			o.play()
		}
		if centeredButton("Settings", menuButton) {
			o.settings.Toggle()
		}
		if centeredButton("Credits", menuButton) {
			o.app.ShowCredits()
		}
		if centeredButton("Quit", menuButton) {
			o.app.Quit()
		}
		if o.playErr != "" {
			imgui.Spacing()
			imgui.TextColored(errorColor, o.playErr)
		}
	}
	imgui.End()
}

func (o *Overlay) drawCredits(size imgui.Vec2) {
	imgui.SetNextWindowPos(imgui.NewVec2(0, 0))
	imgui.SetNextWindowSize(size)
	if imgui.BeginV("Credits", nil, fullscreenFlags) {
		imgui.SetCursorPosY(size.Y * 0.2)
		centerText("Game Developed By:")
		imgui.Spacing()
		for _, name := range credits {
			centerText(name)
		}

		imgui.SetCursorPosY(size.Y - creditButton.Y - 20)
		if centeredButton("Back", creditButton) {
			o.app.BackToMenu()
		}
	}
	imgui.End()
}

func (o *Overlay) drawPaused(size imgui.Vec2) {
	imgui.SetNextWindowPos(imgui.NewVec2((size.X-pauseWindow.X)/2, (size.Y-pauseWindow.Y)/2))
	imgui.SetNextWindowSize(pauseWindow)

	flags := imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove | imgui.WindowFlagsNoCollapse
	if imgui.BeginV("Paused", nil, flags) {
		if centeredButton("Resume", pauseButton) {
			o.app.Resume()
		}
		if centeredButton("Settings", pauseButton) {
			o.settings.Toggle()
		}
		if centeredButton("Back to Menu", pauseButton) {
			o.app.BackToMenu()
		}
	}
	imgui.End()
}

func (o *Overlay) drawInfo() {
	imgui.SetNextWindowPos(imgui.NewVec2(10, 10))
	imgui.SetNextWindowSize(infoWindow)

	flags := imgui.WindowFlagsNoResize | imgui.WindowFlagsNoMove | imgui.WindowFlagsNoCollapse
	if imgui.BeginV("Info", nil, flags) {
		imgui.Text("SHIFT + Mouse to look around")
		imgui.Text("Move with WASD & UP/DOWN")
		imgui.TextDisabled(selectionLabel(o.app))
	}
	imgui.End()
}

func (o *Overlay) drawScreenshotNotice(size imgui.Vec2) {
	if shot := o.app.LastScreenshot(); shot != o.lastShot {
		o.lastShot = shot
		o.shotNotice = time.Now()
	}
	if o.lastShot == "" || time.Since(o.shotNotice) > noticeDuration {
		return
	}

	const width = 300
	imgui.SetNextWindowPos(imgui.NewVec2((size.X-width)/2, size.Y-60))
	imgui.SetNextWindowSize(imgui.NewVec2(width, 0))
	imgui.SetNextWindowBgAlpha(0.8)
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("##Screenshot", nil, flags) {
		imgui.TextColored(noticeColor, "Saved "+o.lastShot)
	}
	imgui.End()
}

func selectionLabel(app *game.App) string {
	if e := app.Scene().Selected(); e != nil {
		return fmt.Sprintf("Selected: %s", e.ID())
	}
	return "Selected: none"
}

// centerText draws text centered in the current window.
func centerText(text string) {
	textSize := imgui.CalcTextSize(text)
	offset := (imgui.ContentRegionAvail().X - textSize.X) / 2
	if offset > 0 {
		imgui.SetCursorPosX(imgui.CursorPosX() + offset)
	}
	imgui.Text(text)
}

// centeredButton draws a button of the given size centered horizontally.
func centeredButton(label string, size imgui.Vec2) bool {
	offset := (imgui.ContentRegionAvail().X - size.X) / 2
	if offset > 0 {
		imgui.SetCursorPosX(imgui.CursorPosX() + offset)
	}
	return imgui.ButtonV(label, size)
}
