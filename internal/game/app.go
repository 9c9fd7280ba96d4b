// Package game runs the scene: state machine, fixed-rate updates, camera
// controls, picking and the per-frame render.
package game

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/config"
	"github.com/Faultbox/blackjack/internal/engine/debug"
	"github.com/Faultbox/blackjack/internal/engine/gpu"
	"github.com/Faultbox/blackjack/internal/engine/input"
	"github.com/Faultbox/blackjack/internal/engine/picking"
	"github.com/Faultbox/blackjack/internal/engine/scene"
	"github.com/Faultbox/blackjack/internal/engine/texture"
	"github.com/Faultbox/blackjack/internal/logger"
)

// maxUpdatesPerFrame bounds catch-up after a long frame.
const maxUpdatesPerFrame = 5

// Option configures an App.
type Option func(*App)

// WithModelLoader replaces the loader used when the scene is populated.
func WithModelLoader(load ModelLoader) Option {
	return func(a *App) { a.loader = load }
}

// WithClock replaces time.Now for frame timing.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// App owns the scene and drives it one frame at a time. The caller owns
// the window and calls Frame once per displayed frame.
type App struct {
	cfg      *config.Config
	dev      gpu.Device
	input    input.State
	overlay  Overlay
	scene    *scene.Scene
	renderer *scene.Renderer
	shots    *debug.ScreenshotCapture
	loader   ModelLoader
	log      *zap.Logger

	state       State
	quit        bool
	populated   bool
	shotPending bool
	lastShot    string

	now        func() time.Time
	lastFrame  time.Time
	accum      time.Duration
	updateStep time.Duration
	playTime   time.Duration

	width, height int

	frames, updates int
	statsStart      time.Time
}

// New creates the texture cache, scene and renderer. The GL context must be
// current. in supplies the input of every frame.
func New(cfg *config.Config, dev gpu.Device, in input.State, opts ...Option) (*App, error) {
	a := &App{
		cfg:     cfg,
		dev:     dev,
		input:   in,
		overlay: NoOverlay{},
		loader:  LoadModel,
		log:     logger.Named("game"),
		state:   StateMainMenu,
		now:     time.Now,
		shots:   debug.NewScreenshotCapture(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
	}
	for _, opt := range opts {
		opt(a)
	}

	ups := cfg.Window.UPS
	if ups <= 0 {
		ups = 60
	}
	a.updateStep = time.Second / time.Duration(ups)

	textures, err := texture.NewCache(dev, cfg.Textures.Default)
	if err != nil {
		a.log.Warn("default texture unavailable, using white",
			zap.String("path", cfg.Textures.Default), zap.Error(err))
		textures, err = texture.NewCache(dev, "")
		if err != nil {
			return nil, fmt.Errorf("texture cache: %w", err)
		}
	}

	a.width, a.height = in.FramebufferSize()
	a.scene = scene.New(scene.Config{
		Width:  a.width,
		Height: a.height,
		FOV:    cfg.Camera.FOV,
		Near:   cfg.Camera.Near,
		Far:    cfg.Camera.Far,
	}, textures)

	cam := a.scene.Camera()
	pos := cfg.Camera.Position
	cam.SetPosition(pos[0], pos[1], pos[2])
	cam.SetRotation(mgl32.DegToRad(cfg.Camera.Pitch), mgl32.DegToRad(cfg.Camera.Yaw))

	a.renderer, err = scene.NewRenderer(dev)
	if err != nil {
		a.scene.Release()
		return nil, err
	}

	dev.Viewport(a.width, a.height)
	a.lastFrame = a.now()
	a.statsStart = a.lastFrame

	a.log.Info("game initialized",
		zap.Int("width", a.width),
		zap.Int("height", a.height),
		zap.Int("ups", ups),
	)
	return a, nil
}

// SetOverlay installs the GUI drawn over the scene. nil removes it.
func (a *App) SetOverlay(o Overlay) {
	if o == nil {
		o = NoOverlay{}
	}
	a.overlay = o
}

// Scene returns the rendered scene.
func (a *App) Scene() *scene.Scene { return a.scene }

// Config returns the live configuration edited by the settings panel.
func (a *App) Config() *config.Config { return a.cfg }

// State returns the current game state.
func (a *App) State() State { return a.state }

// ShouldQuit reports whether the caller should stop its loop.
func (a *App) ShouldQuit() bool { return a.quit }

// PlayTime returns the time spent playing, excluding pauses and menus.
func (a *App) PlayTime() time.Duration { return a.playTime }

// LastScreenshot returns the path of the most recent screenshot.
func (a *App) LastScreenshot() string { return a.lastShot }

// Size returns the current viewport size.
func (a *App) Size() (width, height int) { return a.width, a.height }

// Screenshots returns the screenshot writer.
func (a *App) Screenshots() *debug.ScreenshotCapture { return a.shots }

// SetState switches state without side effects.
func (a *App) SetState(s State) {
	if s == a.state {
		return
	}
	a.log.Info("state change", zap.Stringer("from", a.state), zap.Stringer("to", s))
	a.state = s
}

// Play loads the configured scene on first use and starts playing.
func (a *App) Play() error {
	if !a.populated {
		start := a.now()
		if err := Populate(a.scene, a.dev, a.loader, a.cfg.Scene); err != nil {
			return err
		}
		a.populated = true
		a.log.Info("scene loaded",
			zap.Int("models", len(a.scene.Models())),
			zap.Int("entities", a.scene.EntityCount()),
			zap.Duration("took", a.now().Sub(start)),
		)
	}
	a.SetState(StatePlaying)
	return nil
}

// Pause stops play. Only a playing game can be paused.
func (a *App) Pause() {
	if a.state == StatePlaying {
		a.SetState(StatePaused)
	}
}

// Resume continues a paused game.
func (a *App) Resume() {
	if a.state == StatePaused {
		a.SetState(StatePlaying)
	}
}

// BackToMenu returns to the main menu. The loaded scene is kept.
func (a *App) BackToMenu() { a.SetState(StateMainMenu) }

// ShowCredits switches to the credits screen.
func (a *App) ShowCredits() { a.SetState(StateCredits) }

// Quit asks the caller's loop to stop after this frame.
func (a *App) Quit() {
	if !a.quit {
		a.log.Info("quit requested")
	}
	a.quit = true
}

// Resize updates the viewport and projection. Zero sizes, as reported for
// minimized windows, are ignored.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		a.log.Warn("ignoring degenerate viewport", zap.Int("width", width), zap.Int("height", height))
		return
	}
	if width == a.width && height == a.height {
		return
	}
	a.width, a.height = width, height
	a.dev.Viewport(width, height)
	a.scene.Resize(width, height)
	a.log.Debug("resized", zap.Int("width", width), zap.Int("height", height))
}

// Frame handles input, runs the fixed-rate updates due since the previous
// frame and renders the scene and overlay.
func (a *App) Frame() {
	now := a.now()
	diff := now.Sub(a.lastFrame)
	a.lastFrame = now

	if w, h := a.input.FramebufferSize(); w > 0 && h > 0 {
		a.Resize(w, h)
	}

	a.handleInput(diff)

	a.accum += diff
	for n := 0; a.accum >= a.updateStep && n < maxUpdatesPerFrame; n++ {
		a.update(a.updateStep)
		a.accum -= a.updateStep
	}
	if a.accum >= a.updateStep {
		a.accum = 0
	}

	a.render()
	a.frames++

	if elapsed := now.Sub(a.statsStart); elapsed >= time.Second {
		a.log.Debug("frame stats",
			zap.Float64("fps", float64(a.frames)/elapsed.Seconds()),
			zap.Float64("ups", float64(a.updates)/elapsed.Seconds()),
		)
		a.frames, a.updates = 0, 0
		a.statsStart = now
	}
}

func (a *App) handleInput(diff time.Duration) {
	in := a.input

	if in.KeyReleased(input.KeyEscape) {
		a.Quit()
		return
	}
	if in.KeyPressed(input.KeyP) {
		a.Pause()
	}
	if in.KeyPressed(input.KeyF12) {
		a.shotPending = true
	}

	if a.state != StatePlaying || a.overlay.WantsInput() {
		return
	}

	cam := a.scene.Camera()
	move := float32(diff) / float32(time.Millisecond) * a.cfg.Camera.MovementSpeed

	if in.KeyDown(input.KeyW) {
		cam.MoveForward(move)
	} else if in.KeyDown(input.KeyS) {
		cam.MoveBackwards(move)
	}
	if in.KeyDown(input.KeyA) {
		cam.MoveLeft(move)
	} else if in.KeyDown(input.KeyD) {
		cam.MoveRight(move)
	}
	if in.KeyDown(input.KeyUp) {
		cam.MoveUp(move)
	} else if in.KeyDown(input.KeyDown) {
		cam.MoveDown(move)
	}

	if in.KeyDown(input.KeyLeftShift) {
		dx, dy := in.CursorDelta()
		sens := a.cfg.Camera.MouseSensitivity
		cam.AddRotation(mgl32.DegToRad(dy*sens), mgl32.DegToRad(dx*sens))
	}

	if in.MouseButton(input.ButtonLeft) {
		x, y := in.CursorPos()
		w, h := in.FramebufferSize()
		picking.SelectEntity(a.scene, x, y, w, h)
	}
}

// update advances game time. Play time stops while paused or in menus.
func (a *App) update(step time.Duration) {
	a.updates++
	if a.state == StatePlaying {
		a.playTime += step
	}
}

func (a *App) render() {
	a.dev.Clear()
	a.renderer.Render(a.scene)

	if a.shotPending {
		a.shotPending = false
		path, err := a.shots.Capture(a.dev, a.width, a.height)
		if err != nil {
			a.log.Error("screenshot failed", zap.Error(err))
		} else {
			a.lastShot = path
		}
	}

	a.overlay.Draw()
}

// Close releases the renderer, then the scene and its textures.
func (a *App) Close() {
	a.log.Info("closing game")
	if a.renderer != nil {
		a.renderer.Release()
		a.renderer = nil
	}
	if a.scene != nil {
		a.scene.Release()
		a.scene = nil
	}
}
