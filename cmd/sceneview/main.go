// Package main is a bare SDL2 scene viewer without menus. It starts
// straight into the configured scene.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/config"
	"github.com/Faultbox/blackjack/internal/engine/gpu"
	"github.com/Faultbox/blackjack/internal/engine/input"
	"github.com/Faultbox/blackjack/internal/engine/window"
	"github.com/Faultbox/blackjack/internal/game"
	"github.com/Faultbox/blackjack/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Blackjack scene viewer ===")

	if err := run(cfg); err != nil {
		logger.Error("sceneview failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("closed normally")
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:        cfg.Window.Title,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Fullscreen:   cfg.Window.Fullscreen,
		VSync:        cfg.Window.VSync,
		AntiAliasing: cfg.Window.AntiAliasing,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	dev, err := gpu.NewGL()
	if err != nil {
		return err
	}

	width, height := win.GetSize()
	in := input.NewSDL(width, height, win.DrawableSize)

	app, err := game.New(cfg, dev, in)
	if err != nil {
		return err
	}
	defer app.Close()

	in.OnResize(app.Resize)

	if err := app.Play(); err != nil {
		return err
	}

	for !app.ShouldQuit() {
		if in.Poll() {
			app.Quit()
			break
		}
		// No menus here, so P also resumes.
		paused := app.State() == game.StatePaused
		app.Frame()
		if paused && in.KeyPressed(input.KeyP) {
			app.Resume()
		}
		win.SwapBuffers()
	}
	return nil
}
