// Package main is the entry point for the Blackjack scene viewer with its
// ImGui menus.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/config"
	"github.com/Faultbox/blackjack/internal/engine/gpu"
	engineui "github.com/Faultbox/blackjack/internal/engine/ui"
	"github.com/Faultbox/blackjack/internal/game"
	"github.com/Faultbox/blackjack/internal/game/ui"
	"github.com/Faultbox/blackjack/internal/logger"
)

func main() {
	runtime.LockOSThread()

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

	logger.Info("=== Blackjack ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("blackjack failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("closed normally")
}

func run(cfg *config.Config) error {
	width, height := cfg.Window.Width, cfg.Window.Height
	if width == 0 || height == 0 {
		width, height = 900, 600
	}

	backend, err := engineui.NewBackend(engineui.Config{
		Title:  cfg.Window.Title,
		Width:  width,
		Height: height,
	})
	if err != nil {
		return err
	}

	dev, err := gpu.NewGL()
	if err != nil {
		return err
	}

	app, err := game.New(cfg, dev, backend)
	if err != nil {
		return err
	}
	defer app.Close()

	ui.NewOverlay(app)

	backend.Run(func() {
		backend.Poll()
		app.Frame()
		if app.ShouldQuit() {
			backend.Close()
		}
	})
	return nil
}
