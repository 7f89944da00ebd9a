// Package main is the entry point for the water viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/watersim/internal/app"
	"github.com/Faultbox/watersim/internal/config"
	"github.com/Faultbox/watersim/internal/engine/gpu"
	"github.com/Faultbox/watersim/internal/engine/renderer"
	"github.com/Faultbox/watersim/internal/engine/shader"
	"github.com/Faultbox/watersim/internal/engine/water"
	"github.com/Faultbox/watersim/internal/engine/window"
	"github.com/Faultbox/watersim/internal/logger"
)

const windowTitle = "Watersim"

func main() {
	// Parse CLI flags first
	path, err := config.ParseArgs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== Watersim ===", zap.String("config", path))
	logger.Sugar.Debugf("Config: %+v", cfg)

	err = run(cfg)
	if err != nil {
		logger.Error("watersim failed", zap.Error(err))
	} else {
		logger.Info("watersim closed normally")
	}
	logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

// run opens the window, builds the pipeline and drives the render loop.
// GPU resources and the window are released before it returns.
func run(cfg *config.Config) error {
	if dump := config.DumpPath(); dump != "" {
		if err := cfg.SaveTo(dump); err != nil {
			return fmt.Errorf("dumping config: %w", err)
		}
		logger.Info("config written", zap.String("path", dump))
	}

	sources, err := shader.LoadSources(cfg.ShaderDir)
	if err != nil {
		return err
	}

	scene, err := app.NewScene(cfg)
	if err != nil {
		return err
	}

	// Create window (this also creates OpenGL context)
	surface, err := window.Open(cfg.Backend, window.Config{
		Title:  windowTitle,
		Width:  cfg.Width,
		Height: cfg.Height,
		VSync:  cfg.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer surface.Close()

	dev, err := gpu.NewGL()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spec := renderer.Spec{
		Sources:    sources,
		Grid:       water.BuildGrid(cfg.GridSize, cfg.Scale),
		ClearColor: renderer.DefaultClearColor,
	}

	err = renderer.With(dev, spec, func(p *renderer.Pipeline) error {
		return app.Run(ctx, surface, p, scene)
	})
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted")
		return nil
	}
	return err
}
