// Package main is the entry point of the ImGui terrain inspector.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/groundwork/internal/config"
	"github.com/Faultbox/groundwork/internal/engine/scene"
	"github.com/Faultbox/groundwork/internal/inspector"
	"github.com/Faultbox/groundwork/internal/logger"
)

func main() {
	// ImGui and OpenGL calls must stay on the main thread
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

	logger.Info("=== Groundwork Inspector ===")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	s, err := scene.Load(ctx, cfg)
	stop()
	if err != nil {
		logger.Error("failed to load scene", zap.Error(err))
		os.Exit(1)
	}

	in, err := inspector.New(cfg, s)
	if err != nil {
		logger.Error("failed to create inspector", zap.Error(err))
		os.Exit(1)
	}
	defer in.Close()

	in.Run()
	logger.Info("inspector closed normally")
}
