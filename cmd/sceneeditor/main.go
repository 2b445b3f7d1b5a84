package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"sceneeditor/internal/app"
	"sceneeditor/internal/config"
	"sceneeditor/internal/logging"
	"sceneeditor/internal/render"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	configPath := flag.String("config", config.DefaultFile, "editor configuration file")
	restore := flag.Bool("restore-session", true, "restore camera and selection from the last run")
	flag.Parse()

	if err := run(*configPath, *restore); err != nil {
		fmt.Fprintln(os.Stderr, "sceneeditor:", err)
		os.Exit(1)
	}
}

func run(configPath string, restore bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app.OpenWindow(cfg.Window)
	editor := app.New(cfg, logger, app.Options{Renderer: render.NewRenderer(logger)})
	defer editor.Close()

	if restore {
		session, err := config.LoadSession(config.SessionFile)
		if err != nil {
			logger.Warn("session not restored", zap.Error(err))
		}
		editor.RestoreSession(session)
	}

	if err := editor.Run(ctx); err != nil {
		return err
	}
	if err := editor.Session().Save(config.SessionFile); err != nil {
		logger.Warn("session not saved", zap.Error(err))
	}
	return nil
}
