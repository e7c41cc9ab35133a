package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"svgserve/internal/errors"
	"svgserve/internal/logging"
	"svgserve/internal/server"
)

const usageGuide = `Routes:
  /              redirects to the configured index route
  /<file>        raw SVG bytes from the served directory
  /view/<page>   HTML page embedding <page>.svg; ':' in <page> maps to '/'
  /health        liveness probe`

// loadDotEnv loads a .env file from the working directory when present,
// before the environment overlay runs
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	loadDotEnv()

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Values are pre-validated by buildConfig
	logger := logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(cfg.Logging.Level),
	})

	srv := server.New(cfg, logger)

	// Setup graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting svgserve", map[string]interface{}{
			"addr": cfg.Addr(),
			"root": cfg.RootDir,
		})
		fmt.Println(usageGuide)
		fmt.Printf("\nServing %s at http://%s\n", cfg.RootDir, cfg.Addr())
		fmt.Println("Press Ctrl+C to stop")
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
			return errors.New(errors.ServerFailed, "server failed", err)
		}
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", map[string]interface{}{
				"error": err.Error(),
			})
			return errors.New(errors.ServerFailed, "shutdown failed", err)
		}

		logger.Info("Server stopped gracefully", nil)
	}

	return nil
}
