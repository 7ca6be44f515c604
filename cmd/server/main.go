package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/style-advisor-agent/internal/api"
	"github.com/BerylCAtieno/style-advisor-agent/internal/config"
	"github.com/BerylCAtieno/style-advisor-agent/internal/logging"
	"github.com/BerylCAtieno/style-advisor-agent/internal/profiler"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
)

const (
	serverShutdownWait = 5 * time.Second
	serverReadTimeout  = 10 * time.Second
	serverWriteTimeout = 60 * time.Second
)

var (
	version = "v0.0.1-default"

	portFlag = &cli.StringFlag{
		Name:  "port",
		Usage: "Port on which the server will listen (env PORT)",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn, error (env LOG_LEVEL)",
	}
	geminiModelFlag = &cli.StringFlag{
		Name:  "gemini-model",
		Usage: "Gemini model used to render styled replies (env GEMINI_MODEL)",
	}
	batchLimitFlag = &cli.IntFlag{
		Name:  "batch-limit",
		Usage: "Maximum number of profiles per batch request (env BATCH_LIMIT)",
	}
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}

	cmd := &cli.Command{
		Name:    "style-advisor",
		Version: version,
		Usage:   "Serve response style directives and user groups for assessment scores",
		Flags: []cli.Flag{
			portFlag,
			logLevelFlag,
			geminiModelFlag,
			batchLimitFlag,
		},
		Action: runServer,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	if cmd.IsSet(portFlag.Name) {
		cfg.Port = cmd.String(portFlag.Name)
	}
	if cmd.IsSet(logLevelFlag.Name) {
		cfg.LogLevel = cmd.String(logLevelFlag.Name)
	}
	if cmd.IsSet(geminiModelFlag.Name) {
		cfg.GeminiModel = cmd.String(geminiModelFlag.Name)
	}
	if cmd.IsSet(batchLimitFlag.Name) {
		cfg.BatchLimit = int(cmd.Int(batchLimitFlag.Name))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServer(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logging.SetDefaultLogger(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var renderer profiler.Renderer
	if cfg.RenderingEnabled() {
		geminiClient, err := profiler.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return err
		}
		defer geminiClient.Close()
		renderer = geminiClient
		slog.Info("styled reply rendering enabled", "model", cfg.GeminiModel)
	} else {
		slog.Warn("GEMINI_API_KEY not set, styled reply rendering disabled")
	}

	s := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(cfg, renderer),
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	slog.Info("style advisor agent started", "port", cfg.Port, "version", version)
	slog.Info("agent card available", "url", fmt.Sprintf("http://localhost:%s/.well-known/agent.json", cfg.Port))
	slog.Info("A2A endpoint available", "url", fmt.Sprintf("http://localhost:%s/a2a/advisor", cfg.Port))

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownWait)
	defer cancel()

	slog.Info("shutting down")
	if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	return nil
}
