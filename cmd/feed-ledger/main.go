package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/feed-ledger/app/api"
	"github.com/lysyi3m/feed-ledger/app/cfg"
	"github.com/lysyi3m/feed-ledger/app/feed"
	"github.com/lysyi3m/feed-ledger/app/recorder"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting Feed Ledger", "version", appCfg.Version,
		"config", appCfg.ConfigPath, "output", appCfg.OutputPath)

	client := feed.NewHTTPClient(time.Duration(appCfg.Timeout)*time.Second, appCfg.UserAgent)
	fetcher := feed.NewFetcher(client, time.Duration(appCfg.FetchDelay)*time.Second)
	rec := recorder.NewRecorder(fetcher, appCfg.ConfigPath, appCfg.OutputPath)

	if !appCfg.Serve {
		if _, err := rec.Run(context.Background()); err != nil {
			slog.Error("Recording run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	runDaemon(appCfg, rec)
}

// runDaemon records on a fixed interval and serves the collection over HTTP
// until interrupted.
func runDaemon(appCfg *cfg.Cfg, rec *recorder.Recorder) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := api.NewHandler(appCfg.OutputPath)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Recording runs stay on a single goroutine so the output file only ever
	// has one writer.
	go func() {
		runOnce(ctx, rec, handler)

		ticker := time.NewTicker(time.Duration(appCfg.Interval) * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce(ctx, rec, handler)
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Feed Ledger shutdown complete")
}

func runOnce(ctx context.Context, rec *recorder.Recorder, handler *api.Handler) {
	summary, err := rec.Run(ctx)
	if err != nil {
		slog.Error("Recording run failed", "error", err)
		return
	}
	if summary != nil {
		handler.SetSummary(summary)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
