package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-chat/internal/app"
	"portfolio-chat/internal/config"
	"portfolio-chat/internal/router"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	params, err := app.NewParamSource(ctx, cfg)
	if err != nil {
		slog.Error("failed to create parameter store client", "err", err)
		os.Exit(1)
	}

	h, err := app.Build(ctx, cfg, params, logger)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	// Image generation can take most of a minute; the write timeout leaves room
	// for it on top of the completion call.
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.New(h, cfg.AllowedOrigin),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ImageTimeout + 60*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "err", err)
		}
	}()

	slog.Info("chat server listening", "addr", server.Addr, "model", cfg.GeminiModel, "prompt_mode", cfg.PromptMode)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
