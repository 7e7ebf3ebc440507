package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"portfolio-chat/internal/app"
	"portfolio-chat/internal/config"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// ---- Configuration (read only here) ----
	cfg := config.Load()

	// ---- Clients ----
	params, err := app.NewParamSource(ctx, cfg)
	if err != nil {
		slog.Error("failed to create parameter store client", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	h, err := app.Build(ctx, cfg, params, logger)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
