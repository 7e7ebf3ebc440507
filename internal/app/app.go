package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"portfolio-chat/handler"
	"portfolio-chat/internal/config"
	"portfolio-chat/internal/credentials"
	"portfolio-chat/internal/integrations/gemini"
	"portfolio-chat/internal/integrations/paramstore"
	"portfolio-chat/internal/integrations/pollinations"
	"portfolio-chat/internal/usecase"
)

const (
	apiKeyParam  = "gemini-api-key"
	personaParam = "persona"
)

// NewParamSource connects to SSM under cfg.ParamPrefix. It returns nil when no
// prefix is configured.
func NewParamSource(ctx context.Context, cfg *config.Config) (credentials.ParamLookup, error) {
	if cfg.ParamPrefix == "" {
		return nil, nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	store, err := paramstore.New(awsssm.NewFromConfig(awsCfg), cfg.ParamPrefix)
	if err != nil {
		return nil, fmt.Errorf("create parameter store: %w", err)
	}
	return store, nil
}

// Build wires the chat service and its handler. params may be nil, in which
// case the API key comes from the environment only and the built-in persona
// is used.
func Build(ctx context.Context, cfg *config.Config, params credentials.ParamLookup, logger *slog.Logger) (*handler.Handler, error) {
	if logger == nil {
		logger = slog.Default()
	}

	prompt := usecase.DefaultPromptConfig()
	if params != nil {
		persona, ok, err := params.Lookup(ctx, personaParam)
		switch {
		case err != nil:
			logger.WarnContext(ctx, "persona override unavailable, using built-in persona", "err", err)
		case ok && strings.TrimSpace(persona) != "":
			prompt.SystemPrompt = persona
		}
	}
	if cfg.GeminiAPIKey == "" && params == nil {
		logger.WarnContext(ctx, "GEMINI_API_KEY is not set; chat requests will fail until it is configured")
	}
	keys := credentials.NewResolver(cfg.GeminiAPIKey, params, apiKeyParam)

	var images usecase.ImageGenerator
	if cfg.ImageToolEnabled {
		images = pollinations.NewClient(
			pollinations.WithBaseURL(cfg.ImageBaseURL),
			pollinations.WithTimeout(cfg.ImageTimeout),
		)
	}

	chat, err := usecase.NewChatService(keys, gemini.NewClient(), images, usecase.ServiceConfig{
		Prompt:           prompt,
		Mode:             usecase.ParsePromptMode(cfg.PromptMode),
		Model:            cfg.GeminiModel,
		ImageToolEnabled: cfg.ImageToolEnabled,
		Logger:           logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat service: %w", err)
	}

	return handler.NewHandler(chat,
		handler.WithAllowedOrigin(cfg.AllowedOrigin),
		handler.WithMaxBodyBytes(cfg.MaxBodyBytes),
		handler.WithLogger(logger),
	)
}
