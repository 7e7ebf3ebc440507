package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"portfolio-chat/internal/domain"
)

const defaultModel = "gemini-2.5-flash"

var errEmptyResponse = errors.New("empty response from AI")

type KeySource interface {
	APIKey(ctx context.Context) (string, error)
}

type CompletionClient interface {
	Complete(ctx context.Context, apiKey string, req domain.CompletionRequest) (domain.Completion, error)
}

type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ServiceConfig holds the read-only settings of a ChatService.
type ServiceConfig struct {
	Prompt           PromptConfig
	Mode             PromptMode
	Model            string
	ImageToolEnabled bool
	Logger           *slog.Logger
}

type ChatService struct {
	keys   KeySource
	llm    CompletionClient
	images ImageGenerator

	prompt    PromptConfig
	mode      PromptMode
	model     string
	imageTool bool
	log       *slog.Logger
}

type ChatOutput struct {
	Message     string
	Image       string
	ImagePrompt string
}

func NewChatService(keys KeySource, llm CompletionClient, images ImageGenerator, cfg ServiceConfig) (*ChatService, error) {
	if keys == nil {
		return nil, errors.New("usecase: key source must not be nil")
	}
	if llm == nil {
		return nil, errors.New("usecase: completion client must not be nil")
	}
	if cfg.ImageToolEnabled && images == nil {
		return nil, errors.New("usecase: image generator must not be nil when the image tool is enabled")
	}
	if strings.TrimSpace(cfg.Prompt.SystemPrompt) == "" {
		return nil, errors.New("usecase: system prompt must not be empty")
	}
	if _, ok := cfg.Prompt.Languages[cfg.Prompt.DefaultLanguage]; !ok {
		return nil, errors.New("usecase: default language has no directive")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{
		keys:      keys,
		llm:       llm,
		images:    images,
		prompt:    cfg.Prompt,
		mode:      ParsePromptMode(string(cfg.Mode)),
		model:     model,
		imageTool: cfg.ImageToolEnabled,
		log:       logger,
	}, nil
}

// Chat handles one request: validate, assemble the prompt, call the
// completion provider, then dispatch at most one tool call. Image failures
// never surface as errors.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (ChatOutput, error) {
	apiKey, err := s.keys.APIKey(ctx)
	if err != nil {
		return ChatOutput{}, newError(ErrorConfig, "missing_api_key", err)
	}

	in, err := NewChatInput(req)
	if err != nil {
		return ChatOutput{}, err
	}
	if in.ImageDropped {
		s.log.WarnContext(ctx, "ignoring malformed image data URI")
	}

	completion, err := s.llm.Complete(ctx, apiKey, s.completionRequest(in))
	if err != nil {
		return ChatOutput{}, newError(ClassifyUpstream(err), "completion_error", err)
	}

	if call, ok := toolCallFrom(completion.Call).(GenerateImage); ok {
		return s.generateImage(ctx, call), nil
	}

	if strings.TrimSpace(completion.Text) == "" {
		return ChatOutput{}, newError(ErrorUnknown, "empty_response", errEmptyResponse)
	}
	return ChatOutput{Message: completion.Text}, nil
}

func (s *ChatService) completionRequest(in ChatInput) domain.CompletionRequest {
	req := domain.CompletionRequest{
		Model: s.model,
		Turns: BuildTurns(s.prompt, s.mode, in),
	}
	if s.imageTool {
		req.Tools = []domain.Tool{imageTool()}
	}
	return req
}

func (s *ChatService) generateImage(ctx context.Context, call GenerateImage) ChatOutput {
	replies := s.prompt.Replies
	prompt := strings.TrimSpace(call.Prompt)
	if prompt == "" || s.images == nil {
		s.log.WarnContext(ctx, "image tool call without a usable prompt or generator")
		return ChatOutput{Message: replies.ImageEmpty}
	}

	uri, err := s.images.Generate(ctx, prompt)
	if err != nil {
		s.log.ErrorContext(ctx, "image generation failed", "err", err)
		return ChatOutput{Message: replies.ImageFailed}
	}
	if uri == "" {
		s.log.WarnContext(ctx, "image provider returned no data")
		return ChatOutput{Message: replies.ImageEmpty}
	}
	return ChatOutput{
		Message:     replies.ImageReady,
		Image:       uri,
		ImagePrompt: call.Prompt,
	}
}
