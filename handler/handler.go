package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/usecase"
)

const (
	correlationHeader   = "X-Correlation-Id"
	defaultMaxBodyBytes = 10 << 20

	msgInvalidBody     = "Invalid request body"
	msgBodyTooLarge    = "Request body too large"
	msgMissingInput    = "Message or image is required"
	msgMissingAPIKey   = "API key tidak dikonfigurasi."
	msgInvalidAPIKey   = "API key tidak valid. Pastikan GEMINI_API_KEY sudah benar."
	msgRateLimited     = "Kuota API habis atau terlalu banyak request. Coba lagi nanti."
	msgUpstreamFailure = "Gagal mendapatkan response dari AI. Coba lagi nanti."
	msgMethodNotAllow  = "Method not allowed"
)

type ChatUseCase interface {
	Chat(ctx context.Context, req usecase.ChatRequest) (usecase.ChatOutput, error)
}

type chatRequest struct {
	Message  string                `json:"message"`
	History  []domain.HistoryEntry `json:"history"`
	Language string                `json:"language"`
	Image    string                `json:"image"`
}

type chatResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Image       string `json:"image,omitempty"`
	ImagePrompt string `json:"imagePrompt,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type Handler struct {
	chat          ChatUseCase
	allowedOrigin string
	maxBodyBytes  int64
	log           *slog.Logger
}

type Option func(*Handler)

// WithAllowedOrigin sets the Access-Control-Allow-Origin value on Lambda
// responses. The standalone server applies CORS in its router instead.
func WithAllowedOrigin(origin string) Option {
	return func(h *Handler) {
		h.allowedOrigin = strings.TrimSpace(origin)
	}
}

func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.log = logger
		}
	}
}

func NewHandler(chat ChatUseCase, opts ...Option) (*Handler, error) {
	if chat == nil {
		return nil, errors.New("handler: chat use case must not be nil")
	}
	h := &Handler{
		chat:          chat,
		allowedOrigin: "*",
		maxBodyBytes:  defaultMaxBodyBytes,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Handle serves API Gateway proxy events. OPTIONS answers the CORS preflight
// and GET reports health; everything else must be a POST chat request.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := headerValue(event.Headers, correlationHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	headers := map[string]string{
		"Access-Control-Allow-Headers": "Content-Type, " + correlationHeader,
		"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
		"Access-Control-Allow-Origin":  h.allowedOrigin,
		"Content-Type":                 "application/json",
		correlationHeader:              correlationID,
	}

	var (
		status  int
		payload any
	)
	switch event.HTTPMethod {
	case http.MethodOptions:
		return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent, Headers: headers}, nil
	case http.MethodGet:
		status, payload = http.StatusOK, healthResponse{Status: "ok"}
	case http.MethodPost:
		body, err := eventBody(event)
		switch {
		case err != nil:
			status, payload = http.StatusBadRequest, errorResponse{Error: msgInvalidBody}
		case int64(len(body)) > h.maxBodyBytes:
			status, payload = http.StatusRequestEntityTooLarge, errorResponse{Error: msgBodyTooLarge}
		default:
			status, payload = h.chatTurn(ctx, correlationID, body)
		}
	default:
		status, payload = http.StatusMethodNotAllowed, errorResponse{Error: msgMethodNotAllow}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       encode(payload),
	}, nil
}

// ServeHTTP serves POST /api/chat for the standalone server.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	correlationID := strings.TrimSpace(r.Header.Get(correlationHeader))
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	w.Header().Set(correlationHeader, correlationID)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: msgBodyTooLarge})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}

	status, payload := h.chatTurn(r.Context(), correlationID, body)
	writeJSON(w, status, payload)
}

// Health answers GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *Handler) chatTurn(ctx context.Context, correlationID string, body []byte) (int, any) {
	log := h.log.With("correlation_id", correlationID)

	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		log.WarnContext(ctx, "invalid request body", "err", err)
		return http.StatusBadRequest, errorResponse{Error: msgInvalidBody}
	}

	out, err := h.chat.Chat(ctx, usecase.ChatRequest{
		Message:  req.Message,
		History:  req.History,
		Language: req.Language,
		Image:    req.Image,
	})
	if err != nil {
		status, msg := mapError(err)
		if status >= http.StatusInternalServerError {
			log.ErrorContext(ctx, "chat request failed", "kind", usecase.KindOf(err), "err", err)
		} else {
			log.WarnContext(ctx, "chat request rejected", "kind", usecase.KindOf(err), "err", err)
		}
		return status, errorResponse{Error: msg}
	}

	log.InfoContext(ctx, "chat request served", "has_image", out.Image != "")
	return http.StatusOK, chatResponse{
		Success:     true,
		Message:     out.Message,
		Image:       out.Image,
		ImagePrompt: out.ImagePrompt,
	}
}

func mapError(err error) (int, string) {
	switch usecase.KindOf(err) {
	case usecase.ErrorConfig:
		return http.StatusInternalServerError, msgMissingAPIKey
	case usecase.ErrorBadRequest:
		return http.StatusBadRequest, msgMissingInput
	case usecase.ErrorUnauthorized:
		return http.StatusUnauthorized, msgInvalidAPIKey
	case usecase.ErrorRateLimited:
		return http.StatusTooManyRequests, msgRateLimited
	default:
		return http.StatusInternalServerError, msgUpstreamFailure
	}
}

func eventBody(event events.APIGatewayProxyRequest) ([]byte, error) {
	if !event.IsBase64Encoded {
		return []byte(event.Body), nil
	}
	return base64.StdEncoding.DecodeString(event.Body)
}

// headerValue looks up key case-insensitively; API Gateway passes headers
// through with whatever casing the client used.
func headerValue(headers map[string]string, key string) string {
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func encode(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{"error":"` + msgUpstreamFailure + `"}`
	}
	return string(b)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, encode(v))
}
