package usecase

import (
	"encoding/base64"
	"strings"

	"portfolio-chat/internal/domain"
)

// ChatRequest is the caller's request as decoded from JSON.
type ChatRequest struct {
	Message  string
	History  []domain.HistoryEntry
	Language string
	Image    string
}

// InputKind tells which parts of a request carry content.
type InputKind int

const (
	InputTextOnly InputKind = iota + 1
	InputImageOnly
	InputTextAndImage
)

func (k InputKind) String() string {
	switch k {
	case InputTextOnly:
		return "text"
	case InputImageOnly:
		return "image"
	case InputTextAndImage:
		return "text+image"
	}
	return "unknown"
}

// ChatInput is a request validated at the boundary.
type ChatInput struct {
	Kind     InputKind
	Message  string
	Image    *domain.InlineImage
	History  []domain.HistoryEntry
	Language string
	// ImageDropped is set when an image was supplied but was not a valid data
	// URI.
	ImageDropped bool
}

// NewChatInput validates req. A malformed image is dropped rather than
// rejected; the request fails only when neither text nor a usable image is
// left.
func NewChatInput(req ChatRequest) (ChatInput, error) {
	in := ChatInput{
		Message:  strings.TrimSpace(req.Message),
		History:  req.History,
		Language: req.Language,
	}
	if strings.TrimSpace(req.Image) != "" {
		if img, ok := ParseDataURI(req.Image); ok {
			in.Image = &img
		} else {
			in.ImageDropped = true
		}
	}

	switch {
	case in.Message != "" && in.Image != nil:
		in.Kind = InputTextAndImage
	case in.Message != "":
		in.Kind = InputTextOnly
	case in.Image != nil:
		in.Kind = InputImageOnly
	default:
		reason := "missing_input"
		if in.ImageDropped {
			reason = "invalid_image"
		}
		return ChatInput{}, newError(ErrorBadRequest, reason, nil)
	}
	return in, nil
}

// ParseDataURI decodes data:<mime>;base64,<payload>. Only image MIME types are
// accepted. It reports false for anything malformed.
func ParseDataURI(s string) (domain.InlineImage, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return domain.InlineImage{}, false
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return domain.InlineImage{}, false
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return domain.InlineImage{}, false
	}
	mime = strings.ToLower(strings.TrimSpace(mime))
	if !strings.HasPrefix(mime, "image/") || len(mime) == len("image/") {
		return domain.InlineImage{}, false
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil || len(data) == 0 {
		return domain.InlineImage{}, false
	}
	return domain.InlineImage{MIMEType: mime, Data: data}, true
}
