package usecase

import (
	"strings"

	"portfolio-chat/internal/domain"
)

const toolGenerateImage = "generate_image"

// ToolCall is a recognized function call. The set is closed: GenerateImage or
// UnrecognizedTool.
type ToolCall interface {
	toolName() string
}

// GenerateImage asks for an image built from Prompt.
type GenerateImage struct {
	Prompt string
}

func (GenerateImage) toolName() string { return toolGenerateImage }

// UnrecognizedTool is any call this service does not handle.
type UnrecognizedTool struct {
	Name string
}

func (u UnrecognizedTool) toolName() string { return u.Name }

// toolCallFrom returns nil when fc is nil.
func toolCallFrom(fc *domain.FunctionCall) ToolCall {
	if fc == nil {
		return nil
	}
	if strings.TrimSpace(fc.Name) != toolGenerateImage {
		return UnrecognizedTool{Name: fc.Name}
	}
	prompt, _ := fc.Args["prompt"].(string)
	return GenerateImage{Prompt: prompt}
}
