package usecase

import (
	"fmt"
	"strings"

	"portfolio-chat/internal/domain"
)

// PromptMode selects how the conversation is handed to the provider.
type PromptMode string

const (
	// PromptConversation sends structured role-tagged turns.
	PromptConversation PromptMode = "conversation"
	// PromptFlat sends one flattened transcript string.
	PromptFlat PromptMode = "flat"
)

// ParsePromptMode falls back to PromptConversation for unknown values.
func ParsePromptMode(s string) PromptMode {
	if PromptMode(strings.ToLower(strings.TrimSpace(s))) == PromptFlat {
		return PromptFlat
	}
	return PromptConversation
}

// Replies are the fixed bot messages used when an image tool call is handled.
type Replies struct {
	ImageReady  string
	ImageEmpty  string
	ImageFailed string
}

// PromptConfig is built once at startup and never mutated.
type PromptConfig struct {
	SystemPrompt    string
	Languages       map[string]string
	DefaultLanguage string
	Acknowledgment  string
	UserLabel       string
	AssistantLabel  string
	Replies         Replies
}

// LanguageDirective returns the directive for code, or the default language's
// directive when code is unknown. It never fails.
func (c PromptConfig) LanguageDirective(code string) string {
	if d, ok := c.Languages[strings.ToLower(strings.TrimSpace(code))]; ok {
		return d
	}
	return c.Languages[c.DefaultLanguage]
}

// BuildTurns assembles the full prompt for in. The result depends only on its
// arguments.
func BuildTurns(cfg PromptConfig, mode PromptMode, in ChatInput) []domain.Turn {
	if mode == PromptFlat {
		return []domain.Turn{{
			Role:  domain.RoleUser,
			Text:  buildFlatPrompt(cfg, in),
			Image: in.Image,
		}}
	}

	turns := make([]domain.Turn, 0, len(in.History)+3)
	turns = append(turns,
		domain.Turn{Role: domain.RoleUser, Text: systemText(cfg, in.Language)},
		domain.Turn{Role: domain.RoleModel, Text: cfg.Acknowledgment},
	)
	for _, h := range usableHistory(in.History) {
		turns = append(turns, domain.Turn{Role: providerRole(h.Role), Text: h.Content})
	}
	return append(turns, domain.Turn{Role: domain.RoleUser, Text: in.Message, Image: in.Image})
}

func systemText(cfg PromptConfig, language string) string {
	return fmt.Sprintf("%s\n\nLANGUAGE INSTRUCTION: %s", strings.TrimSpace(cfg.SystemPrompt), cfg.LanguageDirective(language))
}

func buildFlatPrompt(cfg PromptConfig, in ChatInput) string {
	var b strings.Builder
	b.WriteString(systemText(cfg, in.Language))
	b.WriteString("\n\n---\n\n")
	if transcript := renderHistory(cfg, in.History); transcript != "" {
		b.WriteString("Previous conversation:\n")
		b.WriteString(transcript)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.TrimSpace(cfg.UserLabel + ": " + in.Message))
	b.WriteString("\n\n")
	b.WriteString(cfg.AssistantLabel + ":")
	return b.String()
}

// renderHistory flattens history oldest first as "<label>: <content>" lines.
func renderHistory(cfg PromptConfig, history []domain.HistoryEntry) string {
	entries := usableHistory(history)
	lines := make([]string, 0, len(entries))
	for _, h := range entries {
		label := cfg.AssistantLabel
		if providerRole(h.Role) == domain.RoleUser {
			label = cfg.UserLabel
		}
		lines = append(lines, label+": "+h.Content)
	}
	return strings.Join(lines, "\n")
}

// usableHistory drops blank entries; order is preserved.
func usableHistory(history []domain.HistoryEntry) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, 0, len(history))
	for _, h := range history {
		if strings.TrimSpace(h.Content) == "" {
			continue
		}
		out = append(out, h)
	}
	return out
}

func providerRole(role string) domain.Role {
	if strings.EqualFold(strings.TrimSpace(role), "user") {
		return domain.RoleUser
	}
	return domain.RoleModel
}

func imageTool() domain.Tool {
	return domain.Tool{
		Name:        toolGenerateImage,
		Description: "Create an image from a text description. Call this when the user asks to draw, create or show a picture.",
		Params: []domain.ToolParam{{
			Name:        "prompt",
			Description: "Detailed description of the image, written in English.",
			Required:    true,
		}},
	}
}
