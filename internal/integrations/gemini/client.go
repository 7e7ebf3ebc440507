package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"portfolio-chat/internal/domain"
)

// sendFunc performs one chat round trip: history is replayed, then parts are
// sent as the new user message.
type sendFunc func(ctx context.Context, apiKey, model string, tools []*genai.Tool, history []*genai.Content, parts []genai.Part) (*genai.GenerateContentResponse, error)

// Client is a completion provider backed by the Gemini API. A fresh SDK
// client is built for every call from the key supplied by the caller.
type Client struct {
	opts []option.ClientOption
	send sendFunc
}

type Option func(*Client)

// WithClientOptions appends SDK options (endpoint, HTTP client) applied to
// every call.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *Client) {
		c.opts = append(c.opts, opts...)
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	c.send = c.sdkSend
	return c
}

// Complete sends req and returns the first candidate's text together with its
// first function call, if any.
func (c *Client) Complete(ctx context.Context, apiKey string, req domain.CompletionRequest) (domain.Completion, error) {
	if strings.TrimSpace(apiKey) == "" {
		return domain.Completion{}, errors.New("gemini: missing credential")
	}
	if strings.TrimSpace(req.Model) == "" {
		return domain.Completion{}, errors.New("gemini: model must not be empty")
	}
	contents := toContents(req.Turns)
	if len(contents) == 0 {
		return domain.Completion{}, errors.New("gemini: nothing to send")
	}
	last := contents[len(contents)-1]
	if last.Role != string(domain.RoleUser) {
		return domain.Completion{}, errors.New("gemini: last turn must come from the user")
	}

	resp, err := c.send(ctx, apiKey, req.Model, toTools(req.Tools), contents[:len(contents)-1], last.Parts)
	if err != nil {
		return domain.Completion{}, withStatus(err)
	}
	return parseResponse(resp), nil
}

func (c *Client) sdkSend(ctx context.Context, apiKey, model string, tools []*genai.Tool, history []*genai.Content, parts []genai.Part) (*genai.GenerateContentResponse, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, c.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	defer func() { _ = client.Close() }()

	m := client.GenerativeModel(model)
	m.Tools = tools

	session := m.StartChat()
	session.History = history
	resp, err := session.SendMessage(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini: send message: %w", err)
	}
	return resp, nil
}

// toContents maps turns onto SDK contents, skipping turns with no parts.
func toContents(turns []domain.Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		var parts []genai.Part
		if strings.TrimSpace(t.Text) != "" {
			parts = append(parts, genai.Text(t.Text))
		}
		if t.Image != nil && len(t.Image.Data) > 0 {
			parts = append(parts, genai.Blob{MIMEType: t.Image.MIMEType, Data: t.Image.Data})
		}
		if len(parts) == 0 {
			continue
		}
		out = append(out, &genai.Content{Role: string(t.Role), Parts: parts})
	}
	return out
}

func toTools(tools []domain.Tool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		schema := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: make(map[string]*genai.Schema, len(t.Params)),
		}
		for _, p := range t.Params {
			schema.Properties[p.Name] = &genai.Schema{Type: genai.TypeString, Description: p.Description}
			if p.Required {
				schema.Required = append(schema.Required, p.Name)
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  schema,
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func parseResponse(resp *genai.GenerateContentResponse) domain.Completion {
	var out domain.Completion
	if resp == nil || len(resp.Candidates) == 0 {
		return out
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return out
	}

	var text strings.Builder
	for _, part := range cand.Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			text.WriteString(string(p))
		case genai.FunctionCall:
			if out.Call == nil {
				out.Call = &domain.FunctionCall{Name: p.Name, Args: p.Args}
			}
		}
	}
	out.Text = text.String()
	return out
}
