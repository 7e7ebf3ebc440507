package pollinations

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://image.pollinations.ai"
	defaultContentType = "image/png"
	imageSize          = 512
	maxImageBytes      = 16 << 20
)

// HTTPStatusError captures a non-2xx response from the image provider.
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("pollinations: failed to create image: status %d from %s", e.StatusCode, e.URL)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client fetches images from the Pollinations prompt endpoint. It needs no
// credentials.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ImageURL builds the provider URL for prompt: a path-escaped prompt with a
// fixed 512x512 size and the logo suppressed.
func ImageURL(baseURL, prompt string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	q := url.Values{}
	q.Set("width", fmt.Sprint(imageSize))
	q.Set("height", fmt.Sprint(imageSize))
	q.Set("nologo", "true")
	return base + "/prompt/" + url.PathEscape(prompt) + "?" + q.Encode()
}

// Generate performs one GET against the provider and returns the whole body as
// a data URI. An empty body yields "" and a nil error.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("pollinations: prompt must not be empty")
	}

	u := ImageURL(c.baseURL, prompt)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("pollinations: build request: %w", err)
	}

	httpClient := c.httpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("pollinations: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", &HTTPStatusError{StatusCode: res.StatusCode, URL: u}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("pollinations: read body: %w", err)
	}
	if len(body) > maxImageBytes {
		return "", fmt.Errorf("pollinations: image exceeds %d bytes", maxImageBytes)
	}
	if len(body) == 0 {
		return "", nil
	}

	return EncodeDataURI(res.Header.Get("Content-Type"), body), nil
}

// EncodeDataURI wraps data as data:<contentType>;base64,<payload>. An empty
// content type becomes image/png.
func EncodeDataURI(contentType string, data []byte) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = defaultContentType
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
