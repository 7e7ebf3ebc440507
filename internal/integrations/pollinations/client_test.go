package pollinations

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	return NewClient(
		WithBaseURL(srv.URL),
		WithHTTPClient(&http.Client{Timeout: 2 * time.Second}),
	)
}

func TestImageURL(t *testing.T) {
	cases := []struct {
		base   string
		prompt string
		want   string
	}{
		{"https://image.pollinations.ai", "a red cat", "https://image.pollinations.ai/prompt/a%20red%20cat?height=512&nologo=true&width=512"},
		{"https://image.pollinations.ai/", "sunset/over sea", "https://image.pollinations.ai/prompt/sunset%2Fover%20sea?height=512&nologo=true&width=512"},
		{"", "cat?", "https://image.pollinations.ai/prompt/cat%3F?height=512&nologo=true&width=512"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ImageURL(tc.base, tc.prompt), "base=%q prompt=%q", tc.base, tc.prompt)
	}
}

func TestGenerate_HappyPath(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/prompt/a red cat", r.URL.Path)
		require.Equal(t, "512", r.URL.Query().Get("width"))
		require.Equal(t, "512", r.URL.Query().Get("height"))
		require.Equal(t, "true", r.URL.Query().Get("nologo"))
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	uri, err := newTestClient(t, srv).Generate(context.Background(), "a red cat")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
}

func TestGenerate_RoundTripsBytes(t *testing.T) {
	payload := bytes.Repeat([]byte{0x89, 'P', 'N', 'G', 0x00, 0x01, 0xfe}, 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	uri, err := newTestClient(t, srv).Generate(context.Background(), "pattern")
	require.NoError(t, err)

	encoded, ok := strings.CutPrefix(uri, "data:image/png;base64,")
	require.True(t, ok)
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	require.Equal(t, payload, decoded)
}

func TestGenerate_DefaultsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Suppress net/http content sniffing.
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte("raw"))
	}))
	defer srv.Close()

	uri, err := newTestClient(t, srv).Generate(context.Background(), "anything")
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString([]byte("raw")), uri)
}

func TestGenerate_Non2xx(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Generate(context.Background(), "a red cat")
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadGateway, statusErr.HTTPStatusCode())
	require.Equal(t, 1, calls, "image requests must not be retried")
}

func TestGenerate_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	uri, err := newTestClient(t, srv).Generate(context.Background(), "a red cat")
	require.NoError(t, err)
	require.Empty(t, uri)
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	_, err := NewClient().Generate(context.Background(), "   ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "prompt")
}

func TestGenerate_NetworkError(t *testing.T) {
	c := NewClient(WithBaseURL("http://127.0.0.1:1"), WithTimeout(100*time.Millisecond))
	_, err := c.Generate(context.Background(), "a red cat")
	require.Error(t, err)
	require.Contains(t, err.Error(), "request failed")
}

func TestEncodeDataURI(t *testing.T) {
	require.Equal(t, "data:image/webp;base64,AQI=", EncodeDataURI("image/webp", []byte{1, 2}))
	require.Equal(t, "data:image/png;base64,AQI=", EncodeDataURI(" ", []byte{1, 2}))
}
