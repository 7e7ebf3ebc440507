package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRouter(allowedOrigin string) (http.Handler, *int) {
	calls := 0
	chat := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	})
	return New(chat, allowedOrigin), &calls
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter("")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_ChatRoute(t *testing.T) {
	r, calls := newTestRouter("https://asrap.dev")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, *calls)
	require.Equal(t, "https://asrap.dev", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_ChatRejectsGet(t *testing.T) {
	r, calls := newTestRouter("")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Zero(t, *calls)
}

func TestRouter_PreflightShortCircuits(t *testing.T) {
	r, calls := newTestRouter("")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/chat", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	require.Zero(t, *calls)
}
