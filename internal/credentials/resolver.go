package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrMissing is returned when no source yields a credential.
var ErrMissing = errors.New("credentials: completion API key is not configured")

// ParamLookup reads an optional parameter. *paramstore.Store satisfies it.
type ParamLookup interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
}

// tokenPayload is the JSON shape accepted for stored secrets.
type tokenPayload struct {
	Token string `json:"token"`
}

// Resolver yields the completion-provider API key. A static key (usually from
// the environment) wins; otherwise the key is read from the parameter store
// once and cached. Failed reads are not cached.
type Resolver struct {
	static   string
	params   ParamLookup
	paramKey string

	mu     sync.RWMutex
	cached string
}

func NewResolver(static string, params ParamLookup, paramKey string) *Resolver {
	return &Resolver{
		static:   strings.TrimSpace(static),
		params:   params,
		paramKey: strings.TrimSpace(paramKey),
	}
}

func (r *Resolver) APIKey(ctx context.Context) (string, error) {
	if r == nil {
		return "", ErrMissing
	}
	if r.static != "" {
		return r.static, nil
	}
	if r.params == nil || r.paramKey == "" {
		return "", ErrMissing
	}

	r.mu.RLock()
	cached := r.cached
	r.mu.RUnlock()
	if cached != "" {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cached != "" {
		return r.cached, nil
	}

	raw, ok, err := r.params.Lookup(ctx, r.paramKey)
	if err != nil {
		return "", fmt.Errorf("credentials: load %s: %w", r.paramKey, err)
	}
	if !ok {
		return "", ErrMissing
	}
	key, err := parseToken(raw)
	if err != nil {
		return "", err
	}
	r.cached = key
	return key, nil
}

// parseToken accepts either {"token":"..."} or the bare secret.
func parseToken(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		var tp tokenPayload
		if err := json.Unmarshal([]byte(raw), &tp); err != nil {
			return "", fmt.Errorf("credentials: unmarshal stored token: %w", err)
		}
		raw = strings.TrimSpace(tp.Token)
	}
	if raw == "" {
		return "", ErrMissing
	}
	return raw, nil
}
