package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeParams struct {
	val   string
	ok    bool
	err   error
	calls int
}

func (f *fakeParams) Lookup(_ context.Context, _ string) (string, bool, error) {
	f.calls++
	return f.val, f.ok, f.err
}

func TestAPIKey_StaticWins(t *testing.T) {
	p := &fakeParams{val: "from-ssm", ok: true}
	r := NewResolver("  from-env ", p, "gemini-api-key")

	key, err := r.APIKey(context.Background())
	require.NoError(t, err)
	require.Equal(t, "from-env", key)
	require.Zero(t, p.calls)
}

func TestAPIKey_NoSources(t *testing.T) {
	_, err := NewResolver("", nil, "").APIKey(context.Background())
	require.ErrorIs(t, err, ErrMissing)

	var nilResolver *Resolver
	_, err = nilResolver.APIKey(context.Background())
	require.ErrorIs(t, err, ErrMissing)
}

func TestAPIKey_ParamCachedAfterFirstRead(t *testing.T) {
	p := &fakeParams{val: `{"token":"sk-json"}`, ok: true}
	r := NewResolver("", p, "gemini-api-key")

	for i := 0; i < 3; i++ {
		key, err := r.APIKey(context.Background())
		require.NoError(t, err)
		require.Equal(t, "sk-json", key)
	}
	require.Equal(t, 1, p.calls)
}

func TestAPIKey_ParamPlainValue(t *testing.T) {
	r := NewResolver("", &fakeParams{val: "plain-key\n", ok: true}, "gemini-api-key")
	key, err := r.APIKey(context.Background())
	require.NoError(t, err)
	require.Equal(t, "plain-key", key)
}

func TestAPIKey_ParamMissing(t *testing.T) {
	r := NewResolver("", &fakeParams{ok: false}, "gemini-api-key")
	_, err := r.APIKey(context.Background())
	require.ErrorIs(t, err, ErrMissing)

	r = NewResolver("", &fakeParams{val: `{"other":"x"}`, ok: true}, "gemini-api-key")
	_, err = r.APIKey(context.Background())
	require.ErrorIs(t, err, ErrMissing)
}

func TestAPIKey_ParamErrorIsRetried(t *testing.T) {
	p := &fakeParams{err: errors.New("ssm unavailable")}
	r := NewResolver("", p, "gemini-api-key")

	_, err := r.APIKey(context.Background())
	require.ErrorContains(t, err, "ssm unavailable")

	p.err = nil
	p.val, p.ok = "recovered", true
	key, err := r.APIKey(context.Background())
	require.NoError(t, err)
	require.Equal(t, "recovered", key)
	require.Equal(t, 2, p.calls)
}

func TestParseToken_MalformedJSON(t *testing.T) {
	_, err := parseToken(`{"broken`)
	require.ErrorContains(t, err, "unmarshal")
}
