package paramstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// ssmAPI is the subset of *ssm.Client used here.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Store reads decrypted parameters under a fixed prefix.
type Store struct {
	api    ssmAPI
	prefix string
}

func New(api ssmAPI, prefix string) (*Store, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return nil, errors.New("paramstore: prefix must not be empty")
	}
	return &Store{api: api, prefix: prefix}, nil
}

// Path joins key onto the store prefix.
func (s *Store) Path(key string) string {
	return s.prefix + "/" + strings.TrimLeft(strings.TrimSpace(key), "/")
}

// Lookup returns the value of prefix/key. A parameter that does not exist is
// reported as ok=false with a nil error.
func (s *Store) Lookup(ctx context.Context, key string) (value string, ok bool, err error) {
	if s == nil || s.api == nil {
		return "", false, errors.New("paramstore: store not initialized")
	}
	if strings.TrimSpace(key) == "" {
		return "", false, errors.New("paramstore: key is required")
	}

	name := s.Path(key)
	out, err := s.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("paramstore: get parameter %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", false, fmt.Errorf("paramstore: parameter %q missing value", name)
	}
	return *out.Parameter.Value, true, nil
}

// Get is Lookup for parameters that must exist.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, ok, err := s.Lookup(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("paramstore: parameter %q not found", s.Path(key))
	}
	return v, nil
}
