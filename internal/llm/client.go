package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the provider answers without any
// usable text candidate.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// Client generates documentation text from a prompt. The caller treats
// the returned string as opaque text to persist; no validation beyond
// non-emptiness happens here.
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}
