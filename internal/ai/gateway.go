package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/docbrief/docbrief/internal/pkg/retry"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = time.Second
)

// Gateway is the single integration point with the generative-text service.
// It retries transient transport failures with linear backoff, fails fast
// when nothing is configured, and refuses to retry empty generations.
type Gateway struct {
	gen     IGenerator
	policy  retry.Policy
	timeout time.Duration
}

type GatewayOption func(*Gateway)

func WithMaxAttempts(n int) GatewayOption {
	return func(g *Gateway) {
		if n > 0 {
			g.policy.MaxAttempts = n
		}
	}
}

func WithBaseDelay(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		if d > 0 {
			g.policy.BaseDelay = d
		}
	}
}

func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.timeout = d }
}

func NewGateway(gen IGenerator, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		gen: gen,
		policy: retry.Policy{
			MaxAttempts: defaultMaxAttempts,
			BaseDelay:   defaultBaseDelay,
		},
	}
	g.policy.Retryable = func(err error) bool {
		return !errors.Is(err, ErrNotConfigured) && !errors.Is(err, ErrEmptyResponse)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends one prompt and returns the trimmed response. Error
// classification: ErrNotConfigured (immediate, no network), ErrEmptyResponse
// (successful call, blank output, not retried), ErrUnavailable (transport
// failure after exhausting retries, wrapping the last cause).
func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	if g.gen == nil {
		return "", ErrNotConfigured
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	var result string
	err := g.policy.Do(ctx, func(ctx context.Context) error {
		resp, err := g.gen.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		text := strings.TrimSpace(resp)
		if text == "" {
			return ErrEmptyResponse
		}
		result = text
		return nil
	})
	if err == nil {
		return result, nil
	}
	if errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrEmptyResponse) {
		return "", err
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
}
