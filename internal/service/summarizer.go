package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/docbrief/docbrief/internal/ai"
	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
)

const (
	mapPrompt = "Summarize this section concisely:\n\n"
)

type lengthConfig struct {
	maxWords    int
	instruction string
	combine     string
}

var lengthConfigs = map[string]lengthConfig{
	"short": {
		maxWords:    1500,
		instruction: "Write a brief 2-3 sentence summary",
		combine:     "Combine these section summaries into a brief 2-3 sentence overview",
	},
	"medium": {
		maxWords:    1200,
		instruction: "Write a concise paragraph summary",
		combine:     "Combine these section summaries into a comprehensive 1-2 paragraph summary",
	},
	"long": {
		maxWords:    1000,
		instruction: "Write a detailed 2-3 paragraph summary",
		combine:     "Combine these section summaries into a detailed 3-4 paragraph summary covering all key points",
	},
}

// resolveLength maps a user-supplied length selector onto its configuration.
// Unknown selectors fall back to medium instead of failing.
func resolveLength(length string) lengthConfig {
	cfg, ok := lengthConfigs[strings.ToLower(strings.TrimSpace(length))]
	if !ok {
		return lengthConfigs["medium"]
	}
	return cfg
}

// Summarizer turns document text into a summary with a map/reduce pass: each
// section is condensed independently, then the section summaries are merged
// by one final call. Documents that fit a single section skip the merge.
type Summarizer struct {
	gw                  *ai.Gateway
	chunkDelay          time.Duration
	abortOnChunkFailure bool
}

type SummarizerOption func(*Summarizer)

// WithChunkDelay inserts a pause between per-section calls so bursty
// documents stay inside upstream rate limits.
func WithChunkDelay(d time.Duration) SummarizerOption {
	return func(s *Summarizer) {
		s.chunkDelay = d
	}
}

// WithAbortOnChunkFailure makes an empty section result abort the whole run
// instead of dropping that section from the merge.
func WithAbortOnChunkFailure(abort bool) SummarizerOption {
	return func(s *Summarizer) {
		s.abortOnChunkFailure = abort
	}
}

func NewSummarizer(gw *ai.Gateway, opts ...SummarizerOption) *Summarizer {
	s := &Summarizer{
		gw:         gw,
		chunkDelay: 400 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Summarizer) Summarize(ctx context.Context, text string, length string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: document text is empty", appErr.ErrInvalid)
	}
	cfg := resolveLength(length)
	chunks, err := ai.SplitWords(text, cfg.maxWords)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w: document text is empty", appErr.ErrInvalid)
	}
	if len(chunks) == 1 {
		prompt := fmt.Sprintf("%s of this document:\n\n%s", cfg.instruction, chunks[0])
		return s.gw.Generate(ctx, prompt)
	}
	summaries, err := s.summarizeSections(ctx, chunks)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf("%s:\n\n%s", cfg.combine, strings.Join(summaries, "\n\n"))
	return s.gw.Generate(ctx, prompt)
}

// summarizeSections runs the map phase. A section that comes back empty is
// dropped (unless the abort policy is set); configuration and transport
// failures always abort, since every remaining section would hit the same
// wall.
func (s *Summarizer) summarizeSections(ctx context.Context, chunks []string) ([]string, error) {
	logger := logutil.GetLogger(ctx)
	summaries := make([]string, 0, len(chunks))
	var lastErr error
	for i, chunk := range chunks {
		if i > 0 {
			if err := s.pause(ctx); err != nil {
				return nil, err
			}
		}
		summary, err := s.gw.Generate(ctx, mapPrompt+chunk)
		if err != nil {
			if errors.Is(err, ai.ErrEmptyResponse) && !s.abortOnChunkFailure {
				logger.Warn("skip empty section", zap.Int("section", i+1), zap.Int("total", len(chunks)))
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("summarize section %d/%d: %w", i+1, len(chunks), err)
		}
		summaries = append(summaries, summary)
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("no section produced a summary: %w", lastErr)
	}
	return summaries, nil
}

func (s *Summarizer) pause(ctx context.Context) error {
	if s.chunkDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.chunkDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
