package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbrief/docbrief/internal/ai"
	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
)

type fakeGenerator struct {
	calls   []string
	respond func(call int, prompt string) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls = append(f.calls, prompt)
	return f.respond(len(f.calls), prompt)
}

func makeWords(n int) string {
	words := make([]string, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, fmt.Sprintf("w%d", i))
	}
	return strings.Join(words, " ")
}

func newTestSummarizer(gen ai.IGenerator, opts ...SummarizerOption) *Summarizer {
	gw := ai.NewGateway(gen, ai.WithMaxAttempts(1), ai.WithBaseDelay(0))
	opts = append([]SummarizerOption{WithChunkDelay(0)}, opts...)
	return NewSummarizer(gw, opts...)
}

func TestSummarizeSingleChunk(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			return "the summary", nil
		},
	}
	s := newTestSummarizer(gen)
	out, err := s.Summarize(context.Background(), makeWords(100), "medium")
	require.NoError(t, err)
	assert.Equal(t, "the summary", out)
	require.Len(t, gen.calls, 1)
	assert.Contains(t, gen.calls[0], "Write a concise paragraph summary of this document:")
}

func TestSummarizeMultiChunkShort(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			if strings.Contains(prompt, "Combine these section summaries") {
				return "final overview", nil
			}
			return fmt.Sprintf("section summary %d", call), nil
		},
	}
	s := newTestSummarizer(gen)
	// 2500 words at 1500 per chunk gives two sections plus one merge call.
	out, err := s.Summarize(context.Background(), makeWords(2500), "short")
	require.NoError(t, err)
	assert.Equal(t, "final overview", out)
	require.Len(t, gen.calls, 3)
	assert.Contains(t, gen.calls[0], "Summarize this section concisely:")
	assert.Contains(t, gen.calls[1], "Summarize this section concisely:")
	assert.Contains(t, gen.calls[2], "brief 2-3 sentence overview")
	assert.Contains(t, gen.calls[2], "section summary 1")
	assert.Contains(t, gen.calls[2], "section summary 2")
}

func TestSummarizeUnknownLengthFallsBackToMedium(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			return "ok", nil
		},
	}
	s := newTestSummarizer(gen)
	// 1300 words splits in two only under the medium 1200-word sections.
	_, err := s.Summarize(context.Background(), makeWords(1300), "gigantic")
	require.NoError(t, err)
	assert.Len(t, gen.calls, 3)
}

func TestSummarizeSkipsEmptySection(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			if call == 2 {
				return "   ", nil
			}
			if strings.Contains(prompt, "Combine these section summaries") {
				return "final", nil
			}
			return fmt.Sprintf("section summary %d", call), nil
		},
	}
	s := newTestSummarizer(gen)
	out, err := s.Summarize(context.Background(), makeWords(3200), "long")
	require.NoError(t, err)
	assert.Equal(t, "final", out)
	// 4 sections, one dropped, plus the merge.
	require.Len(t, gen.calls, 5)
	assert.Contains(t, gen.calls[4], "section summary 1")
	assert.NotContains(t, gen.calls[4], "section summary 2")
}

func TestSummarizeAbortOnEmptySection(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			if call == 1 {
				return "", nil
			}
			return "ok", nil
		},
	}
	s := newTestSummarizer(gen, WithAbortOnChunkFailure(true))
	_, err := s.Summarize(context.Background(), makeWords(2500), "short")
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
	assert.Len(t, gen.calls, 1)
}

func TestSummarizeTransportFailureAborts(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			if call == 2 {
				return "", fmt.Errorf("upstream down")
			}
			return "ok", nil
		},
	}
	s := newTestSummarizer(gen)
	_, err := s.Summarize(context.Background(), makeWords(2500), "short")
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrUnavailable)
	// The second section failure stops the run before the merge.
	assert.Len(t, gen.calls, 2)
}

func TestSummarizeAllSectionsEmpty(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			return "", nil
		},
	}
	s := newTestSummarizer(gen)
	_, err := s.Summarize(context.Background(), makeWords(2500), "short")
	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrEmptyResponse)
}

func TestSummarizeEmptyText(t *testing.T) {
	gen := &fakeGenerator{
		respond: func(call int, prompt string) (string, error) {
			return "ok", nil
		},
	}
	s := newTestSummarizer(gen)
	_, err := s.Summarize(context.Background(), "   \n  ", "medium")
	assert.ErrorIs(t, err, appErr.ErrInvalid)
	assert.Empty(t, gen.calls)
}
