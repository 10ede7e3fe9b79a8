package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/docbrief/docbrief/internal/pkg/textkit"
)

const (
	aiCacheSize = 256
	aiCacheTTL  = 30 * time.Minute
)

// AIService fronts the two pipelines with a shared result cache so repeated
// requests over the same document do not burn upstream quota.
type AIService struct {
	summarizer    *Summarizer
	qa            *QAPipeline
	cache         *expirable.LRU[string, string]
	maxInputChars int
}

func NewAIService(summarizer *Summarizer, qa *QAPipeline, maxInputChars int) *AIService {
	return &AIService{
		summarizer:    summarizer,
		qa:            qa,
		cache:         expirable.NewLRU[string, string](aiCacheSize, nil, aiCacheTTL),
		maxInputChars: maxInputChars,
	}
}

func (s *AIService) Summarize(ctx context.Context, text string, length string) (string, error) {
	text = s.clampInput(text)
	key := cacheKey("summary", length, text)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}
	out, err := s.summarizer.Summarize(ctx, text, length)
	if err != nil {
		return "", err
	}
	s.cache.Add(key, out)
	return out, nil
}

func (s *AIService) Answer(ctx context.Context, docText string, question string) (string, error) {
	docText = s.clampInput(docText)
	key := cacheKey("answer", question, docText)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}
	out, err := s.qa.Answer(ctx, docText, question)
	if err != nil {
		return "", err
	}
	s.cache.Add(key, out)
	return out, nil
}

func (s *AIService) clampInput(text string) string {
	if s.maxInputChars <= 0 {
		return text
	}
	return textkit.Truncate(text, s.maxInputChars)
}

func cacheKey(parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
