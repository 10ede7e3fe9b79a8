package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/docbrief/docbrief/internal/ai"
	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
)

const (
	qaChunkWords   = 1000
	qaMaxChunks    = 3
	qaContextLimit = 4000
)

// QAPipeline answers a question against document text. It does not build a
// retrieval index; key material tends to sit early in a document, so the
// context window is the leading sections with a hard character cap.
type QAPipeline struct {
	gw *ai.Gateway
}

func NewQAPipeline(gw *ai.Gateway) *QAPipeline {
	return &QAPipeline{gw: gw}
}

func (p *QAPipeline) Answer(ctx context.Context, docText string, question string) (string, error) {
	if strings.TrimSpace(docText) == "" {
		return "", fmt.Errorf("%w: document text is empty", appErr.ErrInvalid)
	}
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question is empty", appErr.ErrInvalid)
	}
	chunks, err := ai.SplitWords(docText, qaChunkWords)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w: document text is empty", appErr.ErrInvalid)
	}
	docCtx := chunks[0]
	if len(chunks) > 1 {
		take := chunks
		if len(take) > qaMaxChunks {
			take = take[:qaMaxChunks]
		}
		docCtx = strings.Join(take, "\n\n")
		if len(docCtx) > qaContextLimit {
			docCtx = docCtx[:qaContextLimit] + "..."
		}
	}
	prompt := fmt.Sprintf(
		"Based on this document, answer the question briefly and accurately.\n\nDocument: %s\n\nQuestion: %s\n\nAnswer:",
		docCtx, question,
	)
	return p.gw.Generate(ctx, prompt)
}
