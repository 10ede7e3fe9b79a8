package ai

import (
	"fmt"
	"strings"

	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
)

// SplitWords partitions text into ordered, non-overlapping windows of at most
// maxWords whitespace-delimited words each, re-joined with single spaces.
// Empty input yields no chunks.
func SplitWords(text string, maxWords int) ([]string, error) {
	if maxWords <= 0 {
		return nil, fmt.Errorf("%w: max words per chunk must be positive, got %d", appErr.ErrInvalid, maxWords)
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}
	chunks := make([]string, 0, (len(words)+maxWords-1)/maxWords)
	for i := 0; i < len(words); i += maxWords {
		end := i + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks, nil
}
