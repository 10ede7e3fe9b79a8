package textkit

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	wordRe     = regexp.MustCompile(`[a-zA-Z0-9]+`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "up": {}, "about": {}, "into": {}, "through": {}, "during": {},
	"before": {}, "after": {}, "above": {}, "below": {}, "between": {},
	"among": {}, "within": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {}, "this": {},
	"that": {}, "these": {}, "those": {}, "i": {}, "you": {}, "he": {},
	"she": {}, "it": {}, "we": {}, "they": {}, "me": {}, "him": {}, "her": {},
	"us": {}, "them": {},
}

// Keywords returns the most frequent non-stop-words of text, highest
// frequency first. Ties keep first-seen order so output is deterministic.
func Keywords(text string, max int) []string {
	if text == "" || max <= 0 {
		return nil
	}
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	freq := make(map[string]int)
	order := make([]string, 0)
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		if _, skip := stopWords[w]; skip {
			continue
		}
		if _, seen := freq[w]; !seen {
			order = append(order, w)
		}
		freq[w]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})
	if len(order) > max {
		order = order[:max]
	}
	return order
}

func CountWords(text string) int {
	return len(strings.Fields(text))
}

func CountSentences(text string) int {
	count := 0
	for _, part := range sentenceRe.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

// FormatSize renders a byte count the way the UI shows it (1.5 MB, 300 B).
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

// Truncate shortens text to at most n runes, appending an ellipsis when
// something was cut.
func Truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
