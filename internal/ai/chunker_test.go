package ai

import (
	"errors"
	"strings"
	"testing"

	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
)

func TestSplitWordsPartition(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWords int
		want     []string
	}{
		{
			name:     "single chunk",
			text:     "one two three",
			maxWords: 5,
			want:     []string{"one two three"},
		},
		{
			name:     "exact boundary",
			text:     "a b c d",
			maxWords: 2,
			want:     []string{"a b", "c d"},
		},
		{
			name:     "short tail chunk",
			text:     "a b c d e",
			maxWords: 2,
			want:     []string{"a b", "c d", "e"},
		},
		{
			name:     "whitespace normalized",
			text:     "  a\n\tb   c  ",
			maxWords: 2,
			want:     []string{"a b", "c"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitWords(tt.text, tt.maxWords)
			if err != nil {
				t.Fatalf("SplitWords() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("SplitWords() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitWordsRejoinsToOriginal(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 200)
	for _, maxWords := range []int{1, 7, 100, 5000} {
		chunks, err := SplitWords(text, maxWords)
		if err != nil {
			t.Fatalf("SplitWords(maxWords=%d) error = %v", maxWords, err)
		}
		rejoined := strings.Join(chunks, " ")
		if rejoined != strings.Join(strings.Fields(text), " ") {
			t.Errorf("maxWords=%d: rejoined text does not match word sequence", maxWords)
		}
		for i, c := range chunks {
			if n := len(strings.Fields(c)); n > maxWords {
				t.Errorf("maxWords=%d: chunk %d has %d words", maxWords, i, n)
			}
		}
	}
}

func TestSplitWordsEmptyText(t *testing.T) {
	chunks, err := SplitWords("", 100)
	if err != nil {
		t.Fatalf("SplitWords() error = %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("SplitWords(\"\") = %v, want empty", chunks)
	}
}

func TestSplitWordsInvalidMaxWords(t *testing.T) {
	for _, maxWords := range []int{0, -1} {
		_, err := SplitWords("some text", maxWords)
		if !errors.Is(err, appErr.ErrInvalid) {
			t.Errorf("SplitWords(maxWords=%d) error = %v, want ErrInvalid", maxWords, err)
		}
	}
}
