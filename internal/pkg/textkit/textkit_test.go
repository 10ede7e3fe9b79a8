package textkit

import (
	"reflect"
	"testing"
)

func TestKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{
			name: "empty text",
			text: "",
			max:  5,
			want: nil,
		},
		{
			name: "stop words and short words removed",
			text: "the cat and the dog in a box",
			max:  5,
			want: []string{"cat", "dog", "box"},
		},
		{
			name: "frequency ordering",
			text: "network network network storage storage compute",
			max:  5,
			want: []string{"network", "storage", "compute"},
		},
		{
			name: "max cap applies",
			text: "alpha alpha beta beta gamma delta",
			max:  2,
			want: []string{"alpha", "beta"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Keywords(tt.text, tt.max)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keywords() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountSentences(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"One sentence.", 1},
		{"First. Second! Third?", 3},
		{"No terminator", 1},
		{"Trailing dots...", 1},
	}
	for _, tt := range tests {
		if got := CountSentences(tt.text); got != tt.want {
			t.Errorf("CountSentences(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{300, "300 B"},
		{2048, "2.0 KB"},
		{1572864, "1.5 MB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.size); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Errorf("Truncate long = %q", got)
	}
}
