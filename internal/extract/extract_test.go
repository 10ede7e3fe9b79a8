package extract

import (
	"errors"
	"testing"

	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
)

func TestIsPDF(t *testing.T) {
	if !IsPDF([]byte("%PDF-1.7 rest")) {
		t.Error("IsPDF should accept a pdf header")
	}
	if IsPDF([]byte("plain text")) {
		t.Error("IsPDF should reject non-pdf payloads")
	}
	if IsPDF(nil) {
		t.Error("IsPDF should reject empty payloads")
	}
}

func TestFromPDFRejectsNonPDF(t *testing.T) {
	_, err := FromPDF([]byte("hello world"))
	if !errors.Is(err, appErr.ErrInvalid) {
		t.Fatalf("FromPDF() error = %v, want ErrInvalid", err)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses blank runs",
			in:   "first\n\n\n\n\nsecond",
			want: "first\n\nsecond",
		},
		{
			name: "strips form feeds and nbsp",
			in:   "alpha\x0cbeta\u00a0gamma",
			want: "alpha\nbeta gamma",
		},
		{
			name: "drops fragment lines",
			in:   "real line here\nab\nanother real line",
			want: "real line here\nanother real line",
		},
		{
			name: "squeezes spaces",
			in:   "too     many   spaces",
			want: "too many spaces",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText() = %q, want %q", got, tt.want)
			}
		})
	}
}
