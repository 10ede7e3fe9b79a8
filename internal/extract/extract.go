package extract

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
)

// maxPages caps extraction for very large uploads; content past the cap adds
// little to a summary and a lot to latency.
const maxPages = 50

var (
	multiBlank = regexp.MustCompile(`\n\s*\n\s*\n+`)
	multiSpace = regexp.MustCompile(` +`)
)

type Result struct {
	Text      string
	PageCount int
	ByteSize  int64
}

// IsPDF sniffs the payload header instead of trusting the filename.
func IsPDF(data []byte) bool {
	return len(data) >= 5 && bytes.HasPrefix(data, []byte("%PDF-"))
}

// FromPDF extracts plain text from PDF bytes and normalizes its whitespace.
// A readable PDF with no extractable text (e.g. scanned images) is an
// ErrInvalid: there is nothing to summarize.
func FromPDF(data []byte) (*Result, error) {
	if !IsPDF(data) {
		return nil, fmt.Errorf("%w: not a pdf payload", appErr.ErrInvalid)
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrInvalid, err)
	}
	pageCount := reader.NumPage()
	pages := pageCount
	if pages > maxPages {
		pages = maxPages
	}
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(content)
	}
	text := CleanText(sb.String())
	if text == "" {
		return nil, fmt.Errorf("%w: no extractable text", appErr.ErrInvalid)
	}
	return &Result{
		Text:      text,
		PageCount: pageCount,
		ByteSize:  int64(len(data)),
	}, nil
}

// FromReader is a convenience wrapper for upload streams.
func FromReader(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return FromPDF(data)
}

// CleanText collapses runaway whitespace and strips control leftovers from
// PDF extraction (form feeds, non-breaking spaces, fragment lines).
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\x0c", "\n")
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = multiSpace.ReplaceAllString(text, " ")

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) >= 3 || line == "" {
			lines = append(lines, line)
		}
	}
	cleaned := strings.Join(lines, "\n")
	cleaned = multiBlank.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}
