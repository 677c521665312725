// Package extract turns uploaded bytes into plain study text.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"

	"studybuddy/internal/pkg/textutil"
)

const (
	// MinChars is the shortest document accepted on upload.
	MinChars = 50
	// MaxChars is the upload cap; longer text is cut, not rejected.
	MaxChars = 10000
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooShort        = errors.New("document is too short or empty")
	ErrExtraction      = errors.New("failed to extract text")
)

const mimePDF = "application/pdf"

// Document extracts text and applies the upload bounds: at least MinChars
// characters, truncated to MaxChars.
func Document(data []byte, contentType string) (string, error) {
	text, err := Extract(data, contentType)
	if err != nil {
		return "", err
	}
	if textutil.Len(text) < MinChars {
		return "", ErrTooShort
	}
	return textutil.Truncate(text, MaxChars), nil
}

// Extract converts data to text based on the declared content type.
// PDF pages are joined by newline and trimmed; text/* is decoded as UTF-8 unchanged.
// Any other type, including an empty one, is unsupported. A declared PDF must also
// look like one.
func Extract(data []byte, contentType string) (string, error) {
	mediaType := normalizeType(contentType)

	switch {
	case mediaType == mimePDF:
		if !mimetype.Detect(data).Is(mimePDF) {
			return "", fmt.Errorf("%w: content is not a PDF document", ErrExtraction)
		}
		return extractPDF(data)
	case strings.HasPrefix(mediaType, "text/"):
		return decodeText(data)
	case mediaType == "":
		return "", fmt.Errorf("%w: no content type", ErrUnsupportedType)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}
}

func normalizeType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Keep whatever precedes the parameters so a sloppy header still dispatches.
		mediaType, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func decodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", ErrExtraction)
	}
	return string(data), nil
}

func extractPDF(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: pdf: %v", ErrExtraction, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf reader: %v", ErrExtraction, err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range p.Fonts() {
			f := p.Font(name)
			fonts[name] = &f
		}
		pageText, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("%w: pdf page %d: %v", ErrExtraction, i, err)
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}
