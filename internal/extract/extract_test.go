package extract

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a minimal single-font PDF with one text line per page.
func buildPDF(pages ...string) []byte {
	var objs []string
	n := len(pages)
	// 1: catalog, 2: pages, 3: font, then page/content pairs.
	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestExtract_PDF(t *testing.T) {
	first := "Cells are the basic unit of life"
	second := "Mitochondria produce energy for the cell"

	text, err := Extract(buildPDF(first, second), "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, strings.TrimSpace(text), text)
	i, j := strings.Index(text, first), strings.Index(text, second)
	require.GreaterOrEqual(t, i, 0)
	require.Greater(t, j, i)
	assert.Contains(t, text[i+len(first):j], "\n")
}

func TestExtract_UndeclaredTypeIsUnsupported(t *testing.T) {
	for _, ct := range []string{"", "application/octet-stream", "  "} {
		_, err := Extract(buildPDF("Page text"), ct)
		assert.ErrorIs(t, err, ErrUnsupportedType, "content type %q", ct)

		_, err = Document([]byte(strings.Repeat("A", 60)), ct)
		assert.ErrorIs(t, err, ErrUnsupportedType, "content type %q", ct)
	}
}

func TestExtract_Text(t *testing.T) {
	in := "Mitochondria are the powerhouse of the cell.\n  Keep whitespace.  "

	tests := []struct {
		name        string
		contentType string
	}{
		{"plain", "text/plain"},
		{"charset param", "text/plain; charset=utf-8"},
		{"markdown", "text/markdown"},
		{"upper case", "TEXT/PLAIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract([]byte(in), tt.contentType)
			require.NoError(t, err)
			assert.Equal(t, in, got)
		})
	}
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		contentType string
		wantErr     error
	}{
		{"json is unsupported", []byte(`{"a":1}`), "application/json", ErrUnsupportedType},
		{"image is unsupported", []byte("GIF89a"), "image/gif", ErrUnsupportedType},
		{"invalid utf-8", []byte{0xff, 0xfe, 0xfd}, "text/plain", ErrExtraction},
		{"declared pdf but text", []byte("definitely not a pdf document"), "application/pdf", ErrExtraction},
		{"truncated pdf", buildPDF("page")[:40], "application/pdf", ErrExtraction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.data, tt.contentType)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDocument(t *testing.T) {
	t.Run("accepts exactly sixty characters", func(t *testing.T) {
		in := strings.Repeat("A", 60)
		got, err := Document([]byte(in), "text/plain")
		require.NoError(t, err)
		assert.Equal(t, in, got)
	})

	t.Run("minimum boundary", func(t *testing.T) {
		_, err := Document([]byte(strings.Repeat("A", MinChars-1)), "text/plain")
		assert.ErrorIs(t, err, ErrTooShort)

		got, err := Document([]byte(strings.Repeat("A", MinChars)), "text/plain")
		require.NoError(t, err)
		assert.Len(t, got, MinChars)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := Document([]byte(strings.Repeat("A", 30)), "text/plain")
		assert.ErrorIs(t, err, ErrTooShort)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Document(nil, "text/plain")
		assert.ErrorIs(t, err, ErrTooShort)
	})

	t.Run("truncates to the cap", func(t *testing.T) {
		in := strings.Repeat("x", MaxChars) + "TAIL"
		got, err := Document([]byte(in), "text/plain")
		require.NoError(t, err)
		assert.Equal(t, in[:MaxChars], got)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		in := strings.Repeat("é", MaxChars+5)
		got, err := Document([]byte(in), "text/plain")
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("é", MaxChars), got)
	})

	t.Run("unsupported type wins over length", func(t *testing.T) {
		_, err := Document([]byte("x"), "application/json")
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}
