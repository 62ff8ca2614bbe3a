package services

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// maxPDFPreviewChars bounds the text handed to the AI analysis prompt
const maxPDFPreviewChars = 4000

// ExtractPDFText pulls plain text out of an uploaded PDF so project analysis
// can look at actual content instead of just the filename. Extraction is
// best-effort; scanned PDFs without a text layer yield an empty string.
func ExtractPDFText(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, textReader, maxPDFPreviewChars); err != nil && err != io.EOF {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return buf.String(), nil
}
