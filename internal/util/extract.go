package util

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/gen2brain/go-fitz"
)

var emailRe = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// ExtractPDFText extracts the embedded text of a PDF, page by page. A PDF
// with no extractable text yields an empty string, not an error; only a
// document that cannot be opened at all is an error.
func ExtractPDFText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			log.Printf("page %d: failed to extract text: %v", n+1, err)
			continue
		}
		fullText.WriteString(pageText)
	}

	return strings.TrimSpace(fullText.String()), nil
}

// ExtractEmail returns the first email-shaped token in the text, or an
// empty string when there is none.
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// PDFExtractor adapts ExtractPDFText for injection into the screening
// pipeline.
type PDFExtractor struct{}

func (PDFExtractor) ExtractText(data []byte) (string, error) {
	return ExtractPDFText(data)
}
