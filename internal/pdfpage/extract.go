// Package pdfpage extracts per-page plain text from PDF files.
package pdfpage

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ExtractPages returns the text of every page in the file at path, in page
// order. One string per page: pages that cannot be decoded come back empty
// so positional page numbering stays intact.
func ExtractPages(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	total := r.NumPage()
	texts := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		texts = append(texts, pageText(r.Page(i)))
	}
	return texts, nil
}

// pageText decodes a single page. The parser panics on some malformed
// content streams; such pages yield "".
func pageText(p pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	if p.V.IsNull() {
		return ""
	}
	t, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return t
}
