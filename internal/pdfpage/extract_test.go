package pdfpage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writePDF builds an uncompressed single-font PDF with one text run per
// page. Object layout: 1 catalog, 2 page tree, 3..3+n-1 pages,
// 3+n..3+2n-1 content streams, 2n+3 font.
func writePDF(t *testing.T, path string, pageTexts []string) {
	t.Helper()

	n := len(pageTexts)
	fontObj := 2*n + 3
	var buf bytes.Buffer
	offsets := make([]int, fontObj+1)

	addObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n")
	addObj(1, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, n)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	addObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n))

	for i := 0; i < n; i++ {
		addObj(3+i, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>",
			3+n+i, fontObj))
	}
	for i, text := range pageTexts {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		addObj(3+n+i, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	addObj(fontObj, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", fontObj+1)
	for i := 1; i <= fontObj; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", fontObj+1, xref)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write pdf fixture: %v", err)
	}
}

func TestExtractPages_SinglePage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.pdf")
	writePDF(t, path, []string{"Hello World"})

	texts, err := ExtractPages(path)
	if err != nil {
		t.Fatalf("ExtractPages: %v", err)
	}
	if len(texts) != 1 {
		t.Fatalf("pages: got %d, want 1", len(texts))
	}
	if !strings.Contains(texts[0], "Hello World") {
		t.Errorf("page text: got %q", texts[0])
	}
}

func TestExtractPages_PageOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "two.pdf")
	writePDF(t, path, []string{"first page text", "second page text"})

	texts, err := ExtractPages(path)
	if err != nil {
		t.Fatalf("ExtractPages: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("pages: got %d, want 2", len(texts))
	}
	if !strings.Contains(texts[0], "first") {
		t.Errorf("page 1: got %q", texts[0])
	}
	if !strings.Contains(texts[1], "second") {
		t.Errorf("page 2: got %q", texts[1])
	}
}

func TestExtractPages_MissingFile(t *testing.T) {
	_, err := ExtractPages(filepath.Join(t.TempDir(), "missing.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExtractPages_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.pdf")
	if err := os.WriteFile(path, []byte("plain text, no pdf header"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := ExtractPages(path)
	if err == nil {
		t.Fatal("expected error for non-pdf content")
	}
}
