package ingest

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	noisePattern     = regexp.MustCompile(`(?i)(bare act|copy|pdf)`)
	separatorPattern = regexp.MustCompile(`[_\-]+`)
	spacesPattern    = regexp.MustCompile(`\s+`)
)

// InferActName derives a readable act name from a PDF filename:
// "it_act_2000.pdf" becomes "it act 2000". Falls back to the bare
// filename when cleaning strips everything away.
func InferActName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	cleaned := noisePattern.ReplaceAllString(name, "")
	cleaned = separatorPattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(spacesPattern.ReplaceAllString(cleaned, " "))
	if cleaned == "" {
		return name
	}
	return cleaned
}
