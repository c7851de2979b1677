package corpus

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/actdex/internal/domain/act"
	"github.com/kailas-cloud/actdex/internal/domain/keyword"
)

// buildHashFields converts a page into a flat map[string]string for HSET.
func buildHashFields(p *act.Page) map[string]string {
	m := map[string]string{
		"type":     "act",
		"act_name": p.ActName(),
		"title":    p.Title(),
		"text":     p.Text(),
		"keywords": strings.Join(p.Keywords().Words(), ","),
	}
	if p.PageNo() > 0 {
		m["page_no"] = strconv.Itoa(p.PageNo())
	}
	return m
}

// parseHashFields converts a flat hash map back into a page. A missing or
// unparseable page_no reads as 0 (page unknown).
func parseHashFields(m map[string]string) act.Page {
	pageNo := 0
	if v := m["page_no"]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			pageNo = n
		}
	}

	var words []string
	if v := m["keywords"]; v != "" {
		words = strings.Split(v, ",")
	}

	return act.Reconstruct(m["act_name"], m["title"], pageNo, m["text"], keyword.Reconstruct(words))
}
