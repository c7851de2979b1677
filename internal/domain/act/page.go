// Package act holds the corpus aggregate: one ingested page of a legal act.
package act

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/actdex/internal/domain/keyword"
)

// Page is one ingested page of a bare act (immutable value object).
// ActName and Title may be empty and PageNo may be zero: older ingests did
// not record them, and the read side treats those values as absent.
type Page struct {
	actName  string
	title    string
	pageNo   int
	text     string
	keywords keyword.Set
}

// New validates and creates a Page. Text must contain something beyond
// whitespace; blank pages are skipped at ingestion, never stored.
func New(actName, title string, pageNo int, text string, kws keyword.Set) (Page, error) {
	if strings.TrimSpace(text) == "" {
		return Page{}, fmt.Errorf("page text is required")
	}
	if pageNo < 0 {
		return Page{}, fmt.Errorf("page number must not be negative")
	}
	return Page{
		actName:  actName,
		title:    title,
		pageNo:   pageNo,
		text:     text,
		keywords: kws,
	}, nil
}

// Reconstruct creates a Page without validation (storage hydration).
func Reconstruct(actName, title string, pageNo int, text string, kws keyword.Set) Page {
	return Page{actName: actName, title: title, pageNo: pageNo, text: text, keywords: kws}
}

// ActName returns the act this page belongs to ("" if unknown).
func (p *Page) ActName() string { return p.actName }

// Title returns the display title ("" if unknown).
func (p *Page) Title() string { return p.title }

// PageNo returns the 1-based page number (0 if unknown).
func (p *Page) PageNo() int { return p.pageNo }

// Text returns the full extracted page text.
func (p *Page) Text() string { return p.text }

// Keywords returns the ingestion-time keyword set. Retrieval scores against
// Text directly; these are stored for inspection and future use.
func (p *Page) Keywords() keyword.Set { return p.keywords }
