package template

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/actdex/internal/domain"
	"github.com/kailas-cloud/actdex/internal/domain/style"
)

const (
	// bulletLimit caps how many passages are rendered as bullets.
	bulletLimit = 8
	// actsMentionLimit caps how many act names the intro mentions.
	actsMentionLimit = 3
	// snippetRunes caps the quoted snippet length inside a bullet.
	snippetRunes = 220
)

// Explainer renders explanations locally from the retrieved passages,
// without calling an LLM. It serves as the provider when no API key is
// configured.
type Explainer struct{}

// NewExplainer creates the local template provider.
func NewExplainer() *Explainer { return &Explainer{} }

// Explain implements domain.Explainer. Token counts are always zero.
func (e *Explainer) Explain(_ context.Context, input domain.ExplainInput) (domain.ExplainResult, error) {
	return domain.ExplainResult{Explanation: intro(input) + bullets(input)}, nil
}

// HealthCheck implements the provider probe. The local renderer has no
// upstream to fail.
func (e *Explainer) HealthCheck(_ context.Context) error { return nil }

func intro(input domain.ExplainInput) string {
	acts := mainActs(input.Passages)

	if input.Style == style.Hinglish {
		s := fmt.Sprintf("Tumne poocha: \"%s\"\n\n", input.Query)
		s += "Jo bare acts aur judgments mile hain, unko dekh kar simplified explanation ye hai:\n"
		if acts != "" {
			s += fmt.Sprintf("Ye mainly in Acts/judgments se related hai: %s.\n\n", acts)
		}
		return s
	}

	s := fmt.Sprintf("You asked: \"%s\"\n\n", input.Query)
	s += "Based on the bare acts and case law pages found in your documents, here is a simplified explanation:\n"
	if acts != "" {
		s += fmt.Sprintf("This mainly relates to these Acts/judgments: %s.\n\n", acts)
	}
	return s
}

// mainActs lists up to three distinct act names for the intro, sorted.
func mainActs(passages []domain.ExplainPassage) string {
	seen := make(map[string]struct{})
	for _, p := range passages {
		if p.ActName == "" {
			continue
		}
		seen[strings.TrimSpace(p.ActName)] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > actsMentionLimit {
		names = names[:actsMentionLimit]
	}

	kept := names[:0]
	for _, n := range names {
		if n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, ", ")
}

func bullets(input domain.ExplainInput) string {
	passages := input.Passages
	if len(passages) > bulletLimit {
		passages = passages[:bulletLimit]
	}

	lines := make([]string, 0, len(passages))
	for _, p := range passages {
		title := strings.TrimSpace(p.ActName)
		if p.Title != "" {
			if title != "" {
				title = title + " – " + p.Title // en dash separator
			} else {
				title = p.Title
			}
		}

		page := ""
		if p.PageNo > 0 {
			page = fmt.Sprintf("(Page %d)", p.PageNo)
		}

		snippet := strings.ReplaceAll(strings.TrimSpace(p.Snippet), "\n", " ")
		if runes := []rune(snippet); len(runes) > snippetRunes {
			snippet = string(runes[:snippetRunes])
		}

		if input.Style == style.Hinglish {
			lines = append(lines, fmt.Sprintf("- %s %s: simple words me roughly ye bataya gaya hai ki \"%s\"", title, page, snippet))
		} else {
			lines = append(lines, fmt.Sprintf("- %s %s: in simple terms, this passage is talking about \"%s\"", title, page, snippet))
		}
	}
	return strings.Join(lines, "\n")
}
