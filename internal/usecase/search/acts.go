package search

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/actdex/internal/domain"
	"github.com/kailas-cloud/actdex/internal/domain/act"
)

// ActCount is one corpus inventory row.
type ActCount struct {
	Name  string
	Pages int
}

// Acts reports the distinct act names in the corpus with their stored page
// counts, sorted by name. The scan honors the same page budget as Search.
// Pages without an act name are not counted.
func (s *Service) Acts(ctx context.Context) ([]ActCount, error) {
	if s.repo == nil {
		return nil, domain.ErrStoreUninitialized
	}

	counts := make(map[string]int)
	scanned := 0
	capped := false

	err := s.repo.StreamPages(ctx, func(p act.Page) bool {
		scanned++
		if scanned > s.scanBudget {
			capped = true
			return false
		}
		if name := p.ActName(); name != "" {
			counts[name]++
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}

	if capped {
		s.logger.Warn("Scan budget reached, stopping early", zap.Int("budget", s.scanBudget))
	}

	acts := make([]ActCount, 0, len(counts))
	for name, pages := range counts {
		acts = append(acts, ActCount{Name: name, Pages: pages})
	}
	sort.Slice(acts, func(i, j int) bool { return acts[i].Name < acts[j].Name })
	return acts, nil
}
