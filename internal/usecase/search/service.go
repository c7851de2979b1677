package search

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/actdex/internal/domain"
	"github.com/kailas-cloud/actdex/internal/domain/act"
	"github.com/kailas-cloud/actdex/internal/domain/keyword"
	domsearch "github.com/kailas-cloud/actdex/internal/domain/search"
	"github.com/kailas-cloud/actdex/internal/metrics"
)

const (
	// DefaultScanBudget caps pages visited per scan.
	DefaultScanBudget = 2000
	// DefaultResultBudget caps results returned per search.
	DefaultResultBudget = 20
	// DefaultSnippetChars caps snippet length in runes.
	DefaultSnippetChars = 400
)

// Config bounds a scan. Zero values fall back to the package defaults.
type Config struct {
	ScanBudget   int
	ResultBudget int
	SnippetChars int
}

// Service scans the act corpus and ranks pages by keyword hits.
type Service struct {
	repo         Repository
	scanBudget   int
	resultBudget int
	snippetChars int
	logger       *zap.Logger
}

// New creates a search service.
func New(repo Repository, cfg Config, logger *zap.Logger) *Service {
	if cfg.ScanBudget <= 0 {
		cfg.ScanBudget = DefaultScanBudget
	}
	if cfg.ResultBudget <= 0 {
		cfg.ResultBudget = DefaultResultBudget
	}
	if cfg.SnippetChars <= 0 {
		cfg.SnippetChars = DefaultSnippetChars
	}
	return &Service{
		repo:         repo,
		scanBudget:   cfg.ScanBudget,
		resultBudget: cfg.ResultBudget,
		snippetChars: cfg.SnippetChars,
		logger:       logger,
	}
}

// Search scans stored pages in one pass, scores each against the query
// keywords, and returns the ranked matches. The scan stops once the page
// budget is spent; whatever matched by then is ranked and returned.
func (s *Service) Search(ctx context.Context, q domsearch.Query) (domsearch.Response, error) {
	if s.repo == nil {
		return domsearch.Response{}, domain.ErrStoreUninitialized
	}

	kws := keyword.Extract(q.Text(), keyword.QueryLimit)
	s.logger.Debug("Extracted keywords",
		zap.String("query", q.Text()),
		zap.Strings("keywords", kws.Words()),
	)

	if kws.IsEmpty() {
		metrics.SearchesTotal.WithLabelValues("empty_keywords").Inc()
		return domsearch.NewResponse(q.Text(), kws, nil), nil
	}

	var (
		scanned int
		capped  bool
		matches []domsearch.Result
	)

	err := s.repo.StreamPages(ctx, func(p act.Page) bool {
		scanned++
		if scanned > s.scanBudget {
			capped = true
			return false
		}

		if p.Text() == "" {
			return true
		}

		score := kws.Score(p.Text())
		if score <= 0 {
			return true
		}

		matches = append(matches, domsearch.NewResult(
			p.ActName(), p.Title(), p.PageNo(), snippetOf(p.Text(), s.snippetChars), score,
		))
		return true
	})
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return domsearch.Response{}, fmt.Errorf("scan corpus: %w", err)
	}

	if capped {
		s.logger.Warn("Scan budget reached, stopping early", zap.Int("scan_budget", s.scanBudget))
		metrics.SearchScanCapTotal.Inc()
	}

	// Best score first; equal scores keep corpus order within the same page
	// number, unknown pages (0) ahead of numbered ones.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score() != matches[j].Score() {
			return matches[i].Score() > matches[j].Score()
		}
		return matches[i].PageNo() < matches[j].PageNo()
	})

	limit := s.resultBudget
	if mr := q.MaxResults(); mr > 0 && mr < limit {
		limit = mr
	}
	returned := matches
	if len(returned) > limit {
		returned = returned[:limit]
	}

	outcome := "ok"
	if len(matches) == 0 {
		outcome = "no_match"
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	metrics.SearchPagesScannedTotal.Add(float64(scanned))
	metrics.SearchPagesMatchedTotal.Add(float64(len(matches)))

	s.logger.Info("Search done",
		zap.String("query", q.Text()),
		zap.Int("scanned", scanned),
		zap.Int("matched", len(matches)),
		zap.Int("returned", len(returned)),
	)

	return domsearch.NewResponse(q.Text(), kws, returned), nil
}

// snippetOf returns the first max runes of text, verbatim.
func snippetOf(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
