package ingest

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/actdex/internal/domain"
	"github.com/kailas-cloud/actdex/internal/domain/act"
	"github.com/kailas-cloud/actdex/internal/domain/keyword"
)

// DefaultBatchSize is the number of pages written to the store per batch.
const DefaultBatchSize = 100

// Service turns extracted PDF page texts into stored corpus pages.
type Service struct {
	repo      Repository
	batchSize int
	progress  func(pages int)
	logger    *zap.Logger
}

// New creates an ingestion service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, batchSize: DefaultBatchSize, logger: logger}
}

// WithBatchSize configures how many pages are written per store batch.
func (s *Service) WithBatchSize(n int) *Service {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// WithProgress registers a callback invoked after every persisted batch
// with the number of pages that batch contained.
func (s *Service) WithProgress(fn func(pages int)) *Service {
	s.progress = fn
	return s
}

// Result summarizes one ingested act.
type Result struct {
	ActName string
	Saved   int
	Skipped int
}

// IngestAct stores the given page texts as corpus pages of one act.
// Page numbers are positional: pageTexts[i] becomes page i+1, so skipped
// blank pages still leave a gap in the numbering.
func (s *Service) IngestAct(ctx context.Context, actName string, pageTexts []string) (Result, error) {
	if s.repo == nil {
		return Result{}, domain.ErrStoreUninitialized
	}

	res := Result{ActName: actName}
	batch := make([]act.Page, 0, s.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.repo.SavePages(ctx, batch); err != nil {
			return fmt.Errorf("save pages: %w", err)
		}
		res.Saved += len(batch)
		if s.progress != nil {
			s.progress(len(batch))
		}
		batch = batch[:0]
		return nil
	}

	for i, text := range pageTexts {
		if strings.TrimSpace(text) == "" {
			res.Skipped++
			continue
		}

		pageNo := i + 1
		title := fmt.Sprintf("%s - Page %d", actName, pageNo)
		p, err := act.New(actName, title, pageNo, text, keyword.Extract(text, keyword.PageLimit))
		if err != nil {
			return res, fmt.Errorf("page %d: %w", pageNo, err)
		}

		batch = append(batch, p)
		if len(batch) >= s.batchSize {
			if err := flush(); err != nil {
				return res, err
			}
		}
	}

	if err := flush(); err != nil {
		return res, err
	}

	s.logger.Info("Ingestion done",
		zap.String("act", actName),
		zap.Int("saved", res.Saved),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}
