package ingest

import (
	"context"

	"github.com/kailas-cloud/actdex/internal/domain/act"
)

// Repository persists ingested corpus pages.
type Repository interface {
	SavePages(ctx context.Context, pages []act.Page) error
}
