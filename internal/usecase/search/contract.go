package search

import (
	"context"

	"github.com/kailas-cloud/actdex/internal/domain/act"
)

// Repository streams stored corpus pages for scanning.
type Repository interface {
	StreamPages(ctx context.Context, fn func(p act.Page) bool) error
}
