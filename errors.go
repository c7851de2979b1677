package actdex

import "github.com/kailas-cloud/actdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidQuery           = domain.ErrInvalidQuery
	ErrStoreUninitialized     = domain.ErrStoreUninitialized
	ErrStoreUnavailable       = domain.ErrStoreUnavailable
	ErrExplainerUnavailable   = domain.ErrExplainerUnavailable
	ErrExplainerEmpty         = domain.ErrExplainerEmpty
	ErrExplainerQuotaExceeded = domain.ErrExplainerQuotaExceeded
)
