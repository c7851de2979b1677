package domain

import "errors"

var (
	// ErrInvalidQuery signals a malformed or oversized search query.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrStoreUninitialized signals that no corpus store was configured.
	ErrStoreUninitialized = errors.New("corpus store not initialized")
	// ErrStoreUnavailable signals a corpus store failure mid-request.
	ErrStoreUnavailable = errors.New("corpus store unavailable")
	// ErrExplainerUnavailable signals an explainer provider failure.
	ErrExplainerUnavailable = errors.New("explainer unavailable")
	// ErrExplainerEmpty signals that the explainer returned no text.
	ErrExplainerEmpty = errors.New("explainer returned no explanation")
	// ErrExplainerQuotaExceeded signals an exhausted explanation token budget.
	ErrExplainerQuotaExceeded = errors.New("explanation token budget exceeded")
)
