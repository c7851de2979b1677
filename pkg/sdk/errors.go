package actdex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Sentinel errors mapped from API error codes.
// Use errors.Is() to check.
var (
	ErrInvalidRequest       = errors.New("actdex: invalid request")
	ErrUnauthorized         = errors.New("actdex: unauthorized")
	ErrQuotaExceeded        = errors.New("actdex: explanation token budget exceeded")
	ErrStoreUnavailable     = errors.New("actdex: corpus store unavailable")
	ErrExplainerUnavailable = errors.New("actdex: explainer unavailable")
	ErrExplainerEmpty       = errors.New("actdex: explainer returned no explanation")
)

// APIError is a decoded error response from the actdex API.
// It wraps the sentinel matching its Code, if any.
type APIError struct {
	StatusCode int
	Code       string
	Message    string

	sentinel error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("actdex: api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.sentinel }

// decodeError turns a non-2xx response into an *APIError.
// Bodies that are not the usual {code, message} object still produce an
// APIError carrying the HTTP status.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	apiErr.sentinel = sentinelFor(apiErr.Code)
	return apiErr
}

func sentinelFor(code string) error {
	switch code {
	case "bad_request", "validation_failed":
		return ErrInvalidRequest
	case "unauthorized":
		return ErrUnauthorized
	case "explainer_quota_exceeded":
		return ErrQuotaExceeded
	case "store_unavailable":
		return ErrStoreUnavailable
	case "explainer_unavailable":
		return ErrExplainerUnavailable
	case "explainer_empty":
		return ErrExplainerEmpty
	default:
		return nil
	}
}
