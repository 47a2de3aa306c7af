package model

import "errors"

// Error kinds reported in per-stock sync outcomes
const (
	ErrKindNotFound    = "not_found"
	ErrKindNoData      = "no_data"
	ErrKindRateLimited = "rate_limited"
	ErrKindTransport   = "transport"
	ErrKindPersistence = "persistence"
)

// FetchError is a typed failure from the external quote provider
type FetchError struct {
	Kind    string
	Message string
}

func (e *FetchError) Error() string {
	return e.Message
}

// NewFetchError creates a typed fetch failure
func NewFetchError(kind, message string) *FetchError {
	return &FetchError{Kind: kind, Message: message}
}

// ClassifyError extracts the error kind and message from a fetch failure.
// Errors without a typed kind are treated as transport failures.
func ClassifyError(err error) (string, string) {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind, fetchErr.Message
	}
	return ErrKindTransport, err.Error()
}

// IsTransient reports whether a fetch failure is worth retrying
func IsTransient(err error) bool {
	kind, _ := ClassifyError(err)
	return kind == ErrKindRateLimited || kind == ErrKindTransport
}
