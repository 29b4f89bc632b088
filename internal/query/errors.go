package query

import "errors"

var (
	// ErrInvalidTenant is returned when the site identifier maps to no
	// active tenant. Surfaced as an authorization failure, never retried.
	ErrInvalidTenant = errors.New("invalid tenant")

	// ErrOriginNotAllowed is returned when a present origin is malformed or
	// not permitted for the tenant. Surfaced as a permission failure.
	ErrOriginNotAllowed = errors.New("origin not allowed")

	// ErrSynthesisFailed is returned when the primary answer generation
	// fails or times out. Fatal for the query; the caller may resubmit.
	ErrSynthesisFailed = errors.New("answer synthesis failed")
)
