package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrInvalidQuery marks a malformed request: missing window, missing
	// ids, or out-of-range top_n. Distinct from a well-formed query that
	// matches nothing, which returns an empty result.
	ErrInvalidQuery = errors.New("invalid query")
)
