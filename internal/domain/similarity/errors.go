package similarity

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrTargetNotFound   = errors.New("target pitcher not found in feature table")
	ErrNoCandidates     = errors.New("no comparable candidates")
	ErrNoFeatures       = errors.New("no features requested")
	ErrInvalidTopN      = errors.New("top_n must be positive")
	ErrIncompleteVector = errors.New("vector missing required feature")
)
