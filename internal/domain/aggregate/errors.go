package aggregate

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrEmptyInput = errors.New("no events to aggregate")
	ErrNoFeatures = errors.New("no features requested")
)
