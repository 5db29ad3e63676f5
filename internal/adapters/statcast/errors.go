package statcast

import (
	"errors"
	"fmt"
)

// ErrUpstream marks any failure of the external statistics provider.
// Callers match it with errors.Is; the wrapped message always carries the
// offending query parameters so a failure is never mistaken for an empty
// result.
var ErrUpstream = errors.New("upstream provider failure")

func wrapUpstream(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUpstream, err)
}
