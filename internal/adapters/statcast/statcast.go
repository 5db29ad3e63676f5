// Package statcast provides the external data collaborators: a pitch-event
// source backed by Baseball Savant's CSV search export and a name resolver
// backed by the MLB Stats API. Neither is part of the similarity core; the
// core consumes already-materialized events and decorates ranked ids with
// names after the fact.
package statcast

import (
	"context"
	"time"

	"github.com/okian/mound/internal/domain/model"
)

// Source fetches raw pitch events for a date window.
type Source interface {
	// FetchEvents returns every pitch thrown in [start, end], both
	// inclusive. An empty slice is a legitimate result for a window with
	// no games; failures wrap ErrUpstream.
	FetchEvents(ctx context.Context, start, end time.Time) ([]model.PitchEvent, error)

	// FetchPitcherEvents returns every pitch thrown by one pitcher in
	// [start, end].
	FetchPitcherEvents(ctx context.Context, start, end time.Time, pitcherID int64) ([]model.PitchEvent, error)
}

// Resolver maps pitcher ids to display names. A missing name for an id is
// not an error; the id is simply absent from the returned map.
type Resolver interface {
	ResolveNames(ctx context.Context, ids []int64) (map[int64]string, error)
}
