// Package aggregate turns a flat stream of pitch events into per-pitcher
// mean feature vectors.
package aggregate

import (
	"github.com/okian/mound/internal/domain/model"
)

// GroupKey identifies one aggregation partition. PitchType is empty unless
// pitch-type grouping is enabled.
type GroupKey struct {
	PitcherID int64
	PitchType string
}

// Option applies a configuration option to an aggregation run.
type Option func(*settings)

type settings struct {
	byPitchType bool
}

// WithPitchTypeGrouping partitions events by (pitcher, pitch type) instead
// of pitcher alone.
func WithPitchTypeGrouping() Option {
	return func(s *settings) {
		s.byPitchType = true
	}
}

// Aggregate partitions events by pitcher (or pitcher and pitch type) and
// computes the arithmetic mean of every requested feature per partition.
//
// Missing measurements are excluded per feature: an event without a spin
// reading still contributes its velocity to the velocity mean. A feature
// with zero contributing events in a group is left out of that group's
// Means map entirely rather than being coerced to zero.
//
// The result has exactly one entry per group that had at least one event.
// An empty event slice is an error here; callers that filter upstream and
// consider emptiness a legitimate outcome must check before calling.
func Aggregate(events []model.PitchEvent, features []model.Feature, opts ...Option) (map[GroupKey]model.FeatureVector, error) {
	if len(events) == 0 {
		return nil, ErrEmptyInput
	}
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	type accum struct {
		sums   map[model.Feature]float64
		counts map[model.Feature]int
	}
	groups := make(map[GroupKey]*accum)

	for _, e := range events {
		key := GroupKey{PitcherID: e.PitcherID}
		if s.byPitchType {
			key.PitchType = e.PitchType
		}
		acc, ok := groups[key]
		if !ok {
			acc = &accum{
				sums:   make(map[model.Feature]float64, len(features)),
				counts: make(map[model.Feature]int, len(features)),
			}
			groups[key] = acc
		}
		for _, f := range features {
			if v, present := e.Value(f); present {
				acc.sums[f] += v
				acc.counts[f]++
			}
		}
	}

	out := make(map[GroupKey]model.FeatureVector, len(groups))
	for key, acc := range groups {
		vec := model.FeatureVector{
			PitcherID: key.PitcherID,
			PitchType: key.PitchType,
			Means:     make(map[model.Feature]float64, len(acc.sums)),
			Counts:    make(map[model.Feature]int, len(acc.counts)),
		}
		for f, sum := range acc.sums {
			n := acc.counts[f]
			vec.Means[f] = sum / float64(n)
			vec.Counts[f] = n
		}
		out[key] = vec
	}
	return out, nil
}

// ByPitcher flattens a pitcher-grouped result into the table shape the
// similarity ranker consumes.
func ByPitcher(groups map[GroupKey]model.FeatureVector) map[int64]model.FeatureVector {
	table := make(map[int64]model.FeatureVector, len(groups))
	for key, vec := range groups {
		table[key.PitcherID] = vec
	}
	return table
}
