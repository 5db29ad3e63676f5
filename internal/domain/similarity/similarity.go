// Package similarity ranks pitchers by Euclidean distance in feature space.
//
// The default metric operates on raw physical units (mph, rpm, feet mixed
// in one vector), matching the observed behavior this service replicates.
// That is a documented limitation: features with a larger numeric range,
// spin rate above all, dominate the distance. WithNormalization enables an
// opt-in z-score mode; raw Euclidean stays the default so that results are
// stable against the historical metric.
package similarity

import (
	"math"
	"sort"

	"github.com/okian/mound/internal/domain/model"
)

// Option applies a configuration option to a ranking run.
type Option func(*settings)

type settings struct {
	normalize bool
}

// WithNormalization standardizes each feature to zero mean and unit
// variance across the target and all comparable candidates before
// computing distances. A feature with zero variance contributes nothing
// to any distance in this mode.
func WithNormalization() Option {
	return func(s *settings) {
		s.normalize = true
	}
}

// Rank computes the Euclidean distance from every comparable candidate in
// table to the target and returns the topN closest, sorted by
// (distance asc, pitcher id asc). The feature slice fixes the coordinate
// axes; target and candidates are projected in that order.
//
// Candidates missing any requested feature are excluded rather than given
// a placeholder coordinate, so an incomplete vector can never distort the
// metric space. The target itself is never a candidate. Fewer candidates
// than topN is a normal boundary: the result is simply shorter.
func Rank(table map[int64]model.FeatureVector, targetID int64, features []model.Feature, topN int, opts ...Option) ([]model.RankedMatch, error) {
	if len(features) == 0 {
		return nil, ErrNoFeatures
	}
	if topN < 1 {
		return nil, ErrInvalidTopN
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	target, ok := table[targetID]
	if !ok {
		return nil, ErrTargetNotFound
	}
	if !target.Has(features...) {
		// A target without every axis cannot anchor the metric.
		return nil, ErrTargetNotFound
	}

	candidates := make([]int64, 0, len(table))
	for id, vec := range table {
		if id == targetID {
			continue
		}
		if vec.Has(features...) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	project := rawProjection(features)
	if s.normalize {
		project = zscoreProjection(table, targetID, candidates, features)
	}

	targetCoords := project(target)
	matches := make([]model.RankedMatch, 0, len(candidates))
	for _, id := range candidates {
		matches = append(matches, model.RankedMatch{
			PitcherID: id,
			Distance:  euclidean(targetCoords, project(table[id])),
		})
	}

	// Ties in distance break by ascending pitcher id for determinism.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].PitcherID < matches[j].PitcherID
	})

	if topN < len(matches) {
		matches = matches[:topN]
	}
	for i := range matches {
		matches[i].Rank = i
	}
	return matches, nil
}

// Distance computes the raw Euclidean distance between two vectors over
// the given features. Either vector missing a feature is an error.
func Distance(a, b model.FeatureVector, features []model.Feature) (float64, error) {
	if len(features) == 0 {
		return 0, ErrNoFeatures
	}
	if !a.Has(features...) || !b.Has(features...) {
		return 0, ErrIncompleteVector
	}
	project := rawProjection(features)
	return euclidean(project(a), project(b)), nil
}

type projection func(model.FeatureVector) []float64

func rawProjection(features []model.Feature) projection {
	return func(v model.FeatureVector) []float64 {
		coords := make([]float64, len(features))
		for i, f := range features {
			coords[i], _ = v.Mean(f)
		}
		return coords
	}
}

// zscoreProjection standardizes coordinates using the mean and standard
// deviation of each feature over the target plus all comparable candidates.
func zscoreProjection(table map[int64]model.FeatureVector, targetID int64, candidates []int64, features []model.Feature) projection {
	ids := append([]int64{targetID}, candidates...)
	mean := make([]float64, len(features))
	std := make([]float64, len(features))

	for i, f := range features {
		var sum float64
		for _, id := range ids {
			v, _ := table[id].Mean(f)
			sum += v
		}
		mean[i] = sum / float64(len(ids))

		var sq float64
		for _, id := range ids {
			v, _ := table[id].Mean(f)
			d := v - mean[i]
			sq += d * d
		}
		std[i] = math.Sqrt(sq / float64(len(ids)))
	}

	return func(v model.FeatureVector) []float64 {
		coords := make([]float64, len(features))
		for i, f := range features {
			raw, _ := v.Mean(f)
			if std[i] == 0 {
				coords[i] = 0
				continue
			}
			coords[i] = (raw - mean[i]) / std[i]
		}
		return coords
	}
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
