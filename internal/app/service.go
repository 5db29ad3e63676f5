// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/okian/mound/internal/adapters/statcast"
	"github.com/okian/mound/internal/domain/aggregate"
	"github.com/okian/mound/internal/domain/model"
	"github.com/okian/mound/internal/domain/similarity"
	"github.com/okian/mound/pkg/logger"
	"github.com/okian/mound/pkg/metrics"
)

// SimilarityQuery describes one find-similar request.
type SimilarityQuery struct {
	Start     time.Time
	End       time.Time
	TargetID  int64
	PitchType string
	TopN      int // 0 means the configured default
}

// AveragesQuery describes one per-pitch-type averages request.
type AveragesQuery struct {
	Start     time.Time
	End       time.Time
	PitcherID int64
}

// CandidatesQuery describes one candidate-listing request.
type CandidatesQuery struct {
	Start     time.Time
	End       time.Time
	PitchType string
}

// Service orchestrates the pipeline: fetch events, aggregate features,
// rank by distance, decorate with names. The two core stages stay pure;
// all I/O happens through the injected collaborators.
type Service struct {
	source   statcast.Source
	resolver statcast.Resolver
	logger   logger.Logger

	features    []model.Feature
	normalize   bool
	defaultTopN int
	maxTopN     int

	// Request counters for /stats.
	similarQueries   atomic.Int64
	averagesQueries  atomic.Int64
	candidateQueries atomic.Int64
	resolverFailures atomic.Int64
	startedAt        time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the pitch-event source collaborator.
func WithSource(source statcast.Source) Option {
	return func(s *Service) {
		if source != nil {
			s.source = source
		}
	}
}

// WithResolver sets the name-resolver collaborator.
func WithResolver(resolver statcast.Resolver) Option {
	return func(s *Service) {
		if resolver != nil {
			s.resolver = resolver
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithFeatures fixes the ordered feature axes of the similarity metric.
func WithFeatures(features []model.Feature) Option {
	return func(s *Service) {
		if len(features) > 0 {
			s.features = features
		}
	}
}

// WithNormalization toggles z-score standardization of the metric.
func WithNormalization(enabled bool) Option {
	return func(s *Service) {
		s.normalize = enabled
	}
}

// WithDefaultTopN sets the top-N used when a query omits it.
func WithDefaultTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultTopN = n
		}
	}
}

// WithMaxTopN caps top-N on the query surface.
func WithMaxTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTopN = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		features:    model.SimilarityFeatures(),
		defaultTopN: 5,
		maxTopN:     50,
		startedAt:   time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}
	return s
}

// FindSimilar ranks every pitcher who threw q.PitchType in the window by
// Euclidean distance from the target's mean feature vector.
//
// A well-formed window in which nobody threw the pitch type yields an
// explicit empty result, not an error. ErrTargetNotFound means others
// threw the pitch but the target did not.
func (s *Service) FindSimilar(ctx context.Context, q SimilarityQuery) ([]model.RankedMatch, error) {
	s.similarQueries.Add(1)

	if err := s.validateWindow(q.Start, q.End); err != nil {
		return nil, err
	}
	if q.TargetID == 0 {
		return nil, fmt.Errorf("%w: missing target pitcher id", ErrInvalidQuery)
	}
	if q.PitchType == "" {
		return nil, fmt.Errorf("%w: missing pitch type", ErrInvalidQuery)
	}
	topN := q.TopN
	if topN == 0 {
		topN = s.defaultTopN
	}
	if topN < 1 || topN > s.maxTopN {
		return nil, fmt.Errorf("%w: top_n out of range [1,%d]", ErrInvalidQuery, s.maxTopN)
	}

	events, err := s.source.FetchEvents(ctx, q.Start, q.End)
	if err != nil {
		return nil, fmt.Errorf("similar target=%d pitch=%s: %w", q.TargetID, q.PitchType, err)
	}

	filtered := filterPitchType(events, q.PitchType)
	if len(filtered) == 0 {
		// Nobody threw this pitch type in the window. A legitimate
		// empty result, distinct from any error kind.
		s.logger.Info(ctx, "no pitches of requested type in window",
			logger.String("pitch_type", q.PitchType),
			logger.Int("events_in_window", len(events)),
		)
		return []model.RankedMatch{}, nil
	}

	began := time.Now()
	groups, err := aggregate.Aggregate(filtered, s.features)
	if err != nil {
		return nil, fmt.Errorf("similar target=%d pitch=%s: %w", q.TargetID, q.PitchType, err)
	}
	table := aggregate.ByPitcher(groups)
	metrics.RecordAggregation(len(table), time.Since(began))

	var rankOpts []similarity.Option
	if s.normalize {
		rankOpts = append(rankOpts, similarity.WithNormalization())
	}

	began = time.Now()
	matches, err := similarity.Rank(table, q.TargetID, s.features, topN, rankOpts...)
	if err != nil {
		metrics.RecordRankingError()
		return nil, fmt.Errorf("similar target=%d pitch=%s: %w", q.TargetID, q.PitchType, err)
	}
	metrics.RecordRanking(len(table)-1, time.Since(began))

	s.decorateNames(ctx, matches)
	return matches, nil
}

// PitchAverages returns per-pitch-type mean vectors for one pitcher over
// the window, all nine measurements, sorted by pitch type. An empty result
// means the pitcher threw nothing in the window.
func (s *Service) PitchAverages(ctx context.Context, q AveragesQuery) ([]model.FeatureVector, error) {
	s.averagesQueries.Add(1)

	if err := s.validateWindow(q.Start, q.End); err != nil {
		return nil, err
	}
	if q.PitcherID == 0 {
		return nil, fmt.Errorf("%w: missing pitcher id", ErrInvalidQuery)
	}

	events, err := s.source.FetchPitcherEvents(ctx, q.Start, q.End, q.PitcherID)
	if err != nil {
		return nil, fmt.Errorf("averages pitcher=%d: %w", q.PitcherID, err)
	}
	if len(events) == 0 {
		return []model.FeatureVector{}, nil
	}

	began := time.Now()
	groups, err := aggregate.Aggregate(events, model.AllFeatures(), aggregate.WithPitchTypeGrouping())
	if err != nil {
		return nil, fmt.Errorf("averages pitcher=%d: %w", q.PitcherID, err)
	}
	metrics.RecordAggregation(len(groups), time.Since(began))

	vectors := make([]model.FeatureVector, 0, len(groups))
	for _, vec := range groups {
		vectors = append(vectors, vec)
	}
	sort.Slice(vectors, func(i, j int) bool {
		return vectors[i].PitchType < vectors[j].PitchType
	})
	return vectors, nil
}

// Candidates returns the distinct pitcher ids that threw q.PitchType in
// the window, sorted ascending. Empty means nobody did.
func (s *Service) Candidates(ctx context.Context, q CandidatesQuery) ([]int64, error) {
	s.candidateQueries.Add(1)

	if err := s.validateWindow(q.Start, q.End); err != nil {
		return nil, err
	}
	if q.PitchType == "" {
		return nil, fmt.Errorf("%w: missing pitch type", ErrInvalidQuery)
	}

	events, err := s.source.FetchEvents(ctx, q.Start, q.End)
	if err != nil {
		return nil, fmt.Errorf("candidates pitch=%s: %w", q.PitchType, err)
	}

	seen := make(map[int64]struct{})
	for _, e := range events {
		if e.PitchType == q.PitchType {
			seen[e.PitcherID] = struct{}{}
		}
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	s.logger.Info(ctx, "candidates listed",
		logger.String("pitch_type", q.PitchType),
		logger.Int("count", len(ids)),
	)
	return ids, nil
}

// decorateNames attaches display names to matches. Resolver failure is
// decoration loss, not query failure: the ranked ids still go back to the
// caller, and the failure is logged and counted rather than swallowed.
func (s *Service) decorateNames(ctx context.Context, matches []model.RankedMatch) {
	if s.resolver == nil || len(matches) == 0 {
		return
	}
	ids := make([]int64, len(matches))
	for i, m := range matches {
		ids[i] = m.PitcherID
	}
	names, err := s.resolver.ResolveNames(ctx, ids)
	if err != nil {
		s.resolverFailures.Add(1)
		metrics.RecordNameResolutionError()
		s.logger.Warn(ctx, "name resolution failed; returning ids without names",
			logger.Error(err),
		)
		return
	}
	resolved := 0
	for i := range matches {
		if name, ok := names[matches[i].PitcherID]; ok {
			matches[i].Name = name
			resolved++
		}
	}
	metrics.RecordNamesResolved(resolved)
}

func (s *Service) validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: missing date window", ErrInvalidQuery)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date before start date", ErrInvalidQuery)
	}
	return nil
}

// IsNotFound reports whether err is the ranker's missing-target condition.
// The HTTP layer uses it to translate to 404.
func IsNotFound(err error) bool {
	return errors.Is(err, similarity.ErrTargetNotFound)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	features := make([]string, len(s.features))
	for i, f := range s.features {
		features[i] = string(f)
	}
	return map[string]interface{}{
		"uptime_sec":        int(time.Since(s.startedAt).Seconds()),
		"similar_queries":   s.similarQueries.Load(),
		"averages_queries":  s.averagesQueries.Load(),
		"candidate_queries": s.candidateQueries.Load(),
		"resolver_failures": s.resolverFailures.Load(),
		"features":          features,
		"normalize":         s.normalize,
		"default_top_n":     s.defaultTopN,
		"max_top_n":         s.maxTopN,
	}
}

func filterPitchType(events []model.PitchEvent, pitchType string) []model.PitchEvent {
	filtered := make([]model.PitchEvent, 0, len(events))
	for _, e := range events {
		if e.PitchType == pitchType {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
