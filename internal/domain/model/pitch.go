// Package model contains domain models passed between layers.
package model

import "time"

// Feature names one numeric pitch measurement, e.g. "release_speed".
// Values use the upstream provider's column names so that feature lists in
// configuration map directly onto fetched data.
type Feature string

// Canonical features carried by every PitchEvent.
const (
	ReleaseSpeed     Feature = "release_speed"
	ReleaseSpinRate  Feature = "release_spin_rate"
	ReleasePosX      Feature = "release_pos_x"
	ReleasePosZ      Feature = "release_pos_z"
	ReleaseExtension Feature = "release_extension"
	BreakX           Feature = "pfx_x"
	BreakZ           Feature = "pfx_z"
	PlateX           Feature = "plate_x"
	PlateZ           Feature = "plate_z"
)

// AllFeatures lists every measurement in report order.
func AllFeatures() []Feature {
	return []Feature{
		ReleaseSpeed, ReleaseSpinRate, ReleasePosX, ReleasePosZ,
		ReleaseExtension, BreakX, BreakZ, PlateX, PlateZ,
	}
}

// SimilarityFeatures lists the six measurements used for similarity ranking
// by default. Units are raw (mph, rpm, feet); see similarity package docs
// for the implications.
func SimilarityFeatures() []Feature {
	return []Feature{
		ReleaseSpeed, ReleaseSpinRate, ReleasePosX, ReleasePosZ,
		BreakX, BreakZ,
	}
}

// PitchEvent represents a single observed pitch. Fields mirror the Statcast
// CSV columns for one row. A measurement can be absent on any given row
// (sensor dropouts are common for spin and extension), so values live in a
// sparse map keyed by Feature rather than in dedicated float fields.
type PitchEvent struct {
	PitcherID int64  // MLBAM pitcher id
	PitchType string // short code, e.g. "FF", "SL"

	// Identity fields used only for duplicate suppression across
	// overlapping fetch pages. Not part of the feature space.
	GamePK      int64
	AtBat       int
	PitchNumber int

	GameDate time.Time

	values map[Feature]float64
}

// NewPitchEvent constructs an event with no measurements set.
func NewPitchEvent(pitcherID int64, pitchType string) PitchEvent {
	return PitchEvent{
		PitcherID: pitcherID,
		PitchType: pitchType,
		values:    make(map[Feature]float64),
	}
}

// Set records a measurement value for f.
func (e *PitchEvent) Set(f Feature, v float64) {
	if e.values == nil {
		e.values = make(map[Feature]float64)
	}
	e.values[f] = v
}

// Value returns the measurement for f and whether it is present.
// Absent measurements are never reported as zero.
func (e PitchEvent) Value(f Feature) (float64, bool) {
	v, ok := e.values[f]
	return v, ok
}

// DedupeKey identifies the pitch across fetch pages.
func (e PitchEvent) DedupeKey() PitchKey {
	return PitchKey{GamePK: e.GamePK, AtBat: e.AtBat, PitchNumber: e.PitchNumber}
}

// PitchKey uniquely identifies one pitch within the provider's data.
type PitchKey struct {
	GamePK      int64
	AtBat       int
	PitchNumber int
}

// FeatureVector holds per-feature arithmetic means for one pitcher
// (optionally scoped to one pitch type). A feature appears in Means only
// when at least one event contributed a present value for it; Counts
// records how many did. Missing features are represented by absence, never
// by a zero mean.
type FeatureVector struct {
	PitcherID int64               `json:"pitcher_id"`
	PitchType string              `json:"pitch_type,omitempty"` // empty when grouping by pitcher only
	Means     map[Feature]float64 `json:"means"`
	Counts    map[Feature]int     `json:"counts"`
}

// Mean returns the averaged value for f and whether any event contributed.
func (v FeatureVector) Mean(f Feature) (float64, bool) {
	m, ok := v.Means[f]
	return m, ok
}

// Has reports whether the vector carries every listed feature.
func (v FeatureVector) Has(features ...Feature) bool {
	for _, f := range features {
		if _, ok := v.Means[f]; !ok {
			return false
		}
	}
	return true
}

// RankedMatch is one row of a similarity ranking: a candidate pitcher and
// its Euclidean distance from the target. Name is best-effort decoration
// from the name resolver and may be empty.
type RankedMatch struct {
	PitcherID int64   `json:"pitcher_id"`
	Name      string  `json:"name,omitempty"`
	Distance  float64 `json:"distance"`
	Rank      int     `json:"rank"` // 0-based position after sorting
}
