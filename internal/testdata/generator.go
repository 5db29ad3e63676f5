// Package testdata generates synthetic pitch events for tests and local
// load runs, with value ranges that resemble real Statcast measurements.
package testdata

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/okian/mound/internal/domain/model"
)

// Measurement ranges (roughly four-seam fastball territory).
const (
	speedMin     = 88.0
	speedRange   = 14.0
	spinMin      = 1800.0
	spinRange    = 800.0
	releaseXMin  = -3.5
	releaseXSpan = 7.0
	releaseZMin  = 4.5
	releaseZSpan = 2.5
	extensionMin = 5.5
	extensionSpn = 2.0
	breakMin     = -1.5
	breakSpan    = 3.0
	plateXMin    = -1.5
	plateXSpan   = 3.0
	plateZMin    = 0.5
	plateZSpan   = 3.5
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed makes the generator deterministic.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic data for tests
	}
}

// WithMissingRate sets the probability that any single measurement is
// absent from a generated pitch, modelling sensor dropouts.
func WithMissingRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate < 1 {
			g.missingRate = rate
		}
	}
}

// Generator produces synthetic pitch events.
type Generator struct {
	rng         *rand.Rand
	missingRate float64
	gamePK      int64
	pitchSeq    int
}

// NewGenerator creates a generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // synthetic data only
		gamePK: 700_000,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Pitches generates n pitches of pitchType for one pitcher. Each pitch
// gets a unique (game, at-bat, pitch number) identity.
func (g *Generator) Pitches(pitcherID int64, pitchType string, n int) []model.PitchEvent {
	events := make([]model.PitchEvent, 0, n)
	for i := 0; i < n; i++ {
		e := model.NewPitchEvent(pitcherID, pitchType)
		g.pitchSeq++
		e.GamePK = g.gamePK
		e.AtBat = g.pitchSeq / 6
		e.PitchNumber = g.pitchSeq % 6
		e.GameDate = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, g.pitchSeq/300)

		g.set(&e, model.ReleaseSpeed, speedMin, speedRange)
		g.set(&e, model.ReleaseSpinRate, spinMin, spinRange)
		g.set(&e, model.ReleasePosX, releaseXMin, releaseXSpan)
		g.set(&e, model.ReleasePosZ, releaseZMin, releaseZSpan)
		g.set(&e, model.ReleaseExtension, extensionMin, extensionSpn)
		g.set(&e, model.BreakX, breakMin, breakSpan)
		g.set(&e, model.BreakZ, breakMin, breakSpan)
		g.set(&e, model.PlateX, plateXMin, plateXSpan)
		g.set(&e, model.PlateZ, plateZMin, plateZSpan)

		events = append(events, e)
	}
	return events
}

// League generates pitchesEach pitches of pitchType for numPitchers
// pitchers with sequential ids starting at firstID.
func (g *Generator) League(firstID int64, numPitchers, pitchesEach int, pitchType string) []model.PitchEvent {
	var events []model.PitchEvent
	for i := 0; i < numPitchers; i++ {
		events = append(events, g.Pitches(firstID+int64(i), pitchType, pitchesEach)...)
	}
	return events
}

func (g *Generator) set(e *model.PitchEvent, f model.Feature, min, span float64) {
	if g.missingRate > 0 && g.rng.Float64() < g.missingRate {
		return
	}
	e.Set(f, min+g.rng.Float64()*span)
}

// CSV renders events as a Savant-style CSV export, for tests that exercise
// the HTTP source end to end.
func CSV(events []model.PitchEvent) string {
	var b strings.Builder
	b.WriteString("pitch_type,game_date,release_speed,release_pos_x,release_pos_z,pitcher,release_spin_rate,release_extension,pfx_x,pfx_z,plate_x,plate_z,game_pk,at_bat_number,pitch_number\n")
	cell := func(e model.PitchEvent, f model.Feature) string {
		v, ok := e.Value(f)
		if !ok {
			return ""
		}
		return fmt.Sprintf("%.4f", v)
	}
	for _, e := range events {
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%d,%s,%s,%s,%s,%s,%s,%d,%d,%d\n",
			e.PitchType,
			e.GameDate.Format("2006-01-02"),
			cell(e, model.ReleaseSpeed),
			cell(e, model.ReleasePosX),
			cell(e, model.ReleasePosZ),
			e.PitcherID,
			cell(e, model.ReleaseSpinRate),
			cell(e, model.ReleaseExtension),
			cell(e, model.BreakX),
			cell(e, model.BreakZ),
			cell(e, model.PlateX),
			cell(e, model.PlateZ),
			e.GamePK,
			e.AtBat,
			e.PitchNumber,
		)
	}
	return b.String()
}
