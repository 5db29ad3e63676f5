package testdata_test

import (
	"strings"
	"testing"

	"github.com/okian/mound/internal/domain/model"
	"github.com/okian/mound/internal/testdata"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPitches(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		g := testdata.NewGenerator(testdata.WithSeed(7))

		Convey("When generating pitches", func() {
			events := g.Pitches(543037, "FF", 25)

			Convey("Then every event belongs to the pitcher and type", func() {
				So(events, ShouldHaveLength, 25)
				for _, e := range events {
					So(e.PitcherID, ShouldEqual, 543037)
					So(e.PitchType, ShouldEqual, "FF")
				}
			})

			Convey("Then every event has a distinct identity", func() {
				seen := make(map[model.PitchKey]struct{})
				for _, e := range events {
					seen[e.DedupeKey()] = struct{}{}
				}
				So(seen, ShouldHaveLength, 25)
			})

			Convey("Then measurements stay in plausible ranges", func() {
				for _, e := range events {
					speed, ok := e.Value(model.ReleaseSpeed)
					So(ok, ShouldBeTrue)
					So(speed, ShouldBeBetween, 80.0, 110.0)
					spin, ok := e.Value(model.ReleaseSpinRate)
					So(ok, ShouldBeTrue)
					So(spin, ShouldBeBetween, 1500.0, 3000.0)
				}
			})
		})

		Convey("When generating twice from the same seed", func() {
			a := testdata.NewGenerator(testdata.WithSeed(42)).Pitches(1, "SL", 10)
			b := testdata.NewGenerator(testdata.WithSeed(42)).Pitches(1, "SL", 10)

			Convey("Then the runs are identical", func() {
				So(a, ShouldResemble, b)
			})
		})
	})

	Convey("Given a generator with a missing rate", t, func() {
		g := testdata.NewGenerator(testdata.WithSeed(7), testdata.WithMissingRate(0.5))

		Convey("When generating many pitches", func() {
			events := g.Pitches(1, "FF", 200)

			Convey("Then some measurements are absent, not zero", func() {
				missing := 0
				for _, e := range events {
					for _, f := range model.AllFeatures() {
						if _, ok := e.Value(f); !ok {
							missing++
						}
					}
				}
				So(missing, ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestLeague(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		g := testdata.NewGenerator(testdata.WithSeed(7))

		Convey("When generating a league", func() {
			events := g.League(100, 8, 30, "FF")

			Convey("Then every pitcher gets the requested volume", func() {
				So(events, ShouldHaveLength, 240)
				counts := make(map[int64]int)
				for _, e := range events {
					counts[e.PitcherID]++
				}
				So(counts, ShouldHaveLength, 8)
				for id := int64(100); id < 108; id++ {
					So(counts[id], ShouldEqual, 30)
				}
			})
		})
	})
}

func TestCSV(t *testing.T) {
	Convey("Given generated events", t, func() {
		g := testdata.NewGenerator(testdata.WithSeed(7))
		events := g.Pitches(543037, "FF", 3)

		Convey("When rendering as CSV", func() {
			out := testdata.CSV(events)
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

			Convey("Then the header names the Savant columns", func() {
				So(lines[0], ShouldContainSubstring, "pitch_type")
				So(lines[0], ShouldContainSubstring, "release_spin_rate")
				So(lines[0], ShouldContainSubstring, "pitch_number")
			})

			Convey("Then one row per event follows", func() {
				So(lines, ShouldHaveLength, 4)
				So(lines[1], ShouldContainSubstring, "543037")
				So(lines[1], ShouldContainSubstring, "FF")
			})
		})
	})
}
