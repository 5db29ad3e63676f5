package model_test

import (
	"testing"

	"github.com/okian/mound/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPitchEvent(t *testing.T) {
	Convey("Given a pitch event", t, func() {
		e := model.NewPitchEvent(543037, "FF")
		e.Set(model.ReleaseSpeed, 96.7)

		Convey("Then present measurements read back", func() {
			v, ok := e.Value(model.ReleaseSpeed)
			So(ok, ShouldBeTrue)
			So(v, ShouldAlmostEqual, 96.7)
		})

		Convey("Then absent measurements are absent, not zero", func() {
			_, ok := e.Value(model.ReleaseSpinRate)
			So(ok, ShouldBeFalse)
		})

		Convey("Then the dedupe key mirrors the identity fields", func() {
			e.GamePK = 717465
			e.AtBat = 12
			e.PitchNumber = 3
			So(e.DedupeKey(), ShouldResemble, model.PitchKey{GamePK: 717465, AtBat: 12, PitchNumber: 3})
		})
	})
}

func TestFeatureVector(t *testing.T) {
	Convey("Given a feature vector", t, func() {
		v := model.FeatureVector{
			PitcherID: 543037,
			Means:     map[model.Feature]float64{model.ReleaseSpeed: 95.1},
			Counts:    map[model.Feature]int{model.ReleaseSpeed: 120},
		}

		Convey("Then Has reports completeness over a feature list", func() {
			So(v.Has(model.ReleaseSpeed), ShouldBeTrue)
			So(v.Has(model.ReleaseSpeed, model.ReleaseSpinRate), ShouldBeFalse)
		})
	})
}

func TestFeatureSets(t *testing.T) {
	Convey("Given the canonical feature sets", t, func() {
		Convey("Then the similarity set is a subset of all features", func() {
			all := make(map[model.Feature]struct{})
			for _, f := range model.AllFeatures() {
				all[f] = struct{}{}
			}
			for _, f := range model.SimilarityFeatures() {
				So(all, ShouldContainKey, f)
			}
		})

		Convey("Then the similarity set has the six historical axes", func() {
			So(model.SimilarityFeatures(), ShouldHaveLength, 6)
		})
	})
}
