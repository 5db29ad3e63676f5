package config_test

import (
	"testing"

	"github.com/okian/mound/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given a fresh Config", t, func() {
		cfg := config.New()

		Convey("Then every default is usable as-is", func() {
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldNotBeEmpty)
			So(cfg.SavantBaseURL, ShouldNotBeEmpty)
			So(cfg.StatsAPIBaseURL, ShouldNotBeEmpty)
			So(cfg.FetchTimeoutSec, ShouldBeGreaterThan, 0)
			So(cfg.FetchPageSpanDays, ShouldBeGreaterThan, 0)
			So(cfg.DedupeSize, ShouldBeGreaterThan, 0)
			So(cfg.DefaultTopN, ShouldBeGreaterThan, 0)
			So(cfg.MaxTopN, ShouldBeGreaterThanOrEqualTo, cfg.DefaultTopN)
		})

		Convey("Then the feature list defaults to empty (built-in axes)", func() {
			So(cfg.SimilarityFeatures, ShouldBeEmpty)
		})
	})
}
