package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/mound/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no overrides", t, func() {
		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9090")
				So(cfg.DefaultTopN, ShouldEqual, 5)
				So(cfg.MaxTopN, ShouldEqual, 50)
				So(cfg.FetchPageSpanDays, ShouldEqual, 5)
				So(cfg.Normalize, ShouldBeFalse)
				So(cfg.SavantBaseURL, ShouldContainSubstring, "baseballsavant")
			})
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("MOUND_ADDR", ":7070")
		t.Setenv("MOUND_DEFAULT_TOP_N", "10")
		t.Setenv("MOUND_NORMALIZE", "true")

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env values win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.DefaultTopN, ShouldEqual, 10)
				So(cfg.Normalize, ShouldBeTrue)
			})
		})
	})
}

func TestLoadConfigFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		path := filepath.Join(t.TempDir(), "mound.yaml")
		yaml := "addr: \":6060\"\nsimilarity_features:\n  - release_speed\n  - release_spin_rate\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		t.Setenv("MOUND_CONFIG", path)

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.SimilarityFeatures, ShouldResemble, []string{"release_speed", "release_spin_rate"})
			})
		})
	})
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	Convey("Given a config file and a conflicting env var", t, func() {
		path := filepath.Join(t.TempDir(), "mound.yaml")
		So(os.WriteFile(path, []byte("addr: \":6060\"\n"), 0o600), ShouldBeNil)
		t.Setenv("MOUND_CONFIG", path)
		t.Setenv("MOUND_ADDR", ":5050")

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env wins", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":5050")
			})
		})
	})
}

func TestLoadInvalidDefaultTopN(t *testing.T) {
	Convey("Given default_top_n forced to zero", t, func() {
		t.Setenv("MOUND_DEFAULT_TOP_N", "0")

		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then loading fails with ErrInvalidConfig", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}

func TestLoadInvalidMaxTopN(t *testing.T) {
	Convey("Given max_top_n below default_top_n", t, func() {
		t.Setenv("MOUND_MAX_TOP_N", "2")

		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then loading fails with ErrInvalidConfig", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}

func TestLoadMissingConfigFile(t *testing.T) {
	Convey("Given MOUND_CONFIG pointing nowhere", t, func() {
		t.Setenv("MOUND_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

		Convey("When loading", func() {
			_, err := config.Load(context.Background())

			Convey("Then loading fails with ErrLoadConfig", func() {
				So(err, ShouldWrap, config.ErrLoadConfig)
			})
		})
	})
}
