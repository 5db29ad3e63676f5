// Command similar runs one find-similar query from the terminal and prints
// the ranked matches. It is a thin caller around the same service the HTTP
// surface uses.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/okian/mound/internal/adapters/statcast"
	app "github.com/okian/mound/internal/app"
	"github.com/okian/mound/internal/config"
	"github.com/okian/mound/internal/domain/model"
	"github.com/okian/mound/pkg/logger"
)

const dateLayout = "2006-01-02"

func main() {
	target := flag.Int64("target", 0, "target pitcher MLBAM id (required)")
	pitchType := flag.String("pitch-type", "FF", "pitch type code, e.g. FF, SL, CU")
	start := flag.String("start", "", "window start, YYYY-MM-DD (required)")
	end := flag.String("end", "", "window end, YYYY-MM-DD (required)")
	topN := flag.Int("top-n", 0, "matches to return (0 = configured default)")
	flag.Parse()

	if err := run(*target, *pitchType, *start, *end, *topN); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(target int64, pitchType, start, end string, topN int) error {
	if err := logger.Init(); err != nil {
		return err
	}
	_ = logger.SetLevelString("warn") // keep CLI output clean

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if target == 0 || start == "" || end == "" {
		flag.Usage()
		return fmt.Errorf("target, start, and end are required")
	}
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return fmt.Errorf("invalid end: %w", err)
	}

	svc := app.New(
		app.WithSource(statcast.NewHTTPSource(
			statcast.WithBaseURL(cfg.SavantBaseURL),
			statcast.WithTimeout(time.Duration(cfg.FetchTimeoutSec)*time.Second),
			statcast.WithPageSpan(cfg.FetchPageSpanDays),
			statcast.WithDedupeSize(cfg.DedupeSize),
		)),
		app.WithResolver(statcast.NewHTTPResolver(
			statcast.WithResolverBaseURL(cfg.StatsAPIBaseURL),
		)),
		app.WithFeatures(featureList(cfg.SimilarityFeatures)),
		app.WithNormalization(cfg.Normalize),
		app.WithDefaultTopN(cfg.DefaultTopN),
		app.WithMaxTopN(cfg.MaxTopN),
	)

	matches, err := svc.FindSimilar(ctx, app.SimilarityQuery{
		Start:     startDate,
		End:       endDate,
		TargetID:  target,
		PitchType: pitchType,
		TopN:      topN,
	})
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Printf("no pitchers threw %s between %s and %s\n", pitchType, start, end)
		return nil
	}

	fmt.Printf("%-4s %-10s %-24s %s\n", "rank", "pitcher", "name", "distance")
	for _, m := range matches {
		name := m.Name
		if name == "" {
			name = "-"
		}
		fmt.Printf("%-4d %-10d %-24s %.3f\n", m.Rank, m.PitcherID, name, m.Distance)
	}
	return nil
}

// featureList converts configured feature names; empty input keeps the
// built-in six-feature default.
func featureList(names []string) []model.Feature {
	features := make([]model.Feature, len(names))
	for i, name := range names {
		features[i] = model.Feature(name)
	}
	return features
}
