package statcast

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/mound/internal/domain/dedupe"
	"github.com/okian/mound/internal/domain/model"
	"github.com/okian/mound/pkg/logger"
	"github.com/okian/mound/pkg/metrics"
)

// Default source configuration constants.
const (
	defaultBaseURL      = "https://baseballsavant.mlb.com"
	defaultTimeout      = 60 * time.Second
	defaultPageSpanDays = 5
	defaultDedupeSize   = 200_000
	dateLayout          = "2006-01-02"
	searchPath          = "/statcast_search/csv"
)

// SourceOption applies a configuration option to the HTTPSource.
type SourceOption func(*HTTPSource)

// WithBaseURL overrides the Savant base URL (used by tests).
func WithBaseURL(base string) SourceOption {
	return func(s *HTTPSource) {
		if base != "" {
			s.baseURL = base
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) SourceOption {
	return func(s *HTTPSource) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithPageSpan sets how many days each CSV request covers. Savant truncates
// very large exports, so wide windows are fetched in spans.
func WithPageSpan(days int) SourceOption {
	return func(s *HTTPSource) {
		if days > 0 {
			s.pageSpanDays = days
		}
	}
}

// WithDedupeSize bounds the per-fetch duplicate-suppression memory.
func WithDedupeSize(size int) SourceOption {
	return func(s *HTTPSource) {
		s.dedupeSize = size
	}
}

// WithSourceLogger sets a custom logger for the source.
func WithSourceLogger(log logger.Logger) SourceOption {
	return func(s *HTTPSource) {
		if log != nil {
			s.logger = log
		}
	}
}

// HTTPSource implements Source against the Savant CSV search export.
type HTTPSource struct {
	baseURL      string
	client       *http.Client
	timeout      time.Duration
	pageSpanDays int
	dedupeSize   int
	logger       logger.Logger
}

// NewHTTPSource creates a Savant-backed source with configuration options.
func NewHTTPSource(opts ...SourceOption) *HTTPSource {
	s := &HTTPSource{
		baseURL:      defaultBaseURL,
		timeout:      defaultTimeout,
		pageSpanDays: defaultPageSpanDays,
		dedupeSize:   defaultDedupeSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("statcast")
	}
	return s
}

// FetchEvents returns every pitch thrown in [start, end].
func (s *HTTPSource) FetchEvents(ctx context.Context, start, end time.Time) ([]model.PitchEvent, error) {
	return s.fetch(ctx, start, end, 0)
}

// FetchPitcherEvents returns every pitch thrown by pitcherID in [start, end].
func (s *HTTPSource) FetchPitcherEvents(ctx context.Context, start, end time.Time, pitcherID int64) ([]model.PitchEvent, error) {
	return s.fetch(ctx, start, end, pitcherID)
}

// fetch walks the window in page spans and concatenates parsed rows.
// Duplicate rows across span boundaries are dropped via a per-call deduper;
// no dedupe state survives the call, so repeated queries never share state.
func (s *HTTPSource) fetch(ctx context.Context, start, end time.Time, pitcherID int64) ([]model.PitchEvent, error) {
	op := fmt.Sprintf("statcast fetch %s..%s", start.Format(dateLayout), end.Format(dateLayout))
	if pitcherID != 0 {
		op = fmt.Sprintf("%s pitcher=%d", op, pitcherID)
	}
	if end.Before(start) {
		return nil, wrapUpstream(op, fmt.Errorf("end date before start date"))
	}

	deduper := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	var events []model.PitchEvent

	for spanStart := start; !spanStart.After(end); spanStart = spanStart.AddDate(0, 0, s.pageSpanDays) {
		spanEnd := spanStart.AddDate(0, 0, s.pageSpanDays-1)
		if spanEnd.After(end) {
			spanEnd = end
		}

		began := time.Now()
		rows, dropped, err := s.fetchSpan(ctx, spanStart, spanEnd, pitcherID, deduper)
		if err != nil {
			metrics.RecordFetchError()
			return nil, wrapUpstream(op, err)
		}
		metrics.RecordFetch(len(rows), dropped, time.Since(began))

		s.logger.Debug(ctx, "fetched span",
			logger.String("start", spanStart.Format(dateLayout)),
			logger.String("end", spanEnd.Format(dateLayout)),
			logger.Int("rows", len(rows)),
			logger.Int("duplicates", dropped),
		)
		events = append(events, rows...)
	}

	s.logger.Info(ctx, "fetch complete",
		logger.String("start", start.Format(dateLayout)),
		logger.String("end", end.Format(dateLayout)),
		logger.Int("events", len(events)),
	)
	return events, nil
}

func (s *HTTPSource) fetchSpan(ctx context.Context, start, end time.Time, pitcherID int64, deduper dedupe.Deduper) ([]model.PitchEvent, int, error) {
	q := url.Values{}
	q.Set("all", "true")
	q.Set("type", "details")
	q.Set("player_type", "pitcher")
	q.Set("game_date_gt", start.Format(dateLayout))
	q.Set("game_date_lt", end.Format(dateLayout))
	if pitcherID != 0 {
		q.Set("pitchers_lookup[]", strconv.FormatInt(pitcherID, 10))
	}

	reqURL := s.baseURL + searchPath + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return parseCSV(ctx, resp.Body, deduper)
}

// parseCSV converts one CSV page into events. Rows without a pitcher id or
// pitch type are skipped; numeric cells that are empty or unparsable become
// absent measurements, never zeros. Returns the kept events and the count
// of duplicate rows dropped.
func parseCSV(ctx context.Context, r io.Reader, deduper dedupe.Deduper) ([]model.PitchEvent, int, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["pitcher"]; !ok {
		return nil, 0, fmt.Errorf("csv missing pitcher column")
	}
	if _, ok := col["pitch_type"]; !ok {
		return nil, 0, fmt.Errorf("csv missing pitch_type column")
	}

	cell := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var events []model.PitchEvent
	var duplicates int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read csv row: %w", err)
		}

		pitcherID, err := strconv.ParseInt(cell(record, "pitcher"), 10, 64)
		if err != nil {
			continue
		}
		pitchType := cell(record, "pitch_type")
		if pitchType == "" {
			continue
		}

		e := model.NewPitchEvent(pitcherID, pitchType)
		if gamePK, err := strconv.ParseInt(cell(record, "game_pk"), 10, 64); err == nil {
			e.GamePK = gamePK
		}
		if atBat, err := strconv.Atoi(cell(record, "at_bat_number")); err == nil {
			e.AtBat = atBat
		}
		if pitchNum, err := strconv.Atoi(cell(record, "pitch_number")); err == nil {
			e.PitchNumber = pitchNum
		}
		if d, err := time.Parse(dateLayout, cell(record, "game_date")); err == nil {
			e.GameDate = d
		}
		for _, f := range model.AllFeatures() {
			if v, err := strconv.ParseFloat(cell(record, string(f)), 64); err == nil {
				e.Set(f, v)
			}
		}

		if deduper.SeenAndRecord(ctx, e.DedupeKey()) {
			duplicates++
			continue
		}
		events = append(events, e)
	}
	return events, duplicates, nil
}
