package statcast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/mound/pkg/logger"
)

// Default resolver configuration constants.
const (
	defaultStatsAPIBaseURL = "https://statsapi.mlb.com"
	peoplePath             = "/api/v1/people"
	defaultResolverTimeout = 15 * time.Second
	maxIDsPerRequest       = 100
)

// ResolverOption applies a configuration option to the HTTPResolver.
type ResolverOption func(*HTTPResolver)

// WithResolverBaseURL overrides the Stats API base URL (used by tests).
func WithResolverBaseURL(base string) ResolverOption {
	return func(r *HTTPResolver) {
		if base != "" {
			r.baseURL = base
		}
	}
}

// WithResolverHTTPClient overrides the underlying HTTP client.
func WithResolverHTTPClient(client *http.Client) ResolverOption {
	return func(r *HTTPResolver) {
		if client != nil {
			r.client = client
		}
	}
}

// WithResolverTimeout sets the per-request timeout.
func WithResolverTimeout(timeout time.Duration) ResolverOption {
	return func(r *HTTPResolver) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithResolverLogger sets a custom logger for the resolver.
func WithResolverLogger(log logger.Logger) ResolverOption {
	return func(r *HTTPResolver) {
		if log != nil {
			r.logger = log
		}
	}
}

// HTTPResolver implements Resolver against the MLB Stats API people
// endpoint. All ids go out in batched requests; ids the API does not know
// are simply missing from the result map.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  logger.Logger
}

// NewHTTPResolver creates a Stats-API-backed resolver with configuration options.
func NewHTTPResolver(opts ...ResolverOption) *HTTPResolver {
	r := &HTTPResolver{
		baseURL: defaultStatsAPIBaseURL,
		timeout: defaultResolverTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = &http.Client{Timeout: r.timeout}
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("resolver")
	}
	return r
}

type peopleResponse struct {
	People []struct {
		ID       int64  `json:"id"`
		FullName string `json:"fullName"`
	} `json:"people"`
}

// ResolveNames maps pitcher ids to display names.
func (r *HTTPResolver) ResolveNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	for batchStart := 0; batchStart < len(ids); batchStart += maxIDsPerRequest {
		batchEnd := batchStart + maxIDsPerRequest
		if batchEnd > len(ids) {
			batchEnd = len(ids)
		}
		if err := r.resolveBatch(ctx, ids[batchStart:batchEnd], names); err != nil {
			op := fmt.Sprintf("resolve names for %d ids", len(ids))
			return nil, wrapUpstream(op, err)
		}
	}

	r.logger.Debug(ctx, "resolved names",
		logger.Int("requested", len(ids)),
		logger.Int("resolved", len(names)),
	)
	return names, nil
}

func (r *HTTPResolver) resolveBatch(ctx context.Context, ids []int64, names map[int64]string) error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	q := url.Values{}
	q.Set("personIds", strings.Join(parts, ","))
	q.Set("fields", "people,id,fullName")

	reqURL := r.baseURL + peoplePath + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body peopleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode people response: %w", err)
	}
	for _, p := range body.People {
		if p.FullName != "" {
			names[p.ID] = p.FullName
		}
	}
	return nil
}
