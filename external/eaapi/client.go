// Package eaapi talks to the EA Pro Clubs stats API. The API is
// unauthenticated but flaky and aggressively rate limited, so every
// call goes through a circuit breaker, request deduplication and a
// short TTL cache.
package eaapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/SpencerPresley/ea-woc-league/internal/domain/match"
	"github.com/SpencerPresley/ea-woc-league/internal/platform/cache"
	"github.com/SpencerPresley/ea-woc-league/internal/platform/logging"
	"github.com/SpencerPresley/ea-woc-league/internal/platform/resilience"
	"github.com/SpencerPresley/ea-woc-league/internal/usecase"
)

const (
	defaultBaseURL   = "https://proclubs.ea.com/api/nhl"
	defaultUserAgent = "Mozilla/5.0"

	maxResponseBytes = 6 << 20
)

var errTransient = crerr.New("ea api transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
	Platform   string
	MatchType  string
	Timeout    time.Duration
	MaxRetries int

	Logger         *logging.Logger
	Cache          *cache.Store
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	platform   match.Platform
	matchType  match.MatchType
	maxRetries int

	logger         *logging.Logger
	store          *cache.Store
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

var _ usecase.MatchSource = (*Client)(nil)

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	platform, ok := match.ParsePlatform(cfg.Platform)
	if !ok {
		return nil, crerr.Newf("eaapi: unknown platform %q", cfg.Platform)
	}
	matchType, ok := match.ParseMatchType(cfg.MatchType)
	if !ok {
		return nil, crerr.Newf("eaapi: unknown match type %q", cfg.MatchType)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		userAgent:      userAgent,
		platform:       platform,
		matchType:      matchType,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		store:          cfg.Cache,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}, nil
}

// ClubMatches fetches the recent matches for one club as raw payloads,
// exactly as the API shapes them. Validation happens downstream.
func (c *Client) ClubMatches(ctx context.Context, clubID int64) ([]match.RawMatch, error) {
	if clubID <= 0 {
		return nil, crerr.Newf("eaapi: club id must be greater than zero, got %d", clubID)
	}

	query := url.Values{}
	query.Set("clubIds", strconv.FormatInt(clubID, 10))
	query.Set("platform", string(c.platform))
	query.Set("matchType", string(c.matchType))

	raw, err := c.doJSON(ctx, "/clubs/matches", query)
	if err != nil {
		return nil, err
	}

	var payloads []match.RawMatch
	if err := sonic.Unmarshal(raw, &payloads); err != nil {
		return nil, crerr.Wrapf(err, "decode club matches club_id=%d", clubID)
	}
	return payloads, nil
}

// ClubsMatches fetches several clubs concurrently, preserving the order
// of clubIDs in the flattened result. The first failure cancels the
// remaining fetches.
func (c *Client) ClubsMatches(ctx context.Context, clubIDs []int64) ([]match.RawMatch, error) {
	results := make([][]match.RawMatch, len(clubIDs))

	p := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(4)
	for i, clubID := range clubIDs {
		i, clubID := i, clubID
		p.Go(func(ctx context.Context) error {
			raws, err := c.ClubMatches(ctx, clubID)
			if err != nil {
				return err
			}
			results[i] = raws
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	out := make([]match.RawMatch, 0, len(clubIDs)*8)
	for _, raws := range results {
		out = append(out, raws...)
	}
	return out, nil
}

// ClubInfo is one row from the club search endpoint.
type ClubInfo struct {
	ClubID   int64  `json:"clubId"`
	Name     string `json:"name"`
	RegionID int    `json:"regionId"`
	TeamID   int    `json:"teamId"`
}

// SearchClubs looks clubs up by display name on the configured
// platform.
func (c *Client) SearchClubs(ctx context.Context, name string) ([]ClubInfo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, crerr.New("eaapi: club name is required")
	}

	query := url.Values{}
	query.Set("clubName", name)
	query.Set("platform", string(c.platform))

	raw, err := c.doJSON(ctx, "/clubs/search", query)
	if err != nil {
		return nil, err
	}

	var out []ClubInfo
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return nil, crerr.Wrapf(err, "decode club search %q", name)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values) ([]byte, error) {
	key := requestKey(path, query)
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	// Breaker admission happens inside the loader so cache hits never
	// consume a probe slot; every Allow is paired with exactly one
	// RecordSuccess or RecordFailure in the same call.
	load := func(ctx context.Context) (any, error) {
		if c.circuitEnabled {
			if err := c.breaker.Allow(); err != nil {
				c.logger.WarnContext(ctx, "ea api circuit breaker rejected request", "state", c.breaker.State())
				return nil, crerr.Wrap(usecase.ErrDependencyUnavailable, "ea api is temporarily unavailable")
			}
		}
		out, err, _ := c.flight.Do(key, func() (any, error) {
			return c.executeRequest(ctx, fullURL)
		})
		if c.circuitEnabled {
			if err != nil && crerr.Is(err, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return out, err
	}

	var out any
	var err error
	if c.store != nil {
		out, err = c.store.GetOrLoad(ctx, key, load)
	} else {
		out, err = load(ctx)
	}
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, crerr.Newf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errTransient, "send request: %v", err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errTransient, "ea api status=%d", resp.StatusCode)
			default:
				return nil, crerr.Newf("ea api status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("ea api request failed")
	}
	c.logger.WarnContext(ctx, "ea api request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// readBody copies the response through a pooled buffer so retry loops
// do not churn large allocations.
func readBody(r io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, io.LimitReader(r, maxResponseBytes)); err != nil {
		return nil, err
	}

	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

func requestKey(path string, query url.Values) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString(path)
	buf.WriteString("?")
	buf.WriteString(query.Encode())
	return buf.String()
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
