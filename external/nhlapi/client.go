// Package nhlapi fetches raw records from the NHL Stats API. The client
// strips envelopes (copyright notice, wrapper arrays) and hands hierarchical
// records to the normalization layer untouched; it knows nothing about the
// relational schema.
package nhlapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	crerr "github.com/cockroachdb/errors"

	"github.com/pucktrack/nhl-ingest/internal/normalize"
	"github.com/pucktrack/nhl-ingest/internal/platform/logging"
	"github.com/pucktrack/nhl-ingest/internal/platform/resilience"
)

const (
	defaultBaseURL   = "https://statsapi.web.nhl.com/api/v1"
	maxResponseBytes = 8 << 20
)

var errNHLTransient = crerr.New("nhl api transient failure")

// ErrUnavailable is returned when the circuit breaker is open and the API is
// not being called at all.
var ErrUnavailable = stderrors.New("nhl api is temporarily unavailable")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type teamsEnvelope struct {
	Teams []normalize.RawRecord `json:"teams"`
}

func (c *Client) Teams(ctx context.Context) ([]normalize.RawRecord, error) {
	var envelope teamsEnvelope
	if err := c.doJSON(ctx, "/teams", &envelope); err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}
	return envelope.Teams, nil
}

type rosterEnvelope struct {
	Roster []normalize.RawRecord `json:"roster"`
}

func (c *Client) Roster(ctx context.Context, teamID int64) ([]normalize.RawRecord, error) {
	if teamID <= 0 {
		return nil, fmt.Errorf("team id must be greater than zero")
	}

	var envelope rosterEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/teams/%d/roster", teamID), &envelope); err != nil {
		return nil, fmt.Errorf("fetch roster team=%d: %w", teamID, err)
	}
	return envelope.Roster, nil
}

type peopleEnvelope struct {
	People []normalize.RawRecord `json:"people"`
}

func (c *Client) Player(ctx context.Context, playerID int64) (normalize.RawRecord, error) {
	if playerID <= 0 {
		return nil, fmt.Errorf("player id must be greater than zero")
	}

	var envelope peopleEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/people/%d", playerID), &envelope); err != nil {
		return nil, fmt.Errorf("fetch player %d: %w", playerID, err)
	}
	if len(envelope.People) == 0 {
		return nil, fmt.Errorf("player %d not in response", playerID)
	}
	return envelope.People[0], nil
}

type statsEnvelope struct {
	Stats []struct {
		Splits []normalize.RawRecord `json:"splits"`
	} `json:"stats"`
}

// SeasonSplits returns the player's full year-by-year history in feed order.
// The order is the only stint-ordering signal the feed provides, so it is
// preserved exactly.
func (c *Client) SeasonSplits(ctx context.Context, playerID int64) ([]normalize.RawRecord, error) {
	if playerID <= 0 {
		return nil, fmt.Errorf("player id must be greater than zero")
	}

	var envelope statsEnvelope
	path := fmt.Sprintf("/people/%d/stats?stats=yearByYear", playerID)
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("fetch season splits player=%d: %w", playerID, err)
	}

	var out []normalize.RawRecord
	for _, block := range envelope.Stats {
		out = append(out, block.Splits...)
	}
	return out, nil
}

type draftEnvelope struct {
	Drafts []struct {
		Rounds []struct {
			Picks []normalize.RawRecord `json:"picks"`
		} `json:"rounds"`
	} `json:"drafts"`
}

// DraftPicks flattens one draft year's rounds into a single pick list.
func (c *Client) DraftPicks(ctx context.Context, year int) ([]normalize.RawRecord, error) {
	if year <= 0 {
		return nil, fmt.Errorf("draft year must be greater than zero")
	}

	var envelope draftEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/draft/%d", year), &envelope); err != nil {
		return nil, fmt.Errorf("fetch draft year=%d: %w", year, err)
	}

	var out []normalize.RawRecord
	for _, d := range envelope.Drafts {
		for _, round := range d.Rounds {
			out = append(out, round.Picks...)
		}
	}
	return out, nil
}

type prospectsEnvelope struct {
	Prospects []normalize.RawRecord `json:"prospects"`
}

func (c *Client) Prospect(ctx context.Context, prospectID int64) (normalize.RawRecord, error) {
	if prospectID <= 0 {
		return nil, fmt.Errorf("prospect id must be greater than zero")
	}

	var envelope prospectsEnvelope
	if err := c.doJSON(ctx, fmt.Sprintf("/draft/prospects/%d", prospectID), &envelope); err != nil {
		return nil, fmt.Errorf("fetch prospect %d: %w", prospectID, err)
	}
	if len(envelope.Prospects) == 0 {
		return nil, fmt.Errorf("prospect %d not in response", prospectID)
	}
	return envelope.Prospects[0], nil
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "nhl api circuit breaker rejected request", "state", c.breaker.State())
			return ErrUnavailable
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isTransient(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode nhl api payload: %w", err)
	}
	return nil
}

// executeRequest runs one GET with exponential backoff. Only transient
// failures (network errors, 5xx, 429) are retried; a 4xx other than 429 fails
// immediately.
func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var raw []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: send request: %v", errNHLTransient, err)
		}
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		_ = resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("%w: read response body: %v", errNHLTransient, readErr)
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			raw = body
			return nil
		}
		if isRetryableStatus(resp.StatusCode) {
			return fmt.Errorf("%w: status=%d body=%s", errNHLTransient, resp.StatusCode, abbreviateBody(body))
		}
		return backoff.Permanent(fmt.Errorf("status=%d body=%s", resp.StatusCode, abbreviateBody(body)))
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(maxInt(c.maxRetries, 0))),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		c.logger.WarnContext(ctx, "nhl api request failed", "url", fullURL, "error", err)
		return nil, err
	}
	return raw, nil
}

func isTransient(err error) bool {
	return stderrors.Is(err, errNHLTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(body []byte) string {
	const max = 256
	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) > max {
		return trimmed[:max] + "..."
	}
	return trimmed
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
