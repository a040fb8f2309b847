package nhlapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pucktrack/nhl-ingest/internal/platform/logging"
	"github.com/pucktrack/nhl-ingest/internal/platform/resilience"
)

func newTestClient(t *testing.T, handler http.Handler, maxRetries int, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:        server.URL,
		Timeout:        5 * time.Second,
		MaxRetries:     maxRetries,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClient_TeamsStripsEnvelope(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/teams", r.URL.Path)
		fmt.Fprint(w, `{
			"copyright": "NHL and the NHL Shield are registered trademarks.",
			"teams": [{"id": 22, "name": "Edmonton Oilers"}, {"id": 20, "name": "Calgary Flames"}]
		}`)
	})
	c := newTestClient(t, handler, 0, resilience.CircuitBreakerConfig{})

	recs, err := c.Teams(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, int64(22), recs[0].Int64("id"))
	require.Equal(t, "Edmonton Oilers", recs[0].Str("name"))
}

func TestClient_SeasonSplitsPreservesFeedOrderAcrossBlocks(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/people/8478402/stats", r.URL.Path)
		require.Equal(t, "yearByYear", r.URL.Query().Get("stats"))
		fmt.Fprint(w, `{
			"stats": [
				{"splits": [{"season": "20142015"}, {"season": "20152016"}]},
				{"splits": [{"season": "20162017"}]}
			]
		}`)
	})
	c := newTestClient(t, handler, 0, resilience.CircuitBreakerConfig{})

	recs, err := c.SeasonSplits(context.Background(), 8478402)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, "20142015", recs[0].Str("season"))
	require.Equal(t, "20162017", recs[2].Str("season"))
}

func TestClient_DraftPicksFlattensRounds(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/draft/2015", r.URL.Path)
		fmt.Fprint(w, `{
			"drafts": [{"rounds": [
				{"picks": [{"pickOverall": 1}, {"pickOverall": 2}]},
				{"picks": [{"pickOverall": 31}]}
			]}]
		}`)
	})
	c := newTestClient(t, handler, 0, resilience.CircuitBreakerConfig{})

	picks, err := c.DraftPicks(context.Background(), 2015)
	require.NoError(t, err)
	require.Len(t, picks, 3)
	require.Equal(t, 31, picks[2].Int("pickOverall"))
}

func TestClient_PlayerEmptyPeopleIsError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"people": []}`)
	})
	c := newTestClient(t, handler, 0, resilience.CircuitBreakerConfig{})

	_, err := c.Player(context.Background(), 8478402)
	require.ErrorContains(t, err, "not in response")
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"teams": [{"id": 22}]}`)
	})
	c := newTestClient(t, handler, 2, resilience.CircuitBreakerConfig{})

	recs, err := c.Teams(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_ClientErrorFailsWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	c := newTestClient(t, handler, 3, resilience.CircuitBreakerConfig{})

	_, err := c.Teams(context.Background())
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestClient_CircuitBreakerShedsLoadWhenOpen(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	c := newTestClient(t, handler, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	ctx := context.Background()
	_, err := c.Teams(ctx)
	require.Error(t, err)
	_, err = c.Roster(ctx, 22)
	require.Error(t, err)

	// Threshold reached: the next request is rejected without touching the API.
	before := calls.Load()
	_, err = c.Player(ctx, 8478402)
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, before, calls.Load())
}
