package app

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/pucktrack/nhl-ingest/external/nhlapi"
	"github.com/pucktrack/nhl-ingest/internal/config"
	"github.com/pucktrack/nhl-ingest/internal/infrastructure/repository/postgres"
	"github.com/pucktrack/nhl-ingest/internal/ingest"
	"github.com/pucktrack/nhl-ingest/internal/platform/logging"
	"github.com/pucktrack/nhl-ingest/internal/platform/resilience"
)

// OpenDB connects to Postgres with OpenTelemetry instrumentation on every
// query.
func OpenDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxWorkers * 2)
	db.SetMaxIdleConns(cfg.MaxWorkers)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// NewRunner builds the full ingestion pipeline: NHL API feed, Postgres store
// and the run plan derived from configuration.
func NewRunner(cfg config.Config, db *sqlx.DB, logger *logging.Logger) *ingest.Runner {
	feed := nhlapi.NewClient(nhlapi.ClientConfig{
		BaseURL:    cfg.NHLBaseURL,
		Timeout:    cfg.NHLTimeout,
		MaxRetries: cfg.NHLMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NHLCircuitEnabled,
			FailureThreshold: cfg.NHLCircuitFailureCount,
			OpenTimeout:      cfg.NHLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NHLCircuitHalfOpenMaxReq,
		},
	})

	store := postgres.NewStore(db)

	return ingest.NewRunner(feed, store, BuildPlan(cfg), cfg.MaxWorkers, logger)
}

// BuildPlan translates the env-level batch selections into a run plan.
func BuildPlan(cfg config.Config) ingest.Plan {
	return ingest.Plan{
		Season:        cfg.Season,
		Teams:         ingest.Selector{All: cfg.TeamsAll, IDs: cfg.TeamIDs},
		Rosters:       ingest.Selector{All: cfg.RostersAll, IDs: cfg.RosterTeamIDs},
		Players:       ingest.Selector{IDs: cfg.ExtraPlayerIDs},
		SeasonStats:   ingest.Selector{All: cfg.StatsAll, IDs: cfg.StatsPlayerIDs},
		DraftYear:     cfg.DraftYear,
		JuniorLeagues: cfg.JuniorLeagues,
	}
}
