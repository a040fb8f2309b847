package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	t.Setenv("INGEST_SEASON", "20252026")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_SeasonRequired(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("INGEST_SEASON", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when INGEST_SEASON is missing")
	}
}

func TestLoad_SeasonValidation(t *testing.T) {
	cases := []struct {
		name   string
		season string
		valid  bool
	}{
		{"well formed", "20252026", true},
		{"too short", "2025", false},
		{"not numeric", "2025abcd", false},
		{"years not consecutive", "20252027", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("INGEST_SEASON", tc.season)

			_, err := Load()
			if tc.valid && err != nil {
				t.Fatalf("load config: %v", err)
			}
			if !tc.valid && err == nil {
				t.Fatalf("expected error for season %q", tc.season)
			}
		})
	}
}

func TestLoad_SelectorParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("INGEST_SEASON", "20252026")
	t.Setenv("INGEST_TEAMS", "all")
	t.Setenv("INGEST_ROSTER_TEAMS", "1, 5, 22")
	t.Setenv("INGEST_STATS_PLAYERS", "none")
	t.Setenv("INGEST_EXTRA_PLAYERS", "8478402")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.TeamsAll {
		t.Fatalf("expected TeamsAll=true")
	}
	if cfg.RostersAll {
		t.Fatalf("expected RostersAll=false with explicit ids")
	}
	if len(cfg.RosterTeamIDs) != 3 || cfg.RosterTeamIDs[2] != 22 {
		t.Fatalf("unexpected RosterTeamIDs: %v", cfg.RosterTeamIDs)
	}
	if cfg.StatsAll || len(cfg.StatsPlayerIDs) != 0 {
		t.Fatalf("expected stats batch disabled")
	}
	if len(cfg.ExtraPlayerIDs) != 1 || cfg.ExtraPlayerIDs[0] != 8478402 {
		t.Fatalf("unexpected ExtraPlayerIDs: %v", cfg.ExtraPlayerIDs)
	}
}

func TestLoad_SelectorRejectsBadIDs(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("INGEST_SEASON", "20252026")
	t.Setenv("INGEST_TEAMS", "1,zero,3")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric team id")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("INGEST_SEASON", "20252026")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("INGEST_SEASON", "20252026")
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_NHLClientDefaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("INGEST_SEASON", "20252026")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.NHLBaseURL != "https://statsapi.web.nhl.com/api/v1" {
		t.Fatalf("unexpected NHLBaseURL: %q", cfg.NHLBaseURL)
	}
	if cfg.NHLTimeout != 20*time.Second {
		t.Fatalf("unexpected NHLTimeout: %s", cfg.NHLTimeout)
	}
	if cfg.NHLMaxRetries != 2 {
		t.Fatalf("unexpected NHLMaxRetries: %d", cfg.NHLMaxRetries)
	}
	if !cfg.NHLCircuitEnabled {
		t.Fatalf("expected NHLCircuitEnabled=true by default")
	}
	if cfg.MaxWorkers != 8 {
		t.Fatalf("unexpected MaxWorkers: %d", cfg.MaxWorkers)
	}
}

func TestLoad_DraftYearValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("INGEST_SEASON", "20252026")
	t.Setenv("INGEST_DRAFT_YEAR", "-1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative INGEST_DRAFT_YEAR")
	}
}

func TestLoad_JuniorLeaguesParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("INGEST_SEASON", "20252026")
	t.Setenv("INGEST_JUNIOR_LEAGUES", "OHL, WHL ,QMJHL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.JuniorLeagues) != 3 || cfg.JuniorLeagues[1] != "WHL" {
		t.Fatalf("unexpected JuniorLeagues: %v", cfg.JuniorLeagues)
	}
}
