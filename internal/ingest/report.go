package ingest

import (
	"sort"
	"sync"

	"github.com/pucktrack/nhl-ingest/internal/platform/logging"
)

// Table labels used in the run report.
const (
	TableTeams   = "teams"
	TablePlayers = "players"
	TableStints  = "team_players"
	TableSkaters = "skater_season_stats"
	TableGoalies = "goalie_season_stats"
	TableDraft   = "draft_records"
	TableJunior  = "junior_season_stats"
)

// TableCounts holds per-table write outcomes for one run.
type TableCounts struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

// Failure identifies one skipped record by table and natural key.
type Failure struct {
	Table  string `json:"table"`
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// Report is the structured summary an ingestion run produces. It is safe for
// concurrent use by the worker pool.
type Report struct {
	mu        sync.Mutex
	tables    map[string]*TableCounts
	failures  []Failure
	conflicts []string
	dangling  []string
}

func NewReport() *Report {
	return &Report{tables: make(map[string]*TableCounts)}
}

func (r *Report) counts(table string) *TableCounts {
	c, ok := r.tables[table]
	if !ok {
		c = &TableCounts{}
		r.tables[table] = c
	}
	return c
}

func (r *Report) Inserted(table string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts(table).Inserted++
}

func (r *Report) Updated(table string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts(table).Updated++
}

func (r *Report) Unchanged(table string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts(table).Unchanged++
}

func (r *Report) Failed(table, key string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts(table).Failed++
	r.failures = append(r.failures, Failure{Table: table, Key: key, Reason: err.Error()})
}

// Conflict records an ambiguous stint resolution that was written
// conservatively and needs review.
func (r *Report) Conflict(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflicts = append(r.conflicts, key)
}

// Dangling records a reference whose prerequisite row never materialized
// even after the retry pass.
func (r *Report) Dangling(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dangling = append(r.dangling, key)
}

func (r *Report) Tables() map[string]TableCounts {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]TableCounts, len(r.tables))
	for name, c := range r.tables {
		out[name] = *c
	}
	return out
}

func (r *Report) Failures() []Failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Failure, len(r.failures))
	copy(out, r.failures)
	return out
}

func (r *Report) Conflicts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.conflicts))
	copy(out, r.conflicts)
	return out
}

func (r *Report) DanglingRefs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.dangling))
	copy(out, r.dangling)
	return out
}

// Log emits one summary line per touched table plus one line per failure,
// conflict and dangling reference.
func (r *Report) Log(logger *logging.Logger) {
	tables := r.Tables()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := tables[name]
		logger.Info("table summary",
			"table", name,
			"inserted", c.Inserted,
			"updated", c.Updated,
			"unchanged", c.Unchanged,
			"failed", c.Failed,
		)
	}
	for _, f := range r.Failures() {
		logger.Warn("record skipped", "table", f.Table, "key", f.Key, "reason", f.Reason)
	}
	for _, key := range r.Conflicts() {
		logger.Warn("stint conflict resolved conservatively", "key", key)
	}
	for _, key := range r.DanglingRefs() {
		logger.Warn("dangling reference", "key", key)
	}
}
