package ingest_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
	"github.com/pucktrack/nhl-ingest/internal/infrastructure/repository/memory"
	"github.com/pucktrack/nhl-ingest/internal/ingest"
	"github.com/pucktrack/nhl-ingest/internal/normalize"
	"github.com/pucktrack/nhl-ingest/internal/platform/logging"
)

// fakeFeed serves canned raw records keyed the way the real feed keys its
// endpoints. A missing entry reads as a fetch failure.
type fakeFeed struct {
	teams     []normalize.RawRecord
	rosters   map[int64][]normalize.RawRecord
	players   map[int64]normalize.RawRecord
	splits    map[int64][]normalize.RawRecord
	picks     map[int][]normalize.RawRecord
	prospects map[int64]normalize.RawRecord
}

func (f *fakeFeed) Teams(context.Context) ([]normalize.RawRecord, error) {
	if f.teams == nil {
		return nil, fmt.Errorf("teams endpoint down")
	}
	return f.teams, nil
}

func (f *fakeFeed) Roster(_ context.Context, teamID int64) ([]normalize.RawRecord, error) {
	recs, ok := f.rosters[teamID]
	if !ok {
		return nil, fmt.Errorf("roster %d unavailable", teamID)
	}
	return recs, nil
}

func (f *fakeFeed) Player(_ context.Context, playerID int64) (normalize.RawRecord, error) {
	rec, ok := f.players[playerID]
	if !ok {
		return nil, fmt.Errorf("player %d unavailable", playerID)
	}
	return rec, nil
}

func (f *fakeFeed) SeasonSplits(_ context.Context, playerID int64) ([]normalize.RawRecord, error) {
	recs, ok := f.splits[playerID]
	if !ok {
		return nil, fmt.Errorf("splits for %d unavailable", playerID)
	}
	return recs, nil
}

func (f *fakeFeed) DraftPicks(_ context.Context, year int) ([]normalize.RawRecord, error) {
	recs, ok := f.picks[year]
	if !ok {
		return nil, fmt.Errorf("draft %d unavailable", year)
	}
	return recs, nil
}

func (f *fakeFeed) Prospect(_ context.Context, prospectID int64) (normalize.RawRecord, error) {
	rec, ok := f.prospects[prospectID]
	if !ok {
		return nil, fmt.Errorf("prospect %d unavailable", prospectID)
	}
	return rec, nil
}

func feedTeam(id, franchiseID int64, name string) normalize.RawRecord {
	return normalize.RawRecord{
		"id":        float64(id),
		"name":      name,
		"active":    true,
		"franchise": map[string]any{"franchiseId": float64(franchiseID)},
	}
}

func feedPlayer(id int64, name string) normalize.RawRecord {
	return normalize.RawRecord{
		"id":       float64(id),
		"fullName": name,
		"active":   true,
		"primaryPosition": map[string]any{
			"code":         "C",
			"abbreviation": "C",
			"name":         "Center",
			"type":         "Forward",
		},
	}
}

func feedRosterEntry(playerID int64) normalize.RawRecord {
	return normalize.RawRecord{"person": map[string]any{"id": float64(playerID)}}
}

func feedNHLSplit(splitSeason string, teamID int64, games, goals int) normalize.RawRecord {
	return normalize.RawRecord{
		"season": splitSeason,
		"team":   map[string]any{"id": float64(teamID)},
		"league": map[string]any{"name": normalize.NHLLeagueName},
		"stat": map[string]any{
			"games": float64(games),
			"goals": float64(goals),
		},
	}
}

func feedJuniorSplit(splitSeason, league, teamName string, games int) normalize.RawRecord {
	return normalize.RawRecord{
		"season": splitSeason,
		"team":   map[string]any{"name": teamName},
		"league": map[string]any{"name": league},
		"stat":   map[string]any{"games": float64(games)},
	}
}

func fullFeed() *fakeFeed {
	return &fakeFeed{
		teams: []normalize.RawRecord{
			feedTeam(22, 25, "Edmonton Oilers"),
			feedTeam(20, 21, "Calgary Flames"),
		},
		rosters: map[int64][]normalize.RawRecord{
			22: {feedRosterEntry(8478402)},
			20: {},
		},
		players: map[int64]normalize.RawRecord{
			8478402: feedPlayer(8478402, "Connor McDavid"),
		},
		splits: map[int64][]normalize.RawRecord{
			8478402: {
				feedJuniorSplit("20142015", "OHL", "Erie Otters", 47),
				feedNHLSplit("20242025", 22, 82, 64),
				feedNHLSplit(season, 22, 40, 20),
			},
		},
		picks: map[int][]normalize.RawRecord{
			2015: {{
				"round":       float64(1),
				"pickInRound": float64(1),
				"pickOverall": float64(1),
				"team":        map[string]any{"id": float64(22)},
				"prospect":    map[string]any{"id": float64(90001)},
			}},
		},
		prospects: map[int64]normalize.RawRecord{
			90001: {
				"id":          float64(90001),
				"nhlPlayerId": float64(8478402),
				"firstName":   "Connor",
				"lastName":    "McDavid",
			},
		},
	}
}

func fullPlan() ingest.Plan {
	return ingest.Plan{
		Season:        season,
		Teams:         ingest.Selector{All: true},
		Rosters:       ingest.Selector{All: true},
		SeasonStats:   ingest.Selector{IDs: []int64{8478402}},
		DraftYear:     2015,
		JuniorLeagues: []string{"OHL"},
	}
}

func runOnce(t *testing.T, feed ingest.Feed, store *memory.Store, plan ingest.Plan) *ingest.Report {
	t.Helper()
	runner := ingest.NewRunner(feed, store, plan, 4, logging.NewNop())
	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return report
}

func TestRunner_FullRunPopulatesEveryTable(t *testing.T) {
	store := memory.NewStore()
	report := runOnce(t, fullFeed(), store, fullPlan())

	tables := report.Tables()
	checks := []struct {
		table    string
		inserted int
	}{
		{ingest.TableTeams, 2},
		{ingest.TablePlayers, 1},
		{ingest.TableStints, 2},
		{ingest.TableSkaters, 2},
		{ingest.TableDraft, 1},
		{ingest.TableJunior, 1},
	}
	for _, check := range checks {
		if got := tables[check.table].Inserted; got != check.inserted {
			t.Fatalf("%s inserted = %d, want %d (tables: %+v)", check.table, got, check.inserted, tables)
		}
	}
	if got := report.Failures(); len(got) != 0 {
		t.Fatalf("unexpected failures: %v", got)
	}

	ctx := context.Background()
	cur, ok, _ := store.Stints().Get(ctx, stint.Key{PlayerID: 8478402, TeamID: 22, Season: season, Sequence: 1})
	if !ok || !cur.Active {
		t.Fatalf("current-season stint not active: ok=%t %+v", ok, cur)
	}
	old, ok, _ := store.Stints().Get(ctx, stint.Key{PlayerID: 8478402, TeamID: 22, Season: "20242025", Sequence: 1})
	if !ok || old.Active {
		t.Fatalf("historical stint should be inactive: ok=%t %+v", ok, old)
	}
	juniors, _ := store.Drafts().ListJuniorSeasons(ctx, 8478402, "20142015")
	if len(juniors) != 1 || juniors[0].League != "OHL" {
		t.Fatalf("junior season not stored: %+v", juniors)
	}
}

func TestRunner_SecondRunIsAllUnchanged(t *testing.T) {
	store := memory.NewStore()
	runOnce(t, fullFeed(), store, fullPlan())
	report := runOnce(t, fullFeed(), store, fullPlan())

	for table, counts := range report.Tables() {
		if counts.Inserted != 0 || counts.Updated != 0 || counts.Failed != 0 {
			t.Fatalf("%s not idempotent: %+v", table, counts)
		}
	}
}

func TestRunner_RosterFetchFailureIsIsolated(t *testing.T) {
	feed := fullFeed()
	delete(feed.rosters, 20)

	store := memory.NewStore()
	report := runOnce(t, feed, store, fullPlan())

	failures := report.Failures()
	if len(failures) != 1 || !strings.Contains(failures[0].Key, "team=20") {
		t.Fatalf("expected one roster failure, got %v", failures)
	}
	// The other club's roster still landed.
	if _, ok, _ := store.Players().GetByID(context.Background(), 8478402); !ok {
		t.Fatalf("surviving roster was not ingested")
	}
}

func TestRunner_MalformedTeamIsSkipped(t *testing.T) {
	feed := fullFeed()
	feed.teams = append(feed.teams, normalize.RawRecord{"id": float64(99), "name": "No Franchise"})

	store := memory.NewStore()
	report := runOnce(t, feed, store, fullPlan())

	if got := report.Tables()[ingest.TableTeams]; got.Inserted != 2 || got.Failed != 1 {
		t.Fatalf("unexpected team counts: %+v", got)
	}
}

func TestRunner_MissingTeamBecomesDanglingReference(t *testing.T) {
	// The split references a club outside the team selection: the row is queued
	// behind the missing prerequisite, replayed at end of run, and finally
	// reported as dangling.
	feed := &fakeFeed{
		teams:   []normalize.RawRecord{feedTeam(22, 25, "Edmonton Oilers")},
		players: map[int64]normalize.RawRecord{8478402: feedPlayer(8478402, "Connor McDavid")},
		splits: map[int64][]normalize.RawRecord{
			8478402: {feedNHLSplit(season, 99, 10, 3)},
		},
	}
	plan := ingest.Plan{
		Season:      season,
		Teams:       ingest.Selector{IDs: []int64{22}},
		Players:     ingest.Selector{IDs: []int64{8478402}},
		SeasonStats: ingest.Selector{IDs: []int64{8478402}},
	}

	store := memory.NewStore()
	report := runOnce(t, feed, store, plan)

	if got := report.DanglingRefs(); len(got) != 1 {
		t.Fatalf("expected one dangling reference, got %v", got)
	}
	if got := report.Tables()[ingest.TableSkaters]; got.Failed != 1 || got.Inserted != 0 {
		t.Fatalf("unexpected skater counts: %+v", got)
	}
}

func TestRunner_JuniorBatchOnlyCoversPlayersDraftedThisRun(t *testing.T) {
	feed := fullFeed()
	feed.picks = nil // draft endpoint disabled

	plan := fullPlan()
	plan.DraftYear = 0

	store := memory.NewStore()
	report := runOnce(t, feed, store, plan)

	if counts, ok := report.Tables()[ingest.TableJunior]; ok && counts.Inserted > 0 {
		t.Fatalf("junior rows written without a draft batch: %+v", counts)
	}
}

func TestRunner_TradePromotesNewClubAndRetiresOld(t *testing.T) {
	store := memory.NewStore()
	runOnce(t, fullFeed(), store, fullPlan())

	// Next run the player shows up on the other club's roster with a split for
	// the new team accumulating from zero.
	feed := fullFeed()
	feed.rosters = map[int64][]normalize.RawRecord{
		22: {},
		20: {feedRosterEntry(8478402)},
	}
	feed.splits[8478402] = []normalize.RawRecord{
		feedNHLSplit("20242025", 22, 82, 64),
		feedNHLSplit(season, 22, 45, 22),
		feedNHLSplit(season, 20, 10, 4),
	}
	report := runOnce(t, feed, store, fullPlan())

	ctx := context.Background()
	old, ok, _ := store.Stints().Get(ctx, stint.Key{PlayerID: 8478402, TeamID: 22, Season: season, Sequence: 1})
	if !ok || old.Active {
		t.Fatalf("old club's stint still active: ok=%t %+v", ok, old)
	}
	// The new club picks up the season numbering at sequence 2.
	cur, ok, _ := store.Stints().Get(ctx, stint.Key{PlayerID: 8478402, TeamID: 20, Season: season, Sequence: 2})
	if !ok || !cur.Active {
		t.Fatalf("new club's stint not active: ok=%t %+v", ok, cur)
	}
	if _, ok, _ := store.SeasonStats().GetSkater(ctx, stint.Key{PlayerID: 8478402, TeamID: 20, Season: season, Sequence: 2}); !ok {
		t.Fatalf("new club's stat row missing")
	}
	if got := report.Conflicts(); len(got) != 0 {
		t.Fatalf("trade misread as a conflict: %v", got)
	}
}
