package ingest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
	"github.com/pucktrack/nhl-ingest/internal/normalize"
	"github.com/pucktrack/nhl-ingest/internal/platform/logging"
)

// Runner executes one ingestion run: it walks the plan's batches in dependency
// order (teams, players and stints, season stats, draft, junior stats), fans
// player-scoped work out over a bounded pool, and isolates every failure to
// its record. A run only returns an error when the context is cancelled or the
// pool cannot be created; data problems land in the report.
type Runner struct {
	feed   Feed
	store  Store
	coord  *Coordinator
	norm   *normalize.Normalizer
	report *Report
	logger *logging.Logger

	plan    Plan
	workers int
	locks   *keyedMutex

	retryMu sync.Mutex
	retries []retryTask

	draftedMu sync.Mutex
	drafted   map[int64]struct{}
}

type retryTask struct {
	table string
	key   string
	run   func(context.Context) error
}

func NewRunner(feed Feed, store Store, plan Plan, workers int, logger *logging.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	report := NewReport()
	return &Runner{
		feed:    feed,
		store:   store,
		coord:   NewCoordinator(store, report, logger),
		norm:    normalize.New(),
		report:  report,
		logger:  logger,
		plan:    plan,
		workers: workers,
		locks:   newKeyedMutex(),
		drafted: make(map[int64]struct{}),
	}
}

// Run executes every enabled batch and returns the run report. The report is
// valid even when err is non-nil; it covers everything written before the
// cancellation.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	ctx, span := startSpan(ctx, "ingest.Run", attribute.String("season", r.plan.Season))
	var err error
	defer func() { endSpan(span, err) }()

	start := time.Now()
	r.logger.InfoContext(ctx, "ingestion run starting",
		"season", r.plan.Season, "workers", r.workers)

	batches := []struct {
		name string
		run  func(context.Context) error
	}{
		{"teams", r.runTeams},
		{"players", r.runPlayers},
		{"season_stats", r.runSeasonStats},
		{"draft", r.runDraft},
		{"junior", r.runJunior},
	}
	for _, batch := range batches {
		if err = ctx.Err(); err != nil {
			return r.report, err
		}
		if err = batch.run(ctx); err != nil {
			return r.report, fmt.Errorf("%s batch: %w", batch.name, err)
		}
	}

	r.flushRetries(ctx)

	r.report.Log(r.logger)
	r.logger.InfoContext(ctx, "ingestion run finished", "duration", time.Since(start))
	return r.report, ctx.Err()
}

func (r *Runner) runTeams(ctx context.Context) error {
	if !r.plan.Teams.Enabled() {
		return nil
	}

	recs, err := r.feed.Teams(ctx)
	if err != nil {
		r.report.Failed(TableTeams, "teams", fmt.Errorf("%w: %v", ErrFetch, err))
		return ctx.Err()
	}

	for _, rec := range recs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		item, err := r.norm.Team(rec)
		if err != nil {
			r.report.Failed(TableTeams, fmt.Sprintf("team=%v", rec["id"]), classify(err))
			continue
		}
		if !r.plan.Teams.Matches(item.ID) {
			continue
		}
		key := fmt.Sprintf("team=%d", item.ID)
		r.exec(ctx, TableTeams, key, func(ctx context.Context) error {
			return r.coord.UpsertTeam(ctx, item)
		})
	}
	return ctx.Err()
}

func (r *Runner) runPlayers(ctx context.Context) error {
	if !r.plan.Rosters.Enabled() && !r.plan.Players.Enabled() {
		return nil
	}

	teamIDs, err := r.rosterTeamIDs(ctx)
	if err != nil {
		return err
	}

	type rosterEntry struct {
		playerID int64
		teamID   int64
	}
	rosterPool := pool.NewWithResults[[]rosterEntry]().WithContext(ctx).WithMaxGoroutines(r.workers)
	for _, teamID := range teamIDs {
		teamID := teamID
		rosterPool.Go(func(ctx context.Context) ([]rosterEntry, error) {
			recs, err := r.feed.Roster(ctx, teamID)
			if err != nil {
				r.report.Failed(TableStints, fmt.Sprintf("roster team=%d", teamID),
					fmt.Errorf("%w: %v", ErrFetch, err))
				return nil, nil
			}
			var out []rosterEntry
			for _, rec := range recs {
				playerID := rec.Child("person").Int64("id")
				if playerID <= 0 {
					r.report.Failed(TablePlayers, fmt.Sprintf("roster team=%d", teamID),
						fmt.Errorf("%w: roster entry without person id", ErrNormalization))
					continue
				}
				out = append(out, rosterEntry{playerID: playerID, teamID: teamID})
			}
			return out, nil
		})
	}
	parts, err := rosterPool.Wait()
	if err != nil {
		return err
	}
	var entries []rosterEntry
	for _, part := range parts {
		entries = append(entries, part...)
	}
	for _, playerID := range r.plan.Players.IDs {
		entries = append(entries, rosterEntry{playerID: playerID})
	}

	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, entry := range entries {
		entry := entry
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			r.ingestPlayer(ctx, entry.playerID, entry.teamID)
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit player task: %w", err)
		}
	}
	workers.Wait()

	return ctx.Err()
}

// ingestPlayer stores one athlete's bio row and, when discovered through a
// roster, the current-season affiliation stint. teamID zero means the player
// was selected directly and carries no roster context.
func (r *Runner) ingestPlayer(ctx context.Context, playerID, teamID int64) {
	if ctx.Err() != nil {
		return
	}
	unlock := r.locks.Lock(playerID)
	defer unlock()

	key := fmt.Sprintf("player=%d", playerID)
	rec, err := r.feed.Player(ctx, playerID)
	if err != nil {
		r.report.Failed(TablePlayers, key, fmt.Errorf("%w: %v", ErrFetch, err))
		return
	}
	item, err := r.norm.Player(rec)
	if err != nil {
		r.report.Failed(TablePlayers, key, classify(err))
		return
	}

	if ok := r.exec(ctx, TablePlayers, key, func(ctx context.Context) error {
		return r.coord.UpsertPlayer(ctx, item)
	}); !ok || teamID <= 0 {
		return
	}

	stintKey := stint.NaturalKey{PlayerID: item.ID, TeamID: teamID, Season: r.plan.Season}
	r.exec(ctx, TableStints, stintKey.String(), func(ctx context.Context) error {
		return r.coord.UpsertRosterStint(ctx, stintKey, item.Active)
	})
}

func (r *Runner) runSeasonStats(ctx context.Context) error {
	if !r.plan.SeasonStats.Enabled() {
		return nil
	}

	ids := r.plan.SeasonStats.IDs
	if r.plan.SeasonStats.All {
		var err error
		ids, err = r.store.Players().ListIDs(ctx)
		if err != nil {
			return fmt.Errorf("list stored players: %w", err)
		}
	}

	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, playerID := range ids {
		playerID := playerID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			r.ingestSeasonStats(ctx, playerID)
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit stats task: %w", err)
		}
	}
	workers.Wait()

	return ctx.Err()
}

// ingestSeasonStats walks one player's year-by-year NHL splits in feed order.
// Only the newest NHL split of the configured season may mark its stint
// active; everything older is historical by definition.
func (r *Runner) ingestSeasonStats(ctx context.Context, playerID int64) {
	if ctx.Err() != nil {
		return
	}
	unlock := r.locks.Lock(playerID)
	defer unlock()

	key := fmt.Sprintf("player=%d", playerID)
	item, ok, err := r.store.Players().GetByID(ctx, playerID)
	if err != nil {
		r.report.Failed(TableSkaters, key, classify(err))
		return
	}
	if !ok {
		r.report.Failed(TableSkaters, key, fmt.Errorf("%w: player %d", ErrPrerequisiteMissing, playerID))
		return
	}
	table := TableSkaters
	if item.IsGoalie() {
		table = TableGoalies
	}

	recs, err := r.feed.SeasonSplits(ctx, playerID)
	if err != nil {
		r.report.Failed(table, key, fmt.Errorf("%w: %v", ErrFetch, err))
		return
	}

	var splits []normalize.RawRecord
	for _, rec := range recs {
		if normalize.IsNHLSplit(rec) {
			splits = append(splits, rec)
		}
	}

	for i, rec := range splits {
		if ctx.Err() != nil {
			return
		}
		row, err := r.norm.SeasonStats(item, rec)
		if err != nil {
			r.report.Failed(table, fmt.Sprintf("player=%d season=%s", playerID, rec.Str("season")), classify(err))
			continue
		}

		active := i == len(splits)-1 && rec.Str("season") == r.plan.Season && item.Active
		rowKey := row.Key()
		label := fmt.Sprintf("player=%d team=%d season=%s", rowKey.PlayerID, rowKey.TeamID, rowKey.Season)
		r.exec(ctx, table, label, func(ctx context.Context) error {
			if row.Goalie != nil {
				return r.coord.UpsertGoalieSeason(ctx, *row.Goalie, active)
			}
			return r.coord.UpsertSkaterSeason(ctx, *row.Skater, active)
		})
	}
}

func (r *Runner) runDraft(ctx context.Context) error {
	if r.plan.DraftYear <= 0 {
		return nil
	}

	picks, err := r.feed.DraftPicks(ctx, r.plan.DraftYear)
	if err != nil {
		r.report.Failed(TableDraft, fmt.Sprintf("year=%d", r.plan.DraftYear),
			fmt.Errorf("%w: %v", ErrFetch, err))
		return ctx.Err()
	}

	for _, pick := range picks {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		prospectID := pick.Child("prospect").Int64("id")
		label := fmt.Sprintf("year=%d overall=%d", r.plan.DraftYear, pick.Int("pickOverall"))
		if prospectID <= 0 {
			r.report.Failed(TableDraft, label,
				fmt.Errorf("%w: draft pick without prospect link", ErrNormalization))
			continue
		}

		prospect, err := r.feed.Prospect(ctx, prospectID)
		if err != nil {
			r.report.Failed(TableDraft, label, fmt.Errorf("%w: %v", ErrFetch, err))
			continue
		}
		rec, err := r.norm.DraftRecord(r.plan.DraftYear, pick, prospect)
		if err != nil {
			r.report.Failed(TableDraft, label, classify(err))
			continue
		}

		if ok := r.exec(ctx, TableDraft, label, func(ctx context.Context) error {
			return r.coord.UpsertDraftRecord(ctx, rec)
		}); ok {
			r.draftedMu.Lock()
			r.drafted[rec.PlayerID] = struct{}{}
			r.draftedMu.Unlock()
		}
	}
	return ctx.Err()
}

func (r *Runner) runJunior(ctx context.Context) error {
	if len(r.plan.JuniorLeagues) == 0 {
		return nil
	}

	r.draftedMu.Lock()
	ids := make([]int64, 0, len(r.drafted))
	for id := range r.drafted {
		ids = append(ids, id)
	}
	r.draftedMu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if len(ids) == 0 {
		r.logger.InfoContext(ctx, "junior batch skipped, no drafted players this run")
		return nil
	}

	leagues := make(map[string]struct{}, len(r.plan.JuniorLeagues))
	for _, name := range r.plan.JuniorLeagues {
		leagues[name] = struct{}{}
	}

	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, playerID := range ids {
		playerID := playerID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			r.ingestJunior(ctx, playerID, leagues)
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit junior task: %w", err)
		}
	}
	workers.Wait()

	return ctx.Err()
}

func (r *Runner) ingestJunior(ctx context.Context, playerID int64, leagues map[string]struct{}) {
	if ctx.Err() != nil {
		return
	}
	unlock := r.locks.Lock(playerID)
	defer unlock()

	key := fmt.Sprintf("player=%d", playerID)
	recs, err := r.feed.SeasonSplits(ctx, playerID)
	if err != nil {
		r.report.Failed(TableJunior, key, fmt.Errorf("%w: %v", ErrFetch, err))
		return
	}

	for _, rec := range recs {
		if ctx.Err() != nil {
			return
		}
		if _, ok := leagues[rec.Child("league").Str("name")]; !ok {
			continue
		}
		row, err := r.norm.JuniorSeason(playerID, rec)
		if err != nil {
			r.report.Failed(TableJunior, key, classify(err))
			continue
		}
		label := fmt.Sprintf("player=%d season=%s league=%s", playerID, row.Season, row.League)
		r.exec(ctx, TableJunior, label, func(ctx context.Context) error {
			return r.coord.UpsertJuniorSeason(ctx, row)
		})
	}
}

func (r *Runner) rosterTeamIDs(ctx context.Context) ([]int64, error) {
	if !r.plan.Rosters.Enabled() {
		return nil, nil
	}
	if !r.plan.Rosters.All {
		return r.plan.Rosters.IDs, nil
	}
	teams, err := r.store.Teams().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored teams: %w", err)
	}
	ids := make([]int64, 0, len(teams))
	for _, t := range teams {
		if t.Active {
			ids = append(ids, t.ID)
		}
	}
	return ids, nil
}

// exec runs one upsert, classifying failures and queueing rows whose
// prerequisite has not landed yet for a second pass at the end of the run.
// Returns true on success.
func (r *Runner) exec(ctx context.Context, table, key string, run func(context.Context) error) bool {
	err := run(ctx)
	if err == nil {
		return true
	}
	err = classify(err)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrPrerequisiteMissing) {
		r.retryMu.Lock()
		r.retries = append(r.retries, retryTask{table: table, key: key, run: run})
		r.retryMu.Unlock()
		return false
	}
	r.report.Failed(table, key, err)
	return false
}

// flushRetries replays rows that were queued behind a missing prerequisite.
// Anything still blocked after the replay is a dangling reference: the foreign
// row genuinely does not exist in the feed selection.
func (r *Runner) flushRetries(ctx context.Context) {
	r.retryMu.Lock()
	queued := r.retries
	r.retries = nil
	r.retryMu.Unlock()

	for _, task := range queued {
		if ctx.Err() != nil {
			return
		}
		err := task.run(ctx)
		if err == nil {
			continue
		}
		err = classify(err)
		if errors.Is(err, ErrPrerequisiteMissing) {
			r.report.Failed(task.table, task.key, err)
			r.report.Dangling(task.key)
			continue
		}
		r.report.Failed(task.table, task.key, err)
	}
}
