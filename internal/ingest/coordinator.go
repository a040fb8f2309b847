package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/pucktrack/nhl-ingest/internal/domain/draft"
	"github.com/pucktrack/nhl-ingest/internal/domain/player"
	"github.com/pucktrack/nhl-ingest/internal/domain/seasonstats"
	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
	"github.com/pucktrack/nhl-ingest/internal/domain/team"
	"github.com/pucktrack/nhl-ingest/internal/platform/logging"
	"github.com/pucktrack/nhl-ingest/internal/sequence"
)

// Coordinator turns normalized records into the minimal set of writes against
// the store: it diffs against stored rows, protects immutable fields, resolves
// stint sequences, and wraps each prerequisite-plus-dependent pair in one
// transaction. Safe for concurrent use as long as callers serialize work per
// player id; the runner does that with a keyed mutex.
type Coordinator struct {
	store  Store
	report *Report
	logger *logging.Logger

	mu   sync.Mutex
	seen map[stint.Key]struct{}
}

func NewCoordinator(store Store, report *Report, logger *logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Coordinator{
		store:  store,
		report: report,
		logger: logger,
		seen:   make(map[stint.Key]struct{}),
	}
}

func (c *Coordinator) markSeen(key stint.Key) {
	c.mu.Lock()
	c.seen[key] = struct{}{}
	c.mu.Unlock()
}

func (c *Coordinator) wasSeen(key stint.Key) bool {
	c.mu.Lock()
	_, ok := c.seen[key]
	c.mu.Unlock()
	return ok
}

// UpsertTeam stores one club. FranchiseID is the stable identity: when the
// league reassigns a team id, the stored row is rewritten in place under its
// franchise rather than duplicated.
func (c *Coordinator) UpsertTeam(ctx context.Context, incoming team.Team) error {
	ctx, span := startSpan(ctx, "ingest.UpsertTeam", attribute.Int64("team.id", incoming.ID))
	var err error
	defer func() { endSpan(span, err) }()

	if err = incoming.Validate(); err != nil {
		err = fmt.Errorf("%w: %v", ErrNormalization, err)
		return err
	}

	existing, ok, err := c.store.Teams().GetByID(ctx, incoming.ID)
	if err != nil {
		return err
	}
	if ok {
		if existing.FranchiseID != incoming.FranchiseID {
			err = fmt.Errorf("%w: team %d franchise change %d -> %d",
				ErrPersistence, incoming.ID, existing.FranchiseID, incoming.FranchiseID)
			return err
		}
		if existing == incoming {
			c.report.Unchanged(TableTeams)
			return nil
		}
		if err = c.store.Teams().Update(ctx, incoming); err != nil {
			return err
		}
		c.report.Updated(TableTeams)
		return nil
	}

	prior, ok, err := c.store.Teams().GetByFranchiseID(ctx, incoming.FranchiseID)
	if err != nil {
		return err
	}
	if ok {
		// Realignment: the franchise already exists under another id.
		c.logger.InfoContext(ctx, "team id reassigned",
			"franchise_id", incoming.FranchiseID, "old_id", prior.ID, "new_id", incoming.ID)
		if err = c.store.Teams().Update(ctx, incoming); err != nil {
			return err
		}
		c.report.Updated(TableTeams)
		return nil
	}

	if err = c.store.Teams().Insert(ctx, incoming); err != nil {
		return err
	}
	c.report.Inserted(TableTeams)
	return nil
}

// UpsertPlayer stores one athlete. FullName and BirthDate are fill-if-missing
// only; everything else tracks the feed.
func (c *Coordinator) UpsertPlayer(ctx context.Context, incoming player.Player) error {
	ctx, span := startSpan(ctx, "ingest.UpsertPlayer", attribute.Int64("player.id", incoming.ID))
	var err error
	defer func() { endSpan(span, err) }()

	if err = incoming.Validate(); err != nil {
		err = fmt.Errorf("%w: %v", ErrNormalization, err)
		return err
	}

	existing, ok, err := c.store.Players().GetByID(ctx, incoming.ID)
	if err != nil {
		return err
	}
	if !ok {
		if err = c.store.Players().Insert(ctx, incoming); err != nil {
			return err
		}
		c.report.Inserted(TablePlayers)
		return nil
	}

	merged := incoming
	if existing.FullName != "" {
		merged.FullName = existing.FullName
	}
	if existing.BirthDate != "" {
		merged.BirthDate = existing.BirthDate
	}
	if merged == existing {
		c.report.Unchanged(TablePlayers)
		return nil
	}
	if err = c.store.Players().Update(ctx, merged); err != nil {
		return err
	}
	c.report.Updated(TablePlayers)
	return nil
}

// UpsertRosterStint records a roster-discovered affiliation. Roster entries
// carry no stat content, so the newest stored stint on the same team is taken
// as content-identical and resolution reduces to the active flag.
func (c *Coordinator) UpsertRosterStint(ctx context.Context, key stint.NaturalKey, active bool) error {
	ctx, span := startSpan(ctx, "ingest.UpsertRosterStint",
		attribute.Int64("player.id", key.PlayerID), attribute.Int64("team.id", key.TeamID))
	var err error
	defer func() { endSpan(span, err) }()

	if err = c.requireTeam(ctx, key.TeamID); err != nil {
		return err
	}
	if err = c.requirePlayer(ctx, key.PlayerID); err != nil {
		return err
	}

	stored, err := c.store.Stints().ListByPlayerSeason(ctx, key.PlayerID, key.Season)
	if err != nil {
		return err
	}
	existing := make([]sequence.Existing, 0, len(stored))
	for _, st := range stored {
		existing = append(existing, sequence.Existing{
			Stint:       st,
			SeenThisRun: c.wasSeen(st.Key()),
			Identical:   true,
			Accumulates: true,
		})
	}

	decision, err := c.resolve(sequence.Incoming{Key: key, Active: active}, existing)
	if err != nil {
		return err
	}

	var outcome stintOutcome
	err = c.store.WithinTx(ctx, func(tx Store) error {
		outcome, err = applyStintDecision(ctx, tx, key, active, decision)
		return err
	})
	if err != nil {
		return err
	}
	c.recordStint(outcome)
	return nil
}

// UpsertSkaterSeason stores one skater season line, resolving its stint and
// writing both rows in one transaction. The affiliation row is created from
// the stat row's own context when the roster never surfaced it.
func (c *Coordinator) UpsertSkaterSeason(ctx context.Context, row seasonstats.SkaterSeason, active bool) error {
	ctx, span := startSpan(ctx, "ingest.UpsertSkaterSeason",
		attribute.Int64("player.id", row.PlayerID), attribute.String("season", row.Season))
	var err error
	defer func() { endSpan(span, err) }()

	if err = row.Validate(); err != nil {
		err = fmt.Errorf("%w: %v", ErrNormalization, err)
		return err
	}
	if err = c.requireTeam(ctx, row.TeamID); err != nil {
		return err
	}
	if err = c.requirePlayer(ctx, row.PlayerID); err != nil {
		return err
	}

	existing, err := c.existingForSkater(ctx, row)
	if err != nil {
		return err
	}
	decision, err := c.resolve(sequence.Incoming{Key: row.NaturalKey(), Active: active}, existing)
	if err != nil {
		return err
	}
	row.Sequence = decision.Sequence

	var (
		stintOut stintOutcome
		statOut  writeOutcome
	)
	err = c.store.WithinTx(ctx, func(tx Store) error {
		stintOut, err = applyStintDecision(ctx, tx, row.NaturalKey(), active, decision)
		if err != nil {
			return err
		}

		stored, ok, err := tx.SeasonStats().GetSkater(ctx, row.Key())
		if err != nil {
			return err
		}
		switch {
		case !ok:
			statOut = outcomeInserted
			return tx.SeasonStats().InsertSkater(ctx, row)
		case stored.Identical(row):
			statOut = outcomeUnchanged
			return nil
		default:
			statOut = outcomeUpdated
			return tx.SeasonStats().UpdateSkater(ctx, row)
		}
	})
	if err != nil {
		return err
	}
	c.recordStint(stintOut)
	c.record(TableSkaters, statOut)
	return nil
}

// UpsertGoalieSeason mirrors UpsertSkaterSeason for the goalie table.
func (c *Coordinator) UpsertGoalieSeason(ctx context.Context, row seasonstats.GoalieSeason, active bool) error {
	ctx, span := startSpan(ctx, "ingest.UpsertGoalieSeason",
		attribute.Int64("player.id", row.PlayerID), attribute.String("season", row.Season))
	var err error
	defer func() { endSpan(span, err) }()

	if err = row.Validate(); err != nil {
		err = fmt.Errorf("%w: %v", ErrNormalization, err)
		return err
	}
	if err = c.requireTeam(ctx, row.TeamID); err != nil {
		return err
	}
	if err = c.requirePlayer(ctx, row.PlayerID); err != nil {
		return err
	}

	existing, err := c.existingForGoalie(ctx, row)
	if err != nil {
		return err
	}
	decision, err := c.resolve(sequence.Incoming{Key: row.NaturalKey(), Active: active}, existing)
	if err != nil {
		return err
	}
	row.Sequence = decision.Sequence

	var (
		stintOut stintOutcome
		statOut  writeOutcome
	)
	err = c.store.WithinTx(ctx, func(tx Store) error {
		stintOut, err = applyStintDecision(ctx, tx, row.NaturalKey(), active, decision)
		if err != nil {
			return err
		}

		stored, ok, err := tx.SeasonStats().GetGoalie(ctx, row.Key())
		if err != nil {
			return err
		}
		switch {
		case !ok:
			statOut = outcomeInserted
			return tx.SeasonStats().InsertGoalie(ctx, row)
		case stored.Identical(row):
			statOut = outcomeUnchanged
			return nil
		default:
			statOut = outcomeUpdated
			return tx.SeasonStats().UpdateGoalie(ctx, row)
		}
	})
	if err != nil {
		return err
	}
	c.recordStint(stintOut)
	c.record(TableGoalies, statOut)
	return nil
}

// UpsertDraftRecord stores one entry-draft selection. A prospect without a
// stored player row gets a minimal one created from the draft snapshot in the
// same transaction, so the foreign key always holds.
func (c *Coordinator) UpsertDraftRecord(ctx context.Context, rec draft.Record) error {
	ctx, span := startSpan(ctx, "ingest.UpsertDraftRecord",
		attribute.Int64("player.id", rec.PlayerID), attribute.Int("draft.year", rec.DraftYear))
	var err error
	defer func() { endSpan(span, err) }()

	if err = rec.Validate(); err != nil {
		err = fmt.Errorf("%w: %v", ErrNormalization, err)
		return err
	}
	if err = c.requireTeam(ctx, rec.TeamID); err != nil {
		return err
	}

	var (
		playerOut writeOutcome
		recordOut writeOutcome
	)
	err = c.store.WithinTx(ctx, func(tx Store) error {
		_, ok, err := tx.Players().GetByID(ctx, rec.PlayerID)
		if err != nil {
			return err
		}
		if !ok {
			seed := playerFromProspect(rec)
			if err := tx.Players().Insert(ctx, seed); err != nil {
				return err
			}
			playerOut = outcomeInserted
		}

		stored, ok, err := tx.Drafts().GetRecord(ctx, rec.PlayerID, rec.DraftYear)
		if err != nil {
			return err
		}
		switch {
		case !ok:
			recordOut = outcomeInserted
			return tx.Drafts().InsertRecord(ctx, rec)
		case stored == rec:
			recordOut = outcomeUnchanged
			return nil
		default:
			recordOut = outcomeUpdated
			return tx.Drafts().UpdateRecord(ctx, rec)
		}
	})
	if err != nil {
		return err
	}
	if playerOut == outcomeInserted {
		c.record(TablePlayers, playerOut)
	}
	c.record(TableDraft, recordOut)
	return nil
}

// UpsertJuniorSeason stores one junior-league season line for a drafted
// prospect. Junior teams carry no league id, so stints are discriminated by
// (league, team name) and sequences run densely per (player, season).
func (c *Coordinator) UpsertJuniorSeason(ctx context.Context, row draft.JuniorSeason) error {
	ctx, span := startSpan(ctx, "ingest.UpsertJuniorSeason",
		attribute.Int64("player.id", row.PlayerID), attribute.String("season", row.Season))
	var err error
	defer func() { endSpan(span, err) }()

	if err = row.Validate(); err != nil {
		err = fmt.Errorf("%w: %v", ErrNormalization, err)
		return err
	}

	hasRecord, err := c.store.Drafts().HasRecordForPlayer(ctx, row.PlayerID)
	if err != nil {
		return err
	}
	if !hasRecord {
		err = fmt.Errorf("%w: no draft record for player %d", ErrPrerequisiteMissing, row.PlayerID)
		return err
	}

	stored, err := c.store.Drafts().ListJuniorSeasons(ctx, row.PlayerID, row.Season)
	if err != nil {
		return err
	}

	maxSeq := 0
	var match *draft.JuniorSeason
	for i := range stored {
		if stored[i].Sequence > maxSeq {
			maxSeq = stored[i].Sequence
		}
		if stored[i].League == row.League && stored[i].TeamName == row.TeamName {
			match = &stored[i]
		}
	}

	var out writeOutcome
	err = c.store.WithinTx(ctx, func(tx Store) error {
		switch {
		case match == nil:
			row.Sequence = maxSeq + 1
			out = outcomeInserted
			return tx.Drafts().InsertJuniorSeason(ctx, row)
		case match.Identical(row):
			out = outcomeUnchanged
			return nil
		default:
			row.Sequence = match.Sequence
			out = outcomeUpdated
			return tx.Drafts().UpdateJuniorSeason(ctx, row)
		}
	})
	if err != nil {
		return err
	}
	c.record(TableJunior, out)
	return nil
}

// resolve runs the sequence resolver, downgrading an ambiguous active claim to
// an inactive write: the stored active stint wins, the incoming row is kept
// but flagged for review.
func (c *Coordinator) resolve(in sequence.Incoming, existing []sequence.Existing) (sequence.Decision, error) {
	decision, err := sequence.Resolve(in, existing)
	if err == nil {
		return decision, nil
	}
	if !errors.Is(err, sequence.ErrConflict) {
		return sequence.Decision{}, err
	}

	c.report.Conflict(in.Key.String())
	c.logger.Warn("stint conflict, keeping stored active stint", "key", in.Key.String())
	in.Active = false
	return sequence.Resolve(in, existing)
}

func (c *Coordinator) requireTeam(ctx context.Context, teamID int64) error {
	_, ok, err := c.store.Teams().GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: team %d", ErrPrerequisiteMissing, teamID)
	}
	return nil
}

func (c *Coordinator) requirePlayer(ctx context.Context, playerID int64) error {
	_, ok, err := c.store.Players().GetByID(ctx, playerID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: player %d", ErrPrerequisiteMissing, playerID)
	}
	return nil
}

// existingForSkater loads the stint history for the row's (player, season) and
// annotates same-team stints with content identity against the stored skater
// line. A stint with no stat row yet reads as accumulable: the incoming line
// is its first content.
func (c *Coordinator) existingForSkater(ctx context.Context, row seasonstats.SkaterSeason) ([]sequence.Existing, error) {
	stored, err := c.store.Stints().ListByPlayerSeason(ctx, row.PlayerID, row.Season)
	if err != nil {
		return nil, err
	}

	out := make([]sequence.Existing, 0, len(stored))
	for _, st := range stored {
		ex := sequence.Existing{Stint: st, SeenThisRun: c.wasSeen(st.Key())}
		if st.NaturalKey() == row.NaturalKey() {
			prior, ok, err := c.store.SeasonStats().GetSkater(ctx, st.Key())
			if err != nil {
				return nil, err
			}
			if ok {
				ex.Identical = prior.Identical(row)
				ex.Accumulates = row.Accumulates(prior)
			} else {
				ex.Accumulates = true
			}
		}
		out = append(out, ex)
	}
	return out, nil
}

func (c *Coordinator) existingForGoalie(ctx context.Context, row seasonstats.GoalieSeason) ([]sequence.Existing, error) {
	stored, err := c.store.Stints().ListByPlayerSeason(ctx, row.PlayerID, row.Season)
	if err != nil {
		return nil, err
	}

	out := make([]sequence.Existing, 0, len(stored))
	for _, st := range stored {
		ex := sequence.Existing{Stint: st, SeenThisRun: c.wasSeen(st.Key())}
		if st.NaturalKey() == row.NaturalKey() {
			prior, ok, err := c.store.SeasonStats().GetGoalie(ctx, st.Key())
			if err != nil {
				return nil, err
			}
			if ok {
				ex.Identical = prior.Identical(row)
				ex.Accumulates = row.Accumulates(prior)
			} else {
				ex.Accumulates = true
			}
		}
		out = append(out, ex)
	}
	return out, nil
}

type writeOutcome int

const (
	outcomeUnchanged writeOutcome = iota
	outcomeInserted
	outcomeUpdated
)

type stintOutcome struct {
	key         stint.Key
	write       writeOutcome
	inserted    bool
	deactivated int
}

// applyStintDecision materializes a resolver decision inside tx: the stint row
// itself plus any deactivations needed to keep a single active stint per
// (player, season).
func applyStintDecision(ctx context.Context, tx Store, key stint.NaturalKey, active bool, d sequence.Decision) (stintOutcome, error) {
	row := stint.Stint{
		PlayerID: key.PlayerID,
		TeamID:   key.TeamID,
		Season:   key.Season,
		Sequence: d.Sequence,
		Active:   active,
	}
	out := stintOutcome{key: row.Key()}

	// Deactivate displaced stints before writing the new active one so the
	// single-active-per-(player, season) index holds at every point in the
	// transaction.
	for _, k := range d.Deactivate {
		cur, ok, err := tx.Stints().Get(ctx, k)
		if err != nil {
			return out, err
		}
		if !ok || !cur.Active {
			continue
		}
		cur.Active = false
		if err := tx.Stints().Update(ctx, cur); err != nil {
			return out, err
		}
		out.deactivated++
	}

	switch d.Action {
	case sequence.ActionInsert:
		if err := tx.Stints().Insert(ctx, row); err != nil {
			return out, err
		}
		out.write = outcomeInserted
		out.inserted = true
	case sequence.ActionRefresh:
		cur, ok, err := tx.Stints().Get(ctx, row.Key())
		if err != nil {
			return out, err
		}
		if !ok {
			return out, fmt.Errorf("%w: stint %s vanished mid-run", ErrPersistence, row.Key())
		}
		if cur.Active == active {
			out.write = outcomeUnchanged
		} else {
			if err := tx.Stints().Update(ctx, row); err != nil {
				return out, err
			}
			out.write = outcomeUpdated
		}
	case sequence.ActionNoop:
		out.write = outcomeUnchanged
	}

	return out, nil
}

func (c *Coordinator) recordStint(out stintOutcome) {
	if out.inserted {
		c.markSeen(out.key)
	}
	c.record(TableStints, out.write)
	for i := 0; i < out.deactivated; i++ {
		c.report.Updated(TableStints)
	}
}

func (c *Coordinator) record(table string, out writeOutcome) {
	switch out {
	case outcomeInserted:
		c.report.Inserted(table)
	case outcomeUpdated:
		c.report.Updated(table)
	case outcomeUnchanged:
		c.report.Unchanged(table)
	}
}

// playerFromProspect seeds a minimal player row from a draft snapshot. The
// name and birth date become the immutable base that later roster syncs will
// not overwrite.
func playerFromProspect(rec draft.Record) player.Player {
	return player.Player{
		ID:            rec.PlayerID,
		FullName:      rec.FirstName + " " + rec.LastName,
		BirthDate:     rec.BirthDate,
		Height:        rec.Height,
		Weight:        rec.Weight,
		ShootsCatches: rec.ShootsCatches,
		PositionName:  rec.Position,
	}
}
