// Package memory holds in-memory implementations of the ingestion
// repositories, used by tests. Repositories are views over one shared data
// set behind a store-wide lock. A transactional scope holds that lock
// exclusively for its whole lifetime, so a rollback can never clobber a
// write issued by another worker: outside writes block until the scope ends.
package memory

import (
	"context"
	"sync"

	"github.com/pucktrack/nhl-ingest/internal/domain/draft"
	"github.com/pucktrack/nhl-ingest/internal/domain/player"
	"github.com/pucktrack/nhl-ingest/internal/domain/seasonstats"
	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
	"github.com/pucktrack/nhl-ingest/internal/domain/team"
	"github.com/pucktrack/nhl-ingest/internal/ingest"
)

type data struct {
	teams   map[int64]team.Team
	players map[int64]player.Player
	stints  map[stint.Key]stint.Stint
	skaters map[stint.Key]seasonstats.SkaterSeason
	goalies map[stint.Key]seasonstats.GoalieSeason
	records map[recordKey]draft.Record
	juniors map[juniorKey]draft.JuniorSeason
}

func newData() *data {
	return &data{
		teams:   make(map[int64]team.Team),
		players: make(map[int64]player.Player),
		stints:  make(map[stint.Key]stint.Stint),
		skaters: make(map[stint.Key]seasonstats.SkaterSeason),
		goalies: make(map[stint.Key]seasonstats.GoalieSeason),
		records: make(map[recordKey]draft.Record),
		juniors: make(map[juniorKey]draft.JuniorSeason),
	}
}

func (d *data) clone() *data {
	out := &data{
		teams:   make(map[int64]team.Team, len(d.teams)),
		players: make(map[int64]player.Player, len(d.players)),
		stints:  make(map[stint.Key]stint.Stint, len(d.stints)),
		skaters: make(map[stint.Key]seasonstats.SkaterSeason, len(d.skaters)),
		goalies: make(map[stint.Key]seasonstats.GoalieSeason, len(d.goalies)),
		records: make(map[recordKey]draft.Record, len(d.records)),
		juniors: make(map[juniorKey]draft.JuniorSeason, len(d.juniors)),
	}
	for k, v := range d.teams {
		out.teams[k] = v
	}
	for k, v := range d.players {
		out.players[k] = v
	}
	for k, v := range d.stints {
		out.stints[k] = v
	}
	for k, v := range d.skaters {
		out.skaters[k] = v
	}
	for k, v := range d.goalies {
		out.goalies[k] = v
	}
	for k, v := range d.records {
		out.records[k] = v
	}
	for k, v := range d.juniors {
		out.juniors[k] = v
	}
	return out
}

// state is shared between the root store and the views WithinTx hands out.
type state struct {
	mu   sync.RWMutex
	data *data
}

type Store struct {
	st *state
	// inTx marks the view passed into a transactional scope: the scope already
	// holds the store-wide lock, so its repository calls skip locking.
	inTx bool

	teams   *TeamRepository
	players *PlayerRepository
	stints  *StintRepository
	stats   *SeasonStatsRepository
	drafts  *DraftRepository
}

func NewStore() *Store {
	return newStore(&state{data: newData()}, false)
}

func newStore(st *state, inTx bool) *Store {
	s := &Store{st: st, inTx: inTx}
	s.teams = &TeamRepository{s: s}
	s.players = &PlayerRepository{s: s}
	s.stints = &StintRepository{s: s}
	s.stats = &SeasonStatsRepository{s: s}
	s.drafts = &DraftRepository{s: s}
	return s
}

func (s *Store) Teams() team.Repository              { return s.teams }
func (s *Store) Players() player.Repository          { return s.players }
func (s *Store) Stints() stint.Repository            { return s.stints }
func (s *Store) SeasonStats() seasonstats.Repository { return s.stats }
func (s *Store) Drafts() draft.Repository            { return s.drafts }

func (s *Store) readLock() func() {
	if s.inTx {
		return func() {}
	}
	s.st.mu.RLock()
	return s.st.mu.RUnlock
}

func (s *Store) writeLock() func() {
	if s.inTx {
		return func() {}
	}
	s.st.mu.Lock()
	return s.st.mu.Unlock
}

// WithinTx holds the store-wide lock across the whole scope and rolls the
// data set back to its pre-scope snapshot when fn fails. Nested calls reuse
// the already-open transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ingest.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.st.mu.Lock()
	defer s.st.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.st.data.clone()
	if err := fn(newStore(s.st, true)); err != nil {
		s.st.data = snap
		return err
	}
	return nil
}
