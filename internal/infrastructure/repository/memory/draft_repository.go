package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/pucktrack/nhl-ingest/internal/domain/draft"
)

type recordKey struct {
	playerID  int64
	draftYear int
}

type juniorKey struct {
	playerID int64
	season   string
	sequence int
}

type DraftRepository struct {
	s *Store
}

func (r *DraftRepository) GetRecord(_ context.Context, playerID int64, draftYear int) (draft.Record, bool, error) {
	unlock := r.s.readLock()
	defer unlock()

	item, ok := r.s.st.data.records[recordKey{playerID: playerID, draftYear: draftYear}]
	return item, ok, nil
}

func (r *DraftRepository) HasRecordForPlayer(_ context.Context, playerID int64) (bool, error) {
	unlock := r.s.readLock()
	defer unlock()

	for key := range r.s.st.data.records {
		if key.playerID == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *DraftRepository) InsertRecord(_ context.Context, item draft.Record) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	key := recordKey{playerID: item.PlayerID, draftYear: item.DraftYear}
	if _, exists := d.records[key]; exists {
		return fmt.Errorf("draft record player=%d year=%d already exists", item.PlayerID, item.DraftYear)
	}
	d.records[key] = item
	return nil
}

func (r *DraftRepository) UpdateRecord(_ context.Context, item draft.Record) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	key := recordKey{playerID: item.PlayerID, draftYear: item.DraftYear}
	if _, exists := d.records[key]; !exists {
		return fmt.Errorf("draft record player=%d year=%d not found", item.PlayerID, item.DraftYear)
	}
	d.records[key] = item
	return nil
}

func (r *DraftRepository) ListJuniorSeasons(_ context.Context, playerID int64, season string) ([]draft.JuniorSeason, error) {
	unlock := r.s.readLock()
	defer unlock()

	var out []draft.JuniorSeason
	for _, item := range r.s.st.data.juniors {
		if item.PlayerID == playerID && item.Season == season {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (r *DraftRepository) InsertJuniorSeason(_ context.Context, item draft.JuniorSeason) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	key := juniorKey{playerID: item.PlayerID, season: item.Season, sequence: item.Sequence}
	if _, exists := d.juniors[key]; exists {
		return fmt.Errorf("junior season player=%d season=%s seq=%d already exists", item.PlayerID, item.Season, item.Sequence)
	}
	d.juniors[key] = item
	return nil
}

func (r *DraftRepository) UpdateJuniorSeason(_ context.Context, item draft.JuniorSeason) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	key := juniorKey{playerID: item.PlayerID, season: item.Season, sequence: item.Sequence}
	if _, exists := d.juniors[key]; !exists {
		return fmt.Errorf("junior season player=%d season=%s seq=%d not found", item.PlayerID, item.Season, item.Sequence)
	}
	d.juniors[key] = item
	return nil
}
