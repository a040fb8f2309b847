package memory

import (
	"context"
	"fmt"

	"github.com/pucktrack/nhl-ingest/internal/domain/seasonstats"
	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
)

type SeasonStatsRepository struct {
	s *Store
}

func (r *SeasonStatsRepository) GetSkater(_ context.Context, key stint.Key) (seasonstats.SkaterSeason, bool, error) {
	unlock := r.s.readLock()
	defer unlock()

	item, ok := r.s.st.data.skaters[key]
	return item, ok, nil
}

func (r *SeasonStatsRepository) InsertSkater(_ context.Context, item seasonstats.SkaterSeason) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	if _, exists := d.skaters[item.Key()]; exists {
		return fmt.Errorf("skater season %s already exists", item.Key())
	}
	d.skaters[item.Key()] = item
	return nil
}

func (r *SeasonStatsRepository) UpdateSkater(_ context.Context, item seasonstats.SkaterSeason) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	if _, exists := d.skaters[item.Key()]; !exists {
		return fmt.Errorf("skater season %s not found", item.Key())
	}
	d.skaters[item.Key()] = item
	return nil
}

func (r *SeasonStatsRepository) GetGoalie(_ context.Context, key stint.Key) (seasonstats.GoalieSeason, bool, error) {
	unlock := r.s.readLock()
	defer unlock()

	item, ok := r.s.st.data.goalies[key]
	return item, ok, nil
}

func (r *SeasonStatsRepository) InsertGoalie(_ context.Context, item seasonstats.GoalieSeason) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	if _, exists := d.goalies[item.Key()]; exists {
		return fmt.Errorf("goalie season %s already exists", item.Key())
	}
	d.goalies[item.Key()] = item
	return nil
}

func (r *SeasonStatsRepository) UpdateGoalie(_ context.Context, item seasonstats.GoalieSeason) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	if _, exists := d.goalies[item.Key()]; !exists {
		return fmt.Errorf("goalie season %s not found", item.Key())
	}
	d.goalies[item.Key()] = item
	return nil
}
