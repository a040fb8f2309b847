package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
)

type StintRepository struct {
	s *Store
}

func (r *StintRepository) Get(_ context.Context, key stint.Key) (stint.Stint, bool, error) {
	unlock := r.s.readLock()
	defer unlock()

	item, ok := r.s.st.data.stints[key]
	return item, ok, nil
}

func (r *StintRepository) ListByPlayerSeason(_ context.Context, playerID int64, season string) ([]stint.Stint, error) {
	unlock := r.s.readLock()
	defer unlock()

	var out []stint.Stint
	for _, item := range r.s.st.data.stints {
		if item.PlayerID == playerID && item.Season == season {
			out = append(out, item)
		}
	}
	sortStints(out)
	return out, nil
}

func (r *StintRepository) Insert(_ context.Context, item stint.Stint) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	if _, exists := d.stints[item.Key()]; exists {
		return fmt.Errorf("stint %s already exists", item.Key())
	}
	d.stints[item.Key()] = item
	return nil
}

func (r *StintRepository) Update(_ context.Context, item stint.Stint) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	if _, exists := d.stints[item.Key()]; !exists {
		return fmt.Errorf("stint %s not found", item.Key())
	}
	d.stints[item.Key()] = item
	return nil
}

func sortStints(items []stint.Stint) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].TeamID != items[j].TeamID {
			return items[i].TeamID < items[j].TeamID
		}
		return items[i].Sequence < items[j].Sequence
	})
}
