package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/pucktrack/nhl-ingest/internal/domain/player"
)

type PlayerRepository struct {
	s *Store
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID int64) (player.Player, bool, error) {
	unlock := r.s.readLock()
	defer unlock()

	item, ok := r.s.st.data.players[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) ListIDs(_ context.Context) ([]int64, error) {
	unlock := r.s.readLock()
	defer unlock()

	d := r.s.st.data
	out := make([]int64, 0, len(d.players))
	for id := range d.players {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *PlayerRepository) Insert(_ context.Context, item player.Player) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	if _, exists := d.players[item.ID]; exists {
		return fmt.Errorf("player %d already exists", item.ID)
	}
	d.players[item.ID] = item
	return nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	if _, exists := d.players[item.ID]; !exists {
		return fmt.Errorf("player %d not found", item.ID)
	}
	d.players[item.ID] = item
	return nil
}
