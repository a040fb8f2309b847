package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/pucktrack/nhl-ingest/internal/domain/team"
)

type TeamRepository struct {
	s *Store
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	unlock := r.s.readLock()
	defer unlock()

	item, ok := r.s.st.data.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) GetByFranchiseID(_ context.Context, franchiseID int64) (team.Team, bool, error) {
	unlock := r.s.readLock()
	defer unlock()

	for _, item := range r.s.st.data.teams {
		if item.FranchiseID == franchiseID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	unlock := r.s.readLock()
	defer unlock()

	d := r.s.st.data
	out := make([]team.Team, 0, len(d.teams))
	for _, item := range d.teams {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) Insert(_ context.Context, item team.Team) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	if _, exists := d.teams[item.ID]; exists {
		return fmt.Errorf("team %d already exists", item.ID)
	}
	for _, row := range d.teams {
		if row.FranchiseID == item.FranchiseID {
			return fmt.Errorf("franchise %d already exists under team %d", item.FranchiseID, row.ID)
		}
	}
	d.teams[item.ID] = item
	return nil
}

// Update rewrites the franchise's row in place, keyed by FranchiseID so a
// reassigned team id replaces the old row rather than duplicating it. Rows
// referencing the old id follow it, mirroring the schema's ON UPDATE CASCADE
// foreign keys.
func (r *TeamRepository) Update(_ context.Context, item team.Team) error {
	unlock := r.s.writeLock()
	defer unlock()

	d := r.s.st.data
	for id, row := range d.teams {
		if row.FranchiseID != item.FranchiseID {
			continue
		}
		if id != item.ID {
			delete(d.teams, id)
			d.rekeyTeam(id, item.ID)
		}
		d.teams[item.ID] = item
		return nil
	}
	return fmt.Errorf("franchise %d not found", item.FranchiseID)
}

// rekeyTeam moves every row referencing oldID under newID.
func (d *data) rekeyTeam(oldID, newID int64) {
	for key, row := range d.stints {
		if key.TeamID != oldID {
			continue
		}
		delete(d.stints, key)
		row.TeamID = newID
		d.stints[row.Key()] = row
	}
	for key, row := range d.skaters {
		if key.TeamID != oldID {
			continue
		}
		delete(d.skaters, key)
		row.TeamID = newID
		d.skaters[row.Key()] = row
	}
	for key, row := range d.goalies {
		if key.TeamID != oldID {
			continue
		}
		delete(d.goalies, key)
		row.TeamID = newID
		d.goalies[row.Key()] = row
	}
	for key, row := range d.records {
		if row.TeamID != oldID {
			continue
		}
		row.TeamID = newID
		d.records[key] = row
	}
}
