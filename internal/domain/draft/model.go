package draft

import "fmt"

// Record is one player's entry-draft selection, with the prospect's
// biographical snapshot as it stood at draft time. Keyed by
// (player id, draft year); a player re-entering the draft produces a second
// record under the later year.
type Record struct {
	PlayerID    int64
	DraftYear   int
	Round       int
	RoundPick   int
	OverallPick int
	TeamID      int64

	ProspectID    int64
	FirstName     string
	LastName      string
	BirthDate     string
	Height        string
	Weight        int64
	ShootsCatches string
	Position      string
}

func (r Record) Validate() error {
	if r.PlayerID <= 0 {
		return fmt.Errorf("draft record player id is required")
	}
	if r.DraftYear <= 0 {
		return fmt.Errorf("draft record draft year is required")
	}
	if r.OverallPick <= 0 {
		return fmt.Errorf("draft record overall pick is required")
	}

	return nil
}

// JuniorSeason is one junior-league season line for a drafted prospect.
// Junior history is only tracked for players with a draft record. Teams in
// junior leagues have no league-assigned id, so the stint discriminator is
// (season, sequence) with the team carried by name.
type JuniorSeason struct {
	PlayerID int64
	Season   string
	Sequence int
	League   string
	TeamName string

	Games   int
	Goals   int
	Assists int
	Points  int
	PIM     int
}

func (j JuniorSeason) Identical(other JuniorSeason) bool {
	j.Sequence = other.Sequence
	return j == other
}

func (j JuniorSeason) Validate() error {
	if j.PlayerID <= 0 {
		return fmt.Errorf("junior season player id is required")
	}
	if j.Season == "" {
		return fmt.Errorf("junior season season is required")
	}
	if j.League == "" {
		return fmt.Errorf("junior season league is required")
	}

	return nil
}
