package player

import "fmt"

// PositionType is the coarse role classification from the league feed.
type PositionType string

const (
	PositionTypeForward    PositionType = "Forward"
	PositionTypeDefenseman PositionType = "Defenseman"
	PositionTypeGoalie     PositionType = "Goalie"
)

// Player is one athlete keyed by the league-assigned player id.
//
// FullName and BirthDate are immutable once set: later syncs may fill them if
// they were missing but never overwrite them. Active, Rookie and the position
// fields track the feed.
type Player struct {
	ID            int64
	FullName      string
	BirthDate     string
	Nationality   string
	Height        string
	Weight        int64
	ShootsCatches string
	PositionCode  string
	PositionName  string
	PositionType  PositionType
	Active        bool
	Rookie        bool
}

// IsGoalie reports whether stat payloads for this player belong in the goalie
// table rather than the skater table.
func (p Player) IsGoalie() bool {
	return p.PositionType == PositionTypeGoalie || p.PositionCode == "G"
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id is required")
	}
	if p.FullName == "" {
		return fmt.Errorf("player full name is required")
	}

	return nil
}
