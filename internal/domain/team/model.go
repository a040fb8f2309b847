package team

import "fmt"

// Team is one NHL club as the league currently registers it.
//
// ID is the league-assigned team id and may be reassigned on realignment.
// FranchiseID is immutable and unique; it is the stable identity that links a
// club across relocations and renames.
type Team struct {
	ID           int64
	Name         string
	Abbreviation string
	ConferenceID int64
	DivisionID   int64
	FranchiseID  int64
	Active       bool
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.FranchiseID <= 0 {
		return fmt.Errorf("team franchise id is required")
	}

	return nil
}
