// Package normalize flattens raw NHL Stats API records into the relational
// rows of the canonical schema. Normalization is deterministic: the same raw
// record always yields the same rows, so re-running ingestion over an
// unchanged feed produces byte-identical output.
package normalize

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/pucktrack/nhl-ingest/internal/domain/player"
	"github.com/pucktrack/nhl-ingest/internal/domain/team"
)

// NHLLeagueName filters season splits down to NHL play; everything else in a
// player's year-by-year history is minor/junior/European data.
const NHLLeagueName = "National Hockey League"

var (
	// ErrMalformedRecord marks records missing a required natural-key field.
	// Such records are reported and skipped, never written.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrRoleMismatch marks a stat payload whose kind (skater vs goalie)
	// contradicts the player's position classification.
	ErrRoleMismatch = errors.New("stat payload does not match player role")
)

// Normalizer maps raw feed records onto typed rows. It holds no mutable
// state; one instance serves all workers.
type Normalizer struct {
	validate *validator.Validate
}

func New() *Normalizer {
	return &Normalizer{validate: validator.New()}
}

type teamKeyFields struct {
	ID          int64  `validate:"required,gt=0"`
	Name        string `validate:"required"`
	FranchiseID int64  `validate:"required,gt=0"`
}

// Team flattens one raw team record, resolving the nested conference,
// division and franchise references into scalar foreign keys.
func (n *Normalizer) Team(rec RawRecord) (team.Team, error) {
	out := team.Team{
		ID:           rec.Int64("id"),
		Name:         rec.Str("name"),
		Abbreviation: rec.Str("abbreviation"),
		ConferenceID: rec.Child("conference").Int64("id"),
		DivisionID:   rec.Child("division").Int64("id"),
		FranchiseID:  rec.Child("franchise").Int64("franchiseId"),
		Active:       rec.Bool("active"),
	}

	keys := teamKeyFields{ID: out.ID, Name: out.Name, FranchiseID: out.FranchiseID}
	if err := n.validate.Struct(keys); err != nil {
		return team.Team{}, fmt.Errorf("%w: team record: %v", ErrMalformedRecord, err)
	}

	return out, nil
}

type playerKeyFields struct {
	ID       int64  `validate:"required,gt=0"`
	FullName string `validate:"required"`
}

// Player flattens one raw people record. The embedded primaryPosition object
// becomes the three scalar position columns.
func (n *Normalizer) Player(rec RawRecord) (player.Player, error) {
	position := rec.Child("primaryPosition")
	out := player.Player{
		ID:            rec.Int64("id"),
		FullName:      rec.Str("fullName"),
		BirthDate:     rec.Str("birthDate"),
		Nationality:   rec.Str("nationality"),
		Height:        rec.Str("height"),
		Weight:        rec.Int64("weight"),
		ShootsCatches: rec.Str("shootsCatches"),
		PositionCode:  position.Str("abbreviation"),
		PositionName:  position.Str("name"),
		PositionType:  player.PositionType(position.Str("type")),
		Active:        rec.Bool("active"),
		Rookie:        rec.Bool("rookie"),
	}
	if out.PositionCode == "" {
		out.PositionCode = position.Str("code")
	}

	keys := playerKeyFields{ID: out.ID, FullName: out.FullName}
	if err := n.validate.Struct(keys); err != nil {
		return player.Player{}, fmt.Errorf("%w: player record: %v", ErrMalformedRecord, err)
	}

	return out, nil
}
