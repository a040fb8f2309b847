// Package sequence decides how an incoming affiliation or stat row relates to
// the stint history already persisted under its natural key: same stint
// refreshed, a brand-new stint, or nothing at all.
//
// Sequence values are owned by the resolver. The feed's own sequenceNumber
// field is deliberately not trusted: values are assigned densely from 1 per
// (player, season) in discovery order, and the feed's ordering is the only
// ordering signal. A traded player's stint with the new club continues the
// season numbering rather than restarting at 1.
package sequence

import (
	"errors"
	"fmt"

	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
)

// ErrConflict reports an ambiguous resolution: the incoming row claims the
// active stint for a (player, season) while another team's active stint was
// discovered in the same run, leaving no ordering signal between the two.
// The caller must resolve conservatively (keep the existing active stint)
// rather than guess.
var ErrConflict = errors.New("ambiguous stint ordering")

type Action int

const (
	// ActionInsert writes a new stint row at Decision.Sequence.
	ActionInsert Action = iota + 1
	// ActionRefresh updates mutable content of the row at Decision.Sequence.
	ActionRefresh
	// ActionNoop means the stored row already matches; no write is issued.
	ActionNoop
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionRefresh:
		return "refresh"
	case ActionNoop:
		return "noop"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Incoming is the row under resolution, reduced to what the resolver needs.
type Incoming struct {
	Key stint.NaturalKey
	// Active marks the row as describing the player's current stint.
	Active bool
}

// Existing is one already-persisted stint for the incoming row's
// (player, season), across all teams. Identical and Accumulates are computed
// by the caller, which holds the typed stat content; both are only meaningful
// for rows sharing the incoming row's full natural key.
type Existing struct {
	Stint stint.Stint
	// SeenThisRun marks stints first written during the current ingestion
	// run, i.e. rows with no persisted ordering relative to the incoming row.
	SeenThisRun bool
	// Identical: stored content materially equals the incoming content.
	Identical bool
	// Accumulates: incoming content reads as a later snapshot of this row
	// (counters monotonically non-decreasing).
	Accumulates bool
}

// Decision is the resolver's verdict for one incoming row.
type Decision struct {
	Action   Action
	Sequence int
	// Deactivate lists stints whose active flag must be cleared so that at
	// most one stint per (player, season) stays active.
	Deactivate []stint.Key
}

// Resolve assigns the sequence for one incoming row given every persisted
// stint sharing its (player, season). Existing rows may be in any order.
func Resolve(in Incoming, existing []Existing) (Decision, error) {
	latest, seasonMax := survey(in.Key, existing)

	var d Decision
	switch {
	case latest == nil:
		// First stint with this club: continue the player's season numbering.
		d = Decision{Action: ActionInsert, Sequence: seasonMax + 1}
	case latest.Identical && latest.Stint.Active == in.Active:
		return Decision{Action: ActionNoop, Sequence: latest.Stint.Sequence}, nil
	case latest.Identical || latest.Accumulates:
		d = Decision{Action: ActionRefresh, Sequence: latest.Stint.Sequence}
	default:
		// Content regressed against the newest stint on this team: the feed
		// is describing a later, separate stint (left and re-joined).
		d = Decision{Action: ActionInsert, Sequence: seasonMax + 1}
	}

	if !in.Active {
		return d, nil
	}

	for i := range existing {
		other := &existing[i]
		if !other.Stint.Active {
			continue
		}
		if other.Stint.NaturalKey() == in.Key && other.Stint.Sequence == d.Sequence {
			continue
		}
		if other.Stint.NaturalKey() != in.Key && other.SeenThisRun {
			return Decision{}, fmt.Errorf("%w: %s vs active %s", ErrConflict, in.Key, other.Stint.Key())
		}
		d.Deactivate = append(d.Deactivate, other.Stint.Key())
	}

	return d, nil
}

// survey returns the highest-sequence existing row sharing the full natural
// key, plus the highest sequence held by any of the player's stints for the
// season (0 when none exist). Earlier same-team stints are frozen history;
// only the newest one can absorb a refresh, while every insert continues the
// season-wide numbering.
func survey(key stint.NaturalKey, existing []Existing) (*Existing, int) {
	var latest *Existing
	seasonMax := 0
	for i := range existing {
		row := &existing[i]
		if row.Stint.Sequence > seasonMax {
			seasonMax = row.Stint.Sequence
		}
		if row.Stint.NaturalKey() != key {
			continue
		}
		if latest == nil || row.Stint.Sequence > latest.Stint.Sequence {
			latest = row
		}
	}
	return latest, seasonMax
}
