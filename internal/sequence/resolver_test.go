package sequence

import (
	"errors"
	"testing"

	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
)

var key = stint.NaturalKey{PlayerID: 8478402, TeamID: 22, Season: "20252026"}

func existingStint(teamID int64, seq int, active bool) stint.Stint {
	return stint.Stint{
		PlayerID: key.PlayerID,
		TeamID:   teamID,
		Season:   key.Season,
		Sequence: seq,
		Active:   active,
	}
}

func TestResolve_FirstDiscoveryStartsAtOne(t *testing.T) {
	d, err := Resolve(Incoming{Key: key, Active: true}, nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Action != ActionInsert {
		t.Fatalf("unexpected action: %s", d.Action)
	}
	if d.Sequence != 1 {
		t.Fatalf("unexpected sequence: %d", d.Sequence)
	}
	if len(d.Deactivate) != 0 {
		t.Fatalf("unexpected deactivations: %v", d.Deactivate)
	}
}

func TestResolve_IdenticalContentIsNoop(t *testing.T) {
	existing := []Existing{
		{Stint: existingStint(22, 1, true), Identical: true, Accumulates: true},
	}

	d, err := Resolve(Incoming{Key: key, Active: true}, existing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Action != ActionNoop {
		t.Fatalf("unexpected action: %s", d.Action)
	}
	if d.Sequence != 1 {
		t.Fatalf("unexpected sequence: %d", d.Sequence)
	}
}

func TestResolve_IdenticalContentActiveFlipIsRefresh(t *testing.T) {
	existing := []Existing{
		{Stint: existingStint(22, 1, true), Identical: true, Accumulates: true},
	}

	d, err := Resolve(Incoming{Key: key, Active: false}, existing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Action != ActionRefresh {
		t.Fatalf("unexpected action: %s", d.Action)
	}
	if d.Sequence != 1 {
		t.Fatalf("unexpected sequence: %d", d.Sequence)
	}
}

func TestResolve_AccumulatingContentRefreshesLatestStint(t *testing.T) {
	existing := []Existing{
		{Stint: existingStint(22, 1, true), Accumulates: true},
	}

	d, err := Resolve(Incoming{Key: key, Active: true}, existing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Action != ActionRefresh {
		t.Fatalf("unexpected action: %s", d.Action)
	}
	if d.Sequence != 1 {
		t.Fatalf("unexpected sequence: %d", d.Sequence)
	}
}

func TestResolve_RegressedContentOpensNewStint(t *testing.T) {
	// Counters went backwards against the newest stored stint: the player left
	// and re-joined, so a second stint opens rather than rewriting history.
	existing := []Existing{
		{Stint: existingStint(22, 1, false)},
	}

	d, err := Resolve(Incoming{Key: key, Active: true}, existing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Action != ActionInsert {
		t.Fatalf("unexpected action: %s", d.Action)
	}
	if d.Sequence != 2 {
		t.Fatalf("unexpected sequence: %d", d.Sequence)
	}
}

func TestResolve_RefreshOnlyTargetsNewestStint(t *testing.T) {
	// Sequence 1 is frozen history even when its content matches; only the
	// highest sequence on the team can absorb a refresh.
	existing := []Existing{
		{Stint: existingStint(22, 1, false), Identical: true, Accumulates: true},
		{Stint: existingStint(22, 2, true), Accumulates: true},
	}

	d, err := Resolve(Incoming{Key: key, Active: true}, existing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Action != ActionRefresh {
		t.Fatalf("unexpected action: %s", d.Action)
	}
	if d.Sequence != 2 {
		t.Fatalf("unexpected sequence: %d", d.Sequence)
	}
}

func TestResolve_TradeDeactivatesPriorTeamStint(t *testing.T) {
	// The new club's stint continues the player's season numbering: team 10
	// holds sequence 1, so the incoming team opens sequence 2.
	existing := []Existing{
		{Stint: existingStint(10, 1, true)},
	}

	d, err := Resolve(Incoming{Key: key, Active: true}, existing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Action != ActionInsert {
		t.Fatalf("unexpected action: %s", d.Action)
	}
	if d.Sequence != 2 {
		t.Fatalf("unexpected sequence: %d", d.Sequence)
	}
	if len(d.Deactivate) != 1 {
		t.Fatalf("expected one deactivation, got %v", d.Deactivate)
	}
	want := stint.Key{PlayerID: key.PlayerID, TeamID: 10, Season: key.Season, Sequence: 1}
	if d.Deactivate[0] != want {
		t.Fatalf("unexpected deactivation target: %s", d.Deactivate[0])
	}
}

func TestResolve_SeasonNumberingSpansEveryTeam(t *testing.T) {
	existing := []Existing{
		{Stint: existingStint(10, 1, false)},
		{Stint: existingStint(20, 2, false)},
	}

	d, err := Resolve(Incoming{Key: key, Active: true}, existing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Action != ActionInsert {
		t.Fatalf("unexpected action: %s", d.Action)
	}
	if d.Sequence != 3 {
		t.Fatalf("unexpected sequence: %d", d.Sequence)
	}
}

func TestResolve_InactiveIncomingNeverDeactivates(t *testing.T) {
	existing := []Existing{
		{Stint: existingStint(10, 1, true), SeenThisRun: true},
	}

	d, err := Resolve(Incoming{Key: key, Active: false}, existing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Action != ActionInsert {
		t.Fatalf("unexpected action: %s", d.Action)
	}
	if d.Sequence != 2 {
		t.Fatalf("unexpected sequence: %d", d.Sequence)
	}
	if len(d.Deactivate) != 0 {
		t.Fatalf("unexpected deactivations: %v", d.Deactivate)
	}
}

func TestResolve_SameRunActiveClashIsConflict(t *testing.T) {
	// Both teams claim the player's active stint within one run: no ordering
	// signal exists between the two rows.
	existing := []Existing{
		{Stint: existingStint(10, 1, true), SeenThisRun: true},
	}

	_, err := Resolve(Incoming{Key: key, Active: true}, existing)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestResolve_ActiveRefreshKeepsOwnRowOutOfDeactivations(t *testing.T) {
	existing := []Existing{
		{Stint: existingStint(22, 1, true), Accumulates: true},
		{Stint: existingStint(10, 1, true)},
	}

	d, err := Resolve(Incoming{Key: key, Active: true}, existing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if d.Action != ActionRefresh {
		t.Fatalf("unexpected action: %s", d.Action)
	}
	if len(d.Deactivate) != 1 {
		t.Fatalf("expected one deactivation, got %v", d.Deactivate)
	}
	if d.Deactivate[0].TeamID != 10 {
		t.Fatalf("deactivated the wrong stint: %s", d.Deactivate[0])
	}
}
