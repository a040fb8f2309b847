package normalize

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pucktrack/nhl-ingest/internal/domain/player"
)

func rawTeam() RawRecord {
	return RawRecord{
		"id":           float64(22),
		"name":         "Edmonton Oilers",
		"abbreviation": "EDM",
		"active":       true,
		"conference":   map[string]any{"id": float64(5), "name": "Western"},
		"division":     map[string]any{"id": float64(16), "name": "Pacific"},
		"franchise":    map[string]any{"franchiseId": float64(25), "teamName": "Oilers"},
	}
}

func rawPlayer() RawRecord {
	return RawRecord{
		"id":            float64(8478402),
		"fullName":      "Connor McDavid",
		"birthDate":     "1997-01-13",
		"nationality":   "CAN",
		"height":        `6' 1"`,
		"weight":        float64(194),
		"shootsCatches": "L",
		"active":        true,
		"rookie":        false,
		"primaryPosition": map[string]any{
			"code":         "C",
			"abbreviation": "C",
			"name":         "Center",
			"type":         "Forward",
		},
	}
}

func TestTeam_FlattensNestedReferences(t *testing.T) {
	n := New()

	got, err := n.Team(rawTeam())
	if err != nil {
		t.Fatalf("normalize team: %v", err)
	}
	if got.ID != 22 || got.Name != "Edmonton Oilers" || got.Abbreviation != "EDM" {
		t.Fatalf("unexpected team: %+v", got)
	}
	if got.ConferenceID != 5 || got.DivisionID != 16 || got.FranchiseID != 25 {
		t.Fatalf("nested references not flattened: %+v", got)
	}
	if !got.Active {
		t.Fatalf("expected active team")
	}
}

func TestTeam_MissingKeyFieldsRejected(t *testing.T) {
	n := New()

	cases := []struct {
		name   string
		mutate func(RawRecord)
	}{
		{"missing id", func(r RawRecord) { delete(r, "id") }},
		{"missing name", func(r RawRecord) { delete(r, "name") }},
		{"missing franchise", func(r RawRecord) { delete(r, "franchise") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := rawTeam()
			tc.mutate(rec)
			if _, err := n.Team(rec); !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("expected ErrMalformedRecord, got %v", err)
			}
		})
	}
}

func TestPlayer_FlattensPosition(t *testing.T) {
	n := New()

	got, err := n.Player(rawPlayer())
	if err != nil {
		t.Fatalf("normalize player: %v", err)
	}
	if got.ID != 8478402 || got.FullName != "Connor McDavid" {
		t.Fatalf("unexpected player: %+v", got)
	}
	if got.PositionCode != "C" || got.PositionName != "Center" {
		t.Fatalf("position not flattened: %+v", got)
	}
	if got.PositionType != player.PositionTypeForward {
		t.Fatalf("unexpected position type: %s", got.PositionType)
	}
}

func TestPlayer_PositionCodeFallsBackToCode(t *testing.T) {
	n := New()
	rec := rawPlayer()
	delete(rec.Child("primaryPosition"), "abbreviation")

	got, err := n.Player(rec)
	if err != nil {
		t.Fatalf("normalize player: %v", err)
	}
	if got.PositionCode != "C" {
		t.Fatalf("expected fallback to position code, got %q", got.PositionCode)
	}
}

func TestPlayer_MissingIDRejected(t *testing.T) {
	n := New()
	rec := rawPlayer()
	delete(rec, "id")

	if _, err := n.Player(rec); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func rawSkaterSplit() RawRecord {
	return RawRecord{
		"season": "20252026",
		"team":   map[string]any{"id": float64(22), "name": "Edmonton Oilers"},
		"league": map[string]any{"id": float64(133), "name": NHLLeagueName},
		"stat": map[string]any{
			"timeOnIce": "1634:12",
			"games":     float64(82),
			"goals":     float64(64),
			"assists":   float64(89),
			"points":    float64(153),
			"plusMinus": float64(22),
			"shifts":    float64(1856),
			"pim":       float64(36),
		},
	}
}

func rawGoalieSplit() RawRecord {
	return RawRecord{
		"season": "20252026",
		"team":   map[string]any{"id": float64(3), "name": "New York Rangers"},
		"league": map[string]any{"id": float64(133), "name": NHLLeagueName},
		"stat": map[string]any{
			"timeOnIce":      "3480:55",
			"games":          float64(61),
			"gamesStarted":   float64(60),
			"wins":           float64(37),
			"losses":         float64(18),
			"saves":          float64(1616),
			"shotsAgainst":   float64(1762),
			"goalsAgainst":   float64(146),
			"savePercentage": 0.917,
		},
	}
}

func skater() player.Player {
	return player.Player{ID: 8478402, FullName: "Connor McDavid", PositionCode: "C", PositionType: player.PositionTypeForward}
}

func goalie() player.Player {
	return player.Player{ID: 8478048, FullName: "Igor Shesterkin", PositionCode: "G", PositionType: player.PositionTypeGoalie}
}

func TestSeasonStats_SkaterSplit(t *testing.T) {
	n := New()

	row, err := n.SeasonStats(skater(), rawSkaterSplit())
	if err != nil {
		t.Fatalf("normalize season split: %v", err)
	}
	if row.Skater == nil || row.Goalie != nil {
		t.Fatalf("expected a skater row, got %+v", row)
	}
	if row.Skater.TeamID != 22 || row.Skater.Season != "20252026" {
		t.Fatalf("unexpected key fields: %+v", row.Skater)
	}
	if row.Skater.Goals != 64 || row.Skater.Points != 153 || row.Skater.PlusMinus != 22 {
		t.Fatalf("unexpected counters: %+v", row.Skater)
	}
	if row.Skater.Sequence != 0 {
		t.Fatalf("sequence must be unassigned, got %d", row.Skater.Sequence)
	}
}

func TestSeasonStats_GoalieSplit(t *testing.T) {
	n := New()

	row, err := n.SeasonStats(goalie(), rawGoalieSplit())
	if err != nil {
		t.Fatalf("normalize season split: %v", err)
	}
	if row.Goalie == nil || row.Skater != nil {
		t.Fatalf("expected a goalie row, got %+v", row)
	}
	if row.Goalie.Saves != 1616 || row.Goalie.SavePct != 0.917 {
		t.Fatalf("unexpected counters: %+v", row.Goalie)
	}
}

func TestSeasonStats_GoaliePayloadForForwardRejected(t *testing.T) {
	n := New()

	_, err := n.SeasonStats(skater(), rawGoalieSplit())
	if !errors.Is(err, ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got %v", err)
	}
}

func TestSeasonStats_SkaterPayloadForGoalieRejected(t *testing.T) {
	n := New()

	_, err := n.SeasonStats(goalie(), rawSkaterSplit())
	if !errors.Is(err, ErrRoleMismatch) {
		t.Fatalf("expected ErrRoleMismatch, got %v", err)
	}
}

func TestSeasonStats_SparseBlockAcceptedForBothRoles(t *testing.T) {
	n := New()
	rec := RawRecord{
		"season": "19421943",
		"team":   map[string]any{"id": float64(10)},
		"league": map[string]any{"name": NHLLeagueName},
		"stat":   map[string]any{"games": float64(48), "goals": float64(12)},
	}

	if _, err := n.SeasonStats(skater(), rec); err != nil {
		t.Fatalf("sparse block rejected for skater: %v", err)
	}
	if _, err := n.SeasonStats(goalie(), rec); err != nil {
		t.Fatalf("sparse block rejected for goalie: %v", err)
	}
}

func TestSeasonStats_MissingTeamRejected(t *testing.T) {
	n := New()
	rec := rawSkaterSplit()
	delete(rec, "team")

	if _, err := n.SeasonStats(skater(), rec); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestSeasonStats_Deterministic(t *testing.T) {
	n := New()

	first, err := n.SeasonStats(skater(), rawSkaterSplit())
	if err != nil {
		t.Fatalf("normalize season split: %v", err)
	}
	second, err := n.SeasonStats(skater(), rawSkaterSplit())
	if err != nil {
		t.Fatalf("normalize season split: %v", err)
	}
	if !reflect.DeepEqual(first.Skater, second.Skater) {
		t.Fatalf("renormalization diverged:\n%+v\n%+v", first.Skater, second.Skater)
	}
}

func TestIsNHLSplit(t *testing.T) {
	if !IsNHLSplit(rawSkaterSplit()) {
		t.Fatalf("NHL split not recognized")
	}
	junior := RawRecord{"league": map[string]any{"name": "OHL"}}
	if IsNHLSplit(junior) {
		t.Fatalf("junior split misclassified as NHL")
	}
}

func TestDraftRecord_JoinsPickAndProspect(t *testing.T) {
	n := New()
	pick := RawRecord{
		"round":       "1",
		"pickInRound": float64(1),
		"pickOverall": float64(1),
		"team":        map[string]any{"id": float64(22)},
		"prospect":    map[string]any{"id": float64(90001)},
	}
	prospect := RawRecord{
		"id":              float64(90001),
		"nhlPlayerId":     float64(8478402),
		"firstName":       "Connor",
		"lastName":        "McDavid",
		"birthDate":       "1997-01-13",
		"height":          `6' 1"`,
		"weight":          float64(194),
		"shootsCatches":   "L",
		"primaryPosition": map[string]any{"name": "Center"},
	}

	got, err := n.DraftRecord(2015, pick, prospect)
	if err != nil {
		t.Fatalf("normalize draft record: %v", err)
	}
	if got.PlayerID != 8478402 || got.DraftYear != 2015 || got.OverallPick != 1 {
		t.Fatalf("unexpected key fields: %+v", got)
	}
	if got.TeamID != 22 || got.ProspectID != 90001 || got.Position != "Center" {
		t.Fatalf("unexpected joined fields: %+v", got)
	}
}

func TestDraftRecord_MissingNHLPlayerIDRejected(t *testing.T) {
	n := New()
	pick := RawRecord{
		"round":       float64(1),
		"pickInRound": float64(1),
		"pickOverall": float64(1),
		"team":        map[string]any{"id": float64(22)},
	}
	prospect := RawRecord{"id": float64(90001), "firstName": "No", "lastName": "ID"}

	if _, err := n.DraftRecord(2015, pick, prospect); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestJuniorSeason_Flattens(t *testing.T) {
	n := New()
	rec := RawRecord{
		"season": "20142015",
		"team":   map[string]any{"name": "Erie Otters"},
		"league": map[string]any{"name": "OHL"},
		"stat": map[string]any{
			"games":   float64(47),
			"goals":   float64(44),
			"assists": float64(76),
			"points":  float64(120),
			"pim":     float64(20),
		},
	}

	got, err := n.JuniorSeason(8478402, rec)
	if err != nil {
		t.Fatalf("normalize junior season: %v", err)
	}
	if got.League != "OHL" || got.TeamName != "Erie Otters" {
		t.Fatalf("unexpected discriminator fields: %+v", got)
	}
	if got.Points != 120 {
		t.Fatalf("unexpected counters: %+v", got)
	}
}

func TestJuniorSeason_BadSeasonRejected(t *testing.T) {
	n := New()
	rec := RawRecord{
		"season": "2014-15",
		"league": map[string]any{"name": "OHL"},
		"stat":   map[string]any{},
	}

	if _, err := n.JuniorSeason(8478402, rec); !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
}
