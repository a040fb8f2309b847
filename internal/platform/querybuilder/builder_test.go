package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelect_WhereAndOrder(t *testing.T) {
	query, args, err := Select("*").From("team_players").
		Where(Eq("player_id", int64(8478402)), Eq("season", "20252026")).
		OrderBy("sequence").
		ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := "SELECT * FROM team_players WHERE player_id = $1 AND season = $2 ORDER BY sequence"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{int64(8478402), "20252026"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestSelect_MissingTableOrColumns(t *testing.T) {
	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatalf("expected error without a table")
	}
	if _, _, err := Select().From("teams").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
}

func TestUpdate_PlaceholdersSpanSetsAndWhere(t *testing.T) {
	query, args, err := Update("teams").
		Set("name", "Utah Mammoth").
		Set("active", true).
		Where(Eq("franchise_id", int64(40))).
		ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := "UPDATE teams SET name = $1, active = $2 WHERE franchise_id = $3"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if len(args) != 3 || args[2] != int64(40) {
		t.Fatalf("args = %v", args)
	}
}

func TestUpdate_RequiresSets(t *testing.T) {
	if _, _, err := Update("teams").Where(Eq("id", 1)).ToSQL(); err == nil {
		t.Fatalf("expected error without sets")
	}
}

func TestInsertModel_UsesDBTags(t *testing.T) {
	type row struct {
		PlayerID int64  `db:"player_id"`
		Season   string `db:"season"`
		Skipped  string `db:"-"`
		Untagged string
	}

	query, args, err := InsertModel("junior_season_stats", row{PlayerID: 1, Season: "20142015", Skipped: "x"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := "INSERT INTO junior_season_stats (player_id, season) VALUES ($1, $2)"
	if query != want {
		t.Fatalf("query = %q, want %q", query, want)
	}
	if !reflect.DeepEqual(args, []any{int64(1), "20142015"}) {
		t.Fatalf("args = %v", args)
	}
}

func TestInsertModel_RejectsUnusableModels(t *testing.T) {
	if _, _, err := InsertModel("teams", 42); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
	type bare struct{ Name string }
	if _, _, err := InsertModel("teams", bare{}); err == nil {
		t.Fatalf("expected error for tagless model")
	}
	if _, _, err := InsertModel("teams", (*bare)(nil)); err == nil {
		t.Fatalf("expected error for nil pointer model")
	}
}
