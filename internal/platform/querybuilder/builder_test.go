package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("first_gamepk", "last_gamepk").
		From("player_team").
		Where(Eq("player_id", int64(660271)), Eq("season_year", 2025), Eq("team_id", 119)).
		OrderBy("first_gamepk DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT first_gamepk, last_gamepk FROM player_team WHERE player_id = $1 AND season_year = $2 AND team_id = $3 ORDER BY first_gamepk DESC LIMIT 1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != int64(660271) || args[1] != 2025 || args[2] != 119 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("team_fielding").
		Columns("gamepk", "team_id", "putouts").
		Values(int64(745001), 119, 27).
		Suffix("ON CONFLICT (gamepk, team_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO team_fielding (gamepk, team_id, putouts) VALUES ($1, $2, $3) ON CONFLICT (gamepk, team_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("player_team").
		Set("last_gamepk", int64(745010)).
		Where(
			Eq("player_id", int64(660271)),
			Eq("season_year", 2025),
			Eq("team_id", 119),
			Eq("first_gamepk", int64(744900)),
			Lt("last_gamepk", int64(745010)),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE player_team SET last_gamepk = $1 WHERE player_id = $2 AND season_year = $3 AND team_id = $4 AND first_gamepk = $5 AND last_gamepk < $6"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModelsMultiRow(t *testing.T) {
	type row struct {
		GamePk  int64 `db:"gamepk"`
		TeamID  int   `db:"team_id"`
		Putouts int   `db:"putouts"`
	}

	query, args, err := InsertModels("team_fielding", []row{
		{GamePk: 745001, TeamID: 119, Putouts: 27},
		{GamePk: 745001, TeamID: 147, Putouts: 24},
	}, "ON CONFLICT (gamepk, team_id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO team_fielding (gamepk, team_id, putouts) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (gamepk, team_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
