package postgres

import (
	"database/sql"
	"time"

	"github.com/colfarl/BeatTheHouse/internal/domain/boxscore"
	"github.com/colfarl/BeatTheHouse/internal/domain/player"
)

type teamBoxInsertModel struct {
	GamePk           int64           `db:"gamepk"`
	TeamID           int             `db:"team_id"`
	IsHome           bool            `db:"is_home"`
	AtBats           int             `db:"at_bats"`
	Runs             int             `db:"runs"`
	Hits             int             `db:"hits"`
	Doubles          int             `db:"doubles"`
	Triples          int             `db:"triples"`
	HomeRuns         int             `db:"home_runs"`
	RBI              int             `db:"rbi"`
	Walks            int             `db:"walks"`
	StrikeOuts       int             `db:"strikeouts"`
	StolenBases      int             `db:"stolen_bases"`
	CaughtStealing   int             `db:"caught_stealing"`
	HitByPitch       int             `db:"hit_by_pitch"`
	SacBunts         int             `db:"sac_bunts"`
	SacFlies         int             `db:"sac_flies"`
	LeftOnBase       int             `db:"left_on_base"`
	OutsPitched      int             `db:"outs_pitched"`
	HitsAllowed      int             `db:"hits_allowed"`
	RunsAllowed      int             `db:"runs_allowed"`
	EarnedRuns       int             `db:"earned_runs"`
	WalksAllowed     int             `db:"walks_allowed"`
	PitcherStrikeOut int             `db:"pitcher_strikeouts"`
	HomeRunsAllowed  int             `db:"home_runs_allowed"`
	Pitches          int             `db:"pitches"`
	ERA              sql.NullFloat64 `db:"era"`
}

func mapTeamBoxInsert(row boxscore.TeamBox) teamBoxInsertModel {
	return teamBoxInsertModel{
		GamePk:           row.GamePk,
		TeamID:           row.TeamID,
		IsHome:           row.IsHome,
		AtBats:           row.AtBats,
		Runs:             row.Runs,
		Hits:             row.Hits,
		Doubles:          row.Doubles,
		Triples:          row.Triples,
		HomeRuns:         row.HomeRuns,
		RBI:              row.RBI,
		Walks:            row.Walks,
		StrikeOuts:       row.StrikeOuts,
		StolenBases:      row.StolenBases,
		CaughtStealing:   row.CaughtStealing,
		HitByPitch:       row.HitByPitch,
		SacBunts:         row.SacBunts,
		SacFlies:         row.SacFlies,
		LeftOnBase:       row.LeftOnBase,
		OutsPitched:      row.OutsPitched,
		HitsAllowed:      row.HitsAllowed,
		RunsAllowed:      row.RunsAllowed,
		EarnedRuns:       row.EarnedRuns,
		WalksAllowed:     row.WalksAllowed,
		PitcherStrikeOut: row.PitcherStrikeOut,
		HomeRunsAllowed:  row.HomeRunsAllowed,
		Pitches:          row.Pitches,
		ERA:              nullableFloat64(row.ERA),
	}
}

type teamFieldingInsertModel struct {
	GamePk      int64 `db:"gamepk"`
	TeamID      int   `db:"team_id"`
	Putouts     int   `db:"putouts"`
	Assists     int   `db:"assists"`
	Errors      int   `db:"errors"`
	DoublePlays int   `db:"double_plays"`
}

func mapTeamFieldingInsert(row boxscore.TeamFielding) teamFieldingInsertModel {
	return teamFieldingInsertModel{
		GamePk:      row.GamePk,
		TeamID:      row.TeamID,
		Putouts:     row.Putouts,
		Assists:     row.Assists,
		Errors:      row.Errors,
		DoublePlays: row.DoublePlays,
	}
}

type playerBattingInsertModel struct {
	GamePk         int64          `db:"gamepk"`
	PlayerID       int64          `db:"player_id"`
	TeamID         int            `db:"team_id"`
	BattingOrder   sql.NullInt64  `db:"batting_order"`
	Position       sql.NullString `db:"position"`
	AtBats         int            `db:"at_bats"`
	Runs           int            `db:"runs"`
	Hits           int            `db:"hits"`
	Doubles        int            `db:"doubles"`
	Triples        int            `db:"triples"`
	HomeRuns       int            `db:"home_runs"`
	RBI            int            `db:"rbi"`
	Walks          int            `db:"walks"`
	StrikeOuts     int            `db:"strikeouts"`
	StolenBases    int            `db:"stolen_bases"`
	CaughtStealing int            `db:"caught_stealing"`
	HitByPitch     int            `db:"hit_by_pitch"`
	SacBunts       int            `db:"sac_bunts"`
	SacFlies       int            `db:"sac_flies"`
	LeftOnBase     int            `db:"left_on_base"`
}

func mapPlayerBattingInsert(row boxscore.PlayerBatting) playerBattingInsertModel {
	return playerBattingInsertModel{
		GamePk:         row.GamePk,
		PlayerID:       row.PlayerID,
		TeamID:         row.TeamID,
		BattingOrder:   nullableIntValue(row.BattingOrder),
		Position:       nullableString(row.Position),
		AtBats:         row.AtBats,
		Runs:           row.Runs,
		Hits:           row.Hits,
		Doubles:        row.Doubles,
		Triples:        row.Triples,
		HomeRuns:       row.HomeRuns,
		RBI:            row.RBI,
		Walks:          row.Walks,
		StrikeOuts:     row.StrikeOuts,
		StolenBases:    row.StolenBases,
		CaughtStealing: row.CaughtStealing,
		HitByPitch:     row.HitByPitch,
		SacBunts:       row.SacBunts,
		SacFlies:       row.SacFlies,
		LeftOnBase:     row.LeftOnBase,
	}
}

type playerPitchingInsertModel struct {
	GamePk       int64           `db:"gamepk"`
	PlayerID     int64           `db:"player_id"`
	TeamID       int             `db:"team_id"`
	IsStarting   bool            `db:"is_starting"`
	Win          bool            `db:"win"`
	Save         bool            `db:"save"`
	Hold         bool            `db:"hold"`
	OutsPitched  int             `db:"outs_pitched"`
	HitsAllowed  int             `db:"hits_allowed"`
	RunsAllowed  int             `db:"runs_allowed"`
	EarnedRuns   int             `db:"earned_runs"`
	Walks        int             `db:"walks"`
	StrikeOuts   int             `db:"strikeouts"`
	HomeRuns     int             `db:"home_runs"`
	HitByPitch   int             `db:"hit_by_pitch"`
	BattersFaced int             `db:"batters_faced"`
	Pitches      int             `db:"pitches"`
	ERA          sql.NullFloat64 `db:"era"`
}

func mapPlayerPitchingInsert(row boxscore.PlayerPitching) playerPitchingInsertModel {
	return playerPitchingInsertModel{
		GamePk:       row.GamePk,
		PlayerID:     row.PlayerID,
		TeamID:       row.TeamID,
		IsStarting:   row.IsStarting,
		Win:          row.Win,
		Save:         row.Save,
		Hold:         row.Hold,
		OutsPitched:  row.OutsPitched,
		HitsAllowed:  row.HitsAllowed,
		RunsAllowed:  row.RunsAllowed,
		EarnedRuns:   row.EarnedRuns,
		Walks:        row.Walks,
		StrikeOuts:   row.StrikeOuts,
		HomeRuns:     row.HomeRuns,
		HitByPitch:   row.HitByPitch,
		BattersFaced: row.BattersFaced,
		Pitches:      row.Pitches,
		ERA:          nullableFloat64(row.ERA),
	}
}

type playerFieldingInsertModel struct {
	GamePk      int64 `db:"gamepk"`
	PlayerID    int64 `db:"player_id"`
	TeamID      int   `db:"team_id"`
	Putouts     int   `db:"putouts"`
	Assists     int   `db:"assists"`
	Errors      int   `db:"errors"`
	DoublePlays int   `db:"double_plays"`
}

func mapPlayerFieldingInsert(row boxscore.PlayerFielding) playerFieldingInsertModel {
	return playerFieldingInsertModel{
		GamePk:      row.GamePk,
		PlayerID:    row.PlayerID,
		TeamID:      row.TeamID,
		Putouts:     row.Putouts,
		Assists:     row.Assists,
		Errors:      row.Errors,
		DoublePlays: row.DoublePlays,
	}
}

type playerInsertModel struct {
	PlayerID     int64          `db:"player_id"`
	FullName     string         `db:"full_name"`
	BirthDate    sql.NullTime   `db:"birth_date"`
	BirthCountry sql.NullString `db:"birth_country"`
	Height       sql.NullString `db:"height"`
	WeightLbs    int            `db:"weight_lbs"`
	Position     sql.NullString `db:"position"`
	BatSide      sql.NullString `db:"bat_side"`
	PitchHand    sql.NullString `db:"pitch_hand"`
	DebutDate    sql.NullTime   `db:"debut_date"`
}

func mapPlayerInsert(row player.Player) playerInsertModel {
	return playerInsertModel{
		PlayerID:     row.ID,
		FullName:     row.FullName,
		BirthDate:    nullableTime(row.BirthDate),
		BirthCountry: nullableString(row.BirthCountry),
		Height:       nullableString(row.Height),
		WeightLbs:    row.WeightLbs,
		Position:     nullableString(row.Position),
		BatSide:      nullableString(row.BatSide),
		PitchHand:    nullableString(row.PitchHand),
		DebutDate:    nullableTime(row.DebutDate),
	}
}

type stintInsertModel struct {
	PlayerID    int64 `db:"player_id"`
	SeasonYear  int   `db:"season_year"`
	TeamID      int   `db:"team_id"`
	FirstGamePk int64 `db:"first_gamepk"`
	LastGamePk  int64 `db:"last_gamepk"`
}

type stintRow struct {
	FirstGamePk int64 `db:"first_gamepk"`
	LastGamePk  int64 `db:"last_gamepk"`
}

func nullableFloat64(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}

func nullableIntValue(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func nullableString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullableTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}
