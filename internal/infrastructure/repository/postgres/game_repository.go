package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/colfarl/BeatTheHouse/internal/domain/game"
	qb "github.com/colfarl/BeatTheHouse/internal/platform/querybuilder"
)

// GameRepository reads and maintains the game dimension table. The
// incremental run only reads the watermark; the schedule loader run
// mode owns the inserts.
type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) LatestGameDate(ctx context.Context) (*time.Time, error) {
	query, args, err := qb.Select("MAX(game_date) AS latest").From("game").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build latest game date query: %w", err)
	}

	var latest sql.NullTime
	if err := r.db.GetContext(ctx, &latest, query, args...); err != nil {
		return nil, fmt.Errorf("get latest game date: %w", err)
	}
	if !latest.Valid {
		return nil, nil
	}

	value := latest.Time
	return &value, nil
}

func (r *GameRepository) ListRefs(ctx context.Context) ([]game.Ref, error) {
	query, args, err := qb.Select("gamepk", "season_year").
		From("game").
		OrderBy("gamepk").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list game refs query: %w", err)
	}

	var rows []gameRefRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list game refs: %w", err)
	}

	out := make([]game.Ref, 0, len(rows))
	for _, row := range rows {
		out = append(out, game.Ref{GamePk: row.GamePk, SeasonYear: row.SeasonYear})
	}
	return out, nil
}

func (r *GameRepository) InsertGames(ctx context.Context, rows []game.Game) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	models := make([]gameInsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, mapGameInsert(row))
	}

	query, args, err := qb.InsertModels("game", models, "ON CONFLICT (gamepk) DO NOTHING")
	if err != nil {
		return 0, fmt.Errorf("build insert games query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert games: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(inserted), nil
}

type gameRefRow struct {
	GamePk     int64 `db:"gamepk"`
	SeasonYear int   `db:"season_year"`
}

type gameInsertModel struct {
	GamePk       int64          `db:"gamepk"`
	SeasonYear   int            `db:"season_year"`
	GameDate     time.Time      `db:"game_date"`
	Venue        sql.NullString `db:"venue"`
	HomeTeamID   int            `db:"home_team_id"`
	AwayTeamID   int            `db:"away_team_id"`
	FirstPitchTS sql.NullTime   `db:"first_pitch_ts"`
	Attendance   sql.NullInt64  `db:"attendance"`
	WeatherTempF sql.NullInt64  `db:"weather_temp_f"`
	WindMPH      sql.NullInt64  `db:"wind_mph"`
	HomeScore    sql.NullInt64  `db:"home_score"`
	AwayScore    sql.NullInt64  `db:"away_score"`
}

func mapGameInsert(row game.Game) gameInsertModel {
	return gameInsertModel{
		GamePk:       row.GamePk,
		SeasonYear:   row.SeasonYear,
		GameDate:     row.GameDate,
		Venue:        nullableString(row.Venue),
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		FirstPitchTS: nullableTime(row.FirstPitchTS),
		Attendance:   nullableIntValue(row.Attendance),
		WeatherTempF: nullableIntValue(row.WeatherTempF),
		WindMPH:      nullableIntValue(row.WindMPH),
		HomeScore:    nullableIntValue(row.HomeScore),
		AwayScore:    nullableIntValue(row.AwayScore),
	}
}
