package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/colfarl/BeatTheHouse/internal/domain/boxscore"
	"github.com/colfarl/BeatTheHouse/internal/domain/player"
	qb "github.com/colfarl/BeatTheHouse/internal/platform/querybuilder"
)

const (
	suffixTeamBoxConflict        = "ON CONFLICT (gamepk, team_id) DO NOTHING"
	suffixPlayerGameConflict     = "ON CONFLICT (gamepk, player_id) DO NOTHING"
	suffixPlayerConflict         = "ON CONFLICT (player_id) DO NOTHING"
	suffixStintConflict          = "ON CONFLICT (player_id, season_year, team_id, first_gamepk) DO NOTHING"
	suffixTeamFieldingConflict   = suffixTeamBoxConflict
	suffixPlayerBattingConflict  = suffixPlayerGameConflict
	suffixPlayerPitchingConflict = suffixPlayerGameConflict
)

// BoxscoreRepository opens per-game transactions over the five fact
// tables plus the player and stint dimensions.
type BoxscoreRepository struct {
	db *sqlx.DB
}

func NewBoxscoreRepository(db *sqlx.DB) *BoxscoreRepository {
	return &BoxscoreRepository{db: db}
}

func (r *BoxscoreRepository) BeginGame(ctx context.Context) (boxscore.GameTx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin game transaction: %w", err)
	}
	return &gameTx{tx: tx}, nil
}

type gameTx struct {
	tx *sqlx.Tx
}

func (g *gameTx) InsertTeamBoxes(ctx context.Context, rows []boxscore.TeamBox) error {
	if len(rows) == 0 {
		return nil
	}
	models := make([]teamBoxInsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, mapTeamBoxInsert(row))
	}
	return execInsert(ctx, g.tx, "team_box", models, suffixTeamBoxConflict)
}

func (g *gameTx) InsertTeamFielding(ctx context.Context, rows []boxscore.TeamFielding) error {
	if len(rows) == 0 {
		return nil
	}
	models := make([]teamFieldingInsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, mapTeamFieldingInsert(row))
	}
	return execInsert(ctx, g.tx, "team_fielding", models, suffixTeamFieldingConflict)
}

func (g *gameTx) InsertPlayerBatting(ctx context.Context, rows []boxscore.PlayerBatting) error {
	if len(rows) == 0 {
		return nil
	}
	models := make([]playerBattingInsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, mapPlayerBattingInsert(row))
	}
	return execInsert(ctx, g.tx, "player_batting", models, suffixPlayerBattingConflict)
}

func (g *gameTx) InsertPlayerPitching(ctx context.Context, rows []boxscore.PlayerPitching) error {
	if len(rows) == 0 {
		return nil
	}
	models := make([]playerPitchingInsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, mapPlayerPitchingInsert(row))
	}
	return execInsert(ctx, g.tx, "player_pitching", models, suffixPlayerPitchingConflict)
}

func (g *gameTx) InsertPlayerFielding(ctx context.Context, rows []boxscore.PlayerFielding) error {
	if len(rows) == 0 {
		return nil
	}
	models := make([]playerFieldingInsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, mapPlayerFieldingInsert(row))
	}
	return execInsert(ctx, g.tx, "player_fielding", models, suffixPlayerGameConflict)
}

func (g *gameTx) InsertPlayers(ctx context.Context, rows []player.Player) error {
	if len(rows) == 0 {
		return nil
	}
	models := make([]playerInsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, mapPlayerInsert(row))
	}
	return execInsert(ctx, g.tx, "player", models, suffixPlayerConflict)
}

// FindOpenStint returns the newest stint for (player, season, team),
// or nil when the player has never appeared for that club this season.
func (g *gameTx) FindOpenStint(ctx context.Context, playerID int64, seasonYear, teamID int) (*player.Stint, error) {
	query, args, err := qb.Select("first_gamepk", "last_gamepk").
		From("player_team").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("season_year", seasonYear),
			qb.Eq("team_id", teamID),
		).
		OrderBy("first_gamepk DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build find open stint query: %w", err)
	}

	var row stintRow
	if err := g.tx.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find open stint: %w", err)
	}

	return &player.Stint{
		PlayerID:    playerID,
		SeasonYear:  seasonYear,
		TeamID:      teamID,
		FirstGamePk: row.FirstGamePk,
		LastGamePk:  row.LastGamePk,
	}, nil
}

func (g *gameTx) InsertStint(ctx context.Context, stint player.Stint) error {
	model := stintInsertModel{
		PlayerID:    stint.PlayerID,
		SeasonYear:  stint.SeasonYear,
		TeamID:      stint.TeamID,
		FirstGamePk: stint.FirstGamePk,
		LastGamePk:  stint.LastGamePk,
	}
	query, args, err := qb.InsertModel("player_team", model, suffixStintConflict)
	if err != nil {
		return fmt.Errorf("build insert stint query: %w", err)
	}
	if _, err := g.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert stint: %w", err)
	}
	return nil
}

// ExtendStint moves last_gamepk forward only; the guard keeps an
// out-of-order smaller gamePk from regressing the window.
func (g *gameTx) ExtendStint(ctx context.Context, stint player.Stint, lastGamePk int64) error {
	query, args, err := qb.Update("player_team").
		Set("last_gamepk", lastGamePk).
		Where(
			qb.Eq("player_id", stint.PlayerID),
			qb.Eq("season_year", stint.SeasonYear),
			qb.Eq("team_id", stint.TeamID),
			qb.Eq("first_gamepk", stint.FirstGamePk),
			qb.Lt("last_gamepk", lastGamePk),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build extend stint query: %w", err)
	}
	if _, err := g.tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("extend stint: %w", err)
	}
	return nil
}

func (g *gameTx) Commit() error {
	if err := g.tx.Commit(); err != nil {
		return fmt.Errorf("commit game transaction: %w", err)
	}
	return nil
}

func (g *gameTx) Rollback() error {
	if err := g.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("rollback game transaction: %w", err)
	}
	return nil
}

func execInsert[T any](ctx context.Context, tx *sqlx.Tx, table string, models []T, suffix string) error {
	query, args, err := qb.InsertModels(table, models, suffix)
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s rows: %w", table, err)
	}
	return nil
}
