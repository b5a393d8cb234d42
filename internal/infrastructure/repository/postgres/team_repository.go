package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/colfarl/BeatTheHouse/internal/domain/team"
	qb "github.com/colfarl/BeatTheHouse/internal/platform/querybuilder"
)

// TeamRepository seeds the per-season team dimension.
type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) InsertSeasonClubs(ctx context.Context, rows []team.SeasonClub) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	models := make([]teamInsertModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, teamInsertModel{
			TeamID:     row.TeamID,
			SeasonYear: row.SeasonYear,
			Name:       row.Name,
			Abbr:       row.Abbr,
			League:     row.League,
			Division:   row.Division,
		})
	}

	query, args, err := qb.InsertModels("team", models, "ON CONFLICT (team_id, season_year) DO NOTHING")
	if err != nil {
		return 0, fmt.Errorf("build insert teams query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert teams: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(inserted), nil
}

type teamInsertModel struct {
	TeamID     int    `db:"team_id"`
	SeasonYear int    `db:"season_year"`
	Name       string `db:"name"`
	Abbr       string `db:"abbr"`
	League     string `db:"league"`
	Division   string `db:"division"`
}
