package usecase

import (
	"context"
	"fmt"

	"github.com/colfarl/BeatTheHouse/internal/domain/team"
	"github.com/colfarl/BeatTheHouse/internal/platform/logging"
)

// TeamService seeds the per-season team dimension from the static club
// registry.
type TeamService struct {
	teams  team.Repository
	logger *logging.Logger
}

func NewTeamService(teams team.Repository, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{teams: teams, logger: logger}
}

func (s *TeamService) SeedSeasons(ctx context.Context, fromYear, toYear int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamService.SeedSeasons")
	defer span.End()

	if fromYear > toYear || fromYear < 1900 {
		return 0, fmt.Errorf("%w: season range %d..%d", ErrInvalidInput, fromYear, toYear)
	}

	inserted, err := s.teams.InsertSeasonClubs(ctx, team.SeasonRows(fromYear, toYear))
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "team seasons seeded",
		"from", fromYear, "to", toYear, "inserted", inserted)
	return inserted, nil
}
