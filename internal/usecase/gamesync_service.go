package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/colfarl/BeatTheHouse/external/statsapi"
	"github.com/colfarl/BeatTheHouse/internal/domain/game"
	"github.com/colfarl/BeatTheHouse/internal/domain/team"
	"github.com/colfarl/BeatTheHouse/internal/platform/logging"
)

// GameSyncService populates the game dimension from a season's
// schedule. The incremental ingest depends on this table for its
// watermark, so a season must be loaded here before Run can work.
type GameSyncService struct {
	fetcher StatsFetcher
	games   game.Repository
	logger  *logging.Logger
}

func NewGameSyncService(fetcher StatsFetcher, games game.Repository, logger *logging.Logger) *GameSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameSyncService{fetcher: fetcher, games: games, logger: logger}
}

// LoadSeason fetches the season's schedule, keeps Final games between
// two known clubs, enriches each with box meta (attendance, weather,
// wind) and inserts the rows with insert-or-ignore.
func (s *GameSyncService) LoadSeason(ctx context.Context, seasonYear int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "GameSyncService.LoadSeason")
	defer span.End()

	if seasonYear < 1900 {
		return 0, fmt.Errorf("%w: season year %d", ErrInvalidInput, seasonYear)
	}

	// The schedule endpoint is date-bounded; this window covers spring
	// openers through any November finish.
	start := time.Date(seasonYear, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(seasonYear, time.November, 30, 0, 0, 0, 0, time.UTC)

	scheduled, err := s.fetcher.Schedule(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("fetch season %d schedule: %w", seasonYear, err)
	}

	rows := make([]game.Game, 0, len(scheduled))
	seen := make(map[int64]struct{}, len(scheduled))
	for _, item := range scheduled {
		if item.Status != "Final" {
			continue
		}
		if !team.Known(item.HomeTeamID) || !team.Known(item.AwayTeamID) {
			continue
		}
		if _, dup := seen[item.GamePk]; dup {
			continue
		}
		seen[item.GamePk] = struct{}{}

		row := game.Game{
			GamePk:       item.GamePk,
			SeasonYear:   item.Season,
			GameDate:     item.Date,
			Venue:        item.Venue,
			HomeTeamID:   item.HomeTeamID,
			AwayTeamID:   item.AwayTeamID,
			FirstPitchTS: item.FirstPitch,
			HomeScore:    item.HomeScore,
			AwayScore:    item.AwayScore,
		}

		summary, err := s.fetcher.Boxscore(ctx, item.GamePk)
		if err != nil {
			return 0, err
		}
		if summary == nil {
			s.logger.WarnContext(ctx, "skipping game without boxscore", "gamepk", item.GamePk)
			continue
		}
		meta := statsapi.ExtractGameMeta(summary.GameBoxInfo)
		row.Attendance = meta.Attendance
		row.WeatherTempF = meta.WeatherTempF
		row.WindMPH = meta.WindSpeedMPH

		rows = append(rows, row)
		if len(rows)%200 == 0 {
			s.logger.InfoContext(ctx, "season load progress", "season", seasonYear, "collected", len(rows))
		}
	}

	inserted, err := s.games.InsertGames(ctx, rows)
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "season games loaded",
		"season", seasonYear, "collected", len(rows), "inserted", inserted)
	return inserted, nil
}
