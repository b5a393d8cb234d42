package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/colfarl/BeatTheHouse/external/statsapi"
	"github.com/colfarl/BeatTheHouse/internal/config"
	"github.com/colfarl/BeatTheHouse/internal/infrastructure/repository/postgres"
	"github.com/colfarl/BeatTheHouse/internal/platform/logging"
	"github.com/colfarl/BeatTheHouse/internal/usecase"
)

// App wires the ETL services over one database handle and one stats
// client. The only fatal startup error is failing to reach the
// database.
type App struct {
	Config config.Config
	Logger *logging.Logger
	DB     *sqlx.DB

	Ingest   *usecase.IngestService
	GameSync *usecase.GameSyncService
	Teams    *usecase.TeamService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := otelsqlx.Connect("postgres", cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	client := statsapi.NewClient(statsapi.ClientConfig{
		BaseURL:         cfg.StatsAPIBaseURL,
		Timeout:         cfg.StatsAPITimeout,
		MaxRetries:      cfg.StatsAPIMaxRetries,
		RetryBaseDelay:  cfg.StatsAPIRetryBaseDelay,
		PacingDelay:     cfg.PacingDelay,
		PeopleBatchSize: cfg.PeopleBatchSize,
		Logger:          logger,
	})

	gameRepo := postgres.NewGameRepository(db)
	boxscoreRepo := postgres.NewBoxscoreRepository(db)
	teamRepo := postgres.NewTeamRepository(db)

	dimensions := usecase.NewDimensionService(client, logger)
	ingest := usecase.NewIngestService(client, gameRepo, boxscoreRepo, dimensions, usecase.IngestServiceConfig{
		ProgressInterval: cfg.ProgressInterval,
		BatchCommitSize:  cfg.BatchCommitSize,
	}, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Ingest:   ingest,
		GameSync: usecase.NewGameSyncService(client, gameRepo, logger),
		Teams:    usecase.NewTeamService(teamRepo, logger),
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
