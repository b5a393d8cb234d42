package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/colfarl/BeatTheHouse/internal/domain/boxscore"
	"github.com/colfarl/BeatTheHouse/internal/domain/game"
	"github.com/colfarl/BeatTheHouse/internal/domain/team"
	"github.com/colfarl/BeatTheHouse/internal/platform/logging"
)

// Outcome classifies what happened to one candidate game.
type Outcome int

const (
	OutcomeLoaded Outcome = iota
	OutcomeSkippedUnknownClub
	OutcomeSkippedUnavailable
	OutcomeSkippedMappingFailure
	OutcomeSkippedLoadFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeSkippedUnknownClub:
		return "skipped_unknown_club"
	case OutcomeSkippedUnavailable:
		return "skipped_unavailable"
	case OutcomeSkippedMappingFailure:
		return "skipped_mapping_failure"
	case OutcomeSkippedLoadFailure:
		return "skipped_load_failure"
	default:
		return "unknown"
	}
}

// GameResult is the per-game verdict the orchestrator acts on instead
// of exception-style control flow.
type GameResult struct {
	GamePk  int64
	Outcome Outcome
	Err     error
}

// RunReport summarizes one ingestion run.
type RunReport struct {
	Candidates int
	Loaded     int
	Skipped    int
	Results    []GameResult
}

func (r *RunReport) record(result GameResult) {
	r.Results = append(r.Results, result)
	if result.Outcome == OutcomeLoaded {
		r.Loaded++
	} else {
		r.Skipped++
	}
}

type candidateGame struct {
	gamePk     int64
	seasonYear int
	homeTeamID int
	awayTeamID int
}

// IngestServiceConfig tunes orchestration cadence.
type IngestServiceConfig struct {
	ProgressInterval int
	BatchCommitSize  int
}

// IngestService drives the per-game loop: determine range, then for
// each candidate fetch, normalize, load, commit or roll back. Each
// game is its own transaction in both run modes; a failure skips that
// game and the run continues.
type IngestService struct {
	fetcher          StatsFetcher
	games            game.Repository
	loader           boxscore.Loader
	dimensions       *DimensionService
	logger           *logging.Logger
	progressInterval int
	batchCommitSize  int
}

func NewIngestService(
	fetcher StatsFetcher,
	games game.Repository,
	loader boxscore.Loader,
	dimensions *DimensionService,
	cfg IngestServiceConfig,
	logger *logging.Logger,
) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}
	progressInterval := cfg.ProgressInterval
	if progressInterval <= 0 {
		progressInterval = 200
	}
	batchCommitSize := cfg.BatchCommitSize
	if batchCommitSize <= 0 {
		batchCommitSize = 250
	}
	return &IngestService{
		fetcher:          fetcher,
		games:            games,
		loader:           loader,
		dimensions:       dimensions,
		logger:           logger,
		progressInterval: progressInterval,
		batchCommitSize:  batchCommitSize,
	}
}

// Run performs the daily incremental load: everything completed
// strictly after the stored watermark, up to today. An empty game
// table refuses to run; the historical backfill is a separate mode.
func (s *IngestService) Run(ctx context.Context, now time.Time) (*RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestService.Run")
	defer span.End()

	watermark, err := s.games.LatestGameDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("read watermark: %w", err)
	}
	if watermark == nil {
		return nil, fmt.Errorf("%w: game table is empty, run the schedule loader first", ErrNoPriorState)
	}

	today := now.UTC().Truncate(24 * time.Hour)
	start := watermark.UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	if start.After(today) {
		s.logger.InfoContext(ctx, "already up to date", "watermark", watermark.Format("2006-01-02"))
		return &RunReport{}, nil
	}

	candidates, err := s.collectCandidates(ctx, start, today)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		s.logger.InfoContext(ctx, "no completed games to load",
			"start", start.Format("2006-01-02"), "end", today.Format("2006-01-02"))
		return &RunReport{}, nil
	}

	s.logger.InfoContext(ctx, "loading new finished games",
		"count", len(candidates),
		"start", start.Format("2006-01-02"),
		"end", today.Format("2006-01-02"))

	return s.processCandidates(ctx, candidates, s.progressInterval), nil
}

// Backfill re-ingests box scores for every game already present in the
// game dimension. Facts are insert-or-ignore, so already-loaded games
// are cheap no-ops; the cadence difference from Run is only how often
// progress is reported.
func (s *IngestService) Backfill(ctx context.Context) (*RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestService.Backfill")
	defer span.End()

	refs, err := s.games.ListRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored games: %w", err)
	}

	candidates := make([]candidateGame, 0, len(refs))
	for _, ref := range refs {
		candidates = append(candidates, candidateGame{gamePk: ref.GamePk, seasonYear: ref.SeasonYear})
	}

	s.logger.InfoContext(ctx, "backfilling stored games", "count", len(candidates))
	return s.processCandidates(ctx, candidates, s.batchCommitSize), nil
}

// collectCandidates scans the schedule one day at a time and keeps
// completed games. The set is de-duplicated and sorted by gamePk;
// double-headers can show up twice in schedule responses.
func (s *IngestService) collectCandidates(ctx context.Context, start, end time.Time) ([]candidateGame, error) {
	byPk := make(map[int64]candidateGame, 32)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		games, err := s.fetcher.Schedule(ctx, day, day)
		if err != nil {
			return nil, fmt.Errorf("fetch schedule for %s: %w", day.Format("2006-01-02"), err)
		}
		for _, g := range games {
			if !g.Completed() {
				continue
			}
			byPk[g.GamePk] = candidateGame{
				gamePk:     g.GamePk,
				seasonYear: g.Season,
				homeTeamID: g.HomeTeamID,
				awayTeamID: g.AwayTeamID,
			}
		}
	}

	out := make([]candidateGame, 0, len(byPk))
	for _, candidate := range byPk {
		out = append(out, candidate)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].gamePk < out[j].gamePk })
	return out, nil
}

func (s *IngestService) processCandidates(ctx context.Context, candidates []candidateGame, progressInterval int) *RunReport {
	report := &RunReport{Candidates: len(candidates)}
	run := NewRunContext()

	for idx, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}

		result := s.ingestGame(ctx, run, candidate)
		report.record(result)

		switch result.Outcome {
		case OutcomeLoaded:
		case OutcomeSkippedUnknownClub:
			s.logger.DebugContext(ctx, "skipped non-league game", "gamepk", candidate.gamePk)
		default:
			s.logger.WarnContext(ctx, "game skipped",
				"gamepk", candidate.gamePk,
				"outcome", result.Outcome.String(),
				"error", result.Err)
		}

		if (idx+1)%progressInterval == 0 {
			s.logger.InfoContext(ctx, "ingest progress",
				"processed", idx+1,
				"total", len(candidates),
				"loaded", report.Loaded,
				"skipped", report.Skipped)
		}
	}

	s.logger.InfoContext(ctx, "ingest run complete",
		"candidates", report.Candidates,
		"loaded", report.Loaded,
		"skipped", report.Skipped)
	return report
}

// ingestGame runs the fetch, normalize, load sequence for one game
// inside one transaction. Candidate games with a club outside the
// registry are rejected before any fetch.
func (s *IngestService) ingestGame(ctx context.Context, run *RunContext, candidate candidateGame) GameResult {
	if candidate.homeTeamID != 0 || candidate.awayTeamID != 0 {
		if !team.Known(candidate.homeTeamID) || !team.Known(candidate.awayTeamID) {
			return GameResult{GamePk: candidate.gamePk, Outcome: OutcomeSkippedUnknownClub}
		}
	}

	summary, err := s.fetcher.Boxscore(ctx, candidate.gamePk)
	if err != nil {
		return GameResult{GamePk: candidate.gamePk, Outcome: OutcomeSkippedUnavailable, Err: err}
	}
	raw, err := s.fetcher.RawBoxscore(ctx, candidate.gamePk)
	if err != nil {
		return GameResult{GamePk: candidate.gamePk, Outcome: OutcomeSkippedUnavailable, Err: err}
	}
	if summary == nil || raw == nil {
		return GameResult{GamePk: candidate.gamePk, Outcome: OutcomeSkippedUnavailable}
	}

	batch, err := buildGameBatch(candidate.gamePk, candidate.seasonYear, summary, raw)
	if err != nil {
		return GameResult{GamePk: candidate.gamePk, Outcome: OutcomeSkippedMappingFailure, Err: err}
	}

	tx, err := s.loader.BeginGame(ctx)
	if err != nil {
		return GameResult{GamePk: candidate.gamePk, Outcome: OutcomeSkippedLoadFailure, Err: err}
	}

	resolvedIDs, err := s.loadBatch(ctx, tx, run, batch)
	if err != nil {
		_ = tx.Rollback()
		return GameResult{GamePk: candidate.gamePk, Outcome: OutcomeSkippedLoadFailure, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return GameResult{GamePk: candidate.gamePk, Outcome: OutcomeSkippedLoadFailure, Err: err}
	}

	// Only a committed game marks its players resolved; a rolled-back
	// game must not suppress the identity insert for the rest of the
	// run.
	run.MarkSeen(resolvedIDs...)
	return GameResult{GamePk: candidate.gamePk, Outcome: OutcomeLoaded}
}

func (s *IngestService) loadBatch(ctx context.Context, tx boxscore.GameTx, run *RunContext, batch boxscore.Batch) ([]int64, error) {
	if err := tx.InsertTeamBoxes(ctx, batch.TeamBoxes); err != nil {
		return nil, err
	}
	if err := tx.InsertTeamFielding(ctx, batch.TeamFielding); err != nil {
		return nil, err
	}
	if err := tx.InsertPlayerBatting(ctx, batch.PlayerBatting); err != nil {
		return nil, err
	}
	if err := tx.InsertPlayerPitching(ctx, batch.PlayerPitching); err != nil {
		return nil, err
	}
	if err := tx.InsertPlayerFielding(ctx, batch.PlayerFielding); err != nil {
		return nil, err
	}

	resolvedIDs, err := s.dimensions.ResolveIdentities(ctx, tx, run, batch.PlayerIDs())
	if err != nil {
		return nil, err
	}
	if err := s.dimensions.MaintainStints(ctx, tx, batch.SeasonYear, batch.GamePk, batch.Appearances); err != nil {
		return nil, err
	}
	return resolvedIDs, nil
}
