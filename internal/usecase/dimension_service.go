package usecase

import (
	"context"
	"fmt"

	"github.com/colfarl/BeatTheHouse/internal/domain/boxscore"
	"github.com/colfarl/BeatTheHouse/internal/domain/player"
	"github.com/colfarl/BeatTheHouse/internal/platform/logging"
)

// RunContext carries the per-run player de-duplication set. It is owned
// by the orchestrator and scoped to one run, never process state.
type RunContext struct {
	seenPlayers map[int64]struct{}
}

func NewRunContext() *RunContext {
	return &RunContext{seenPlayers: make(map[int64]struct{}, 512)}
}

// Unseen filters ids down to those not yet resolved in this run,
// preserving order.
func (rc *RunContext) Unseen(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := rc.seenPlayers[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// MarkSeen records ids as resolved for the rest of the run. Ids the
// identity lookup could not find are marked too so they are never
// re-fetched.
func (rc *RunContext) MarkSeen(ids ...int64) {
	for _, id := range ids {
		rc.seenPlayers[id] = struct{}{}
	}
}

// DimensionService maintains the player identity and stint dimensions
// inside each game's transaction.
type DimensionService struct {
	people PeopleFetcher
	logger *logging.Logger
}

func NewDimensionService(people PeopleFetcher, logger *logging.Logger) *DimensionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DimensionService{people: people, logger: logger}
}

// ResolveIdentities batch-fetches identity records for the players in
// the run context's unseen set and inserts them write-once. It returns
// the ids it attempted so the caller can mark them seen once the game
// commits; marking before commit would let a rolled-back game suppress
// the insert for the rest of the run.
func (s *DimensionService) ResolveIdentities(ctx context.Context, tx boxscore.GameTx, run *RunContext, ids []int64) ([]int64, error) {
	unseen := run.Unseen(ids)
	if len(unseen) == 0 {
		return nil, nil
	}

	people, err := s.people.People(ctx, unseen)
	if err != nil {
		return nil, fmt.Errorf("resolve player identities: %w", err)
	}

	rows := make([]player.Player, 0, len(people))
	for _, person := range people {
		if person.ID <= 0 {
			continue
		}
		rows = append(rows, mapPerson(person))
	}

	if len(rows) < len(unseen) {
		s.logger.WarnContext(ctx, "identity lookup returned fewer players than requested",
			"requested", len(unseen), "resolved", len(rows))
	}

	if err := tx.InsertPlayers(ctx, rows); err != nil {
		return nil, err
	}
	return unseen, nil
}

// MaintainStints applies the read-then-write stint protocol for every
// (player, team) pair observed in a game. A pair with no stint opens
// one at [gamePk, gamePk]; an existing stint extends forward only, so
// out-of-order delivery never regresses last_gamepk.
func (s *DimensionService) MaintainStints(ctx context.Context, tx boxscore.GameTx, seasonYear int, gamePk int64, appearances []boxscore.Appearance) error {
	for _, appearance := range appearances {
		stint, err := tx.FindOpenStint(ctx, appearance.PlayerID, seasonYear, appearance.TeamID)
		if err != nil {
			return err
		}

		if stint == nil {
			err = tx.InsertStint(ctx, player.Stint{
				PlayerID:    appearance.PlayerID,
				SeasonYear:  seasonYear,
				TeamID:      appearance.TeamID,
				FirstGamePk: gamePk,
				LastGamePk:  gamePk,
			})
			if err != nil {
				return err
			}
			continue
		}

		if gamePk > stint.LastGamePk {
			if err := tx.ExtendStint(ctx, *stint, gamePk); err != nil {
				return err
			}
		}
	}
	return nil
}
