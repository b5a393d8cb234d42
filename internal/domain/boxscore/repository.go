package boxscore

import (
	"context"

	"github.com/colfarl/BeatTheHouse/internal/domain/player"
)

// Loader opens per-game transactional scopes. All writes for a game go
// through one GameTx so a mapping failure rolls back the whole game.
type Loader interface {
	BeginGame(ctx context.Context) (GameTx, error)
}

// GameTx is the write surface for one game. Fact and identity inserts
// are insert-or-ignore on their natural keys; stints follow the
// read-then-write protocol owned by the dimension maintainer. The
// read-then-write pair assumes a single writer; concurrent runs would
// need per-key locking.
type GameTx interface {
	InsertTeamBoxes(ctx context.Context, rows []TeamBox) error
	InsertTeamFielding(ctx context.Context, rows []TeamFielding) error
	InsertPlayerBatting(ctx context.Context, rows []PlayerBatting) error
	InsertPlayerPitching(ctx context.Context, rows []PlayerPitching) error
	InsertPlayerFielding(ctx context.Context, rows []PlayerFielding) error

	InsertPlayers(ctx context.Context, rows []player.Player) error
	// FindOpenStint returns the stint with the greatest first_gamepk
	// for (player, season, team), or nil when none exists.
	FindOpenStint(ctx context.Context, playerID int64, seasonYear, teamID int) (*player.Stint, error)
	InsertStint(ctx context.Context, stint player.Stint) error
	// ExtendStint moves last_gamepk forward on the row identified by
	// the stint's full natural key.
	ExtendStint(ctx context.Context, stint player.Stint, lastGamePk int64) error

	Commit() error
	Rollback() error
}
