package game

import (
	"context"
	"time"
)

// Repository describes game dimension persistence.
type Repository interface {
	// LatestGameDate returns the max game_date already stored, or nil
	// when the table is empty.
	LatestGameDate(ctx context.Context) (*time.Time, error)
	// ListRefs returns every stored game ordered by gamePk, for the
	// backfill run.
	ListRefs(ctx context.Context) ([]Ref, error)
	// InsertGames writes rows with insert-or-ignore semantics and
	// reports how many were actually inserted.
	InsertGames(ctx context.Context, rows []Game) (int, error)
}
