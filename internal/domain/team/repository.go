package team

import "context"

// Repository describes team dimension persistence.
type Repository interface {
	InsertSeasonClubs(ctx context.Context, rows []SeasonClub) (int, error)
}
