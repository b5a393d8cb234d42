package usecase

import (
	"context"
	"time"

	"github.com/colfarl/BeatTheHouse/external/statsapi"
)

// PeopleFetcher is the identity-lookup slice of the stats client.
type PeopleFetcher interface {
	People(ctx context.Context, ids []int64) ([]statsapi.Person, error)
}

// StatsFetcher is what the orchestrator needs from the stats client.
// Implementations return empty results on retry exhaustion rather than
// errors; an error here means cancellation or a malformed payload.
type StatsFetcher interface {
	PeopleFetcher
	Schedule(ctx context.Context, start, end time.Time) ([]statsapi.ScheduleGame, error)
	Boxscore(ctx context.Context, gamePk int64) (*statsapi.BoxscoreSummary, error)
	RawBoxscore(ctx context.Context, gamePk int64) (*statsapi.RawBoxscore, error)
}
