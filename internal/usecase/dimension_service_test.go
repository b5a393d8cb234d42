package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colfarl/BeatTheHouse/internal/domain/boxscore"
)

func applyGame(t *testing.T, store *fakeStore, dims *DimensionService, gamePk int64) {
	t.Helper()
	tx := &fakeTx{store: store}
	err := dims.MaintainStints(context.Background(), tx, 2025, gamePk, []boxscore.Appearance{
		{PlayerID: 660271, TeamID: 119},
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
}

func TestStintMergeMonotonicity(t *testing.T) {
	store := newFakeStore()
	dims := NewDimensionService(&fakeFetcher{}, nil)

	// Out-of-order delivery: 103 arrives after 105 and must not
	// regress the window.
	for _, gamePk := range []int64{100, 105, 103} {
		applyGame(t, store, dims, gamePk)
	}

	require.Len(t, store.stints, 1)
	stint := store.stints[0]
	assert.Equal(t, int64(100), stint.FirstGamePk)
	assert.Equal(t, int64(105), stint.LastGamePk)
}

func TestStintPerTeamWithinSeason(t *testing.T) {
	store := newFakeStore()
	dims := NewDimensionService(&fakeFetcher{}, nil)

	tx := &fakeTx{store: store}
	// Mid-season trade: same player, two clubs, two stints.
	err := dims.MaintainStints(context.Background(), tx, 2025, 200, []boxscore.Appearance{
		{PlayerID: 660271, TeamID: 119},
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	tx = &fakeTx{store: store}
	err = dims.MaintainStints(context.Background(), tx, 2025, 210, []boxscore.Appearance{
		{PlayerID: 660271, TeamID: 147},
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, store.stints, 2)
}

func TestResolveIdentitiesSkipsSeenPlayers(t *testing.T) {
	store := newFakeStore()
	fetcher := &fakeFetcher{}
	dims := NewDimensionService(fetcher, nil)
	run := NewRunContext()
	run.MarkSeen(1, 2)

	tx := &fakeTx{store: store}
	resolved, err := dims.ResolveIdentities(context.Background(), tx, run, []int64{1, 2})
	require.NoError(t, err)
	assert.Empty(t, resolved)
	assert.Zero(t, fetcher.peopleCalls)
}

func TestResolveIdentitiesMarksMissingPlayers(t *testing.T) {
	store := newFakeStore()
	fetcher := fetcherForGame(745001)
	dims := NewDimensionService(fetcher, nil)
	run := NewRunContext()

	tx := &fakeTx{store: store}
	// 999999 is unknown upstream; it still comes back in the resolved
	// set so the run never re-fetches it.
	resolved, err := dims.ResolveIdentities(context.Background(), tx, run, []int64{301001, 999999})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.ElementsMatch(t, []int64{301001, 999999}, resolved)
	assert.Len(t, store.players, 1)
	require.Len(t, fetcher.peopleIDs, 1)
	assert.Equal(t, []int64{301001, 999999}, fetcher.peopleIDs[0])

	run.MarkSeen(resolved...)
	tx = &fakeTx{store: store}
	resolved, err = dims.ResolveIdentities(context.Background(), tx, run, []int64{301001, 999999})
	require.NoError(t, err)
	assert.Empty(t, resolved)
	assert.Equal(t, 1, fetcher.peopleCalls)
}
