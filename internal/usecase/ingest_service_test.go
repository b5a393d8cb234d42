package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colfarl/BeatTheHouse/external/statsapi"
	"github.com/colfarl/BeatTheHouse/internal/domain/boxscore"
	"github.com/colfarl/BeatTheHouse/internal/domain/game"
	"github.com/colfarl/BeatTheHouse/internal/domain/player"
)

// fakeStore mimics the insert-or-ignore discipline of the real tables
// so idempotence and rollback behavior are observable in tests.
type fakeStore struct {
	teamBox        map[string]boxscore.TeamBox
	teamFielding   map[string]boxscore.TeamFielding
	playerBatting  map[string]boxscore.PlayerBatting
	playerPitching map[string]boxscore.PlayerPitching
	playerFielding map[string]boxscore.PlayerFielding
	players        map[int64]player.Player
	stints         []player.Stint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		teamBox:        make(map[string]boxscore.TeamBox),
		teamFielding:   make(map[string]boxscore.TeamFielding),
		playerBatting:  make(map[string]boxscore.PlayerBatting),
		playerPitching: make(map[string]boxscore.PlayerPitching),
		playerFielding: make(map[string]boxscore.PlayerFielding),
		players:        make(map[int64]player.Player),
	}
}

func teamKey(gamePk int64, teamID int) string { return fmt.Sprintf("%d:%d", gamePk, teamID) }
func playerKey(gamePk, playerID int64) string { return fmt.Sprintf("%d:%d", gamePk, playerID) }

type fakeLoader struct {
	store    *fakeStore
	beginErr error
}

func (l *fakeLoader) BeginGame(context.Context) (boxscore.GameTx, error) {
	if l.beginErr != nil {
		return nil, l.beginErr
	}
	return &fakeTx{store: l.store}, nil
}

// fakeTx stages writes and applies them on Commit, dropping them on
// Rollback, matching the per-game transaction contract.
type fakeTx struct {
	store      *fakeStore
	staged     []func(*fakeStore)
	failInsert error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) InsertTeamBoxes(_ context.Context, rows []boxscore.TeamBox) error {
	if t.failInsert != nil {
		return t.failInsert
	}
	for _, row := range rows {
		row := row
		t.staged = append(t.staged, func(s *fakeStore) {
			key := teamKey(row.GamePk, row.TeamID)
			if _, ok := s.teamBox[key]; !ok {
				s.teamBox[key] = row
			}
		})
	}
	return nil
}

func (t *fakeTx) InsertTeamFielding(_ context.Context, rows []boxscore.TeamFielding) error {
	for _, row := range rows {
		row := row
		t.staged = append(t.staged, func(s *fakeStore) {
			key := teamKey(row.GamePk, row.TeamID)
			if _, ok := s.teamFielding[key]; !ok {
				s.teamFielding[key] = row
			}
		})
	}
	return nil
}

func (t *fakeTx) InsertPlayerBatting(_ context.Context, rows []boxscore.PlayerBatting) error {
	for _, row := range rows {
		row := row
		t.staged = append(t.staged, func(s *fakeStore) {
			key := playerKey(row.GamePk, row.PlayerID)
			if _, ok := s.playerBatting[key]; !ok {
				s.playerBatting[key] = row
			}
		})
	}
	return nil
}

func (t *fakeTx) InsertPlayerPitching(_ context.Context, rows []boxscore.PlayerPitching) error {
	for _, row := range rows {
		row := row
		t.staged = append(t.staged, func(s *fakeStore) {
			key := playerKey(row.GamePk, row.PlayerID)
			if _, ok := s.playerPitching[key]; !ok {
				s.playerPitching[key] = row
			}
		})
	}
	return nil
}

func (t *fakeTx) InsertPlayerFielding(_ context.Context, rows []boxscore.PlayerFielding) error {
	for _, row := range rows {
		row := row
		t.staged = append(t.staged, func(s *fakeStore) {
			key := playerKey(row.GamePk, row.PlayerID)
			if _, ok := s.playerFielding[key]; !ok {
				s.playerFielding[key] = row
			}
		})
	}
	return nil
}

func (t *fakeTx) InsertPlayers(_ context.Context, rows []player.Player) error {
	for _, row := range rows {
		row := row
		t.staged = append(t.staged, func(s *fakeStore) {
			if _, ok := s.players[row.ID]; !ok {
				s.players[row.ID] = row
			}
		})
	}
	return nil
}

func (t *fakeTx) FindOpenStint(_ context.Context, playerID int64, seasonYear, teamID int) (*player.Stint, error) {
	var found *player.Stint
	for i := range t.store.stints {
		stint := t.store.stints[i]
		if stint.PlayerID != playerID || stint.SeasonYear != seasonYear || stint.TeamID != teamID {
			continue
		}
		if found == nil || stint.FirstGamePk > found.FirstGamePk {
			copied := stint
			found = &copied
		}
	}
	return found, nil
}

func (t *fakeTx) InsertStint(_ context.Context, stint player.Stint) error {
	t.staged = append(t.staged, func(s *fakeStore) {
		for _, existing := range s.stints {
			if existing.PlayerID == stint.PlayerID && existing.SeasonYear == stint.SeasonYear &&
				existing.TeamID == stint.TeamID && existing.FirstGamePk == stint.FirstGamePk {
				return
			}
		}
		s.stints = append(s.stints, stint)
	})
	return nil
}

func (t *fakeTx) ExtendStint(_ context.Context, stint player.Stint, lastGamePk int64) error {
	t.staged = append(t.staged, func(s *fakeStore) {
		for i := range s.stints {
			existing := &s.stints[i]
			if existing.PlayerID == stint.PlayerID && existing.SeasonYear == stint.SeasonYear &&
				existing.TeamID == stint.TeamID && existing.FirstGamePk == stint.FirstGamePk &&
				existing.LastGamePk < lastGamePk {
				existing.LastGamePk = lastGamePk
			}
		}
	})
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	for _, apply := range t.staged {
		apply(t.store)
	}
	t.staged = nil
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	t.staged = nil
	return nil
}

type fakeGameRepo struct {
	latest *time.Time
	refs   []game.Ref
}

func (r *fakeGameRepo) LatestGameDate(context.Context) (*time.Time, error) { return r.latest, nil }

func (r *fakeGameRepo) ListRefs(context.Context) ([]game.Ref, error) { return r.refs, nil }
func (r *fakeGameRepo) InsertGames(_ context.Context, rows []game.Game) (int, error) {
	return len(rows), nil
}

type fakeFetcher struct {
	schedule      map[string][]statsapi.ScheduleGame
	summaries     map[int64]*statsapi.BoxscoreSummary
	raws          map[int64]*statsapi.RawBoxscore
	people        map[int64]statsapi.Person
	boxscoreCalls int
	peopleCalls   int
	peopleIDs     [][]int64
}

func (f *fakeFetcher) Schedule(_ context.Context, start, _ time.Time) ([]statsapi.ScheduleGame, error) {
	return f.schedule[start.Format("2006-01-02")], nil
}

func (f *fakeFetcher) Boxscore(_ context.Context, gamePk int64) (*statsapi.BoxscoreSummary, error) {
	f.boxscoreCalls++
	return f.summaries[gamePk], nil
}

func (f *fakeFetcher) RawBoxscore(_ context.Context, gamePk int64) (*statsapi.RawBoxscore, error) {
	return f.raws[gamePk], nil
}

func (f *fakeFetcher) People(_ context.Context, ids []int64) ([]statsapi.Person, error) {
	f.peopleCalls++
	f.peopleIDs = append(f.peopleIDs, append([]int64(nil), ids...))
	out := make([]statsapi.Person, 0, len(ids))
	for _, id := range ids {
		if person, ok := f.people[id]; ok {
			out = append(out, person)
		}
	}
	return out, nil
}

func newTestService(fetcher *fakeFetcher, games *fakeGameRepo, loader boxscore.Loader) *IngestService {
	dims := NewDimensionService(fetcher, nil)
	return NewIngestService(fetcher, games, loader, dims, IngestServiceConfig{}, nil)
}

func fetcherForGame(gamePk int64) *fakeFetcher {
	return &fakeFetcher{
		summaries: map[int64]*statsapi.BoxscoreSummary{gamePk: sampleSummary()},
		raws:      map[int64]*statsapi.RawBoxscore{gamePk: sampleRaw()},
		people: map[int64]statsapi.Person{
			301001: {ID: 301001, FullName: "Slugger One"},
			400001: {ID: 400001, FullName: "Starter"},
			400002: {ID: 400002, FullName: "Closer"},
			500001: {ID: 500001, FullName: "Shortstop"},
		},
	}
}

func TestRunRefusesWithoutPriorState(t *testing.T) {
	service := newTestService(&fakeFetcher{}, &fakeGameRepo{}, &fakeLoader{store: newFakeStore()})

	_, err := service.Run(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrNoPriorState)
}

func TestRunAlreadyUpToDate(t *testing.T) {
	today := time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC)
	watermark := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	service := newTestService(&fakeFetcher{}, &fakeGameRepo{latest: &watermark}, &fakeLoader{store: newFakeStore()})

	report, err := service.Run(context.Background(), today)
	require.NoError(t, err)
	assert.Zero(t, report.Candidates)
}

func TestRunLoadsCompletedGamesAfterWatermark(t *testing.T) {
	watermark := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 1, 23, 0, 0, 0, time.UTC)

	fetcher := fetcherForGame(745001)
	fetcher.schedule = map[string][]statsapi.ScheduleGame{
		"2025-06-01": {
			{GamePk: 745001, Season: 2025, Status: "Final", HomeTeamID: 111, AwayTeamID: 147},
			{GamePk: 745002, Season: 2025, Status: "In Progress", HomeTeamID: 119, AwayTeamID: 137},
			// Double-header twin entry; must be de-duplicated.
			{GamePk: 745001, Season: 2025, Status: "Final", HomeTeamID: 111, AwayTeamID: 147},
		},
	}

	store := newFakeStore()
	service := newTestService(fetcher, &fakeGameRepo{latest: &watermark}, &fakeLoader{store: store})

	report, err := service.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Candidates)
	assert.Equal(t, 1, report.Loaded)
	assert.Zero(t, report.Skipped)

	assert.Len(t, store.teamBox, 2)
	assert.Len(t, store.teamFielding, 2)
	assert.Len(t, store.playerBatting, 1)
	assert.Len(t, store.playerPitching, 2)
	assert.Len(t, store.playerFielding, 2)
	assert.Len(t, store.players, 4)
	assert.Len(t, store.stints, 4)
}

func TestRunSkipsUnknownClubsBeforeFetch(t *testing.T) {
	watermark := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.June, 1, 23, 0, 0, 0, time.UTC)

	fetcher := &fakeFetcher{
		schedule: map[string][]statsapi.ScheduleGame{
			// 5000 is a minor-league exhibition opponent.
			"2025-06-01": {{GamePk: 745003, Season: 2025, Status: "Final", HomeTeamID: 111, AwayTeamID: 5000}},
		},
	}

	service := newTestService(fetcher, &fakeGameRepo{latest: &watermark}, &fakeLoader{store: newFakeStore()})

	report, err := service.Run(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, OutcomeSkippedUnknownClub, report.Results[0].Outcome)
	assert.Zero(t, fetcher.boxscoreCalls)
}

func TestBackfillIsIdempotent(t *testing.T) {
	fetcher := fetcherForGame(745001)
	games := &fakeGameRepo{refs: []game.Ref{{GamePk: 745001, SeasonYear: 2025}}}
	store := newFakeStore()
	service := newTestService(fetcher, games, &fakeLoader{store: store})

	report, err := service.Backfill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)

	battingBefore := store.playerBatting[playerKey(745001, 301001)]

	report, err = service.Backfill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Loaded)

	assert.Len(t, store.playerBatting, 1)
	assert.Len(t, store.playerPitching, 2)
	assert.Len(t, store.players, 4)
	assert.Len(t, store.stints, 4)
	assert.Equal(t, battingBefore, store.playerBatting[playerKey(745001, 301001)])
	for _, stint := range store.stints {
		assert.Equal(t, int64(745001), stint.FirstGamePk)
		assert.Equal(t, int64(745001), stint.LastGamePk)
	}
}

func TestUnavailableBoxscoreSkipsGame(t *testing.T) {
	fetcher := &fakeFetcher{
		summaries: map[int64]*statsapi.BoxscoreSummary{},
		raws:      map[int64]*statsapi.RawBoxscore{},
	}
	games := &fakeGameRepo{refs: []game.Ref{{GamePk: 745009, SeasonYear: 2025}}}
	service := newTestService(fetcher, games, &fakeLoader{store: newFakeStore()})

	report, err := service.Backfill(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, OutcomeSkippedUnavailable, report.Results[0].Outcome)
	assert.Zero(t, report.Loaded)
}

func TestLoadFailureRollsBackAndContinues(t *testing.T) {
	fetcher := fetcherForGame(745001)
	fetcher.summaries[745002] = sampleSummary()
	fetcher.raws[745002] = sampleRaw()

	games := &fakeGameRepo{refs: []game.Ref{
		{GamePk: 745001, SeasonYear: 2025},
		{GamePk: 745002, SeasonYear: 2025},
	}}

	store := newFakeStore()
	loader := &failOnceLoader{store: store, failErr: errors.New("constraint violation")}
	service := newTestService(fetcher, games, loader)

	report, err := service.Backfill(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, OutcomeSkippedLoadFailure, report.Results[0].Outcome)
	assert.Equal(t, OutcomeLoaded, report.Results[1].Outcome)
	assert.True(t, loader.firstTx.rolledBack)

	// Only the second game's rows landed.
	assert.Len(t, store.playerBatting, 1)
	assert.Len(t, store.players, 4)
}

type failOnceLoader struct {
	store   *fakeStore
	failErr error
	firstTx *fakeTx
	calls   int
}

func (l *failOnceLoader) BeginGame(context.Context) (boxscore.GameTx, error) {
	l.calls++
	tx := &fakeTx{store: l.store}
	if l.calls == 1 {
		tx.failInsert = l.failErr
		l.firstTx = tx
	}
	return tx, nil
}
