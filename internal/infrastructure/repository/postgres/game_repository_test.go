package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colfarl/BeatTheHouse/internal/domain/game"
)

func TestLatestGameDateEmptyTable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGameRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(game_date) AS latest FROM game")).
		WillReturnRows(sqlmock.NewRows([]string{"latest"}).AddRow(nil))

	latest, err := repo.LatestGameDate(context.Background())
	require.NoError(t, err)
	assert.Nil(t, latest)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestGameDateReturnsWatermark(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGameRepository(db)

	watermark := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(game_date) AS latest FROM game")).
		WillReturnRows(sqlmock.NewRows([]string{"latest"}).AddRow(watermark))

	latest, err := repo.LatestGameDate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.True(t, latest.Equal(watermark))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRefsOrdersByGamePk(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGameRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT gamepk, season_year FROM game ORDER BY gamepk")).
		WillReturnRows(sqlmock.NewRows([]string{"gamepk", "season_year"}).
			AddRow(744900, 2025).
			AddRow(745001, 2025))

	refs, err := repo.ListRefs(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, int64(744900), refs[0].GamePk)
	assert.Equal(t, 2025, refs[1].SeasonYear)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertGamesReportsInsertedCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGameRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows := []game.Game{
		{GamePk: 745001, SeasonYear: 2025, GameDate: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), HomeTeamID: 111, AwayTeamID: 147},
		{GamePk: 744900, SeasonYear: 2025, GameDate: time.Date(2025, time.May, 30, 0, 0, 0, 0, time.UTC), HomeTeamID: 119, AwayTeamID: 137},
	}

	inserted, err := repo.InsertGames(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
