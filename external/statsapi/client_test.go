package statsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient:     server.Client(),
		BaseURL:        server.URL,
		MaxRetries:     3,
		RetryBaseDelay: time.Millisecond,
		PacingDelay:    0,
	})
	return client, server
}

func TestScheduleRetryExhaustionReturnsEmpty(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	games, err := client.Schedule(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, games)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRawBoxscoreRetryExhaustionReturnsNil(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	box, err := client.RawBoxscore(context.Background(), 777)
	require.NoError(t, err)
	assert.Nil(t, box)
}

func TestScheduleRecoversAfterTransientFailure(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"dates": [{
				"date": "2025-06-01",
				"games": [{
					"gamePk": 745001,
					"season": "2025",
					"gameDate": "2025-06-01T23:10:00Z",
					"status": {"detailedState": "Final"},
					"teams": {
						"away": {"score": 3, "team": {"id": 147, "name": "New York Yankees"}},
						"home": {"score": 5, "team": {"id": 111, "name": "Boston Red Sox"}}
					},
					"venue": {"name": "Fenway Park"}
				}]
			}]
		}`))
	})

	games, err := client.Schedule(context.Background(), time.Now(), time.Now())
	require.NoError(t, err)
	require.Len(t, games, 1)

	game := games[0]
	assert.Equal(t, int64(745001), game.GamePk)
	assert.Equal(t, 2025, game.Season)
	assert.Equal(t, "2025-06-01", game.Date.Format("2006-01-02"))
	assert.True(t, game.Completed())
	assert.Equal(t, 111, game.HomeTeamID)
	assert.Equal(t, 147, game.AwayTeamID)
	require.NotNil(t, game.HomeScore)
	assert.Equal(t, 5, *game.HomeScore)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientStopsOnNonRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.RawBoxscore(context.Background(), 777)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestBoxscoreSummaryReshaping(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"teams": {
				"away": {
					"team": {"id": 147, "name": "New York Yankees"},
					"teamStats": {
						"batting": {"atBats": 33, "runs": 3, "hits": 8},
						"pitching": {"inningsPitched": "8.0", "pitchesThrown": 110, "era": "3.50"}
					},
					"players": {
						"ID660271": {
							"person": {"id": 660271, "fullName": "Shohei Ohtani"},
							"position": {"abbreviation": "DH"},
							"battingOrder": "100",
							"stats": {
								"batting": {"atBats": 4, "hits": 2, "homeRuns": 1},
								"fielding": {}
							}
						}
					},
					"batters": [660271],
					"pitchers": []
				},
				"home": {
					"team": {"id": 111, "name": "Boston Red Sox"},
					"teamStats": {},
					"players": {},
					"batters": [],
					"pitchers": []
				}
			},
			"info": [{"label": "Att", "value": "41,018."}]
		}`))
	})

	summary, err := client.Boxscore(context.Background(), 745001)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, int64(745001), summary.GamePk)
	assert.False(t, summary.Away.IsHome)
	assert.True(t, summary.Home.IsHome)
	assert.Equal(t, 33, summary.Away.Batting.AtBats)
	assert.Equal(t, 110, summary.Away.Pitching.PitchCount())

	require.Len(t, summary.Away.Batters, 1)
	batter := summary.Away.Batters[0]
	assert.Equal(t, int64(660271), batter.PlayerID)
	assert.Equal(t, "DH", batter.Position)
	assert.Equal(t, "100", batter.BattingOrder)
	assert.Equal(t, 2, batter.Batting.Hits)

	require.Len(t, summary.GameBoxInfo, 1)
	assert.Equal(t, "Att", summary.GameBoxInfo[0].Label)
}

func TestPeopleChunksRequests(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.NotEmpty(t, r.URL.Query().Get("personIds"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"people": [{"id": 1, "fullName": "Test Player"}]}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		HTTPClient:      server.Client(),
		BaseURL:         server.URL,
		MaxRetries:      1,
		RetryBaseDelay:  time.Millisecond,
		PacingDelay:     0,
		PeopleBatchSize: 2,
	})

	ids := []int64{10, 20, 30, 40, 50}
	people, err := client.People(context.Background(), ids)
	require.NoError(t, err)
	assert.Len(t, people, 3)
	assert.Equal(t, int32(3), calls.Load())
}

func TestPitchCountPrefersNewerField(t *testing.T) {
	newer := 95
	older := 90

	both := PitchingStats{PitchesThrown: &newer, NumberOfPitches: &older}
	assert.Equal(t, 95, both.PitchCount())

	historical := PitchingStats{NumberOfPitches: &older}
	assert.Equal(t, 90, historical.PitchCount())

	assert.Zero(t, PitchingStats{}.PitchCount())
}
