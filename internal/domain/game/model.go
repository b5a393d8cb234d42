package game

import "time"

// Game is one contest in the game dimension table. The ingestion core
// treats this table as externally owned and only reads its watermark;
// the schedule loader run mode is what populates it.
type Game struct {
	GamePk       int64
	SeasonYear   int
	GameDate     time.Time
	Venue        string
	HomeTeamID   int
	AwayTeamID   int
	FirstPitchTS *time.Time
	Attendance   *int
	WeatherTempF *int
	WindMPH      *int
	HomeScore    *int
	AwayScore    *int
}

// Ref is the minimal handle the backfill run needs per stored game.
type Ref struct {
	GamePk     int64
	SeasonYear int
}
