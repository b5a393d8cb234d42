package player

import "time"

// Player is the write-once identity dimension row. Attributes are
// treated as immutable once inserted; re-observing a player never
// updates the row.
type Player struct {
	ID           int64
	FullName     string
	BirthDate    *time.Time
	BirthCountry string
	Height       string
	WeightLbs    int
	Position     string
	BatSide      string
	PitchHand    string
	DebutDate    *time.Time
}

// Stint is one contiguous window of games a player spent on a team's
// roster within a season. last_gamepk only ever moves forward; a trade
// opens a second stint for the new team rather than touching this one.
type Stint struct {
	PlayerID    int64
	SeasonYear  int
	TeamID      int
	FirstGamePk int64
	LastGamePk  int64
}
