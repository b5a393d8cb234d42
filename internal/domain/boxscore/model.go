package boxscore

// TeamBox is one club's aggregate batting and pitching line for one
// game, keyed by (gamePk, team_id).
type TeamBox struct {
	GamePk int64
	TeamID int
	IsHome bool

	AtBats         int
	Runs           int
	Hits           int
	Doubles        int
	Triples        int
	HomeRuns       int
	RBI            int
	Walks          int
	StrikeOuts     int
	StolenBases    int
	CaughtStealing int
	HitByPitch     int
	SacBunts       int
	SacFlies       int
	LeftOnBase     int

	OutsPitched      int
	HitsAllowed      int
	RunsAllowed      int
	EarnedRuns       int
	WalksAllowed     int
	PitcherStrikeOut int
	HomeRunsAllowed  int
	Pitches          int
	ERA              *float64
}

// TeamFielding is one club's aggregate fielding line, keyed by
// (gamePk, team_id).
type TeamFielding struct {
	GamePk      int64
	TeamID      int
	Putouts     int
	Assists     int
	Errors      int
	DoublePlays int
}

// PlayerBatting is one player's batting line, keyed by
// (gamePk, player_id). BattingOrder is nil for mid-game defensive
// replacements the upstream never assigned a slot code.
type PlayerBatting struct {
	GamePk   int64
	PlayerID int64
	TeamID   int

	BattingOrder *int
	Position     string

	AtBats         int
	Runs           int
	Hits           int
	Doubles        int
	Triples        int
	HomeRuns       int
	RBI            int
	Walks          int
	StrikeOuts     int
	StolenBases    int
	CaughtStealing int
	HitByPitch     int
	SacBunts       int
	SacFlies       int
	LeftOnBase     int
}

// PlayerPitching is one pitcher's line, keyed by (gamePk, player_id).
// IsStarting is true only for the first pitcher in the appearance list.
type PlayerPitching struct {
	GamePk   int64
	PlayerID int64
	TeamID   int

	IsStarting bool
	Win        bool
	Save       bool
	Hold       bool

	OutsPitched  int
	HitsAllowed  int
	RunsAllowed  int
	EarnedRuns   int
	Walks        int
	StrikeOuts   int
	HomeRuns     int
	HitByPitch   int
	BattersFaced int
	Pitches      int
	ERA          *float64
}

// PlayerFielding is one player's defensive line, keyed by
// (gamePk, player_id). Rows only exist for players with at least one
// defensive chance.
type PlayerFielding struct {
	GamePk      int64
	PlayerID    int64
	TeamID      int
	Putouts     int
	Assists     int
	Errors      int
	DoublePlays int
}

// Appearance is one distinct (player, team) sighting within a game,
// feeding stint maintenance.
type Appearance struct {
	PlayerID int64
	TeamID   int
}

// Batch is everything the normalizer produces for one game: the five
// fact row sets plus the appearance list that drives identity and
// stint upkeep.
type Batch struct {
	GamePk     int64
	SeasonYear int

	TeamBoxes      []TeamBox
	TeamFielding   []TeamFielding
	PlayerBatting  []PlayerBatting
	PlayerPitching []PlayerPitching
	PlayerFielding []PlayerFielding
	Appearances    []Appearance
}

// PlayerIDs returns the distinct player ids observed in the batch, in
// first-seen order.
func (b Batch) PlayerIDs() []int64 {
	seen := make(map[int64]struct{}, len(b.Appearances))
	out := make([]int64, 0, len(b.Appearances))
	for _, appearance := range b.Appearances {
		if _, ok := seen[appearance.PlayerID]; ok {
			continue
		}
		seen[appearance.PlayerID] = struct{}{}
		out = append(out, appearance.PlayerID)
	}
	return out
}
