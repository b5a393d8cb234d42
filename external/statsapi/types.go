package statsapi

import (
	"strconv"
	"strings"
	"time"
)

// ScheduleGame is one game row from the schedule endpoint, flattened to
// the fields the pipeline cares about.
type ScheduleGame struct {
	GamePk     int64
	Season     int
	Date       time.Time
	FirstPitch *time.Time
	Status     string
	HomeTeamID int
	AwayTeamID int
	HomeScore  *int
	AwayScore  *int
	Venue      string
}

// Completed reports whether the schedule status marks a finished game.
func (g ScheduleGame) Completed() bool {
	return strings.HasPrefix(g.Status, "Final") || strings.HasPrefix(g.Status, "Completed")
}

// LabelValue is one entry of the game-box info list ("Weather", "Att", ...).
type LabelValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// BoxscoreSummary is the summarized view of one game's box score: team
// totals plus batter/pitcher lines already ordered the way the upstream
// presents them. It is reshaped client-side from the boxscore payload,
// mirroring what the upstream's own reference client does.
type BoxscoreSummary struct {
	GamePk      int64
	Away        TeamSummary
	Home        TeamSummary
	GameBoxInfo []LabelValue
}

// TeamSummary is one club's side of the summarized view.
type TeamSummary struct {
	TeamID   int
	TeamName string
	IsHome   bool
	Batting  BattingStats
	Pitching PitchingStats
	Batters  []PlayerLine
	Pitchers []PlayerLine
}

// PlayerLine is one player's stat line inside a team summary. Batters
// carry Batting plus the raw battingOrder code; pitchers carry Pitching
// plus the decision note.
type PlayerLine struct {
	PlayerID     int64
	FullName     string
	Position     string
	BattingOrder string
	Batting      BattingStats
	Pitching     PitchingStats
}

// RawBoxscore is the raw boxscore view: per-team player maps and team
// fielding totals, shaped the way the endpoint returns them.
type RawBoxscore struct {
	Teams struct {
		Away RawTeam `json:"away"`
		Home RawTeam `json:"home"`
	} `json:"teams"`
	Info []LabelValue `json:"info"`
}

// RawTeam is one club's side of the raw view.
type RawTeam struct {
	Team struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	TeamStats StatBlocks           `json:"teamStats"`
	Players   map[string]RawPlayer `json:"players"`
	Batters   []int64              `json:"batters"`
	Pitchers  []int64              `json:"pitchers"`
}

// RawPlayer is one player's entry in the raw per-team player map.
type RawPlayer struct {
	Person struct {
		ID       int64  `json:"id"`
		FullName string `json:"fullName"`
	} `json:"person"`
	Position struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	BattingOrder string     `json:"battingOrder"`
	Stats        StatBlocks `json:"stats"`
}

// StatBlocks groups the three stat families found on both team and
// player nodes. Absent families decode to zero values.
type StatBlocks struct {
	Batting  BattingStats  `json:"batting"`
	Pitching PitchingStats `json:"pitching"`
	Fielding FieldingStats `json:"fielding"`
}

type BattingStats struct {
	AtBats         int `json:"atBats"`
	Runs           int `json:"runs"`
	Hits           int `json:"hits"`
	Doubles        int `json:"doubles"`
	Triples        int `json:"triples"`
	HomeRuns       int `json:"homeRuns"`
	RBI            int `json:"rbi"`
	BaseOnBalls    int `json:"baseOnBalls"`
	StrikeOuts     int `json:"strikeOuts"`
	StolenBases    int `json:"stolenBases"`
	CaughtStealing int `json:"caughtStealing"`
	HitByPitch     int `json:"hitByPitch"`
	SacBunts       int `json:"sacBunts"`
	SacFlies       int `json:"sacFlies"`
	LeftOnBase     int `json:"leftOnBase"`
}

// Empty reports a stat line with no plate appearance at all, the shape
// upstream emits for roster players who never entered the game.
func (b BattingStats) Empty() bool {
	return b.AtBats == 0 && b.Runs == 0 && b.Hits == 0 && b.BaseOnBalls == 0 &&
		b.StrikeOuts == 0 && b.HitByPitch == 0 && b.SacBunts == 0 && b.SacFlies == 0 &&
		b.StolenBases == 0 && b.LeftOnBase == 0
}

type PitchingStats struct {
	InningsPitched string `json:"inningsPitched"`
	Hits           int    `json:"hits"`
	Runs           int    `json:"runs"`
	EarnedRuns     int    `json:"earnedRuns"`
	BaseOnBalls    int    `json:"baseOnBalls"`
	StrikeOuts     int    `json:"strikeOuts"`
	HomeRuns       int    `json:"homeRuns"`
	HitByPitch     int    `json:"hitByPitch"`
	AtBats         int    `json:"atBats"`
	SacBunts       int    `json:"sacBunts"`
	SacFlies       int    `json:"sacFlies"`
	BattersFaced   *int   `json:"battersFaced"`
	// The pitch-count key was renamed upstream; both spellings appear in
	// historical payloads.
	PitchesThrown   *int   `json:"pitchesThrown"`
	NumberOfPitches *int   `json:"numberOfPitches"`
	ERA             string `json:"era"`
	Note            string `json:"note"`
}

// PitchCount prefers the newer key, falling back to the historical one.
func (p PitchingStats) PitchCount() int {
	if p.PitchesThrown != nil {
		return *p.PitchesThrown
	}
	if p.NumberOfPitches != nil {
		return *p.NumberOfPitches
	}
	return 0
}

type FieldingStats struct {
	Putouts     int `json:"putOuts"`
	Assists     int `json:"assists"`
	Errors      int `json:"errors"`
	DoublePlays int `json:"doublePlays"`
}

// Chances is the total defensive involvement used to decide whether a
// player fielding row is worth emitting.
func (f FieldingStats) Chances() int {
	return f.Putouts + f.Assists + f.Errors + f.DoublePlays
}

// Person is one identity record from the people endpoint.
type Person struct {
	ID              int64  `json:"id"`
	FullName        string `json:"fullName"`
	BirthDate       string `json:"birthDate"`
	BirthCountry    string `json:"birthCountry"`
	Height          string `json:"height"`
	Weight          int    `json:"weight"`
	PrimaryPosition struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"primaryPosition"`
	BatSide struct {
		Code string `json:"code"`
	} `json:"batSide"`
	PitchHand struct {
		Code string `json:"code"`
	} `json:"pitchHand"`
	MLBDebutDate string `json:"mlbDebutDate"`
}

// Wire envelopes. These stay private; callers only see the flattened
// types above.

type scheduleEnvelope struct {
	Dates []struct {
		Date  string             `json:"date"`
		Games []scheduleGameItem `json:"games"`
	} `json:"dates"`
}

type scheduleGameItem struct {
	GamePk   int64  `json:"gamePk"`
	Season   string `json:"season"`
	GameDate string `json:"gameDate"`
	GameType string `json:"gameType"`
	Status   struct {
		DetailedState string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Away scheduleSide `json:"away"`
		Home scheduleSide `json:"home"`
	} `json:"teams"`
	Venue struct {
		Name string `json:"name"`
	} `json:"venue"`
}

type scheduleSide struct {
	Score *int `json:"score"`
	Team  struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

type peopleEnvelope struct {
	People []Person `json:"people"`
}

func mapScheduleItem(officialDate string, item scheduleGameItem) (ScheduleGame, bool) {
	if item.GamePk <= 0 {
		return ScheduleGame{}, false
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(officialDate))
	if err != nil {
		return ScheduleGame{}, false
	}

	season, err := strconv.Atoi(strings.TrimSpace(item.Season))
	if err != nil || season <= 0 {
		season = date.Year()
	}

	out := ScheduleGame{
		GamePk:     item.GamePk,
		Season:     season,
		Date:       date,
		Status:     strings.TrimSpace(item.Status.DetailedState),
		HomeTeamID: item.Teams.Home.Team.ID,
		AwayTeamID: item.Teams.Away.Team.ID,
		HomeScore:  item.Teams.Home.Score,
		AwayScore:  item.Teams.Away.Score,
		Venue:      strings.TrimSpace(item.Venue.Name),
	}
	if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(item.GameDate)); err == nil {
		v := parsed.UTC()
		out.FirstPitch = &v
	}
	return out, true
}

func summarizeBoxscore(gamePk int64, raw *RawBoxscore) *BoxscoreSummary {
	if raw == nil {
		return nil
	}
	return &BoxscoreSummary{
		GamePk:      gamePk,
		Away:        summarizeTeam(raw.Teams.Away, false),
		Home:        summarizeTeam(raw.Teams.Home, true),
		GameBoxInfo: append([]LabelValue(nil), raw.Info...),
	}
}

func summarizeTeam(side RawTeam, isHome bool) TeamSummary {
	out := TeamSummary{
		TeamID:   side.Team.ID,
		TeamName: side.Team.Name,
		IsHome:   isHome,
		Batting:  side.TeamStats.Batting,
		Pitching: side.TeamStats.Pitching,
	}
	for _, id := range side.Batters {
		if line, ok := playerLine(side.Players, id); ok {
			out.Batters = append(out.Batters, line)
		}
	}
	for _, id := range side.Pitchers {
		if line, ok := playerLine(side.Players, id); ok {
			out.Pitchers = append(out.Pitchers, line)
		}
	}
	return out
}

func playerLine(players map[string]RawPlayer, id int64) (PlayerLine, bool) {
	entry, ok := players["ID"+strconv.FormatInt(id, 10)]
	if !ok {
		return PlayerLine{}, false
	}
	return PlayerLine{
		PlayerID:     entry.Person.ID,
		FullName:     entry.Person.FullName,
		Position:     entry.Position.Abbreviation,
		BattingOrder: entry.BattingOrder,
		Batting:      entry.Stats.Batting,
		Pitching:     entry.Stats.Pitching,
	}, true
}
