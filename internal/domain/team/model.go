package team

import "sort"

// Club is one MLB franchise. The league assigns stable integer ids;
// the 30 active clubs live in the static registry below.
type Club struct {
	ID       int
	Abbr     string
	Name     string
	League   string
	Division string
}

// SeasonClub is a club row scoped to one season year, matching the
// team table's (team_id, season_year) key.
type SeasonClub struct {
	TeamID     int
	SeasonYear int
	Name       string
	Abbr       string
	League     string
	Division   string
}

// Registry maps the league's club ids to franchise metadata. Ids are
// assigned by the upstream source and have been stable for decades;
// anything outside this map is a non-MLB club (minor league, exhibition
// opponent) and gets skipped by the pipeline.
var Registry = map[int]Club{
	108: {ID: 108, Abbr: "LAA", Name: "Los Angeles Angels", League: "AL", Division: "W"},
	109: {ID: 109, Abbr: "AZ", Name: "Arizona Diamondbacks", League: "NL", Division: "W"},
	110: {ID: 110, Abbr: "BAL", Name: "Baltimore Orioles", League: "AL", Division: "E"},
	111: {ID: 111, Abbr: "BOS", Name: "Boston Red Sox", League: "AL", Division: "E"},
	112: {ID: 112, Abbr: "CHC", Name: "Chicago Cubs", League: "NL", Division: "C"},
	113: {ID: 113, Abbr: "CIN", Name: "Cincinnati Reds", League: "NL", Division: "C"},
	114: {ID: 114, Abbr: "CLE", Name: "Cleveland Guardians", League: "AL", Division: "C"},
	115: {ID: 115, Abbr: "COL", Name: "Colorado Rockies", League: "NL", Division: "W"},
	116: {ID: 116, Abbr: "DET", Name: "Detroit Tigers", League: "AL", Division: "C"},
	117: {ID: 117, Abbr: "HOU", Name: "Houston Astros", League: "AL", Division: "W"},
	118: {ID: 118, Abbr: "KC", Name: "Kansas City Royals", League: "AL", Division: "C"},
	119: {ID: 119, Abbr: "LAD", Name: "Los Angeles Dodgers", League: "NL", Division: "W"},
	120: {ID: 120, Abbr: "WSH", Name: "Washington Nationals", League: "NL", Division: "E"},
	121: {ID: 121, Abbr: "NYM", Name: "New York Mets", League: "NL", Division: "E"},
	133: {ID: 133, Abbr: "ATH", Name: "Oakland Athletics", League: "AL", Division: "W"},
	134: {ID: 134, Abbr: "PIT", Name: "Pittsburgh Pirates", League: "NL", Division: "C"},
	135: {ID: 135, Abbr: "SD", Name: "San Diego Padres", League: "NL", Division: "W"},
	136: {ID: 136, Abbr: "SEA", Name: "Seattle Mariners", League: "AL", Division: "W"},
	137: {ID: 137, Abbr: "SF", Name: "San Francisco Giants", League: "NL", Division: "W"},
	138: {ID: 138, Abbr: "STL", Name: "St. Louis Cardinals", League: "NL", Division: "C"},
	139: {ID: 139, Abbr: "TB", Name: "Tampa Bay Rays", League: "AL", Division: "E"},
	140: {ID: 140, Abbr: "TEX", Name: "Texas Rangers", League: "AL", Division: "W"},
	141: {ID: 141, Abbr: "TOR", Name: "Toronto Blue Jays", League: "AL", Division: "E"},
	142: {ID: 142, Abbr: "MIN", Name: "Minnesota Twins", League: "AL", Division: "C"},
	143: {ID: 143, Abbr: "PHI", Name: "Philadelphia Phillies", League: "NL", Division: "E"},
	144: {ID: 144, Abbr: "ATL", Name: "Atlanta Braves", League: "NL", Division: "E"},
	145: {ID: 145, Abbr: "CWS", Name: "Chicago White Sox", League: "AL", Division: "C"},
	146: {ID: 146, Abbr: "MIA", Name: "Miami Marlins", League: "NL", Division: "E"},
	147: {ID: 147, Abbr: "NYY", Name: "New York Yankees", League: "AL", Division: "E"},
	158: {ID: 158, Abbr: "MIL", Name: "Milwaukee Brewers", League: "NL", Division: "C"},
}

// Known reports whether id belongs to an MLB club.
func Known(id int) bool {
	_, ok := Registry[id]
	return ok
}

// All returns the registry sorted by club id.
func All() []Club {
	out := make([]Club, 0, len(Registry))
	for _, club := range Registry {
		out = append(out, club)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SeasonRows expands the registry into per-season rows for each year in
// [fromYear, toYear].
func SeasonRows(fromYear, toYear int) []SeasonClub {
	rows := make([]SeasonClub, 0, (toYear-fromYear+1)*len(Registry))
	for year := fromYear; year <= toYear; year++ {
		for _, club := range All() {
			rows = append(rows, SeasonClub{
				TeamID:     club.ID,
				SeasonYear: year,
				Name:       club.Name,
				Abbr:       club.Abbr,
				League:     club.League,
				Division:   club.Division,
			})
		}
	}
	return rows
}
