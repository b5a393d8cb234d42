package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/colfarl/BeatTheHouse/external/statsapi"
	"github.com/colfarl/BeatTheHouse/internal/domain/boxscore"
	"github.com/colfarl/BeatTheHouse/internal/domain/player"
)

// buildGameBatch flattens the two API views of one game into the six
// row families. Missing numeric stats have already decoded to zero in
// the typed envelopes; only batting order, ERA and the batters-faced
// fallback stay nullable or computed.
func buildGameBatch(gamePk int64, seasonYear int, summary *statsapi.BoxscoreSummary, raw *statsapi.RawBoxscore) (boxscore.Batch, error) {
	if summary == nil || raw == nil {
		return boxscore.Batch{}, fmt.Errorf("%w: boxscore views are required", ErrInvalidInput)
	}

	batch := boxscore.Batch{GamePk: gamePk, SeasonYear: seasonYear}

	appearances := make(map[boxscore.Appearance]struct{}, 64)
	observe := func(playerID int64, teamID int) {
		if playerID <= 0 {
			return
		}
		appearances[boxscore.Appearance{PlayerID: playerID, TeamID: teamID}] = struct{}{}
	}

	for _, side := range []statsapi.TeamSummary{summary.Away, summary.Home} {
		batch.TeamBoxes = append(batch.TeamBoxes, mapTeamBox(gamePk, side))

		for _, line := range side.Batters {
			row, ok := mapPlayerBatting(gamePk, side.TeamID, line)
			if !ok {
				continue
			}
			batch.PlayerBatting = append(batch.PlayerBatting, row)
			observe(line.PlayerID, side.TeamID)
		}

		for order, line := range side.Pitchers {
			batch.PlayerPitching = append(batch.PlayerPitching, mapPlayerPitching(gamePk, side.TeamID, line, order == 0))
			observe(line.PlayerID, side.TeamID)
		}
	}

	for _, side := range []statsapi.RawTeam{raw.Teams.Away, raw.Teams.Home} {
		batch.TeamFielding = append(batch.TeamFielding, boxscore.TeamFielding{
			GamePk:      gamePk,
			TeamID:      side.Team.ID,
			Putouts:     side.TeamStats.Fielding.Putouts,
			Assists:     side.TeamStats.Fielding.Assists,
			Errors:      side.TeamStats.Fielding.Errors,
			DoublePlays: side.TeamStats.Fielding.DoublePlays,
		})

		for _, entry := range side.Players {
			fielding := entry.Stats.Fielding
			if fielding.Chances() == 0 {
				continue
			}
			batch.PlayerFielding = append(batch.PlayerFielding, boxscore.PlayerFielding{
				GamePk:      gamePk,
				PlayerID:    entry.Person.ID,
				TeamID:      side.Team.ID,
				Putouts:     fielding.Putouts,
				Assists:     fielding.Assists,
				Errors:      fielding.Errors,
				DoublePlays: fielding.DoublePlays,
			})
			observe(entry.Person.ID, side.Team.ID)
		}
	}

	// Map iteration order is random; keep the appearance list stable so
	// stint updates replay deterministically.
	batch.Appearances = make([]boxscore.Appearance, 0, len(appearances))
	for appearance := range appearances {
		batch.Appearances = append(batch.Appearances, appearance)
	}
	sort.Slice(batch.Appearances, func(i, j int) bool {
		if batch.Appearances[i].PlayerID != batch.Appearances[j].PlayerID {
			return batch.Appearances[i].PlayerID < batch.Appearances[j].PlayerID
		}
		return batch.Appearances[i].TeamID < batch.Appearances[j].TeamID
	})

	sort.Slice(batch.PlayerFielding, func(i, j int) bool {
		return batch.PlayerFielding[i].PlayerID < batch.PlayerFielding[j].PlayerID
	})

	return batch, nil
}

func mapTeamBox(gamePk int64, side statsapi.TeamSummary) boxscore.TeamBox {
	batting := side.Batting
	pitching := side.Pitching
	return boxscore.TeamBox{
		GamePk: gamePk,
		TeamID: side.TeamID,
		IsHome: side.IsHome,

		AtBats:         batting.AtBats,
		Runs:           batting.Runs,
		Hits:           batting.Hits,
		Doubles:        batting.Doubles,
		Triples:        batting.Triples,
		HomeRuns:       batting.HomeRuns,
		RBI:            batting.RBI,
		Walks:          batting.BaseOnBalls,
		StrikeOuts:     batting.StrikeOuts,
		StolenBases:    batting.StolenBases,
		CaughtStealing: batting.CaughtStealing,
		HitByPitch:     batting.HitByPitch,
		SacBunts:       batting.SacBunts,
		SacFlies:       batting.SacFlies,
		LeftOnBase:     batting.LeftOnBase,

		OutsPitched:      statsapi.InningsToOuts(pitching.InningsPitched),
		HitsAllowed:      pitching.Hits,
		RunsAllowed:      pitching.Runs,
		EarnedRuns:       pitching.EarnedRuns,
		WalksAllowed:     pitching.BaseOnBalls,
		PitcherStrikeOut: pitching.StrikeOuts,
		HomeRunsAllowed:  pitching.HomeRuns,
		Pitches:          pitching.PitchCount(),
		ERA:              statsapi.ParseERA(pitching.ERA),
	}
}

func mapPlayerBatting(gamePk int64, teamID int, line statsapi.PlayerLine) (boxscore.PlayerBatting, bool) {
	// Roster players who never entered the game ship an all-zero line.
	if line.Batting.Empty() {
		return boxscore.PlayerBatting{}, false
	}

	batting := line.Batting
	return boxscore.PlayerBatting{
		GamePk:   gamePk,
		PlayerID: line.PlayerID,
		TeamID:   teamID,

		BattingOrder: statsapi.BattingOrderSlot(line.BattingOrder),
		Position:     line.Position,

		AtBats:         batting.AtBats,
		Runs:           batting.Runs,
		Hits:           batting.Hits,
		Doubles:        batting.Doubles,
		Triples:        batting.Triples,
		HomeRuns:       batting.HomeRuns,
		RBI:            batting.RBI,
		Walks:          batting.BaseOnBalls,
		StrikeOuts:     batting.StrikeOuts,
		StolenBases:    batting.StolenBases,
		CaughtStealing: batting.CaughtStealing,
		HitByPitch:     batting.HitByPitch,
		SacBunts:       batting.SacBunts,
		SacFlies:       batting.SacFlies,
		LeftOnBase:     batting.LeftOnBase,
	}, true
}

func mapPlayerPitching(gamePk int64, teamID int, line statsapi.PlayerLine, isStarting bool) boxscore.PlayerPitching {
	pitching := line.Pitching

	battersFaced := 0
	if pitching.BattersFaced != nil {
		battersFaced = *pitching.BattersFaced
	} else {
		battersFaced = pitching.AtBats + pitching.BaseOnBalls + pitching.HitByPitch +
			pitching.SacBunts + pitching.SacFlies
	}

	return boxscore.PlayerPitching{
		GamePk:   gamePk,
		PlayerID: line.PlayerID,
		TeamID:   teamID,

		IsStarting: isStarting,
		Win:        statsapi.HasDecision(pitching.Note, "W"),
		Save:       statsapi.HasDecision(pitching.Note, "S"),
		Hold:       statsapi.HasDecision(pitching.Note, "H"),

		OutsPitched:  statsapi.InningsToOuts(pitching.InningsPitched),
		HitsAllowed:  pitching.Hits,
		RunsAllowed:  pitching.Runs,
		EarnedRuns:   pitching.EarnedRuns,
		Walks:        pitching.BaseOnBalls,
		StrikeOuts:   pitching.StrikeOuts,
		HomeRuns:     pitching.HomeRuns,
		HitByPitch:   pitching.HitByPitch,
		BattersFaced: battersFaced,
		Pitches:      pitching.PitchCount(),
		ERA:          statsapi.ParseERA(pitching.ERA),
	}
}

// mapPerson converts an identity record, parsing the upstream's
// date-only strings. Unparseable dates stay nil rather than failing the
// whole identity batch.
func mapPerson(person statsapi.Person) player.Player {
	return player.Player{
		ID:           person.ID,
		FullName:     person.FullName,
		BirthDate:    parseDateOnly(person.BirthDate),
		BirthCountry: person.BirthCountry,
		Height:       person.Height,
		WeightLbs:    person.Weight,
		Position:     person.PrimaryPosition.Abbreviation,
		BatSide:      person.BatSide.Code,
		PitchHand:    person.PitchHand.Code,
		DebutDate:    parseDateOnly(person.MLBDebutDate),
	}
}

func parseDateOnly(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &parsed
}
