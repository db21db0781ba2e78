// Package stats derives standings tables, team and player aggregates,
// rankings and event rollups from stored match facts. Every function here is
// pure: it takes the already-fetched collections, returns fresh rows and
// keeps no state between calls. Nothing in this package touches the
// database.
package stats

import (
	"sort"

	"github.com/youthleague/football-system/models"
)

// ResultLine is the win/draw/loss accounting shared by standings and
// per-team statistics. Points and GoalDifference are kept in step with the
// counters on every recorded match.
type ResultLine struct {
	Played         int `json:"played"`
	Wins           int `json:"wins"`
	Draws          int `json:"draws"`
	Losses         int `json:"losses"`
	GoalsFor       int `json:"goals_for"`
	GoalsAgainst   int `json:"goals_against"`
	GoalDifference int `json:"goal_difference"`
	Points         int `json:"points"`
}

func (l *ResultLine) addResult(teamScore, opponentScore int) {
	l.Played++
	l.GoalsFor += teamScore
	l.GoalsAgainst += opponentScore

	switch {
	case teamScore > opponentScore:
		l.Wins++
	case teamScore == opponentScore:
		l.Draws++
	default:
		l.Losses++
	}

	l.Points = l.Wins*3 + l.Draws
	l.GoalDifference = l.GoalsFor - l.GoalsAgainst
}

type StandingsRow struct {
	TeamID      int     `json:"team_id"`
	TeamName    string  `json:"team_name"`
	TeamLogoURL *string `json:"team_logo_url,omitempty"`

	ResultLine
}

type TeamStatsRow struct {
	TeamID int `json:"team_id"`

	ResultLine
}

// ComputeStandings builds a standings table for the given eligible teams
// over the given matches. Only finished matches with both scores recorded
// count. Teams without a single qualifying match stay in the table with
// all-zero counters. The result is ordered by points, then goal difference,
// then goals scored, all descending; remaining ties keep the input team
// order (the sort is stable, not a total order).
func ComputeStandings(teams []models.Team, matches []*models.Match) []StandingsRow {
	rows := make([]StandingsRow, 0, len(teams))

	for _, team := range teams {
		row := StandingsRow{
			TeamID:      team.ID,
			TeamName:    team.Name,
			TeamLogoURL: team.LogoURL,
		}
		for _, match := range matches {
			applyMatch(&row.ResultLine, team.ID, match)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return lessByStandings(&rows[i].ResultLine, &rows[j].ResultLine)
	})

	return rows
}

// ComputeTeamStatistics aggregates one team's record over the given matches,
// typically the team's full finished-match history rather than a single
// tournament.
func ComputeTeamStatistics(teamID int, matches []*models.Match) TeamStatsRow {
	row := TeamStatsRow{TeamID: teamID}
	for _, match := range matches {
		applyMatch(&row.ResultLine, teamID, match)
	}
	return row
}

func applyMatch(line *ResultLine, teamID int, match *models.Match) {
	if !match.IsFinished() {
		return
	}

	switch teamID {
	case match.HomeTeamID:
		line.addResult(*match.HomeScore, *match.AwayScore)
	case match.AwayTeamID:
		line.addResult(*match.AwayScore, *match.HomeScore)
	}
}

func lessByStandings(a, b *ResultLine) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDifference != b.GoalDifference {
		return a.GoalDifference > b.GoalDifference
	}
	return a.GoalsFor > b.GoalsFor
}
