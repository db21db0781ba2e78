package stats

import (
	"github.com/youthleague/football-system/models"
)

type TeamStatRow struct {
	StandingsRow

	Assists       int `json:"assists"`
	YellowCards   int `json:"yellow_cards"`
	RedCards      int `json:"red_cards"`
	MinutesPlayed int `json:"minutes_played"`
}

// TournamentTeamStatistics combines the standings accounting with summed
// per-appearance secondary metrics for every eligible team. Goals are
// counted once, from the match scores; appearances contribute only assists,
// cards and minutes, and only when their match is one of the tournament's
// finished matches. Ordering is the standings ordering.
func TournamentTeamStatistics(teams []models.Team, matches []*models.Match, apps []*models.TournamentAppearance) []TeamStatRow {
	standings := ComputeStandings(teams, matches)

	finished := make(map[int]struct{}, len(matches))
	for _, match := range matches {
		if match.IsFinished() {
			finished[match.ID] = struct{}{}
		}
	}

	type secondary struct {
		assists, yellow, red, minutes int
	}
	byTeam := make(map[int]secondary, len(teams))
	for _, app := range apps {
		if _, ok := finished[app.MatchID]; !ok {
			continue
		}
		sums := byTeam[app.TeamID]
		sums.assists += app.Assists
		sums.yellow += app.YellowCards
		sums.red += app.RedCards
		sums.minutes += app.MinutesPlayed
		byTeam[app.TeamID] = sums
	}

	rows := make([]TeamStatRow, 0, len(standings))
	for _, standing := range standings {
		sums := byTeam[standing.TeamID]
		rows = append(rows, TeamStatRow{
			StandingsRow:  standing,
			Assists:       sums.assists,
			YellowCards:   sums.yellow,
			RedCards:      sums.red,
			MinutesPlayed: sums.minutes,
		})
	}
	return rows
}
