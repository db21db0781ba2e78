package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youthleague/football-system/models"
)

func intPtr(v int) *int { return &v }

func finishedMatch(id, home, away, homeScore, awayScore int) *models.Match {
	return &models.Match{
		ID:         id,
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     models.MatchStatusFinished,
		HomeScore:  intPtr(homeScore),
		AwayScore:  intPtr(awayScore),
	}
}

func team(id int, name string) models.Team {
	return models.Team{ID: id, Name: name}
}

func TestComputeStandings_TwoTeamsThreeMatches(t *testing.T) {
	teams := []models.Team{team(1, "Falcons"), team(2, "Rovers")}
	matches := []*models.Match{
		finishedMatch(10, 1, 2, 2, 1),
		finishedMatch(11, 1, 2, 0, 0),
		finishedMatch(12, 1, 2, 1, 3),
	}

	rows := ComputeStandings(teams, matches)
	require.Len(t, rows, 2)

	// Equal points, Rovers ahead on goal difference.
	rovers, falcons := rows[0], rows[1]
	assert.Equal(t, 2, rovers.TeamID)
	assert.Equal(t, 1, falcons.TeamID)

	assert.Equal(t, ResultLine{
		Played: 3, Wins: 1, Draws: 1, Losses: 1,
		GoalsFor: 3, GoalsAgainst: 4, GoalDifference: -1, Points: 4,
	}, falcons.ResultLine)
	assert.Equal(t, ResultLine{
		Played: 3, Wins: 1, Draws: 1, Losses: 1,
		GoalsFor: 4, GoalsAgainst: 3, GoalDifference: 1, Points: 4,
	}, rovers.ResultLine)
}

func TestComputeStandings_TeamWithoutMatchesKeepsZeroRow(t *testing.T) {
	teams := []models.Team{team(1, "Falcons"), team(2, "Rovers"), team(3, "Unity")}
	matches := []*models.Match{finishedMatch(10, 1, 2, 1, 0)}

	rows := ComputeStandings(teams, matches)
	require.Len(t, rows, 3)

	// The idle team has goal difference 0 and sorts ahead of the loser at -1.
	assert.Equal(t, 1, rows[0].TeamID)
	assert.Equal(t, 3, rows[1].TeamID)
	assert.Equal(t, 2, rows[2].TeamID)
	assert.Equal(t, ResultLine{}, rows[1].ResultLine)
}

func TestComputeStandings_IgnoresUnfinishedMatches(t *testing.T) {
	teams := []models.Team{team(1, "Falcons"), team(2, "Rovers")}
	matches := []*models.Match{
		{ID: 10, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusScheduled},
		{ID: 11, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusLive, HomeScore: intPtr(1), AwayScore: intPtr(0)},
		{ID: 12, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusCancelled, HomeScore: intPtr(3), AwayScore: intPtr(0)},
		// Finished but with a missing score must not count either.
		{ID: 13, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusFinished, HomeScore: intPtr(2)},
	}

	for _, row := range ComputeStandings(teams, matches) {
		assert.Zero(t, row.Played)
		assert.Zero(t, row.Points)
	}
}

func TestComputeStandings_AccountingIdentities(t *testing.T) {
	teams := []models.Team{team(1, "A"), team(2, "B"), team(3, "C"), team(4, "D")}
	matches := []*models.Match{
		finishedMatch(1, 1, 2, 4, 0),
		finishedMatch(2, 3, 4, 1, 1),
		finishedMatch(3, 1, 3, 2, 2),
		finishedMatch(4, 2, 4, 0, 5),
		finishedMatch(5, 4, 1, 2, 3),
		finishedMatch(6, 2, 3, 1, 2),
	}

	rows := ComputeStandings(teams, matches)
	require.Len(t, rows, 4)

	for _, row := range rows {
		assert.Equal(t, row.Played, row.Wins+row.Draws+row.Losses, "team %d", row.TeamID)
		assert.Equal(t, row.Wins*3+row.Draws, row.Points, "team %d", row.TeamID)
		assert.Equal(t, row.GoalsFor-row.GoalsAgainst, row.GoalDifference, "team %d", row.TeamID)
	}

	for i := 1; i < len(rows); i++ {
		a, b := rows[i-1], rows[i]
		ordered := a.Points > b.Points ||
			(a.Points == b.Points && a.GoalDifference > b.GoalDifference) ||
			(a.Points == b.Points && a.GoalDifference == b.GoalDifference && a.GoalsFor >= b.GoalsFor)
		assert.True(t, ordered, "rows %d and %d out of order", i-1, i)
	}
}

func TestComputeStandings_StableOnFullTie(t *testing.T) {
	// Identical records: membership order decides.
	teams := []models.Team{team(7, "First"), team(8, "Second")}

	rows := ComputeStandings(teams, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, 7, rows[0].TeamID)
	assert.Equal(t, 8, rows[1].TeamID)
}

func TestComputeStandings_EmptyInputs(t *testing.T) {
	assert.Empty(t, ComputeStandings(nil, nil))
	assert.Empty(t, ComputeStandings([]models.Team{}, []*models.Match{finishedMatch(1, 1, 2, 1, 0)}))
}

func TestComputeTeamStatistics(t *testing.T) {
	matches := []*models.Match{
		finishedMatch(1, 5, 9, 2, 0),  // home win
		finishedMatch(2, 9, 5, 1, 1),  // away draw
		finishedMatch(3, 9, 5, 3, 0),  // away loss
		finishedMatch(4, 7, 8, 10, 0), // not our team
		{ID: 5, HomeTeamID: 5, AwayTeamID: 9, Status: models.MatchStatusScheduled},
	}

	row := ComputeTeamStatistics(5, matches)
	assert.Equal(t, 5, row.TeamID)
	assert.Equal(t, ResultLine{
		Played: 3, Wins: 1, Draws: 1, Losses: 1,
		GoalsFor: 3, GoalsAgainst: 4, GoalDifference: -1, Points: 4,
	}, row.ResultLine)
}

func TestComputeTeamStatistics_NoMatches(t *testing.T) {
	row := ComputeTeamStatistics(5, nil)
	assert.Equal(t, TeamStatsRow{TeamID: 5}, row)
}
