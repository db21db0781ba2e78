package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youthleague/football-system/models"
)

func appearance(matchID, playerID, teamID int, goals, assists int) *models.TournamentAppearance {
	return &models.TournamentAppearance{
		Appearance: models.Appearance{
			MatchID:  matchID,
			PlayerID: playerID,
			TeamID:   teamID,
			Goals:    goals,
			Assists:  assists,
		},
	}
}

func TestTournamentPlayerStatistics_SumsPerPlayer(t *testing.T) {
	apps := []*models.TournamentAppearance{
		appearance(1, 100, 1, 2, 0),
		appearance(1, 101, 1, 0, 2),
		appearance(2, 100, 1, 1, 1),
		appearance(2, 102, 2, 3, 0),
	}
	apps[0].YellowCards = 1
	apps[2].YellowCards = 1
	apps[2].MinutesPlayed = 90
	apps[0].MinutesPlayed = 78

	rows := TournamentPlayerStatistics(apps)
	require.Len(t, rows, 3)

	// Players 100 and 102 both total 3 goals; 100 wins on assists (1 vs 0).
	assert.Equal(t, 100, rows[0].PlayerID)
	assert.Equal(t, 3, rows[0].Goals)
	assert.Equal(t, 1, rows[0].Assists)
	assert.Equal(t, 2, rows[0].Matches)
	assert.Equal(t, 2, rows[0].YellowCards)
	assert.Equal(t, 168, rows[0].MinutesPlayed)

	assert.Equal(t, 102, rows[1].PlayerID)
	assert.Equal(t, 101, rows[2].PlayerID)

	// Sum of matches over all rows equals the appearance count.
	total := 0
	for _, row := range rows {
		total += row.Matches
	}
	assert.Equal(t, len(apps), total)
}

func TestTournamentPlayerStatistics_FirstAppearanceSnapshotWins(t *testing.T) {
	first := appearance(1, 100, 1, 0, 0)
	first.TeamName = "Falcons"
	first.PlayerFirstName = "Timo"
	first.PlayerLastName = "Becker"
	first.PlayerPosition = models.PositionForward

	// Same player later in a different shirt: counters add, snapshot stays.
	second := appearance(2, 100, 2, 1, 0)
	second.TeamName = "Rovers"

	rows := TournamentPlayerStatistics([]*models.TournamentAppearance{first, second})
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Falcons", row.TeamName)
	assert.Equal(t, 1, row.TeamID)
	assert.Equal(t, "Timo", row.FirstName)
	assert.Equal(t, "Becker", row.LastName)
	assert.Equal(t, models.PositionForward, row.Position)
	assert.Equal(t, 2, row.Matches)
	assert.Equal(t, 1, row.Goals)
}

func TestTournamentPlayerStatistics_Empty(t *testing.T) {
	assert.Empty(t, TournamentPlayerStatistics(nil))
}
