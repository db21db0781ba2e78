package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youthleague/football-system/models"
)

func rankedPlayer(id int, first, last string, rating int) *models.Player {
	return &models.Player{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Rating:    rating,
		Positions: []models.Position{models.PositionMidfielder},
		BirthDate: time.Date(2012, 5, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestRankPlayers_OrderByRatingThenName(t *testing.T) {
	players := []*models.Player{
		rankedPlayer(1, "Anna", "Keller", 70),
		rankedPlayer(2, "Ben", "Albers", 82),
		rankedPlayer(3, "Carla", "Keller", 70),
		rankedPlayer(4, "Anna", "Albers", 70),
	}

	rows, err := RankPlayers(players, nil, RankingParams{Scope: ScopeAll, Year: 2026})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, 2, rows[0].PlayerID)            // highest rating
	assert.Equal(t, 4, rows[1].PlayerID)            // Albers before Keller
	assert.Equal(t, 1, rows[2].PlayerID)            // Anna Keller before Carla Keller
	assert.Equal(t, 3, rows[3].PlayerID)
	assert.Equal(t, "2012-05-14", rows[0].BirthDate)
}

func TestRankPlayers_ScopeValidation(t *testing.T) {
	players := []*models.Player{rankedPlayer(1, "Anna", "Keller", 70)}

	cases := []struct {
		name   string
		params RankingParams
	}{
		{"tournament without id", RankingParams{Scope: ScopeTournament}},
		{"team without id", RankingParams{Scope: ScopeTeam}},
		{"position outside enum", RankingParams{Scope: ScopePosition, Position: "libero"}},
		{"age without any range", RankingParams{Scope: ScopeAge}},
		{"unknown scope", RankingParams{Scope: "club"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.params.Year = 2026
			_, err := RankPlayers(players, nil, tc.params)
			require.ErrorIs(t, err, ErrInvalidScopeParameter)
		})
	}
}

func TestRankPlayers_AgeRangeConversion(t *testing.T) {
	// Ages 10..12 in 2026 select birth years 2014..2016.
	players := []*models.Player{}
	for year := 2012; year <= 2018; year++ {
		p := rankedPlayer(year, "P", fmt.Sprintf("Y%d", year), 50)
		p.BirthDate = time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
		players = append(players, p)
	}

	rows, err := RankPlayers(players, nil, RankingParams{
		Scope:   ScopeAge,
		AgeFrom: intPtr(10),
		AgeTo:   intPtr(12),
		Year:    2026,
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Contains(t, []int{2014, 2015, 2016}, row.PlayerID)
	}
}

func TestRankPlayers_AgeBoundsSwapped(t *testing.T) {
	// ageFrom=12, ageTo=10 has to select the same band as 10..12.
	p := rankedPlayer(1, "Anna", "Keller", 70)
	p.BirthDate = time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)

	rows, err := RankPlayers([]*models.Player{p}, nil, RankingParams{
		Scope:   ScopeAge,
		AgeFrom: intPtr(12),
		AgeTo:   intPtr(10),
		Year:    2026,
	})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRankPlayers_ExplicitBirthYearRange(t *testing.T) {
	inside := rankedPlayer(1, "Anna", "Keller", 70)
	inside.BirthDate = time.Date(2013, 1, 1, 0, 0, 0, 0, time.UTC)
	outside := rankedPlayer(2, "Ben", "Albers", 90)
	outside.BirthDate = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)

	rows, err := RankPlayers([]*models.Player{inside, outside}, nil, RankingParams{
		Scope:    ScopeAge,
		YearFrom: intPtr(2012),
		YearTo:   intPtr(2014),
		Year:     2026,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].PlayerID)
}

func TestRankPlayers_LimitClamping(t *testing.T) {
	players := make([]*models.Player, 0, 300)
	for i := 0; i < 300; i++ {
		players = append(players, rankedPlayer(i+1, "P", fmt.Sprintf("L%03d", i), i%100))
	}

	cases := []struct {
		name  string
		limit *int
		want  int
	}{
		{"default when absent", nil, 50},
		{"above maximum", intPtr(500), 200},
		{"zero", intPtr(0), 1},
		{"negative", intPtr(-5), 1},
		{"in range", intPtr(7), 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := RankPlayers(players, nil, RankingParams{Scope: ScopeAll, Limit: tc.limit, Year: 2026})
			require.NoError(t, err)
			assert.Len(t, rows, tc.want)
		})
	}
}

func TestRankPlayers_TruncatesAfterSorting(t *testing.T) {
	weak := rankedPlayer(1, "Anna", "Keller", 10)
	strong := rankedPlayer(2, "Ben", "Albers", 95)

	rows, err := RankPlayers([]*models.Player{weak, strong}, nil, RankingParams{
		Scope: ScopeAll,
		Limit: intPtr(1),
		Year:  2026,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].PlayerID)
}

func TestRankPlayers_TournamentScope(t *testing.T) {
	in := rankedPlayer(1, "Anna", "Keller", 70)
	out := rankedPlayer(2, "Ben", "Albers", 90)

	rows, err := RankPlayers([]*models.Player{in, out}, map[int]struct{}{1: {}}, RankingParams{
		Scope:        ScopeTournament,
		TournamentID: 5,
		Year:         2026,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].PlayerID)
}

func TestRankPlayers_TeamScope(t *testing.T) {
	teamID := 3
	in := rankedPlayer(1, "Anna", "Keller", 70)
	in.TeamID = &teamID
	out := rankedPlayer(2, "Ben", "Albers", 90)

	rows, err := RankPlayers([]*models.Player{in, out}, nil, RankingParams{
		Scope:  ScopeTeam,
		TeamID: teamID,
		Year:   2026,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].PlayerID)
}

func TestRankPlayers_PositionScope(t *testing.T) {
	keeper := rankedPlayer(1, "Anna", "Keller", 70)
	keeper.Positions = []models.Position{models.PositionGoalkeeper, models.PositionDefender}
	striker := rankedPlayer(2, "Ben", "Albers", 90)
	striker.Positions = []models.Position{models.PositionForward}

	rows, err := RankPlayers([]*models.Player{keeper, striker}, nil, RankingParams{
		Scope:    ScopePosition,
		Position: models.PositionGoalkeeper,
		Year:     2026,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].PlayerID)
}

func TestRankPlayers_RatingBoundsClampAndFilter(t *testing.T) {
	players := []*models.Player{
		rankedPlayer(1, "Anna", "Keller", 10),
		rankedPlayer(2, "Ben", "Albers", 55),
		rankedPlayer(3, "Carla", "Meier", 98),
	}

	// Bounds way out of range clamp to [0, 100] and keep everyone.
	rows, err := RankPlayers(players, nil, RankingParams{
		Scope:      ScopeAll,
		RatingFrom: intPtr(-40),
		RatingTo:   intPtr(400),
		Year:       2026,
	})
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	// A real band filters; it combines with the scope via AND.
	rows, err = RankPlayers(players, nil, RankingParams{
		Scope:      ScopeAll,
		RatingFrom: intPtr(50),
		RatingTo:   intPtr(97),
		Year:       2026,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].PlayerID)
}
