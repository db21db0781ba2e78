package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youthleague/football-system/models"
	"github.com/youthleague/football-system/repositories"
	"github.com/youthleague/football-system/stats"
)

// The stubs embed the repository interface so only the methods a test
// exercises need an implementation; anything else panics loudly.

type stubTournamentRepo struct {
	repositories.TournamentRepository
	getByID func(ctx context.Context, id int) (*models.Tournament, error)
	list    func(ctx context.Context) ([]*models.Tournament, error)
}

func (s *stubTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	return s.getByID(ctx, id)
}

func (s *stubTournamentRepo) List(ctx context.Context) ([]*models.Tournament, error) {
	return s.list(ctx)
}

type stubTeamRepo struct {
	repositories.TeamRepository
	getByID func(ctx context.Context, id int) (*models.Team, error)
}

func (s *stubTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	return s.getByID(ctx, id)
}

type stubPlayerRepo struct {
	repositories.PlayerRepository
	getByID func(ctx context.Context, id int) (*models.Player, error)
	list    func(ctx context.Context) ([]*models.Player, error)
}

func (s *stubPlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	return s.getByID(ctx, id)
}

func (s *stubPlayerRepo) List(ctx context.Context) ([]*models.Player, error) {
	return s.list(ctx)
}

type stubMatchRepo struct {
	repositories.MatchRepository
	listByTournament func(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error)
	listByTeam       func(ctx context.Context, teamID int, status *models.MatchStatus) ([]*models.Match, error)
}

func (s *stubMatchRepo) ListByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error) {
	return s.listByTournament(ctx, tournamentID, status)
}

func (s *stubMatchRepo) ListByTeam(ctx context.Context, teamID int, status *models.MatchStatus) ([]*models.Match, error) {
	return s.listByTeam(ctx, teamID, status)
}

type stubMembershipRepo struct {
	repositories.MembershipRepository
	listTeams func(ctx context.Context, tournamentID int) ([]models.Team, error)
}

func (s *stubMembershipRepo) ListTeamsByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	return s.listTeams(ctx, tournamentID)
}

type stubAppearanceRepo struct {
	repositories.AppearanceRepository
	listByTournament func(ctx context.Context, tournamentID int) ([]*models.TournamentAppearance, error)
	listPlayerIDs    func(ctx context.Context, tournamentID int) ([]int, error)
}

func (s *stubAppearanceRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.TournamentAppearance, error) {
	return s.listByTournament(ctx, tournamentID)
}

func (s *stubAppearanceRepo) ListPlayerIDsByTournament(ctx context.Context, tournamentID int) ([]int, error) {
	return s.listPlayerIDs(ctx, tournamentID)
}

type stubEventRepo struct {
	repositories.MatchEventRepository
	listByPlayer func(ctx context.Context, playerID int) ([]*models.MatchEvent, error)
}

func (s *stubEventRepo) ListByPlayer(ctx context.Context, playerID int) ([]*models.MatchEvent, error) {
	return s.listByPlayer(ctx, playerID)
}

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

func foundTournament(ctx context.Context, id int) (*models.Tournament, error) {
	return &models.Tournament{ID: id, Name: "Spring Cup", Season: "2026"}, nil
}

func missingTournament(ctx context.Context, id int) (*models.Tournament, error) {
	return nil, repositories.ErrTournamentNotFound
}

func TestTournamentStandings(t *testing.T) {
	svc := &statsService{
		tournamentRepo: &stubTournamentRepo{getByID: foundTournament},
		membershipRepo: &stubMembershipRepo{listTeams: func(ctx context.Context, tournamentID int) ([]models.Team, error) {
			return []models.Team{{ID: 1, Name: "Falcons"}, {ID: 2, Name: "Rovers"}}, nil
		}},
		matchRepo: &stubMatchRepo{listByTournament: func(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error) {
			require.NotNil(t, status)
			assert.Equal(t, models.MatchStatusFinished, *status)
			return []*models.Match{finishedMatch(10, 1, 2, 3, 1)}, nil
		}},
		now: time.Now,
	}

	rows, err := svc.TournamentStandings(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].TeamID)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, 0, rows[1].Points)
}

func TestTournamentStandings_TournamentNotFound(t *testing.T) {
	svc := &statsService{
		tournamentRepo: &stubTournamentRepo{getByID: missingTournament},
		membershipRepo: &stubMembershipRepo{listTeams: func(ctx context.Context, tournamentID int) ([]models.Team, error) {
			return nil, nil
		}},
		matchRepo: &stubMatchRepo{listByTournament: func(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error) {
			return nil, nil
		}},
		now: time.Now,
	}

	_, err := svc.TournamentStandings(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestTeamStatistics(t *testing.T) {
	svc := &statsService{
		teamRepo: &stubTeamRepo{getByID: func(ctx context.Context, id int) (*models.Team, error) {
			return &models.Team{ID: id, Name: "Falcons"}, nil
		}},
		matchRepo: &stubMatchRepo{listByTeam: func(ctx context.Context, teamID int, status *models.MatchStatus) ([]*models.Match, error) {
			return []*models.Match{
				finishedMatch(1, 5, 9, 2, 0),
				finishedMatch(2, 9, 5, 1, 1),
			}, nil
		}},
		now: time.Now,
	}

	row, err := svc.TeamStatistics(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, row.Played)
	assert.Equal(t, 1, row.Wins)
	assert.Equal(t, 1, row.Draws)
	assert.Equal(t, 4, row.Points)
}

func TestTeamStatistics_TeamNotFound(t *testing.T) {
	svc := &statsService{
		teamRepo: &stubTeamRepo{getByID: func(ctx context.Context, id int) (*models.Team, error) {
			return nil, repositories.ErrTeamNotFound
		}},
		matchRepo: &stubMatchRepo{listByTeam: func(ctx context.Context, teamID int, status *models.MatchStatus) ([]*models.Match, error) {
			return nil, nil
		}},
		now: time.Now,
	}

	_, err := svc.TeamStatistics(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestTournamentPlayerStatistics_DropsUnfinishedAppearances(t *testing.T) {
	apps := []*models.TournamentAppearance{
		{
			Appearance:      models.Appearance{MatchID: 1, PlayerID: 100, TeamID: 5, Goals: 2},
			PlayerFirstName: "Alba",
			PlayerLastName:  "Kerr",
			TeamName:        "Falcons",
		},
		{
			// Match 2 is not among the finished matches.
			Appearance:      models.Appearance{MatchID: 2, PlayerID: 100, TeamID: 5, Goals: 5},
			PlayerFirstName: "Alba",
			PlayerLastName:  "Kerr",
			TeamName:        "Falcons",
		},
	}

	svc := &statsService{
		tournamentRepo: &stubTournamentRepo{getByID: foundTournament},
		matchRepo: &stubMatchRepo{listByTournament: func(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error) {
			return []*models.Match{finishedMatch(1, 5, 9, 2, 0)}, nil
		}},
		appearanceRepo: &stubAppearanceRepo{listByTournament: func(ctx context.Context, tournamentID int) ([]*models.TournamentAppearance, error) {
			return apps, nil
		}},
		now: time.Now,
	}

	rows, err := svc.TournamentPlayerStatistics(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 100, rows[0].PlayerID)
	assert.Equal(t, 1, rows[0].Matches)
	assert.Equal(t, 2, rows[0].Goals)
}

func TestTournamentPlayerStatistics_UpstreamFailureAborts(t *testing.T) {
	upstream := errors.New("connection refused")

	svc := &statsService{
		tournamentRepo: &stubTournamentRepo{getByID: foundTournament},
		matchRepo: &stubMatchRepo{listByTournament: func(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error) {
			return nil, upstream
		}},
		appearanceRepo: &stubAppearanceRepo{listByTournament: func(ctx context.Context, tournamentID int) ([]*models.TournamentAppearance, error) {
			return nil, nil
		}},
		now: time.Now,
	}

	rows, err := svc.TournamentPlayerStatistics(context.Background(), 7)
	assert.ErrorIs(t, err, upstream)
	assert.Nil(t, rows)
}

func TestPlayerRankings_ValidatesBeforeFetching(t *testing.T) {
	fetched := false
	svc := &statsService{
		playerRepo: &stubPlayerRepo{list: func(ctx context.Context) ([]*models.Player, error) {
			fetched = true
			return nil, nil
		}},
		now: time.Now,
	}

	_, err := svc.PlayerRankings(context.Background(), stats.RankingParams{Scope: stats.ScopeTournament})
	assert.ErrorIs(t, err, stats.ErrInvalidScopeParameter)
	assert.False(t, fetched, "players must not be fetched for an invalid scope")
}

func TestPlayerRankings_DefaultsYearFromClock(t *testing.T) {
	fixed := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	svc := &statsService{
		playerRepo: &stubPlayerRepo{list: func(ctx context.Context) ([]*models.Player, error) {
			return []*models.Player{
				{ID: 1, FirstName: "Alba", LastName: "Kerr", BirthDate: time.Date(2015, time.June, 1, 0, 0, 0, 0, time.UTC), Rating: 70},
				{ID: 2, FirstName: "Noor", LastName: "Said", BirthDate: time.Date(2010, time.June, 1, 0, 0, 0, 0, time.UTC), Rating: 90},
			}, nil
		}},
		now: func() time.Time { return fixed },
	}

	// Ages 10..12 against 2026 select birth years 2014..2016.
	rows, err := svc.PlayerRankings(context.Background(), stats.RankingParams{
		Scope:   stats.ScopeAge,
		AgeFrom: intPtr(10),
		AgeTo:   intPtr(12),
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].PlayerID)
}

func TestPlayerRankings_TournamentScopeUsesAppearanceSet(t *testing.T) {
	svc := &statsService{
		playerRepo: &stubPlayerRepo{list: func(ctx context.Context) ([]*models.Player, error) {
			return []*models.Player{
				{ID: 1, FirstName: "Alba", LastName: "Kerr", Rating: 70},
				{ID: 2, FirstName: "Noor", LastName: "Said", Rating: 90},
			}, nil
		}},
		appearanceRepo: &stubAppearanceRepo{listPlayerIDs: func(ctx context.Context, tournamentID int) ([]int, error) {
			assert.Equal(t, 7, tournamentID)
			return []int{1}, nil
		}},
		now: time.Now,
	}

	rows, err := svc.PlayerRankings(context.Background(), stats.RankingParams{
		Scope:        stats.ScopeTournament,
		TournamentID: 7,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].PlayerID)
}

func TestPlayerEventSummary(t *testing.T) {
	svc := &statsService{
		playerRepo: &stubPlayerRepo{getByID: func(ctx context.Context, id int) (*models.Player, error) {
			return &models.Player{ID: id}, nil
		}},
		eventRepo: &stubEventRepo{listByPlayer: func(ctx context.Context, playerID int) ([]*models.MatchEvent, error) {
			return []*models.MatchEvent{
				{ID: 1, PlayerID: playerID, EventID: 1, EventName: "Goal"},
				{ID: 2, PlayerID: playerID, EventID: 1, EventName: "Goal"},
				{ID: 3, PlayerID: playerID, EventID: 2, EventName: "Card"},
			}, nil
		}},
		now: time.Now,
	}

	groups, err := svc.PlayerEventSummary(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Goal", groups[0].EventName)
	assert.Equal(t, 2, groups[0].Count)
	assert.Equal(t, 1, groups[1].Count)
}

func TestPlayerEventSummary_PlayerNotFound(t *testing.T) {
	svc := &statsService{
		playerRepo: &stubPlayerRepo{getByID: func(ctx context.Context, id int) (*models.Player, error) {
			return nil, repositories.ErrPlayerNotFound
		}},
		eventRepo: &stubEventRepo{listByPlayer: func(ctx context.Context, playerID int) ([]*models.MatchEvent, error) {
			return nil, nil
		}},
		now: time.Now,
	}

	_, err := svc.PlayerEventSummary(context.Background(), 404)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
