package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youthleague/football-system/models"
	"github.com/youthleague/football-system/repositories"
)

type stubFullMatchRepo struct {
	repositories.MatchRepository
	create       func(ctx context.Context, match *models.Match) error
	getByID      func(ctx context.Context, id int) (*models.Match, error)
	updateResult func(ctx context.Context, id int, homeScore, awayScore *int, status models.MatchStatus) error
}

func (s *stubFullMatchRepo) Create(ctx context.Context, match *models.Match) error {
	return s.create(ctx, match)
}

func (s *stubFullMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	return s.getByID(ctx, id)
}

func (s *stubFullMatchRepo) UpdateResult(ctx context.Context, id int, homeScore, awayScore *int, status models.MatchStatus) error {
	return s.updateResult(ctx, id, homeScore, awayScore, status)
}

func TestCreateMatch_IdenticalTeamsRejected(t *testing.T) {
	svc := NewMatchService(&stubFullMatchRepo{}, nil, nil, nil)

	_, err := svc.CreateMatch(context.Background(), MatchInput{
		HomeTeamID: 5,
		AwayTeamID: 5,
		Date:       time.Now(),
	})
	assert.ErrorIs(t, err, ErrMatchTeamsIdentical)
}

func TestCreateMatch_UnknownTournamentRejected(t *testing.T) {
	svc := NewMatchService(&stubFullMatchRepo{}, nil, nil,
		&stubTournamentRepo{getByID: missingTournament})

	_, err := svc.CreateMatch(context.Background(), MatchInput{
		HomeTeamID:   5,
		AwayTeamID:   9,
		TournamentID: intPtr(404),
		Date:         time.Now(),
	})
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestCreateMatch(t *testing.T) {
	repo := &stubFullMatchRepo{create: func(ctx context.Context, match *models.Match) error {
		match.ID = 42
		return nil
	}}
	svc := NewMatchService(repo, nil, nil, &stubTournamentRepo{getByID: foundTournament})

	match, err := svc.CreateMatch(context.Background(), MatchInput{
		HomeTeamID:   5,
		AwayTeamID:   9,
		TournamentID: intPtr(7),
		Date:         time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, 42, match.ID)
	assert.Equal(t, models.MatchStatusScheduled, match.Status)
	assert.Nil(t, match.HomeScore)
}

func TestRecordResult_InvalidStatus(t *testing.T) {
	svc := NewMatchService(&stubFullMatchRepo{}, nil, nil, nil)

	_, err := svc.RecordResult(context.Background(), 1, ResultInput{Status: "postponed"})
	assert.ErrorIs(t, err, ErrInvalidMatchStatus)
}

func TestRecordResult_FinishedRequiresBothScores(t *testing.T) {
	svc := NewMatchService(&stubFullMatchRepo{}, nil, nil, nil)

	_, err := svc.RecordResult(context.Background(), 1, ResultInput{
		Status:    string(models.MatchStatusFinished),
		HomeScore: intPtr(2),
	})
	assert.ErrorIs(t, err, ErrScoresRequired)
}

func TestRecordResult(t *testing.T) {
	var gotStatus models.MatchStatus
	repo := &stubFullMatchRepo{
		updateResult: func(ctx context.Context, id int, homeScore, awayScore *int, status models.MatchStatus) error {
			gotStatus = status
			return nil
		},
		getByID: func(ctx context.Context, id int) (*models.Match, error) {
			return &models.Match{
				ID:        id,
				Status:    models.MatchStatusFinished,
				HomeScore: intPtr(2),
				AwayScore: intPtr(1),
			}, nil
		},
	}
	svc := NewMatchService(repo, nil, nil, nil)

	match, err := svc.RecordResult(context.Background(), 1, ResultInput{
		Status:    string(models.MatchStatusFinished),
		HomeScore: intPtr(2),
		AwayScore: intPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatchStatusFinished, gotStatus)
	assert.True(t, match.IsFinished())
}

func TestRecordResult_MatchNotFound(t *testing.T) {
	repo := &stubFullMatchRepo{
		updateResult: func(ctx context.Context, id int, homeScore, awayScore *int, status models.MatchStatus) error {
			return repositories.ErrMatchNotFound
		},
	}
	svc := NewMatchService(repo, nil, nil, nil)

	_, err := svc.RecordResult(context.Background(), 404, ResultInput{
		Status: string(models.MatchStatusLive),
	})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestRecordAppearance_Conflict(t *testing.T) {
	matchRepo := &stubFullMatchRepo{getByID: func(ctx context.Context, id int) (*models.Match, error) {
		return &models.Match{ID: id}, nil
	}}
	appearanceRepo := &stubAppearanceRepoWithCreate{create: func(ctx context.Context, appearance *models.Appearance) error {
		return repositories.ErrAppearanceConflict
	}}
	svc := NewMatchService(matchRepo, appearanceRepo, nil, nil)

	_, err := svc.RecordAppearance(context.Background(), 1, AppearanceInput{PlayerID: 100, TeamID: 5})
	assert.ErrorIs(t, err, ErrAppearanceConflict)
}

type stubAppearanceRepoWithCreate struct {
	repositories.AppearanceRepository
	create func(ctx context.Context, appearance *models.Appearance) error
}

func (s *stubAppearanceRepoWithCreate) Create(ctx context.Context, appearance *models.Appearance) error {
	return s.create(ctx, appearance)
}
