package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/youthleague/football-system/models"
	"github.com/youthleague/football-system/repositories"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input MatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListMatchesByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error)
	ListMatchesByTeam(ctx context.Context, teamID int, status *models.MatchStatus) ([]*models.Match, error)
	UpdateMatch(ctx context.Context, id int, input MatchInput) (*models.Match, error)
	RecordResult(ctx context.Context, id int, input ResultInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error

	RecordAppearance(ctx context.Context, matchID int, input AppearanceInput) (*models.Appearance, error)
	ListAppearances(ctx context.Context, matchID int) ([]*models.Appearance, error)
	DeleteAppearance(ctx context.Context, id int) error

	RecordEvent(ctx context.Context, matchID int, input EventInput) (*models.MatchEvent, error)
	ListEvents(ctx context.Context, matchID int) ([]*models.MatchEvent, error)
	DeleteEvent(ctx context.Context, id int) error
}

type MatchInput struct {
	HomeTeamID   int       `json:"home_team_id" validate:"required,gt=0"`
	AwayTeamID   int       `json:"away_team_id" validate:"required,gt=0"`
	TournamentID *int      `json:"tournament_id" validate:"omitempty,gt=0"`
	Date         time.Time `json:"date" validate:"required"`
}

type ResultInput struct {
	HomeScore *int   `json:"home_score" validate:"omitempty,gte=0"`
	AwayScore *int   `json:"away_score" validate:"omitempty,gte=0"`
	Status    string `json:"status" validate:"required"`
}

type AppearanceInput struct {
	PlayerID      int  `json:"player_id" validate:"required,gt=0"`
	TeamID        int  `json:"team_id" validate:"required,gt=0"`
	Goals         int  `json:"goals" validate:"gte=0"`
	Assists       int  `json:"assists" validate:"gte=0"`
	YellowCards   int  `json:"yellow_cards" validate:"gte=0,lte=2"`
	RedCards      int  `json:"red_cards" validate:"gte=0,lte=1"`
	MinutesPlayed int  `json:"minutes_played" validate:"gte=0,lte=120"`
	Started       bool `json:"started"`
}

type EventInput struct {
	PlayerID     int     `json:"player_id" validate:"required,gt=0"`
	EventID      int     `json:"event_id" validate:"required,gt=0"`
	EventName    string  `json:"event_name" validate:"required,max=120"`
	SubEventID   *int    `json:"sub_event_id" validate:"omitempty,gt=0"`
	SubEventName *string `json:"sub_event_name" validate:"omitempty,max=120"`
	Minute       *int    `json:"minute" validate:"omitempty,gte=0,lte=120"`
}

type matchService struct {
	matchRepo      repositories.MatchRepository
	appearanceRepo repositories.AppearanceRepository
	eventRepo      repositories.MatchEventRepository
	tournamentRepo repositories.TournamentRepository
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	appearanceRepo repositories.AppearanceRepository,
	eventRepo repositories.MatchEventRepository,
	tournamentRepo repositories.TournamentRepository,
) MatchService {
	return &matchService{
		matchRepo:      matchRepo,
		appearanceRepo: appearanceRepo,
		eventRepo:      eventRepo,
		tournamentRepo: tournamentRepo,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input MatchInput) (*models.Match, error) {
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrMatchTeamsIdentical
	}
	if input.TournamentID != nil {
		if _, err := s.tournamentRepo.GetByID(ctx, *input.TournamentID); err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return nil, ErrTournamentNotFound
			}
			return nil, fmt.Errorf("failed to get tournament %d: %w", *input.TournamentID, err)
		}
	}

	match := &models.Match{
		HomeTeamID:   input.HomeTeamID,
		AwayTeamID:   input.AwayTeamID,
		TournamentID: input.TournamentID,
		Date:         input.Date,
		Status:       models.MatchStatusScheduled,
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match by id %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) ListMatchesByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	return matches, nil
}

func (s *matchService) ListMatchesByTeam(ctx context.Context, teamID int, status *models.MatchStatus) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByTeam(ctx, teamID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for team %d: %w", teamID, err)
	}
	return matches, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, id int, input MatchInput) (*models.Match, error) {
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrMatchTeamsIdentical
	}

	match, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	match.HomeTeamID = input.HomeTeamID
	match.AwayTeamID = input.AwayTeamID
	match.TournamentID = input.TournamentID
	match.Date = input.Date

	if err := s.matchRepo.Update(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}
	return match, nil
}

// RecordResult updates a match's scores and status. Moving a match to
// finished requires both scores; only a finished match with both scores
// ever enters the statistics.
func (s *matchService) RecordResult(ctx context.Context, id int, input ResultInput) (*models.Match, error) {
	status := models.MatchStatus(input.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMatchStatus, input.Status)
	}
	if status == models.MatchStatusFinished && (input.HomeScore == nil || input.AwayScore == nil) {
		return nil, ErrScoresRequired
	}

	if err := s.matchRepo.UpdateResult(ctx, id, input.HomeScore, input.AwayScore, status); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to record result for match %d: %w", id, err)
	}
	return s.GetMatchByID(ctx, id)
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

func (s *matchService) RecordAppearance(ctx context.Context, matchID int, input AppearanceInput) (*models.Appearance, error) {
	if _, err := s.GetMatchByID(ctx, matchID); err != nil {
		return nil, err
	}

	appearance := &models.Appearance{
		MatchID:       matchID,
		PlayerID:      input.PlayerID,
		TeamID:        input.TeamID,
		Goals:         input.Goals,
		Assists:       input.Assists,
		YellowCards:   input.YellowCards,
		RedCards:      input.RedCards,
		MinutesPlayed: input.MinutesPlayed,
		Started:       input.Started,
	}

	if err := s.appearanceRepo.Create(ctx, appearance); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAppearanceConflict):
			return nil, ErrAppearanceConflict
		case errors.Is(err, repositories.ErrAppearanceInvalid):
			return nil, ErrPlayerNotFound
		default:
			return nil, fmt.Errorf("failed to record appearance: %w", err)
		}
	}
	return appearance, nil
}

func (s *matchService) ListAppearances(ctx context.Context, matchID int) ([]*models.Appearance, error) {
	if _, err := s.GetMatchByID(ctx, matchID); err != nil {
		return nil, err
	}

	apps, err := s.appearanceRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appearances for match %d: %w", matchID, err)
	}
	return apps, nil
}

func (s *matchService) DeleteAppearance(ctx context.Context, id int) error {
	if err := s.appearanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrAppearanceNotFound) {
			return ErrAppearanceNotFound
		}
		return fmt.Errorf("failed to delete appearance %d: %w", id, err)
	}
	return nil
}

func (s *matchService) RecordEvent(ctx context.Context, matchID int, input EventInput) (*models.MatchEvent, error) {
	if _, err := s.GetMatchByID(ctx, matchID); err != nil {
		return nil, err
	}

	event := &models.MatchEvent{
		MatchID:      matchID,
		PlayerID:     input.PlayerID,
		EventID:      input.EventID,
		EventName:    input.EventName,
		SubEventID:   input.SubEventID,
		SubEventName: input.SubEventName,
		Minute:       input.Minute,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrMatchEventInvalid) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to record match event: %w", err)
	}
	return event, nil
}

func (s *matchService) ListEvents(ctx context.Context, matchID int) ([]*models.MatchEvent, error) {
	if _, err := s.GetMatchByID(ctx, matchID); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events for match %d: %w", matchID, err)
	}
	return events, nil
}

func (s *matchService) DeleteEvent(ctx context.Context, id int) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchEventNotFound) {
			return ErrMatchEventNotFound
		}
		return fmt.Errorf("failed to delete match event %d: %w", id, err)
	}
	return nil
}
