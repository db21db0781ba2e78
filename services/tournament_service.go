package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/youthleague/football-system/models"
	"github.com/youthleague/football-system/repositories"
	"github.com/youthleague/football-system/storage"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, input TournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]*models.Tournament, error)
	UpdateTournament(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Tournament, error)

	RegisterTeam(ctx context.Context, tournamentID, teamID int) (*models.TournamentMembership, error)
	UnregisterTeam(ctx context.Context, tournamentID, teamID int) error
	ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error)
}

type TournamentInput struct {
	Name      string    `json:"name" validate:"required,max=120"`
	Season    string    `json:"season" validate:"required,max=20"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	membershipRepo repositories.MembershipRepository
	teamRepo       repositories.TeamRepository
	uploader       storage.FileUploader
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	membershipRepo repositories.MembershipRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		membershipRepo: membershipRepo,
		teamRepo:       teamRepo,
		uploader:       uploader,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input TournamentInput) (*models.Tournament, error) {
	tournament, err := buildTournament(input)
	if err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament by id %d: %w", id, err)
	}
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	for _, tournament := range tournaments {
		s.populateLogoURL(tournament)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error) {
	updated, err := buildTournament(input)
	if err != nil {
		return nil, err
	}

	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tournament.Name = updated.Name
	tournament.Season = updated.Season
	tournament.StartDate = updated.StartDate
	tournament.EndDate = updated.EndDate

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentNameConflict):
			return nil, ErrTournamentNameConflict
		default:
			return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
		}
	}
	return tournament, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}

	if tournament.LogoKey != nil && s.uploader != nil {
		_ = s.uploader.Delete(ctx, *tournament.LogoKey)
	}
	return nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	tournament, err := s.GetTournamentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tournaments/%d/logo-%s", id, uuid.NewString())
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}

	oldKey := tournament.LogoKey
	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &key); err != nil {
		return nil, fmt.Errorf("failed to store tournament logo key: %w", err)
	}
	if oldKey != nil {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	tournament.LogoKey = &key
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) populateLogoURL(tournament *models.Tournament) {
	if s.uploader == nil || tournament.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*tournament.LogoKey)
	tournament.LogoURL = &url
}

func (s *tournamentService) RegisterTeam(ctx context.Context, tournamentID, teamID int) (*models.TournamentMembership, error) {
	if _, err := s.GetTournamentByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	membership := &models.TournamentMembership{
		TournamentID: tournamentID,
		TeamID:       teamID,
	}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMembershipConflict):
			return nil, ErrMembershipConflict
		case errors.Is(err, repositories.ErrMembershipInvalid):
			return nil, ErrTeamNotFound
		default:
			return nil, fmt.Errorf("failed to register team %d for tournament %d: %w", teamID, tournamentID, err)
		}
	}
	return membership, nil
}

func (s *tournamentService) UnregisterTeam(ctx context.Context, tournamentID, teamID int) error {
	if err := s.membershipRepo.Delete(ctx, tournamentID, teamID); err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return ErrMembershipNotFound
		}
		return fmt.Errorf("failed to unregister team %d from tournament %d: %w", teamID, tournamentID, err)
	}
	return nil
}

func (s *tournamentService) ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error) {
	if _, err := s.GetTournamentByID(ctx, tournamentID); err != nil {
		return nil, err
	}

	teams, err := s.membershipRepo.ListTeamsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	return teams, nil
}

func buildTournament(input TournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrTournamentInvalidDateRange
	}

	return &models.Tournament{
		Name:      name,
		Season:    strings.TrimSpace(input.Season),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}, nil
}
