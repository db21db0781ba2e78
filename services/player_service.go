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

type PlayerService interface {
	CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input PlayerInput) (*models.Player, error)
	UpdateRating(ctx context.Context, id int, rating int) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
	UploadPhoto(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Player, error)
}

type PlayerInput struct {
	FirstName string    `json:"first_name" validate:"required,max=120"`
	LastName  string    `json:"last_name" validate:"required,max=120"`
	Positions []string  `json:"positions" validate:"required,min=1"`
	BirthDate time.Time `json:"birth_date" validate:"required"`
	TeamID    *int      `json:"team_id" validate:"omitempty,gt=0"`
	Rating    int       `json:"rating" validate:"gte=0,lte=100"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	uploader   storage.FileUploader
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository, uploader storage.FileUploader) PlayerService {
	return &playerService{playerRepo: playerRepo, teamRepo: teamRepo, uploader: uploader}
}

func (s *playerService) buildPlayer(input PlayerInput) (*models.Player, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrPlayerNameRequired
	}
	if input.Rating < 0 || input.Rating > 100 {
		return nil, ErrInvalidRating
	}

	positions := make([]models.Position, 0, len(input.Positions))
	for _, raw := range input.Positions {
		pos := models.Position(strings.ToLower(strings.TrimSpace(raw)))
		if !pos.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPosition, raw)
		}
		positions = append(positions, pos)
	}

	return &models.Player{
		FirstName: firstName,
		LastName:  lastName,
		Positions: positions,
		BirthDate: input.BirthDate,
		TeamID:    input.TeamID,
		Rating:    input.Rating,
	}, nil
}

func (s *playerService) CreatePlayer(ctx context.Context, input PlayerInput) (*models.Player, error) {
	player, err := s.buildPlayer(input)
	if err != nil {
		return nil, err
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by id %d: %w", id, err)
	}
	s.populatePhotoURL(player)
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	for _, player := range players {
		s.populatePhotoURL(player)
	}
	return players, nil
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by id %d: %w", teamID, err)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	for _, player := range players {
		s.populatePhotoURL(player)
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input PlayerInput) (*models.Player, error) {
	player, err := s.buildPlayer(input)
	if err != nil {
		return nil, err
	}
	player.ID = id

	if err := s.playerRepo.Update(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return nil, ErrTeamNotFound
		default:
			return nil, fmt.Errorf("failed to update player %d: %w", id, err)
		}
	}
	return s.GetPlayerByID(ctx, id)
}

func (s *playerService) UpdateRating(ctx context.Context, id int, rating int) (*models.Player, error) {
	if rating < 0 || rating > 100 {
		return nil, ErrInvalidRating
	}

	if err := s.playerRepo.UpdateRating(ctx, id, rating); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update rating for player %d: %w", id, err)
	}
	return s.GetPlayerByID(ctx, id)
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	player, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}

	if player.PhotoKey != nil && s.uploader != nil {
		_ = s.uploader.Delete(ctx, *player.PhotoKey)
	}
	return nil
}

func (s *playerService) UploadPhoto(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	player, err := s.GetPlayerByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("players/%d/photo-%s", id, uuid.NewString())
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload player photo: %w", err)
	}

	oldKey := player.PhotoKey
	if err := s.playerRepo.UpdatePhotoKey(ctx, id, &key); err != nil {
		return nil, fmt.Errorf("failed to store player photo key: %w", err)
	}
	if oldKey != nil {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	return s.GetPlayerByID(ctx, id)
}

func (s *playerService) populatePhotoURL(player *models.Player) {
	if s.uploader == nil || player.PhotoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*player.PhotoKey)
	player.PhotoURL = &url
}
