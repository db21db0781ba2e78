package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/youthleague/football-system/models"
	"github.com/youthleague/football-system/repositories"
	"github.com/youthleague/football-system/stats"
	"github.com/youthleague/football-system/storage"
)

// StatsService exposes the derived-data read operations. Every call fetches
// the raw facts it needs, runs the pure aggregation in the stats package and
// discards the result after the response: nothing derived is ever cached or
// persisted. Independent fetches within one call run concurrently; any
// upstream failure aborts the whole computation, no partial rows leak out.
type StatsService interface {
	TournamentStandings(ctx context.Context, tournamentID int) ([]stats.StandingsRow, error)
	TeamStatistics(ctx context.Context, teamID int) (*stats.TeamStatsRow, error)
	TournamentPlayerStatistics(ctx context.Context, tournamentID int) ([]stats.PlayerStatRow, error)
	TournamentTeamStatistics(ctx context.Context, tournamentID int) ([]stats.TeamStatRow, error)
	PlayerRankings(ctx context.Context, params stats.RankingParams) ([]stats.PlayerRankingRow, error)
	PlayerEventSummary(ctx context.Context, playerID int) ([]stats.EventGroupRow, error)
}

type statsService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	playerRepo     repositories.PlayerRepository
	matchRepo      repositories.MatchRepository
	membershipRepo repositories.MembershipRepository
	appearanceRepo repositories.AppearanceRepository
	eventRepo      repositories.MatchEventRepository
	uploader       storage.FileUploader
	now            func() time.Time
}

func NewStatsService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	membershipRepo repositories.MembershipRepository,
	appearanceRepo repositories.AppearanceRepository,
	eventRepo repositories.MatchEventRepository,
	uploader storage.FileUploader,
) StatsService {
	return &statsService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		membershipRepo: membershipRepo,
		appearanceRepo: appearanceRepo,
		eventRepo:      eventRepo,
		uploader:       uploader,
		now:            time.Now,
	}
}

var finishedStatus = models.MatchStatusFinished

func (s *statsService) TournamentStandings(ctx context.Context, tournamentID int) ([]stats.StandingsRow, error) {
	teams, matches, err := s.loadTournamentTable(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return stats.ComputeStandings(teams, matches), nil
}

func (s *statsService) TeamStatistics(ctx context.Context, teamID int) (*stats.TeamStatsRow, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var matches []*models.Match
	g.Go(func() error {
		_, err := s.teamRepo.GetByID(gCtx, teamID)
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTeam(gCtx, teamID, &finishedStatus)
		if err != nil {
			return fmt.Errorf("failed to load team matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	row := stats.ComputeTeamStatistics(teamID, matches)
	return &row, nil
}

func (s *statsService) TournamentPlayerStatistics(ctx context.Context, tournamentID int) ([]stats.PlayerStatRow, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var matches []*models.Match
	var apps []*models.TournamentAppearance
	g.Go(func() error { return s.requireTournament(gCtx, tournamentID) })
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gCtx, tournamentID, &finishedStatus)
		if err != nil {
			return fmt.Errorf("failed to load tournament matches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		apps, err = s.appearanceRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load tournament appearances: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.populateAppearanceURLs(apps)
	return stats.TournamentPlayerStatistics(s.finishedOnly(apps, matches)), nil
}

func (s *statsService) TournamentTeamStatistics(ctx context.Context, tournamentID int) ([]stats.TeamStatRow, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var teams []models.Team
	var matches []*models.Match
	var apps []*models.TournamentAppearance
	g.Go(func() error { return s.requireTournament(gCtx, tournamentID) })
	g.Go(func() error {
		var err error
		teams, err = s.membershipRepo.ListTeamsByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load tournament teams: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gCtx, tournamentID, &finishedStatus)
		if err != nil {
			return fmt.Errorf("failed to load tournament matches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		apps, err = s.appearanceRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load tournament appearances: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.populateTeamLogoURLs(teams)
	return stats.TournamentTeamStatistics(teams, matches, apps), nil
}

func (s *statsService) PlayerRankings(ctx context.Context, params stats.RankingParams) ([]stats.PlayerRankingRow, error) {
	if params.Year == 0 {
		params.Year = s.now().Year()
	}
	// Reject bad scope parameters before touching the stores.
	if err := params.Validate(); err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)

	var players []*models.Player
	var tournamentPlayers map[int]struct{}
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load players: %w", err)
		}
		return nil
	})
	if params.Scope == stats.ScopeTournament {
		g.Go(func() error {
			ids, err := s.appearanceRepo.ListPlayerIDsByTournament(gCtx, params.TournamentID)
			if err != nil {
				return fmt.Errorf("failed to load tournament players: %w", err)
			}
			tournamentPlayers = make(map[int]struct{}, len(ids))
			for _, id := range ids {
				tournamentPlayers[id] = struct{}{}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, player := range players {
		s.populatePlayerPhotoURL(player)
	}
	return stats.RankPlayers(players, tournamentPlayers, params)
}

func (s *statsService) PlayerEventSummary(ctx context.Context, playerID int) ([]stats.EventGroupRow, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var events []*models.MatchEvent
	g.Go(func() error {
		_, err := s.playerRepo.GetByID(gCtx, playerID)
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.eventRepo.ListByPlayer(gCtx, playerID)
		if err != nil {
			return fmt.Errorf("failed to load player events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats.RollupPlayerEvents(events), nil
}

// loadTournamentTable fetches the standings inputs for a tournament: member
// teams in registration order and the tournament's finished matches.
func (s *statsService) loadTournamentTable(ctx context.Context, tournamentID int) ([]models.Team, []*models.Match, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var teams []models.Team
	var matches []*models.Match
	g.Go(func() error { return s.requireTournament(gCtx, tournamentID) })
	g.Go(func() error {
		var err error
		teams, err = s.membershipRepo.ListTeamsByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load tournament teams: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gCtx, tournamentID, &finishedStatus)
		if err != nil {
			return fmt.Errorf("failed to load tournament matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	s.populateTeamLogoURLs(teams)
	return teams, matches, nil
}

func (s *statsService) requireTournament(ctx context.Context, tournamentID int) error {
	_, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return err
}

// finishedOnly drops appearances whose match is not in the finished set.
// Only finished matches contribute to any statistic.
func (s *statsService) finishedOnly(apps []*models.TournamentAppearance, matches []*models.Match) []*models.TournamentAppearance {
	finished := make(map[int]struct{}, len(matches))
	for _, match := range matches {
		if match.IsFinished() {
			finished[match.ID] = struct{}{}
		}
	}

	kept := make([]*models.TournamentAppearance, 0, len(apps))
	for _, app := range apps {
		if _, ok := finished[app.MatchID]; ok {
			kept = append(kept, app)
		}
	}
	return kept
}

func (s *statsService) populateTeamLogoURLs(teams []models.Team) {
	if s.uploader == nil {
		return
	}
	for i := range teams {
		if teams[i].LogoKey != nil {
			url := s.uploader.GetPublicURL(*teams[i].LogoKey)
			teams[i].LogoURL = &url
		}
	}
}

func (s *statsService) populatePlayerPhotoURL(player *models.Player) {
	if s.uploader == nil || player.PhotoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*player.PhotoKey)
	player.PhotoURL = &url
}

func (s *statsService) populateAppearanceURLs(apps []*models.TournamentAppearance) {
	if s.uploader == nil {
		return
	}
	for _, app := range apps {
		if app.PlayerPhotoKey != nil {
			url := s.uploader.GetPublicURL(*app.PlayerPhotoKey)
			app.PlayerPhotoURL = &url
		}
		if app.TeamLogoKey != nil {
			url := s.uploader.GetPublicURL(*app.TeamLogoKey)
			app.TeamLogoURL = &url
		}
	}
}
