package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/youthleague/football-system/models"
)

var (
	ErrAppearanceNotFound = errors.New("appearance not found")
	ErrAppearanceConflict = errors.New("player already has an appearance for this match")
	ErrAppearanceInvalid  = errors.New("appearance match, player or team invalid")
)

type AppearanceRepository interface {
	Create(ctx context.Context, appearance *models.Appearance) error
	Update(ctx context.Context, appearance *models.Appearance) error
	Delete(ctx context.Context, id int) error
	ListByMatch(ctx context.Context, matchID int) ([]*models.Appearance, error)
	// ListByTournament returns every appearance on the tournament's matches
	// joined with the player and team display snapshot, ordered by match
	// date so the aggregator's "first appearance wins" is deterministic.
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.TournamentAppearance, error)
	// ListPlayerIDsByTournament returns the distinct players with at least
	// one appearance on any of the tournament's matches.
	ListPlayerIDsByTournament(ctx context.Context, tournamentID int) ([]int, error)
}

type postgresAppearanceRepository struct {
	db *sql.DB
}

func NewPostgresAppearanceRepository(db *sql.DB) AppearanceRepository {
	return &postgresAppearanceRepository{db: db}
}

func (r *postgresAppearanceRepository) Create(ctx context.Context, appearance *models.Appearance) error {
	query := `
		INSERT INTO appearances
			(match_id, player_id, team_id, goals, assists, yellow_cards, red_cards, minutes_played, started)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		appearance.MatchID, appearance.PlayerID, appearance.TeamID,
		appearance.Goals, appearance.Assists, appearance.YellowCards,
		appearance.RedCards, appearance.MinutesPlayed, appearance.Started,
	).Scan(&appearance.ID, &appearance.CreatedAt)

	return r.handleAppearanceError(err)
}

func (r *postgresAppearanceRepository) Update(ctx context.Context, appearance *models.Appearance) error {
	query := `
		UPDATE appearances
		SET team_id = $1, goals = $2, assists = $3, yellow_cards = $4,
		    red_cards = $5, minutes_played = $6, started = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		appearance.TeamID, appearance.Goals, appearance.Assists, appearance.YellowCards,
		appearance.RedCards, appearance.MinutesPlayed, appearance.Started, appearance.ID,
	)
	if err != nil {
		return r.handleAppearanceError(err)
	}
	return checkAffectedRows(result, ErrAppearanceNotFound)
}

func (r *postgresAppearanceRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM appearances WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAppearanceNotFound)
}

const appearanceColumns = `id, match_id, player_id, team_id, goals, assists, yellow_cards, red_cards, minutes_played, started, created_at`

func (r *postgresAppearanceRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Appearance, error) {
	query := `SELECT ` + appearanceColumns + ` FROM appearances WHERE match_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query appearances for match %d: %w", matchID, err)
	}
	defer rows.Close()

	apps := make([]*models.Appearance, 0)
	for rows.Next() {
		var a models.Appearance
		if scanErr := rows.Scan(
			&a.ID, &a.MatchID, &a.PlayerID, &a.TeamID, &a.Goals, &a.Assists,
			&a.YellowCards, &a.RedCards, &a.MinutesPlayed, &a.Started, &a.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan appearance row: %w", scanErr)
		}
		apps = append(apps, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during appearance rows iteration: %w", err)
	}
	return apps, nil
}

func (r *postgresAppearanceRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.TournamentAppearance, error) {
	query := `
		SELECT a.id, a.match_id, a.player_id, a.team_id,
		       a.goals, a.assists, a.yellow_cards, a.red_cards, a.minutes_played, a.started, a.created_at,
		       p.first_name, p.last_name, p.photo_key, COALESCE(p.positions[1], ''),
		       t.name, t.logo_key
		FROM appearances a
		JOIN matches m ON m.id = a.match_id
		JOIN players p ON p.id = a.player_id
		JOIN teams t ON t.id = a.team_id
		WHERE m.tournament_id = $1
		ORDER BY m.date ASC, a.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament appearances: %w", err)
	}
	defer rows.Close()

	apps := make([]*models.TournamentAppearance, 0)
	for rows.Next() {
		var a models.TournamentAppearance
		var position string
		if scanErr := rows.Scan(
			&a.ID, &a.MatchID, &a.PlayerID, &a.TeamID,
			&a.Goals, &a.Assists, &a.YellowCards, &a.RedCards, &a.MinutesPlayed, &a.Started, &a.CreatedAt,
			&a.PlayerFirstName, &a.PlayerLastName, &a.PlayerPhotoKey, &position,
			&a.TeamName, &a.TeamLogoKey,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament appearance row: %w", scanErr)
		}
		a.PlayerPosition = models.Position(position)
		apps = append(apps, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament appearance rows iteration: %w", err)
	}
	return apps, nil
}

func (r *postgresAppearanceRepository) ListPlayerIDsByTournament(ctx context.Context, tournamentID int) ([]int, error) {
	query := `
		SELECT DISTINCT a.player_id
		FROM appearances a
		JOIN matches m ON m.id = a.match_id
		WHERE m.tournament_id = $1`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament player ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament player id: %w", scanErr)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament player id iteration: %w", err)
	}
	return ids, nil
}

func (r *postgresAppearanceRepository) handleAppearanceError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "appearances_match_id_player_id_key":
			return ErrAppearanceConflict
		case "appearances_match_id_fkey", "appearances_player_id_fkey", "appearances_team_id_fkey":
			return ErrAppearanceInvalid
		}
	}
	return err
}
