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
	ErrMembershipNotFound = errors.New("tournament membership not found")
	ErrMembershipConflict = errors.New("team is already registered for this tournament")
	ErrMembershipInvalid  = errors.New("membership tournament or team invalid")
)

type MembershipRepository interface {
	Create(ctx context.Context, membership *models.TournamentMembership) error
	Delete(ctx context.Context, tournamentID, teamID int) error
	// ListTeamsByTournament returns the member teams in registration order,
	// the order standings use to break full ties.
	ListTeamsByTournament(ctx context.Context, tournamentID int) ([]models.Team, error)
}

type postgresMembershipRepository struct {
	db *sql.DB
}

func NewPostgresMembershipRepository(db *sql.DB) MembershipRepository {
	return &postgresMembershipRepository{db: db}
}

func (r *postgresMembershipRepository) Create(ctx context.Context, membership *models.TournamentMembership) error {
	query := `
		INSERT INTO tournament_memberships (tournament_id, team_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		membership.TournamentID, membership.TeamID,
	).Scan(&membership.ID, &membership.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "tournament_memberships_tournament_id_team_id_key":
				return ErrMembershipConflict
			case "tournament_memberships_tournament_id_fkey", "tournament_memberships_team_id_fkey":
				return ErrMembershipInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresMembershipRepository) Delete(ctx context.Context, tournamentID, teamID int) error {
	query := `DELETE FROM tournament_memberships WHERE tournament_id = $1 AND team_id = $2`
	result, err := r.db.ExecContext(ctx, query, tournamentID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMembershipNotFound)
}

func (r *postgresMembershipRepository) ListTeamsByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	query := `
		SELECT t.id, t.name, t.short_name, t.city, t.founded_year, t.logo_key, t.created_at
		FROM tournament_memberships tm
		JOIN teams t ON t.id = tm.team_id
		WHERE tm.tournament_id = $1
		ORDER BY tm.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if scanErr := rows.Scan(
			&t.ID, &t.Name, &t.ShortName, &t.City, &t.FoundedYear, &t.LogoKey, &t.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament team row: %w", scanErr)
		}
		teams = append(teams, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament team rows iteration: %w", err)
	}
	return teams, nil
}
