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
	ErrMatchEventNotFound = errors.New("match event not found")
	ErrMatchEventInvalid  = errors.New("match event match or player invalid")
)

type MatchEventRepository interface {
	Create(ctx context.Context, event *models.MatchEvent) error
	Delete(ctx context.Context, id int) error
	ListByMatch(ctx context.Context, matchID int) ([]*models.MatchEvent, error)
	// ListByPlayer returns every event recorded for the player across all
	// matches, in recording order.
	ListByPlayer(ctx context.Context, playerID int) ([]*models.MatchEvent, error)
}

type postgresMatchEventRepository struct {
	db *sql.DB
}

func NewPostgresMatchEventRepository(db *sql.DB) MatchEventRepository {
	return &postgresMatchEventRepository{db: db}
}

const matchEventColumns = `id, match_id, player_id, event_id, event_name, sub_event_id, sub_event_name, minute, created_at`

func (r *postgresMatchEventRepository) Create(ctx context.Context, event *models.MatchEvent) error {
	query := `
		INSERT INTO match_events (match_id, player_id, event_id, event_name, sub_event_id, sub_event_name, minute)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		event.MatchID, event.PlayerID, event.EventID, event.EventName,
		event.SubEventID, event.SubEventName, event.Minute,
	).Scan(&event.ID, &event.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Constraint {
			case "match_events_match_id_fkey", "match_events_player_id_fkey":
				return ErrMatchEventInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresMatchEventRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM match_events WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchEventNotFound)
}

func (r *postgresMatchEventRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.MatchEvent, error) {
	query := `SELECT ` + matchEventColumns + ` FROM match_events WHERE match_id = $1 ORDER BY id ASC`
	return r.queryEvents(ctx, query, matchID)
}

func (r *postgresMatchEventRepository) ListByPlayer(ctx context.Context, playerID int) ([]*models.MatchEvent, error) {
	query := `SELECT ` + matchEventColumns + ` FROM match_events WHERE player_id = $1 ORDER BY id ASC`
	return r.queryEvents(ctx, query, playerID)
}

func (r *postgresMatchEventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*models.MatchEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query match events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.MatchEvent, 0)
	for rows.Next() {
		var e models.MatchEvent
		if scanErr := rows.Scan(
			&e.ID, &e.MatchID, &e.PlayerID, &e.EventID, &e.EventName,
			&e.SubEventID, &e.SubEventName, &e.Minute, &e.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match event row: %w", scanErr)
		}
		events = append(events, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match event rows iteration: %w", err)
	}
	return events, nil
}
