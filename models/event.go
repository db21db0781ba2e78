package models

import "time"

// MatchEvent is a raw per-player event recorded during a match (goal, card,
// substitution and so on). EventID identifies the event type; SubEventID
// refines it and may be absent.
type MatchEvent struct {
	ID           int       `json:"id" db:"id"`
	MatchID      int       `json:"match_id" db:"match_id"`
	PlayerID     int       `json:"player_id" db:"player_id"`
	EventID      int       `json:"event_id" db:"event_id"`
	EventName    string    `json:"event_name" db:"event_name"`
	SubEventID   *int      `json:"sub_event_id,omitempty" db:"sub_event_id"`
	SubEventName *string   `json:"sub_event_name,omitempty" db:"sub_event_name"`
	Minute       *int      `json:"minute,omitempty" db:"minute"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
