package models

import "time"

// Appearance is one player's participation record for one match, carrying
// that match's per-player counters. At most one appearance exists per
// (match, player) pair.
type Appearance struct {
	ID            int       `json:"id" db:"id"`
	MatchID       int       `json:"match_id" db:"match_id"`
	PlayerID      int       `json:"player_id" db:"player_id"`
	TeamID        int       `json:"team_id" db:"team_id"`
	Goals         int       `json:"goals" db:"goals"`
	Assists       int       `json:"assists" db:"assists"`
	YellowCards   int       `json:"yellow_cards" db:"yellow_cards"`
	RedCards      int       `json:"red_cards" db:"red_cards"`
	MinutesPlayed int       `json:"minutes_played" db:"minutes_played"`
	Started       bool      `json:"started" db:"started"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// TournamentAppearance is an appearance joined with the player and team
// snapshot the aggregators display. Produced by the appearance repository,
// never persisted in this shape.
type TournamentAppearance struct {
	Appearance

	PlayerFirstName string   `json:"player_first_name"`
	PlayerLastName  string   `json:"player_last_name"`
	PlayerPhotoKey  *string  `json:"-"`
	PlayerPhotoURL  *string  `json:"player_photo_url,omitempty"`
	PlayerPosition  Position `json:"player_position"`
	TeamName        string   `json:"team_name"`
	TeamLogoKey     *string  `json:"-"`
	TeamLogoURL     *string  `json:"team_logo_url,omitempty"`
}
