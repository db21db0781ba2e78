package models

import "time"

// Position is the closed set of position tags a player can carry. Scope
// filters test membership against this enumeration, never against free-form
// strings.
type Position string

const (
	PositionGoalkeeper Position = "goalkeeper"
	PositionDefender   Position = "defender"
	PositionMidfielder Position = "midfielder"
	PositionForward    Position = "forward"
)

func (p Position) Valid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	}
	return false
}

type Player struct {
	ID        int        `json:"id" db:"id"`
	FirstName string     `json:"first_name" db:"first_name"`
	LastName  string     `json:"last_name" db:"last_name"`
	Positions []Position `json:"positions" db:"positions"`
	BirthDate time.Time  `json:"birth_date" db:"birth_date"`
	TeamID    *int       `json:"team_id,omitempty" db:"team_id"`
	Rating    int        `json:"rating" db:"rating"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`

	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_url,omitempty" db:"-"`

	Team *Team `json:"team,omitempty" db:"-"`
}

// HasPosition reports whether pos is one of the player's position tags.
func (p *Player) HasPosition(pos Position) bool {
	for _, have := range p.Positions {
		if have == pos {
			return true
		}
	}
	return false
}
