package models

import "time"

type Team struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	ShortName   *string   `json:"short_name,omitempty" db:"short_name"`
	City        *string   `json:"city,omitempty" db:"city"`
	FoundedYear *int      `json:"founded_year,omitempty" db:"founded_year"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`

	Players []Player `json:"players,omitempty" db:"-"`
}
