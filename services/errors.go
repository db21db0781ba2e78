package services

import "errors"

// Errors shared across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed    = errors.New("validation failed")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrTeamNameRequired    = errors.New("team name is required")
	ErrPlayerNameRequired  = errors.New("player first and last name are required")
	ErrInvalidPosition     = errors.New("invalid player position")
	ErrInvalidRating       = errors.New("player rating must be between 0 and 100")
	ErrMatchTeamsIdentical = errors.New("a match requires two distinct teams")
	ErrInvalidMatchStatus  = errors.New("invalid match status")
	ErrScoresRequired      = errors.New("a finished match requires both scores")

	// Conflicts
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrTournamentNameConflict = errors.New("tournament name already exists for this season")
	ErrMembershipConflict     = errors.New("team is already registered for this tournament")
	ErrAppearanceConflict     = errors.New("player already has an appearance for this match")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Uploads depend on the object store being configured.
	ErrUploadsDisabled = errors.New("file uploads are not configured")

	// Entity-specific not-found errors
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMembershipNotFound = errors.New("tournament membership not found")
	ErrAppearanceNotFound = errors.New("appearance not found")
	ErrMatchEventNotFound = errors.New("match event not found")

	// Tournament validation
	ErrTournamentNameRequired     = errors.New("tournament name is required")
	ErrTournamentInvalidDateRange = errors.New("tournament end date must be after start date")
)
