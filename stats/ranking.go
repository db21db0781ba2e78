package stats

import (
	"errors"
	"fmt"
	"sort"

	"github.com/youthleague/football-system/models"
)

// ErrInvalidScopeParameter is returned when a ranking request is missing a
// required scope parameter or carries an invalid one. The wrapped message
// names the offending parameter.
var ErrInvalidScopeParameter = errors.New("invalid scope parameter")

type RankingScope string

const (
	ScopeAll        RankingScope = "all"
	ScopeTournament RankingScope = "tournament"
	ScopeTeam       RankingScope = "team"
	ScopePosition   RankingScope = "position"
	ScopeAge        RankingScope = "age"
)

const (
	minRankingLimit     = 1
	maxRankingLimit     = 200
	defaultRankingLimit = 50
)

// RankingParams select which players enter a ranking and how many rows come
// back. Exactly one scope applies; the rating bounds combine with any scope.
// Year is the calendar year used to convert ages to birth years.
type RankingParams struct {
	Scope        RankingScope
	TournamentID int
	TeamID       int
	Position     models.Position

	AgeFrom *int
	AgeTo   *int

	YearFrom *int
	YearTo   *int

	RatingFrom *int
	RatingTo   *int

	Limit *int
	Year  int
}

// Validate enforces the per-scope parameter contract. It never clamps:
// limit and rating bounds are silently normalized elsewhere, only genuinely
// missing or invalid scope parameters fail.
func (p RankingParams) Validate() error {
	switch p.Scope {
	case ScopeAll:
	case ScopeTournament:
		if p.TournamentID <= 0 {
			return fmt.Errorf("%w: tournament_id is required for scope %q", ErrInvalidScopeParameter, p.Scope)
		}
	case ScopeTeam:
		if p.TeamID <= 0 {
			return fmt.Errorf("%w: team_id is required for scope %q", ErrInvalidScopeParameter, p.Scope)
		}
	case ScopePosition:
		if !p.Position.Valid() {
			return fmt.Errorf("%w: position %q is not a known position", ErrInvalidScopeParameter, p.Position)
		}
	case ScopeAge:
		if p.AgeFrom == nil && p.AgeTo == nil && p.YearFrom == nil && p.YearTo == nil {
			return fmt.Errorf("%w: scope %q requires an age range or a birth year range", ErrInvalidScopeParameter, p.Scope)
		}
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidScopeParameter, p.Scope)
	}
	return nil
}

// effectiveLimit clamps the requested row count into [1, 200], defaulting
// to 50 when absent.
func (p RankingParams) effectiveLimit() int {
	if p.Limit == nil {
		return defaultRankingLimit
	}
	switch limit := *p.Limit; {
	case limit < minRankingLimit:
		return minRankingLimit
	case limit > maxRankingLimit:
		return maxRankingLimit
	default:
		return limit
	}
}

// birthYearRange resolves the effective inclusive birth-year bounds. An
// explicit birth-year range wins over an age range. Ages convert against
// p.Year: the younger bound maps to the later birth year.
func (p RankingParams) birthYearRange() (from, to *int) {
	if p.YearFrom != nil || p.YearTo != nil {
		from, to = p.YearFrom, p.YearTo
		if from != nil && to != nil && *from > *to {
			from, to = to, from
		}
		return from, to
	}

	if p.AgeFrom != nil {
		year := p.Year - *p.AgeFrom
		to = &year
	}
	if p.AgeTo != nil {
		year := p.Year - *p.AgeTo
		from = &year
	}
	if from != nil && to != nil && *from > *to {
		from, to = to, from
	}
	return from, to
}

// ratingBounds clamps any supplied rating bound into [0, 100].
func (p RankingParams) ratingBounds() (from, to *int) {
	clamp := func(v *int) *int {
		if v == nil {
			return nil
		}
		r := *v
		if r < 0 {
			r = 0
		}
		if r > 100 {
			r = 100
		}
		return &r
	}
	return clamp(p.RatingFrom), clamp(p.RatingTo)
}

type PlayerRankingRow struct {
	PlayerID  int               `json:"player_id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Positions []models.Position `json:"positions"`
	TeamID    *int              `json:"team_id,omitempty"`
	BirthDate string            `json:"birth_date"`
	Rating    int               `json:"rating"`
	PhotoURL  *string           `json:"photo_url,omitempty"`
}

// RankPlayers filters players by the requested scope and rating bounds and
// returns them ordered by rating descending, then last name, then first
// name. tournamentPlayers is the set of player IDs with at least one
// appearance in the scoped tournament; it is consulted only for the
// tournament scope. The limit is applied after sorting, never before.
func RankPlayers(players []*models.Player, tournamentPlayers map[int]struct{}, params RankingParams) ([]PlayerRankingRow, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	yearFrom, yearTo := params.birthYearRange()
	ratingFrom, ratingTo := params.ratingBounds()

	eligible := make([]*models.Player, 0, len(players))
	for _, player := range players {
		if !matchesScope(player, tournamentPlayers, params, yearFrom, yearTo) {
			continue
		}
		if ratingFrom != nil && player.Rating < *ratingFrom {
			continue
		}
		if ratingTo != nil && player.Rating > *ratingTo {
			continue
		}
		eligible = append(eligible, player)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		return a.FirstName < b.FirstName
	})

	if limit := params.effectiveLimit(); len(eligible) > limit {
		eligible = eligible[:limit]
	}

	rows := make([]PlayerRankingRow, 0, len(eligible))
	for _, player := range eligible {
		rows = append(rows, PlayerRankingRow{
			PlayerID:  player.ID,
			FirstName: player.FirstName,
			LastName:  player.LastName,
			Positions: player.Positions,
			TeamID:    player.TeamID,
			BirthDate: player.BirthDate.Format("2006-01-02"),
			Rating:    player.Rating,
			PhotoURL:  player.PhotoURL,
		})
	}
	return rows, nil
}

func matchesScope(player *models.Player, tournamentPlayers map[int]struct{}, params RankingParams, yearFrom, yearTo *int) bool {
	switch params.Scope {
	case ScopeAll:
		return true
	case ScopeTournament:
		_, ok := tournamentPlayers[player.ID]
		return ok
	case ScopeTeam:
		return player.TeamID != nil && *player.TeamID == params.TeamID
	case ScopePosition:
		return player.HasPosition(params.Position)
	case ScopeAge:
		birthYear := player.BirthDate.Year()
		if yearFrom != nil && birthYear < *yearFrom {
			return false
		}
		if yearTo != nil && birthYear > *yearTo {
			return false
		}
		return true
	}
	return false
}
