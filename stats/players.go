package stats

import (
	"sort"

	"github.com/youthleague/football-system/models"
)

type PlayerStatRow struct {
	PlayerID       int              `json:"player_id"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	PlayerPhotoURL *string          `json:"player_photo_url,omitempty"`
	Position       models.Position  `json:"position"`
	TeamID         int              `json:"team_id"`
	TeamName       string           `json:"team_name"`
	TeamLogoURL    *string          `json:"team_logo_url,omitempty"`

	Matches       int `json:"matches"`
	Goals         int `json:"goals"`
	Assists       int `json:"assists"`
	YellowCards   int `json:"yellow_cards"`
	RedCards      int `json:"red_cards"`
	MinutesPlayed int `json:"minutes_played"`
}

// TournamentPlayerStatistics folds a tournament's appearance rows into one
// row per player, ordered by goals then assists, both descending. The
// player and team snapshot on each row is taken from the player's first
// appearance in iteration order; a player who switched teams mid-tournament
// still gets a single row attributed to that first team. That attribution
// is a documented quirk of the aggregation, kept as-is rather than resolved
// to "latest team".
func TournamentPlayerStatistics(apps []*models.TournamentAppearance) []PlayerStatRow {
	index := make(map[int]int, len(apps))
	rows := make([]PlayerStatRow, 0, len(apps))

	for _, app := range apps {
		i, seen := index[app.PlayerID]
		if !seen {
			rows = append(rows, PlayerStatRow{
				PlayerID:       app.PlayerID,
				FirstName:      app.PlayerFirstName,
				LastName:       app.PlayerLastName,
				PlayerPhotoURL: app.PlayerPhotoURL,
				Position:       app.PlayerPosition,
				TeamID:         app.TeamID,
				TeamName:       app.TeamName,
				TeamLogoURL:    app.TeamLogoURL,
				Matches:        1,
				Goals:          app.Goals,
				Assists:        app.Assists,
				YellowCards:    app.YellowCards,
				RedCards:       app.RedCards,
				MinutesPlayed:  app.MinutesPlayed,
			})
			index[app.PlayerID] = len(rows) - 1
			continue
		}

		row := &rows[i]
		row.Matches++
		row.Goals += app.Goals
		row.Assists += app.Assists
		row.YellowCards += app.YellowCards
		row.RedCards += app.RedCards
		row.MinutesPlayed += app.MinutesPlayed
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Goals != rows[j].Goals {
			return rows[i].Goals > rows[j].Goals
		}
		return rows[i].Assists > rows[j].Assists
	})

	return rows
}
