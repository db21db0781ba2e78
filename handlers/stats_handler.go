package handlers

import (
	"net/http"
	"strconv"

	"github.com/youthleague/football-system/models"
	"github.com/youthleague/football-system/services"
	"github.com/youthleague/football-system/stats"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) GetTournamentStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.statsService.TournamentStandings(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"standings": standings,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) GetTournamentPlayerStatistics(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.statsService.TournamentPlayerStatistics(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"players": players,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) GetTournamentTeamStatistics(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.statsService.TournamentTeamStatistics(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"teams": teams,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) GetTeamStatistics(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	row, err := h.statsService.TeamStatistics(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"statistics": row,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) GetPlayerRankings(w http.ResponseWriter, r *http.Request) {
	params := rankingParamsFromQuery(r)

	rankings, err := h.statsService.PlayerRankings(r.Context(), params)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"rankings": rankings,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *StatsHandler) GetPlayerEventSummary(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	groups, err := h.statsService.PlayerEventSummary(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"events": groups,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// rankingParamsFromQuery maps query parameters onto ranking params.
// Absent or non-numeric values stay unset; scope validation decides what
// an unset value means.
func rankingParamsFromQuery(r *http.Request) stats.RankingParams {
	q := r.URL.Query()

	scope := stats.RankingScope(q.Get("scope"))
	if scope == "" {
		scope = stats.ScopeAll
	}

	params := stats.RankingParams{
		Scope:      scope,
		Position:   models.Position(q.Get("position")),
		AgeFrom:    queryInt(q.Get("age_from")),
		AgeTo:      queryInt(q.Get("age_to")),
		YearFrom:   queryInt(q.Get("year_from")),
		YearTo:     queryInt(q.Get("year_to")),
		RatingFrom: queryInt(q.Get("rating_from")),
		RatingTo:   queryInt(q.Get("rating_to")),
		Limit:      queryInt(q.Get("limit")),
	}
	if id := queryInt(q.Get("tournament_id")); id != nil {
		params.TournamentID = *id
	}
	if id := queryInt(q.Get("team_id")); id != nil {
		params.TeamID = *id
	}
	return params
}

func queryInt(value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}
