package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/youthleague/football-system/handlers"
	"github.com/youthleague/football-system/metrics"
	"github.com/youthleague/football-system/middleware"
	"github.com/youthleague/football-system/models"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Team       *handlers.TeamHandler
	Player     *handlers.PlayerHandler
	Match      *handlers.MatchHandler
	Tournament *handlers.TournamentHandler
	Stats      *handlers.StatsHandler
	Health     *handlers.HealthHandler
}

// SetupRoutes mounts the public read API, the admin write API and the
// operational endpoints. All statistics reads are public; every write
// goes through JWT authentication and the admin role check.
func SetupRoutes(router *chi.Mux, h Handlers, m *metrics.Metrics, jwtSecret string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if m != nil {
		router.Use(m.Middleware)
	}

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Get("/healthz", h.Health.Healthz)
	if m != nil {
		router.Method(http.MethodGet, "/metrics", m.Handler())
	}

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListTournaments)
		r.Get("/{tournamentID}", h.Tournament.GetTournamentByID)
		r.Get("/{tournamentID}/teams", h.Tournament.ListTeams)
		r.Get("/{tournamentID}/matches", h.Match.ListTournamentMatches)

		r.Get("/{tournamentID}/standings", h.Stats.GetTournamentStandings)
		r.Get("/{tournamentID}/players/statistics", h.Stats.GetTournamentPlayerStatistics)
		r.Get("/{tournamentID}/teams/statistics", h.Stats.GetTournamentTeamStatistics)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", h.Tournament.CreateTournament)
			r.Put("/{tournamentID}", h.Tournament.UpdateTournament)
			r.Delete("/{tournamentID}", h.Tournament.DeleteTournament)
			r.Post("/{tournamentID}/logo", h.Tournament.UploadLogo)
			r.Post("/{tournamentID}/teams/{teamID}", h.Tournament.RegisterTeam)
			r.Delete("/{tournamentID}/teams/{teamID}", h.Tournament.UnregisterTeam)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", h.Team.ListTeams)
		r.Get("/{teamID}", h.Team.GetTeamByID)
		r.Get("/{teamID}/players", h.Team.ListTeamPlayers)
		r.Get("/{teamID}/matches", h.Match.ListTeamMatches)
		r.Get("/{teamID}/statistics", h.Stats.GetTeamStatistics)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", h.Team.CreateTeam)
			r.Put("/{teamID}", h.Team.UpdateTeam)
			r.Delete("/{teamID}", h.Team.DeleteTeam)
			r.Post("/{teamID}/logo", h.Team.UploadLogo)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", h.Player.ListPlayers)
		r.Get("/rankings", h.Stats.GetPlayerRankings)
		r.Get("/{playerID}", h.Player.GetPlayerByID)
		r.Get("/{playerID}/events/summary", h.Stats.GetPlayerEventSummary)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", h.Player.CreatePlayer)
			r.Put("/{playerID}", h.Player.UpdatePlayer)
			r.Patch("/{playerID}/rating", h.Player.UpdateRating)
			r.Delete("/{playerID}", h.Player.DeletePlayer)
			r.Post("/{playerID}/photo", h.Player.UploadPhoto)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", h.Match.GetMatchByID)
		r.Get("/{matchID}/appearances", h.Match.ListAppearances)
		r.Get("/{matchID}/events", h.Match.ListEvents)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Post("/", h.Match.CreateMatch)
			r.Put("/{matchID}", h.Match.UpdateMatch)
			r.Put("/{matchID}/result", h.Match.RecordResult)
			r.Delete("/{matchID}", h.Match.DeleteMatch)

			r.Post("/{matchID}/appearances", h.Match.RecordAppearance)
			r.Post("/{matchID}/events", h.Match.RecordEvent)
		})
	})

	router.Route("/appearances", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Delete("/{appearanceID}", h.Match.DeleteAppearance)
		})
	})

	router.Route("/events", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)

			r.Delete("/{eventID}", h.Match.DeleteEvent)
		})
	})
}
