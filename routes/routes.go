package routes

import (
	"net/http"
	"time"

	"github.com/Dosada05/courtside/handlers"
	"github.com/Dosada05/courtside/middleware"
	"github.com/Dosada05/courtside/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Player     *handlers.PlayerHandler
	Signup     *handlers.SignupHandler
	Tournament *handlers.TournamentHandler
	Dashboard  *handlers.DashboardHandler
	WebSocket  *handlers.WebSocketHandler
	Metrics    http.Handler // nil disables /metrics
}

func SetupRoutes(router chi.Router, h Handlers, jwtSecret []byte, allowedOrigins []string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if h.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	// WebSocket connections are long lived and must not be cut by the request timeout.
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(15 * time.Second))

		r.Post("/auth/login", h.Auth.Login)

		r.Route("/public", func(r chi.Router) {
			r.Get("/current", h.Tournament.CurrentHandler)
			r.Get("/signups", h.Signup.PublicList)
			r.Post("/signups", h.Signup.Create)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(string(models.RoleAdmin)))

			r.Get("/dashboard", h.Dashboard.Stats)

			r.Route("/players", func(r chi.Router) {
				r.Get("/", h.Player.List)
				r.Post("/", h.Player.Create)
				r.Post("/import", h.Player.Import)
			})

			r.Get("/signups", h.Signup.List)
			r.Get("/signups/checked-in", h.Signup.ListCheckedIn)
			r.Route("/signups/{signupID}", func(r chi.Router) {
				r.Patch("/checkin", h.Signup.SetCheckIn)
				r.Patch("/skill", h.Signup.SetSkill)
			})

			r.Route("/signup-dates/{date}", func(r chi.Router) {
				r.Put("/", h.Signup.SetClosed)
				r.Post("/duplicate", h.Signup.Duplicate)
			})

			r.Route("/tournaments", func(r chi.Router) {
				r.Get("/", h.Tournament.ListHandler)
				r.Post("/", h.Tournament.CreateHandler)

				r.Route("/{tournamentID}", func(r chi.Router) {
					r.Get("/", h.Tournament.GetByIDHandler)
					r.Get("/courts", h.Tournament.CourtsHandler)
					r.Post("/complete", h.Tournament.CompleteHandler)
					r.Post("/matches/{matchID}/assign", h.Tournament.AssignMatchHandler)
					r.Post("/matches/{matchID}/finish", h.Tournament.FinishMatchHandler)
				})
			})
		})
	})
}
