package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/AmCoder2104/exam-portal-api/internal/config"
	"github.com/AmCoder2104/exam-portal-api/internal/middleware"
	"github.com/AmCoder2104/exam-portal-api/internal/seed"
	"github.com/AmCoder2104/exam-portal-api/shared/authz"
)

// RouterDeps collects everything the router needs.
type RouterDeps struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	Guard         *middleware.Guard
	Auth          *AuthHandler
	PasswordReset *PasswordResetHandler
	Questions     *QuestionHandler
	Attempts      *AttemptHandler
	Dashboard     *DashboardHandler
	Seeder        *seed.Seeder
}

// NewRouter assembles the HTTP routes. The page guard wraps the whole
// tree so the test-taking and dashboard areas are gated before any page
// handler runs; API subtrees carry their own role middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(deps.Guard.Protect)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)
			r.Post("/logout", deps.Auth.Logout)

			r.With(deps.Guard.RequireAuth).Get("/session", deps.Auth.Session)

			r.Route("/password-reset", func(r chi.Router) {
				r.Post("/request", deps.PasswordReset.Request)
				r.Post("/reset", deps.PasswordReset.Reset)
				r.Get("/validate", deps.PasswordReset.Validate)
			})
		})

		r.Route("/questions", func(r chi.Router) {
			r.With(deps.Guard.RequireAuth).Get("/", deps.Questions.List)
			r.With(deps.Guard.RequireRole(authz.ManagementArea)).Post("/", deps.Questions.Create)
		})

		r.Route("/attempts", func(r chi.Router) {
			r.Use(deps.Guard.RequireAuth)

			r.Post("/", deps.Attempts.Start)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", deps.Attempts.Get)
				r.Post("/answers", deps.Attempts.SubmitAnswer)
				r.Post("/suspicious", deps.Attempts.RecordSuspicious)
				r.Post("/complete", deps.Attempts.Complete)
				r.Post("/abandon", deps.Attempts.Abandon)
			})
		})

		r.With(deps.Guard.RequireAuth).Get("/tests", deps.Dashboard.ListTests)

		r.With(deps.Guard.RequireRole(authz.AdminArea)).Get("/users", deps.Dashboard.ListUsers)
		r.With(deps.Guard.RequireRole(authz.ManagementArea)).Get("/results", deps.Dashboard.ListResults)
		r.With(deps.Guard.RequireRole(authz.Dashboard)).Get("/stats", deps.Dashboard.Stats)

		if deps.Config.Debug && deps.Seeder != nil {
			r.Get("/seed", func(w http.ResponseWriter, req *http.Request) {
				if err := deps.Seeder.Run(req.Context()); err != nil {
					deps.Logger.Error().Err(err).Msg("failed to seed database")
					respondError(w, http.StatusInternalServerError, "failed to seed database")
					return
				}
				respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "database seeded"})
			})
		}
	})

	// Everything else is the frontend; the guard has already run.
	r.NotFound(SPAHandler(deps.Config.StaticDir))

	return r
}
