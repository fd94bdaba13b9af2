package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MajQs/WineLog/api/controllers"
	"github.com/MajQs/WineLog/api/middleware"
	"github.com/MajQs/WineLog/internal/auth"
	"github.com/MajQs/WineLog/internal/batches"
	"github.com/MajQs/WineLog/internal/dashboard"
	"github.com/MajQs/WineLog/internal/notes"
	"github.com/MajQs/WineLog/internal/ratings"
	"github.com/MajQs/WineLog/internal/stages"
	"github.com/MajQs/WineLog/internal/templates"
	"github.com/MajQs/WineLog/pkg/auth/session"
	"github.com/MajQs/WineLog/pkg/config"
	"github.com/MajQs/WineLog/pkg/logger"
	"github.com/MajQs/WineLog/pkg/metrics"
	"github.com/MajQs/WineLog/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Cfg         *config.Config
	Logg        *logger.Logger
	DB          controllers.Pinger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	AuthService      auth.Service
	TemplateService  templates.Service
	BatchService     batches.Service
	StageService     stages.Service
	NoteService      notes.Service
	RatingService    ratings.Service
	DashboardService dashboard.Service
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Cfg
	logg := deps.Logg

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)
	if deps.HTTPMetrics != nil {
		r.Use(middleware.Metrics(deps.HTTPMetrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	authed := middleware.Auth(cfg.JWT, deps.Sessions, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/register", controllers.Register(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.Login(deps.AuthService, logg))
		r.Post("/refresh", controllers.Refresh(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/forgot-password", controllers.ForgotPassword(deps.AuthService, logg))
		r.Post("/reset-password", controllers.ResetPassword(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Post("/logout", controllers.Logout(deps.AuthService, logg))
			r.Delete("/delete-account", controllers.DeleteAccount(deps.AuthService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authed)

		r.Get("/dashboard", controllers.DashboardGet(deps.DashboardService, logg))

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", controllers.TemplatesList(deps.TemplateService, logg))
			r.Get("/{templateID}", controllers.TemplateGet(deps.TemplateService, logg))
		})

		r.Route("/batches", func(r chi.Router) {
			r.Post("/", controllers.BatchCreate(deps.BatchService, logg))
			r.Get("/", controllers.BatchList(deps.BatchService, logg))

			r.Route("/{batchID}", func(r chi.Router) {
				r.Get("/", controllers.BatchGet(deps.BatchService, logg))
				r.Patch("/", controllers.BatchRename(deps.BatchService, logg))
				r.Delete("/", controllers.BatchDelete(deps.BatchService, logg))
				r.Post("/complete", controllers.BatchComplete(deps.BatchService, logg))

				r.Route("/stages", func(r chi.Router) {
					r.Post("/advance", controllers.StageAdvance(deps.StageService, logg))
					r.Get("/current", controllers.StageCurrent(deps.StageService, logg))
				})

				r.Route("/notes", func(r chi.Router) {
					r.Post("/", controllers.NoteCreate(deps.NoteService, logg))
					r.Get("/", controllers.NotesList(deps.NoteService, logg))
					r.Delete("/{noteID}", controllers.NoteDelete(deps.NoteService, logg))
				})

				r.Get("/rating", controllers.RatingGet(deps.RatingService, logg))
				r.Put("/rating", controllers.RatingUpsert(deps.RatingService, logg))
			})
		})
	})

	return r
}
