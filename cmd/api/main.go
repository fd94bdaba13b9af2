package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MajQs/WineLog/api/routes"
	"github.com/MajQs/WineLog/internal/auth"
	"github.com/MajQs/WineLog/internal/batches"
	"github.com/MajQs/WineLog/internal/dashboard"
	"github.com/MajQs/WineLog/internal/notes"
	"github.com/MajQs/WineLog/internal/ratings"
	"github.com/MajQs/WineLog/internal/stages"
	"github.com/MajQs/WineLog/internal/templates"
	"github.com/MajQs/WineLog/internal/users"
	"github.com/MajQs/WineLog/pkg/auth/session"
	"github.com/MajQs/WineLog/pkg/config"
	"github.com/MajQs/WineLog/pkg/db"
	"github.com/MajQs/WineLog/pkg/logger"
	"github.com/MajQs/WineLog/pkg/metrics"
	"github.com/MajQs/WineLog/pkg/migrate"
	"github.com/MajQs/WineLog/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	templateRepo := templates.NewRepository(gormDB)
	batchRepo := batches.NewRepository(gormDB)
	stageRepo := stages.NewRepository(gormDB)
	noteRepo := notes.NewRepository(gormDB)
	ratingRepo := ratings.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)

	templateService, err := templates.NewService(templateRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create template service", err)
		os.Exit(1)
	}
	batchService, err := batches.NewService(batchRepo, stageRepo, templateRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create batch service", err)
		os.Exit(1)
	}
	stageService, err := stages.NewService(stageRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create stage service", err)
		os.Exit(1)
	}
	noteService, err := notes.NewService(noteRepo, stageRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create note service", err)
		os.Exit(1)
	}
	ratingService, err := ratings.NewService(ratingRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create rating service", err)
		os.Exit(1)
	}
	dashboardService, err := dashboard.NewService(dashboardRepo, stageRepo, cfg.Dashboard.ActiveBatchLimit)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}
	authService, err := auth.NewService(users.NewRepository(gormDB), sessionManager, redisClient, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Cfg:         cfg,
			Logg:        logg,
			DB:          dbClient,
			Redis:       redisClient,
			Sessions:    sessionManager,
			HTTPMetrics: httpMetrics,
			Registry:    registry,

			AuthService:      authService,
			TemplateService:  templateService,
			BatchService:     batchService,
			StageService:     stageService,
			NoteService:      noteService,
			RatingService:    ratingService,
			DashboardService: dashboardService,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
