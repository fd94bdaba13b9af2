package controllers

import (
	"context"
	"net/http"

	"github.com/MajQs/WineLog/api/responses"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/logger"
)

// Pinger is anything that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthBody struct {
	Status string `json:"status"`
}

// HealthLive answers as soon as the process serves requests.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, healthBody{Status: "ok"})
	}
}

// HealthReady checks the database and Redis before answering ok.
func HealthReady(db, cache Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, healthBody{Status: "ok"})
	}
}
