package controllers

import (
	"net/http"

	"github.com/MajQs/WineLog/api/middleware"
	"github.com/MajQs/WineLog/api/responses"
	"github.com/MajQs/WineLog/api/validators"
	"github.com/MajQs/WineLog/internal/ratings"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/logger"
)

// RatingGet returns the caller's rating for a batch.
func RatingGet(svc ratings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rating service unavailable"))
			return
		}

		batchID, err := validators.PathUUID(r, "batchID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Get(ctx, middleware.UserIDFromContext(ctx), batchID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// RatingUpsert stores the caller's rating for a completed batch. A first
// rating answers 201, replacing an existing one answers 200.
func RatingUpsert(svc ratings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rating service unavailable"))
			return
		}

		batchID, err := validators.PathUUID(r, "batchID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var cmd ratings.UpsertCommand
		if err := validators.DecodeJSONBody(r, &cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, isNew, err := svc.Upsert(ctx, middleware.UserIDFromContext(ctx), batchID, cmd)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status := http.StatusOK
		if isNew {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, dto)
	}
}
