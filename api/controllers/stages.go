package controllers

import (
	"net/http"

	"github.com/MajQs/WineLog/api/middleware"
	"github.com/MajQs/WineLog/api/responses"
	"github.com/MajQs/WineLog/api/validators"
	"github.com/MajQs/WineLog/internal/stages"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/logger"
)

// StageAdvance completes the current stage and starts the next one. An
// optional note in the body is logged against the just-completed stage.
func StageAdvance(svc stages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stage service unavailable"))
			return
		}

		batchID, err := validators.PathUUID(r, "batchID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var note *stages.AdvanceNote
		if r.ContentLength > 0 {
			var body stages.AdvanceNote
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			note = &body
		}

		result, err := svc.Advance(ctx, middleware.UserIDFromContext(ctx), batchID, note)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// StageCurrent returns the batch's current stage with its notes.
func StageCurrent(svc stages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stage service unavailable"))
			return
		}

		batchID, err := validators.PathUUID(r, "batchID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		details, err := svc.Current(ctx, middleware.UserIDFromContext(ctx), batchID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, details)
	}
}
