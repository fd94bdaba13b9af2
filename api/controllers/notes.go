package controllers

import (
	"net/http"

	"github.com/MajQs/WineLog/api/middleware"
	"github.com/MajQs/WineLog/api/responses"
	"github.com/MajQs/WineLog/api/validators"
	"github.com/MajQs/WineLog/internal/notes"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/logger"
)

// NoteCreate logs a note against the batch's current stage.
func NoteCreate(svc notes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "note service unavailable"))
			return
		}

		batchID, err := validators.PathUUID(r, "batchID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var cmd notes.CreateCommand
		if err := validators.DecodeJSONBody(r, &cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Create(ctx, middleware.UserIDFromContext(ctx), batchID, cmd)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// NotesList returns the batch's notes, optionally filtered by stage.
func NotesList(svc notes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "note service unavailable"))
			return
		}

		batchID, err := validators.PathUUID(r, "batchID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		stageID, err := validators.ParseQueryUUID(r, "stage_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		order, err := validators.ParseQueryEnum(r, "order", "desc", "asc", "desc")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.List(ctx, middleware.UserIDFromContext(ctx), batchID, notes.ListFilters{
			StageID: stageID,
			Order:   order,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// NoteDelete removes a single note.
func NoteDelete(svc notes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "note service unavailable"))
			return
		}

		batchID, err := validators.PathUUID(r, "batchID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		noteID, err := validators.PathUUID(r, "noteID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Delete(ctx, middleware.UserIDFromContext(ctx), batchID, noteID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
