package controllers

import (
	"net/http"

	"github.com/MajQs/WineLog/api/middleware"
	"github.com/MajQs/WineLog/api/responses"
	"github.com/MajQs/WineLog/api/validators"
	"github.com/MajQs/WineLog/internal/batches"
	"github.com/MajQs/WineLog/pkg/enums"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/logger"
)

// BatchCreate starts a new batch from a template.
func BatchCreate(svc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "batch service unavailable"))
			return
		}

		var cmd batches.CreateCommand
		if err := validators.DecodeJSONBody(r, &cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.Create(ctx, middleware.UserIDFromContext(ctx), cmd)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}

// BatchList returns the caller's batches with listing projections.
func BatchList(svc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "batch service unavailable"))
			return
		}

		filters, err := parseBatchFilters(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.List(ctx, middleware.UserIDFromContext(ctx), *filters)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// BatchGet returns the full batch view.
func BatchGet(svc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "batch service unavailable"))
			return
		}

		batchID, err := validators.PathUUID(r, "batchID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.Get(ctx, middleware.UserIDFromContext(ctx), batchID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// BatchRename changes the batch name.
func BatchRename(svc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "batch service unavailable"))
			return
		}

		batchID, err := validators.PathUUID(r, "batchID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var cmd batches.RenameCommand
		if err := validators.DecodeJSONBody(r, &cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Rename(ctx, middleware.UserIDFromContext(ctx), batchID, cmd)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// BatchComplete archives the batch.
func BatchComplete(svc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "batch service unavailable"))
			return
		}

		batchID, err := validators.PathUUID(r, "batchID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Complete(ctx, middleware.UserIDFromContext(ctx), batchID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// BatchDelete removes the batch and everything attached to it.
func BatchDelete(svc batches.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "batch service unavailable"))
			return
		}

		batchID, err := validators.PathUUID(r, "batchID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Delete(ctx, middleware.UserIDFromContext(ctx), batchID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func parseBatchFilters(r *http.Request) (*batches.ListFilters, error) {
	filters := batches.ListFilters{}

	status, err := validators.ParseQueryEnum(r, "status", "", enums.BatchStatusValues()...)
	if err != nil {
		return nil, err
	}
	if status != "" {
		value := enums.BatchStatus(status)
		filters.Status = &value
	}

	typeRaw, err := validators.ParseQueryEnum(r, "type", "", enums.BatchTypeValues()...)
	if err != nil {
		return nil, err
	}
	if typeRaw != "" {
		value := enums.BatchType(typeRaw)
		filters.Type = &value
	}

	filters.Sort, err = validators.ParseQueryEnum(r, "sort", "created_at", "created_at", "started_at", "name")
	if err != nil {
		return nil, err
	}
	filters.Order, err = validators.ParseQueryEnum(r, "order", "desc", "asc", "desc")
	if err != nil {
		return nil, err
	}

	return &filters, nil
}
