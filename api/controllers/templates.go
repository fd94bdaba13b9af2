package controllers

import (
	"net/http"

	"github.com/MajQs/WineLog/api/responses"
	"github.com/MajQs/WineLog/api/validators"
	"github.com/MajQs/WineLog/internal/templates"
	"github.com/MajQs/WineLog/pkg/enums"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/logger"
)

// TemplatesList returns the template catalog, optionally filtered by type.
func TemplatesList(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "template service unavailable"))
			return
		}

		raw, err := validators.ParseQueryEnum(r, "type", "", enums.BatchTypeValues()...)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var typeFilter *enums.BatchType
		if raw != "" {
			value := enums.BatchType(raw)
			typeFilter = &value
		}

		result, err := svc.List(ctx, typeFilter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// TemplateGet returns one template with its ordered stages.
func TemplateGet(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "template service unavailable"))
			return
		}

		id, err := validators.PathUUID(r, "templateID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}
