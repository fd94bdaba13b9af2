package controllers

import (
	"net/http"

	"github.com/MajQs/WineLog/api/middleware"
	"github.com/MajQs/WineLog/api/responses"
	"github.com/MajQs/WineLog/internal/dashboard"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/logger"
)

// DashboardGet returns the landing-page aggregate.
func DashboardGet(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		dto, err := svc.Get(ctx, middleware.UserIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
