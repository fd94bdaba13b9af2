package controllers

import (
	"net/http"

	"github.com/MajQs/WineLog/api/middleware"
	"github.com/MajQs/WineLog/api/responses"
	"github.com/MajQs/WineLog/api/validators"
	"github.com/MajQs/WineLog/internal/auth"
	pkgerrors "github.com/MajQs/WineLog/pkg/errors"
	"github.com/MajQs/WineLog/pkg/logger"
)

// Register creates an account and answers with a token pair.
func Register(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var cmd auth.RegisterCommand
		if err := validators.DecodeJSONBody(r, &cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Register(ctx, cmd)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// Login exchanges credentials for a token pair.
func Login(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var cmd auth.LoginCommand
		if err := validators.DecodeJSONBody(r, &cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Login(ctx, cmd)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// Refresh rotates an access/refresh pair.
func Refresh(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var cmd auth.RefreshCommand
		if err := validators.DecodeJSONBody(r, &cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		pair, err := svc.Refresh(ctx, cmd)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, pair)
	}
}

// Logout revokes the caller's session.
func Logout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		if err := svc.Logout(ctx, middleware.AccessIDFromContext(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, "Logged out successfully")
	}
}

// ForgotPassword issues a reset token. The response never reveals whether the
// email exists.
func ForgotPassword(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var cmd auth.ForgotPasswordCommand
		if err := validators.DecodeJSONBody(r, &cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if _, err := svc.ForgotPassword(ctx, cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, "If the email exists, a reset token has been issued")
	}
}

// ResetPassword consumes a reset token and sets a new password.
func ResetPassword(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var cmd auth.ResetPasswordCommand
		if err := validators.DecodeJSONBody(r, &cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.ResetPassword(ctx, cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, "Password updated successfully")
	}
}

// DeleteAccount removes the caller's account after a password re-check.
func DeleteAccount(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var cmd auth.DeleteAccountCommand
		if err := validators.DecodeJSONBody(r, &cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		accessID := middleware.AccessIDFromContext(ctx)
		if err := svc.DeleteAccount(ctx, userID, accessID, cmd); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, "Account deleted successfully")
	}
}
