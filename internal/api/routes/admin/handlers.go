// Package admin contains handlers for the admin endpoints
package admin

import (
	"log/slog"
	"net/http"
	"time"

	apiError "github.com/matt-dz/admingate/internal/api/error"
	"github.com/matt-dz/admingate/internal/api/requestid"
	"github.com/matt-dz/admingate/internal/api/token"
	"github.com/matt-dz/admingate/internal/env"
	mJson "github.com/matt-dz/admingate/internal/json"
)

const (
	notAuthenticatedMessage = "Not authenticated"
	checkFailedMessage      = "Authentication check failed"
)

// HandleAuthCheck godoc
//
//	@Summary		Check admin authentication.
//	@Description	Validates the admin-auth cookie. The cookie holds
//	@Description	base64("username:issuedAtMillis") and is accepted for 24 hours.
//	@Tags			Admin
//	@Produce		json
//	@Param			admin-auth	header	string	false	"admin-auth=..."
//	@Success		200	{object}	AuthCheckResponse	"Authenticated"
//	@Failure		401	{object}	AuthCheckResponse	"Not authenticated"
//	@Failure		500	{object}	AuthCheckResponse	"Authentication check failed"
//	@Router			/admin/auth-check [GET]
func HandleAuthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	res, err := token.SafeCheck(ctx, env.Checker(), r, env.AdminUsername(), env.Now())
	if err != nil {
		env.Logger.ErrorContext(ctx, "Failed to check admin authentication", slog.Any("error", err))
		writeResponse(w, r, http.StatusInternalServerError, AuthCheckResponse{
			Authenticated: false,
			Error:         checkFailedMessage,
		})
		return
	}

	if !res.Authenticated() {
		env.Logger.DebugContext(ctx, "Admin not authenticated", slog.String("outcome", res.Outcome.String()))
		writeResponse(w, r, http.StatusUnauthorized, AuthCheckResponse{
			Authenticated: false,
			Error:         notAuthenticatedMessage,
		})
		return
	}

	writeResponse(w, r, http.StatusOK, AuthCheckResponse{Authenticated: true})
}

// HandleSession godoc
//
//	@Summary		Describe the current admin session.
//	@Tags			Admin
//	@Produce		json
//	@Param			admin-auth	header	string	true	"admin-auth=..."
//	@Success		200	{object}	SessionResponse
//	@Failure		401	{object}	apiError.Error	"Not authenticated"
//	@Failure		500	{object}	apiError.Error	"Internal server error"
//	@Router			/admin/session [GET]
func HandleSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	env := env.EnvFromCtx(ctx)

	tok, err := token.FromCtx(ctx)
	if err != nil {
		// RequireAdmin did not run in front of this handler.
		env.Logger.ErrorContext(ctx, "Failed to load admin token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestid.String(ctx))
		return
	}

	writeResponse(w, r, http.StatusOK, SessionResponse{
		Username:  tok.Username,
		IssuedAt:  tok.IssuedAt.UTC().Format(time.RFC3339),
		ExpiresAt: tok.ExpiresAt().UTC().Format(time.RFC3339),
	})
}

func writeResponse(w http.ResponseWriter, r *http.Request, status int, body any) {
	if err := mJson.EncodeJSON(w, status, body); err != nil {
		env.EnvFromCtx(r.Context()).Logger.ErrorContext(r.Context(), "Failed to write response", slog.Any("error", err))
	}
}
