// Package middleware contains middleware functions for the API
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v3"
	"github.com/oklog/ulid/v2"

	apiError "github.com/matt-dz/admingate/internal/api/error"
	"github.com/matt-dz/admingate/internal/api/requestid"
	"github.com/matt-dz/admingate/internal/api/token"
	"github.com/matt-dz/admingate/internal/config"
	"github.com/matt-dz/admingate/internal/env"
	"github.com/matt-dz/admingate/internal/log"
)

// InjectEnv injects an environment struct into the request context.
func InjectEnv(environment *env.Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(env.WithCtx(r.Context(), environment)))
		})
	}
}

func LogRequest(logger *slog.Logger) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		Level:         slog.LevelInfo,
		RecoverPanics: true,
		LogExtraAttrs: func(r *http.Request, reqBody string, respStatus int) []slog.Attr {
			if id := requestid.ExtractRequestID(r.Context()); id != 0 {
				return []slog.Attr{slog.Uint64("log_id", id)}
			}
			return []slog.Attr{slog.String("log_id", "N/A")}
		},
	})
}

// AddRequestID adds a request ID to the request context.
func AddRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ulid.Now()
		r = r.WithContext(log.AppendCtx(r.Context(), slog.Uint64("log_id", requestID)))
		r = r.WithContext(requestid.InjectRequestID(r.Context(), requestID))
		next.ServeHTTP(w, r)
	})
}

// AddCors adds the necessary CORS headers to the response.
func AddCors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := env.EnvFromCtx(r.Context())
		origin := r.Header.Get("Origin")
		hostOrigin := e.Config.HostOrigin

		// In dev mode, reflect the caller's origin.
		allowedOrigin := hostOrigin
		if e.Config.Env != config.EnvProd && origin != "" {
			allowedOrigin = origin
		}

		if allowedOrigin == "" {
			e.Logger.WarnContext(r.Context(),
				"HOST_ORIGIN not set and no valid origin found; Access-Control-Allow-Origin will be empty")
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests without a valid admin cookie and stores
// the validated token in the request context.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		env := env.EnvFromCtx(ctx)
		requestID := requestid.String(ctx)

		res, err := token.SafeCheck(ctx, env.Checker(), r, env.AdminUsername(), env.Now())
		if err != nil {
			env.Logger.ErrorContext(ctx, "admin token check failed", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		if !res.Authenticated() {
			env.Logger.DebugContext(ctx, "rejecting request", slog.String("outcome", res.Outcome.String()))
			_ = apiError.EncodeError(w, apiError.NotAuthenticated, "not authenticated", requestID)
			return
		}

		ctx = log.AppendCtx(ctx, slog.String("admin", res.Token.Username))
		ctx = token.WithCtx(ctx, res.Token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// NotFound and MethodNotAllowed render router errors as API errors.
func NotFound(w http.ResponseWriter, r *http.Request) {
	_ = apiError.EncodeError(w, apiError.NotFound, "not found", requestid.String(r.Context()))
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = apiError.EncodeError(w, apiError.MethodNotAllowed, "method not allowed", requestid.String(r.Context()))
}
