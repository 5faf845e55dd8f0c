// Package api sets up and starts the API
// server with routing, middleware, and Swagger documentation.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/matt-dz/admingate/docs"
	"github.com/matt-dz/admingate/internal/api/middleware"
	"github.com/matt-dz/admingate/internal/api/routes/admin"
	"github.com/matt-dz/admingate/internal/api/routes/ping"
	"github.com/matt-dz/admingate/internal/env"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func serverScheme(env *env.Env) string {
	if env.Config.Server.TLSEnabled() {
		return "https"
	}
	return "http"
}

// docURL is where the Swagger UI fetches the generated document.
func docURL(env *env.Env) string {
	return fmt.Sprintf("%s://localhost:%d/api/swagger/doc.json", serverScheme(env), env.Config.Server.Port)
}

func addDocs(r chi.Router, docURL string) {
	swagger := httpSwagger.Handler(
		httpSwagger.URL(docURL),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)

	r.Mount("/api/swagger", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// Handle preflight
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if req.Method == http.MethodGet {
			swagger.ServeHTTP(w, req)
			return
		}

		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}))
}

func addRoutes(router chi.Router) {
	router.Route("/admin", func(r chi.Router) {
		r.Get("/auth-check", admin.HandleAuthCheck)
		r.With(middleware.RequireAdmin).Get("/session", admin.HandleSession)
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)
	})
}

// NewRouter builds the request router for env.
func NewRouter(env *env.Env) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.AddCors)

	// Set before Route so subrouters inherit them.
	router.NotFound(middleware.NotFound)
	router.MethodNotAllowed(middleware.MethodNotAllowed)

	addRoutes(router)
	addDocs(router, docURL(env))
	return router
}

// Start godoc
//
//	@title						AdminGate API
//	@version					1.0
//	@description				Admin cookie authentication service.
//
//	@securityDefinitions.apikey	AdminCookie
//	@in							cookie
//	@name						admin-auth
//
//	@host						localhost:8080
//	@BasePath					/
func Start(ctx context.Context, env *env.Env) error {
	addr := fmt.Sprintf(":%d", env.Config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(env),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ErrorLog:          slog.NewLogLogger(env.Logger.Handler(), slog.LevelError),
	}

	tls := env.Config.Server.TLSEnabled()
	scheme := serverScheme(env)

	errCh := make(chan error, 1)
	go func() {
		if tls {
			errCh <- server.ListenAndServeTLS(env.Config.Server.TLSCertFile, env.Config.Server.TLSKeyFile)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	env.Logger.Info(fmt.Sprintf("Listening at %s://0.0.0.0%s", scheme, addr))
	env.Logger.Info(fmt.Sprintf("Swagger UI available at %s://0.0.0.0%s/api/swagger/index.html", scheme, addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	env.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving http: %w", err)
	}
	return nil
}
