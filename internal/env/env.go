// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/matt-dz/admingate/internal/api/token"
	"github.com/matt-dz/admingate/internal/config"
	"github.com/matt-dz/admingate/internal/http"
	"github.com/matt-dz/admingate/internal/log"
)

type Env struct {
	Logger *slog.Logger
	Config config.Config
	HTTP   *http.HTTP

	// Auth overrides the default token validator.
	Auth token.Checker
	// Clock overrides time.Now.
	Clock func() time.Time

	vars map[string]string
}

// New creates an Env. Values in vars take precedence over the process
// environment in Get.
func New(vars map[string]string) *Env {
	if vars == nil {
		vars = map[string]string{}
	}

	return &Env{
		Logger: log.NullLogger(),
		Config: config.Default(),
		vars:   vars,
	}
}

func Null() *Env {
	return New(nil)
}

// Get returns the value of key, checking vars before the process environment.
func (e *Env) Get(key string) string {
	if v, ok := e.vars[key]; ok {
		return v
	}
	return os.Getenv(key)
}

// AdminUsername is resolved on every call so environment changes apply
// without a restart.
func (e *Env) AdminUsername() string {
	if v := e.Get("ADMIN_USERNAME"); v != "" {
		return v
	}
	if e.Config.Admin.Username != "" {
		return e.Config.Admin.Username
	}
	return config.DefaultAdminUsername
}

func (e *Env) Now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

func (e *Env) Checker() token.Checker {
	if e.Auth != nil {
		return e.Auth
	}
	return token.Validator{Logger: e.Logger}
}

type envKeyType struct{}

var envKey envKeyType

// WithCtx stores the env in the context.
func WithCtx(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey, e)
}

// EnvFromCtx extracts the env from the context, falling back to Null.
func EnvFromCtx(ctx context.Context) *Env {
	if e, ok := ctx.Value(envKey).(*Env); ok && e != nil {
		return e
	}
	return Null()
}
