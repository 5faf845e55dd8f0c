package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	apiError "github.com/matt-dz/admingate/internal/api/error"
	"github.com/matt-dz/admingate/internal/api/requestid"
	"github.com/matt-dz/admingate/internal/api/token"
	"github.com/matt-dz/admingate/internal/config"
	"github.com/matt-dz/admingate/internal/env"
	"github.com/matt-dz/admingate/internal/log"
)

func newTestEnv(now time.Time) *env.Env {
	e := env.New(map[string]string{"ADMIN_USERNAME": "admin"})
	e.Logger = log.NullLogger()
	e.Clock = func() time.Time { return now }
	return e
}

func TestRequireAdmin(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name       string
		cookie     *http.Cookie
		wantStatus int
		wantCode   apiError.ErrorCode
		wantNext   bool
	}{
		{
			name:       "valid token",
			cookie:     &http.Cookie{Name: token.CookieName, Value: token.Encode("admin", now.Add(-time.Hour))},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "missing cookie",
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.NotAuthenticated,
		},
		{
			name:       "expired token",
			cookie:     &http.Cookie{Name: token.CookieName, Value: token.Encode("admin", now.Add(-48*time.Hour))},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.NotAuthenticated,
		},
		{
			name:       "wrong user",
			cookie:     &http.Cookie{Name: token.CookieName, Value: token.Encode("eve", now)},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.NotAuthenticated,
		},
		{
			name:       "malformed token",
			cookie:     &http.Cookie{Name: token.CookieName, Value: "not-valid-base64!!"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiError.NotAuthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotToken token.Token
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				tok, err := token.FromCtx(r.Context())
				if err != nil {
					t.Errorf("expected token in context, got error: %v", err)
				}
				gotToken = tok
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/session", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			ctx := env.WithCtx(req.Context(), newTestEnv(now))
			ctx = requestid.InjectRequestID(ctx, 12345)
			rec := httptest.NewRecorder()

			RequireAdmin(next).ServeHTTP(rec, req.WithContext(ctx))

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if called != tt.wantNext {
				t.Errorf("expected next called = %v, got %v", tt.wantNext, called)
			}
			if tt.wantNext && gotToken.Username != "admin" {
				t.Errorf("expected token username %q, got %q", "admin", gotToken.Username)
			}
			if tt.wantCode != "" {
				var body apiError.Error
				if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body.Code != tt.wantCode.String() {
					t.Errorf("expected code %q, got %q", tt.wantCode, body.Code)
				}
				if body.ErrorID != "12345" {
					t.Errorf("expected error id %q, got %q", "12345", body.ErrorID)
				}
			}
		})
	}
}

func TestRequireAdmin_CheckerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Now()
	checker := token.NewMockChecker(ctrl)
	checker.EXPECT().
		Check(gomock.Any(), gomock.Any(), "admin", now).
		Return(token.Result{}, errors.New("checker unavailable"))

	e := newTestEnv(now)
	e.Auth = checker

	req := httptest.NewRequest(http.MethodGet, "/admin/session", nil)
	rec := httptest.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not be called")
	})

	RequireAdmin(next).ServeHTTP(rec, req.WithContext(env.WithCtx(req.Context(), e)))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestAddRequestID(t *testing.T) {
	var got uint64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = requestid.ExtractRequestID(r.Context())
	})

	AddRequestID(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got == 0 {
		t.Error("expected a request id to be injected")
	}
}

func TestAddCors(t *testing.T) {
	tests := []struct {
		name       string
		envName    string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "dev reflects origin",
			envName:    config.EnvDev,
			method:     http.MethodGet,
			origin:     "http://localhost:5173",
			wantOrigin: "http://localhost:5173",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "dev without origin uses host origin",
			envName:    config.EnvDev,
			method:     http.MethodGet,
			wantOrigin: "https://admin.example.com",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "prod pins host origin",
			envName:    config.EnvProd,
			method:     http.MethodGet,
			origin:     "https://evil.example.com",
			wantOrigin: "https://admin.example.com",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "preflight short circuits",
			envName:    config.EnvProd,
			method:     http.MethodOptions,
			origin:     "https://admin.example.com",
			wantOrigin: "https://admin.example.com",
			wantStatus: http.StatusNoContent,
			wantNext:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(time.Now())
			e.Config.Env = tt.envName
			e.Config.HostOrigin = "https://admin.example.com"

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			req := httptest.NewRequest(tt.method, "/admin/auth-check", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			AddCors(next).ServeHTTP(rec, req.WithContext(env.WithCtx(req.Context(), e)))

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected allowed origin %q, got %q", tt.wantOrigin, got)
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
				t.Errorf("expected credentials header %q, got %q", "true", got)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if called != tt.wantNext {
				t.Errorf("expected next called = %v, got %v", tt.wantNext, called)
			}
		})
	}
}

func TestRouterErrors(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantCode   apiError.ErrorCode
	}{
		{"not found", NotFound, http.StatusNotFound, apiError.NotFound},
		{"method not allowed", MethodNotAllowed, http.StatusMethodNotAllowed, apiError.MethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.handler(rec, httptest.NewRequest(http.MethodPost, "/admin/auth-check", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			var body apiError.Error
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Code != tt.wantCode.String() {
				t.Errorf("expected code %q, got %q", tt.wantCode, body.Code)
			}
		})
	}
}
