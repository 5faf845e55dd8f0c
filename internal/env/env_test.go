package env

import (
	"context"
	"testing"
	"time"

	"github.com/matt-dz/admingate/internal/api/token"
)

func TestAdminUsername(t *testing.T) {
	tests := []struct {
		name       string
		vars       map[string]string
		processEnv string
		configured string
		want       string
	}{
		{
			name: "default",
			want: "admin",
		},
		{
			name:       "configured value",
			configured: "operator",
			want:       "operator",
		},
		{
			name:       "process environment wins over config",
			processEnv: "root",
			configured: "operator",
			want:       "root",
		},
		{
			name:       "vars win over process environment",
			vars:       map[string]string{"ADMIN_USERNAME": "svc"},
			processEnv: "root",
			want:       "svc",
		},
		{
			name:       "empty var falls through",
			vars:       map[string]string{"ADMIN_USERNAME": ""},
			configured: "operator",
			want:       "operator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADMIN_USERNAME", tt.processEnv)

			e := New(tt.vars)
			e.Config.Admin.Username = tt.configured

			if got := e.AdminUsername(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAdminUsername_RereadsEnvironment(t *testing.T) {
	e := New(nil)

	t.Setenv("ADMIN_USERNAME", "first")
	if got := e.AdminUsername(); got != "first" {
		t.Fatalf("expected %q, got %q", "first", got)
	}

	t.Setenv("ADMIN_USERNAME", "second")
	if got := e.AdminUsername(); got != "second" {
		t.Errorf("expected %q, got %q", "second", got)
	}
}

func TestNow(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	e := New(nil)
	e.Clock = func() time.Time { return fixed }

	if got := e.Now(); !got.Equal(fixed) {
		t.Errorf("expected %v, got %v", fixed, got)
	}
}

func TestChecker(t *testing.T) {
	e := New(nil)
	if _, ok := e.Checker().(token.Validator); !ok {
		t.Errorf("expected default checker to be token.Validator, got %T", e.Checker())
	}

	custom := token.Validator{}
	e.Auth = custom
	if got := e.Checker(); got != custom {
		t.Errorf("expected custom checker, got %T", got)
	}
}

func TestEnvFromCtx(t *testing.T) {
	if got := EnvFromCtx(context.Background()); got == nil {
		t.Fatal("expected null env, got nil")
	}

	e := New(map[string]string{"ADMIN_USERNAME": "ctx"})
	got := EnvFromCtx(WithCtx(context.Background(), e))
	if got != e {
		t.Errorf("expected env from context, got %p", got)
	}
}
