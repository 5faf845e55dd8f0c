// Package token contains utilities for the admin auth cookie.
package token

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	CookieName = "admin-auth"
	MaxAge     = 24 * time.Hour

	fieldSeparator = ":"
	tokenFields    = 2
)

var (
	ErrInvalidEncoding  = errors.New("token is not valid base64")
	ErrInvalidFormat    = errors.New("token must have the form username:timestamp")
	ErrInvalidTimestamp = errors.New("token timestamp is not an integer")
	ErrInvalidCookie    = errors.New("cookie value contains characters not allowed in a cookie")
	ErrCheckPanicked    = errors.New("admin token check panicked")
)

// CookieReader is the read-only view of a request's cookies.
// *http.Request satisfies it.
type CookieReader interface {
	Cookie(name string) (*http.Cookie, error)
}

// Token is a decoded admin token.
type Token struct {
	Username string
	IssuedAt time.Time
}

// ExpiresAt reports when the token stops being accepted.
func (t Token) ExpiresAt() time.Time {
	return t.IssuedAt.Add(MaxAge)
}

// Result is the outcome of validating a token. Token is set whenever
// the cookie value decoded successfully; Err is set for OutcomeMalformed.
type Result struct {
	Outcome Outcome
	Token   Token
	Err     error
}

// Authenticated reports whether the result grants admin access.
func (r Result) Authenticated() bool {
	return r.Outcome.Authenticated()
}

// Checker validates the admin cookie carried by a request.
//
//go:generate mockgen -source=token.go -destination=mock_checker.go -package=token
type Checker interface {
	Check(ctx context.Context, cookies CookieReader, adminUsername string, now time.Time) (Result, error)
}

// Encode builds a cookie value for username issued at issuedAt.
func Encode(username string, issuedAt time.Time) string {
	raw := username + fieldSeparator + strconv.FormatInt(issuedAt.UnixMilli(), 10)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// Decode parses a cookie value into a Token.
func Decode(value string) (Token, error) {
	tok, _, err := decode(value)
	return tok, err
}

// decode also returns the raw millisecond timestamp, which may lie
// outside the range time.Time round-trips through UnixMilli.
func decode(value string) (Token, int64, error) {
	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		// Unpadded values are common when the cookie is built by hand.
		var rawErr error
		if data, rawErr = base64.RawStdEncoding.DecodeString(value); rawErr != nil {
			return Token{}, 0, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
		}
	}

	parts := strings.Split(string(data), fieldSeparator)
	if len(parts) != tokenFields {
		return Token{}, 0, fmt.Errorf("%w: got %d fields", ErrInvalidFormat, len(parts))
	}

	millis, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Token{}, 0, fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)
	}

	return Token{
		Username: parts[0],
		IssuedAt: time.UnixMilli(millis),
	}, millis, nil
}

// Validate checks a raw cookie value against the admin username at time now.
// Tokens issued in the future are accepted.
func Validate(value, adminUsername string, now time.Time) Result {
	if value == "" {
		return Result{Outcome: OutcomeAbsent}
	}

	tok, issuedAt, err := decode(value)
	if err != nil {
		return Result{Outcome: OutcomeMalformed, Err: err}
	}

	// Compare against the cutoff rather than computing the age, which
	// overflows for timestamps near math.MinInt64.
	if issuedAt < now.UnixMilli()-MaxAge.Milliseconds() {
		return Result{Outcome: OutcomeExpired, Token: tok}
	}

	if subtle.ConstantTimeCompare([]byte(tok.Username), []byte(adminUsername)) != 1 {
		return Result{Outcome: OutcomeMismatched, Token: tok}
	}

	return Result{Outcome: OutcomeValid, Token: tok}
}

// Validator is the default Checker. Malformed tokens are logged to
// Logger, or to slog.Default when Logger is nil.
type Validator struct {
	Logger *slog.Logger
}

var _ Checker = Validator{}

func (v Validator) Check(ctx context.Context, cookies CookieReader, adminUsername string, now time.Time) (Result, error) {
	var res Result
	cookie, err := cookies.Cookie(CookieName)
	switch {
	case err == nil:
		res = Validate(cookie.Value, adminUsername, now)
	case errors.Is(err, http.ErrNoCookie) && hasRawCookie(cookies):
		// net/http drops cookies whose value has disallowed bytes.
		res = Result{Outcome: OutcomeMalformed, Err: ErrInvalidCookie}
	default:
		return Result{Outcome: OutcomeAbsent}, nil
	}

	if res.Outcome == OutcomeMalformed {
		v.logger().ErrorContext(ctx, "failed to decode admin token", slog.Any("error", res.Err))
	}
	return res, nil
}

// hasRawCookie reports whether the request's Cookie header names the admin
// cookie with a non-empty value.
func hasRawCookie(cookies CookieReader) bool {
	r, ok := cookies.(*http.Request)
	if !ok {
		return false
	}

	for _, line := range r.Header.Values("Cookie") {
		for _, part := range strings.Split(line, ";") {
			name, value, found := strings.Cut(strings.TrimSpace(part), "=")
			if found && name == CookieName && strings.TrimSpace(value) != "" {
				return true
			}
		}
	}
	return false
}

func (v Validator) logger() *slog.Logger {
	if v.Logger == nil {
		return slog.Default()
	}
	return v.Logger
}

// SafeCheck runs checker and converts a panic into ErrCheckPanicked.
func SafeCheck(
	ctx context.Context,
	checker Checker,
	cookies CookieReader,
	adminUsername string,
	now time.Time,
) (res Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Result{}
			err = fmt.Errorf("%w: %v", ErrCheckPanicked, rec)
		}
	}()

	return checker.Check(ctx, cookies, adminUsername, now)
}

type tokenKeyType struct{}

var tokenKey tokenKeyType

// WithCtx stores a validated token in the context.
func WithCtx(ctx context.Context, tok Token) context.Context {
	return context.WithValue(ctx, tokenKey, tok)
}

// FromCtx extracts a validated token from the context.
func FromCtx(ctx context.Context) (Token, error) {
	if tok, ok := ctx.Value(tokenKey).(Token); ok {
		return tok, nil
	}
	return Token{}, errors.New("admin token not found in context")
}
