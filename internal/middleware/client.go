// AngelaMos | 2026
// client.go

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/storefront/internal/core"
)

const (
	ClientIDKey contextKey = "client_id"

	ClientTokenHeader = "X-Client-Token"
)

// ClientTokens signs and verifies the token that identifies a browser or
// API caller across requests.
type ClientTokens interface {
	CreateClientToken(clientID string) (string, time.Time, error)
	VerifyClientToken(ctx context.Context, token string) (string, error)
}

type ClientConfig struct {
	CookieName string
	Secure     bool
}

// ClientIdentifier resolves the caller's client id from a bearer token or
// the client cookie. Callers without a valid token get a fresh id, a new
// cookie and the token echoed in X-Client-Token.
func ClientIdentifier(
	tokens ClientTokens,
	cfg ClientConfig,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := ExtractToken(r)
			if token == "" {
				token = cookieValue(r, cfg.CookieName)
			}

			if token != "" {
				clientID, err := tokens.VerifyClientToken(ctx, token)
				if err == nil {
					ctx = context.WithValue(ctx, ClientIDKey, clientID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				slog.DebugContext(ctx, "replacing unusable client token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
			}

			clientID := uuid.New().String()
			signed, expiresAt, err := tokens.CreateClientToken(clientID)
			if err != nil {
				core.InternalServerError(w, err)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    signed,
				Path:     "/",
				Expires:  expiresAt,
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set(ClientTokenHeader, signed)

			ctx = context.WithValue(ctx, ClientIDKey, clientID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExpireClientCookie tells the browser to drop the client cookie.
func ExpireClientCookie(w http.ResponseWriter, cfg ClientConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func cookieValue(r *http.Request, name string) string {
	if name == "" {
		return ""
	}
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func GetClientID(ctx context.Context) string {
	if id, ok := ctx.Value(ClientIDKey).(string); ok {
		return id
	}
	return ""
}

// WithClientID is used by tests and background callers that act on behalf
// of a known client.
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, ClientIDKey, clientID)
}
