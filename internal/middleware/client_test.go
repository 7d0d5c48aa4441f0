// AngelaMos | 2026
// client_test.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/storefront/internal/core"
)

type fakeTokens struct {
	issued    []string
	failIssue bool
}

func (f *fakeTokens) CreateClientToken(clientID string) (string, time.Time, error) {
	if f.failIssue {
		return "", time.Time{}, errors.New("signing key unavailable")
	}
	f.issued = append(f.issued, clientID)
	return "tok:" + clientID, time.Now().Add(time.Hour), nil
}

func (f *fakeTokens) VerifyClientToken(_ context.Context, token string) (string, error) {
	if len(token) > 4 && token[:4] == "tok:" {
		return token[4:], nil
	}
	return "", core.ErrTokenInvalid
}

var testClientConfig = ClientConfig{CookieName: "client_token"}

func captureClientID(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = GetClientID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestClientIdentifier_IssuesTokenWhenMissing(t *testing.T) {
	tokens := &fakeTokens{}
	var clientID string
	h := ClientIdentifier(tokens, testClientConfig)(captureClientID(&clientID))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

	require.Len(t, tokens.issued, 1)
	assert.Equal(t, tokens.issued[0], clientID)
	assert.Equal(t, "tok:"+clientID, rec.Header().Get(ClientTokenHeader))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "client_token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestClientIdentifier_ReusesValidTokens(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{
			name: "cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "client_token", Value: "tok:abc"})
			},
		},
		{
			name: "bearer",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer tok:abc")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &fakeTokens{}
			var clientID string
			h := ClientIdentifier(tokens, testClientConfig)(captureClientID(&clientID))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, "abc", clientID)
			assert.Empty(t, tokens.issued)
			assert.Empty(t, rec.Header().Get(ClientTokenHeader))
		})
	}
}

func TestClientIdentifier_ReplacesInvalidToken(t *testing.T) {
	tokens := &fakeTokens{}
	var clientID string
	h := ClientIdentifier(tokens, testClientConfig)(captureClientID(&clientID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "client_token", Value: "forged"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, tokens.issued, 1)
	assert.Equal(t, tokens.issued[0], clientID)
}

func TestClientIdentifier_IssueFailure(t *testing.T) {
	tokens := &fakeTokens{failIssue: true}
	called := false
	h := ClientIdentifier(tokens, testClientConfig)(http.HandlerFunc(
		func(http.ResponseWriter, *http.Request) { called = true },
	))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestExpireClientCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ExpireClientCookie(rec, testClientConfig)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: ""},
		{header: "Bearer abc", want: "abc"},
		{header: "bearer  abc ", want: "abc"},
		{header: "Basic abc", want: ""},
		{header: "Bearer", want: ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, ExtractToken(req), tt.header)
	}
}
