// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/kvstore"
	"github.com/carterperez-dev/storefront/internal/middleware"
)

func newTestRouter(t *testing.T, store kvstore.Store) http.Handler {
	t.Helper()

	h := NewHandler(newTestService(t, store, nil), middleware.ClientConfig{CookieName: "client_token"})

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithClientID(req.Context(), "c1")))
		})
	})
	h.RegisterRoutes(r, nil)
	return r
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) core.Response {
	t.Helper()

	var resp core.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandler_SignUpWithForm(t *testing.T) {
	router := newTestRouter(t, kvstore.NewMemory())

	form := url.Values{"email": {"a@b.com"}, "password": {"x"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"next":"storeProfile"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestHandler_SignInMissingFields(t *testing.T) {
	router := newTestRouter(t, kvstore.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(`{"email":"a@b.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, MsgMissingFields, resp.Error.Message)
	assert.Equal(t, "startUpPage", resp.Error.Next)
}

func TestHandler_SignInInvalidCredentials(t *testing.T) {
	router := newTestRouter(t, kvstore.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(`{"email":"a@b.com","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, MsgInvalidCredentials, resp.Error.Message)
}

func TestHandler_GoogleDisabled(t *testing.T) {
	router := newTestRouter(t, kvstore.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/auth/google", strings.NewReader(`{"credential":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_LogoutExpiresCookie(t *testing.T) {
	router := newTestRouter(t, kvstore.NewMemory())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"next":"startUpPage"`)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, "client_token", rec.Result().Cookies()[0].Name)
}
