package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

type stubVerifier struct {
	claims *model.AuthClaims
	err    error
}

func (s *stubVerifier) VerifyAccess(string) (*model.AuthClaims, error) {
	return s.claims, s.err
}

func okHandler(t *testing.T, wantUserID string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUserID, claims.UserID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	t.Parallel()

	t.Run("valid cookie attaches claims", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "user-1", Role: model.RoleCustomer}})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "token"})
		rec := httptest.NewRecorder()

		mw.RequireAuth(okHandler(t, "user-1")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing cookie is unauthorized", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{UserID: "user-1"}})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
		rec := httptest.NewRecorder()

		mw.RequireAuth(okHandler(t, "user-1")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
	})

	t.Run("rejected token is unauthorized", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubVerifier{err: model.ErrTokenExpired})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "stale"})
		rec := httptest.NewRecorder()

		mw.RequireAuth(okHandler(t, "user-1")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthMiddleware_RequireRoles(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(t *testing.T, role model.Role, allowed ...model.Role) *httptest.ResponseRecorder {
		t.Helper()
		mw := NewAuthMiddleware(&stubVerifier{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics", nil)
		req = req.WithContext(ContextWithClaims(req.Context(), &model.AuthClaims{UserID: "user-1", Role: role}))
		rec := httptest.NewRecorder()

		mw.RequireRoles(allowed...)(next).ServeHTTP(rec, req)
		return rec
	}

	t.Run("allows a matching role", func(t *testing.T) {
		rec := serve(t, model.RoleAdmin, model.RoleAdmin)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("forbids a non-matching role", func(t *testing.T) {
		rec := serve(t, model.RoleCustomer, model.RoleAdmin)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "FORBIDDEN")
	})

	t.Run("requires auth to have run first", func(t *testing.T) {
		mw := NewAuthMiddleware(&stubVerifier{})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics", nil)
		rec := httptest.NewRecorder()

		mw.RequireRoles(model.RoleAdmin)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
