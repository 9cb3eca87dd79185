package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Sukh767/Volt-Vogue/internal/middleware"
	"github.com/Sukh767/Volt-Vogue/internal/model"
	"github.com/Sukh767/Volt-Vogue/internal/service"
	"github.com/Sukh767/Volt-Vogue/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
	cookies CookiePolicy
}

func NewAuthHandler(service *service.AuthService, cookies CookiePolicy) *AuthHandler {
	return &AuthHandler{service: service, cookies: cookies}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	profile, pair, err := h.service.Signup(r.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cookies.setAccess(w, pair.AccessToken)
	h.cookies.setRefresh(w, pair.RefreshToken)
	writeSuccess(w, http.StatusCreated, profile, nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	profile, pair, err := h.service.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cookies.setAccess(w, pair.AccessToken)
	h.cookies.setRefresh(w, pair.RefreshToken)
	writeSuccess(w, http.StatusOK, profile, nil)
}

// Refresh rewrites the access-token cookie only; the refresh cookie the
// client holds stays valid until logout or a new login. Failures carry a
// machine-readable reason and clear nothing.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		writeError(w, apierror.New("UNAUTHORIZED", "could not refresh session", "missing", http.StatusUnauthorized))
		return
	}

	accessToken, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTokenExpired):
			writeError(w, apierror.New("UNAUTHORIZED", "could not refresh session", "expired", http.StatusUnauthorized))
		case errors.Is(err, model.ErrSessionRevoked):
			writeError(w, apierror.New("UNAUTHORIZED", "could not refresh session", "revoked", http.StatusUnauthorized))
		case errors.Is(err, model.ErrInvalidSignature):
			writeError(w, apierror.New("UNAUTHORIZED", "could not refresh session", "invalid", http.StatusUnauthorized))
		default:
			writeError(w, err)
		}
		return
	}

	h.cookies.setAccess(w, accessToken)
	writeSuccess(w, http.StatusOK, map[string]any{"refreshed": true}, nil)
}

// Logout always clears both cookies: even when no usable refresh token was
// presented, and even when deleting the session record fails. The client
// must lose its tokens regardless of what happens server-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	h.cookies.clearAll(w)

	if err := h.service.Logout(r.Context(), refreshToken); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"logged_out": true}, nil)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	profile, err := h.service.Profile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, profile, nil)
}
