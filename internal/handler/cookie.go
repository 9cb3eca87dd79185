package handler

import (
	"net/http"
	"time"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// CookiePolicy carries the security flags for the token cookies so both
// classes get identical treatment instead of repeating flags per call site.
// HttpOnly and SameSite=Strict are not configurable; only Secure and the
// lifetimes vary by environment.
type CookiePolicy struct {
	Secure        bool
	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
}

func (p CookiePolicy) setAccess(w http.ResponseWriter, value string) {
	p.set(w, accessTokenCookie, value, p.AccessMaxAge)
}

func (p CookiePolicy) setRefresh(w http.ResponseWriter, value string) {
	p.set(w, refreshTokenCookie, value, p.RefreshMaxAge)
}

func (p CookiePolicy) clearAll(w http.ResponseWriter) {
	p.set(w, accessTokenCookie, "", -1)
	p.set(w, refreshTokenCookie, "", -1)
}

func (p CookiePolicy) set(w http.ResponseWriter, name string, value string, maxAge time.Duration) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	if maxAge < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.MaxAge = int(maxAge.Seconds())
	}
	http.SetCookie(w, cookie)
}
