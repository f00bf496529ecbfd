package auth

import (
	"net/http"
	"time"

	"github.com/clefworks/scorebook/pkg/jwtx"
)

// Cookie names. The logged_in cookie is deliberately not HttpOnly so the
// frontend can reflect login state; it carries no credential.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
	LoggedInCookie     = "logged_in"
)

func tokenCookie(name, value string, maxAge time.Duration, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: httpOnly,
	}
}

// SetLoginCookies writes the full cookie set after a successful login.
func SetLoginCookies(w http.ResponseWriter, access, refresh jwtx.TokenDetails, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(w, tokenCookie(AccessTokenCookie, access.Token, accessTTL, true))
	http.SetCookie(w, tokenCookie(RefreshTokenCookie, refresh.Token, refreshTTL, true))
	http.SetCookie(w, tokenCookie(LoggedInCookie, "true", accessTTL, false))
}

// SetAccessCookies writes the cookies a refresh produces: a new access token
// and a renewed logged_in marker. The refresh cookie is left untouched
// unless rotation minted a replacement.
func SetAccessCookies(w http.ResponseWriter, access jwtx.TokenDetails, accessTTL time.Duration) {
	http.SetCookie(w, tokenCookie(AccessTokenCookie, access.Token, accessTTL, true))
	http.SetCookie(w, tokenCookie(LoggedInCookie, "true", accessTTL, false))
}

// SetRefreshCookie writes a rotated refresh token.
func SetRefreshCookie(w http.ResponseWriter, refresh jwtx.TokenDetails, refreshTTL time.Duration) {
	http.SetCookie(w, tokenCookie(RefreshTokenCookie, refresh.Token, refreshTTL, true))
}

// ClearAuthCookies overwrites all three cookies with empty values and a
// negative max-age, forcing client-side deletion at logout.
func ClearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, tokenCookie(AccessTokenCookie, "", -time.Minute, true))
	http.SetCookie(w, tokenCookie(RefreshTokenCookie, "", -time.Minute, true))
	http.SetCookie(w, tokenCookie(LoggedInCookie, "false", -time.Minute, false))
}
