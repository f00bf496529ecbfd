package web

import (
	"errors"
	"net/http"

	"github.com/clefworks/scorebook/internal/catalog/auth"
	"github.com/clefworks/scorebook/internal/catalog/service"
	"github.com/clefworks/scorebook/pkg/httpx"
	"github.com/clefworks/scorebook/pkg/slogx"
)

func (r *Router) handleLoginForm(w http.ResponseWriter, req *http.Request) {
	r.renderer.Render(w, req, http.StatusOK, "login.html", r.page(w, req, "Log in"))
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	user, err := r.Users.Authenticate(ctx, req.FormValue("name"), req.FormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrCredentialMismatch) {
			r.flash.Set(w, "error", "Invalid name or password")
		} else {
			slogx.FromContext(ctx).Error("login failed", "err", err)
			r.flash.Set(w, "error", "Login is unavailable right now, please retry")
		}
		redirect(w, req, "/auth/login")
		return
	}

	access, refresh, err := r.Auth.IssuePair(ctx, user)
	if err != nil {
		slogx.FromContext(ctx).Error("issuing token pair failed", "err", err)
		r.flash.Set(w, "error", "Login is unavailable right now, please retry")
		redirect(w, req, "/auth/login")
		return
	}

	auth.SetLoginCookies(w, access, refresh, r.Auth.AccessTTL, r.Auth.RefreshTTL)
	r.flash.Set(w, "success", "Welcome back, "+user.Name)
	redirect(w, req, "/welcome")
}

func (r *Router) handleSignupForm(w http.ResponseWriter, req *http.Request) {
	r.renderer.Render(w, req, http.StatusOK, "signup.html", r.page(w, req, "Sign up"))
}

func (r *Router) handleSignup(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	data := service.SignupData{
		Name:     req.FormValue("name"),
		Email:    req.FormValue("email"),
		Password: req.FormValue("password"),
	}

	_, err := r.Users.Signup(ctx, data)
	switch {
	case err == nil:
		r.flash.Set(w, "success", "Account created, please log in")
		redirect(w, req, "/auth/login")

	case errors.Is(err, service.ErrEmailTaken):
		// An account already exists for this email: send them to login.
		r.flash.Set(w, "error", "A user with this email already exists")
		redirect(w, req, "/auth/login")

	case errors.Is(err, service.ErrInvalidSignup):
		r.flash.Set(w, "error", "Invalid signup details, please check the form")
		redirect(w, req, "/auth/signup")

	default:
		slogx.FromContext(ctx).Error("signup failed", "err", err)
		r.flash.Set(w, "error", "Signup is unavailable right now, please retry")
		redirect(w, req, "/auth/signup")
	}
}

func (r *Router) handleRefresh(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	cookie, err := req.Cookie(auth.RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "could not refresh access token")
		return
	}

	result, err := r.Auth.Refresh(ctx, cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidToken),
			errors.Is(err, auth.ErrSessionNotFound),
			errors.Is(err, auth.ErrSubjectGone):
			httpx.WriteError(w, http.StatusUnauthorized, "could not refresh access token")
		default:
			slogx.FromContext(ctx).Error("refresh failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "could not refresh access token")
		}
		return
	}

	auth.SetAccessCookies(w, result.Access, r.Auth.AccessTTL)
	if result.Refresh != nil {
		auth.SetRefreshCookie(w, *result.Refresh, r.Auth.RefreshTTL)
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":       "success",
		"access_token": result.Access.Token,
	})
}

func (r *Router) handleLogout(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	id, _ := auth.IdentityFromContext(ctx)

	var refreshToken string
	if cookie, err := req.Cookie(auth.RefreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	if err := r.Auth.Logout(ctx, id, refreshToken); err != nil {
		if errors.Is(err, auth.ErrNoRefreshToken) {
			httpx.WriteError(w, http.StatusForbidden, "invalid or missing refresh token")
			return
		}
		slogx.FromContext(ctx).Error("logout failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "could not log out")
		return
	}

	auth.ClearAuthCookies(w)
	r.flash.Set(w, "success", "You are logged out")
	redirect(w, req, "/")
}
