package web

import (
	"net/http"

	"github.com/clefworks/scorebook/internal/catalog/auth"
	"github.com/clefworks/scorebook/internal/catalog/domain"
	"github.com/clefworks/scorebook/pkg/httpx"
	"github.com/clefworks/scorebook/pkg/slogx"
)

func (r *Router) page(w http.ResponseWriter, req *http.Request, title string) Page {
	return Page{Title: title, Flash: r.flash.Pop(w, req)}
}

func (r *Router) handleStart(w http.ResponseWriter, req *http.Request) {
	r.renderer.Render(w, req, http.StatusOK, "start.html", r.page(w, req, "Scorebook"))
}

func (r *Router) handleAbout(w http.ResponseWriter, req *http.Request) {
	r.renderer.Render(w, req, http.StatusOK, "about.html", r.page(w, req, "About"))
}

func (r *Router) handleNotFound(w http.ResponseWriter, req *http.Request) {
	data := struct {
		Page
		Path string
	}{r.page(w, req, "Page not found"), req.URL.Path}
	r.renderer.Render(w, req, http.StatusNotFound, "404.html", data)
}

func (r *Router) handleWelcome(w http.ResponseWriter, req *http.Request) {
	id, _ := auth.IdentityFromContext(req.Context())
	data := struct {
		Page
		Name string
	}{r.page(w, req, "Welcome"), id.User.Name}
	r.renderer.Render(w, req, http.StatusOK, "welcome.html", data)
}

// handleMe returns the authenticated user as JSON, without the hash.
func (r *Router) handleMe(w http.ResponseWriter, req *http.Request) {
	id, _ := auth.IdentityFromContext(req.Context())
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"user": id.User.Filter()},
	})
}

func (r *Router) handleUsersPage(w http.ResponseWriter, req *http.Request) {
	users, err := r.Users.ListUsers(req.Context())
	if err != nil {
		slogx.FromContext(req.Context()).Error("listing users failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "could not list users")
		return
	}

	filtered := make([]domain.FilteredUser, 0, len(users))
	for _, u := range users {
		filtered = append(filtered, u.Filter())
	}

	data := struct {
		Page
		Users []domain.FilteredUser
	}{r.page(w, req, "Registered users"), filtered}
	r.renderer.Render(w, req, http.StatusOK, "users.html", data)
}
