// Package web is the server-rendered HTTP surface: router, handlers,
// templates and flash messages.
package web

import (
	"log/slog"
	"net/http"

	"github.com/clefworks/scorebook/internal/catalog/auth"
	"github.com/clefworks/scorebook/internal/catalog/domain"
	"github.com/clefworks/scorebook/internal/catalog/service"
	"github.com/clefworks/scorebook/pkg/httpx"
	"github.com/clefworks/scorebook/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	Users   *service.UserService
	Catalog *service.CatalogService
	Auth    *auth.Service
	Gate    *auth.Gate

	renderer *Renderer
	flash    *FlashCodec
	logger   *slog.Logger
}

func NewRouter(
	users *service.UserService,
	catalog *service.CatalogService,
	authService *auth.Service,
	gate *auth.Gate,
	flashKey []byte,
	logger *slog.Logger,
) (*Router, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	r := &Router{
		Mux:      http.NewServeMux(),
		Users:    users,
		Catalog:  catalog,
		Auth:     authService,
		Gate:     gate,
		renderer: renderer,
		flash:    NewFlashCodec(flashKey),
		logger:   logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r, nil
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerPublic()
	r.registerAuth()
	r.registerCatalog()
	r.registerAdmin()
}

func (r *Router) registerPublic() {
	r.Mux.HandleFunc("GET /{$}", r.handleStart)

	// Everything unmatched lands here.
	r.Mux.HandleFunc("/", r.handleNotFound)
}

func (r *Router) registerAuth() {
	r.Mux.HandleFunc("GET /auth/login", r.handleLoginForm)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(r.handleLogin),
			httpx.RateLimit(httpx.StrictLimit, httpx.IPKey),
		))

	r.Mux.HandleFunc("GET /auth/signup", r.handleSignupForm)
	r.Mux.Handle("POST /auth/signup",
		httpx.Chain(http.HandlerFunc(r.handleSignup),
			httpx.RateLimit(httpx.StrictLimit, httpx.IPKey),
		))

	// Refresh works off the refresh cookie alone, not the gate: the access
	// token is usually already expired when this is called.
	r.Mux.Handle("GET /auth/refresh",
		httpx.Chain(http.HandlerFunc(r.handleRefresh),
			httpx.RateLimit(httpx.ModerateLimit, httpx.IPKey),
		))

	gated := r.Gate.Middleware()
	r.Mux.Handle("GET /logout", gated(http.HandlerFunc(r.handleLogout)))
	r.Mux.Handle("POST /logout", gated(http.HandlerFunc(r.handleLogout)))
	r.Mux.Handle("GET /me", gated(http.HandlerFunc(r.handleMe)))
}

func (r *Router) registerCatalog() {
	gated := r.Gate.Middleware()
	handle := func(pattern string, h http.HandlerFunc) {
		r.Mux.Handle(pattern, gated(h))
	}

	handle("GET /welcome", r.handleWelcome)
	handle("GET /about", r.handleAbout)

	handle("GET /musicians", r.handleMusiciansPage)
	handle("POST /musicians/add", r.handleMusicianCreate)
	handle("POST /musicians/delete/{id}", r.handleMusicianDelete)
	handle("POST /musicians/find", r.handleMusicianFind)
	handle("GET /musicians/print", r.handleMusiciansPrint)
	handle("POST /musicians/{id}", r.handleMusicianUpdate)

	handle("GET /genres", r.handleGenresPage)
	handle("POST /genres/add", r.handleGenreCreate)
	handle("POST /genres/delete/{id}", r.handleGenreDelete)
	handle("POST /genres/find", r.handleGenreFind)
	handle("GET /genres/print", r.handleGenresPrint)
	handle("POST /genres/{id}", r.handleGenreUpdate)

	handle("GET /scores", r.handleScoresPage)
	handle("POST /scores/add", r.handleScoreCreate)
	handle("POST /scores/delete/{id}", r.handleScoreDelete)
	handle("POST /scores/find/title", r.handleScoreFindTitle)
	handle("POST /scores/find/musician", r.handleScoreFindMusician)
	handle("POST /scores/find/genre", r.handleScoreFindGenre)
	handle("GET /scores/print", r.handleScoresPrint)
	handle("POST /scores/{id}", r.handleScoreUpdate)
}

func (r *Router) registerAdmin() {
	r.Mux.Handle("GET /admin/users",
		httpx.Chain(http.HandlerFunc(r.handleUsersPage),
			r.Gate.Middleware(),
			r.Gate.RequireRole(domain.RoleAdministrator),
		))
}

// redirect sends a see-other, the standard answer to a handled POST.
func redirect(w http.ResponseWriter, req *http.Request, target string) {
	http.Redirect(w, req, target, http.StatusSeeOther)
}
