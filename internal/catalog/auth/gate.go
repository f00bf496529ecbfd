package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/clefworks/scorebook/internal/catalog/domain"
	"github.com/clefworks/scorebook/internal/catalog/session"
	"github.com/clefworks/scorebook/internal/catalog/store"
	"github.com/clefworks/scorebook/pkg/httpx"
	"github.com/clefworks/scorebook/pkg/jwtx"
	"github.com/clefworks/scorebook/pkg/slogx"
)

// RejectFunc renders a gate rejection. The web layer installs a
// redirect-with-flash renderer for page routes and keeps the JSON default
// for API-style routes.
type RejectFunc func(w http.ResponseWriter, r *http.Request, status int, message string)

// JSONReject is the default rejection renderer.
func JSONReject(w http.ResponseWriter, _ *http.Request, status int, message string) {
	httpx.WriteError(w, status, message)
}

// Gate is the request authorization middleware. Per request it walks
// extract -> verify -> session lookup -> subject load and attaches an
// Identity to the context, or rejects. The read path never mutates the
// session store.
type Gate struct {
	Verifier *jwtx.Verifier // access-token public key
	Sessions session.Store
	Users    store.Users

	// RoleMismatchStatus is the status for an authenticated subject with the
	// wrong role. The upstream behaviour is 401, which avoids confirming the
	// resource exists; 403 is the textbook answer. Configurable on purpose.
	RoleMismatchStatus int

	Reject RejectFunc
}

func (g *Gate) reject(w http.ResponseWriter, r *http.Request, status int, message string) {
	if g.Reject != nil {
		g.Reject(w, r, status, message)
		return
	}
	JSONReject(w, r, status, message)
}

// extractToken reads the access-token cookie, falling back to the
// Authorization bearer header.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// Middleware returns the authorization gate as a chainable middleware.
func (g *Gate) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := extractToken(r)
			if token == "" {
				g.reject(w, r, http.StatusUnauthorized, "you are not logged in, please provide a token")
				return
			}

			details, err := g.Verifier.Verify(token)
			if err != nil {
				log.Warn("access token verification failed", "err", err)
				g.reject(w, r, http.StatusUnauthorized, "token is invalid")
				return
			}

			subjectID, err := g.Sessions.Get(ctx, details.TokenID)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					g.reject(w, r, http.StatusUnauthorized, "token is invalid or session has expired")
					return
				}
				// Infra failure must not masquerade as an auth failure.
				log.Error("session store lookup failed", "err", err)
				g.reject(w, r, http.StatusUnprocessableEntity, "session store unavailable")
				return
			}

			user, err := g.Users.GetUserByID(ctx, subjectID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					g.reject(w, r, http.StatusUnauthorized, "the user belonging to this token no longer exists")
					return
				}
				log.Error("subject lookup failed", "err", err)
				g.reject(w, r, http.StatusInternalServerError, "storage unavailable")
				return
			}

			ctx = WithIdentity(ctx, Identity{User: user, TokenID: details.TokenID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole is the second-stage gate: it runs after Middleware and
// restricts the route to one role.
func (g *Gate) RequireRole(role domain.Role) httpx.Middleware {
	status := g.RoleMismatchStatus
	if status == 0 {
		status = http.StatusUnauthorized
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				g.reject(w, r, http.StatusUnauthorized, "you are not logged in")
				return
			}
			if id.User.Role != role {
				g.reject(w, r, status, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
