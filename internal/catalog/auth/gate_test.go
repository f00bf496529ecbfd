package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clefworks/scorebook/internal/catalog/auth"
	"github.com/clefworks/scorebook/internal/catalog/domain"
	"github.com/clefworks/scorebook/internal/catalog/session"
	"github.com/clefworks/scorebook/internal/catalog/session/drivers/memory"
)

// brokenSessions always reports the backend as down.
type brokenSessions struct{ session.Store }

func (brokenSessions) Get(context.Context, string) (string, error) {
	return "", session.ErrUnavailable
}

func newGateFixture(t *testing.T) (*auth.Service, *auth.Gate, *memory.Store, *usersStub) {
	t.Helper()

	svc, sessions, users := newService(t)
	gate := &auth.Gate{
		Verifier: svc.Keys.AccessVerifier,
		Sessions: sessions,
		Users:    users,
	}
	return svc, gate, sessions, users
}

// echoIdentity terminates the chain and reports the identity the gate
// attached.
func echoIdentity(t *testing.T, got *auth.Identity) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFromContext(r.Context())
		require.True(t, ok)
		*got = id
		w.WriteHeader(http.StatusOK)
	})
}

func doGated(gate *auth.Gate, handler http.Handler, prepare func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/scores", nil)
	if prepare != nil {
		prepare(req)
	}
	rec := httptest.NewRecorder()
	gate.Middleware()(handler).ServeHTTP(rec, req)
	return rec
}

func TestGateAcceptsCookieToken(t *testing.T) {
	svc, gate, _, _ := newGateFixture(t)

	access, _, err := svc.IssuePair(context.Background(), testUser())
	require.NoError(t, err)

	var got auth.Identity
	rec := doGated(gate, echoIdentity(t, &got), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: access.Token})
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, testUser().ID, got.User.ID)
	require.Equal(t, access.TokenID, got.TokenID)
}

func TestGateAcceptsBearerToken(t *testing.T) {
	svc, gate, _, _ := newGateFixture(t)

	access, _, err := svc.IssuePair(context.Background(), testUser())
	require.NoError(t, err)

	var got auth.Identity
	rec := doGated(gate, echoIdentity(t, &got), func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+access.Token)
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, testUser().ID, got.User.ID)
}

func TestGateRejectsMissingToken(t *testing.T) {
	_, gate, _, _ := newGateFixture(t)

	rec := doGated(gate, failHandler(t), nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "not logged in")
}

func TestGateRejectsGarbageToken(t *testing.T) {
	_, gate, _, _ := newGateFixture(t)

	rec := doGated(gate, failHandler(t), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: "junk"})
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "token is invalid")
}

func TestGateRejectsExpiredToken(t *testing.T) {
	svc, gate, _, _ := newGateFixture(t)

	expired, err := svc.Keys.AccessIssuer.Issue(testUser().ID, testUser().Role.String(), -time.Minute)
	require.NoError(t, err)

	rec := doGated(gate, failHandler(t), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: expired.Token})
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGateRejectsRevokedSession(t *testing.T) {
	// The signed token still verifies after logout. Revocation lives in the
	// session store, and the gate must consult it on every request.
	svc, gate, _, _ := newGateFixture(t)
	ctx := context.Background()

	access, refresh, err := svc.IssuePair(ctx, testUser())
	require.NoError(t, err)

	_, err = gate.Verifier.Verify(access.Token)
	require.NoError(t, err)

	id := auth.Identity{User: testUser(), TokenID: access.TokenID}
	require.NoError(t, svc.Logout(ctx, id, refresh.Token))

	rec := doGated(gate, failHandler(t), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: access.Token})
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "session has expired")
}

func TestGateRejectsDeletedSubject(t *testing.T) {
	svc, gate, _, users := newGateFixture(t)

	access, _, err := svc.IssuePair(context.Background(), testUser())
	require.NoError(t, err)
	delete(users.byID, testUser().ID)

	rec := doGated(gate, failHandler(t), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: access.Token})
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "no longer exists")
}

func TestGateReportsSessionStoreOutageAsInfra(t *testing.T) {
	svc, gate, sessions, _ := newGateFixture(t)
	gate.Sessions = brokenSessions{Store: sessions}

	access, _, err := svc.IssuePair(context.Background(), testUser())
	require.NoError(t, err)

	rec := doGated(gate, failHandler(t), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: access.Token})
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRequireRolePassesMatchingRole(t *testing.T) {
	svc, gate, _, users := newGateFixture(t)

	admin := testUser()
	admin.ID = "01TESTADMINID"
	admin.Role = domain.RoleAdministrator
	users.byID[admin.ID] = admin

	access, _, err := svc.IssuePair(context.Background(), admin)
	require.NoError(t, err)

	handler := gate.RequireRole(domain.RoleAdministrator)(okHandler())
	rec := doGated(gate, handler, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: access.Token})
	})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsMismatch(t *testing.T) {
	svc, gate, _, _ := newGateFixture(t)

	access, _, err := svc.IssuePair(context.Background(), testUser())
	require.NoError(t, err)

	withCookie := func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: access.Token})
	}

	handler := gate.RequireRole(domain.RoleAdministrator)(failHandler(t))
	rec := doGated(gate, handler, withCookie)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Deployments that prefer an honest status can opt into 403.
	gate.RoleMismatchStatus = http.StatusForbidden
	rec = doGated(gate, gate.RequireRole(domain.RoleAdministrator)(failHandler(t)), withCookie)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGateCustomRejectRenderer(t *testing.T) {
	_, gate, _, _ := newGateFixture(t)
	gate.Reject = func(w http.ResponseWriter, _ *http.Request, _ int, _ string) {
		w.Header().Set("Location", "/login")
		w.WriteHeader(http.StatusSeeOther)
	}

	rec := doGated(gate, failHandler(t), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func failHandler(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler reached past the gate")
	})
}
