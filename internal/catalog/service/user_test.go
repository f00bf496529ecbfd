package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clefworks/scorebook/internal/catalog/domain"
	"github.com/clefworks/scorebook/internal/catalog/service"
	"github.com/clefworks/scorebook/internal/catalog/store/drivers/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func validSignup() service.SignupData {
	return service.SignupData{
		Name:     "margot",
		Email:    "margot@example.com",
		Password: "sonata1",
	}
}

func TestSignupCreatesRegularUser(t *testing.T) {
	ctx := context.Background()
	users := service.NewUserService(newTestStore(t))

	user, err := users.Signup(ctx, validSignup())
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, domain.RoleUser, user.Role)
	require.NotEqual(t, "sonata1", user.PasswordHash)

	got, err := users.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "margot", got.Name)
	require.Equal(t, "margot@example.com", got.Email)
}

func TestSignupNormalisesEmail(t *testing.T) {
	ctx := context.Background()
	users := service.NewUserService(newTestStore(t))

	data := validSignup()
	data.Email = "  Margot@Example.com "
	user, err := users.Signup(ctx, data)
	require.NoError(t, err)
	require.Equal(t, "margot@example.com", user.Email)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := service.NewUserService(newTestStore(t))

	_, err := users.Signup(ctx, validSignup())
	require.NoError(t, err)

	dup := validSignup()
	dup.Name = "margo2"
	_, err = users.Signup(ctx, dup)
	require.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	users := service.NewUserService(newTestStore(t))

	cases := map[string]service.SignupData{
		"short name":     {Name: "abc", Email: "a@example.com", Password: "sonata1"},
		"long name":      {Name: "abcdefghijklmnopqrstu", Email: "a@example.com", Password: "sonata1"},
		"bad email":      {Name: "margot", Email: "not-an-email", Password: "sonata1"},
		"short password": {Name: "margot", Email: "a@example.com", Password: "12345"},
		"empty":          {},
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := users.Signup(ctx, data)
			require.ErrorIs(t, err, service.ErrInvalidSignup)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := service.NewUserService(newTestStore(t))

	_, err := users.Signup(ctx, validSignup())
	require.NoError(t, err)

	user, err := users.Authenticate(ctx, "margot", "sonata1")
	require.NoError(t, err)
	require.Equal(t, "margot", user.Name)

	// Wrong password and unknown name produce the same error.
	_, err = users.Authenticate(ctx, "margot", "wrong")
	require.ErrorIs(t, err, service.ErrCredentialMismatch)
	_, err = users.Authenticate(ctx, "nobody", "sonata1")
	require.ErrorIs(t, err, service.ErrCredentialMismatch)
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	users := service.NewUserService(newTestStore(t))

	for _, name := range []string{"wanda", "margot", "viktor"} {
		data := service.SignupData{Name: name, Email: name + "@example.com", Password: "sonata1"}
		_, err := users.Signup(ctx, data)
		require.NoError(t, err)
	}

	all, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "margot", all[0].Name)
	require.Equal(t, "viktor", all[1].Name)
	require.Equal(t, "wanda", all[2].Name)
}
