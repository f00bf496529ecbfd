// Package service holds the application flows between the web layer and the
// stores: account management and the score catalogue.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/clefworks/scorebook/internal/catalog/domain"
	"github.com/clefworks/scorebook/internal/catalog/store"
	"github.com/clefworks/scorebook/pkg/cryptox"
	"github.com/clefworks/scorebook/pkg/idx"
	"github.com/clefworks/scorebook/pkg/slogx"
)

var (
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidSignup      = errors.New("invalid signup details")
	ErrCredentialMismatch = errors.New("invalid name or password")
)

// SignupData is the unvalidated signup form.
type SignupData struct {
	Name     string `validate:"required,min=4,max=20"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type UserService struct {
	Store    store.Store
	Validate *validator.Validate
}

func NewUserService(s store.Store) *UserService {
	return &UserService{
		Store:    s,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Signup validates the form, rejects duplicate emails and creates the user
// with the default role. New accounts never get an elevated role here;
// promotion is an administrative act.
func (s *UserService) Signup(ctx context.Context, data SignupData) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate the form before touching storage.
	if err := s.Validate.Struct(data); err != nil {
		return domain.User{}, errors.Join(ErrInvalidSignup, err)
	}

	email := strings.ToLower(strings.TrimSpace(data.Email))

	// 2. Duplicate check. The unique index on email is the backstop for the
	// race between check and insert.
	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check email uniqueness", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Hash the password.
	hash, err := cryptox.HashPassword(data.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Name:         strings.TrimSpace(data.Name),
		Email:        email,
		Photo:        "default.png",
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 4. Insert.
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user signed up", slog.String("user_id", user.ID))
	return user, nil
}

// Authenticate checks a name/password pair. Unknown name and wrong password
// collapse into the same error so login leaks nothing about which accounts
// exist.
func (s *UserService) Authenticate(ctx context.Context, name, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrCredentialMismatch
		}
		log.Error("failed to fetch user for login", slog.Any("error", err))
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return domain.User{}, ErrCredentialMismatch
		}
		return domain.User{}, err
	}

	return user, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListUsers returns every account for the admin page.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}
