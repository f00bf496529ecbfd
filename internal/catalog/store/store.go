// Package store defines the data access interface for durable state.
// Concrete drivers live under drivers/.
package store

import (
	"context"
	"errors"

	"github.com/clefworks/scorebook/internal/catalog/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface, split into sub-repositories per
// entity to keep concerns tidy and testable.
type Store interface {
	Users() Users
	Musicians() Musicians
	Genres() Genres
	Scores() Scores

	ApplyMigrations() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	Close() error
}

type Users interface {
	// GetUserByID resolves the subject behind a session entry.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByName is used by login only, never by the gate.
	GetUserByName(ctx context.Context, name string) (domain.User, error)

	// GetUserByEmail backs the duplicate check at signup.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is app-provided).
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users ordered by name, for the admin page.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type Musicians interface {
	ListMusicians(ctx context.Context) ([]domain.Musician, error)
	GetMusicianByID(ctx context.Context, id string) (domain.Musician, error)

	// GetMusicianByName is an exact match, used to resolve score forms.
	GetMusicianByName(ctx context.Context, fullName string) (domain.Musician, error)

	// FindMusiciansByName is a case-insensitive prefix search.
	FindMusiciansByName(ctx context.Context, prefix string) ([]domain.Musician, error)

	CreateMusician(ctx context.Context, m domain.Musician) error
	UpdateMusician(ctx context.Context, m domain.Musician) error
	DeleteMusician(ctx context.Context, id string) error
}

type Genres interface {
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	GetGenreByID(ctx context.Context, id string) (domain.Genre, error)
	GetGenreByName(ctx context.Context, name string) (domain.Genre, error)
	FindGenresByName(ctx context.Context, prefix string) ([]domain.Genre, error)
	CreateGenre(ctx context.Context, g domain.Genre) error
	UpdateGenre(ctx context.Context, g domain.Genre) error
	DeleteGenre(ctx context.Context, id string) error
}

type Scores interface {
	// ListScoreListings returns the joined display view ordered by title.
	ListScoreListings(ctx context.Context) ([]domain.ScoreListing, error)

	GetScoreByID(ctx context.Context, id string) (domain.Score, error)
	CreateScore(ctx context.Context, s domain.Score) error
	UpdateScore(ctx context.Context, s domain.Score) error
	DeleteScore(ctx context.Context, id string) error

	// Searches return the joined view directly; prefix matches are
	// case-insensitive.
	FindScoresByTitle(ctx context.Context, prefix string) ([]domain.ScoreListing, error)
	FindScoresByMusician(ctx context.Context, musicianPrefix string) ([]domain.ScoreListing, error)
	FindScoresByGenre(ctx context.Context, genreName string) ([]domain.ScoreListing, error)
}
