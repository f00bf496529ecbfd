// Package sqlite is the embedded-database driver for the catalog store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/clefworks/scorebook/internal/catalog/store"
)

type Store struct {
	db *sql.DB
}

func NewStore(dsn string) (*Store, error) {
	// The pragma goes in the DSN so every pooled connection enforces FKs,
	// which is what makes musician and genre deletes cascade to scores.
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite", dsn+sep+"_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Users() store.Users         { return &usersRepo{db: s.db} }
func (s *Store) Musicians() store.Musicians { return &musiciansRepo{db: s.db} }
func (s *Store) Genres() store.Genres       { return &genresRepo{db: s.db} }
func (s *Store) Scores() store.Scores       { return &scoresRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapConstraint(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}
