package sqlite

import (
	"context"
	"database/sql"

	"github.com/clefworks/scorebook/internal/catalog/domain"
)

type genresRepo struct {
	db *sql.DB
}

func (r *genresRepo) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGenres(rows)
}

func (r *genresRepo) GetGenreByID(ctx context.Context, id string) (domain.Genre, error) {
	var g domain.Genre
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM genres WHERE id = ?`, id).
		Scan(&g.ID, &g.Name)
	if err != nil {
		return domain.Genre{}, mapNotFound(err)
	}
	return g, nil
}

func (r *genresRepo) GetGenreByName(ctx context.Context, name string) (domain.Genre, error) {
	var g domain.Genre
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM genres WHERE name = ?`, name).
		Scan(&g.ID, &g.Name)
	if err != nil {
		return domain.Genre{}, mapNotFound(err)
	}
	return g, nil
}

func (r *genresRepo) FindGenresByName(ctx context.Context, prefix string) ([]domain.Genre, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM genres
		 WHERE name LIKE ? COLLATE NOCASE
		 ORDER BY name`, prefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGenres(rows)
}

func (r *genresRepo) CreateGenre(ctx context.Context, g domain.Genre) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO genres (id, name) VALUES (?, ?)`, g.ID, g.Name)
	return mapConstraint(err)
}

func (r *genresRepo) UpdateGenre(ctx context.Context, g domain.Genre) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE genres SET name = ? WHERE id = ?`, g.Name, g.ID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowAffected(res)
}

func (r *genresRepo) DeleteGenre(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM genres WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func collectGenres(rows *sql.Rows) ([]domain.Genre, error) {
	var out []domain.Genre
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
