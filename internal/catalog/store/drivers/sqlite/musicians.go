package sqlite

import (
	"context"
	"database/sql"

	"github.com/clefworks/scorebook/internal/catalog/domain"
)

type musiciansRepo struct {
	db *sql.DB
}

func (r *musiciansRepo) ListMusicians(ctx context.Context) ([]domain.Musician, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, full_name FROM musicians ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMusicians(rows)
}

func (r *musiciansRepo) GetMusicianByID(ctx context.Context, id string) (domain.Musician, error) {
	var m domain.Musician
	err := r.db.QueryRowContext(ctx,
		`SELECT id, full_name FROM musicians WHERE id = ?`, id).
		Scan(&m.ID, &m.FullName)
	if err != nil {
		return domain.Musician{}, mapNotFound(err)
	}
	return m, nil
}

func (r *musiciansRepo) GetMusicianByName(ctx context.Context, fullName string) (domain.Musician, error) {
	var m domain.Musician
	err := r.db.QueryRowContext(ctx,
		`SELECT id, full_name FROM musicians WHERE full_name = ?`, fullName).
		Scan(&m.ID, &m.FullName)
	if err != nil {
		return domain.Musician{}, mapNotFound(err)
	}
	return m, nil
}

func (r *musiciansRepo) FindMusiciansByName(ctx context.Context, prefix string) ([]domain.Musician, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, full_name FROM musicians
		 WHERE full_name LIKE ? COLLATE NOCASE
		 ORDER BY full_name`, prefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMusicians(rows)
}

func (r *musiciansRepo) CreateMusician(ctx context.Context, m domain.Musician) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO musicians (id, full_name) VALUES (?, ?)`, m.ID, m.FullName)
	return mapConstraint(err)
}

func (r *musiciansRepo) UpdateMusician(ctx context.Context, m domain.Musician) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE musicians SET full_name = ? WHERE id = ?`, m.FullName, m.ID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRowAffected(res)
}

func (r *musiciansRepo) DeleteMusician(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM musicians WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func collectMusicians(rows *sql.Rows) ([]domain.Musician, error) {
	var out []domain.Musician
	for rows.Next() {
		var m domain.Musician
		if err := rows.Scan(&m.ID, &m.FullName); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
