package sqlite

import (
	"context"
	"database/sql"

	"github.com/clefworks/scorebook/internal/catalog/domain"
)

type scoresRepo struct {
	db *sql.DB
}

const listingSelect = `
	SELECT scores.id, scores.title, musicians.full_name, genres.name
	FROM scores
	INNER JOIN musicians ON scores.musician_id = musicians.id
	INNER JOIN genres ON scores.genre_id = genres.id`

func (r *scoresRepo) ListScoreListings(ctx context.Context) ([]domain.ScoreListing, error) {
	rows, err := r.db.QueryContext(ctx, listingSelect+` ORDER BY scores.title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

func (r *scoresRepo) GetScoreByID(ctx context.Context, id string) (domain.Score, error) {
	var s domain.Score
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, musician_id, genre_id FROM scores WHERE id = ?`, id).
		Scan(&s.ID, &s.Title, &s.MusicianID, &s.GenreID)
	if err != nil {
		return domain.Score{}, mapNotFound(err)
	}
	return s, nil
}

func (r *scoresRepo) CreateScore(ctx context.Context, s domain.Score) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO scores (id, title, musician_id, genre_id) VALUES (?, ?, ?, ?)`,
		s.ID, s.Title, s.MusicianID, s.GenreID)
	return mapConstraint(err)
}

func (r *scoresRepo) UpdateScore(ctx context.Context, s domain.Score) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE scores SET title = ?, musician_id = ?, genre_id = ? WHERE id = ?`,
		s.Title, s.MusicianID, s.GenreID, s.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *scoresRepo) DeleteScore(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scores WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *scoresRepo) FindScoresByTitle(ctx context.Context, prefix string) ([]domain.ScoreListing, error) {
	rows, err := r.db.QueryContext(ctx,
		listingSelect+`
		WHERE scores.title LIKE ? COLLATE NOCASE
		ORDER BY scores.title`, prefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

func (r *scoresRepo) FindScoresByMusician(ctx context.Context, musicianPrefix string) ([]domain.ScoreListing, error) {
	rows, err := r.db.QueryContext(ctx,
		listingSelect+`
		WHERE musicians.full_name LIKE ? COLLATE NOCASE
		ORDER BY scores.title`, musicianPrefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

func (r *scoresRepo) FindScoresByGenre(ctx context.Context, genreName string) ([]domain.ScoreListing, error) {
	rows, err := r.db.QueryContext(ctx,
		listingSelect+`
		WHERE genres.name = ? COLLATE NOCASE
		ORDER BY scores.title`, genreName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectListings(rows)
}

func collectListings(rows *sql.Rows) ([]domain.ScoreListing, error) {
	var out []domain.ScoreListing
	for rows.Next() {
		var l domain.ScoreListing
		if err := rows.Scan(&l.ID, &l.Title, &l.MusicianName, &l.GenreName); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
