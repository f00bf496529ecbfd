package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/clefworks/scorebook/internal/catalog/domain"
	"github.com/clefworks/scorebook/internal/catalog/store"
	"github.com/clefworks/scorebook/pkg/idx"
	"github.com/clefworks/scorebook/pkg/slogx"
)

var (
	ErrBlankName       = errors.New("name must not be blank")
	ErrMusicianUnknown = errors.New("no musician with this name")
	ErrGenreUnknown    = errors.New("no genre with this name")
	ErrDuplicateEntry  = errors.New("an entry with this name already exists")
)

// CatalogService is the score catalogue: musicians, genres and the scores
// that tie them together.
type CatalogService struct {
	Store store.Store
}

func NewCatalogService(s store.Store) *CatalogService {
	return &CatalogService{Store: s}
}

// --- Musicians ---

func (s *CatalogService) ListMusicians(ctx context.Context) ([]domain.Musician, error) {
	return s.Store.Musicians().ListMusicians(ctx)
}

func (s *CatalogService) GetMusician(ctx context.Context, id string) (domain.Musician, error) {
	return s.Store.Musicians().GetMusicianByID(ctx, id)
}

func (s *CatalogService) CreateMusician(ctx context.Context, fullName string) (domain.Musician, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return domain.Musician{}, ErrBlankName
	}

	m := domain.Musician{ID: idx.New().String(), FullName: fullName}
	if err := s.Store.Musicians().CreateMusician(ctx, m); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Musician{}, ErrDuplicateEntry
		}
		return domain.Musician{}, err
	}

	slogx.FromContext(ctx).Info("musician created", slog.String("musician_id", m.ID))
	return m, nil
}

func (s *CatalogService) UpdateMusician(ctx context.Context, id, fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return ErrBlankName
	}
	err := s.Store.Musicians().UpdateMusician(ctx, domain.Musician{ID: id, FullName: fullName})
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrDuplicateEntry
	}
	return err
}

// DeleteMusician removes the musician and, through the schema, every score
// attributed to them.
func (s *CatalogService) DeleteMusician(ctx context.Context, id string) error {
	return s.Store.Musicians().DeleteMusician(ctx, id)
}

// FindMusicians is a case-insensitive prefix search over full names. It is
// computed per request; nothing is cached between requests.
func (s *CatalogService) FindMusicians(ctx context.Context, prefix string) ([]domain.Musician, error) {
	return s.Store.Musicians().FindMusiciansByName(ctx, strings.TrimSpace(prefix))
}

// --- Genres ---

func (s *CatalogService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.Store.Genres().ListGenres(ctx)
}

func (s *CatalogService) GetGenre(ctx context.Context, id string) (domain.Genre, error) {
	return s.Store.Genres().GetGenreByID(ctx, id)
}

func (s *CatalogService) CreateGenre(ctx context.Context, name string) (domain.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Genre{}, ErrBlankName
	}

	g := domain.Genre{ID: idx.New().String(), Name: name}
	if err := s.Store.Genres().CreateGenre(ctx, g); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Genre{}, ErrDuplicateEntry
		}
		return domain.Genre{}, err
	}

	slogx.FromContext(ctx).Info("genre created", slog.String("genre_id", g.ID))
	return g, nil
}

func (s *CatalogService) UpdateGenre(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrBlankName
	}
	err := s.Store.Genres().UpdateGenre(ctx, domain.Genre{ID: id, Name: name})
	if errors.Is(err, store.ErrAlreadyExists) {
		return ErrDuplicateEntry
	}
	return err
}

func (s *CatalogService) DeleteGenre(ctx context.Context, id string) error {
	return s.Store.Genres().DeleteGenre(ctx, id)
}

func (s *CatalogService) FindGenres(ctx context.Context, prefix string) ([]domain.Genre, error) {
	return s.Store.Genres().FindGenresByName(ctx, strings.TrimSpace(prefix))
}

// --- Scores ---

func (s *CatalogService) ListScores(ctx context.Context) ([]domain.ScoreListing, error) {
	return s.Store.Scores().ListScoreListings(ctx)
}

func (s *CatalogService) GetScore(ctx context.Context, id string) (domain.Score, error) {
	return s.Store.Scores().GetScoreByID(ctx, id)
}

// CreateScore files a new score under an existing musician and genre, both
// resolved by exact name. The entry form offers free-text names, so unknown
// references are a user error, not an invariant violation.
func (s *CatalogService) CreateScore(ctx context.Context, title, musicianName, genreName string) (domain.Score, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Score{}, ErrBlankName
	}

	musician, err := s.Store.Musicians().GetMusicianByName(ctx, strings.TrimSpace(musicianName))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Score{}, ErrMusicianUnknown
		}
		return domain.Score{}, err
	}
	genre, err := s.Store.Genres().GetGenreByName(ctx, strings.TrimSpace(genreName))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Score{}, ErrGenreUnknown
		}
		return domain.Score{}, err
	}

	score := domain.Score{
		ID:         idx.New().String(),
		Title:      title,
		MusicianID: musician.ID,
		GenreID:    genre.ID,
	}
	if err := s.Store.Scores().CreateScore(ctx, score); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Score{}, ErrDuplicateEntry
		}
		return domain.Score{}, err
	}

	slogx.FromContext(ctx).Info("score created",
		slog.String("score_id", score.ID),
		slog.String("musician_id", musician.ID),
		slog.String("genre_id", genre.ID),
	)
	return score, nil
}

// UpdateScore retitles a score or refiles it under another existing musician
// or genre, resolved by exact name like CreateScore.
func (s *CatalogService) UpdateScore(ctx context.Context, id, title, musicianName, genreName string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrBlankName
	}

	musician, err := s.Store.Musicians().GetMusicianByName(ctx, strings.TrimSpace(musicianName))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMusicianUnknown
		}
		return err
	}
	genre, err := s.Store.Genres().GetGenreByName(ctx, strings.TrimSpace(genreName))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrGenreUnknown
		}
		return err
	}

	return s.Store.Scores().UpdateScore(ctx, domain.Score{
		ID:         id,
		Title:      title,
		MusicianID: musician.ID,
		GenreID:    genre.ID,
	})
}

func (s *CatalogService) DeleteScore(ctx context.Context, id string) error {
	return s.Store.Scores().DeleteScore(ctx, id)
}

// Search methods return fresh results per call so concurrent users and the
// print views never observe each other's queries.

func (s *CatalogService) FindScoresByTitle(ctx context.Context, prefix string) ([]domain.ScoreListing, error) {
	return s.Store.Scores().FindScoresByTitle(ctx, strings.TrimSpace(prefix))
}

func (s *CatalogService) FindScoresByMusician(ctx context.Context, prefix string) ([]domain.ScoreListing, error) {
	return s.Store.Scores().FindScoresByMusician(ctx, strings.TrimSpace(prefix))
}

func (s *CatalogService) FindScoresByGenre(ctx context.Context, genreName string) ([]domain.ScoreListing, error) {
	return s.Store.Scores().FindScoresByGenre(ctx, strings.TrimSpace(genreName))
}
