package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clefworks/scorebook/internal/catalog/service"
	"github.com/clefworks/scorebook/internal/catalog/store"
)

func newCatalog(t *testing.T) *service.CatalogService {
	t.Helper()
	return service.NewCatalogService(newTestStore(t))
}

// seedCatalog loads a small fixture: two musicians, two genres, three scores.
func seedCatalog(t *testing.T, c *service.CatalogService) {
	t.Helper()
	ctx := context.Background()

	for _, name := range []string{"Erik Satie", "Maurice Ravel"} {
		_, err := c.CreateMusician(ctx, name)
		require.NoError(t, err)
	}
	for _, name := range []string{"Impressionist", "Baroque"} {
		_, err := c.CreateGenre(ctx, name)
		require.NoError(t, err)
	}
	for _, s := range []struct{ title, musician, genre string }{
		{"Gymnopedie No.1", "Erik Satie", "Impressionist"},
		{"Gnossienne No.1", "Erik Satie", "Impressionist"},
		{"Bolero", "Maurice Ravel", "Impressionist"},
	} {
		_, err := c.CreateScore(ctx, s.title, s.musician, s.genre)
		require.NoError(t, err)
	}
}

func TestMusicianCRUD(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	m, err := c.CreateMusician(ctx, "  Erik Satie ")
	require.NoError(t, err)
	require.Equal(t, "Erik Satie", m.FullName)

	_, err = c.CreateMusician(ctx, "Erik Satie")
	require.ErrorIs(t, err, service.ErrDuplicateEntry)
	_, err = c.CreateMusician(ctx, "   ")
	require.ErrorIs(t, err, service.ErrBlankName)

	require.NoError(t, c.UpdateMusician(ctx, m.ID, "Eric Satie"))
	got, err := c.GetMusician(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "Eric Satie", got.FullName)

	require.NoError(t, c.DeleteMusician(ctx, m.ID))
	_, err = c.GetMusician(ctx, m.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	err = c.UpdateMusician(ctx, m.ID, "Gone")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGenreCRUD(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)

	g, err := c.CreateGenre(ctx, "Baroque")
	require.NoError(t, err)

	_, err = c.CreateGenre(ctx, "Baroque")
	require.ErrorIs(t, err, service.ErrDuplicateEntry)

	require.NoError(t, c.UpdateGenre(ctx, g.ID, "Romantic"))
	got, err := c.GetGenre(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, "Romantic", got.Name)

	require.NoError(t, c.DeleteGenre(ctx, g.ID))
	_, err = c.GetGenre(ctx, g.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestFindMusiciansPrefixIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	seedCatalog(t, c)

	found, err := c.FindMusicians(ctx, "erik")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Erik Satie", found[0].FullName)

	found, err = c.FindMusicians(ctx, "Satie")
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestCreateScoreResolvesByExactName(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	seedCatalog(t, c)

	_, err := c.CreateScore(ctx, "Le Tombeau", "Maurice Ravel", "Baroque")
	require.NoError(t, err)

	_, err = c.CreateScore(ctx, "Nocturne", "Frederic Chopin", "Baroque")
	require.ErrorIs(t, err, service.ErrMusicianUnknown)
	_, err = c.CreateScore(ctx, "Nocturne", "Maurice Ravel", "Romantic")
	require.ErrorIs(t, err, service.ErrGenreUnknown)
	_, err = c.CreateScore(ctx, " ", "Maurice Ravel", "Baroque")
	require.ErrorIs(t, err, service.ErrBlankName)
}

func TestScoreListingsAreJoined(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	seedCatalog(t, c)

	listings, err := c.ListScores(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 3)

	// Ordered by title.
	require.Equal(t, "Bolero", listings[0].Title)
	require.Equal(t, "Maurice Ravel", listings[0].MusicianName)
	require.Equal(t, "Impressionist", listings[0].GenreName)
}

func TestScoreSearches(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	seedCatalog(t, c)

	byTitle, err := c.FindScoresByTitle(ctx, "gy")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	require.Equal(t, "Gymnopedie No.1", byTitle[0].Title)

	byMusician, err := c.FindScoresByMusician(ctx, "erik")
	require.NoError(t, err)
	require.Len(t, byMusician, 2)

	byGenre, err := c.FindScoresByGenre(ctx, "Impressionist")
	require.NoError(t, err)
	require.Len(t, byGenre, 3)
}

func TestSearchesAreIndependentAcrossCalls(t *testing.T) {
	// Two interleaved searches must not bleed into each other; results are
	// computed per call with no shared state.
	ctx := context.Background()
	c := newCatalog(t)
	seedCatalog(t, c)

	first, err := c.FindScoresByMusician(ctx, "Maurice")
	require.NoError(t, err)
	second, err := c.FindScoresByMusician(ctx, "Erik")
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 2)
	require.Equal(t, "Bolero", first[0].Title)
}

func TestDeleteMusicianCascadesToScores(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	seedCatalog(t, c)

	musicians, err := c.FindMusicians(ctx, "Erik")
	require.NoError(t, err)
	require.Len(t, musicians, 1)

	require.NoError(t, c.DeleteMusician(ctx, musicians[0].ID))

	listings, err := c.ListScores(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	require.Equal(t, "Bolero", listings[0].Title)
}

func TestUpdateScoreRefiles(t *testing.T) {
	ctx := context.Background()
	c := newCatalog(t)
	seedCatalog(t, c)

	listings, err := c.FindScoresByTitle(ctx, "Bolero")
	require.NoError(t, err)
	require.Len(t, listings, 1)

	err = c.UpdateScore(ctx, listings[0].ID, "Bolero (orch.)", "Maurice Ravel", "Baroque")
	require.NoError(t, err)

	score, err := c.GetScore(ctx, listings[0].ID)
	require.NoError(t, err)
	require.Equal(t, "Bolero (orch.)", score.Title)

	byGenre, err := c.FindScoresByGenre(ctx, "Baroque")
	require.NoError(t, err)
	require.Len(t, byGenre, 1)
}
