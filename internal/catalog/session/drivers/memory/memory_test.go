package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/clefworks/scorebook/internal/catalog/session"
	"github.com/clefworks/scorebook/internal/catalog/session/drivers/memory"
	"github.com/stretchr/testify/require"
)

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Put(ctx, "tok-1", "user-1", time.Minute))

	got, err := s.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, "user-1", got)

	require.NoError(t, s.Delete(ctx, "tok-1"))
	_, err = s.Get(ctx, "tok-1")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestPutIsUpsert(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Put(ctx, "tok-1", "user-1", time.Minute))
	require.NoError(t, s.Put(ctx, "tok-1", "user-2", time.Minute))

	got, err := s.Get(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, "user-2", got)
}

func TestEntriesExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := memory.NewStoreWithClock(func() time.Time { return now })

	require.NoError(t, s.Put(ctx, "tok-1", "user-1", time.Minute))

	now = now.Add(61 * time.Second)
	_, err := s.Get(ctx, "tok-1")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.Put(ctx, "tok-1", "user-1", time.Minute))
	require.NoError(t, s.Delete(ctx, "tok-1", "tok-2"))
	require.NoError(t, s.Delete(ctx, "tok-1"))
}

func TestMissingKeyIsNotFound(t *testing.T) {
	s := memory.NewStore()
	_, err := s.Get(context.Background(), "never-stored")
	require.ErrorIs(t, err, session.ErrNotFound)
}
