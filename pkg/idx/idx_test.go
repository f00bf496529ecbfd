package idx_test

import (
	"testing"
	"time"

	"github.com/clefworks/scorebook/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewProducesValidSortableIDs(t *testing.T) {
	a := idx.New()
	b := idx.New()

	_, err := idx.Parse(a.String())
	require.NoError(t, err)
	_, err = idx.Parse(b.String())
	require.NoError(t, err)

	// Monotonic entropy keeps same-millisecond IDs ordered.
	require.Less(t, a.String(), b.String())
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "0000"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid)
	}
}

func TestNewAtEmbedsTimestamp(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	id := idx.NewAt(at)
	require.Equal(t, at.UnixMilli(), id.Time().UnixMilli())
}
