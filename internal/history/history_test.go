package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen/pkg/database"
)

func TestRecordAndRecent(t *testing.T) {
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "history.db")})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(db))

	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, Record(ctx, db, Run{
			ID:           uuid.NewString(),
			StartedAt:    base.Add(time.Duration(i) * time.Hour),
			ProjectCount: 10 + i,
			ListingHash:  "hash",
			Added:        i,
		}))
	}

	runs, err := Recent(ctx, db, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, 12, runs[0].ProjectCount)
	assert.Equal(t, 11, runs[1].ProjectCount)
	assert.Equal(t, 2, runs[0].Added)
}

func TestRecentEmpty(t *testing.T) {
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "history.db")})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(db))

	runs, err := Recent(context.Background(), db, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
