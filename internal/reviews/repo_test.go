package reviews

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameboxd/internal/games"
	"gameboxd/pkg/database"
	"gameboxd/pkg/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func TestCreateListDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	g, err := games.NewRepo(db).GetOrCreate(ctx, "3328")
	require.NoError(t, err)

	repo := NewRepo(db)
	created, err := repo.Create(ctx, "alice", g.ID, 9, "Masterpiece")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.ExternalID("3328"), created.ExternalID)
	assert.Equal(t, 9, created.Rating)
	assert.Equal(t, "Masterpiece", created.Text)

	_, err = repo.Create(ctx, "bob", g.ID, 4, "")
	require.NoError(t, err)

	list, err := repo.ListByExternalID(ctx, "3328", 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bob", list[0].UserID)

	ok, err := repo.Delete(ctx, created.ID, "bob")
	require.NoError(t, err)
	assert.False(t, ok, "only the author may delete")

	ok, err = repo.Delete(ctx, created.ID, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateRejectsOutOfScaleRating(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	g, err := games.NewRepo(db).GetOrCreate(ctx, "1")
	require.NoError(t, err)

	_, err = NewRepo(db).Create(ctx, "alice", g.ID, 11, "")
	require.Error(t, err)
}

func TestAggregateByGame(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	gameRepo := games.NewRepo(db)
	repo := NewRepo(db)

	a, err := gameRepo.GetOrCreate(ctx, "1")
	require.NoError(t, err)
	b, err := gameRepo.GetOrCreate(ctx, "2")
	require.NoError(t, err)
	for _, r := range []int{10, 7} {
		_, err := repo.Create(ctx, "u", a.ID, r, "")
		require.NoError(t, err)
	}

	aggs, err := repo.AggregateByGame(ctx, []models.GameID{a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, aggs, 1, "games without reviews produce no row")
	assert.Equal(t, a.ID, aggs[0].GameID)
	assert.Equal(t, 2, aggs[0].Count)
	assert.InDelta(t, 8.5, *aggs[0].AverageRaw, 1e-9)

	empty, err := repo.AggregateByGame(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
