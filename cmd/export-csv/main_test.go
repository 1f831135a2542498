package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameboxd/internal/games"
	"gameboxd/internal/library"
	"gameboxd/internal/reviews"
	"gameboxd/pkg/database"
	"gameboxd/pkg/models"
)

func seed(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	ctx := context.Background()
	gameRepo := games.NewRepo(db)
	gta, err := gameRepo.GetOrCreate(ctx, "3498")
	require.NoError(t, err)
	portal, err := gameRepo.GetOrCreate(ctx, "4200")
	require.NoError(t, err)
	_, err = gameRepo.GetOrCreate(ctx, "28")
	require.NoError(t, err)

	reviewRepo := reviews.NewRepo(db)
	for _, r := range []struct {
		user   string
		game   models.GameID
		rating int
	}{
		{"alice", gta.ID, 9},
		{"bob", gta.ID, 6},
		{"alice", portal.ID, 10},
	} {
		_, err := reviewRepo.Create(ctx, r.user, r.game, r.rating, "")
		require.NoError(t, err)
	}

	require.NoError(t, library.NewRepo(db).Upsert(ctx, models.LibraryItem{UserID: "alice", GameID: portal.ID, Status: "completed"}))
	return db
}

func readCSV(t *testing.T, b *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(b).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportRatings(t *testing.T) {
	db := seed(t)
	var buf bytes.Buffer
	require.NoError(t, exportRatings(context.Background(), db, &buf))

	assert.Equal(t, [][]string{
		{"external_id", "rating", "rating_count"},
		{"3498", "3.75", "2"},
		{"4200", "5.00", "1"},
	}, readCSV(t, &buf))
}

func TestExportReviewsAndLibrary(t *testing.T) {
	db := seed(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, exportReviews(ctx, db, &buf))
	records := readCSV(t, &buf)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"1", "alice", "3498", "9"}, records[1][:4])

	buf.Reset()
	require.NoError(t, exportLibrary(ctx, db, &buf))
	records = readCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"alice", "4200", "completed"}, records[1][:3])
}
