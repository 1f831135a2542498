package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"gameboxd/internal/ratings"
	"gameboxd/pkg/database"
	"gameboxd/pkg/utils"
)

func main() {
	var (
		configPath = flag.String("config", utils.DefaultConfigPath, "path to YAML config")
		reviewsOut = flag.String("reviews", "data/reviews.csv", "output CSV path for reviews")
		libraryOut = flag.String("library", "data/library.csv", "output CSV path for library items")
		ratingsOut = flag.String("ratings", "data/ratings.csv", "output CSV path for per-game community ratings")
	)
	flag.Parse()

	logger := utils.NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("db migrate failed", zap.Error(err))
	}

	exports := []struct {
		path string
		run  func(context.Context, *sql.DB, io.Writer) error
	}{
		{*reviewsOut, exportReviews},
		{*libraryOut, exportLibrary},
		{*ratingsOut, exportRatings},
	}
	for _, e := range exports {
		if err := writeFile(ctx, db, e.path, e.run); err != nil {
			logger.Fatal("export failed", zap.String("path", e.path), zap.Error(err))
		}
		logger.Info("exported", zap.String("path", e.path))
	}
}

func writeFile(ctx context.Context, db *sql.DB, outPath string, run func(context.Context, *sql.DB, io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return run(ctx, db, f)
}

func exportReviews(ctx context.Context, db *sql.DB, out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"id", "user_id", "external_id", "rating", "text", "created_at"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT r.id, r.user_id, g.external_id, r.rating, r.text, r.created_at
        FROM reviews r
        JOIN games g ON g.id = r.game_id
        ORDER BY r.id
    `)
	if err != nil {
		return fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id         int64
			userID     string
			externalID string
			rating     int
			text       sql.NullString
			createdAt  time.Time
		)
		if err := rows.Scan(&id, &userID, &externalID, &rating, &text, &createdAt); err != nil {
			return err
		}
		if err := w.Write([]string{
			strconv.FormatInt(id, 10),
			userID,
			externalID,
			strconv.Itoa(rating),
			text.String,
			createdAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

func exportLibrary(ctx context.Context, db *sql.DB, out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"user_id", "external_id", "status", "updated_at"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT l.user_id, g.external_id, l.status, l.updated_at
        FROM library_items l
        JOIN games g ON g.id = l.game_id
        ORDER BY l.user_id, l.updated_at DESC
    `)
	if err != nil {
		return fmt.Errorf("query library: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID     string
			externalID string
			status     string
			updatedAt  time.Time
		)
		if err := rows.Scan(&userID, &externalID, &status, &updatedAt); err != nil {
			return err
		}
		if err := w.Write([]string{userID, externalID, status, updatedAt.UTC().Format(time.RFC3339)}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

// exportRatings writes one row per reviewed game with its display rating.
func exportRatings(ctx context.Context, db *sql.DB, out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"external_id", "rating", "rating_count"}); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, `
        SELECT g.external_id, AVG(r.rating), COUNT(r.id)
        FROM games g
        JOIN reviews r ON r.game_id = g.id
        GROUP BY g.id
        ORDER BY g.external_id
    `)
	if err != nil {
		return fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			externalID string
			avg        sql.NullFloat64
			count      int
		)
		if err := rows.Scan(&externalID, &avg, &count); err != nil {
			return err
		}
		var raw *float64
		if avg.Valid {
			raw = &avg.Float64
		}
		display := ratings.ToDisplayRating(raw)
		if display == nil {
			continue
		}
		if err := w.Write([]string{
			externalID,
			strconv.FormatFloat(*display, 'f', 2, 64),
			strconv.Itoa(count),
		}); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}
