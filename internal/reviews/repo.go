package reviews

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"

	"gameboxd/pkg/models"
)

const tracerID = "reviews-repository"

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Create(ctx context.Context, userID string, gameID models.GameID, rating int, text string) (*models.Review, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO reviews (user_id, game_id, rating, text)
		VALUES (?, ?, ?, ?)
	`, userID, int64(gameID), rating, text)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return r.GetByID(ctx, id)
}

const selectReview = `
	SELECT r.id, r.user_id, r.game_id, g.external_id, r.rating, r.text, r.created_at
	FROM reviews r
	JOIN games g ON g.id = r.game_id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanReview(s scanner) (models.Review, error) {
	var review models.Review
	var text sql.NullString
	var ts time.Time
	err := s.Scan(&review.ID, &review.UserID, &review.GameID, &review.ExternalID, &review.Rating, &text, &ts)
	review.Text = text.String
	review.CreatedAt = ts
	return review, err
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	row := r.DB.QueryRowContext(ctx, selectReview+` WHERE r.id = ?`, id)

	review, err := scanReview(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	return &review, nil
}

// ListByExternalID lists the reviews of a catalog game, newest first.
func (r *Repo) ListByExternalID(ctx context.Context, externalID models.ExternalID, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, selectReview+`
		WHERE g.external_id = ?
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT ? OFFSET ?
	`, string(externalID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	out := make([]models.Review, 0, limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		out = append(out, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM reviews
		WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// AggregateByGame computes average and count per game in one grouped
// query. Games without reviews produce no row.
func (r *Repo) AggregateByGame(ctx context.Context, ids []models.GameID) ([]models.ReviewAggregate, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repo/AggregateByGame")
	defer span.End()

	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, int64(id))
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT game_id, AVG(rating), COUNT(*)
		FROM reviews
		WHERE game_id IN (`+strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")+`)
		GROUP BY game_id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate reviews: %w", err)
	}
	defer rows.Close()

	out := make([]models.ReviewAggregate, 0, len(ids))
	for rows.Next() {
		var (
			agg models.ReviewAggregate
			avg sql.NullFloat64
		)
		if err := rows.Scan(&agg.GameID, &avg, &agg.Count); err != nil {
			return nil, fmt.Errorf("scan aggregate row: %w", err)
		}
		if avg.Valid {
			v := avg.Float64
			agg.AverageRaw = &v
		}
		out = append(out, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
