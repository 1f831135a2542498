package library

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gameboxd/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Upsert inserts or updates a user's library item
func (r *Repo) Upsert(ctx context.Context, item models.LibraryItem) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO library_items (user_id, game_id, status, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, game_id) DO UPDATE SET
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP
	`, item.UserID, int64(item.GameID), item.Status)
	if err != nil {
		return fmt.Errorf("upsert library item: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID string, externalID models.ExternalID) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM library_items
		WHERE user_id = ?
		  AND game_id = (SELECT id FROM games WHERE external_id = ?)
	`, userID, string(externalID))
	if err != nil {
		return false, fmt.Errorf("delete library item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

const selectItem = `
	SELECT l.user_id, l.game_id, g.external_id, l.status, l.updated_at
	FROM library_items l
	JOIN games g ON g.id = l.game_id
`

// List returns one page of a user's library, most recently touched first,
// and the total number of matching items.
func (r *Repo) List(ctx context.Context, userID string, status string, limit, offset int) ([]models.LibraryItem, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := ` WHERE l.user_id = ?`
	args := []any{userID}
	if status != "" {
		where += ` AND l.status = ?`
		args = append(args, status)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM library_items l`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count library: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, selectItem+where+`
		ORDER BY l.updated_at DESC, l.game_id DESC
		LIMIT ? OFFSET ?
	`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list library: %w", err)
	}
	defer rows.Close()

	out := make([]models.LibraryItem, 0, limit)
	for rows.Next() {
		var it models.LibraryItem
		var updated time.Time

		if err := rows.Scan(&it.UserID, &it.GameID, &it.ExternalID, &it.Status, &updated); err != nil {
			return nil, 0, fmt.Errorf("scan library row: %w", err)
		}
		it.UpdatedAt = updated
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}

	return out, total, nil
}

func (r *Repo) Get(ctx context.Context, userID string, externalID models.ExternalID) (*models.LibraryItem, error) {
	row := r.DB.QueryRowContext(ctx, selectItem+`
		WHERE l.user_id = ? AND g.external_id = ?
	`, userID, string(externalID))

	var it models.LibraryItem
	var updated time.Time
	if err := row.Scan(&it.UserID, &it.GameID, &it.ExternalID, &it.Status, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get library item: %w", err)
	}
	it.UpdatedAt = updated
	return &it, nil
}
