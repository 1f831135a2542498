package games

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"

	"gameboxd/pkg/models"
)

const tracerID = "games-repository"

// Repo stores the local game records that tie reviews and library
// entries to catalog ids.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// GetOrCreate returns the record for externalID, inserting it first when
// missing. The UNIQUE constraint on external_id makes concurrent callers
// converge on one row.
func (r *Repo) GetOrCreate(ctx context.Context, externalID models.ExternalID) (*models.Game, error) {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repo/GetOrCreate")
	defer span.End()

	if _, err := r.DB.ExecContext(ctx, `
		INSERT INTO games (external_id)
		VALUES (?)
		ON CONFLICT(external_id) DO NOTHING
	`, string(externalID)); err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}

	g, err := r.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, fmt.Errorf("game %s missing after insert", externalID)
	}
	return g, nil
}

func (r *Repo) GetByExternalID(ctx context.Context, externalID models.ExternalID) (*models.Game, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, external_id, created_at
		FROM games
		WHERE external_id = ?
	`, string(externalID))

	var g models.Game
	if err := row.Scan(&g.ID, &g.ExternalID, &g.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan game: %w", err)
	}
	return &g, nil
}

// FindByExternalIDs loads every known record among ids in one query.
// Unknown ids are simply not returned.
func (r *Repo) FindByExternalIDs(ctx context.Context, ids []models.ExternalID) ([]models.Game, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Repo/FindByExternalIDs")
	defer span.End()

	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, string(id))
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, external_id, created_at
		FROM games
		WHERE external_id IN (`+placeholders(len(ids))+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("find games: %w", err)
	}
	defer rows.Close()

	out := make([]models.Game, 0, len(ids))
	for rows.Next() {
		var g models.Game
		if err := rows.Scan(&g.ID, &g.ExternalID, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
