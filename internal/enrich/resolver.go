package enrich

import (
	"context"

	"go.uber.org/zap"

	"gameboxd/internal/catalog"
	"gameboxd/pkg/models"
)

type DetailFetcher interface {
	GetGame(ctx context.Context, id models.ExternalID) (*catalog.Game, error)
}

// Resolver turns stored lists of catalog ids into current game records.
// Each id is looked up on its own; an id the provider cannot serve is
// dropped instead of failing the list.
type Resolver struct {
	catalog DetailFetcher
	ratings RatingSource
	logger  *zap.Logger
}

func NewResolver(c DetailFetcher, r RatingSource, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{catalog: c, ratings: r, logger: logger.Named("resolver")}
}

// ResolveMany returns the records it could fetch, in input order, with
// ratings attached. Only a failure of the rating store is returned.
func (r *Resolver) ResolveMany(ctx context.Context, ids []models.ExternalID) ([]GameDetails, error) {
	outcomes := settleAll(ctx, len(ids), func(ctx context.Context, i int) (*catalog.Game, error) {
		return r.catalog.GetGame(ctx, ids[i])
	})

	items := make([]GameDetails, 0, len(ids))
	for i, o := range outcomes {
		if o.err != nil || o.val == nil {
			r.logger.Warn("dropping unresolved game", zap.String("external_id", string(ids[i])), zap.Error(o.err))
			continue
		}
		items = append(items, GameDetails{Game: *o.val})
	}

	if err := Enrich(ctx, r.ratings, pointers(items)); err != nil {
		return nil, err
	}
	return items, nil
}
