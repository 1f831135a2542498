package ratings

import (
	"context"

	"gameboxd/pkg/models"
)

// Aggregate is the community rating of one catalog game, on the raw
// 0-10 review scale.
type Aggregate struct {
	AverageRaw *float64
	Count      int
}

// Store is the slice of local storage the aggregator reads.
type Store interface {
	FindByExternalIDs(ctx context.Context, ids []models.ExternalID) ([]models.Game, error)
	AggregateByGame(ctx context.Context, ids []models.GameID) ([]models.ReviewAggregate, error)
}

type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// RatingsFor looks up the rating of every id with one game query and one
// grouped review query. Ids without a local record, or without reviews,
// are absent from the result.
func (a *Aggregator) RatingsFor(ctx context.Context, ids []models.ExternalID) (map[models.ExternalID]Aggregate, error) {
	out := make(map[models.ExternalID]Aggregate)

	unique := dedupe(ids)
	if len(unique) == 0 {
		return out, nil
	}

	games, err := a.store.FindByExternalIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return out, nil
	}

	external := make(map[models.GameID]models.ExternalID, len(games))
	internal := make([]models.GameID, 0, len(games))
	for _, g := range games {
		external[g.ID] = g.ExternalID
		internal = append(internal, g.ID)
	}

	aggs, err := a.store.AggregateByGame(ctx, internal)
	if err != nil {
		return nil, err
	}
	for _, agg := range aggs {
		ext, ok := external[agg.GameID]
		if !ok || agg.Count == 0 {
			continue
		}
		out[ext] = Aggregate{AverageRaw: agg.AverageRaw, Count: agg.Count}
	}
	return out, nil
}

func dedupe(ids []models.ExternalID) []models.ExternalID {
	seen := make(map[models.ExternalID]struct{}, len(ids))
	out := make([]models.ExternalID, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
