package ratings

import (
	"context"

	"gameboxd/pkg/models"
)

type gameFinder interface {
	FindByExternalIDs(ctx context.Context, ids []models.ExternalID) ([]models.Game, error)
}

type reviewAggregator interface {
	AggregateByGame(ctx context.Context, ids []models.GameID) ([]models.ReviewAggregate, error)
}

// SQLStore joins the games and reviews repositories into a Store.
type SQLStore struct {
	gameFinder
	reviewAggregator
}

func NewSQLStore(games gameFinder, reviews reviewAggregator) *SQLStore {
	return &SQLStore{gameFinder: games, reviewAggregator: reviews}
}
