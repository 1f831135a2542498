package enrich

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gameboxd/internal/catalog"
	"gameboxd/internal/ratings"
	"gameboxd/pkg/models"
)

// Catalog is the part of the catalog client the pipeline calls.
type Catalog interface {
	ListGames(ctx context.Context, q catalog.ListQuery) (*catalog.GamePage, error)
	GetGame(ctx context.Context, id models.ExternalID) (*catalog.Game, error)
	ListAdditions(ctx context.Context, id models.ExternalID) ([]catalog.Game, error)
}

// RatingSource looks up community ratings for a batch of catalog ids.
type RatingSource interface {
	RatingsFor(ctx context.Context, ids []models.ExternalID) (map[models.ExternalID]ratings.Aggregate, error)
}

type GenreLister interface {
	ListAll(ctx context.Context) ([]catalog.Genre, error)
}

// Rated is anything carrying a catalog id that can take a rating.
type Rated interface {
	CatalogID() models.ExternalID
	SetCommunityRating(ratings.Aggregate)
}

// Enrich attaches community ratings to items with a single RatingsFor
// call for the whole batch. Items without a rating are left untouched.
func Enrich[T Rated](ctx context.Context, src RatingSource, items []T) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]models.ExternalID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.CatalogID())
	}

	found, err := src.RatingsFor(ctx, ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		if agg, ok := found[it.CatalogID()]; ok {
			it.SetCommunityRating(agg)
		}
	}
	return nil
}

// Service serves enriched catalog data. Upstream failures fail the whole
// call; no partial page is returned.
type Service struct {
	catalog Catalog
	ratings RatingSource
	genres  GenreLister
	logger  *zap.Logger
}

func NewService(c Catalog, r RatingSource, g GenreLister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: c, ratings: r, genres: g, logger: logger.Named("enrich")}
}

// ListGames returns one page of summaries.
func (s *Service) ListGames(ctx context.Context, q catalog.ListQuery) (*Page[GameSummary], error) {
	res, err := s.catalog.ListGames(ctx, q)
	if err != nil {
		return nil, err
	}

	items := make([]GameSummary, 0, len(res.Items))
	for _, g := range res.Items {
		items = append(items, GameSummary{Game: g})
	}
	if err := Enrich(ctx, s.ratings, pointers(items)); err != nil {
		return nil, err
	}
	return &Page[GameSummary]{Items: items, Count: res.Count, Next: res.Next, Previous: res.Previous}, nil
}

// GamesByGenre lists games tagged with a genre id or slug.
func (s *Service) GamesByGenre(ctx context.Context, genre string, page, pageSize int) (*Page[GameSummary], error) {
	return s.ListGames(ctx, catalog.ListQuery{
		Page:     page,
		PageSize: pageSize,
		Filters:  catalog.Filters{Genre: genre},
	})
}

// SearchGames runs a search and expands every hit into its full record
// with additions. Hits are expanded FanOutWidth at a time and come back
// in the order the provider ranked them.
func (s *Service) SearchGames(ctx context.Context, q catalog.ListQuery) (*Page[GameDetails], error) {
	res, err := s.catalog.ListGames(ctx, q)
	if err != nil {
		return nil, err
	}

	items, err := fetchAll(ctx, len(res.Items), func(ctx context.Context, i int) (GameDetails, error) {
		return s.details(ctx, res.Items[i].ID)
	})
	if err != nil {
		return nil, err
	}
	if err := Enrich(ctx, s.ratings, pointers(items)); err != nil {
		return nil, err
	}
	return &Page[GameDetails]{Items: items, Count: res.Count, Next: res.Next, Previous: res.Previous}, nil
}

// GetGame returns one game with its additions and rating.
func (s *Service) GetGame(ctx context.Context, id models.ExternalID) (*GameDetails, error) {
	d, err := s.details(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Enrich(ctx, s.ratings, []*GameDetails{&d}); err != nil {
		return nil, err
	}
	return &d, nil
}

// Genres returns the full genre taxonomy.
func (s *Service) Genres(ctx context.Context) ([]catalog.Genre, error) {
	return s.genres.ListAll(ctx)
}

// details fetches a game and its additions concurrently.
func (s *Service) details(ctx context.Context, id models.ExternalID) (GameDetails, error) {
	var (
		g         errgroup.Group
		game      *catalog.Game
		additions []catalog.Game
	)
	g.Go(func() error {
		var err error
		game, err = s.catalog.GetGame(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		additions, err = s.catalog.ListAdditions(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return GameDetails{}, err
	}

	d := GameDetails{Game: *game}
	d.Additions = additions
	return d, nil
}
