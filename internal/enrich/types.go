package enrich

import (
	"gameboxd/internal/catalog"
	"gameboxd/internal/ratings"
	"gameboxd/pkg/models"
)

// CommunityRating is the locally computed rating attached to a catalog
// game. Both fields are nil when there is nothing to show, which is not
// the same as a zero rating.
type CommunityRating struct {
	Rating      *float64 `json:"rating,omitempty"`
	RatingCount *int     `json:"rating_count,omitempty"`
}

// SetCommunityRating stores agg on the display scale. A nil average
// leaves both fields unset.
func (c *CommunityRating) SetCommunityRating(agg ratings.Aggregate) {
	display := ratings.ToDisplayRating(agg.AverageRaw)
	if display == nil {
		return
	}
	count := agg.Count
	c.Rating = display
	c.RatingCount = &count
}

// GameSummary is a listing entry.
type GameSummary struct {
	catalog.Game
	CommunityRating
}

func (s *GameSummary) CatalogID() models.ExternalID { return s.ID }

// GameDetails is a full record, including additions where the caller
// asked for them.
type GameDetails struct {
	catalog.Game
	CommunityRating
}

func (d *GameDetails) CatalogID() models.ExternalID { return d.ID }

// Page is a page of results with the provider's paging metadata.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Count    int  `json:"count"`
	Next     *int `json:"next"`
	Previous *int `json:"previous"`
}

func pointers[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
