package catalog

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	GenrePageSize = 40
	// MaxGenrePages bounds the walk in case the provider never stops
	// returning a next page.
	MaxGenrePages = 25
)

// genreCollation orders genre names for display.
var genreCollation = language.BrazilianPortuguese

type GenreSource interface {
	ListGenres(ctx context.Context, page, pageSize int) (*GenrePage, error)
}

// GenreResolver reads the whole genre taxonomy. Pages are fetched one
// after the other because each request depends on the previous next link.
type GenreResolver struct {
	Source GenreSource
}

func NewGenreResolver(src GenreSource) *GenreResolver {
	return &GenreResolver{Source: src}
}

// ListAll returns every genre, deduplicated by slug (the last one seen
// wins) and sorted by name.
func (r *GenreResolver) ListAll(ctx context.Context) ([]Genre, error) {
	var (
		order  []string
		bySlug = make(map[string]Genre)
	)

	page := 1
	for fetched := 0; fetched < MaxGenrePages; fetched++ {
		res, err := r.Source.ListGenres(ctx, page, GenrePageSize)
		if err != nil {
			return nil, err
		}

		for _, g := range res.Items {
			g.Name = strings.TrimSpace(g.Name)
			g.Slug = strings.TrimSpace(g.Slug)
			if g.Name == "" || g.Slug == "" {
				continue
			}
			if _, seen := bySlug[g.Slug]; !seen {
				order = append(order, g.Slug)
			}
			bySlug[g.Slug] = g
		}

		if res.Next == nil {
			break
		}
		page = *res.Next
	}

	out := make([]Genre, 0, len(order))
	for _, slug := range order {
		out = append(out, bySlug[slug])
	}

	col := collate.New(genreCollation)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out, nil
}
