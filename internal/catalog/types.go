package catalog

import (
	"gameboxd/pkg/models"
)

// Tag is a taxonomy entry attached to a game (genre, developer,
// publisher or platform).
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Genre is identified by Slug; the provider may repeat a slug across pages.
type Genre = Tag

// Game is a catalog entry as the provider describes it. It is rebuilt on
// every request and never stored.
type Game struct {
	ID              models.ExternalID `json:"id"`
	Name            string            `json:"name"`
	Released        string            `json:"released,omitempty"`
	BackgroundImage string            `json:"background_image,omitempty"`
	Genres          []Tag             `json:"genres,omitempty"`
	Developers      []Tag             `json:"developers,omitempty"`
	Publishers      []Tag             `json:"publishers,omitempty"`
	Platforms       []Tag             `json:"platforms,omitempty"`
	Description     *string           `json:"description,omitempty"`
	Additions       []Game            `json:"additions,omitempty"`
}

// GamePage is one page of the provider's game listing. Next and Previous
// are page numbers, nil at either end.
type GamePage struct {
	Items    []Game `json:"items"`
	Count    int    `json:"count"`
	Next     *int   `json:"next"`
	Previous *int   `json:"previous"`
}

type GenrePage struct {
	Items []Genre
	Next  *int
}

// wire shapes

type wireTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type wirePlatform struct {
	Platform wireTag `json:"platform"`
}

type wireGame struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Released        string         `json:"released"`
	BackgroundImage string         `json:"background_image"`
	Genres          []wireTag      `json:"genres"`
	Developers      []wireTag      `json:"developers"`
	Publishers      []wireTag      `json:"publishers"`
	Platforms       []wirePlatform `json:"platforms"`
	Description     string         `json:"description"`
	DescriptionRaw  string         `json:"description_raw"`
}

type wirePage[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (w wireGame) toGame() Game {
	g := Game{
		ID:              models.ExternalIDFromInt(w.ID),
		Name:            w.Name,
		Released:        w.Released,
		BackgroundImage: w.BackgroundImage,
		Genres:          toTags(w.Genres),
		Developers:      toTags(w.Developers),
		Publishers:      toTags(w.Publishers),
		Description:     NormalizeDescription(w.Description, w.DescriptionRaw),
	}
	for _, p := range w.Platforms {
		g.Platforms = append(g.Platforms, Tag(p.Platform))
	}
	return g
}

func toTags(in []wireTag) []Tag {
	if len(in) == 0 {
		return nil
	}
	out := make([]Tag, 0, len(in))
	for _, t := range in {
		out = append(out, Tag(t))
	}
	return out
}

func toGames(in []wireGame) []Game {
	out := make([]Game, 0, len(in))
	for _, w := range in {
		out = append(out, w.toGame())
	}
	return out
}
