package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 40
)

// fixture is the on-disk catalog. Records are served verbatim, so any
// field the real provider sends can be added to the file.
type fixture struct {
	Games     []json.RawMessage            `json:"games"`
	Additions map[string][]json.RawMessage `json:"additions"`
	Genres    []json.RawMessage            `json:"genres"`
}

type tag struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
}

// indexed holds the fields the mirror filters and sorts on.
type indexed struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Released  string `json:"released"`
	Genres    []tag  `json:"genres"`
	Platforms []struct {
		Platform tag `json:"platform"`
	} `json:"platforms"`
	raw json.RawMessage
}

type Mirror struct {
	key       string
	games     []indexed
	byID      map[int64]json.RawMessage
	additions map[string][]json.RawMessage
	genres    []json.RawMessage
}

func LoadMirror(path, key string) (*Mirror, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f fixture
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return NewMirror(f, key)
}

func NewMirror(f fixture, key string) (*Mirror, error) {
	m := &Mirror{
		key:       key,
		byID:      make(map[int64]json.RawMessage, len(f.Games)),
		additions: f.Additions,
		genres:    f.Genres,
	}
	for i, raw := range f.Games {
		var g indexed
		if err := json.Unmarshal(raw, &g); err != nil {
			return nil, fmt.Errorf("decode game %d: %w", i, err)
		}
		g.raw = raw
		m.games = append(m.games, g)
		m.byID[g.ID] = raw
	}
	return m, nil
}

func (m *Mirror) RegisterRoutes(r gin.IRouter) {
	r.Use(m.requireKey)
	r.GET("/games", m.listGames)
	r.GET("/games/:id", m.getGame)
	r.GET("/games/:id/additions", m.listAdditions)
	r.GET("/genres", m.listGenres)
}

func (m *Mirror) requireKey(c *gin.Context) {
	if m.key != "" && c.Query("key") != m.key {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "The key parameter is not provided"})
		return
	}
	c.Next()
}

func (m *Mirror) listGames(c *gin.Context) {
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	genres := splitList(c.Query("genres"))
	platforms := splitList(c.Query("platforms"))
	from, to, _ := strings.Cut(c.Query("dates"), ",")

	var hits []indexed
	for _, g := range m.games {
		if search != "" && !strings.Contains(strings.ToLower(g.Name), search) {
			continue
		}
		if len(genres) > 0 && !anyTag(g.Genres, genres) {
			continue
		}
		if len(platforms) > 0 {
			ts := make([]tag, 0, len(g.Platforms))
			for _, p := range g.Platforms {
				ts = append(ts, p.Platform)
			}
			if !anyTag(ts, platforms) {
				continue
			}
		}
		if from != "" && (g.Released == "" || g.Released < from) {
			continue
		}
		if to != "" && (g.Released == "" || g.Released > to) {
			continue
		}
		hits = append(hits, g)
	}
	order(hits, c.Query("ordering"))

	raws := make([]json.RawMessage, 0, len(hits))
	for _, g := range hits {
		raws = append(raws, g.raw)
	}
	writePage(c, raws)
}

func (m *Mirror) getGame(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	raw, ok := m.byID[id]
	if err != nil || !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (m *Mirror) listAdditions(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if _, ok := m.byID[id]; err != nil || !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	writePage(c, m.additions[c.Param("id")])
}

func (m *Mirror) listGenres(c *gin.Context) {
	writePage(c, m.genres)
}

type page struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

// writePage slices items by page and page_size and links neighbours with
// absolute URLs, as the provider does.
func writePage(c *gin.Context, items []json.RawMessage) {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil || n < 1 {
		n = 1
	}
	size, err := strconv.Atoi(c.Query("page_size"))
	if err != nil || size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	start := (n - 1) * size
	if start > len(items) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Invalid page."})
		return
	}
	end := min(start+size, len(items))

	out := page{Count: len(items), Results: items[start:end]}
	if out.Results == nil {
		out.Results = []json.RawMessage{}
	}
	if end < len(items) {
		out.Next = pageLink(c.Request, n+1)
	}
	if n > 1 {
		out.Previous = pageLink(c.Request, n-1)
	}
	c.JSON(http.StatusOK, out)
}

func pageLink(r *http.Request, n int) *string {
	u := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path}
	q := r.URL.Query()
	if n == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(n))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

func order(games []indexed, key string) {
	desc := strings.HasPrefix(key, "-")
	var less func(a, b indexed) bool
	switch strings.TrimPrefix(key, "-") {
	case "name":
		less = func(a, b indexed) bool { return a.Name < b.Name }
	case "released":
		less = func(a, b indexed) bool { return a.Released < b.Released }
	default:
		return
	}
	sort.SliceStable(games, func(i, j int) bool {
		if desc {
			return less(games[j], games[i])
		}
		return less(games[i], games[j])
	})
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func anyTag(tags []tag, wanted []string) bool {
	for _, t := range tags {
		for _, w := range wanted {
			if t.Slug == w || strconv.FormatInt(t.ID, 10) == w {
				return true
			}
		}
	}
	return false
}
