package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 40
)

// DateRange limits results by release date. Both ends are YYYY-MM-DD.
type DateRange struct {
	From string
	To   string
}

// Filters narrow a game listing. Values are forwarded to the provider
// as-is; nothing here is interpreted locally.
type Filters struct {
	// Platform is a provider platform id, sent as "platforms".
	Platform string
	// Genre is a provider genre id or slug, sent as "genres".
	Genre string
	// Dates bounds the release date, sent as "dates=from,to".
	Dates *DateRange
	// Search is free text matched by the provider, sent as "search".
	Search string
	// Ordering is a provider sort key such as "-rating", sent as "ordering".
	Ordering string
}

type ListQuery struct {
	Page     int
	PageSize int
	Filters
}

func (q ListQuery) normalized() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

func (q ListQuery) values() url.Values {
	q = q.normalized()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("page_size", strconv.Itoa(q.PageSize))

	set := func(key, val string) {
		if val = strings.TrimSpace(val); val != "" {
			v.Set(key, val)
		}
	}
	set("platforms", q.Platform)
	set("genres", q.Genre)
	set("search", q.Search)
	set("ordering", q.Ordering)
	if q.Dates != nil && (q.Dates.From != "" || q.Dates.To != "") {
		v.Set("dates", q.Dates.From+","+q.Dates.To)
	}
	return v
}

// pageFromURL reads the page number out of a provider pagination link.
// The provider omits "page" on links to the first page.
func pageFromURL(link *string) *int {
	if link == nil || strings.TrimSpace(*link) == "" {
		return nil
	}
	u, err := url.Parse(*link)
	if err != nil {
		return nil
	}
	page := 1
	if raw := u.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil
		}
		page = n
	}
	return &page
}
