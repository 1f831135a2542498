package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gameboxd/pkg/models"
)

const tracerID = "catalog-client"

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	// Locale is a best-effort language hint, sent as "lang".
	Locale        string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

// Client talks to the external game catalog. It does not retry: a failed
// call is logged and reported as *Error.
type Client struct {
	BaseURL string
	APIKey  string
	Locale  string
	HTTP    *http.Client
	Limiter *rate.Limiter
	Logger  *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:  cfg.APIKey,
		Locale:  cfg.Locale,
		HTTP:    &http.Client{Timeout: timeout},
		Limiter: rate.NewLimiter(limit, burst),
		Logger:  logger.Named("catalog"),
	}
}

// ListGames fetches one page of the game listing.
func (c *Client) ListGames(ctx context.Context, q ListQuery) (*GamePage, error) {
	var page wirePage[wireGame]
	if err := c.get(ctx, OpListGames, "/games", q.values(), &page); err != nil {
		return nil, err
	}
	return &GamePage{
		Items:    toGames(page.Results),
		Count:    page.Count,
		Next:     pageFromURL(page.Next),
		Previous: pageFromURL(page.Previous),
	}, nil
}

// GetGame fetches the full record of a single game.
func (c *Client) GetGame(ctx context.Context, id models.ExternalID) (*Game, error) {
	var w wireGame
	if err := c.get(ctx, OpGetGame, "/games/"+url.PathEscape(string(id)), url.Values{}, &w); err != nil {
		return nil, err
	}
	g := w.toGame()
	return &g, nil
}

// ListAdditions fetches the DLC-like children of a game.
func (c *Client) ListAdditions(ctx context.Context, id models.ExternalID) ([]Game, error) {
	var page wirePage[wireGame]
	path := "/games/" + url.PathEscape(string(id)) + "/additions"
	if err := c.get(ctx, OpListAdditions, path, url.Values{}, &page); err != nil {
		return nil, err
	}
	return toGames(page.Results), nil
}

// ListGenres fetches one page of the genre taxonomy.
func (c *Client) ListGenres(ctx context.Context, page, pageSize int) (*GenrePage, error) {
	if page < 1 {
		page = 1
	}
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if pageSize > 0 {
		v.Set("page_size", strconv.Itoa(pageSize))
	}

	var w wirePage[wireTag]
	if err := c.get(ctx, OpListGenres, "/genres", v, &w); err != nil {
		return nil, err
	}
	return &GenrePage{Items: toTags(w.Results), Next: pageFromURL(w.Next)}, nil
}

func (c *Client) get(ctx context.Context, op, path string, q url.Values, out any) error {
	ctx, span := otel.Tracer(tracerID).Start(ctx, "Client/GET", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("url.path", path))

	fail := func(cause error) error {
		// the request URL carries the API key, so only the path is logged
		c.Logger.Error(op, zap.String("path", path), zap.Error(cause))
		span.RecordError(cause)
		span.SetStatus(codes.Error, op)
		return &Error{Op: op, Cause: cause}
	}

	if err := c.Limiter.Wait(ctx); err != nil {
		return fail(fmt.Errorf("rate limit wait: %w", err))
	}

	if c.APIKey != "" {
		q.Set("key", c.APIKey)
	}
	if c.Locale != "" {
		q.Set("lang", c.Locale)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fail(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		// *url.Error repeats the full URL, key included
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return fail(fmt.Errorf("do request: %w", err))
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fail(fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(fmt.Errorf("decode json: %w", err))
	}
	return nil
}
