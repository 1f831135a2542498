package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gameboxd/internal/auth"
	"gameboxd/internal/catalog"
	"gameboxd/internal/enrich"
	"gameboxd/internal/games"
	"gameboxd/internal/library"
	"gameboxd/internal/ratings"
	"gameboxd/internal/reviews"
	"gameboxd/pkg/database"
)

func testServer(t *testing.T, upstream http.HandlerFunc) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	db, err := database.Open(database.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	client := catalog.NewClient(catalog.Config{BaseURL: srv.URL, APIKey: "secret-key", Locale: "pt"}, logger)

	gameRepo := games.NewRepo(db)
	reviewRepo := reviews.NewRepo(db)
	agg := ratings.NewAggregator(ratings.NewSQLStore(gameRepo, reviewRepo))

	router := newRouter(routerDeps{
		DB:      db,
		Logger:  logger,
		Tokens:  auth.TokenService{Secret: []byte("test"), Duration: time.Hour},
		Games:   games.NewHandler(enrich.NewService(client, agg, catalog.NewGenreResolver(client), logger), logger),
		Reviews: reviews.NewHandler(reviewRepo, gameRepo),
		Library: library.NewHandler(library.NewRepo(db), gameRepo, enrich.NewResolver(client, agg, logger), logger),
	})
	return router, logs
}

func get(r http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndReady(t *testing.T) {
	r, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := get(r, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(r, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready","db":"ok"}`, rec.Body.String())
}

func TestRequestIDIsEchoedAndLogged(t *testing.T) {
	r, logs := testServer(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := get(r, "/health", http.Header{requestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))

	// header names are case-insensitive on the wire
	rec = get(r, "/health", http.Header{"x-request-id": {"lower-1"}})
	assert.Equal(t, "lower-1", rec.Header().Get(requestIDHeader))

	rec = get(r, "/health", nil)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	entries := logs.FilterMessage("request").FilterField(zap.String("request_id", "abc-123")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/health", entries[0].ContextMap()["path"])
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	r, logs := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := get(r, "/games", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"failed to fetch games"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret-key")
	for _, e := range logs.All() {
		for _, v := range e.ContextMap() {
			if s, ok := v.(string); ok {
				assert.NotContains(t, s, "secret-key")
			}
		}
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	r, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {})
	assert.Equal(t, http.StatusUnauthorized, get(r, "/users/library", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/users/me", nil).Code)
}
