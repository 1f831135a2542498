package library

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameboxd/internal/auth"
	"gameboxd/internal/catalog"
	"gameboxd/internal/enrich"
	"gameboxd/internal/games"
	"gameboxd/pkg/models"
)

// fakeResolver serves every id except those listed in missing.
type fakeResolver struct {
	missing map[models.ExternalID]bool
	err     error
	calls   [][]models.ExternalID
}

func (f *fakeResolver) ResolveMany(ctx context.Context, ids []models.ExternalID) ([]enrich.GameDetails, error) {
	f.calls = append(f.calls, ids)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]enrich.GameDetails, 0, len(ids))
	for _, id := range ids {
		if f.missing[id] {
			continue
		}
		out = append(out, enrich.GameDetails{Game: catalog.Game{ID: id, Name: "game " + string(id)}})
	}
	return out, nil
}

func newLibraryRouter(t *testing.T, res DetailResolver) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	tokens := auth.TokenService{Secret: []byte("test"), Duration: time.Hour}
	token, _, err := tokens.Sign("alice", "alice")
	require.NoError(t, err)

	r := gin.New()
	NewHandler(NewRepo(db), games.NewRepo(db), res, nil).RegisterRoutes(r.Group("/users", auth.AuthMiddleware(tokens)))
	return r, token
}

func send(r http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type listBody struct {
	Total int     `json:"total"`
	Items []Entry `json:"items"`
}

func TestLibraryListDropsUnresolved(t *testing.T) {
	res := &fakeResolver{missing: map[models.ExternalID]bool{"22": true}}
	r, token := newLibraryRouter(t, res)

	for _, id := range []string{"11", "22", "33"} {
		rec := send(r, http.MethodPost, "/users/library", token, `{"game_id":"`+id+`","status":"playing"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := send(r, http.MethodGet, "/users/library", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body listBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	require.Len(t, body.Items, 2)

	got := []models.ExternalID{body.Items[0].Game.ID, body.Items[1].Game.ID}
	assert.ElementsMatch(t, []models.ExternalID{"11", "33"}, got)
	require.Len(t, res.calls, 1)
	assert.Len(t, res.calls[0], 3)
}

func TestLibraryUpsertValidation(t *testing.T) {
	r, token := newLibraryRouter(t, &fakeResolver{})

	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodPost, "/users/library", token, `{"game_id":"11","status":"hoarding"}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(r, http.MethodPost, "/users/library", token, `{"status":"playing"}`).Code)

	rec := send(r, http.MethodPut, "/users/library/11", token, `{"status":"Wish List"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"wishlist"`)

	rec = send(r, http.MethodGet, "/users/library/11", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusOK, send(r, http.MethodDelete, "/users/library/11", token, "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodDelete, "/users/library/11", token, "").Code)
	assert.Equal(t, http.StatusNotFound, send(r, http.MethodGet, "/users/library/11", token, "").Code)
}

func TestLibraryListRatingStoreFailure(t *testing.T) {
	r, token := newLibraryRouter(t, &fakeResolver{err: errors.New("database is locked")})
	require.Equal(t, http.StatusOK, send(r, http.MethodPost, "/users/library", token, `{"game_id":"11","status":"playing"}`).Code)

	rec := send(r, http.MethodGet, "/users/library", token, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "locked")
}
