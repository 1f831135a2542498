package games

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gameboxd/internal/catalog"
	"gameboxd/internal/enrich"
	"gameboxd/pkg/models"
)

// CatalogService is the enriched catalog the handler serves from.
type CatalogService interface {
	ListGames(ctx context.Context, q catalog.ListQuery) (*enrich.Page[enrich.GameSummary], error)
	GamesByGenre(ctx context.Context, genre string, page, pageSize int) (*enrich.Page[enrich.GameSummary], error)
	SearchGames(ctx context.Context, q catalog.ListQuery) (*enrich.Page[enrich.GameDetails], error)
	GetGame(ctx context.Context, id models.ExternalID) (*enrich.GameDetails, error)
	Genres(ctx context.Context) ([]catalog.Genre, error)
}

type Handler struct {
	Service CatalogService
	Logger  *zap.Logger
}

func NewHandler(svc CatalogService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Service: svc, Logger: logger.Named("games-handler")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/games", h.list)                 // GET /games
	rg.GET("/games/search", h.search)        // GET /games/search?q=
	rg.GET("/games/:id", h.getByID)          // GET /games/:id
	rg.GET("/genres", h.genres)              // GET /genres
	rg.GET("/genres/:slug/games", h.byGenre) // GET /genres/:slug/games
}

func (h *Handler) list(c *gin.Context) {
	q := catalog.ListQuery{
		Page:     parseInt(c.Query("page"), 1),
		PageSize: parseInt(c.Query("page_size"), catalog.DefaultPageSize),
		Filters: catalog.Filters{
			Platform: strings.TrimSpace(c.Query("platform")),
			Genre:    strings.TrimSpace(c.Query("genre")),
			Dates:    parseDates(c.Query("dates")),
			Search:   strings.TrimSpace(c.Query("search")),
			Ordering: strings.TrimSpace(c.Query("ordering")),
		},
	}

	page, err := h.Service.ListGames(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err, "list failed")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q required"})
		return
	}

	q := catalog.ListQuery{
		Page:     parseInt(c.Query("page"), 1),
		PageSize: parseInt(c.Query("page_size"), catalog.DefaultPageSize),
		Filters:  catalog.Filters{Search: term},
	}
	page, err := h.Service.SearchGames(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err, "search failed")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := models.ParseExternalID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	g, err := h.Service.GetGame(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get failed")
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *Handler) genres(c *gin.Context) {
	items, err := h.Service.Genres(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list genres failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) byGenre(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "genre required"})
		return
	}

	page, err := h.Service.GamesByGenre(c.Request.Context(), slug,
		parseInt(c.Query("page"), 1),
		parseInt(c.Query("page_size"), catalog.DefaultPageSize))
	if err != nil {
		h.fail(c, err, "list failed")
		return
	}
	c.JSON(http.StatusOK, page)
}

// fail maps provider failures to 502 with the operation message and
// everything else to 500.
func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	if catalog.IsUpstream(err) {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	h.Logger.Error(fallback, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

// parseDates reads "from,to".
func parseDates(s string) *catalog.DateRange {
	from, to, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok || from == "" || to == "" {
		return nil
	}
	return &catalog.DateRange{From: strings.TrimSpace(from), To: strings.TrimSpace(to)}
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
