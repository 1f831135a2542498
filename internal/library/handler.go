package library

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gameboxd/internal/auth"
	"gameboxd/internal/enrich"
	"gameboxd/pkg/models"
)

type GameRecords interface {
	GetOrCreate(ctx context.Context, externalID models.ExternalID) (*models.Game, error)
}

// DetailResolver fetches current catalog records for stored ids.
type DetailResolver interface {
	ResolveMany(ctx context.Context, ids []models.ExternalID) ([]enrich.GameDetails, error)
}

type Handler struct {
	Repo     *Repo
	Games    GameRecords
	Resolver DetailResolver
	Logger   *zap.Logger
}

func NewHandler(repo *Repo, games GameRecords, resolver DetailResolver, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Repo: repo, Games: games, Resolver: resolver, Logger: logger.Named("library-handler")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/library", h.list)
	rg.POST("/library", h.addOrUpdate)
	rg.PUT("/library/:game_id", h.addOrUpdate)
	rg.DELETE("/library/:game_id", h.remove)
	rg.GET("/library/:game_id", h.getOne)
}

type upsertReq struct {
	GameID models.ExternalID `json:"game_id"` // required for POST
	Status string            `json:"status"`
}

// Entry is a library item with the game's current catalog record.
type Entry struct {
	Status    string             `json:"status"`
	UpdatedAt time.Time          `json:"updated_at"`
	Game      enrich.GameDetails `json:"game"`
}

func (h *Handler) addOrUpdate(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	raw := strings.TrimSpace(string(req.GameID))
	if raw == "" {
		raw = strings.TrimSpace(c.Param("game_id"))
	}
	ext, ok := models.ParseExternalID(raw)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id required"})
		return
	}

	status := normalizeStatus(req.Status)
	if status == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "status must be one of: playing, completed, wishlist, dropped",
		})
		return
	}

	game, err := h.Games.GetOrCreate(c.Request.Context(), ext)
	if err != nil {
		h.Logger.Error("get or create game", zap.String("external_id", string(ext)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	item := models.LibraryItem{UserID: claims.UserID, GameID: game.ID, Status: status}
	if err := h.Repo.Upsert(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	saved, err := h.Repo.Get(c.Request.Context(), claims.UserID, ext)
	if err != nil || saved == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch saved failed"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// list pages through the stored library and resolves each entry against
// the catalog. Entries the catalog cannot serve are left out of items but
// still counted in total.
func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		status = normalizeStatus(status)
		if status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
	}

	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)

	stored, total, err := h.Repo.List(c.Request.Context(), claims.UserID, status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	ids := make([]models.ExternalID, 0, len(stored))
	for _, it := range stored {
		ids = append(ids, it.ExternalID)
	}
	resolved, err := h.Resolver.ResolveMany(c.Request.Context(), ids)
	if err != nil {
		h.Logger.Error("resolve library", zap.String("user_id", claims.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	byID := make(map[models.ExternalID]enrich.GameDetails, len(resolved))
	for _, g := range resolved {
		byID[g.ID] = g
	}
	items := make([]Entry, 0, len(resolved))
	for _, it := range stored {
		g, ok := byID[it.ExternalID]
		if !ok {
			continue
		}
		items = append(items, Entry{Status: it.Status, UpdatedAt: it.UpdatedAt, Game: g})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ext, ok := models.ParseExternalID(c.Param("game_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id required"})
		return
	}

	deleted, err := h.Repo.Delete(c.Request.Context(), claims.UserID, ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *Handler) getOne(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ext, ok := models.ParseExternalID(c.Param("game_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id required"})
		return
	}

	it, err := h.Repo.Get(c.Request.Context(), claims.UserID, ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if it == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, it)
}

func normalizeStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "playing":
		return "playing"
	case "completed", "finished":
		return "completed"
	case "wish list", "wish_list", "wishlist":
		return "wishlist"
	case "dropped", "abandoned":
		return "dropped"
	default:
		return ""
	}
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
