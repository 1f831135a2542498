package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gameboxd/internal/auth"
	"gameboxd/internal/games"
	"gameboxd/internal/library"
	"gameboxd/internal/reviews"
)

const requestIDHeader = "X-Request-ID"

type routerDeps struct {
	DB      *sql.DB
	Logger  *zap.Logger
	Tokens  auth.TokenService
	Games   *games.Handler
	Reviews *reviews.Handler
	Library *library.Handler
}

func newRouter(d routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(d.Logger))
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := d.DB.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "db": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "db": "ok"})
	})

	public := router.Group("")
	d.Games.RegisterRoutes(public)
	d.Reviews.RegisterPublicRoutes(public)

	protected := router.Group("/users")
	protected.Use(auth.AuthMiddleware(d.Tokens))

	protected.GET("/me", func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		c.JSON(http.StatusOK, gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
		})
	})

	d.Reviews.RegisterProtectedRoutes(protected)
	d.Library.RegisterRoutes(protected)

	return router
}

// requestLogger tags each request with an id, echoed back to the caller,
// and logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
