package main

import (
	"flag"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gameboxd/pkg/utils"
)

// catalog-mirror serves a fixture catalog in the provider's wire format so
// the API server can run offline. Point catalog.base_url at it.
func main() {
	var (
		addr     = flag.String("addr", ":9000", "listen address")
		dataPath = flag.String("data", "data/catalog.json", "fixture catalog path")
		key      = flag.String("key", "", "API key to require; empty accepts any")
	)
	flag.Parse()

	logger := utils.NewLogger()
	defer func() { _ = logger.Sync() }()

	m, err := LoadMirror(*dataPath, *key)
	if err != nil {
		logger.Fatal("load mirror", zap.String("path", *dataPath), zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	m.RegisterRoutes(router)

	logger.Info("catalog-mirror listening", zap.String("addr", *addr), zap.Int("games", len(m.games)))
	if err := router.Run(*addr); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}
