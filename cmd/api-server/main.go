package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gameboxd/internal/auth"
	"gameboxd/internal/catalog"
	"gameboxd/internal/enrich"
	"gameboxd/internal/games"
	"gameboxd/internal/library"
	"gameboxd/internal/ratings"
	"gameboxd/internal/reviews"
	"gameboxd/pkg/database"
	"gameboxd/pkg/utils"
)

func main() {
	configPath := flag.String("config", utils.DefaultConfigPath, "path to YAML config")
	flag.Parse()

	logger := utils.NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if cfg.Catalog.APIKey == "" {
		logger.Warn("catalog api key is empty; upstream calls will be rejected")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("open database", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("db migrate failed", zap.Error(err))
	}

	client := catalog.NewClient(catalog.Config{
		BaseURL:       cfg.Catalog.BaseURL,
		APIKey:        cfg.Catalog.APIKey,
		Locale:        cfg.Catalog.Locale,
		Timeout:       cfg.Catalog.Timeout,
		RatePerSecond: cfg.Catalog.RatePerSecond,
		Burst:         cfg.Catalog.Burst,
	}, logger)

	gameRepo := games.NewRepo(db)
	reviewRepo := reviews.NewRepo(db)
	libRepo := library.NewRepo(db)

	agg := ratings.NewAggregator(ratings.NewSQLStore(gameRepo, reviewRepo))
	svc := enrich.NewService(client, agg, catalog.NewGenreResolver(client), logger)
	resolver := enrich.NewResolver(client, agg, logger)

	tokens := auth.TokenService{
		Secret: []byte(cfg.Auth.JWTSecret),
		Issuer: cfg.Auth.JWTIssuer,
	}

	router := newRouter(routerDeps{
		DB:      db,
		Logger:  logger,
		Tokens:  tokens,
		Games:   games.NewHandler(svc, logger),
		Reviews: reviews.NewHandler(reviewRepo, gameRepo),
		Library: library.NewHandler(libRepo, gameRepo, resolver, logger),
	})

	httpSrv := &http.Server{
		Addr:              cfg.API.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API server listening", zap.String("addr", cfg.API.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
