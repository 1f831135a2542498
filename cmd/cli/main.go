package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"gameboxd/internal/catalog"
	"gameboxd/internal/enrich"
	"gameboxd/pkg/utils"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	logger = utils.NewLogger()
	defer func() { _ = logger.Sync() }()

	global := flag.NewFlagSet("gameboxd", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		logger.Fatal("parse flags", zap.Error(err))
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	rest := []string{}
	if len(args) > 1 {
		sub = args[1]
		rest = args[2:]
	}

	client := &http.Client{Timeout: 30 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(*tokenPath, sub, rest)
	case "games":
		handleGames(ctx, client, *baseURL, sub, rest)
	case "genres":
		handleGenres(ctx, client, *baseURL, args[1:])
	case "reviews":
		handleReviews(ctx, client, *baseURL, *tokenPath, sub, rest)
	case "library":
		handleLibrary(ctx, client, *baseURL, *tokenPath, sub, rest)
	default:
		printUsage()
		os.Exit(1)
	}
}

// handleAuth stores a token issued by the account service.
func handleAuth(tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		token := fs.String("with-token", "", "bearer token")
		_ = fs.Parse(args)
		if err := saveToken(tokenPath, *token); err != nil {
			logger.Fatal("save token", zap.Error(err))
		}
		fmt.Println("✅ token saved")
	case "logout":
		if err := clearToken(tokenPath); err != nil {
			logger.Fatal("logout failed", zap.Error(err))
		}
		fmt.Println("✅ logged out")
	default:
		logger.Fatal("usage: gameboxd auth <login|logout>")
	}
}

func handleGames(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("games list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		pageSize := fs.Int("page-size", catalog.DefaultPageSize, "page size")
		platform := fs.String("platform", "", "platform id")
		genre := fs.String("genre", "", "genre id or slug")
		dates := fs.String("dates", "", "release range as from,to (YYYY-MM-DD)")
		ordering := fs.String("ordering", "", "sort key, e.g. -rating")
		_ = fs.Parse(args)

		qv := pageValues(*page, *pageSize)
		setIf(qv, "platform", *platform)
		setIf(qv, "genre", *genre)
		setIf(qv, "dates", *dates)
		setIf(qv, "ordering", *ordering)

		var resp enrich.Page[enrich.GameSummary]
		if err := doJSON(ctx, client, http.MethodGet, endpoint(baseURL, "/games", qv), "", nil, &resp); err != nil {
			logger.Fatal("list failed", zap.Error(err))
		}
		printJSON(resp)
	case "search":
		fs := flag.NewFlagSet("games search", flag.ExitOnError)
		query := fs.String("q", "", "search query")
		page := fs.Int("page", 1, "page number")
		pageSize := fs.Int("page-size", catalog.DefaultPageSize, "page size")
		_ = fs.Parse(args)
		if *query == "" {
			logger.Fatal("q is required")
		}

		qv := pageValues(*page, *pageSize)
		qv.Set("q", *query)

		var resp enrich.Page[enrich.GameDetails]
		if err := doJSON(ctx, client, http.MethodGet, endpoint(baseURL, "/games/search", qv), "", nil, &resp); err != nil {
			logger.Fatal("search failed", zap.Error(err))
		}
		printJSON(resp)
	case "get":
		fs := flag.NewFlagSet("games get", flag.ExitOnError)
		id := fs.String("id", "", "catalog game id")
		_ = fs.Parse(args)
		if *id == "" {
			logger.Fatal("id is required")
		}

		var resp enrich.GameDetails
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/games/"+url.PathEscape(*id), "", nil, &resp); err != nil {
			logger.Fatal("get failed", zap.Error(err))
		}
		printJSON(resp)
	default:
		logger.Fatal("usage: gameboxd games <list|search|get>")
	}
}

func handleGenres(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("genres", flag.ExitOnError)
	games := fs.String("games", "", "list games of this genre slug instead")
	page := fs.Int("page", 1, "page number")
	_ = fs.Parse(args)

	if *games != "" {
		var resp enrich.Page[enrich.GameSummary]
		target := endpoint(baseURL, "/genres/"+url.PathEscape(*games)+"/games", pageValues(*page, catalog.DefaultPageSize))
		if err := doJSON(ctx, client, http.MethodGet, target, "", nil, &resp); err != nil {
			logger.Fatal("genre games failed", zap.Error(err))
		}
		printJSON(resp)
		return
	}

	var resp struct {
		Items []catalog.Genre `json:"items"`
	}
	if err := doJSON(ctx, client, http.MethodGet, baseURL+"/genres", "", nil, &resp); err != nil {
		logger.Fatal("genres failed", zap.Error(err))
	}
	for _, g := range resp.Items {
		fmt.Printf("%-24s %s\n", g.Slug, g.Name)
	}
}

func handleReviews(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "add":
		token := mustToken(tokenPath)
		fs := flag.NewFlagSet("reviews add", flag.ExitOnError)
		gameID := fs.String("game-id", "", "catalog game id")
		rating := fs.Int("rating", -1, "rating from 0 to 10")
		text := fs.String("text", "", "review text")
		_ = fs.Parse(args)
		if *gameID == "" || *rating < 0 {
			logger.Fatal("game-id and rating are required")
		}

		payload := map[string]any{"game_id": *gameID, "rating": *rating, "text": *text}
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/users/reviews", token, payload, &resp); err != nil {
			logger.Fatal("add failed", zap.Error(err))
		}
		printJSON(resp)
	case "list":
		fs := flag.NewFlagSet("reviews list", flag.ExitOnError)
		gameID := fs.String("game-id", "", "catalog game id")
		_ = fs.Parse(args)
		if *gameID == "" {
			logger.Fatal("game-id is required")
		}

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/games/"+url.PathEscape(*gameID)+"/reviews", "", nil, &resp); err != nil {
			logger.Fatal("list failed", zap.Error(err))
		}
		printJSON(resp)
	default:
		logger.Fatal("usage: gameboxd reviews <add|list>")
	}
}

func handleLibrary(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	switch sub {
	case "add":
		fs := flag.NewFlagSet("library add", flag.ExitOnError)
		gameID := fs.String("game-id", "", "catalog game id")
		status := fs.String("status", "playing", "playing|completed|wishlist|dropped")
		_ = fs.Parse(args)
		if *gameID == "" {
			logger.Fatal("game-id is required")
		}

		payload := map[string]any{"game_id": *gameID, "status": *status}
		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/users/library", token, payload, &resp); err != nil {
			logger.Fatal("add failed", zap.Error(err))
		}
		printJSON(resp)
	case "remove":
		fs := flag.NewFlagSet("library remove", flag.ExitOnError)
		gameID := fs.String("game-id", "", "catalog game id")
		_ = fs.Parse(args)
		if *gameID == "" {
			logger.Fatal("game-id is required")
		}

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodDelete, baseURL+"/users/library/"+url.PathEscape(*gameID), token, nil, &resp); err != nil {
			logger.Fatal("remove failed", zap.Error(err))
		}
		printJSON(resp)
	case "list":
		fs := flag.NewFlagSet("library list", flag.ExitOnError)
		status := fs.String("status", "", "status filter")
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "offset")
		_ = fs.Parse(args)

		qv := url.Values{}
		setIf(qv, "status", *status)
		qv.Set("limit", strconv.Itoa(*limit))
		qv.Set("offset", strconv.Itoa(*offset))

		var resp map[string]any
		if err := doJSON(ctx, client, http.MethodGet, endpoint(baseURL, "/users/library", qv), token, nil, &resp); err != nil {
			logger.Fatal("list failed", zap.Error(err))
		}
		printJSON(resp)
	default:
		logger.Fatal("usage: gameboxd library <add|remove|list>")
	}
}

func printUsage() {
	fmt.Println("gameboxd <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|logout")
	fmt.Println("  games list|search|get")
	fmt.Println("  genres [-games slug]")
	fmt.Println("  reviews add|list")
	fmt.Println("  library add|remove|list")
}
