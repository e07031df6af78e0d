package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/campusbeat/events-mcp/app/api"
	"github.com/campusbeat/events-mcp/app/cfg"
	"github.com/campusbeat/events-mcp/app/feed"
	"github.com/campusbeat/events-mcp/app/query"
	"github.com/campusbeat/events-mcp/app/timeparse"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	// Stdout belongs to the MCP transport; logs go to stderr.
	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting campus events server", "version", appCfg.Version, "feed_url", appCfg.FeedURL)

	resolver, err := timeparse.NewResolver(appCfg.Timezone)
	if err != nil {
		slog.Error("Failed to initialize timezone", "error", err)
		os.Exit(1)
	}

	fetcher := feed.NewHTTPFetcher(appCfg.FeedURL, appCfg.UserAgent,
		time.Duration(appCfg.FetchTimeout)*time.Second)
	cache := feed.NewCache(fetcher, time.Duration(appCfg.RefreshInterval)*time.Second)
	engine := query.NewEngine(cache, resolver)
	service := api.NewService(engine)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional HTTP surface alongside the MCP stdio transport.
	var httpServer *http.Server
	if appCfg.Port != "" {
		handler := api.NewHandler(service, cache, appCfg.Version)
		httpServer = &http.Server{
			Addr:         ":" + appCfg.Port,
			Handler:      api.NewServer(handler),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}
		go func() {
			slog.Info("Starting HTTP server", "port", appCfg.Port)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("HTTP server error", "error", err)
			}
		}()
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "campus-events",
		Version: appCfg.Version,
	}, nil)
	api.RegisterMCP(mcpServer, service)

	slog.Info("MCP server listening on stdio")
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		slog.Error("MCP server error", "error", err)
	}

	if httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}

	slog.Info("Server shutdown complete")
}
