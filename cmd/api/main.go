package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/user/travel-deals-service/internal/adapter/chromedp_browser"
	"github.com/user/travel-deals-service/internal/adapter/gemini"
	"github.com/user/travel-deals-service/internal/adapter/httpfetch"
	"github.com/user/travel-deals-service/internal/adapter/memory"
	redis_adapter "github.com/user/travel-deals-service/internal/adapter/redis"
	"github.com/user/travel-deals-service/internal/adapter/serpapi"
	"github.com/user/travel-deals-service/internal/delivery/http/handler"
	"github.com/user/travel-deals-service/internal/delivery/http/router"
	"github.com/user/travel-deals-service/internal/repository"
	"github.com/user/travel-deals-service/internal/usecase"
	"github.com/user/travel-deals-service/pkg/config"
	"github.com/user/travel-deals-service/pkg/logger"
)

// A price-grid run waits on several randomized pauses plus page loads.
const requestTimeout = 5 * time.Minute

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Unable to load configuration", "error", err)
		os.Exit(1)
	}

	// --- Logger ---
	logLevel := logger.ParseLevel(cfg.LogLevel)
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Trip cache ---
	var tripCache repository.TripCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			slog.Error("Unable to connect to Redis", "error", err)
			os.Exit(1)
		}
		slog.Info("Redis connection established", "addr", cfg.RedisAddr)
		tripCache = redis_adapter.NewTripCache(rdb, cfg.TripCacheTTL())
	} else {
		slog.Info("REDIS_ADDR not set, using in-memory trip cache")
		tripCache = memory.NewTripCache()
	}

	// --- Adapters ---
	fetcher := httpfetch.NewFetcher(httpfetch.Options{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.HTTPTimeout(),
		AntiBot:   cfg.AntiBotTransport,
	})
	browser := chromedp_browser.NewChromedpBrowser(chromedp_browser.Options{
		Headless:        cfg.BrowserHeadless,
		UserAgent:       cfg.UserAgent,
		PageLoadTimeout: cfg.PageLoadTimeout(),
	})
	defer browser.Close()

	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, destination recommendations will fall back to the default")
	}
	if cfg.SerpAPIKey == "" {
		slog.Warn("SERPAPI_KEY not set, flight and hotel offers will be empty")
	}
	generator := gemini.NewClient(gemini.DefaultBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.HTTPTimeout())
	offers := serpapi.NewClient(serpapi.DefaultBaseURL, cfg.SerpAPIKey, cfg.HTTPTimeout())

	// --- Use Cases ---
	dealScraper := usecase.NewDealScraper(fetcher, cfg.DealDetailDelay())
	priceGrid := usecase.NewPriceGridScraper(browser, usecase.PriceGridOptions{
		UserAgent:     cfg.UserAgent,
		ToggleWait:    cfg.ToggleWait(),
		MaxRetries:    cfg.PriceMaxRetries,
		DebugHTMLPath: cfg.DebugHTMLPath,
		Pauses:        usecase.DefaultGridPauses,
	})
	tripPlanner := usecase.NewTripPlanner(dealScraper, generator, offers, tripCache, usecase.TripPlannerOptions{
		DealsURL:       cfg.DealsURL,
		OriginAirport:  cfg.OriginAirport,
		OriginKeywords: cfg.OriginKeywords(),
	})

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(dealScraper, priceGrid, tripPlanner, cfg.DealsURL)
	httpRouter := router.New(apiHandler, requestTimeout)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: requestTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
