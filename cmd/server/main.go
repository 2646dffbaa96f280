package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/config"
	"github.com/DecafCoding/TargetBrowse-sub004/internal/db"
	"github.com/DecafCoding/TargetBrowse-sub004/internal/handler"
	"github.com/DecafCoding/TargetBrowse-sub004/internal/middleware"
	"github.com/DecafCoding/TargetBrowse-sub004/internal/repository"
	"github.com/DecafCoding/TargetBrowse-sub004/internal/router"
	"github.com/DecafCoding/TargetBrowse-sub004/internal/service"
	"github.com/DecafCoding/TargetBrowse-sub004/internal/youtube"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "suggestion-api")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)

	// Repositories (read-only providers + the suggestion store)
	topicRepo := repository.NewTopicRepo(pool)
	channelRepo := repository.NewChannelRepo(pool)
	ratingRepo := repository.NewRatingRepo(pool)
	suggestionRepo := repository.NewSuggestionRepo(pool)

	// Engine composition: explicit constructors, no runtime lookup
	searchClient := youtube.NewClient(cfg.YouTubeAPIKey, cfg.YouTubeQPS)
	scorer := service.NewScorerService()
	ratingIndex := service.NewRatingIndexService(ratingRepo)
	fetcher := service.NewFetcherService(searchClient, cfg.SuggestionWorkers, cfg.SuggestionMaxResults, cfg.SuggestionLookbackDays)
	aggregator := service.NewAggregatorService(scorer)
	suggestSvc := service.NewSuggestService(topicRepo, channelRepo, ratingIndex, fetcher, aggregator, suggestionRepo, cache)

	app := fiber.New(fiber.Config{
		AppName:      "TargetBrowse Suggestions",
		ServerHeader: "TargetBrowse",
	})

	router.Setup(app, &router.Handlers{
		Suggest: handler.NewSuggestHandler(suggestSvc),
		Health:  handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	log.Printf("suggestion backend starting on :%s (env=%s, workers=%d)", cfg.Port, cfg.Environment, cfg.SuggestionWorkers)
	log.Fatal(app.Listen(":" + cfg.Port))
}
