package main

import (
	"fmt"
	"os"

	"github.com/kkhinlin/bookhunt2/internal/db"
	"github.com/kkhinlin/bookhunt2/internal/handlers"
	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/repos"
	"github.com/kkhinlin/bookhunt2/internal/server"
	"github.com/kkhinlin/bookhunt2/internal/services"
	"github.com/kkhinlin/bookhunt2/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	bookRepo := repos.NewBookRepo(thePG, log)
	authorRepo := repos.NewAuthorRepo(thePG, log)
	genreRepo := repos.NewGenreRepo(thePG, log)
	reviewRepo := repos.NewReviewRepo(thePG, log)
	userBookRepo := repos.NewUserBookRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	embedder, err := services.NewOpenAIEmbedder(log)
	if err != nil {
		log.Error("Could not init OpenAIEmbedder", "error", err)
		os.Exit(1)
	}
	embedder, err = services.NewCachedEmbedder(log, embedder)
	if err != nil {
		log.Error("Could not init embedding cache", "error", err)
		os.Exit(1)
	}
	recommendationService := services.NewRecommendationService(log, embedder, bookRepo, userBookRepo)
	shelfService := services.NewShelfService(log, bookRepo, userBookRepo)
	catalogService := services.NewCatalogService(log, bookRepo, genreRepo, authorRepo)
	reviewService := services.NewReviewService(log, reviewRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	recommendationHandler := handlers.NewRecommendationHandler(log, recommendationService, shelfService)
	shelfHandler := handlers.NewShelfHandler(shelfService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		CatalogHandler:        catalogHandler,
		ReviewHandler:         reviewHandler,
		RecommendationHandler: recommendationHandler,
		ShelfHandler:          shelfHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
