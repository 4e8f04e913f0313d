package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/kkhinlin/bookhunt2/internal/clients/googlebooks"
	"github.com/kkhinlin/bookhunt2/internal/db"
	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/repos"
	"github.com/kkhinlin/bookhunt2/internal/services"
	"github.com/kkhinlin/bookhunt2/internal/utils"
)

// Fetches volumes from the Google Books API and loads them into the catalog.
func main() {
	_ = godotenv.Load()

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

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	bookRepo := repos.NewBookRepo(thePG, log)
	authorRepo := repos.NewAuthorRepo(thePG, log)
	genreRepo := repos.NewGenreRepo(thePG, log)

	client := googlebooks.NewClient(log)
	ingestion := services.NewIngestionService(log, bookRepo, authorRepo, genreRepo)

	query := utils.GetEnv("FETCH_QUERY", "fiction", log)
	maxResults := utils.GetEnvAsInt("FETCH_MAX_RESULTS", 1000, log)
	batchSize := utils.GetEnvAsInt("FETCH_BATCH_SIZE", 40, log)

	ctx := context.Background()

	log.Info("Fetching books from Google Books API...", "query", query, "max_results", maxResults)
	volumes, err := client.FetchVolumes(ctx, query, maxResults, batchSize)
	if err != nil {
		log.Error("Fetch failed", "error", err)
		os.Exit(1)
	}
	if len(volumes) == 0 {
		log.Warn("No books found")
		return
	}

	log.Info("Saving books to the database...", "fetched", len(volumes))
	created, err := ingestion.SaveVolumes(ctx, volumes)
	if err != nil {
		log.Error("Save failed", "error", err)
		os.Exit(1)
	}
	log.Info("Catalog ingestion complete", "created", created)
}
