package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kkhinlin/bookhunt2/internal/handlers"
)

type RouterConfig struct {
	CatalogHandler        *handlers.CatalogHandler
	ReviewHandler         *handlers.ReviewHandler
	RecommendationHandler *handlers.RecommendationHandler
	ShelfHandler          *handlers.ShelfHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Catalog
		api.GET("/books", cfg.CatalogHandler.ListBooks)
		api.GET("/books/:id", cfg.CatalogHandler.GetBook)
		api.GET("/genres", cfg.CatalogHandler.ListGenres)
		api.GET("/authors/:id", cfg.CatalogHandler.GetAuthor)
		// Reviews
		api.POST("/reviews", cfg.ReviewHandler.AddReview)
		api.GET("/reviews/book/:id", cfg.ReviewHandler.ListReviewsForBook)
		// Recommendations
		api.GET("/recommend", cfg.RecommendationHandler.Recommend)
		api.POST("/feedback", cfg.RecommendationHandler.Feedback)
		// Shelves
		api.POST("/past_reads", cfg.ShelfHandler.AddPastRead)
		api.GET("/past_reads", cfg.ShelfHandler.ListPastReads)
		api.GET("/reading_list", cfg.ShelfHandler.ReadingList)
	}

	return router
}
