package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/services"
	"github.com/kkhinlin/bookhunt2/internal/types"
)

type RecommendationHandler struct {
	log      *logger.Logger
	recSvc   services.RecommendationService
	shelfSvc services.ShelfService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService, shelfSvc services.ShelfService) *RecommendationHandler {
	return &RecommendationHandler{
		log:      log.With("handler", "RecommendationHandler"),
		recSvc:   recSvc,
		shelfSvc: shelfSvc,
	}
}

// GET /api/recommend?query=...&genre=...
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	genre := c.Query("genre")

	if query == "" {
		RespondError(c, http.StatusBadRequest, "missing_query", fmt.Errorf("query parameter is required"))
		return
	}

	books, err := h.recSvc.Recommend(c.Request.Context(), query, genre, 1)
	if err != nil {
		if errors.Is(err, services.ErrEmbeddingUnavailable) {
			RespondError(c, http.StatusBadGateway, "embedding_unavailable", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "recommend_failed", err)
		return
	}
	if len(books) == 0 {
		RespondError(c, http.StatusNotFound, "no_recommendations", fmt.Errorf("no recommendations found"))
		return
	}

	RespondOK(c, books)
}

type feedbackRequest struct {
	BookID   string `json:"book_id"`
	Feedback string `json:"feedback"`
}

// POST /api/feedback
//
// Recording the feedback and seeding the reading list are two separate
// state changes: callers may record feedback without touching the list.
func (h *RecommendationHandler) Feedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.BookID == "" || req.Feedback == "" {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("book_id and feedback are required"))
		return
	}

	ctx := c.Request.Context()
	if err := h.recSvc.RecordFeedback(ctx, req.BookID, req.Feedback); err != nil {
		RespondError(c, http.StatusInternalServerError, "record_feedback_failed", err)
		return
	}

	if req.Feedback == types.FeedbackAccept {
		if err := h.shelfSvc.AddToReadingList(ctx, req.BookID); err != nil {
			RespondError(c, http.StatusInternalServerError, "reading_list_failed", err)
			return
		}
	}

	RespondOK(c, gin.H{"message": "Feedback recorded successfully"})
}
