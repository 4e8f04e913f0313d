package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kkhinlin/bookhunt2/internal/services"
)

type ReviewHandler struct {
	svc services.ReviewService
}

func NewReviewHandler(svc services.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

type addReviewRequest struct {
	BookID  string `json:"book_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// POST /api/reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.BookID == "" {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("book_id is required"))
		return
	}

	review, err := h.svc.AddReview(c.Request.Context(), req.BookID, req.Rating, req.Comment)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "add_review_failed", err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GET /api/reviews/book/:id
func (h *ReviewHandler) ListReviewsForBook(c *gin.Context) {
	reviews, err := h.svc.ListReviewsForBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_reviews_failed", err)
		return
	}
	RespondOK(c, reviews)
}
