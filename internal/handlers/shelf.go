package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kkhinlin/bookhunt2/internal/services"
)

type ShelfHandler struct {
	svc services.ShelfService
}

func NewShelfHandler(svc services.ShelfService) *ShelfHandler {
	return &ShelfHandler{svc: svc}
}

type addPastReadRequest struct {
	BookTitle string `json:"book_title"`
	Opinion   string `json:"opinion"`
}

// POST /api/past_reads
func (h *ShelfHandler) AddPastRead(c *gin.Context) {
	var req addPastReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if req.BookTitle == "" {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("book_title is required"))
		return
	}

	created, err := h.svc.AddPastRead(c.Request.Context(), req.BookTitle, req.Opinion)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "add_past_read_failed", err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, gin.H{"message": "Past read added successfully"})
		return
	}
	RespondOK(c, gin.H{"message": "Book status and opinion updated successfully"})
}

// GET /api/past_reads?page=&per_page=
func (h *ShelfHandler) ListPastReads(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	result, err := h.svc.ListPastReads(c.Request.Context(), page, perPage)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_past_reads_failed", err)
		return
	}
	RespondOK(c, result)
}

// GET /api/reading_list
func (h *ShelfHandler) ReadingList(c *gin.Context) {
	entries, err := h.svc.ReadingList(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "reading_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"reading_list": entries})
}
