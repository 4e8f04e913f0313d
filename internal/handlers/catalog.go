package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kkhinlin/bookhunt2/internal/services"
)

type CatalogHandler struct {
	svc services.CatalogService
}

func NewCatalogHandler(svc services.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// GET /api/books
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	books, err := h.svc.ListBooks(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_books_failed", err)
		return
	}
	RespondOK(c, books)
}

// GET /api/books/:id
func (h *CatalogHandler) GetBook(c *gin.Context) {
	book, err := h.svc.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "book_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "get_book_failed", err)
		return
	}
	RespondOK(c, book)
}

// GET /api/genres
func (h *CatalogHandler) ListGenres(c *gin.Context) {
	genres, err := h.svc.ListGenres(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_genres_failed", err)
		return
	}
	RespondOK(c, genres)
}

// GET /api/authors/:id
func (h *CatalogHandler) GetAuthor(c *gin.Context) {
	author, err := h.svc.GetAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "author_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "get_author_failed", err)
		return
	}
	RespondOK(c, author)
}
