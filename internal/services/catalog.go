package services

import (
	"context"

	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/repos"
	"github.com/kkhinlin/bookhunt2/internal/types"
)

// CatalogService is read access to books, genres and authors.
type CatalogService interface {
	ListBooks(ctx context.Context) ([]*types.Book, error)
	GetBook(ctx context.Context, bookID string) (*types.Book, error)
	ListGenres(ctx context.Context) ([]*types.Genre, error)
	GetAuthor(ctx context.Context, authorID string) (*types.Author, error)
}

type catalogService struct {
	log        *logger.Logger
	bookRepo   repos.BookRepo
	genreRepo  repos.GenreRepo
	authorRepo repos.AuthorRepo
}

func NewCatalogService(log *logger.Logger, bookRepo repos.BookRepo, genreRepo repos.GenreRepo, authorRepo repos.AuthorRepo) CatalogService {
	return &catalogService{
		log:        log.With("service", "CatalogService"),
		bookRepo:   bookRepo,
		genreRepo:  genreRepo,
		authorRepo: authorRepo,
	}
}

func (s *catalogService) ListBooks(ctx context.Context) ([]*types.Book, error) {
	return s.bookRepo.List(ctx, nil)
}

func (s *catalogService) GetBook(ctx context.Context, bookID string) (*types.Book, error) {
	return s.bookRepo.GetByID(ctx, nil, bookID)
}

func (s *catalogService) ListGenres(ctx context.Context) ([]*types.Genre, error) {
	return s.genreRepo.List(ctx, nil)
}

func (s *catalogService) GetAuthor(ctx context.Context, authorID string) (*types.Author, error) {
	return s.authorRepo.GetByID(ctx, nil, authorID)
}
