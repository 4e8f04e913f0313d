package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/kkhinlin/bookhunt2/internal/clients/googlebooks"
	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/repos"
	"github.com/kkhinlin/bookhunt2/internal/types"
)

const unknownGenreName = "Unknown"

// IngestionService persists volumes fetched from the Google Books catalog.
type IngestionService interface {
	// SaveVolumes stores new books, creating authors and the fallback
	// genre on demand. Books whose title already exists are skipped.
	// Returns the number of books created.
	SaveVolumes(ctx context.Context, volumes []googlebooks.Volume) (int, error)
}

type ingestionService struct {
	log        *logger.Logger
	bookRepo   repos.BookRepo
	authorRepo repos.AuthorRepo
	genreRepo  repos.GenreRepo
}

func NewIngestionService(log *logger.Logger, bookRepo repos.BookRepo, authorRepo repos.AuthorRepo, genreRepo repos.GenreRepo) IngestionService {
	return &ingestionService{
		log:        log.With("service", "IngestionService"),
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
		genreRepo:  genreRepo,
	}
}

func (s *ingestionService) SaveVolumes(ctx context.Context, volumes []googlebooks.Volume) (int, error) {
	genre, err := s.findOrCreateGenre(ctx, unknownGenreName)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, volume := range volumes {
		info := volume.VolumeInfo
		if info.Title == "" {
			continue
		}

		exists, err := s.bookRepo.TitleExists(ctx, nil, info.Title)
		if err != nil {
			return created, fmt.Errorf("failed to check title %q: %w", info.Title, err)
		}
		if exists {
			continue
		}

		var authorID *string
		for _, authorName := range info.Authors {
			author, aErr := s.findOrCreateAuthor(ctx, authorName)
			if aErr != nil {
				return created, aErr
			}
			authorID = &author.ID
		}

		book := &types.Book{
			Title:         info.Title,
			AverageRating: info.AverageRating,
			AuthorID:      authorID,
			GenreID:       &genre.ID,
		}

		description := info.Description
		if description == "" {
			description = DefaultDescription
		}
		book.Description = &description

		if year := publishedYear(info.PublishedDate); year != nil {
			book.PublishedYear = year
		}
		if info.PageCount > 0 {
			pages := info.PageCount
			book.NumberOfPages = &pages
		}
		if len(info.Categories) > 0 {
			book.Subjects = info.Categories
		}

		if _, err := s.bookRepo.Create(ctx, nil, []*types.Book{book}); err != nil {
			return created, fmt.Errorf("failed to create book %q: %w", info.Title, err)
		}
		created++
	}

	s.log.Info("Saved volumes", "fetched", len(volumes), "created", created)
	return created, nil
}

func (s *ingestionService) findOrCreateAuthor(ctx context.Context, name string) (*types.Author, error) {
	author, err := s.authorRepo.GetByName(ctx, nil, name)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up author %q: %w", name, err)
	}

	created, err := s.authorRepo.Create(ctx, nil, []*types.Author{{Name: name}})
	if err != nil {
		return nil, fmt.Errorf("failed to create author %q: %w", name, err)
	}
	return created[0], nil
}

func (s *ingestionService) findOrCreateGenre(ctx context.Context, name string) (*types.Genre, error) {
	genre, err := s.genreRepo.GetByName(ctx, nil, name)
	if err == nil {
		return genre, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up genre %q: %w", name, err)
	}

	created, err := s.genreRepo.Create(ctx, nil, []*types.Genre{{Name: name}})
	if err != nil {
		return nil, fmt.Errorf("failed to create genre %q: %w", name, err)
	}
	return created[0], nil
}

// publishedYear parses the leading year out of values like "2003-07-12".
func publishedYear(publishedDate string) *int {
	if publishedDate == "" {
		return nil
	}
	yearPart := strings.SplitN(publishedDate, "-", 2)[0]
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return nil
	}
	return &year
}
