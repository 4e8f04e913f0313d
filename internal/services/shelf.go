package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/repos"
	"github.com/kkhinlin/bookhunt2/internal/types"
)

// PastRead is a user book record joined with its book title for display.
type PastRead struct {
	ID        string  `json:"id"`
	BookTitle string  `json:"book_title"`
	Status    string  `json:"status"`
	Opinion   *string `json:"opinion,omitempty"`
}

// PastReadsPage is one page of the user's interaction history.
type PastReadsPage struct {
	Items       []PastRead `json:"items"`
	Total       int64      `json:"total"`
	Pages       int        `json:"pages"`
	CurrentPage int        `json:"current_page"`
}

// ReadingListEntry is a to-read book with display fields resolved.
type ReadingListEntry struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

// ShelfService manages the user's shelves: past reads and the reading list.
type ShelfService interface {
	// AddPastRead marks a book (by title, created when unknown) as read
	// with the given opinion. Returns true when a new record was created,
	// false when an existing one was updated.
	AddPastRead(ctx context.Context, bookTitle, opinion string) (bool, error)
	ListPastReads(ctx context.Context, page, perPage int) (*PastReadsPage, error)
	// AddToReadingList seeds a to_read record for the book unless one
	// already exists (existing-entry-wins).
	AddToReadingList(ctx context.Context, bookID string) error
	ReadingList(ctx context.Context) ([]ReadingListEntry, error)
}

type shelfService struct {
	log          *logger.Logger
	bookRepo     repos.BookRepo
	userBookRepo repos.UserBookRepo
}

func NewShelfService(log *logger.Logger, bookRepo repos.BookRepo, userBookRepo repos.UserBookRepo) ShelfService {
	return &shelfService{
		log:          log.With("service", "ShelfService"),
		bookRepo:     bookRepo,
		userBookRepo: userBookRepo,
	}
}

func (s *shelfService) AddPastRead(ctx context.Context, bookTitle, opinion string) (bool, error) {
	if bookTitle == "" {
		return false, fmt.Errorf("book title is required")
	}

	book, err := s.bookRepo.GetByTitle(ctx, nil, bookTitle)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("failed to look up book: %w", err)
		}
		created, cErr := s.bookRepo.Create(ctx, nil, []*types.Book{{Title: bookTitle}})
		if cErr != nil {
			return false, fmt.Errorf("failed to create book: %w", cErr)
		}
		book = created[0]
	}

	record, err := s.userBookRepo.GetByBookID(ctx, nil, book.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("failed to look up user book: %w", err)
		}
		newRecord := &types.UserBook{
			BookID:  book.ID,
			Status:  types.StatusRead,
			Opinion: &opinion,
		}
		if _, cErr := s.userBookRepo.Create(ctx, nil, []*types.UserBook{newRecord}); cErr != nil {
			return false, fmt.Errorf("failed to create user book: %w", cErr)
		}
		return true, nil
	}

	record.Status = types.StatusRead
	record.Opinion = &opinion
	if _, err := s.userBookRepo.Update(ctx, nil, record); err != nil {
		return false, fmt.Errorf("failed to update user book: %w", err)
	}
	return false, nil
}

func (s *shelfService) ListPastReads(ctx context.Context, page, perPage int) (*PastReadsPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	records, total, err := s.userBookRepo.ListPage(ctx, nil, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to page user books: %w", err)
	}

	items := make([]PastRead, 0, len(records))
	for _, record := range records {
		title := "Unknown Title"
		if book, bErr := s.bookRepo.GetByID(ctx, nil, record.BookID); bErr == nil {
			title = book.Title
		}
		items = append(items, PastRead{
			ID:        record.ID,
			BookTitle: title,
			Status:    record.Status,
			Opinion:   record.Opinion,
		})
	}

	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return &PastReadsPage{
		Items:       items,
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
	}, nil
}

func (s *shelfService) AddToReadingList(ctx context.Context, bookID string) error {
	if bookID == "" {
		return fmt.Errorf("book id is required")
	}

	_, err := s.userBookRepo.GetByBookIDAndStatus(ctx, nil, bookID, types.StatusToRead)
	if err == nil {
		// already on the list
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check reading list: %w", err)
	}

	record := &types.UserBook{
		BookID: bookID,
		Status: types.StatusToRead,
	}
	if _, err := s.userBookRepo.Create(ctx, nil, []*types.UserBook{record}); err != nil {
		return fmt.Errorf("failed to add to reading list: %w", err)
	}
	return nil
}

func (s *shelfService) ReadingList(ctx context.Context) ([]ReadingListEntry, error) {
	records, err := s.userBookRepo.ListByStatus(ctx, nil, types.StatusToRead)
	if err != nil {
		return nil, fmt.Errorf("failed to list reading list: %w", err)
	}

	entries := make([]ReadingListEntry, 0, len(records))
	for _, record := range records {
		book, bErr := s.bookRepo.GetByID(ctx, nil, record.BookID)
		if bErr != nil {
			continue
		}
		entry := ReadingListEntry{
			Title:  book.Title,
			Author: "Unknown Author",
			Genre:  "Unknown Genre",
		}
		if book.Author != nil {
			entry.Author = book.Author.Name
		}
		if book.Genre != nil {
			entry.Genre = book.Genre.Name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
