package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/types"
)

type BookRepo interface {
	Create(ctx context.Context, tx *gorm.DB, books []*types.Book) ([]*types.Book, error)
	GetByID(ctx context.Context, tx *gorm.DB, bookID string) (*types.Book, error)
	GetByTitle(ctx context.Context, tx *gorm.DB, title string) (*types.Book, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Book, error)
	ListByGenreName(ctx context.Context, tx *gorm.DB, genreName string) ([]*types.Book, error)
	TitleExists(ctx context.Context, tx *gorm.DB, title string) (bool, error)
}

type bookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	repoLog := baseLog.With("repo", "BookRepo")
	return &bookRepo{db: db, log: repoLog}
}

func (br *bookRepo) Create(ctx context.Context, tx *gorm.DB, books []*types.Book) ([]*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if len(books) == 0 {
		return []*types.Book{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&books).Error; err != nil {
		return nil, err
	}

	return books, nil
}

func (br *bookRepo) GetByID(ctx context.Context, tx *gorm.DB, bookID string) (*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var result types.Book
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Preload("Genre").
		Where("id = ?", bookID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (br *bookRepo) GetByTitle(ctx context.Context, tx *gorm.DB, title string) (*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var result types.Book
	if err := transaction.WithContext(ctx).
		Where("title = ?", title).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (br *bookRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Book
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Preload("Genre").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookRepo) ListByGenreName(ctx context.Context, tx *gorm.DB, genreName string) ([]*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Book
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Preload("Genre").
		Joins("JOIN genres ON genres.id = books.genre_id").
		Where("genres.name = ?", genreName).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookRepo) TitleExists(ctx context.Context, tx *gorm.DB, title string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Book{}).
		Where("title = ?", title).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
