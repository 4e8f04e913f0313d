package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/types"
)

type AuthorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, authors []*types.Author) ([]*types.Author, error)
	GetByID(ctx context.Context, tx *gorm.DB, authorID string) (*types.Author, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Author, error)
}

type authorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuthorRepo(db *gorm.DB, baseLog *logger.Logger) AuthorRepo {
	repoLog := baseLog.With("repo", "AuthorRepo")
	return &authorRepo{db: db, log: repoLog}
}

func (ar *authorRepo) Create(ctx context.Context, tx *gorm.DB, authors []*types.Author) ([]*types.Author, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(authors) == 0 {
		return []*types.Author{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&authors).Error; err != nil {
		return nil, err
	}

	return authors, nil
}

func (ar *authorRepo) GetByID(ctx context.Context, tx *gorm.DB, authorID string) (*types.Author, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Author
	if err := transaction.WithContext(ctx).
		Where("id = ?", authorID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *authorRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Author, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Author
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
