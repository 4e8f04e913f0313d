package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/types"
)

type UserBookRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.UserBook) ([]*types.UserBook, error)
	Update(ctx context.Context, tx *gorm.DB, record *types.UserBook) (*types.UserBook, error)
	GetByBookID(ctx context.Context, tx *gorm.DB, bookID string) (*types.UserBook, error)
	GetByBookIDAndStatus(ctx context.Context, tx *gorm.DB, bookID, status string) (*types.UserBook, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.UserBook, error)
	ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.UserBook, error)
	ListPage(ctx context.Context, tx *gorm.DB, page, perPage int) ([]*types.UserBook, int64, error)
}

type userBookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserBookRepo(db *gorm.DB, baseLog *logger.Logger) UserBookRepo {
	repoLog := baseLog.With("repo", "UserBookRepo")
	return &userBookRepo{db: db, log: repoLog}
}

func (ur *userBookRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.UserBook) ([]*types.UserBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if len(records) == 0 {
		return []*types.UserBook{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (ur *userBookRepo) Update(ctx context.Context, tx *gorm.DB, record *types.UserBook) (*types.UserBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if err := transaction.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (ur *userBookRepo) GetByBookID(ctx context.Context, tx *gorm.DB, bookID string) (*types.UserBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.UserBook
	if err := transaction.WithContext(ctx).
		Where("book_id = ?", bookID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userBookRepo) GetByBookIDAndStatus(ctx context.Context, tx *gorm.DB, bookID, status string) (*types.UserBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.UserBook
	if err := transaction.WithContext(ctx).
		Where("book_id = ? AND status = ?", bookID, status).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userBookRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.UserBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.UserBook
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userBookRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.UserBook, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.UserBook
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userBookRepo) ListPage(ctx context.Context, tx *gorm.DB, page, perPage int) ([]*types.UserBook, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserBook{}).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.UserBook
	if err := transaction.WithContext(ctx).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
