package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/kkhinlin/bookhunt2/internal/logger"
	"github.com/kkhinlin/bookhunt2/internal/types"
)

type GenreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, genres []*types.Genre) ([]*types.Genre, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Genre, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Genre, error)
}

type genreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGenreRepo(db *gorm.DB, baseLog *logger.Logger) GenreRepo {
	repoLog := baseLog.With("repo", "GenreRepo")
	return &genreRepo{db: db, log: repoLog}
}

func (gr *genreRepo) Create(ctx context.Context, tx *gorm.DB, genres []*types.Genre) ([]*types.Genre, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	if len(genres) == 0 {
		return []*types.Genre{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&genres).Error; err != nil {
		return nil, err
	}

	return genres, nil
}

func (gr *genreRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Genre, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var result types.Genre
	if err := transaction.WithContext(ctx).
		Where("name = ?", name).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (gr *genreRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Genre, error) {
	transaction := tx
	if transaction == nil {
		transaction = gr.db
	}

	var results []*types.Genre
	if err := transaction.WithContext(ctx).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
