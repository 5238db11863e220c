package repository

import (
	"context"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
)

type CatalogTokenRepository interface {
	GetLatest(ctx context.Context) (*entity.CatalogToken, error)
	Create(ctx context.Context, e *entity.CatalogToken) error
}

type catalogTokenRepository struct{}

func NewCatalogTokenRepository() *catalogTokenRepository {
	return &catalogTokenRepository{}
}

func (r *catalogTokenRepository) GetLatest(ctx context.Context) (*entity.CatalogToken, error) {
	var record entity.CatalogToken
	if err := xcontext.DB(ctx).Order("expires_at DESC").Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *catalogTokenRepository) Create(ctx context.Context, e *entity.CatalogToken) error {
	return xcontext.DB(ctx).Create(e).Error
}
