package repository

import (
	"context"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type GameRepository interface {
	Upsert(ctx context.Context, games ...entity.Game) error
	GetByID(ctx context.Context, id int64) (*entity.Game, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Game, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Game, error)
}

type gameRepository struct{}

func NewGameRepository() *gameRepository {
	return &gameRepository{}
}

// Upsert inserts games fetched from the catalog, existing rows are refreshed.
func (r *gameRepository) Upsert(ctx context.Context, games ...entity.Game) error {
	if len(games) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "slug", "summary", "cover_url", "genres", "rating", "released_at", "updated_at",
			}),
		}).
		Create(&games).Error
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (*entity.Game, error) {
	var record entity.Game
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *gameRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.Game, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var result []entity.Game
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *gameRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Game, error) {
	var result []entity.Game
	err := xcontext.DB(ctx).
		Order("rating DESC").
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
