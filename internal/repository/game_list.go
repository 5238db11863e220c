package repository

import (
	"context"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GameListRepository interface {
	Create(ctx context.Context, e *entity.GameList) error
	GetByID(ctx context.Context, id int64) (*entity.GameList, error)
	GetListByUserID(ctx context.Context, userID int64) ([]entity.GameList, error)
	UpdateByID(ctx context.Context, id int64, e entity.GameList) error
	DeleteByID(ctx context.Context, id int64) error

	AddItem(ctx context.Context, item *entity.GameListItem) error
	RemoveItem(ctx context.Context, listID, gameID int64) error
	GetItems(ctx context.Context, listID int64) ([]entity.GameListItem, error)
	CountItems(ctx context.Context, listIDs []int64) (map[int64]int64, error)
}

type gameListRepository struct{}

func NewGameListRepository() *gameListRepository {
	return &gameListRepository{}
}

func (r *gameListRepository) Create(ctx context.Context, e *entity.GameList) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *gameListRepository) GetByID(ctx context.Context, id int64) (*entity.GameList, error) {
	var record entity.GameList
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *gameListRepository) GetListByUserID(ctx context.Context, userID int64) ([]entity.GameList, error) {
	var result []entity.GameList
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *gameListRepository) UpdateByID(ctx context.Context, id int64, e entity.GameList) error {
	return xcontext.DB(ctx).Model(&entity.GameList{}).
		Where("id=?", id).
		Updates(map[string]any{
			"name":        e.Name,
			"description": e.Description,
		}).Error
}

func (r *gameListRepository) DeleteByID(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Delete(&entity.GameList{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// AddItem appends the game at the end of the list. Adding a game twice fails
// with gorm.ErrDuplicatedKey.
func (r *gameListRepository) AddItem(ctx context.Context, item *entity.GameListItem) error {
	var last struct{ Position int }
	err := xcontext.DB(ctx).Model(&entity.GameListItem{}).
		Select("COALESCE(MAX(position), 0) AS position").
		Where("list_id=?", item.ListID).
		Scan(&last).Error
	if err != nil {
		return err
	}

	item.Position = last.Position + 1
	return xcontext.DB(ctx).Create(item).Error
}

func (r *gameListRepository) RemoveItem(ctx context.Context, listID, gameID int64) error {
	tx := xcontext.DB(ctx).Delete(&entity.GameListItem{}, "list_id=? AND game_id=?", listID, gameID)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *gameListRepository) GetItems(ctx context.Context, listID int64) ([]entity.GameListItem, error) {
	var result []entity.GameListItem
	err := xcontext.DB(ctx).
		Joins("Game").
		Where("game_list_items.list_id=?", listID).
		Order("game_list_items.position ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *gameListRepository) CountItems(ctx context.Context, listIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(listIDs))
	if len(listIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ListID int64
		Total  int64
	}
	err := xcontext.DB(ctx).Model(&entity.GameListItem{}).
		Select("list_id, COUNT(*) AS total").
		Where("list_id IN (?)", listIDs).
		Group("list_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ListID] = row.Total
	}

	return result, nil
}
