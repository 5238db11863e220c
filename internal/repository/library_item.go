package repository

import (
	"context"
	"database/sql"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListLibraryItemFilter struct {
	UserID int64
	Status entity.LibraryStatus
	Offset int
	Limit  int
}

type GameStats struct {
	InLibrary     int64
	AverageRating sql.NullFloat64
	ByStatus      map[entity.LibraryStatus]int64
}

type LibraryItemRepository interface {
	Get(ctx context.Context, userID, gameID int64) (*entity.LibraryItem, error)
	GetList(ctx context.Context, filter GetListLibraryItemFilter) ([]entity.LibraryItem, error)
	Update(ctx context.Context, userID, gameID int64, status entity.LibraryStatus, rating sql.NullInt32) error
	Stats(ctx context.Context, gameID int64) (*GameStats, error)
}

type libraryItemRepository struct{}

func NewLibraryItemRepository() *libraryItemRepository {
	return &libraryItemRepository{}
}

func (r *libraryItemRepository) Get(ctx context.Context, userID, gameID int64) (*entity.LibraryItem, error) {
	var record entity.LibraryItem
	err := xcontext.DB(ctx).
		Joins("Game").
		Take(&record, "library_items.user_id=? AND library_items.game_id=?", userID, gameID).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *libraryItemRepository) GetList(
	ctx context.Context, filter GetListLibraryItemFilter,
) ([]entity.LibraryItem, error) {
	tx := xcontext.DB(ctx).
		Joins("Game").
		Where("library_items.user_id=?", filter.UserID)

	if filter.Status != "" {
		tx = tx.Where("library_items.status=?", filter.Status)
	}

	var result []entity.LibraryItem
	err := tx.Order("library_items.created_at DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Update changes an active item only, it returns gorm.ErrRecordNotFound if
// the game is not in the library.
func (r *libraryItemRepository) Update(
	ctx context.Context, userID, gameID int64, status entity.LibraryStatus, rating sql.NullInt32,
) error {
	tx := xcontext.DB(ctx).Model(&entity.LibraryItem{}).
		Where("user_id=? AND game_id=?", userID, gameID).
		Updates(map[string]any{
			"status": status,
			"rating": rating,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *libraryItemRepository) Stats(ctx context.Context, gameID int64) (*GameStats, error) {
	var rows []struct {
		Status    entity.LibraryStatus
		Total     int64
		RatingSum int64
		Rated     int64
	}

	err := xcontext.DB(ctx).Model(&entity.LibraryItem{}).
		Select("status, COUNT(*) AS total, COALESCE(SUM(rating), 0) AS rating_sum, COUNT(rating) AS rated").
		Where("game_id=?", gameID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &GameStats{ByStatus: map[entity.LibraryStatus]int64{}}
	var ratingSum, rated int64
	for _, row := range rows {
		stats.InLibrary += row.Total
		stats.ByStatus[row.Status] = row.Total
		ratingSum += row.RatingSum
		rated += row.Rated
	}

	if rated > 0 {
		stats.AverageRating = sql.NullFloat64{Float64: float64(ratingSum) / float64(rated), Valid: true}
	}

	return stats, nil
}
