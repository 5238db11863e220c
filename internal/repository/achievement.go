package repository

import (
	"context"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	GetAll(ctx context.Context) ([]entity.Achievement, error)
}

type achievementRepository struct{}

func NewAchievementRepository() *achievementRepository {
	return &achievementRepository{}
}

func (r *achievementRepository) GetAll(ctx context.Context) ([]entity.Achievement, error) {
	var result []entity.Achievement
	if err := xcontext.DB(ctx).Order("kind, threshold").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

type UserAchievementRepository interface {
	// Create returns false if the user already unlocked the achievement.
	Create(ctx context.Context, e *entity.UserAchievement) (bool, error)
	GetByUserID(ctx context.Context, userID int64) ([]entity.UserAchievement, error)
}

type userAchievementRepository struct{}

func NewUserAchievementRepository() *userAchievementRepository {
	return &userAchievementRepository{}
}

func (r *userAchievementRepository) Create(ctx context.Context, e *entity.UserAchievement) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(e)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

func (r *userAchievementRepository) GetByUserID(ctx context.Context, userID int64) ([]entity.UserAchievement, error) {
	var result []entity.UserAchievement
	err := xcontext.DB(ctx).
		Joins("Achievement").
		Where("user_achievements.user_id=?", userID).
		Order("user_achievements.created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
