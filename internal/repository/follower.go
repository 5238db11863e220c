package repository

import (
	"context"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
)

type FollowerRepository interface {
	GetFollowers(ctx context.Context, userID int64, offset, limit int) ([]entity.User, error)
	GetFollowing(ctx context.Context, userID int64, offset, limit int) ([]entity.User, error)
}

type followerRepository struct{}

func NewFollowerRepository() *followerRepository {
	return &followerRepository{}
}

// GetFollowers returns active users following the given user, the latest
// follower comes first.
func (r *followerRepository) GetFollowers(ctx context.Context, userID int64, offset, limit int) ([]entity.User, error) {
	var result []entity.User
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Joins("JOIN followers ON followers.follower_id=users.id").
		Where("followers.following_id=? AND followers.deleted_at IS NULL", userID).
		Order("followers.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *followerRepository) GetFollowing(ctx context.Context, userID int64, offset, limit int) ([]entity.User, error) {
	var result []entity.User
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Joins("JOIN followers ON followers.following_id=users.id").
		Where("followers.follower_id=? AND followers.deleted_at IS NULL", userID).
		Order("followers.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
