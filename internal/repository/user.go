package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/playden-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

const userCacheTTL = time.Hour

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	UpdateByID(ctx context.Context, id int64, data *entity.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	GetDeactivatedByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.User, error)
	Deactivate(ctx context.Context, id int64) error
	Reactivate(ctx context.Context, id int64) (bool, error)
}

type userRepository struct {
	redisClient xredis.Client
}

func NewUserRepository(redisClient xredis.Client) *userRepository {
	return &userRepository{redisClient: redisClient}
}

func (r *userRepository) cacheKey(id int64) string {
	return fmt.Sprintf("cache:user:%d", id)
}

func (r *userRepository) invalidateCache(ctx context.Context, id int64) {
	if err := r.redisClient.Del(ctx, r.cacheKey(id)); err != nil && !xredis.IsNil(err) {
		xcontext.Logger(ctx).Warnf("Cannot invalidate user redis key: %v", err)
	}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) UpdateByID(ctx context.Context, id int64, data *entity.User) error {
	updateMap := map[string]any{}
	if data.DisplayName != "" {
		updateMap["display_name"] = data.DisplayName
	}

	if data.Bio != "" {
		updateMap["bio"] = data.Bio
	}

	if data.AvatarURL != "" {
		updateMap["avatar_url"] = data.AvatarURL
	}

	if len(updateMap) == 0 {
		return nil
	}

	err := xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(updateMap).Error
	if err != nil {
		return err
	}

	r.invalidateCache(ctx, id)
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", id).
		Update("password_hash", passwordHash).Error
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var record entity.User
	err := r.redisClient.GetObj(ctx, r.cacheKey(id), &record)
	if err == nil {
		return &record, nil
	}

	if !xredis.IsNil(err) {
		xcontext.Logger(ctx).Warnf("Cannot get user from redis: %v", err)
	}

	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	if err := r.redisClient.SetObj(ctx, r.cacheKey(id), record, userCacheTTL); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot set user to redis: %v", err)
	}

	return &record, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "username=?", username).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// GetByIdentifier finds an active user by username or email.
func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	var record entity.User
	err := xcontext.DB(ctx).
		Where("username=? OR email=?", identifier, identifier).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetDeactivatedByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	var record entity.User
	err := xcontext.DB(ctx).Unscoped().
		Where("username=? OR email=?", identifier, identifier).
		Where("deleted_at IS NOT NULL").
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.User
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) Deactivate(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Delete(&entity.User{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.invalidateCache(ctx, id)
	return nil
}

// Reactivate clears the tombstone of a deactivated user. It returns false if
// the user was not deactivated.
func (r *userRepository) Reactivate(ctx context.Context, id int64) (bool, error) {
	tx := xcontext.DB(ctx).Unscoped().Model(&entity.User{}).
		Where("id=? AND deleted_at IS NOT NULL", id).
		Updates(map[string]any{
			"deleted_at": nil,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected > 0, nil
}

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicated reports whether err is a violation of a unique constraint.
func IsDuplicated(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
