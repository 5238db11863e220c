package repository

import (
	"context"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, e *entity.Post) error
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	GetListByCommunityID(ctx context.Context, communityID int64, offset, limit int) ([]entity.Post, error)
	UpdateByID(ctx context.Context, id int64, e entity.Post) error
	DeleteByID(ctx context.Context, id int64) error
	IsLive(ctx context.Context, id int64) (bool, error)
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) Create(ctx context.Context, e *entity.Post) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	var record entity.Post
	err := xcontext.DB(ctx).
		Joins("Author").
		Take(&record, "posts.id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postRepository) GetListByCommunityID(
	ctx context.Context, communityID int64, offset, limit int,
) ([]entity.Post, error) {
	var result []entity.Post
	err := xcontext.DB(ctx).
		Joins("Author").
		Where("posts.community_id=?", communityID).
		Order("posts.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postRepository) UpdateByID(ctx context.Context, id int64, e entity.Post) error {
	return xcontext.DB(ctx).Model(&entity.Post{}).
		Where("id=?", id).
		Updates(map[string]any{
			"title":   e.Title,
			"content": e.Content,
		}).Error
}

func (r *postRepository) DeleteByID(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Delete(&entity.Post{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// IsLive reports whether the post and its community are not deleted.
func (r *postRepository) IsLive(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Post{}).
		Joins("JOIN communities ON communities.id=posts.community_id AND communities.deleted_at IS NULL").
		Where("posts.id=?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
