package repository

import (
	"context"
	"database/sql"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/enum"
	"github.com/playden-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommentOrder string

var (
	CommentNewest    = enum.New(CommentOrder("NEWEST"))
	CommentOldest    = enum.New(CommentOrder("OLDEST"))
	CommentMostLiked = enum.New(CommentOrder("MOST_LIKED"))
)

type GetListCommentFilter struct {
	PostID int64

	// ParentID is null when listing the top level comments of the post.
	ParentID sql.NullInt64
	OrderBy  CommentOrder
	Offset   int
	Limit    int
}

type CommentRepository interface {
	Create(ctx context.Context, e *entity.Comment) error
	GetByID(ctx context.Context, id int64) (*entity.Comment, error)
	GetList(ctx context.Context, filter GetListCommentFilter) ([]entity.Comment, error)
	CountReplies(ctx context.Context, ids []int64) (map[int64]int64, error)
	UpdateByID(ctx context.Context, id int64, content string) error
	DeleteByID(ctx context.Context, id int64) error
	IsLive(ctx context.Context, id int64) (bool, error)
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, e *entity.Comment) error {
	return xcontext.DB(ctx).Create(e).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*entity.Comment, error) {
	var record entity.Comment
	err := xcontext.DB(ctx).
		Joins("Author").
		Take(&record, "comments.id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *commentRepository) GetList(ctx context.Context, filter GetListCommentFilter) ([]entity.Comment, error) {
	tx := xcontext.DB(ctx).
		Joins("Author").
		Where("comments.post_id=?", filter.PostID)

	if filter.ParentID.Valid {
		tx = tx.Where("comments.parent_id=?", filter.ParentID.Int64)
	} else {
		tx = tx.Where("comments.parent_id IS NULL")
	}

	switch filter.OrderBy {
	case CommentOldest:
		tx = tx.Order("comments.created_at ASC")
	case CommentMostLiked:
		likes := xcontext.DB(ctx).Model(&entity.Reaction{}).
			Select("entity_id, COUNT(*) AS likes").
			Where("entity_type=? AND is_like=?", entity.ReactionComment, true).
			Group("entity_id")

		tx = tx.Joins("LEFT JOIN (?) AS comment_likes ON comment_likes.entity_id=comments.id", likes).
			Order("COALESCE(comment_likes.likes, 0) DESC").
			Order("comments.created_at DESC")
	default:
		tx = tx.Order("comments.created_at DESC")
	}

	var result []entity.Comment
	if err := tx.Offset(filter.Offset).Limit(filter.Limit).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// CountReplies returns the number of live replies of each comment.
func (r *commentRepository) CountReplies(ctx context.Context, ids []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []struct {
		ParentID int64
		Total    int64
	}
	err := xcontext.DB(ctx).Model(&entity.Comment{}).
		Select("parent_id, COUNT(*) AS total").
		Where("parent_id IN (?)", ids).
		Group("parent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ParentID] = row.Total
	}

	return result, nil
}

func (r *commentRepository) UpdateByID(ctx context.Context, id int64, content string) error {
	return xcontext.DB(ctx).Model(&entity.Comment{}).
		Where("id=?", id).
		Update("content", content).Error
}

func (r *commentRepository) DeleteByID(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Delete(&entity.Comment{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// IsLive reports whether the comment, its post and the community of the post
// are not deleted.
func (r *commentRepository) IsLive(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Comment{}).
		Joins("JOIN posts ON posts.id=comments.post_id AND posts.deleted_at IS NULL").
		Joins("JOIN communities ON communities.id=posts.community_id AND communities.deleted_at IS NULL").
		Where("comments.id=?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
