package repository

import (
	"context"

	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
)

type CommunityMemberRepository interface {
	GetMembers(ctx context.Context, communityID int64, offset, limit int) ([]entity.User, error)
	GetCommunities(ctx context.Context, userID int64, offset, limit int) ([]entity.Community, error)
}

type communityMemberRepository struct{}

func NewCommunityMemberRepository() *communityMemberRepository {
	return &communityMemberRepository{}
}

func (r *communityMemberRepository) GetMembers(
	ctx context.Context, communityID int64, offset, limit int,
) ([]entity.User, error) {
	var result []entity.User
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Joins("JOIN community_members ON community_members.user_id=users.id").
		Where("community_members.community_id=? AND community_members.deleted_at IS NULL", communityID).
		Order("community_members.created_at ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetCommunities returns the live communities which the user is an active
// member of.
func (r *communityMemberRepository) GetCommunities(
	ctx context.Context, userID int64, offset, limit int,
) ([]entity.Community, error) {
	var result []entity.Community
	err := xcontext.DB(ctx).Model(&entity.Community{}).
		Joins("JOIN community_members ON community_members.community_id=communities.id").
		Where("community_members.user_id=? AND community_members.deleted_at IS NULL", userID).
		Order("community_members.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
