package repository

import (
	"context"
	"time"

	"github.com/playden-lab/backend/internal/domain/search"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GetListCommunityFilter struct {
	Q      string
	Offset int
	Limit  int
}

type CommunityRepository interface {
	Create(ctx context.Context, e *entity.Community) error
	GetList(ctx context.Context, filter GetListCommunityFilter) ([]entity.Community, error)
	GetByID(ctx context.Context, id int64) (*entity.Community, error)
	GetByHandle(ctx context.Context, handle string) (*entity.Community, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Community, error)
	UpdateByID(ctx context.Context, id int64, e entity.Community) error
	DeleteByID(ctx context.Context, id int64) error
	GetDeletedByHandle(ctx context.Context, handle string) (*entity.Community, error)
	GetDeletedByCreator(ctx context.Context, userID int64) ([]entity.Community, error)
	ReactivateByID(ctx context.Context, id int64) error
}

type communityRepository struct {
	searcher search.Searcher
}

func NewCommunityRepository(searcher search.Searcher) *communityRepository {
	return &communityRepository{searcher: searcher}
}

func (r *communityRepository) index(ctx context.Context, e *entity.Community) error {
	return r.searcher.IndexCommunity(ctx, e.ID, search.CommunityData{
		Handle:      e.Handle,
		DisplayName: e.DisplayName,
		Description: e.Description,
	})
}

func (r *communityRepository) Create(ctx context.Context, e *entity.Community) error {
	if err := xcontext.DB(ctx).Create(e).Error; err != nil {
		return err
	}

	return r.index(ctx, e)
}

func (r *communityRepository) GetList(ctx context.Context, filter GetListCommunityFilter) ([]entity.Community, error) {
	if filter.Q == "" {
		var result []entity.Community
		err := xcontext.DB(ctx).
			Order("created_at DESC").
			Offset(filter.Offset).Limit(filter.Limit).
			Find(&result).Error
		if err != nil {
			return nil, err
		}

		return result, nil
	}

	ids, err := r.searcher.SearchCommunity(ctx, filter.Q, filter.Offset, filter.Limit)
	if err != nil {
		return nil, err
	}

	communities, err := r.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	communitySet := map[int64]entity.Community{}
	for _, c := range communities {
		communitySet[c.ID] = c
	}

	// Keep the order of relevance, skip stale documents.
	orderedCommunities := []entity.Community{}
	for _, id := range ids {
		if c, ok := communitySet[id]; ok {
			orderedCommunities = append(orderedCommunities, c)
		}
	}

	return orderedCommunities, nil
}

func (r *communityRepository) GetByID(ctx context.Context, id int64) (*entity.Community, error) {
	var record entity.Community
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *communityRepository) GetByHandle(ctx context.Context, handle string) (*entity.Community, error) {
	var record entity.Community
	if err := xcontext.DB(ctx).Take(&record, "handle=?", handle).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *communityRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.Community, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var result []entity.Community
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *communityRepository) UpdateByID(ctx context.Context, id int64, e entity.Community) error {
	err := xcontext.DB(ctx).Model(&entity.Community{}).
		Where("id=?", id).
		Updates(e).Error
	if err != nil {
		return err
	}

	record, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return r.index(ctx, record)
}

func (r *communityRepository) DeleteByID(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Delete(&entity.Community{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return r.searcher.DeleteCommunity(ctx, id)
}

func (r *communityRepository) GetDeletedByHandle(ctx context.Context, handle string) (*entity.Community, error) {
	var record entity.Community
	err := xcontext.DB(ctx).Unscoped().
		Where("handle=? AND deleted_at IS NOT NULL", handle).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *communityRepository) GetDeletedByCreator(ctx context.Context, userID int64) ([]entity.Community, error) {
	var result []entity.Community
	err := xcontext.DB(ctx).Unscoped().
		Where("created_by=? AND deleted_at IS NOT NULL", userID).
		Order("deleted_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *communityRepository) ReactivateByID(ctx context.Context, id int64) error {
	tx := xcontext.DB(ctx).Unscoped().Model(&entity.Community{}).
		Where("id=? AND deleted_at IS NOT NULL", id).
		Updates(map[string]any{
			"deleted_at": nil,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	record, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return r.index(ctx, record)
}
