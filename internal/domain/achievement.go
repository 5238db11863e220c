package domain

import (
	"context"
	"time"

	"github.com/playden-lab/backend/internal/domain/achievement"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type AchievementDomain interface {
	GetAchievements(context.Context, *model.GetAchievementsRequest) (*model.GetAchievementsResponse, error)
	GetMyAchievements(context.Context, *model.GetMyAchievementsRequest) (*model.GetMyAchievementsResponse, error)
	GetUserAchievements(context.Context, *model.GetUserAchievementsRequest) (*model.GetUserAchievementsResponse, error)
}

type achievementDomain struct {
	manager             *achievement.Manager
	userAchievementRepo repository.UserAchievementRepository
}

func NewAchievementDomain(
	manager *achievement.Manager,
	userAchievementRepo repository.UserAchievementRepository,
) *achievementDomain {
	return &achievementDomain{
		manager:             manager,
		userAchievementRepo: userAchievementRepo,
	}
}

func (d *achievementDomain) GetAchievements(
	ctx context.Context, req *model.GetAchievementsRequest,
) (*model.GetAchievementsResponse, error) {
	achievements, err := d.manager.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievements: %v", err)
		return nil, errorx.Unknown
	}

	slices.SortFunc(achievements, func(a, b entity.Achievement) bool {
		return a.ID < b.ID
	})

	result := []model.Achievement{}
	for i := range achievements {
		result = append(result, model.ConvertAchievement(&achievements[i], time.Time{}))
	}

	return &model.GetAchievementsResponse{Achievements: result}, nil
}

func (d *achievementDomain) GetMyAchievements(
	ctx context.Context, req *model.GetMyAchievementsRequest,
) (*model.GetMyAchievementsResponse, error) {
	userID, err := requireLogin(ctx)
	if err != nil {
		return nil, err
	}

	result, err := d.unlocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.GetMyAchievementsResponse{Achievements: result}, nil
}

func (d *achievementDomain) GetUserAchievements(
	ctx context.Context, req *model.GetUserAchievementsRequest,
) (*model.GetUserAchievementsResponse, error) {
	result, err := d.unlocked(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	return &model.GetUserAchievementsResponse{Achievements: result}, nil
}

func (d *achievementDomain) unlocked(ctx context.Context, userID int64) ([]model.Achievement, error) {
	userAchievements, err := d.userAchievementRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievements of user: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Achievement{}
	for i := range userAchievements {
		result = append(result, model.ConvertAchievement(
			&userAchievements[i].Achievement, userAchievements[i].CreatedAt))
	}

	return result, nil
}
