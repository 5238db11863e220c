package domain

import (
	"fmt"
	"testing"

	"github.com/playden-lab/backend/internal/domain/achievement"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/testutil"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_achievementDomain_FollowUnlocksSocialButterfly(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	manager := achievement.NewManager(
		repository.NewAchievementRepository(), repository.NewUserAchievementRepository())
	achievementDomain := NewAchievementDomain(manager, repository.NewUserAchievementRepository())

	followDomain := newTestFollowDomain(nil)
	followDomain.trigger = manager

	ctxUser1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	targets := []int64{testutil.User2.ID, testutil.User3.ID}
	for i := 0; i < 3; i++ {
		u := entity.User{Username: fmt.Sprintf("player_%d", i), Email: fmt.Sprintf("player%d@playden.test", i)}
		require.NoError(t, xcontext.DB(ctx).Create(&u).Error)
		targets = append(targets, u.ID)
	}

	for _, id := range targets {
		_, err := followDomain.Follow(ctxUser1, &model.FollowRequest{UserID: id})
		require.NoError(t, err)
	}

	// Following again after an unfollow does not unlock it twice.
	_, err := followDomain.Unfollow(ctxUser1, &model.UnfollowRequest{UserID: targets[0]})
	require.NoError(t, err)
	_, err = followDomain.Follow(ctxUser1, &model.FollowRequest{UserID: targets[0]})
	require.NoError(t, err)

	resp, err := achievementDomain.GetUserAchievements(ctx, &model.GetUserAchievementsRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Achievements, 1)
	require.Equal(t, "SOCIAL_BUTTERFLY", resp.Achievements[0].Name)
	require.Equal(t, entity.FollowKindName, resp.Achievements[0].Kind)

	all, err := achievementDomain.GetAchievements(ctx, &model.GetAchievementsRequest{})
	require.NoError(t, err)
	require.Len(t, all.Achievements, 3)
	for _, a := range all.Achievements {
		require.Empty(t, a.UnlockedAt)
	}

	others, err := achievementDomain.GetUserAchievements(ctx, &model.GetUserAchievementsRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Empty(t, others.Achievements)
}
