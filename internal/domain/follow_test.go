package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/playden-lab/backend/internal/domain/relation"
	"github.com/playden-lab/backend/internal/entity"
	"github.com/playden-lab/backend/internal/model"
	"github.com/playden-lab/backend/internal/repository"
	"github.com/playden-lab/backend/pkg/errorx"
	"github.com/playden-lab/backend/pkg/testutil"
	"github.com/playden-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestFollowDomain(trigger *testutil.MockTrigger) *followDomain {
	return NewFollowDomain(
		repository.NewUserRepository(&testutil.MockRedisClient{}),
		repository.NewFollowerRepository(),
		relation.NewMachine(relation.FollowKind),
		trigger,
	)
}

func Test_followDomain_FullScenario(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	trigger := &testutil.MockTrigger{}
	followDomain := newTestFollowDomain(trigger)
	ctxUser1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	resp, err := followDomain.Follow(ctxUser1, &model.FollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Following)

	resp, err = followDomain.Follow(ctxUser1, &model.FollowRequest{UserID: testutil.User3.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Following)

	require.Equal(t, []testutil.TriggerCall{
		{SubjectID: testutil.User1.ID, Kind: entity.FollowKindName, Count: 1},
		{SubjectID: testutil.User1.ID, Kind: entity.FollowKindName, Count: 2},
	}, trigger.Calls)

	_, err = followDomain.Follow(ctxUser1, &model.FollowRequest{UserID: testutil.User2.ID})
	require.True(t, errorx.IsCode(err, errorx.AlreadyExists))
	require.Len(t, trigger.Calls, 2)

	isFollowing, err := followDomain.IsFollowing(ctxUser1, &model.IsFollowingRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.True(t, isFollowing.IsFollowing)

	following, err := followDomain.GetFollowing(ctx, &model.GetFollowingRequest{
		UserID:     testutil.User1.ID,
		Pagination: model.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, following.Users, 2)

	followers, err := followDomain.GetFollowers(ctx, &model.GetFollowersRequest{
		UserID:     testutil.User2.ID,
		Pagination: model.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, followers.Users, 1)
	require.Equal(t, testutil.User1.ID, followers.Users[0].ID)

	_, err = followDomain.Unfollow(ctxUser1, &model.UnfollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	_, err = followDomain.Unfollow(ctxUser1, &model.UnfollowRequest{UserID: testutil.User2.ID})
	require.True(t, errorx.IsCode(err, errorx.NotActive))

	counts, err := followDomain.CountFollow(ctx, &model.CountFollowRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)
	require.Equal(t, int64(0), counts.Followers)
	require.Equal(t, int64(1), counts.Following)

	// Following again reuses the removed row.
	resp, err = followDomain.Follow(ctxUser1, &model.FollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Following)
}

func Test_followDomain_Follow_Invalid(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	followDomain := newTestFollowDomain(&testutil.MockTrigger{})
	ctxUser1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	_, err := followDomain.Follow(ctxUser1, &model.FollowRequest{UserID: testutil.User1.ID})
	require.True(t, errorx.IsCode(err, errorx.SelfReference))

	_, err = followDomain.Follow(ctxUser1, &model.FollowRequest{UserID: testutil.DeactivatedUser.ID})
	require.True(t, errorx.IsCode(err, errorx.NotFound))

	_, err = followDomain.Follow(ctxUser1, &model.FollowRequest{UserID: 999999})
	require.True(t, errorx.IsCode(err, errorx.NotFound))

	_, err = followDomain.Follow(ctx, &model.FollowRequest{UserID: testutil.User2.ID})
	require.True(t, errorx.IsCode(err, errorx.Unauthenticated))
}

func Test_followDomain_Follow_TriggerFailure(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	trigger := &testutil.MockTrigger{
		NotifyCountReachedFunc: func(context.Context, int64, string, int64) error {
			return errors.New("achievement store is down")
		},
	}
	followDomain := newTestFollowDomain(trigger)
	ctxUser1 := xcontext.WithRequestUserID(ctx, testutil.User1.ID)

	resp, err := followDomain.Follow(ctxUser1, &model.FollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Following)
	require.Len(t, trigger.Calls, 1)

	isFollowing, err := followDomain.IsFollowing(ctxUser1, &model.IsFollowingRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.True(t, isFollowing.IsFollowing)
}
